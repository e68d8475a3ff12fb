// Package apperr holds the error taxonomy shared by the dashboard components.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrUnknownPage = errors.New("unknown page")
)

const (
	ReasonRequired = "required"
	ReasonInvalid  = "invalid"
)

// FieldError describes a single rejected form field.
type FieldError struct {
	Field  string
	Reason string
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("field %q %s: %s", e.Field, e.Reason, e.Detail)
	}
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

// Required reports a missing form field. The result matches ErrValidation.
func Required(field string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &FieldError{Field: field, Reason: ReasonRequired})
}

// Invalid reports a present but unusable form field.
func Invalid(field, detail string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &FieldError{Field: field, Reason: ReasonInvalid, Detail: detail})
}

func NotFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
}

// Field extracts the offending field from a validation error.
func Field(err error) (FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return *fe, true
	}
	return FieldError{}, false
}
