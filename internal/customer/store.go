// Package customer holds the in-memory customer collection.
package customer

import (
	"context"
	"strings"

	"DashboardPro/internal/apperr"
	"DashboardPro/internal/money"
)

type Status string

const (
	Active   Status = "Active"
	Inactive Status = "Inactive"
)

type Customer struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Phone  string       `json:"phone"`
	Orders int          `json:"orders"`
	Spent  money.Amount `json:"spent"`
	Status Status       `json:"status"`
}

// Form is the "add customer" input. Every field is required.
type Form struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (f Form) normalized() Form {
	return Form{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Phone: strings.TrimSpace(f.Phone),
	}
}

// Customer validates the form and returns a new, id-less active customer.
func (f Form) Customer() (Customer, error) {
	f = f.normalized()

	switch {
	case f.Name == "":
		return Customer{}, apperr.Required("name")
	case f.Email == "":
		return Customer{}, apperr.Required("email")
	case f.Phone == "":
		return Customer{}, apperr.Required("phone")
	}

	return Customer{
		Name:   f.Name,
		Email:  f.Email,
		Phone:  f.Phone,
		Orders: 0,
		Spent:  money.Amount{},
		Status: Active,
	}, nil
}

type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Customer, error)
	// Create assigns the id and appends c.
	Create(ctx context.Context, c Customer) (Customer, error)
	// Delete removes the customer with id and reports whether it existed.
	Delete(ctx context.Context, id int64) (Customer, bool, error)
}

// Seed is the demo dataset.
func Seed() []Customer {
	return []Customer{
		{ID: 1, Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1234567890", Orders: 45, Spent: money.Dollars(2340), Status: Active},
		{ID: 2, Name: "Bob Smith", Email: "bob@example.com", Phone: "+1234567891", Orders: 32, Spent: money.Dollars(1890), Status: Active},
		{ID: 3, Name: "Carol White", Email: "carol@example.com", Phone: "+1234567892", Orders: 28, Spent: money.Dollars(1560), Status: Inactive},
		{ID: 4, Name: "David Brown", Email: "david@example.com", Phone: "+1234567893", Orders: 51, Spent: money.Dollars(3120), Status: Active},
	}
}
