// Package money formats and parses the dollar amounts shown on the dashboard.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is an exact dollar value. The zero value is $0.
type Amount struct {
	d decimal.Decimal
}

func Dollars(n int64) Amount { return Amount{d: decimal.NewFromInt(n)} }

func Cents(n int64) Amount { return Amount{d: decimal.New(n, -2)} }

func FromDecimal(d decimal.Decimal) Amount { return Amount{d: d} }

const maxInputLen = 32

// MaxAmount is the largest amount Parse accepts.
var MaxAmount = decimal.New(1, 12)

// Parse accepts plain dollar syntax: "129.99", "$129.99" and "$2,340".
// Exponents, signs and amounts of MaxAmount or more are rejected. More than
// two decimals are rounded to cents.
func Parse(s string) (Amount, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if len(clean) > maxInputLen || !plainDecimal(clean) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.GreaterThanOrEqual(MaxAmount) {
		return Amount{}, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	if d.Exponent() < -2 {
		d = d.Round(2)
	}
	return Amount{d: d}, nil
}

// plainDecimal reports whether s is digits with at most one decimal point.
func plainDecimal(s string) bool {
	digits, dot := 0, false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

// String renders amounts built from whole dollars without cents ("$2,340",
// "$0") and amounts carrying a fractional part with two decimals ("$129.99",
// "$234.00").
func (a Amount) String() string {
	d := a.d
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	var whole, frac string
	if d.Exponent() >= 0 {
		whole = d.StringFixed(0)
	} else {
		whole, frac, _ = strings.Cut(d.StringFixed(2), ".")
	}

	out := sign + "$" + groupThousands(whole)
	if frac != "" {
		out += "." + frac
	}
	return out
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, string(b))
		}
		s = n.String()
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
