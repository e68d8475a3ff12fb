// Package order exposes the read-only order history.
package order

import (
	"context"

	"DashboardPro/internal/money"
)

type Status string

const (
	Delivered  Status = "Delivered"
	Processing Status = "Processing"
	Shipped    Status = "Shipped"
	Cancelled  Status = "Cancelled"
)

// Badge returns the badge variant used to render the status.
func (s Status) Badge() string {
	switch s {
	case Delivered:
		return "success"
	case Processing:
		return "warning"
	case Shipped:
		return "info"
	case Cancelled:
		return "danger"
	default:
		return "default"
	}
}

type Order struct {
	ID       string       `json:"id"`
	Customer string       `json:"customer"`
	Date     string       `json:"date"`
	Amount   money.Amount `json:"amount"`
	Status   Status       `json:"status"`
	Items    int          `json:"items"`
}

type Store interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, bool, error)
}

func Seed() []Order {
	return []Order{
		{ID: "#12345", Customer: "Alice Johnson", Date: "2024-01-15", Amount: money.Cents(23400), Status: Delivered, Items: 3},
		{ID: "#12346", Customer: "Bob Smith", Date: "2024-01-14", Amount: money.Cents(18750), Status: Processing, Items: 2},
		{ID: "#12347", Customer: "Carol White", Date: "2024-01-13", Amount: money.Cents(54200), Status: Delivered, Items: 5},
		{ID: "#12348", Customer: "David Brown", Date: "2024-01-12", Amount: money.Cents(9500), Status: Cancelled, Items: 1},
		{ID: "#12349", Customer: "Emma Davis", Date: "2024-01-11", Amount: money.Cents(31200), Status: Shipped, Items: 4},
	}
}
