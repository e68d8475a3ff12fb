// Package catalog holds the in-memory product collection.
package catalog

import (
	"context"
	"strconv"
	"strings"

	"DashboardPro/internal/apperr"
	"DashboardPro/internal/money"
)

type Product struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock"`
	Sales    int          `json:"sales"`
}

// Form is the "add product" input as typed into the form. Every field is
// required; price and stock must also parse.
type Form struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    string `json:"stock"`
}

func (f Form) normalized() Form {
	return Form{
		Name:     strings.TrimSpace(f.Name),
		Category: strings.TrimSpace(f.Category),
		Price:    strings.TrimSpace(f.Price),
		Stock:    strings.TrimSpace(f.Stock),
	}
}

// Product validates the form and returns a new, id-less product with no sales.
func (f Form) Product() (Product, error) {
	f = f.normalized()

	switch {
	case f.Name == "":
		return Product{}, apperr.Required("name")
	case f.Category == "":
		return Product{}, apperr.Required("category")
	case f.Price == "":
		return Product{}, apperr.Required("price")
	case f.Stock == "":
		return Product{}, apperr.Required("stock")
	}

	price, err := money.Parse(f.Price)
	if err != nil {
		return Product{}, apperr.Invalid("price", err.Error())
	}
	stock, err := strconv.Atoi(f.Stock)
	if err != nil || stock < 0 {
		return Product{}, apperr.Invalid("stock", "must be a whole number of units")
	}

	return Product{
		Name:     f.Name,
		Category: f.Category,
		Price:    price,
		Stock:    stock,
		Sales:    0,
	}, nil
}

type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id int64) (Product, bool, error)
}

func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Wireless Headphones", Category: "Electronics", Price: money.Cents(12999), Stock: 45, Sales: 234},
		{ID: 2, Name: "Smart Watch", Category: "Electronics", Price: money.Cents(29999), Stock: 23, Sales: 189},
		{ID: 3, Name: "Laptop Stand", Category: "Accessories", Price: money.Cents(4999), Stock: 67, Sales: 445},
		{ID: 4, Name: "USB-C Cable", Category: "Accessories", Price: money.Cents(1999), Stock: 156, Sales: 892},
	}
}
