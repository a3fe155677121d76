package entity

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
}

// ProductRef is the slice of a product an order line snapshots at creation
// time: enough to price the line and render its title later.
type ProductRef struct {
	ID    string
	Title string
	Price decimal.Decimal
}
