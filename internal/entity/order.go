package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine carries a price snapshot: Total was fixed at creation time as
// product price x quantity and is never recomputed, so later price changes
// do not rewrite history.
type OrderLine struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductTitle string          `json:"productTitle"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
}

// Order is immutable after creation. The order total is never stored; it is
// always derived from the line snapshots.
type Order struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customerId"`
	CustomerName string      `json:"customerName,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Lines        []OrderLine `json:"lines"`
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Total)
	}
	return total
}

// Items is the summed quantity across all lines.
func (o *Order) Items() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}
