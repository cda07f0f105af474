package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart represents a customer's open shopping cart. A customer has at most one
// cart at a time; checkout deletes it in the same transaction as the order
// insert.
type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem is one (cart, isbn) line. Title and Price are joined from the
// catalog at read time; they are not stored on the cart row.
type CartItem struct {
	ISBN     string          `json:"isbn"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns the price of this line at current catalog prices.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total returns the cart total at current catalog prices.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
