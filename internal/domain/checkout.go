package domain

import (
	"github.com/shopspring/decimal"
)

// CheckoutLine is a cart line loaded inside the checkout transaction, joined
// with the catalog fields the checkout needs. Lines are always loaded in
// ascending ISBN order so concurrent checkouts lock book rows in the same
// order.
type CheckoutLine struct {
	ISBN             string
	Title            string
	UnitPrice        decimal.Decimal
	Quantity         int
	ReorderThreshold int
}

// CheckoutResult reports a committed checkout back to the caller.
type CheckoutResult struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}
