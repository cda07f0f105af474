package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a completed customer purchase. Orders are append-only:
// once written they are never updated or deleted.
type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderDate  time.Time       `json:"order_date"`
}

// OrderItem is a line item in an order. UnitPrice is the price at the moment
// of purchase, so later catalog price changes never affect past orders.
type OrderItem struct {
	OrderID   string          `json:"order_id"`
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"price_at_purchase"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns the total price for this line item.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
