package domain

import (
	"github.com/shopspring/decimal"
)

// CustomerSales is one row of the top-customers report.
type CustomerSales struct {
	CustomerID string          `json:"customer_id"`
	OrderCount int             `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// BookSales is one row of the top-selling-books report.
type BookSales struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	TotalSold int    `json:"total_sold"`
}
