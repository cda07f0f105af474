package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book categories.
const (
	CategoryScience   = "Science"
	CategoryArt       = "Art"
	CategoryReligion  = "Religion"
	CategoryHistory   = "History"
	CategoryGeography = "Geography"
)

// Book represents a title in the catalog together with its stock ledger row.
type Book struct {
	ISBN             string          `json:"isbn"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	PublicationYear  int             `json:"publication_year"`
	Price            decimal.Decimal `json:"price"`
	Publisher        string          `json:"publisher"`
	StockQuantity    int             `json:"stock_quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the book's stock has fallen to or below its
// reorder threshold.
func (b *Book) IsLowStock() bool {
	return b.StockQuantity <= b.ReorderThreshold
}

// ValidCategories returns the set of valid book categories.
func ValidCategories() []string {
	return []string{CategoryScience, CategoryArt, CategoryReligion, CategoryHistory, CategoryGeography}
}

// IsValidCategory checks whether the given category is a valid book category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}
