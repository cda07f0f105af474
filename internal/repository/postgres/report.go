package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// ReportRepository implements repository.ReportRepository using PostgreSQL.
// Every query is read-only and tolerates zero matching rows.
type ReportRepository struct {
	pool database.DBTX
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool database.DBTX) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// SalesLastMonth sums order totals with order_date in [now - 1 month, now).
func (r *ReportRepository) SalesLastMonth(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE order_date >= NOW() - INTERVAL '1 month' AND order_date < NOW()`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales last month: %w", err)
	}
	return total, nil
}

// SalesOnDate sums order totals for the given calendar day.
func (r *ReportRepository) SalesOnDate(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE order_date::date = $1::date`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, day).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales on date: %w", err)
	}
	return total, nil
}

// TopCustomers returns the top 5 customers by total spend over the trailing
// 3 months. Ties break on customer id so the ordering is stable.
func (r *ReportRepository) TopCustomers(ctx context.Context) ([]domain.CustomerSales, error) {
	query := `
		SELECT customer_id, COUNT(*) AS order_count, SUM(total_price) AS total_spent
		FROM orders
		WHERE order_date >= NOW() - INTERVAL '3 months'
		GROUP BY customer_id
		ORDER BY total_spent DESC, customer_id ASC
		LIMIT 5`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.CustomerSales{}
	for rows.Next() {
		var c domain.CustomerSales
		if err := rows.Scan(&c.CustomerID, &c.OrderCount, &c.TotalSpent); err != nil {
			return nil, fmt.Errorf("scan top customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top customers: %w", err)
	}

	return customers, nil
}

// TopSellingBooks returns the top 10 books by copies sold over the trailing
// 3 months. Ties break on ISBN.
func (r *ReportRepository) TopSellingBooks(ctx context.Context) ([]domain.BookSales, error) {
	query := `
		SELECT oi.isbn, b.title, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN books b ON b.isbn = oi.isbn
		WHERE o.order_date >= NOW() - INTERVAL '3 months'
		GROUP BY oi.isbn, b.title
		ORDER BY total_sold DESC, oi.isbn ASC
		LIMIT 10`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("top selling books: %w", err)
	}
	defer rows.Close()

	books := []domain.BookSales{}
	for rows.Next() {
		var b domain.BookSales
		if err := rows.Scan(&b.ISBN, &b.Title, &b.TotalSold); err != nil {
			return nil, fmt.Errorf("scan top selling book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top selling books: %w", err)
	}

	return books, nil
}

// RestockCount counts publisher orders for the ISBN regardless of status.
func (r *ReportRepository) RestockCount(ctx context.Context, isbn string) (int, error) {
	query := `SELECT COUNT(*) FROM publisher_orders WHERE isbn = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, isbn).Scan(&count); err != nil {
		return 0, fmt.Errorf("restock count: %w", err)
	}
	return count, nil
}
