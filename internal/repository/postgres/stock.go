package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// StockGuard owns every mutation of books.stock_quantity. Nothing else in
// the repository layer writes that column; the schema-level CHECK constraint
// is the last line of defense behind it.
type StockGuard struct{}

// NewStockGuard creates the stock guard.
func NewStockGuard() *StockGuard {
	return &StockGuard{}
}

// ReserveAndDecrement atomically decrements stock for the ISBN if at least
// qty copies are available, returning the pre-decrement quantity. The
// conditional UPDATE takes the row lock, so racing checkouts for the same
// book serialize here and the stock can never go negative.
func (g *StockGuard) ReserveAndDecrement(ctx context.Context, q database.Querier, isbn string, qty int) (int, error) {
	query := `
		UPDATE books
		SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE isbn = $1 AND stock_quantity >= $2
		RETURNING stock_quantity + $2`

	var before int
	err := q.QueryRow(ctx, query, isbn, qty).Scan(&before)
	if err == nil {
		return before, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("reserve stock: %w", err)
	}

	// No row matched: either the book is unknown or the stock is short.
	// Re-read to tell the two apart.
	var available int
	err = q.QueryRow(ctx, `SELECT stock_quantity FROM books WHERE isbn = $1`, isbn).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &domain.UnknownBookError{ISBN: isbn}
	}
	if err != nil {
		return 0, fmt.Errorf("read stock: %w", err)
	}
	return 0, &domain.InsufficientStockError{ISBN: isbn, Requested: qty, Available: available}
}

// Increment unconditionally adds qty copies and returns the new quantity.
func (g *StockGuard) Increment(ctx context.Context, q database.Querier, isbn string, qty int) (int, error) {
	query := `
		UPDATE books
		SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE isbn = $1
		RETURNING stock_quantity`

	var after int
	err := q.QueryRow(ctx, query, isbn, qty).Scan(&after)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &domain.UnknownBookError{ISBN: isbn}
	}
	if err != nil {
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return after, nil
}

// ClampToFloor sets the absolute stock quantity. A negative quantity is
// rejected before the store is touched.
func (g *StockGuard) ClampToFloor(ctx context.Context, q database.Querier, isbn string, newQty int) error {
	if newQty < 0 {
		return &domain.NegativeStockError{ISBN: isbn, Quantity: newQty}
	}

	query := `
		UPDATE books
		SET stock_quantity = $2, updated_at = NOW()
		WHERE isbn = $1`

	tag, err := q.Exec(ctx, query, isbn, newQty)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.UnknownBookError{ISBN: isbn}
	}
	return nil
}
