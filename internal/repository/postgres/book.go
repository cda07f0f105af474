package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// BookRepository implements repository.BookRepository using PostgreSQL.
type BookRepository struct {
	pool database.DBTX
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool database.DBTX) *BookRepository {
	return &BookRepository{pool: pool}
}

// GetByISBN retrieves a book by its ISBN.
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	query := `
		SELECT isbn, title, category, publication_year, price, publisher,
		       stock_quantity, reorder_threshold, created_at, updated_at
		FROM books
		WHERE isbn = $1`

	var b domain.Book
	err := r.pool.QueryRow(ctx, query, isbn).Scan(
		&b.ISBN,
		&b.Title,
		&b.Category,
		&b.PublicationYear,
		&b.Price,
		&b.Publisher,
		&b.StockQuantity,
		&b.ReorderThreshold,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.UnknownBookError{ISBN: isbn}
		}
		return nil, fmt.Errorf("get book by isbn: %w", err)
	}

	return &b, nil
}

// ListLowStock returns books with stock at or below their reorder threshold,
// lowest stock first.
func (r *BookRepository) ListLowStock(ctx context.Context, page, perPage int) ([]domain.Book, int, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}

	offset := (page - 1) * perPage

	query := `
		SELECT isbn, title, category, publication_year, price, publisher,
		       stock_quantity, reorder_threshold, created_at, updated_at,
		       count(*) OVER() AS total_count
		FROM books
		WHERE stock_quantity <= reorder_threshold
		ORDER BY stock_quantity ASC, isbn ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var (
		books      []domain.Book
		totalCount int
	)

	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(
			&b.ISBN,
			&b.Title,
			&b.Category,
			&b.PublicationYear,
			&b.Price,
			&b.Publisher,
			&b.StockQuantity,
			&b.ReorderThreshold,
			&b.CreatedAt,
			&b.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan low stock row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate low stock rows: %w", err)
	}

	return books, totalCount, nil
}
