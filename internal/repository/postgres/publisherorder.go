package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// PublisherOrderRepository implements repository.PublisherOrderRepository
// using PostgreSQL.
type PublisherOrderRepository struct {
	pool database.DBTX
}

// NewPublisherOrderRepository creates a new PostgreSQL-backed publisher
// order repository.
func NewPublisherOrderRepository(pool database.DBTX) *PublisherOrderRepository {
	return &PublisherOrderRepository{pool: pool}
}

// Create inserts a new Pending publisher order.
func (r *PublisherOrderRepository) Create(ctx context.Context, po *domain.PublisherOrder) error {
	query := `
		INSERT INTO publisher_orders (id, isbn, publisher, quantity, order_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, po.ID, po.ISBN, po.Publisher, po.Quantity, po.OrderDate, po.Status)
	if err != nil {
		return fmt.Errorf("insert publisher order: %w", err)
	}
	return nil
}

// GetForUpdate loads the publisher order with FOR UPDATE so concurrent
// confirmations of the same order serialize on the row lock.
func (r *PublisherOrderRepository) GetForUpdate(ctx context.Context, q database.Querier, id string) (*domain.PublisherOrder, error) {
	query := `
		SELECT id, isbn, publisher, quantity, order_date, status, confirmed_at
		FROM publisher_orders
		WHERE id = $1
		FOR UPDATE`

	var po domain.PublisherOrder
	err := q.QueryRow(ctx, query, id).Scan(
		&po.ID,
		&po.ISBN,
		&po.Publisher,
		&po.Quantity,
		&po.OrderDate,
		&po.Status,
		&po.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.PublisherOrderNotFoundError{OrderID: id}
		}
		return nil, fmt.Errorf("get publisher order for update: %w", err)
	}

	return &po, nil
}

// MarkConfirmed sets the order status to Confirmed on the caller's
// transaction.
func (r *PublisherOrderRepository) MarkConfirmed(ctx context.Context, q database.Querier, id string, confirmedAt time.Time) error {
	query := `
		UPDATE publisher_orders
		SET status = $2, confirmed_at = $3
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, domain.PublisherOrderStatusConfirmed, confirmedAt)
	if err != nil {
		return fmt.Errorf("confirm publisher order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.PublisherOrderNotFoundError{OrderID: id}
	}
	return nil
}

// List returns publisher orders joined with book titles, newest first.
func (r *PublisherOrderRepository) List(ctx context.Context, page, perPage int) ([]domain.PublisherOrder, int, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}

	offset := (page - 1) * perPage

	query := `
		SELECT po.id, po.isbn, b.title, po.publisher, po.quantity,
		       po.order_date, po.status, po.confirmed_at,
		       count(*) OVER() AS total_count
		FROM publisher_orders po
		JOIN books b ON b.isbn = po.isbn
		ORDER BY po.order_date DESC, po.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list publisher orders: %w", err)
	}
	defer rows.Close()

	var (
		orders     []domain.PublisherOrder
		totalCount int
	)

	for rows.Next() {
		var po domain.PublisherOrder
		if err := rows.Scan(
			&po.ID,
			&po.ISBN,
			&po.Title,
			&po.Publisher,
			&po.Quantity,
			&po.OrderDate,
			&po.Status,
			&po.ConfirmedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan publisher order: %w", err)
		}
		orders = append(orders, po)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate publisher orders: %w", err)
	}

	return orders, totalCount, nil
}
