package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
	apperrors "github.com/Eng-Domz/Book-Store/pkg/errors"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
// Carts live in the same database as orders so checkout can clear the cart
// in the transaction that writes the order.
type CartRepository struct {
	pool database.DBTX
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool database.DBTX) *CartRepository {
	return &CartRepository{pool: pool}
}

// GetByCustomer retrieves the customer's cart with items joined to the
// catalog. A customer without a cart gets an empty cart.
func (r *CartRepository) GetByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart := &domain.Cart{CustomerID: customerID, Items: []domain.CartItem{}}

	query := `
		SELECT c.id, c.created_at, c.updated_at
		FROM carts c
		WHERE c.customer_id = $1`

	err := r.pool.QueryRow(ctx, query, customerID).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	itemsQuery := `
		SELECT ci.isbn, b.title, b.price, ci.quantity
		FROM cart_items ci
		JOIN books b ON b.isbn = ci.isbn
		WHERE ci.cart_id = $1
		ORDER BY ci.isbn`

	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ISBN, &item.Title, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return cart, nil
}

// AddItem adds qty copies of the ISBN to the customer's cart, creating the
// cart row if the customer has none. Re-adding an ISBN increases its
// quantity.
func (r *CartRepository) AddItem(ctx context.Context, customerID, isbn string, qty int) error {
	cartQuery := `
		INSERT INTO carts (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (customer_id) DO UPDATE SET updated_at = NOW()
		RETURNING id`

	var cartID string
	if err := r.pool.QueryRow(ctx, cartQuery, uuid.New().String(), customerID).Scan(&cartID); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}

	itemQuery := `
		INSERT INTO cart_items (cart_id, isbn, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, isbn) DO UPDATE SET quantity = cart_items.quantity + $3`

	if _, err := r.pool.Exec(ctx, itemQuery, cartID, isbn, qty); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// UpdateItemQuantity sets the quantity for an ISBN already in the cart.
func (r *CartRepository) UpdateItemQuantity(ctx context.Context, customerID, isbn string, qty int) error {
	query := `
		UPDATE cart_items SET quantity = $3
		WHERE isbn = $2
		  AND cart_id = (SELECT id FROM carts WHERE customer_id = $1)`

	tag, err := r.pool.Exec(ctx, query, customerID, isbn, qty)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RemoveItem removes an ISBN from the cart.
func (r *CartRepository) RemoveItem(ctx context.Context, customerID, isbn string) error {
	query := `
		DELETE FROM cart_items
		WHERE isbn = $2
		  AND cart_id = (SELECT id FROM carts WHERE customer_id = $1)`

	tag, err := r.pool.Exec(ctx, query, customerID, isbn)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LinesForCheckout loads the cart lines joined with catalog price and
// reorder threshold, ordered by ISBN so concurrent checkouts lock book rows
// in the same order.
func (r *CartRepository) LinesForCheckout(ctx context.Context, q database.Querier, customerID string) ([]domain.CheckoutLine, error) {
	query := `
		SELECT ci.isbn, b.title, b.price, ci.quantity, b.reorder_threshold
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN books b ON b.isbn = ci.isbn
		WHERE c.customer_id = $1
		ORDER BY ci.isbn`

	rows, err := q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("load checkout lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CheckoutLine
	for rows.Next() {
		var line domain.CheckoutLine
		if err := rows.Scan(&line.ISBN, &line.Title, &line.UnitPrice, &line.Quantity, &line.ReorderThreshold); err != nil {
			return nil, fmt.Errorf("scan checkout line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkout lines: %w", err)
	}

	return lines, nil
}

// DeleteCart removes the customer's cart and its items.
func (r *CartRepository) DeleteCart(ctx context.Context, q database.Querier, customerID string) error {
	itemsQuery := `
		DELETE FROM cart_items
		WHERE cart_id = (SELECT id FROM carts WHERE customer_id = $1)`

	if _, err := q.Exec(ctx, itemsQuery, customerID); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}

	if _, err := q.Exec(ctx, `DELETE FROM carts WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
