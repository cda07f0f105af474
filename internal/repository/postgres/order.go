package postgres

import (
	"context"
	"fmt"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Orders are append-only; there are no update or delete paths.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Insert writes the order and its items on the caller's transaction.
func (r *OrderRepository) Insert(ctx context.Context, q database.Querier, order *domain.Order) error {
	orderQuery := `
		INSERT INTO orders (id, customer_id, order_date, total_price)
		VALUES ($1, $2, $3, $4)`

	if _, err := q.Exec(ctx, orderQuery, order.ID, order.CustomerID, order.OrderDate, order.TotalPrice); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, isbn, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4)`

	for i := range order.Items {
		item := &order.Items[i]
		if _, err := q.Exec(ctx, itemQuery, order.ID, item.ISBN, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("insert order item %s: %w", item.ISBN, err)
		}
	}

	return nil
}

// ListByCustomer returns the customer's orders newest first with their
// items. Items are loaded in one batch query keyed by order id.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	ordersQuery := `
		SELECT id, customer_id, order_date, total_price
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC, id DESC`

	rows, err := r.pool.Query(ctx, ordersQuery, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders  []domain.Order
		index   = make(map[string]int)
		orderID string
	)

	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []domain.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsQuery := `
		SELECT oi.order_id, oi.isbn, b.title, oi.price_at_purchase, oi.quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN books b ON b.isbn = oi.isbn
		WHERE o.customer_id = $1
		ORDER BY oi.order_id, oi.isbn`

	itemRows, err := r.pool.Query(ctx, itemsQuery, customerID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ISBN, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.OrderID = orderID
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return orders, nil
}
