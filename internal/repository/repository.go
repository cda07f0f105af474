package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// StockGuard is the single authority over books.stock_quantity. Its methods
// take an explicit database.Querier so orchestrators can run them inside
// their own transaction; both *pgxpool.Pool and pgx.Tx satisfy Querier.
type StockGuard interface {
	// ReserveAndDecrement atomically decrements stock for the ISBN if at
	// least qty copies are available. Returns the pre-decrement quantity.
	// Fails with domain.InsufficientStockError or domain.UnknownBookError
	// without mutating the row.
	ReserveAndDecrement(ctx context.Context, q database.Querier, isbn string, qty int) (int, error)

	// Increment unconditionally adds qty copies and returns the new quantity.
	// Fails with domain.UnknownBookError if the ISBN is not in the catalog.
	Increment(ctx context.Context, q database.Querier, isbn string, qty int) (int, error)

	// ClampToFloor sets the absolute stock quantity. Fails with
	// domain.NegativeStockError before touching the store if newQty < 0.
	ClampToFloor(ctx context.Context, q database.Querier, isbn string, newQty int) error
}

// BookRepository provides read access to the catalog.
type BookRepository interface {
	// GetByISBN retrieves a book, or domain.UnknownBookError if absent.
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)

	// ListLowStock returns books with stock_quantity <= reorder_threshold,
	// lowest stock first, with the total match count for pagination.
	ListLowStock(ctx context.Context, page, perPage int) ([]domain.Book, int, error)
}

// CartRepository manages customer carts.
type CartRepository interface {
	// GetByCustomer retrieves the customer's cart with items joined to the
	// catalog. A customer without a cart gets an empty cart, not an error.
	GetByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)

	// AddItem adds qty copies of the ISBN to the customer's cart, creating
	// the cart if needed. Adding an ISBN already in the cart increases its
	// quantity.
	AddItem(ctx context.Context, customerID, isbn string, qty int) error

	// UpdateItemQuantity sets the quantity for an ISBN already in the cart.
	UpdateItemQuantity(ctx context.Context, customerID, isbn string, qty int) error

	// RemoveItem removes an ISBN from the cart.
	RemoveItem(ctx context.Context, customerID, isbn string) error

	// LinesForCheckout loads the cart lines joined with catalog price and
	// reorder threshold, ordered by ISBN. Runs on the caller's transaction.
	LinesForCheckout(ctx context.Context, q database.Querier, customerID string) ([]domain.CheckoutLine, error)

	// DeleteCart removes the customer's cart and its items. Runs on the
	// caller's transaction.
	DeleteCart(ctx context.Context, q database.Querier, customerID string) error
}

// OrderRepository persists and reads customer orders.
type OrderRepository interface {
	// Insert writes the order and its items. Runs on the caller's
	// transaction.
	Insert(ctx context.Context, q database.Querier, order *domain.Order) error

	// ListByCustomer returns the customer's orders newest first, items
	// included.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

// PublisherOrderRepository manages restock orders sent to publishers.
type PublisherOrderRepository interface {
	// Create inserts a new Pending publisher order.
	Create(ctx context.Context, po *domain.PublisherOrder) error

	// GetForUpdate loads the publisher order with a row lock, serializing
	// concurrent confirmations. Runs on the caller's transaction. Absent
	// order yields domain.PublisherOrderNotFoundError.
	GetForUpdate(ctx context.Context, q database.Querier, id string) (*domain.PublisherOrder, error)

	// MarkConfirmed sets the order status to Confirmed. Runs on the
	// caller's transaction.
	MarkConfirmed(ctx context.Context, q database.Querier, id string, confirmedAt time.Time) error

	// List returns publisher orders joined with book titles, newest first,
	// with the total count for pagination.
	List(ctx context.Context, page, perPage int) ([]domain.PublisherOrder, int, error)
}

// ReportRepository computes read-only sales aggregates. Every method
// tolerates zero matching rows.
type ReportRepository interface {
	// SalesLastMonth sums order totals with order_date in [now-1 month, now).
	SalesLastMonth(ctx context.Context) (decimal.Decimal, error)

	// SalesOnDate sums order totals for the given calendar day.
	SalesOnDate(ctx context.Context, day time.Time) (decimal.Decimal, error)

	// TopCustomers returns the top 5 customers by total spend over the
	// trailing 3 months, ties broken by customer id.
	TopCustomers(ctx context.Context) ([]domain.CustomerSales, error)

	// TopSellingBooks returns the top 10 books by copies sold over the
	// trailing 3 months, ties broken by ISBN.
	TopSellingBooks(ctx context.Context) ([]domain.BookSales, error)

	// RestockCount counts publisher orders for the ISBN, any status.
	RestockCount(ctx context.Context, isbn string) (int, error)
}

// ReportCache is a short-TTL cache in front of the report queries. A cache
// failure is never fatal; callers fall back to the database.
type ReportCache interface {
	// Get returns the cached payload for key, or pkg/errors.ErrNotFound on
	// a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the payload under key with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Invalidate drops the cached payloads for the given keys.
	Invalidate(ctx context.Context, keys ...string) error
}
