package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/event"
	"github.com/Eng-Domz/Book-Store/internal/repository"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// lowStockAlert is collected inside the checkout transaction and published
// only after commit.
type lowStockAlert struct {
	isbn      string
	title     string
	remaining int
	threshold int
}

// CheckoutService turns a customer's cart into an order. The whole checkout
// runs in one database transaction: stock decrements, the order insert, and
// the cart deletion commit together or not at all.
type CheckoutService struct {
	db       database.DBTX
	carts    repository.CartRepository
	orders   repository.OrderRepository
	guard    repository.StockGuard
	producer *event.Producer
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	db database.DBTX,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	guard repository.StockGuard,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		db:       db,
		carts:    carts,
		orders:   orders,
		guard:    guard,
		producer: producer,
		logger:   logger,
	}
}

// Checkout validates the card, then atomically decrements stock for every
// cart line, writes the order with price snapshots, and deletes the cart.
// The first line that cannot be satisfied aborts the whole transaction, so
// earlier decrements are rolled back and the cart is untouched.
func (s *CheckoutService) Checkout(ctx context.Context, customerID string, card domain.CardDetails) (*domain.CheckoutResult, error) {
	// Card validation happens before any store access.
	if err := card.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lines, err := s.carts.LinesForCheckout(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &domain.EmptyCartError{CustomerID: customerID}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		OrderDate:  now,
		TotalPrice: decimal.Zero,
	}

	var alerts []lowStockAlert
	for _, line := range lines {
		before, err := s.guard.ReserveAndDecrement(ctx, tx, line.ISBN, line.Quantity)
		if err != nil {
			return nil, err
		}

		remaining := before - line.Quantity
		if remaining <= line.ReorderThreshold {
			alerts = append(alerts, lowStockAlert{
				isbn:      line.ISBN,
				title:     line.Title,
				remaining: remaining,
				threshold: line.ReorderThreshold,
			})
		}

		item := domain.OrderItem{
			OrderID:   order.ID,
			ISBN:      line.ISBN,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
		order.Items = append(order.Items, item)
		order.TotalPrice = order.TotalPrice.Add(item.LineTotal())
	}

	if err := s.orders.Insert(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := s.carts.DeleteCart(ctx, tx, customerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit checkout transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("order_id", order.ID),
		slog.String("customer_id", customerID),
		slog.String("total", order.TotalPrice.String()),
		slog.Int("items", len(order.Items)),
	)

	s.publishCheckoutEvents(ctx, order, alerts)

	return &domain.CheckoutResult{OrderID: order.ID, Total: order.TotalPrice}, nil
}

// publishCheckoutEvents emits order.placed and any low-stock alerts after
// the transaction has committed. Publish failures are logged only.
func (s *CheckoutService) publishCheckoutEvents(ctx context.Context, order *domain.Order, alerts []lowStockAlert) {
	err := s.producer.PublishOrderPlaced(ctx, event.OrderPlacedData{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.TotalPrice,
		ItemCount:  len(order.Items),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	for _, alert := range alerts {
		err := s.producer.PublishBookLowStock(ctx, event.BookLowStockData{
			ISBN:             alert.isbn,
			Title:            alert.title,
			StockQuantity:    alert.remaining,
			ReorderThreshold: alert.threshold,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to publish book.low_stock event",
				slog.String("isbn", alert.isbn),
				slog.String("error", err.Error()),
			)
		}
	}
}
