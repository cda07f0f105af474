package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/event"
	"github.com/Eng-Domz/Book-Store/internal/repository"
	"github.com/Eng-Domz/Book-Store/pkg/database"
	apperrors "github.com/Eng-Domz/Book-Store/pkg/errors"
)

// RestockService manages publisher orders: placing restock requests and
// confirming deliveries. Confirmation is the only path that increases stock.
type RestockService struct {
	db       database.DBTX
	orders   repository.PublisherOrderRepository
	books    repository.BookRepository
	guard    repository.StockGuard
	cache    repository.ReportCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewRestockService creates a new restock service.
func NewRestockService(
	db database.DBTX,
	orders repository.PublisherOrderRepository,
	books repository.BookRepository,
	guard repository.StockGuard,
	cache repository.ReportCache,
	producer *event.Producer,
	logger *slog.Logger,
) *RestockService {
	return &RestockService{
		db:       db,
		orders:   orders,
		books:    books,
		guard:    guard,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// Request places a Pending publisher order for qty copies of the ISBN with
// the book's publisher.
func (s *RestockService) Request(ctx context.Context, isbn string, qty int) (*domain.PublisherOrder, error) {
	if qty < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	book, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	po := &domain.PublisherOrder{
		ID:        uuid.New().String(),
		ISBN:      book.ISBN,
		Publisher: book.Publisher,
		Quantity:  qty,
		Status:    domain.PublisherOrderStatusPending,
		OrderDate: time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, po); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "publisher order placed",
		slog.String("publisher_order_id", po.ID),
		slog.String("isbn", po.ISBN),
		slog.Int("quantity", po.Quantity),
	)

	s.invalidateRestockCount(ctx, isbn)

	return po, nil
}

// Confirm marks the publisher order Confirmed and increments the book's
// stock in the same transaction. Confirming an already confirmed order is a
// no-op error; the stock is never incremented twice.
func (s *RestockService) Confirm(ctx context.Context, publisherOrderID string) (*domain.PublisherOrder, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin restock transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	po, err := s.orders.GetForUpdate(ctx, tx, publisherOrderID)
	if err != nil {
		return nil, err
	}
	if !po.IsPending() {
		return nil, &domain.AlreadyConfirmedError{OrderID: po.ID}
	}

	confirmedAt := time.Now().UTC()
	if err := s.orders.MarkConfirmed(ctx, tx, po.ID, confirmedAt); err != nil {
		return nil, err
	}

	newStock, err := s.guard.Increment(ctx, tx, po.ISBN, po.Quantity)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit restock transaction: %w", err)
	}

	po.Status = domain.PublisherOrderStatusConfirmed
	po.ConfirmedAt = &confirmedAt

	s.logger.InfoContext(ctx, "publisher order confirmed",
		slog.String("publisher_order_id", po.ID),
		slog.String("isbn", po.ISBN),
		slog.Int("quantity", po.Quantity),
		slog.Int("new_stock", newStock),
	)

	err = s.producer.PublishRestockConfirmed(ctx, event.RestockConfirmedData{
		PublisherOrderID: po.ID,
		ISBN:             po.ISBN,
		Quantity:         po.Quantity,
		NewStock:         newStock,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish restock.confirmed event",
			slog.String("publisher_order_id", po.ID),
			slog.String("error", err.Error()),
		)
	}

	return po, nil
}

// List returns publisher orders joined with book titles, newest first.
func (s *RestockService) List(ctx context.Context, page, perPage int) ([]domain.PublisherOrder, int, error) {
	return s.orders.List(ctx, page, perPage)
}

// invalidateRestockCount drops the cached restock count for the ISBN. Cache
// errors are logged only.
func (s *RestockService) invalidateRestockCount(ctx context.Context, isbn string) {
	if err := s.cache.Invalidate(ctx, restockCountKey(isbn)); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate restock count cache",
			slog.String("isbn", isbn),
			slog.String("error", err.Error()),
		)
	}
}
