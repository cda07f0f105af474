package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/event"
	"github.com/Eng-Domz/Book-Store/pkg/database"
	pkgkafka "github.com/Eng-Domz/Book-Store/pkg/kafka"
)

// --- Mock repositories ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) GetByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) AddItem(ctx context.Context, customerID, isbn string, qty int) error {
	args := m.Called(ctx, customerID, isbn, qty)
	return args.Error(0)
}

func (m *mockCartRepository) UpdateItemQuantity(ctx context.Context, customerID, isbn string, qty int) error {
	args := m.Called(ctx, customerID, isbn, qty)
	return args.Error(0)
}

func (m *mockCartRepository) RemoveItem(ctx context.Context, customerID, isbn string) error {
	args := m.Called(ctx, customerID, isbn)
	return args.Error(0)
}

func (m *mockCartRepository) LinesForCheckout(ctx context.Context, q database.Querier, customerID string) ([]domain.CheckoutLine, error) {
	args := m.Called(ctx, q, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckoutLine), args.Error(1)
}

func (m *mockCartRepository) DeleteCart(ctx context.Context, q database.Querier, customerID string) error {
	args := m.Called(ctx, q, customerID)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Insert(ctx context.Context, q database.Querier, order *domain.Order) error {
	args := m.Called(ctx, q, order)
	return args.Error(0)
}

func (m *mockOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *mockBookRepository) ListLowStock(ctx context.Context, page, perPage int) ([]domain.Book, int, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Book), args.Int(1), args.Error(2)
}

type mockPublisherOrderRepository struct {
	mock.Mock
}

func (m *mockPublisherOrderRepository) Create(ctx context.Context, po *domain.PublisherOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *mockPublisherOrderRepository) GetForUpdate(ctx context.Context, q database.Querier, id string) (*domain.PublisherOrder, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublisherOrder), args.Error(1)
}

func (m *mockPublisherOrderRepository) MarkConfirmed(ctx context.Context, q database.Querier, id string, confirmedAt time.Time) error {
	args := m.Called(ctx, q, id, confirmedAt)
	return args.Error(0)
}

func (m *mockPublisherOrderRepository) List(ctx context.Context, page, perPage int) ([]domain.PublisherOrder, int, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PublisherOrder), args.Int(1), args.Error(2)
}

type mockReportRepository struct {
	mock.Mock
}

func (m *mockReportRepository) SalesLastMonth(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockReportRepository) SalesOnDate(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockReportRepository) TopCustomers(ctx context.Context) ([]domain.CustomerSales, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerSales), args.Error(1)
}

func (m *mockReportRepository) TopSellingBooks(ctx context.Context) ([]domain.BookSales, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookSales), args.Error(1)
}

func (m *mockReportRepository) RestockCount(ctx context.Context, isbn string) (int, error) {
	args := m.Called(ctx, isbn)
	return args.Int(0), args.Error(1)
}

type mockReportCache struct {
	mock.Mock
}

func (m *mockReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, payload, ttl)
	return args.Error(0)
}

func (m *mockReportCache) Invalidate(ctx context.Context, keys ...string) error {
	callArgs := make([]any, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

type mockStockGuard struct {
	mock.Mock
}

func (m *mockStockGuard) ReserveAndDecrement(ctx context.Context, q database.Querier, isbn string, qty int) (int, error) {
	args := m.Called(ctx, q, isbn, qty)
	return args.Int(0), args.Error(1)
}

func (m *mockStockGuard) Increment(ctx context.Context, q database.Querier, isbn string, qty int) (int, error) {
	args := m.Called(ctx, q, isbn, qty)
	return args.Int(0), args.Error(1)
}

func (m *mockStockGuard) ClampToFloor(ctx context.Context, q database.Querier, isbn string, newQty int) error {
	args := m.Called(ctx, q, isbn, newQty)
	return args.Error(0)
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer builds a producer pointed at a dead broker; publish
// failures are logged and never fail the operation under test.
func newTestProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}
