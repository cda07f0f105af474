package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/repository"
)

// Report cache keys.
const (
	keySalesLastMonth = "sales:last-month"
	keyTopCustomers   = "top-customers"
	keyTopBooks       = "top-books"
)

func salesOnDateKey(day time.Time) string {
	return "sales:day:" + day.Format("2006-01-02")
}

func restockCountKey(isbn string) string {
	return "restock-count:" + isbn
}

// ReportService fronts the report queries with a short-TTL cache. A cache
// failure on either side degrades to the database read; reports never fail
// because the cache is down.
type ReportService struct {
	reports repository.ReportRepository
	cache   repository.ReportCache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewReportService creates a new report service.
func NewReportService(reports repository.ReportRepository, cache repository.ReportCache, ttl time.Duration, logger *slog.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// SalesLastMonth returns total sales for the trailing month.
func (s *ReportService) SalesLastMonth(ctx context.Context) (decimal.Decimal, error) {
	return cachedReport(ctx, s, keySalesLastMonth, s.reports.SalesLastMonth)
}

// SalesOnDate returns total sales for the given calendar day.
func (s *ReportService) SalesOnDate(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	return cachedReport(ctx, s, salesOnDateKey(day), func(ctx context.Context) (decimal.Decimal, error) {
		return s.reports.SalesOnDate(ctx, day)
	})
}

// TopCustomers returns the top 5 customers by spend, trailing 3 months.
func (s *ReportService) TopCustomers(ctx context.Context) ([]domain.CustomerSales, error) {
	return cachedReport(ctx, s, keyTopCustomers, s.reports.TopCustomers)
}

// TopSellingBooks returns the top 10 books by copies sold, trailing 3 months.
func (s *ReportService) TopSellingBooks(ctx context.Context) ([]domain.BookSales, error) {
	return cachedReport(ctx, s, keyTopBooks, s.reports.TopSellingBooks)
}

// RestockCount counts publisher orders for the ISBN, any status.
func (s *ReportService) RestockCount(ctx context.Context, isbn string) (int, error) {
	return cachedReport(ctx, s, restockCountKey(isbn), func(ctx context.Context) (int, error) {
		return s.reports.RestockCount(ctx, isbn)
	})
}

// cachedReport serves the report from cache when possible, falling back to
// the database and repopulating the cache on a miss.
func cachedReport[T any](ctx context.Context, s *ReportService, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if payload, err := s.cache.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal(payload, &value); err == nil {
			return value, nil
		}
		s.logger.WarnContext(ctx, "discarding malformed cached report",
			slog.String("key", key),
		)
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if payload, err := json.Marshal(value); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "failed to cache report",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	return value, nil
}
