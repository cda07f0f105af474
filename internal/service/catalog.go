package service

import (
	"context"
	"log/slog"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/repository"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

// CatalogService provides read access to the catalog and the admin stock
// edit. Catalog metadata is otherwise immutable through this service.
type CatalogService struct {
	db     database.DBTX
	books  repository.BookRepository
	guard  repository.StockGuard
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(db database.DBTX, books repository.BookRepository, guard repository.StockGuard, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		db:     db,
		books:  books,
		guard:  guard,
		logger: logger,
	}
}

// GetBook retrieves a book by ISBN.
func (s *CatalogService) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.books.GetByISBN(ctx, isbn)
}

// ListLowStock returns books at or below their reorder threshold.
func (s *CatalogService) ListLowStock(ctx context.Context, page, perPage int) ([]domain.Book, int, error) {
	return s.books.ListLowStock(ctx, page, perPage)
}

// SetStock sets a book's absolute stock quantity. The write goes through
// the stock guard so a negative quantity is rejected before the store is
// touched.
func (s *CatalogService) SetStock(ctx context.Context, isbn string, qty int) (*domain.Book, error) {
	if err := s.guard.ClampToFloor(ctx, s.db, isbn, qty); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stock quantity set",
		slog.String("isbn", isbn),
		slog.Int("quantity", qty),
	)

	return s.books.GetByISBN(ctx, isbn)
}
