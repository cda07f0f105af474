package service

import (
	"context"
	"log/slog"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/repository"
	apperrors "github.com/Eng-Domz/Book-Store/pkg/errors"
)

// CartService implements the business logic for cart operations.
type CartService struct {
	carts  repository.CartRepository
	books  repository.BookRepository
	logger *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, books repository.BookRepository, logger *slog.Logger) *CartService {
	return &CartService{
		carts:  carts,
		books:  books,
		logger: logger,
	}
}

// Get retrieves the customer's cart. A customer without a cart gets an
// empty one.
func (s *CartService) Get(ctx context.Context, customerID string) (*domain.Cart, error) {
	return s.carts.GetByCustomer(ctx, customerID)
}

// AddItem adds qty copies of the ISBN to the customer's cart. The ISBN must
// exist in the catalog.
func (s *CartService) AddItem(ctx context.Context, customerID, isbn string, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	// Reject unknown ISBNs before touching the cart.
	if _, err := s.books.GetByISBN(ctx, isbn); err != nil {
		return nil, err
	}

	if err := s.carts.AddItem(ctx, customerID, isbn, qty); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "cart item added",
		slog.String("customer_id", customerID),
		slog.String("isbn", isbn),
		slog.Int("quantity", qty),
	)

	return s.carts.GetByCustomer(ctx, customerID)
}

// UpdateItem sets the quantity for an ISBN already in the cart.
func (s *CartService) UpdateItem(ctx context.Context, customerID, isbn string, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	if err := s.carts.UpdateItemQuantity(ctx, customerID, isbn, qty); err != nil {
		return nil, err
	}

	return s.carts.GetByCustomer(ctx, customerID)
}

// RemoveItem removes an ISBN from the cart.
func (s *CartService) RemoveItem(ctx context.Context, customerID, isbn string) (*domain.Cart, error) {
	if err := s.carts.RemoveItem(ctx, customerID, isbn); err != nil {
		return nil, err
	}

	return s.carts.GetByCustomer(ctx, customerID)
}
