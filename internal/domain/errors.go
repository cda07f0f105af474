package domain

import (
	"fmt"

	pkgerrors "github.com/Eng-Domz/Book-Store/pkg/errors"
)

// InsufficientStockError is returned when a checkout asks for more copies of
// a book than the ledger holds. The transaction carrying the request is
// rolled back wholesale.
type InsufficientStockError struct {
	ISBN      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for isbn %s: requested %d, available %d", e.ISBN, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return pkgerrors.ErrConflict }

// UnknownBookError is returned when an operation references an ISBN that is
// not in the catalog.
type UnknownBookError struct {
	ISBN string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book: isbn %s", e.ISBN)
}

func (e *UnknownBookError) Unwrap() error { return pkgerrors.ErrNotFound }

// NegativeStockError is returned when an admin stock edit would set a
// negative quantity. The request is rejected before touching the store.
type NegativeStockError struct {
	ISBN     string
	Quantity int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock quantity for isbn %s cannot be negative: %d", e.ISBN, e.Quantity)
}

func (e *NegativeStockError) Unwrap() error { return pkgerrors.ErrInvalidInput }

// EmptyCartError is returned when a checkout finds no cart, or a cart with
// no items, for the customer.
type EmptyCartError struct {
	CustomerID string
}

func (e *EmptyCartError) Error() string {
	return fmt.Sprintf("cart is empty for customer %s", e.CustomerID)
}

func (e *EmptyCartError) Unwrap() error { return pkgerrors.ErrInvalidInput }

// InvalidPaymentMethodError is returned when the submitted card details fail
// shape validation.
type InvalidPaymentMethodError struct {
	Reason string
}

func (e *InvalidPaymentMethodError) Error() string {
	return "invalid payment method: " + e.Reason
}

func (e *InvalidPaymentMethodError) Unwrap() error { return pkgerrors.ErrInvalidInput }

// PublisherOrderNotFoundError is returned when a restock confirmation names
// a publisher order that does not exist.
type PublisherOrderNotFoundError struct {
	OrderID string
}

func (e *PublisherOrderNotFoundError) Error() string {
	return fmt.Sprintf("publisher order not found: %s", e.OrderID)
}

func (e *PublisherOrderNotFoundError) Unwrap() error { return pkgerrors.ErrNotFound }

// AlreadyConfirmedError is returned when a restock confirmation targets a
// publisher order that was already confirmed. The stock is not incremented
// again.
type AlreadyConfirmedError struct {
	OrderID string
}

func (e *AlreadyConfirmedError) Error() string {
	return fmt.Sprintf("publisher order already confirmed: %s", e.OrderID)
}

func (e *AlreadyConfirmedError) Unwrap() error { return pkgerrors.ErrConflict }
