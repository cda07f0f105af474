package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/service"
	"github.com/Eng-Domz/Book-Store/pkg/middleware"
)

type checkoutFixture struct {
	pool   pgxmock.PgxPoolIface
	carts  *mockCartRepository
	orders *mockOrderRepository
	guard  *mockStockGuard
	router *chi.Mux
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	carts := new(mockCartRepository)
	orders := new(mockOrderRepository)
	guard := new(mockStockGuard)

	svc := service.NewCheckoutService(pool, carts, orders, guard, testEventProducer(), testLogger())
	handler := NewCheckoutHandler(svc, testLogger())

	router := customerRouter(func(r chi.Router) {
		r.Post("/checkout", handler.Checkout)
	})

	return &checkoutFixture{pool: pool, carts: carts, orders: orders, guard: guard, router: router}
}

func validCheckoutJSON() []byte {
	body := CheckoutRequest{
		Card: CardRequest{
			HolderName: "Jane Roe",
			Number:     "4111111111111111",
			Expiry:     "12/27",
		},
	}
	b, _ := json.Marshal(body)
	return b
}

func checkoutRequest(body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CustomerHeader, testCustomerID)
	return req
}

func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture(t)

	lines := []domain.CheckoutLine{
		{ISBN: testISBN, Title: "Clean Code", UnitPrice: decimal.RequireFromString("37.50"), Quantity: 2, ReorderThreshold: 3},
	}

	f.pool.ExpectBegin()
	f.carts.On("LinesForCheckout", mock.Anything, mock.Anything, testCustomerID).Return(lines, nil)
	f.guard.On("ReserveAndDecrement", mock.Anything, mock.Anything, testISBN, 2).Return(12, nil)
	f.orders.On("Insert", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	f.carts.On("DeleteCart", mock.Anything, mock.Anything, testCustomerID).Return(nil)
	f.pool.ExpectCommit()
	f.pool.ExpectRollback()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, checkoutRequest(validCheckoutJSON()))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["order_id"])
	assert.Equal(t, "75", data["total"])

	f.carts.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.guard.AssertExpectations(t)
	require.NoError(t, f.pool.ExpectationsWereMet())
}

func TestCheckout_MissingIdentity(t *testing.T) {
	f := newCheckoutFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(validCheckoutJSON()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	f.carts.AssertNotCalled(t, "LinesForCheckout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_InvalidJSON(t *testing.T) {
	f := newCheckoutFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, checkoutRequest([]byte(`{broken`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "invalid request body")
}

func TestCheckout_MissingCardFields(t *testing.T) {
	f := newCheckoutFixture(t)

	body, _ := json.Marshal(CheckoutRequest{Card: CardRequest{HolderName: "Jane Roe"}})

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, checkoutRequest(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.NotNil(t, resp.Error.Fields)
}

func TestCheckout_NoHolderName_Succeeds(t *testing.T) {
	f := newCheckoutFixture(t)

	lines := []domain.CheckoutLine{
		{ISBN: testISBN, Title: "Clean Code", UnitPrice: decimal.RequireFromString("37.50"), Quantity: 1, ReorderThreshold: 3},
	}

	f.pool.ExpectBegin()
	f.carts.On("LinesForCheckout", mock.Anything, mock.Anything, testCustomerID).Return(lines, nil)
	f.guard.On("ReserveAndDecrement", mock.Anything, mock.Anything, testISBN, 1).Return(11, nil)
	f.orders.On("Insert", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	f.carts.On("DeleteCart", mock.Anything, mock.Anything, testCustomerID).Return(nil)
	f.pool.ExpectCommit()
	f.pool.ExpectRollback()

	body, _ := json.Marshal(CheckoutRequest{
		Card: CardRequest{Number: "4111111111111111", Expiry: "12/27"},
	})

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, checkoutRequest(body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	require.NoError(t, f.pool.ExpectationsWereMet())
}

func TestCheckout_RejectedCardNumber(t *testing.T) {
	f := newCheckoutFixture(t)

	body, _ := json.Marshal(CheckoutRequest{
		Card: CardRequest{HolderName: "Jane Roe", Number: "1234", Expiry: "12/27"},
	})

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, checkoutRequest(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	f.carts.AssertNotCalled(t, "LinesForCheckout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	f.pool.ExpectBegin()
	f.carts.On("LinesForCheckout", mock.Anything, mock.Anything, testCustomerID).Return([]domain.CheckoutLine{}, nil)
	f.pool.ExpectRollback()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, checkoutRequest(validCheckoutJSON()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	require.NoError(t, f.pool.ExpectationsWereMet())
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)

	lines := []domain.CheckoutLine{
		{ISBN: testISBN, Title: "Clean Code", UnitPrice: decimal.RequireFromString("37.50"), Quantity: 5, ReorderThreshold: 3},
	}

	f.pool.ExpectBegin()
	f.carts.On("LinesForCheckout", mock.Anything, mock.Anything, testCustomerID).Return(lines, nil)
	f.guard.On("ReserveAndDecrement", mock.Anything, mock.Anything, testISBN, 5).
		Return(0, &domain.InsufficientStockError{ISBN: testISBN, Requested: 5, Available: 2})
	f.pool.ExpectRollback()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, checkoutRequest(validCheckoutJSON()))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
	f.orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	require.NoError(t, f.pool.ExpectationsWereMet())
}
