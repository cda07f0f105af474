package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/service"
	"github.com/Eng-Domz/Book-Store/pkg/middleware"
)

func setupOrderRouter(orders *mockOrderRepository) *chi.Mux {
	svc := service.NewOrderService(orders, testLogger())
	handler := NewOrderHandler(svc, testLogger())

	return customerRouter(func(r chi.Router) {
		r.Get("/orders", handler.ListOrders)
	})
}

func sampleOrders() []domain.Order {
	newer := time.Now().UTC()
	older := newer.Add(-48 * time.Hour)
	return []domain.Order{
		{
			ID:         "550e8400-e29b-41d4-a716-446655440010",
			CustomerID: testCustomerID,
			Items: []domain.OrderItem{
				{OrderID: "550e8400-e29b-41d4-a716-446655440010", ISBN: testISBN, Title: "Clean Code", UnitPrice: decimal.RequireFromString("37.50"), Quantity: 2},
			},
			TotalPrice: decimal.RequireFromString("75.00"),
			OrderDate:  newer,
		},
		{
			ID:         "550e8400-e29b-41d4-a716-446655440011",
			CustomerID: testCustomerID,
			Items: []domain.OrderItem{
				{OrderID: "550e8400-e29b-41d4-a716-446655440011", ISBN: "9780201616224", Title: "The Pragmatic Programmer", UnitPrice: decimal.RequireFromString("42.00"), Quantity: 1},
			},
			TotalPrice: decimal.RequireFromString("42.00"),
			OrderDate:  older,
		},
	}
}

func TestListOrders_Success(t *testing.T) {
	orders := new(mockOrderRepository)
	router := setupOrderRouter(orders)

	orders.On("ListByCustomer", mock.Anything, testCustomerID).Return(sampleOrders(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(middleware.CustomerHeader, testCustomerID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)

	first, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440010", first["id"])

	items, ok := first["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)

	line, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "37.5", line["price_at_purchase"])

	orders.AssertExpectations(t)
}

func TestListOrders_Empty(t *testing.T) {
	orders := new(mockOrderRepository)
	router := setupOrderRouter(orders)

	orders.On("ListByCustomer", mock.Anything, testCustomerID).Return([]domain.Order{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(middleware.CustomerHeader, testCustomerID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	orders.AssertExpectations(t)
}

func TestListOrders_MissingIdentity(t *testing.T) {
	orders := new(mockOrderRepository)
	router := setupOrderRouter(orders)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	orders.AssertNotCalled(t, "ListByCustomer", mock.Anything, mock.Anything)
}
