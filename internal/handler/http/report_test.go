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
	apperrors "github.com/Eng-Domz/Book-Store/pkg/errors"
)

func setupReportRouter(reports *mockReportRepository, cache *mockReportCache) *chi.Mux {
	svc := service.NewReportService(reports, cache, 5*time.Minute, testLogger())
	handler := NewReportHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/admin/reports", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Get("/sales/last-month", handler.SalesLastMonth)
		r.Get("/sales", handler.SalesOnDate)
		r.Get("/top-customers", handler.TopCustomers)
		r.Get("/top-books", handler.TopSellingBooks)
		r.Get("/restocks/{isbn}/count", handler.RestockCount)
	})
	return r
}

// cacheMiss configures the cache mock to fall through to the repository.
func cacheMiss(cache *mockReportCache) {
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestSalesLastMonth_Success(t *testing.T) {
	reports := new(mockReportRepository)
	cache := new(mockReportCache)
	router := setupReportRouter(reports, cache)

	cacheMiss(cache)
	reports.On("SalesLastMonth", mock.Anything).Return(decimal.RequireFromString("1234.50"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/sales/last-month", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1234.5", data["total"])

	reports.AssertExpectations(t)
}

func TestSalesOnDate_Success(t *testing.T) {
	reports := new(mockReportRepository)
	cache := new(mockReportCache)
	router := setupReportRouter(reports, cache)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	cacheMiss(cache)
	reports.On("SalesOnDate", mock.Anything, day).Return(decimal.RequireFromString("88.25"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/sales?date=2025-03-14", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "88.25", data["total"])
	assert.Equal(t, "2025-03-14", data["date"])

	reports.AssertExpectations(t)
}

func TestSalesOnDate_BadDate(t *testing.T) {
	reports := new(mockReportRepository)
	cache := new(mockReportCache)
	router := setupReportRouter(reports, cache)

	for _, target := range []string{
		"/api/v1/admin/reports/sales",
		"/api/v1/admin/reports/sales?date=14-03-2025",
		"/api/v1/admin/reports/sales?date=notadate",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
	}

	reports.AssertNotCalled(t, "SalesOnDate", mock.Anything, mock.Anything)
}

func TestTopCustomers_Success(t *testing.T) {
	reports := new(mockReportRepository)
	cache := new(mockReportCache)
	router := setupReportRouter(reports, cache)

	cacheMiss(cache)
	reports.On("TopCustomers", mock.Anything).Return([]domain.CustomerSales{
		{CustomerID: "cust-1", OrderCount: 4, TotalSpent: decimal.RequireFromString("310.00")},
		{CustomerID: "cust-2", OrderCount: 2, TotalSpent: decimal.RequireFromString("120.00")},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/top-customers", nil)
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
	assert.Equal(t, "cust-1", first["customer_id"])

	reports.AssertExpectations(t)
}

func TestTopSellingBooks_Success(t *testing.T) {
	reports := new(mockReportRepository)
	cache := new(mockReportCache)
	router := setupReportRouter(reports, cache)

	cacheMiss(cache)
	reports.On("TopSellingBooks", mock.Anything).Return([]domain.BookSales{
		{ISBN: testISBN, Title: "Clean Code", TotalSold: 42},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/top-books", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	reports.AssertExpectations(t)
}

func TestRestockCount_Success(t *testing.T) {
	reports := new(mockReportRepository)
	cache := new(mockReportCache)
	router := setupReportRouter(reports, cache)

	cacheMiss(cache)
	reports.On("RestockCount", mock.Anything, testISBN).Return(3, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/restocks/"+testISBN+"/count", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, testISBN, data["isbn"])
	assert.Equal(t, float64(3), data["count"])

	reports.AssertExpectations(t)
}
