package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Eng-Domz/Book-Store/internal/service"
	"github.com/Eng-Domz/Book-Store/pkg/httputil"
)

// ReportHandler handles HTTP requests for the reporting endpoints.
type ReportHandler struct {
	service *service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new report HTTP handler.
func NewReportHandler(svc *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		logger:  logger,
	}
}

// salesResponse is the JSON payload for the sales totals.
type salesResponse struct {
	Total string `json:"total"`
	Date  string `json:"date,omitempty"`
}

// SalesLastMonth handles GET /api/v1/admin/reports/sales/last-month
func (h *ReportHandler) SalesLastMonth(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.SalesLastMonth(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: salesResponse{Total: total.String()}})
}

// SalesOnDate handles GET /api/v1/admin/reports/sales?date=YYYY-MM-DD
func (h *ReportHandler) SalesOnDate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "date must be in YYYY-MM-DD format"},
		})
		return
	}

	total, err := h.service.SalesOnDate(r.Context(), day)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: salesResponse{
		Total: total.String(),
		Date:  day.Format("2006-01-02"),
	}})
}

// TopCustomers handles GET /api/v1/admin/reports/top-customers
func (h *ReportHandler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.TopCustomers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: customers})
}

// TopSellingBooks handles GET /api/v1/admin/reports/top-books
func (h *ReportHandler) TopSellingBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.TopSellingBooks(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: books})
}

// restockCountResponse is the JSON payload for the restock count.
type restockCountResponse struct {
	ISBN  string `json:"isbn"`
	Count int    `json:"count"`
}

// RestockCount handles GET /api/v1/admin/reports/restocks/{isbn}/count
func (h *ReportHandler) RestockCount(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")

	count, err := h.service.RestockCount(r.Context(), isbn)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: restockCountResponse{ISBN: isbn, Count: count}})
}
