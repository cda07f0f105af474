package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Eng-Domz/Book-Store/internal/service"
	"github.com/Eng-Domz/Book-Store/pkg/httputil"
	"github.com/Eng-Domz/Book-Store/pkg/validator"
)

// AdminHandler handles HTTP requests for the admin surface: publisher
// orders, stock edits, and low-stock listings.
type AdminHandler struct {
	restock *service.RestockService
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(restock *service.RestockService, catalog *service.CatalogService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		restock: restock,
		catalog: catalog,
		logger:  logger,
	}
}

// RestockRequest is the JSON request body for placing a publisher order.
type RestockRequest struct {
	ISBN     string `json:"isbn" validate:"required,numeric"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// SetStockRequest is the JSON request body for an absolute stock edit.
type SetStockRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CreateRestock handles POST /api/v1/admin/restocks
func (h *AdminHandler) CreateRestock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	po, err := h.restock.Request(r.Context(), req.ISBN, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: po})
}

// ConfirmRestock handles POST /api/v1/admin/restocks/{orderId}/confirm
func (h *AdminHandler) ConfirmRestock(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	po, err := h.restock.Confirm(r.Context(), orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: po})
}

// ListRestocks handles GET /api/v1/admin/restocks
func (h *AdminHandler) ListRestocks(w http.ResponseWriter, r *http.Request) {
	page, perPage, ok := paginationParams(w, r)
	if !ok {
		return
	}

	orders, total, err := h.restock.List(r.Context(), page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(orders, total, page, perPage))
}

// GetBook handles GET /api/v1/books/{isbn}
func (h *AdminHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")

	book, err := h.catalog.GetBook(r.Context(), isbn)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: book})
}

// SetStock handles PUT /api/v1/admin/books/{isbn}/stock
func (h *AdminHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	isbn := chi.URLParam(r, "isbn")

	var req SetStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	book, err := h.catalog.SetStock(r.Context(), isbn, *req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: book})
}

// ListLowStock handles GET /api/v1/admin/books/low-stock
func (h *AdminHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	page, perPage, ok := paginationParams(w, r)
	if !ok {
		return
	}

	books, total, err := h.catalog.ListLowStock(r.Context(), page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(books, total, page, perPage))
}

// paginationParams parses page/per_page query parameters, writing a 400 and
// returning ok=false on invalid input.
func paginationParams(w http.ResponseWriter, r *http.Request) (page, perPage int, ok bool) {
	page, perPage = 1, 20

	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a valid positive integer"},
			})
			return 0, 0, false
		}
		page = p
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		pp, err := strconv.Atoi(v)
		if err != nil || pp < 1 || pp > 100 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "per_page must be a valid integer between 1 and 100"},
			})
			return 0, 0, false
		}
		perPage = pp
	}

	return page, perPage, true
}
