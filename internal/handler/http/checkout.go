package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/internal/service"
	"github.com/Eng-Domz/Book-Store/pkg/httputil"
	"github.com/Eng-Domz/Book-Store/pkg/middleware"
	"github.com/Eng-Domz/Book-Store/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// CheckoutRequest is the JSON request body for a checkout.
type CheckoutRequest struct {
	Card CardRequest `json:"card" validate:"required"`
}

// CardRequest carries the payment card fields. Only the number and expiry
// are required; the holder name is recorded when supplied. Shape validation
// beyond presence happens in the domain so the checkout and the API agree
// on what a valid card is.
type CardRequest struct {
	HolderName string `json:"holder_name,omitempty"`
	Number     string `json:"number" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
}

// Checkout handles POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CheckoutRequest
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

	customerID := middleware.CustomerIDFromContext(r.Context())

	card := domain.CardDetails{
		HolderName: req.Card.HolderName,
		Number:     req.Card.Number,
		Expiry:     req.Card.Expiry,
	}

	result, err := h.service.Checkout(r.Context(), customerID, card)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}
