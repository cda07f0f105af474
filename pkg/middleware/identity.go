package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKeyType string

const customerIDKey contextKeyType = "customer_id"

// CustomerHeader is the request header carrying the caller's customer ID.
// An upstream gateway is expected to authenticate the caller and forward
// the resolved identity in this header.
const CustomerHeader = "X-User-ID"

// Identity extracts the customer ID from the X-User-ID header and stores it
// in the request context. Requests without a customer ID are rejected with
// 401 so that cart and order handlers can assume an identified caller.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID := r.Header.Get(CustomerHeader)
			if customerID == "" {
				writeIdentityError(w, "missing customer identity")
				return
			}

			ctx := context.WithValue(r.Context(), customerIDKey, customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerIDFromContext extracts the customer ID from the request context.
func CustomerIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(customerIDKey).(string); ok {
		return id
	}
	return ""
}

func writeIdentityError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
