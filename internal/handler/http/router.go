package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Eng-Domz/Book-Store/internal/service"
	"github.com/Eng-Domz/Book-Store/pkg/health"
	"github.com/Eng-Domz/Book-Store/pkg/middleware"
)

// RouterConfig bundles the services and infrastructure the router needs.
type RouterConfig struct {
	Checkout *service.CheckoutService
	Cart     *service.CartService
	Orders   *service.OrderService
	Restock  *service.RestockService
	Catalog  *service.CatalogService
	Reports  *service.ReportService
	Health   *health.Handler
	Logger   *slog.Logger
}

// NewRouter creates a chi router with all bookstore routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("bookstore"))
	r.Use(middleware.Tracing("bookstore"))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Cart, cfg.Logger)
	orderHandler := NewOrderHandler(cfg.Orders, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.Restock, cfg.Catalog, cfg.Logger)
	reportHandler := NewReportHandler(cfg.Reports, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Catalog lookups need no customer identity.
		r.Get("/books/{isbn}", adminHandler.GetBook)

		// Customer routes require an identity forwarded by the gateway.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity())

			r.Post("/checkout", checkoutHandler.Checkout)
			r.Get("/orders", orderHandler.ListOrders)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{isbn}", cartHandler.UpdateItem)
				r.Delete("/items/{isbn}", cartHandler.RemoveItem)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/restocks", func(r chi.Router) {
				r.Post("/", adminHandler.CreateRestock)
				r.Get("/", adminHandler.ListRestocks)
				r.Post("/{orderId}/confirm", adminHandler.ConfirmRestock)
			})

			r.Route("/books", func(r chi.Router) {
				r.Get("/low-stock", adminHandler.ListLowStock)
				r.Put("/{isbn}/stock", adminHandler.SetStock)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/sales/last-month", reportHandler.SalesLastMonth)
				r.Get("/sales", reportHandler.SalesOnDate)
				r.Get("/top-customers", reportHandler.TopCustomers)
				r.Get("/top-books", reportHandler.TopSellingBooks)
				r.Get("/restocks/{isbn}/count", reportHandler.RestockCount)
			})
		})
	})

	return r
}
