package http

import (
	"net/http"
	"time"

	"github.com/fjod/go_checkout/internal/shipping"
	"github.com/fjod/go_checkout/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts the checkout API under /api/v1
func NewRouter(s store.Store, newCart CartFactory, publisher shipping.Publisher, requestTimeout time.Duration, log *zap.Logger) http.Handler {
	productHandler := NewProductHandler(s)
	customerHandler := NewCustomerHandler(s)
	cartHandler := NewCartHandler(s, newCart, publisher, requestTimeout, log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerHandler.Create)
			r.Get("/{id}", customerHandler.Get)
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", cartHandler.Create)
			r.Get("/{id}", cartHandler.Get)
			r.Post("/{id}/items", cartHandler.AddItem)
			r.Post("/{id}/checkout", cartHandler.Checkout)
		})
	})

	return r
}
