package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/techstore/techstore-go/internal/middleware"
)

// RouterConfig carries the cross-cutting settings the route table needs.
type RouterConfig struct {
	JWTSecret     string
	AuthRateLimit float64
	AuthBurst     int
}

// NewRouter assembles the API route table. Cart routes and /api/auth/me sit
// behind the bearer-token gate; auth endpoints behind the per-IP rate limiter.
func NewRouter(auth *AuthHandler, catalog *CatalogHandler, cart *CartHandler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/products", catalog.HandleListProducts)
	r.Get("/api/products/{id}", catalog.HandleGetProduct)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthBurst))
		r.Post("/api/auth/register", auth.HandleRegister)
		r.Post("/api/auth/login", auth.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/auth/me", auth.HandleMe)

		r.Get("/api/cart", cart.HandleGetCart)
		r.Post("/api/cart/add", cart.HandleAddToCart)
		r.Put("/api/cart/{productId}", cart.HandleUpdateQuantity)
		r.Delete("/api/cart/{productId}", cart.HandleRemoveFromCart)
		r.Delete("/api/cart", cart.HandleClearCart)
	})

	return r
}
