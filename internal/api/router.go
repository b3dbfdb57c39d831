package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/metrics"
	"github.com/example/storefront/internal/session"
)

type RouterConfig struct {
	Handlers          *Handlers
	AdminHandlers     *AdminHandlers
	Sessions          *session.Store
	Signer            *auth.TokenSigner
	CookieSecure      bool
	AdminPasswordHash string
	RequestTimeout    time.Duration
	Log               *logrus.Entry
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	// Operational
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Storefront
	r.Group(func(r chi.Router) {
		r.Use(middleware.Sessions(cfg.Sessions, cfg.Signer, cfg.CookieSecure, cfg.Log))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/products", http.StatusFound)
		})
		r.Get("/products", cfg.Handlers.GetProducts)

		r.Get("/cart", cfg.Handlers.GetCart)
		r.Get("/cart/add", cfg.Handlers.AddToCart)
		r.Post("/cart/add", cfg.Handlers.AddToCart)
		r.Get("/cart/update", cfg.Handlers.UpdateCart)
		r.Post("/cart/update", cfg.Handlers.UpdateCart)

		r.Get("/checkout", cfg.Handlers.ReviewCheckout)
		r.Post("/checkout", cfg.Handlers.PlaceOrder)
		r.Get("/confirmation", cfg.Handlers.Confirmation)
	})

	// Admin
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminPasswordHash))
		r.Get("/orders", cfg.AdminHandlers.ListOrders)
		r.Get("/orders/{id}", cfg.AdminHandlers.GetOrder)
	})

	return r
}
