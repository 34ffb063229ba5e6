// Package api wires the chi router for the backend HTTP surface.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creamcroissant/foodpos/internal/api/handler"
	"github.com/creamcroissant/foodpos/internal/api/middleware"
	"github.com/creamcroissant/foodpos/internal/config"
	"github.com/creamcroissant/foodpos/internal/service"
)

// Services carries the service dependencies the router needs.
type Services struct {
	Menu   service.MenuService
	Order  service.OrderService
	Auth   service.AuthService
	System service.SystemService
}

// NewRouter builds the full API router.
func NewRouter(logger *slog.Logger, services Services, metricsCfg config.MetricsConfig) http.Handler {
	if services.Menu == nil {
		panic("router requires MenuService")
	}
	if services.Order == nil {
		panic("router requires OrderService")
	}
	if services.Auth == nil {
		panic("router requires AuthService")
	}
	if services.System == nil {
		panic("router requires SystemService")
	}

	r := chi.NewRouter()

	var metrics *middleware.Metrics
	mCfg := middleware.DefaultMetricsConfig()
	if metricsCfg.Enabled {
		metrics = middleware.NewMetrics(mCfg)
	}

	r.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
	)
	if metrics != nil {
		r.Use(metrics.Middleware(mCfg))
	}
	r.Use(
		middleware.CORS(middleware.DefaultCORSConfig()),
		middleware.BodyLimit(1<<20),
		// Polling clients tick every few seconds each; the window is
		// sized so a full house of boards and trackers stays under it.
		middleware.RateLimit(middleware.RateLimitConfig{
			Limit:     600,
			Window:    time.Minute,
			SkipPaths: []string{"/healthz", "/metrics"},
		}),
		middleware.RequestLogger(middleware.LoggingConfig{
			Logger:        logger,
			SlowThreshold: 500 * time.Millisecond,
			SkipPaths:     []string{"/healthz", "/metrics"},
		}),
		chiMiddleware.Recoverer,
		chiMiddleware.Compress(5),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if metricsCfg.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	menuHandler := handler.NewMenuHandler(services.Menu)
	orderHandler := handler.NewOrderHandler(services.Order)
	adminHandler := handler.NewAdminHandler(services.Auth, services.Menu, services.System)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", menuHandler.ListCategories)
		r.Get("/menu-items", menuHandler.ListItems)
		r.Get("/menu-items/{id}", menuHandler.GetItem)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Post("/", orderHandler.Create)
			r.Get("/{id}", orderHandler.Get)
			r.Patch("/{id}/status", orderHandler.UpdateStatus)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminGuard(services.Auth))

				r.Get("/system", adminHandler.SystemStatus)

				r.Get("/categories", adminHandler.ListCategories)
				r.Post("/categories", adminHandler.CreateCategory)
				r.Put("/categories/{id}", adminHandler.UpdateCategory)
				r.Delete("/categories/{id}", adminHandler.DeleteCategory)

				r.Get("/menu-items", adminHandler.ListItems)
				r.Post("/menu-items", adminHandler.CreateItem)
				r.Put("/menu-items/{id}", adminHandler.UpdateItem)
				r.Delete("/menu-items/{id}", adminHandler.DeleteItem)
			})
		})
	})

	return r
}
