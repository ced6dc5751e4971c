package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Arhonist/nextjs-dashboard/auth"
	"github.com/Arhonist/nextjs-dashboard/internal/cache"
	"github.com/Arhonist/nextjs-dashboard/internal/config"
	"github.com/Arhonist/nextjs-dashboard/internal/handlers"
	"github.com/Arhonist/nextjs-dashboard/internal/metrics"
	"github.com/Arhonist/nextjs-dashboard/internal/middleware"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
	limiter *middleware.RateLimiter

	health    *handlers.HealthHandler
	auth      *handlers.AuthHandler
	dashboard *handlers.DashboardHandler
	invoices  *handlers.InvoiceHandler
	customers *handlers.CustomerHandler
}

// NewApp wires services, handlers and middleware around conn.
func NewApp(conn *gorm.DB, cfg *config.Config, log *logrus.Logger) *App {
	renders := cache.New(cfg.App.CacheTTL)
	queries := services.NewQueryService(conn, log)
	invoiceSvc := services.NewInvoiceService(conn, renders, log)
	customerSvc := services.NewCustomerService(conn, renders, log)

	app := &App{
		mux:       http.NewServeMux(),
		limiter:   middleware.NewRateLimiter(cfg.App.LoginRate, cfg.App.LoginBurst, log),
		health:    handlers.NewHealthHandler(conn, log),
		auth:      handlers.NewAuthHandler(conn, log),
		dashboard: handlers.NewDashboardHandler(queries, log),
		invoices:  handlers.NewInvoiceHandler(queries, invoiceSvc, renders, log),
		customers: handlers.NewCustomerHandler(queries, customerSvc, renders, log),
	}

	auth.SetUserVerifier(func(ctx context.Context, uid string) bool {
		var count int64
		if err := conn.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Count(&count).Error; err != nil {
			log.WithError(err).Warn("session user lookup failed")
			return false
		}
		return count > 0
	})

	app.setupRoutes()
	// InstrumentHandler sits right above the mux so it sees the matched pattern.
	app.handler = middleware.Recover(log)(
		middleware.Logging(log)(
			auth.Middleware(
				metrics.InstrumentHandler(app.mux))))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// Public routes
	a.mux.HandleFunc("GET /health", a.health.Live)
	a.mux.HandleFunc("GET /healthz", a.health.Ready)
	a.mux.Handle("GET /metrics", metrics.Handler())
	a.mux.HandleFunc("GET /login", a.auth.LoginForm)
	a.mux.Handle("POST /login", a.limiter.Handler(http.HandlerFunc(a.auth.Login)))
	a.mux.HandleFunc("POST /logout", a.auth.Logout)
	a.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Authenticated routes
	a.mux.Handle("GET /dashboard", a.requireAuth(a.dashboard.Overview))

	a.mux.Handle("GET /dashboard/invoices", a.requireAuth(a.invoices.List))
	a.mux.Handle("POST /dashboard/invoices", a.requireAuth(a.invoices.Create))
	a.mux.Handle("GET /dashboard/invoices/create", a.requireAuth(a.invoices.New))
	a.mux.Handle("GET /dashboard/invoices/{id}/edit", a.requireAuth(a.invoices.Edit))
	a.mux.Handle("POST /dashboard/invoices/{id}", a.requireAuth(a.invoices.Update))
	a.mux.Handle("POST /dashboard/invoices/{id}/delete", a.requireAuth(a.invoices.Delete))

	a.mux.Handle("GET /dashboard/customers", a.requireAuth(a.customers.List))
	a.mux.Handle("POST /dashboard/customers", a.requireAuth(a.customers.Create))
}

func (a *App) requireAuth(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}
