// Package server wires the HTTP surface: router, middleware chain, and the
// listener with graceful shutdown.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	healthhandler "paperbase/internal/health/handler"
	"paperbase/internal/logs"
	"paperbase/internal/server/handler"
	"paperbase/internal/server/middleware"
	"paperbase/internal/session"
)

// Deps bundles everything the router serves.
type Deps struct {
	Auth      *handler.AuthHandler
	Companies *handler.CompanyHandler
	Staff     *handler.StaffHandler
	Documents *handler.DocumentHandler
	Health    *healthhandler.Handler
	Sessions  *session.Manager
	// UploadsDir is served read-only under /uploads/.
	UploadsDir string
}

// NewRouter builds the full route table with the middleware chain: request
// id, panic recovery, access log, tracing, session claims, route guard.
func NewRouter(deps Deps) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Tracing,
		middleware.Session(deps.Sessions),
		middleware.Guard,
	)

	r.HandleFunc("/healthz", deps.Health.Healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", deps.Health.Readyz).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/sign-in", deps.Auth.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/sign-out", deps.Auth.SignOut).Methods(http.MethodPost)

	api.HandleFunc("/companies", deps.Companies.List).Methods(http.MethodGet)
	api.HandleFunc("/companies", deps.Companies.Create).Methods(http.MethodPost)
	api.HandleFunc("/companies/{id}", deps.Companies.Update).Methods(http.MethodPut)
	api.HandleFunc("/companies/{id}", deps.Companies.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/staff", deps.Staff.List).Methods(http.MethodGet)
	api.HandleFunc("/staff", deps.Staff.Create).Methods(http.MethodPost)
	api.HandleFunc("/staff/promote", deps.Staff.Promote).Methods(http.MethodPost)
	api.HandleFunc("/staff/{id}", deps.Staff.Update).Methods(http.MethodPut)
	api.HandleFunc("/staff/{id}", deps.Staff.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/documents", deps.Documents.List).Methods(http.MethodGet)
	api.HandleFunc("/documents", deps.Documents.Upload).Methods(http.MethodPost)

	pages := handler.NewPages()
	r.HandleFunc("/login", pages.Login).Methods(http.MethodGet)
	r.HandleFunc("/company/dashboard", pages.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/admin", pages.Admin).Methods(http.MethodGet)
	r.HandleFunc("/", pages.Home).Methods(http.MethodGet)

	if deps.UploadsDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))
	}
	return r
}

// App runs the HTTP server until SIGINT/SIGTERM, then drains connections.
type App struct {
	Addr   string
	Router *mux.Router
}

// Run blocks until shutdown completes.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              a.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Logger.Infof("HTTP listening on %s", a.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case s := <-quit:
		logs.Logger.Infof("shutdown signal: %s", s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
