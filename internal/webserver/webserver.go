package webserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lindle/internal/app"
	"lindle/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// NewRouter registers the gateway routes.
func NewRouter(application *app.App, logger *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(logger))

	r.Get("/healthz", application.HandleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/user", application.HandleUser)
		r.Get("/links", application.HandleLinks)
		r.Get("/folders", application.HandleFolders)
		r.Get("/sync", application.HandleSync)
	})
	r.Get("/export/bookmarks.html", application.HandleExport)

	// Catch-all for unimplemented routes
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Warnf("404 Not Found: URL=%s, Method=%s, Params=%v", r.URL.Path, r.Method, r.URL.Query())
		http.Error(w, "404 Not Found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// ListenAndServe serves handler on the given port until ctx is cancelled,
// then shuts down gracefully.
func ListenAndServe(ctx context.Context, port int, handler http.Handler, logger *logger.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Web server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("Web server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown failed: %w", err)
	}
	return nil
}
