// Package httphandler holds the HTTP plumbing shared by every route: the
// session guard, logging and recovery middleware, and the JSON health API.
package httphandler

import (
	"log/slog"
	"net/http"
	"time"
)

// RouteRegistrar adds its routes to a mux. The web pages implement it.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Handler serves the JSON API. It has no backend dependencies.
type Handler struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, now: time.Now}
}

// Guard bundles the route table with the session presence check.
type Guard struct {
	Table      RouteTable
	HasSession func(*http.Request) bool
}

// NewServeMux registers the API and page routes and wraps them with the
// guard, recovery and logging middleware. pages may be nil.
func NewServeMux(h *Handler, pages RouteRegistrar, guard Guard, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.Health)
	if pages != nil {
		pages.RegisterRoutes(mux)
	}

	wrapped := GuardMiddleware(guard.Table, guard.HasSession, mux)
	// Recovery innermost so panics are caught before logging.
	wrapped = recoveryMiddleware(logger, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   h.now().UTC().Format(time.RFC3339),
	})
}
