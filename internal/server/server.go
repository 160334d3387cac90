// internal/server/server.go
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/mirror"
	"mergington-activities/internal/registry"
)

// Server is the HTTP boundary over the activity registry. It translates
// domain outcomes into status codes and leaves all business rules to
// the registry.
type Server struct {
	registry  *registry.Registry
	mirror    *mirror.Mirror
	obs       *observability.Observability
	staticDir string
	log       logger.Logger
	startTime time.Time
}

func New(reg *registry.Registry, m *mirror.Mirror, obs *observability.Observability, staticDir string, log logger.Logger) *Server {
	return &Server{
		registry:  reg,
		mirror:    m,
		obs:       obs,
		staticDir: staticDir,
		log:       log.WithFields(map[string]interface{}{"component": "server"}),
		startTime: time.Now().UTC(),
	}
}

// Handler builds the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux)
	return s.withMiddleware(mux)
}

func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))

	mux.HandleFunc("GET /activities", s.handleListActivities)
	mux.HandleFunc("POST /activities/{name}/signup", s.handleSignup)
	mux.HandleFunc("DELETE /activities/{name}/unregister", s.handleUnregister)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	}, http.StatusOK)
}

// Response helpers

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse matches the `detail` field callers pattern-match on.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeDomainError(w http.ResponseWriter, err error) *apperrors.StandardError {
	stdErr := apperrors.AsStandard(err)
	writeJSON(w, errorResponse{Detail: stdErr.Message}, apperrors.HTTPStatus(stdErr.Code))
	return stdErr
}
