// internal/server/middleware.go
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mergington-activities/internal/common/metrics"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				s.log.Error("handler panicked", map[string]interface{}{
					"requestId": requestID,
					"path":      r.URL.Path,
					"panic":     p,
				})
				writeJSON(rec, errorResponse{Detail: "Internal server error"}, http.StatusInternalServerError)
			}

			duration := time.Since(start)
			route := r.Method + " " + r.URL.Path
			metrics.HTTPRequestDuration.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(duration.Seconds())
			if s.obs != nil {
				s.obs.RecordRequest(r.Context(), route, strconv.Itoa(rec.status))
				s.obs.RecordRequestDuration(r.Context(), duration, route)
			}

			s.log.Info("request handled", map[string]interface{}{
				"requestId": requestID,
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    rec.status,
				"duration":  duration.String(),
			})
		}()

		next.ServeHTTP(rec, r)
	})
}

// publishRoster mirrors the activity's post-mutation roster. Best-effort;
// the request has already succeeded by the time this runs.
func (s *Server) publishRoster(ctx context.Context, activityName string) {
	if s.mirror == nil {
		return
	}
	activity, exists := s.registry.Get(activityName)
	if !exists {
		return
	}
	s.mirror.PublishActivity(ctx, activityName, activity)
}
