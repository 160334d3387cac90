// internal/server/handlers.go
package server

import (
	"net/http"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/metrics"
)

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.registry.List(), http.StatusOK)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	// PathValue is percent-decoded; "Chess%20Club" matches "Chess Club".
	activityName := r.PathValue("name")

	email, ok := requireEmail(w, r, "signup")
	if !ok {
		return
	}

	message, err := s.registry.Signup(activityName, email)
	if err != nil {
		stdErr := writeDomainError(w, err)
		metrics.RequestsFailed.WithLabelValues("signup", string(stdErr.Code)).Inc()
		return
	}

	s.publishRoster(r.Context(), activityName)
	writeJSON(w, messageResponse{Message: message}, http.StatusOK)
}

func (s *Server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("name")

	email, ok := requireEmail(w, r, "unregister")
	if !ok {
		return
	}

	message, err := s.registry.Unregister(activityName, email)
	if err != nil {
		stdErr := writeDomainError(w, err)
		metrics.RequestsFailed.WithLabelValues("unregister", string(stdErr.Code)).Inc()
		return
	}

	s.publishRoster(r.Context(), activityName)
	writeJSON(w, messageResponse{Message: message}, http.StatusOK)
}

// requireEmail rejects the request with 422 before any registry lookup
// when the email parameter is absent.
func requireEmail(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	email := r.URL.Query().Get("email")
	if email == "" {
		stdErr := writeDomainError(w, apperrors.NewMissingEmailError())
		metrics.RequestsFailed.WithLabelValues(operation, string(stdErr.Code)).Inc()
		return "", false
	}
	return email, true
}
