// internal/registry/registry.go
package registry

import (
	"fmt"
	"sync"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"

	seed "mergington-activities/pkg/registry"
)

// Registry owns the in-memory mapping from activity name to activity
// record. All mutation goes through Signup and Unregister; the whole
// registry is guarded by one RWMutex so the check-then-act sequences
// stay atomic under concurrent requests.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*Activity
	log        logger.Logger
}

// New builds a registry from a validated seed document.
func New(doc *seed.Document, log logger.Logger) (*Registry, error) {
	activities := make(map[string]*Activity, len(doc.Activities))
	for _, sa := range doc.Activities {
		if _, exists := activities[sa.Name]; exists {
			return nil, fmt.Errorf("duplicate activity name in seed: %q", sa.Name)
		}
		participants := make([]string, len(sa.Participants))
		copy(participants, sa.Participants)
		activities[sa.Name] = &Activity{
			Description:     sa.Description,
			Schedule:        sa.Schedule,
			MaxParticipants: sa.MaxParticipants,
			Participants:    participants,
		}
		metrics.RosterSize.WithLabelValues(sa.Name).Set(float64(len(participants)))
	}

	return &Registry{
		activities: activities,
		log:        log.WithFields(map[string]interface{}{"component": "registry"}),
	}, nil
}

// List returns a deep copy of the full mapping. Read-only, no side effects.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.clone()
	}
	return out
}

// Signup appends email to the activity's roster.
//
// Validation order matters: activity existence is always checked before
// membership, so a request against an unknown activity yields the same
// error regardless of the email's state. Repeating a successful signup
// fails; this is a membership transition, not an idempotent set-assign.
// Capacity is deliberately not enforced.
func (r *Registry) Signup(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, exists := r.activities[activityName]
	if !exists {
		return "", apperrors.NewActivityNotFoundError(activityName)
	}

	for _, p := range activity.Participants {
		if p == email {
			return "", apperrors.NewAlreadySignedUpError(email, activityName)
		}
	}

	activity.Participants = append(activity.Participants, email)

	metrics.ActivitySignups.WithLabelValues(activityName).Inc()
	metrics.RosterSize.WithLabelValues(activityName).Set(float64(len(activity.Participants)))
	r.log.Info("student signed up", map[string]interface{}{
		"activity":   activityName,
		"email":      email,
		"rosterSize": len(activity.Participants),
	})

	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

// Unregister removes email from the activity's roster, preserving the
// order of the remaining entries. Same validation order as Signup.
func (r *Registry) Unregister(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, exists := r.activities[activityName]
	if !exists {
		return "", apperrors.NewActivityNotFoundError(activityName)
	}

	idx := -1
	for i, p := range activity.Participants {
		if p == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", apperrors.NewNotRegisteredError(email, activityName)
	}

	activity.Participants = append(activity.Participants[:idx], activity.Participants[idx+1:]...)

	metrics.ActivityUnregisters.WithLabelValues(activityName).Inc()
	metrics.RosterSize.WithLabelValues(activityName).Set(float64(len(activity.Participants)))
	r.log.Info("student unregistered", map[string]interface{}{
		"activity":   activityName,
		"email":      email,
		"rosterSize": len(activity.Participants),
	})

	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

// Get returns a copy of one activity record.
func (r *Registry) Get(activityName string) (Activity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, exists := r.activities[activityName]
	if !exists {
		return Activity{}, false
	}
	return activity.clone(), true
}
