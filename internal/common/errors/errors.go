// Package errors provides standardized error handling for the activities API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadySignedUp  ErrorCode = "STUDENT_ALREADY_SIGNED_UP"
	ErrCodeNotRegistered    ErrorCode = "STUDENT_NOT_REGISTERED"
	ErrCodeMissingEmail     ErrorCode = "MISSING_EMAIL"
	ErrCodeSeedInvalid      ErrorCode = "SEED_REGISTRY_INVALID"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewActivityNotFoundError indicates the activity name is absent from the registry.
func NewActivityNotFoundError(activityName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", activityName),
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadySignedUpError indicates the email is already on the activity's roster.
func NewAlreadySignedUpError(email, activityName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadySignedUp,
		Message:   "Student already signed up for this activity",
		Details:   fmt.Sprintf("email: %s, activity: %s", email, activityName),
		Timestamp: time.Now().UTC(),
	}
}

// NewNotRegisteredError indicates the email is not on the activity's roster.
func NewNotRegisteredError(email, activityName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotRegistered,
		Message:   "Student not registered for this activity",
		Details:   fmt.Sprintf("email: %s, activity: %s", email, activityName),
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingEmailError indicates the required email parameter was absent.
func NewMissingEmailError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingEmail,
		Message:   "email query parameter is required",
		Timestamp: time.Now().UTC(),
	}
}

// NewSeedInvalidError indicates the seed registry document failed validation.
func NewSeedInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSeedInvalid,
		Message:   "Seed registry document is invalid",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// httpStatusMapping maps internal error codes to transport status codes.
// This is the only place domain outcomes become HTTP semantics.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeActivityNotFound: http.StatusNotFound,
	ErrCodeAlreadySignedUp:  http.StatusBadRequest,
	ErrCodeNotRegistered:    http.StatusNotFound,
	ErrCodeMissingEmail:     http.StatusUnprocessableEntity,
	ErrCodeSeedInvalid:      http.StatusInternalServerError,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// HTTPStatus returns the transport status code for an error code.
func HTTPStatus(code ErrorCode) int {
	if status, exists := httpStatusMapping[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// AsStandard extracts a *StandardError from err, wrapping unknown errors
// as internal errors so the boundary never leaks raw error strings.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}
