package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for remote operations
var (
	// ErrServerUnreachable indicates the Jellyfin server could not be reached
	ErrServerUnreachable = errors.New("jellyfin server is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrTaskNotFound indicates a scheduled task is not registered on the server
	ErrTaskNotFound = errors.New("task not found")
)

// APIError is any non-2xx response that is not an auth failure.
// It is scoped to the single library or task being reconciled.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d - %s", e.Status, e.Body)
}

// ConfigError is a malformed desired-state document. It is raised during
// validation, before any remote call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid config: %s", e.Reason)
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}
