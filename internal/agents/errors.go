package agents

import (
	"errors"
	"net/http"
)

// Domain errors for agent operations.
var (
	ErrNotFound      = errors.New("agent not found")
	ErrInvalidInput  = errors.New("invalid agent input")
	ErrConflict      = errors.New("tool already attached")
	ErrConfiguration = errors.New("invalid tool configuration")
	ErrToolNotFound  = errors.New("tool not attached")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrToolNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrConfiguration) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
