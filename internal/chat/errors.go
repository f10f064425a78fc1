package chat

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/agent-hub/internal/agents"
)

var (
	ErrInvalidInput = errors.New("message is required")
	ErrGateway      = errors.New("llm call failed")
)

// MapHTTPStatus maps chat errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, agents.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
