package chatlogs

import (
	"errors"
	"net/http"
)

var ErrInvalidRole = errors.New("invalid chat log role")

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRole) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
