package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/illmade-knight/location-notes/app"
	"github.com/illmade-knight/location-notes/internal/clients"
	"github.com/illmade-knight/location-notes/pkg/locations"
)

// HTTPError represents an error with an HTTP status code
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

var (
	ErrInvalidJSON       = fmt.Errorf("invalid json body")
	ErrInvalidLocationID = fmt.Errorf("invalid location id")
	ErrIncompleteFix     = fmt.Errorf("latitude and longitude must be given together")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, locations.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrNoFix), errors.Is(err, clients.ErrNoFix), errors.Is(err, app.ErrNoProvider):
		return http.StatusConflict
	case errors.Is(err, locations.ErrInsertRejected), errors.Is(err, locations.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
