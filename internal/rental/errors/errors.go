package errors

import (
	"errors"
	"net/http"

	"bitbucket.org/crgw/rental-hub/internal/catalog"
	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/schema"
	"bitbucket.org/crgw/rental-hub/internal/session"
)

var (
	ErrorMissingAdminToken = errors.New("admin token missing")
	ErrorInvalidAdminToken = errors.New("admin token invalid")
	ErrorInvalidID         = errors.New("invalid id")
)

// StatusCode maps domain and upstream errors to the response status.
func StatusCode(err error) int {
	var upstreamErr *schema.UpstreamResponseError

	switch {
	case errors.Is(err, rules.ErrInvalidInput),
		errors.Is(err, rules.ErrInvalidDateRange),
		errors.Is(err, rules.ErrUnknownDestination),
		errors.Is(err, ErrorInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrorMissingAdminToken),
		errors.Is(err, ErrorInvalidAdminToken),
		errors.Is(err, catalog.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrVehicleUnavailable):
		return http.StatusConflict
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
