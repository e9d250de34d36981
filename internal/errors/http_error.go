package errors

import (
	"errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// FromError maps a domain error to an HTTPError. Unrecognized errors map
// to 500 with a generic message so internals never leak to clients.
func FromError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrVehicleNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrReservationNotFound),
		errors.Is(err, ErrRoleNotFound),
		errors.Is(err, ErrServiceRecordNotFound),
		errors.Is(err, ErrDamageRecordNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrNotModifiable):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
