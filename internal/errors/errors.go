package errors

import "errors"

var (
	ErrVehicleNotFound       = errors.New("vehicle not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrRoleNotFound          = errors.New("role not found")
	ErrServiceRecordNotFound = errors.New("service record not found")
	ErrDamageRecordNotFound  = errors.New("damage record not found")
)

var (
	// ErrValidation covers malformed input: bad timestamps, missing
	// required fields, inverted or retroactive time ranges.
	ErrValidation = errors.New("validation error")

	// ErrConflict is returned when a vehicle already has a Confirmed
	// reservation intersecting the requested window, or is not Active.
	ErrConflict = errors.New("vehicle is not available for the selected time period")

	ErrAccessDenied  = errors.New("access denied")
	ErrNotModifiable = errors.New("reservation can no longer be modified this close to its start time")
	ErrUnauthorized  = errors.New("unauthorized")
)
