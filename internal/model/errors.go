package model

import "errors"

// Domain errors. Handlers map these to HTTP statuses with errors.Is; anything
// not in this list is treated as a store failure and reported as a 500.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	ErrEmailTaken = errors.New("email already registered")
	ErrSlotTaken  = errors.New("time slot already booked")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotOwner           = errors.New("appointment belongs to another doctor")

	ErrSelfDelete = errors.New("cannot delete your own account")
	ErrValidation = errors.New("invalid request")
	ErrDoneFinal  = errors.New("appointment is already done")
)
