package booking

import "errors"

var (
	ErrNotFound            = errors.New("not_found")
	ErrOutOfOperatingHours = errors.New("out of operating hours")
	ErrTimeConflict        = errors.New("time conflict")
	ErrInThePast           = errors.New("booking starts in the past")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
	ErrBookingExpired      = errors.New("booking already ended")
	ErrInvalidWindow       = errors.New("start must be before end")
	ErrValidation          = errors.New("validation error")
)
