package facility

import "errors"

var (
	ErrNotFound     = errors.New("facility not found")
	ErrForbidden    = errors.New("access denied")
	ErrInvalidHours = errors.New("invalid operating hours")
)
