package notification

import "errors"

var (
	ErrInvalidFilter = errors.New("invalid read filter")
	ErrNoIDs         = errors.New("no notification ids")
)
