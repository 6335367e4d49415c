package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("booking not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomUnavailable   = errors.New("room unavailable")
	ErrScheduleConflict  = errors.New("schedule conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)
