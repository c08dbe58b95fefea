package reminder

import "errors"

var (
	// ErrNotFound is returned when the user owning the reminders does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput is returned for malformed reminder requests.
	ErrInvalidInput = errors.New("invalid reminder input")
)
