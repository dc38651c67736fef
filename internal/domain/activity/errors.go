package activity

import "errors"

var (
	// ErrNotFound indicates the activity doesn't exist.
	ErrNotFound = errors.New("activity not found")
	// ErrMissingContact indicates an activity without a contact reference.
	ErrMissingContact = errors.New("activity requires a contact id")
)
