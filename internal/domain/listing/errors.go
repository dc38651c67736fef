package listing

import "errors"

var (
	// ErrNotFound indicates no listing matched the identifier.
	ErrNotFound = errors.New("listing not found")
)
