package contact

import "errors"

var (
	// ErrNotFound indicates no contact matched the identifier.
	ErrNotFound = errors.New("contact not found")
	// ErrUnknownField indicates a field name outside the updatable set.
	ErrUnknownField = errors.New("unknown contact field")
)
