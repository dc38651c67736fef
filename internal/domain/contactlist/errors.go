package contactlist

import "errors"

var (
	// ErrNotFound indicates no contact list matched the identifier.
	ErrNotFound = errors.New("contact list not found")
)
