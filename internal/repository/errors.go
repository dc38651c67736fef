package repository

import "errors"

var (
	// ErrNotFound indicates the requested document doesn't exist.
	ErrNotFound = errors.New("not found")
)
