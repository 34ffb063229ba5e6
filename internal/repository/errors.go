package repository

import "errors"

var (
	// ErrNotFound indicates a query returned no row.
	ErrNotFound = errors.New("not found")
)
