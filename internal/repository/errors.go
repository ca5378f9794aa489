package repository

import "errors"

// Backend-neutral errors. Each backend maps its driver errors onto these so
// services and handlers never import a driver package.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict covers references that block a write or delete.
	ErrConflict = errors.New("conflict")
)
