// Package apperr defines sentinel errors shared across service and API layers.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrUnsupported   = errors.New("not supported by this backend")
)
