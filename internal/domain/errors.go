package domain

import "errors"

// ErrNotFound: the id/owner pair does not resolve to a monitor the caller may
// see. ErrValidation: malformed input to a mutating operation; never retried.
var (
	ErrNotFound   = errors.New("monitor not found")
	ErrValidation = errors.New("validation failed")
)
