package model

import "errors"

// Handlers map these to HTTP status codes; repositories and controllers wrap
// them with detail using fmt.Errorf("%w: ...").
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalid      = errors.New("invalid request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
