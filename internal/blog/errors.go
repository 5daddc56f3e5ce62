package blog

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("not authorized")
	ErrUnauthenticated = errors.New("authentication required")
)
