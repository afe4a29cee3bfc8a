package errors

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("store unavailable")
	ErrDuplicate    = errors.New("resource already exists")
	ErrForbidden    = errors.New("forbidden")
)
