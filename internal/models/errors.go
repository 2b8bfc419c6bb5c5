package models

import "errors"

// Error kinds crossing the service boundary. Messages are stable and safe
// for direct display; the HTTP layer maps them to status codes.
var (
	ErrNotFound            = errors.New("no link found for the given short URL")
	ErrInactiveLink        = errors.New("link is inactive or expired")
	ErrInvalidURL          = errors.New("the provided URL is not a valid absolute URL")
	ErrForbidden           = errors.New("link belongs to another user")
	ErrInvalidArgument     = errors.New("required identifier is missing")
	ErrGenerationExhausted = errors.New("could not generate a unique short URL")
	ErrConflict            = errors.New("short URL is already in use")
)
