package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMissingLocation  = errors.New("update carries no location")
	ErrMissingChat      = errors.New("update carries no chat id")
	ErrMalformedPayload = errors.New("malformed telemetry payload")
	ErrInvalidConfig    = errors.New("invalid config")
)
