package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrNoCredential      = errors.New("no credential configured")
	ErrNoResult          = errors.New("no result")
	ErrEmptyCompletion   = errors.New("empty completion")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrMissingField      = errors.New("missing session field")
	ErrUnknownCommand    = errors.New("unknown command")
)
