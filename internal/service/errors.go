package service

import "errors"

// Typed failures surfaced to callers. Handlers map these onto HTTP statuses
// with errors.Is; anything unmatched is an internal error.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	ErrUnavailable    = errors.New("store unavailable")
	ErrParseFailure   = errors.New("provider response did not match the two-line contract")
)
