package rephrase

import "errors"

var (
	// ErrNotConfigured is returned before any network call when the service
	// has no usable provider credentials.
	ErrNotConfigured = errors.New("rephrase: provider not configured")

	// ErrUpstream hides provider failures from callers. The underlying
	// error is logged, never wrapped.
	ErrUpstream = errors.New("rephrase: upstream generation failed")
)
