package domain

import "errors"

// Sentinel errors shared across the service layers.
var (
	// ErrNotConfigured signals that an external integration (CMS, newsletter,
	// feeds) has no endpoint configured. This is a normal state: callers
	// degrade to empty results instead of failing.
	ErrNotConfigured = errors.New("not configured")
	// ErrNotFound signals a missing content item.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable signals that an upstream (CMS, feed host, Brevo)
	// answered with a failure or could not be reached.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrPartialResponse signals a GraphQL response carrying both data and
	// errors. Data is still usable; the error list is diagnostic only.
	ErrPartialResponse = errors.New("partial graphql response")
	// ErrInvalidInput signals a malformed caller-supplied value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadySubscribed signals a duplicate newsletter contact.
	ErrAlreadySubscribed = errors.New("already subscribed")
)
