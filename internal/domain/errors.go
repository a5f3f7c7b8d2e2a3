package domain

import "github.com/pkg/errors"

var (
	// ErrNotFound means the catalog could not resolve the requested id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned for ids that can never exist (zero or negative).
	ErrInvalidID = errors.New("invalid id")

	// ErrRemoteUnavailable covers transport failures, timeouts and non-404 API errors.
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")

	// ErrNoResults is returned by searches that succeeded but matched nothing.
	ErrNoResults = errors.New("no results")

	ErrInvalidQuery = errors.New("invalid search query")

	ErrRecordNotFound = errors.New("record not found")
)
