package catalog

import "errors"

var (
	// ErrNetwork is returned when the remote catalog cannot be reached
	// (DNS failure, refused connection, timeout).
	ErrNetwork = errors.New("catalog network error")

	// ErrRemoteStatus is returned when the remote catalog answers with a
	// non-success HTTP status.
	ErrRemoteStatus = errors.New("catalog returned non-success status")

	// ErrEmptyBody is returned when the remote catalog answers success
	// but sends no usable payload.
	ErrEmptyBody = errors.New("catalog returned empty body")
)
