package retouch

import "errors"

// Package-level sentinel errors. Callers match these with errors.Is; the
// wrapped messages carry the per-call context.
var (
	// ErrInvalidViewport is returned when mapping coordinates through a
	// viewport whose display area is zero. The offending gesture event
	// should be dropped; no stroke is applied.
	ErrInvalidViewport = errors.New("retouch: viewport has zero area")

	// ErrNotInitialized is returned by readback operations before
	// Initialize has provided a source image.
	ErrNotInitialized = errors.New("retouch: session not initialized")

	// ErrSessionClosed is returned when submitting work to a session that
	// has been closed or cancelled.
	ErrSessionClosed = errors.New("retouch: session closed")

	// ErrReadbackFailed is returned when the surface pixels cannot be read
	// back (for example after GPU context loss). A failed Confirm must fall
	// back to cancel-equivalent behavior rather than exporting corrupt data.
	ErrReadbackFailed = errors.New("retouch: surface readback failed")

	// ErrSizeMismatch is returned when a replacement surface does not match
	// the dimensions of the source image.
	ErrSizeMismatch = errors.New("retouch: pixel buffer size mismatch")
)
