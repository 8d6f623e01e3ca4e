package retouch

// SessionOption configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// Defaults: registered backend, 20-entry history
//	s := retouch.NewSession()
//
//	// Custom backend and deeper history
//	s := retouch.NewSession(
//		retouch.WithBackend(myBackend),
//		retouch.WithHistoryCapacity(50),
//	)
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	backend     SurfaceBackend
	ownsBackend bool
	historyCap  int
	queueDepth  int
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		backend:    nil, // registered backend, or CPU-only when none
		historyCap: DefaultHistoryCapacity,
		queueDepth: defaultQueueDepth,
	}
}

// WithBackend sets a dedicated surface backend for the session instead of
// the globally registered one. The session takes ownership and closes the
// backend on teardown.
func WithBackend(b SurfaceBackend) SessionOption {
	return func(o *sessionOptions) {
		o.backend = b
		o.ownsBackend = b != nil
	}
}

// WithHistoryCapacity sets the maximum number of undo snapshots the session
// retains. Non-positive values select DefaultHistoryCapacity.
func WithHistoryCapacity(n int) SessionOption {
	return func(o *sessionOptions) {
		o.historyCap = n
	}
}

// WithQueueDepth sets the render task queue depth. Submissions beyond the
// depth block the gesture thread until the render goroutine catches up.
func WithQueueDepth(n int) SessionOption {
	return func(o *sessionOptions) {
		if n > 0 {
			o.queueDepth = n
		}
	}
}
