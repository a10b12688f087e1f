package constants

import "time"

// Timeout constants
const (
	// DefaultRequestTimeout is the timeout applied to every data-plane and
	// control-plane request
	DefaultRequestTimeout = 10 * time.Second

	// SourceConfigTimeout bounds the source config fetch during client startup
	SourceConfigTimeout = 5 * time.Second

	// ShutdownTimeout bounds the final flush when the application exits
	ShutdownTimeout = 5 * time.Second
)

// Backoff configuration constants
const (
	// DefaultInitialDelay is the initial delay for exponential backoff
	DefaultInitialDelay = 1 * time.Second

	// DefaultMaxDelay is the maximum delay for exponential backoff
	DefaultMaxDelay = 30 * time.Second

	// DefaultBackoffFactor is the multiplier for exponential backoff
	DefaultBackoffFactor = 2.0

	// DefaultJitterFactor adds up to 20% randomness to each delay
	DefaultJitterFactor = 0.2
)
