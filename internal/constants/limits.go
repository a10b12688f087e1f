package constants

// Queue configuration
const (
	// DefaultSleepCount is the number of seconds between periodic flushes
	DefaultSleepCount = 10

	// DefaultFlushQueueSize is the number of queued messages that triggers a flush
	DefaultFlushQueueSize = 30

	// DefaultMaxPendingMessages is the capacity of the in-memory message queue
	DefaultMaxPendingMessages = 10000
)

// Retry configuration
const (
	// DefaultRetryAttempts is the number of attempts per batch, including the first
	DefaultRetryAttempts = 3
)

// Sprig attribute limits
const (
	// MaxAttributeNameLength is the exclusive upper bound on visitor attribute names
	MaxAttributeNameLength = 256

	// ReservedAttributePrefix marks attribute names Sprig refuses
	ReservedAttributePrefix = "!"
)

// Activity log
const (
	// MaxActivityEntries is the number of activity lines the screen keeps
	MaxActivityEntries = 200
)
