package constants

// Error message constants
const (
	// ErrWriteKeyRequired is returned when the client is built without a write key
	ErrWriteKeyRequired = "write key is required"

	// ErrClientRequired is returned when the screen is built without a client
	ErrClientRequired = "analytics client is required"

	// ErrClientClosed is returned when a message is sent after Close
	ErrClientClosed = "client is closed"
)
