package constants

// HTTP status codes
const (
	// HTTPStatusRequestTimeout represents a 408 Request Timeout error
	HTTPStatusRequestTimeout = 408

	// HTTPStatusTooManyRequests represents a 429 Too Many Requests error
	HTTPStatusTooManyRequests = 429

	// HTTPStatusInternalServerError represents a 500 Internal Server Error
	HTTPStatusInternalServerError = 500
)
