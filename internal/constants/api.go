package constants

// Analytics endpoints
const (
	// DefaultDataPlaneURL is used when no data-plane URL is supplied at build time
	DefaultDataPlaneURL = "https://hosted.rudderlabs.com"

	// DefaultControlPlaneURL serves the source configuration
	DefaultControlPlaneURL = "https://api.rudderlabs.com"

	// BatchPath is the data-plane endpoint messages are delivered to
	BatchPath = "/v1/batch"

	// SourceConfigPath is the control-plane endpoint listing destinations
	SourceConfigPath = "/sourceConfig"
)

// Library identification sent with every message
const (
	// LibraryName is reported in context.library.name
	LibraryName = "sprig-sample-go"

	// ChannelName is reported in the message channel field
	ChannelName = "terminal"
)
