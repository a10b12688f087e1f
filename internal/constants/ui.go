package constants

// UI theme and display constants
const (
	// DefaultTheme is the default UI theme
	DefaultTheme = "dark"

	// AppTitle is rendered in the screen header
	AppTitle = "Sprig Sample"
)

// UI dimensions
const (
	// MinTerminalWidth is the minimum terminal width required
	MinTerminalWidth = 60

	// MinTerminalHeight is the minimum terminal height required
	MinTerminalHeight = 16

	// HeaderHeight is the number of lines used by the title and subtitle
	HeaderHeight = 2

	// ButtonHeight is the rendered height of a bordered button
	ButtonHeight = 3

	// ButtonWidth is the inner width of every button
	ButtonWidth = 26
)

// Button labels, in display order
const (
	IdentifyButtonLabel        = "Identify"
	TrackButtonLabel           = "Track"
	TrackPropertiesButtonLabel = "Track with properties"
	LogoutButtonLabel          = "Logout"
)

// UI messages
const (
	// InitialActivityMessage is the first line of the activity log
	InitialActivityMessage = "Client ready. Press a button to send a call."

	// InitializingMessage is shown before the first window size arrives
	InitializingMessage = "Initializing..."

	// SurveyDismissHint is shown under a presented survey
	SurveyDismissHint = "press esc to dismiss"
)

// Sample call arguments
const (
	SampleUserID              = "test_user_id"
	SampleEmail               = "test@gmail.com"
	SampleEvent               = "test_event"
	SampleEventWithProperties = "test_event_with_properties"
)
