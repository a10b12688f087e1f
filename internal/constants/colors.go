package constants

// Terminal color codes used throughout the application
const (
	ColorBlack      = "0"
	ColorDarkBlue   = "4"
	ColorDarkCyan   = "6"
	ColorLightGray  = "7"
	ColorGray       = "8"
	ColorRed        = "9"
	ColorGreen      = "10"
	ColorYellow     = "11"
	ColorBlue       = "12"
	ColorMagenta    = "13"
	ColorCyan       = "14"
	ColorWhite      = "15"
	ColorDarkGray   = "240"
	ColorMediumGray = "244"
)
