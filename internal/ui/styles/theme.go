// Package styles holds the color themes and the lipgloss styles built from
// them.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/katyella/sprig-sample/internal/constants"
)

// Theme represents a color theme for the UI
type Theme struct {
	Name string

	Foreground lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Border    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	MutedForeground lipgloss.Color
	SelectedBg      lipgloss.Color
	FocusBorder     lipgloss.Color
}

// PredefinedThemes contains the built-in themes
var PredefinedThemes = map[string]*Theme{
	"dark": {
		Name:            "dark",
		Foreground:      lipgloss.Color(constants.ColorWhite),
		Primary:         lipgloss.Color(constants.ColorBlue),
		Secondary:       lipgloss.Color(constants.ColorCyan),
		Border:          lipgloss.Color(constants.ColorGray),
		Success:         lipgloss.Color(constants.ColorGreen),
		Warning:         lipgloss.Color(constants.ColorYellow),
		Error:           lipgloss.Color(constants.ColorRed),
		Info:            lipgloss.Color(constants.ColorBlue),
		MutedForeground: lipgloss.Color(constants.ColorMediumGray),
		SelectedBg:      lipgloss.Color(constants.ColorDarkGray),
		FocusBorder:     lipgloss.Color(constants.ColorMagenta),
	},
	"light": {
		Name:            "light",
		Foreground:      lipgloss.Color(constants.ColorBlack),
		Primary:         lipgloss.Color(constants.ColorDarkBlue),
		Secondary:       lipgloss.Color(constants.ColorDarkCyan),
		Border:          lipgloss.Color(constants.ColorLightGray),
		Success:         lipgloss.Color("2"),
		Warning:         lipgloss.Color("3"),
		Error:           lipgloss.Color("1"),
		Info:            lipgloss.Color(constants.ColorDarkBlue),
		MutedForeground: lipgloss.Color(constants.ColorGray),
		SelectedBg:      lipgloss.Color(constants.ColorLightGray),
		FocusBorder:     lipgloss.Color(constants.ColorDarkBlue),
	},
}

// ThemeByName returns the named theme, falling back to the default one.
func ThemeByName(name string) *Theme {
	if theme, ok := PredefinedThemes[name]; ok {
		return theme
	}
	return PredefinedThemes[constants.DefaultTheme]
}

// Styles are the rendered styles of the sample screen.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	Button        lipgloss.Style
	FocusedButton lipgloss.Style
	ButtonKey     lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Timestamp  lipgloss.Style

	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Survey         lipgloss.Style
	SurveyQuestion lipgloss.Style
	Muted          lipgloss.Style
}

// New builds the styles for theme.
func New(theme *Theme) Styles {
	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Foreground).
		Width(constants.ButtonWidth).
		Align(lipgloss.Center)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(theme.MutedForeground),

		Button: button,
		FocusedButton: button.
			BorderForeground(theme.FocusBorder).
			Background(theme.SelectedBg).
			Bold(true),
		ButtonKey: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
		PanelTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Timestamp: lipgloss.NewStyle().
			Foreground(theme.MutedForeground),

		Info:    lipgloss.NewStyle().Foreground(theme.Info),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),

		Survey: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Warning).
			Padding(0, 1),
		SurveyQuestion: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(theme.MutedForeground),
	}
}
