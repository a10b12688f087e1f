package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/katyella/sprig-sample/internal/logging"
)

// ProgramOptions holds configuration for the Bubble Tea program
type ProgramOptions struct {
	AltScreen    bool
	MouseSupport bool
}

// DefaultProgramOptions returns sensible defaults for the TUI program
func DefaultProgramOptions() ProgramOptions {
	return ProgramOptions{
		AltScreen:    true, // Use alternate screen buffer
		MouseSupport: true, // Buttons are clickable
	}
}

// programOptions translates opts into Bubble Tea options
func programOptions(opts ProgramOptions) []tea.ProgramOption {
	var programOpts []tea.ProgramOption

	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	if opts.MouseSupport {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	return programOpts
}

// NewProgram creates a new Bubble Tea program around screen
func NewProgram(screen *Screen, opts ProgramOptions, extra ...tea.ProgramOption) *tea.Program {
	logging.Info(screen.logger, "Creating Bubble Tea program with options: AltScreen=%v, Mouse=%v",
		opts.AltScreen, opts.MouseSupport)

	return tea.NewProgram(screen, append(programOptions(opts), extra...)...)
}

// RunTUI runs screen until the user quits. The screen is deregistered
// however the program ends.
func RunTUI(screen *Screen, opts ProgramOptions) error {
	defer screen.Close()

	if _, err := NewProgram(screen, opts).Run(); err != nil {
		return err
	}

	logging.Info(screen.logger, "TUI program exited successfully")
	return nil
}
