package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/katyella/sprig-sample/internal/ui/styles"
)

// activityLevel decides how an activity entry is colored.
type activityLevel int

const (
	activityInfo activityLevel = iota
	activitySent
	activitySurvey
	activityError
)

func (l activityLevel) String() string {
	switch l {
	case activityInfo:
		return "INFO"
	case activitySent:
		return "SENT"
	case activitySurvey:
		return "SURVEY"
	case activityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

type activityEntry struct {
	At    time.Time
	Level activityLevel
	Text  string
}

// activityLog is a scrolling list of what the screen sent and received.
type activityLog struct {
	viewport viewport.Model
	ready    bool

	entries    []activityEntry
	maxEntries int

	styles *styles.Styles
	now    func() time.Time
}

func newActivityLog(s *styles.Styles, maxEntries int) *activityLog {
	return &activityLog{
		maxEntries: maxEntries,
		styles:     s,
		now:        time.Now,
	}
}

// add appends an entry, dropping the oldest past maxEntries.
func (a *activityLog) add(level activityLevel, format string, args ...interface{}) {
	a.entries = append(a.entries, activityEntry{
		At:    a.now(),
		Level: level,
		Text:  fmt.Sprintf(format, args...),
	})
	if excess := len(a.entries) - a.maxEntries; excess > 0 {
		a.entries = a.entries[excess:]
	}
	if a.ready {
		a.refresh()
		a.viewport.GotoBottom()
	}
}

// setSize sizes the panel, borders and title included.
func (a *activityLog) setSize(width, height int) {
	vpWidth := width - 2
	vpHeight := height - 3 // border and title
	if vpWidth < 1 {
		vpWidth = 1
	}
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !a.ready {
		a.viewport = viewport.New(vpWidth, vpHeight)
		// Arrow keys move button focus; the log scrolls by page and wheel.
		a.viewport.KeyMap = viewport.KeyMap{
			PageDown: key.NewBinding(key.WithKeys("pgdown")),
			PageUp:   key.NewBinding(key.WithKeys("pgup")),
		}
		a.ready = true
	} else {
		a.viewport.Width = vpWidth
		a.viewport.Height = vpHeight
	}
	a.refresh()
	a.viewport.GotoBottom()
}

func (a *activityLog) update(msg tea.Msg) tea.Cmd {
	if !a.ready {
		return nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return cmd
}

func (a *activityLog) refresh() {
	lines := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		lines = append(lines, a.format(e))
	}
	a.viewport.SetContent(strings.Join(lines, "\n"))
}

func (a *activityLog) format(e activityEntry) string {
	var style lipgloss.Style
	switch e.Level {
	case activitySent:
		style = a.styles.Success
	case activitySurvey:
		style = a.styles.Warning
	case activityError:
		style = a.styles.Error
	default:
		style = a.styles.Info
	}
	return fmt.Sprintf("%s %s %s",
		a.styles.Timestamp.Render(e.At.Format("15:04:05")),
		style.Render(fmt.Sprintf("%-6s", e.Level)),
		e.Text)
}

func (a *activityLog) view() string {
	if !a.ready {
		return ""
	}
	title := a.styles.PanelTitle.Render("Activity")
	return a.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, a.viewport.View()))
}
