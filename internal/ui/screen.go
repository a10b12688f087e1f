package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/katyella/sprig-sample/internal/analytics"
	"github.com/katyella/sprig-sample/internal/constants"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/integrations/sprig"
	"github.com/katyella/sprig-sample/internal/logging"
	"github.com/katyella/sprig-sample/internal/ui/styles"
)

// surveyBuffer is how many presented surveys may wait for the UI loop.
const surveyBuffer = 8

// ErrClientRequired is returned when a screen is built without a client.
var ErrClientRequired = errors.New(constants.ErrClientRequired)

// Analytics is the part of the analytics client the screen calls.
type Analytics interface {
	Identify(userID string, traits analytics.Traits, opts *analytics.Options) error
	Track(event string, props ...analytics.Properties) error
	Reset(clearDeviceData bool)
}

// ScreenRegistrar is told which screen surveys are presented on.
type ScreenRegistrar interface {
	SetCurrentScreen(p sprig.Presenter)
	ClearCurrentScreen(p sprig.Presenter)
}

// ScreenOptions configures a Screen.
type ScreenOptions struct {
	Version string
	Theme   string
	Logger  *logrus.Logger
}

// surveyMsg carries a survey from the integration goroutine into Update.
type surveyMsg struct {
	survey sprig.Survey
}

// Screen is the sample's only screen: four buttons wired to the analytics
// client, an activity log and any survey the integration presents.
type Screen struct {
	client    Analytics
	registrar ScreenRegistrar
	logger    *logrus.Logger
	version   string

	keys    keyMap
	help    help.Model
	styles  styles.Styles
	buttons []button

	focused  int
	showHelp bool
	survey   *sprig.Survey
	activity *activityLog

	surveys   chan sprig.Survey
	done      chan struct{}
	closeOnce sync.Once

	width, height int
	ready         bool
	quitting      bool
	registered    bool
}

// NewScreen builds the screen around client and registers it with
// registrar, which may be nil.
func NewScreen(client Analytics, registrar ScreenRegistrar, opts ScreenOptions) (*Screen, error) {
	if client == nil {
		return nil, apperrors.NewUIError("creating screen", ErrClientRequired)
	}
	if c, ok := client.(*analytics.Client); ok && c == nil {
		return nil, apperrors.NewUIError("creating screen", ErrClientRequired)
	}

	keys := defaultKeyMap()
	s := &Screen{
		client:    client,
		registrar: registrar,
		logger:    opts.Logger,
		version:   opts.Version,
		keys:      keys,
		help:      help.New(),
		styles:    styles.New(styles.ThemeByName(opts.Theme)),
		buttons:   sampleButtons(keys),
		surveys:   make(chan sprig.Survey, surveyBuffer),
		done:      make(chan struct{}),
	}
	s.activity = newActivityLog(&s.styles, constants.MaxActivityEntries)
	s.activity.add(activityInfo, constants.InitialActivityMessage)

	if registrar != nil {
		registrar.SetCurrentScreen(s)
		s.registered = true
	}
	logging.Debug(s.logger, "screen created")
	return s, nil
}

// PresentSurvey implements sprig.Presenter. It is called from the
// integration goroutine and never blocks.
func (s *Screen) PresentSurvey(survey sprig.Survey) {
	select {
	case <-s.done:
		logging.Debug(s.logger, "survey %s ignored, screen is closed", survey.ID)
		return
	default:
	}
	select {
	case s.surveys <- survey:
	default:
		logging.Warn(s.logger, "survey %s dropped, screen is busy", survey.ID)
	}
}

// Close deregisters the screen and releases a pending waitForSurvey. It is
// safe to call more than once.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		if s.registered {
			s.registrar.ClearCurrentScreen(s)
			s.registered = false
		}
		close(s.done)
		logging.Debug(s.logger, "screen closed")
	})
}

// waitForSurvey blocks until the integration presents a survey or the
// screen is closed.
func waitForSurvey(ch <-chan sprig.Survey, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case survey := <-ch:
			return surveyMsg{survey: survey}
		case <-done:
			return nil
		}
	}
}

// Init implements tea.Model.
func (s *Screen) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(constants.AppTitle), waitForSurvey(s.surveys, s.done))
}

// Update implements tea.Model.
func (s *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.ready = true
		s.help.Width = msg.Width
		s.layout()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		return s, s.handleMouse(msg)

	case surveyMsg:
		survey := msg.survey
		s.survey = &survey
		s.activity.add(activitySurvey, "%s (after %s)", survey.Question, survey.Event)
		s.layout()
		return s, waitForSurvey(s.surveys, s.done)
	}

	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		s.quitting = true
		s.Close()
		return s, tea.Quit

	case key.Matches(msg, s.keys.Help):
		s.showHelp = !s.showHelp
		s.help.ShowAll = s.showHelp
		s.layout()
		return s, nil

	case key.Matches(msg, s.keys.Dismiss):
		if s.survey != nil {
			s.survey = nil
			s.layout()
		}
		return s, nil

	case key.Matches(msg, s.keys.Next):
		s.focused = (s.focused + 1) % len(s.buttons)
		return s, nil

	case key.Matches(msg, s.keys.Prev):
		s.focused = (s.focused - 1 + len(s.buttons)) % len(s.buttons)
		return s, nil

	case key.Matches(msg, s.keys.Press):
		s.press(s.focused)
		return s, nil
	}

	for i, b := range s.buttons {
		if key.Matches(msg, b.binding) {
			s.focused = i
			s.press(i)
			return s, nil
		}
	}

	return s, s.activity.update(msg)
}

func (s *Screen) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if i := buttonAt(s.width, len(s.buttons), msg.X, msg.Y); i >= 0 {
			logging.Debug(s.logger, "click at X=%d, Y=%d hit button %d", msg.X, msg.Y, i)
			s.focused = i
			s.press(i)
			return nil
		}
	}
	return s.activity.update(msg)
}

// press invokes the button's client call once and logs the outcome.
func (s *Screen) press(i int) {
	b := s.buttons[i]
	call, err := b.press(s.client)
	if err != nil {
		logging.Error(s.logger, "%s failed: %v", b.label, err)
		s.activity.add(activityError, "%s: %s", call, apperrors.Describe(err))
		return
	}
	logging.Debug(s.logger, "%s pressed: %s", b.label, call)
	s.activity.add(activitySent, "%s", call)
}

// layout sizes the activity log to the space the other parts leave.
func (s *Screen) layout() {
	if !s.ready {
		return
	}
	used := constants.HeaderHeight + 1 +
		buttonRows(s.width, len(s.buttons))*constants.ButtonHeight +
		lipgloss.Height(s.helpView())
	if s.survey != nil {
		used += lipgloss.Height(s.surveyView())
	}
	height := s.height - used
	if height < 3 {
		height = 3
	}
	s.activity.setSize(s.width, height)
}

// View implements tea.Model.
func (s *Screen) View() string {
	if s.quitting {
		return ""
	}
	if !s.ready {
		return constants.InitializingMessage
	}
	if s.width < constants.MinTerminalWidth || s.height < constants.MinTerminalHeight {
		return fmt.Sprintf("Terminal too small (%dx%d), need at least %dx%d",
			s.width, s.height, constants.MinTerminalWidth, constants.MinTerminalHeight)
	}

	parts := []string{s.headerView(), "", s.buttonsView()}
	if s.survey != nil {
		parts = append(parts, s.surveyView())
	}
	parts = append(parts, s.activity.view(), s.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *Screen) headerView() string {
	title := s.styles.Title.Render(constants.AppTitle)
	if s.version != "" {
		title += s.styles.Subtitle.Render(" " + s.version)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		s.styles.Subtitle.Render("Press a button to call the analytics client."))
}

func (s *Screen) buttonsView() string {
	cols := buttonColumns(s.width, len(s.buttons))
	gap := strings.Repeat(" ", buttonGap)

	var rows []string
	for start := 0; start < len(s.buttons); start += cols {
		end := start + cols
		if end > len(s.buttons) {
			end = len(s.buttons)
		}
		var cells []string
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, gap)
			}
			cells = append(cells, s.buttonView(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *Screen) buttonView(i int) string {
	b := s.buttons[i]
	style := s.styles.Button
	if i == s.focused {
		style = s.styles.FocusedButton
	}
	label := b.label + " " + s.styles.ButtonKey.Render("("+b.binding.Help().Key+")")
	return style.Render(label)
}

func (s *Screen) surveyView() string {
	if s.survey == nil {
		return ""
	}
	width := s.width - 4 // border and padding
	if width < 1 {
		width = 1
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.styles.SurveyQuestion.Render(s.survey.Question),
		s.styles.Muted.Render(constants.SurveyDismissHint))
	return s.styles.Survey.Width(width).Render(body)
}

func (s *Screen) helpView() string {
	return s.help.View(s.keys)
}
