package tui

import (
	"fmt"
	"strings"

	"github.com/andy/fomoduct/internal/app"
	"github.com/andy/fomoduct/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TimerModel shows the countdown, the phase progress and any pending notice
type TimerModel struct {
	app      *app.App
	styles   *Styles
	keys     KeyMap
	progress progress.Model
	width    int
}

// NewTimerModel creates a new TimerModel
func NewTimerModel(a *app.App, styles *Styles) tea.Model {
	return &TimerModel{
		app:    a,
		styles: styles,
		keys:   DefaultKeyMap,
		progress: progress.New(
			progress.WithSolidFill(string(styles.Accent)),
			progress.WithoutPercentage(),
			progress.WithWidth(40),
		),
	}
}

func (m *TimerModel) Init() tea.Cmd {
	return nil
}

// Update handles timer keys. Ticks are owned by the root model.
func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 24
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.progress.Width = w
		return m, nil

	case tea.KeyMsg:
		timer := m.app.Timer
		switch {
		case key.Matches(msg, m.keys.Toggle):
			timer.Toggle()
		case key.Matches(msg, m.keys.Reset):
			timer.Reset()
		case key.Matches(msg, m.keys.Next):
			if timer.Snapshot().Notice != nil {
				timer.Start()
			}
		case key.Matches(msg, m.keys.Dismiss):
			timer.Dismiss()
		}
	}
	return m, nil
}

// View renders the timer screen
func (m *TimerModel) View() string {
	st := m.app.Timer.Snapshot()
	s := m.styles
	phaseColor := s.PhaseColor(st.Phase)

	var b strings.Builder

	phase := lipgloss.NewStyle().Bold(true).Foreground(phaseColor).Render(st.Phase.Label())
	state := s.Paused.Render("PAUSED")
	if st.Running {
		state = s.Running.Render("RUNNING")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", phase, state))

	digits := s.Digits.Foreground(phaseColor).Render(bigClock(st.Clock()))
	b.WriteString(s.Panel.Render(digits))
	b.WriteString("\n\n")

	bar := m.progress
	bar.FullColor = string(phaseColor)
	b.WriteString(bar.ViewAs(st.Progress()))
	b.WriteString("\n\n")

	n := st.CompletedWorkSessions
	every := st.Config.SessionsBeforeLongBreak
	b.WriteString(s.Subtitle.Render(fmt.Sprintf(
		"%d session%s completed  ·  long break every %d",
		n, plural(n), every,
	)))
	b.WriteString("\n")

	if st.Notice != nil {
		b.WriteString("\n")
		b.WriteString(m.viewNotice(*st.Notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *TimerModel) viewNotice(ev domain.PhaseCompleted) string {
	s := m.styles
	body := s.Title.Render(ev.Title()) + "\n" +
		ev.Message() + "\n\n" +
		s.Help.Render(fmt.Sprintf("enter: start %s  ·  x: dismiss", strings.ToLower(ev.To.Label())))
	return s.Notice.Render(body)
}
