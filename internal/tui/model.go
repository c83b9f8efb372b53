package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/fomoduct/internal/app"
	"github.com/andy/fomoduct/internal/config"
	"github.com/andy/fomoduct/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppName is shown in the header
const AppName = "Fomoduct"

// Screen represents the current active screen
type Screen int

const (
	ScreenTimer Screen = iota
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenTimer:
		return "Timer"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model. It owns the one-second tick for the
// session timer so that the countdown keeps going on every screen.
type Model struct {
	app           *app.App
	styles        *Styles
	keys          KeyMap
	help          help.Model
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	timer    tea.Model
	settings tea.Model

	// Tick state: ticking mirrors the timer's running flag and tickGen
	// invalidates ticks scheduled before the last pause
	ticking bool
	tickGen int

	now           time.Time
	configUpdates <-chan *config.Config

	// Error/status line
	err       error
	statusMsg string
}

// New creates a new root model. configUpdates may be nil.
func New(a *app.App, configUpdates <-chan *config.Config) Model {
	// Replaced once the stored preferences load
	styles := NewStyles(domain.ThemeDark, domain.BackdropTomato)
	m := Model{
		app:           a,
		styles:        &styles,
		keys:          DefaultKeyMap,
		help:          help.New(),
		currentScreen: ScreenTimer,
		now:           time.Now(),
		configUpdates: configUpdates,
	}
	m.timer = NewTimerModel(a, m.styles)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadPreferences(),
		clockTick(),
		waitForConfig(m.configUpdates),
		m.timer.Init(),
	)
}

func (m Model) loadPreferences() tea.Cmd {
	prefs := m.app.Preferences
	return func() tea.Msg {
		ctx := context.Background()
		theme, err := prefs.Theme(ctx)
		if err != nil {
			return preferencesLoadedMsg{err: err}
		}
		backdrop, err := prefs.Backdrop(ctx)
		if err != nil {
			return preferencesLoadedMsg{err: err}
		}
		return preferencesLoadedMsg{theme: theme, backdrop: backdrop}
	}
}

func (m Model) toggleTheme() tea.Cmd {
	prefs := m.app.Preferences
	return func() tea.Msg {
		theme, err := prefs.ToggleTheme(context.Background())
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save theme: %w", err)}
		}
		return themeChangedMsg{theme: theme}
	}
}

func (m Model) cycleBackdrop() tea.Cmd {
	prefs := m.app.Preferences
	return func() tea.Msg {
		b, err := prefs.CycleBackdrop(context.Background())
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save backdrop: %w", err)}
		}
		return backdropChangedMsg{backdrop: b}
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func timerTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

// waitForConfig delivers the next config reload
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return configReloadedMsg{}
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// syncTicker arms the tick when the timer starts running and disarms it
// when the timer stops
func (m *Model) syncTicker() tea.Cmd {
	running := m.app.Timer.IsRunning()
	switch {
	case running && !m.ticking:
		m.ticking = true
		m.tickGen++
		return timerTick(m.tickGen)
	case !running && m.ticking:
		m.ticking = false
		m.tickGen++
	}
	return nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenTimer:
		if m.timer == nil {
			m.timer = NewTimerModel(m.app, m.styles)
			return m.timer.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app, m.styles)
			return m.settings.Init()
		}
		return tea.Batch(
			func() tea.Msg { return RefreshDataMsg{} },
			m.settings.Init(),
		)
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global keys other than ctrl+c are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenTimer:
		screen = m.timer
	case ScreenSettings:
		screen = m.settings
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	mm := model.(Model)
	return mm, tea.Batch(cmd, mm.syncTicker())
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		var cmds []tea.Cmd
		for _, screen := range []*tea.Model{&m.timer, &m.settings} {
			if *screen != nil {
				var cmd tea.Cmd
				*screen, cmd = (*screen).Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case timerTickMsg:
		if msg.gen != m.tickGen || !m.ticking {
			return m, nil
		}
		m.app.Timer.Tick()
		if m.app.Timer.IsRunning() {
			return m, timerTick(m.tickGen)
		}
		return m, nil

	case preferencesLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to load preferences: %w", msg.err)
			return m, nil
		}
		*m.styles = NewStyles(msg.theme, msg.backdrop)
		return m, nil

	case themeChangedMsg:
		*m.styles = NewStyles(msg.theme, m.styles.Backdrop)
		return m, nil

	case backdropChangedMsg:
		*m.styles = NewStyles(m.styles.Mode, msg.backdrop)
		m.statusMsg = fmt.Sprintf("Backdrop: %s", msg.backdrop)
		return m, nil

	case configReloadedMsg:
		if msg.cfg == nil {
			m.configUpdates = nil
			return m, nil
		}
		msg.cfg.Database = m.app.Config.Database
		m.app.Config = msg.cfg
		m.app.Timer.ApplyConfig(msg.cfg.Timer.Domain())
		m.statusMsg = "Config reloaded"

		cmds := []tea.Cmd{waitForConfig(m.configUpdates)}
		if m.settings != nil {
			var cmd tea.Cmd
			m.settings, cmd = m.settings.Update(RefreshDataMsg{})
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		cmd := m.initScreen(msg.Screen)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Skip global keys when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit

			case key.Matches(msg, m.keys.Timer):
				m.currentScreen = ScreenTimer
				return m, m.initScreen(ScreenTimer)

			case key.Matches(msg, m.keys.Settings):
				m.currentScreen = ScreenSettings
				return m, m.initScreen(ScreenSettings)

			case key.Matches(msg, m.keys.Theme):
				return m, m.toggleTheme()

			case key.Matches(msg, m.keys.Backdrop):
				return m, m.cycleBackdrop()

			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenTimer:
		if m.timer != nil {
			m.timer, cmd = m.timer.Update(msg)
		}
	case ScreenSettings:
		if m.settings != nil {
			m.settings, cmd = m.settings.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	s := m.styles

	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}

	// Header: name and phase on the left, wall clock on the right
	left := s.Header.Render(fmt.Sprintf("%s · %s", AppName, m.app.Timer.Phase().Label()))
	right := s.Clock.Render(m.now.Format("15:04:05  Mon Jan 2"))
	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	header := left + strings.Repeat(" ", gap) + right

	var content string
	var footer string
	switch m.currentScreen {
	case ScreenTimer:
		if m.timer != nil {
			content = m.timer.View()
		}
		footer = m.help.View(timerKeys{m.keys})
	case ScreenSettings:
		if m.settings != nil {
			content = m.settings.View()
		}
		footer = m.help.View(settingsKeys{m.keys})
	}
	if content == "" {
		content = "Loading..."
	}

	line := ""
	if m.err != nil {
		line = "\n" + s.Error.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	} else if m.statusMsg != "" {
		line = "\n" + s.Success.Render(m.statusMsg)
	}

	divider := lipgloss.NewStyle().Foreground(s.Border).Render(strings.Repeat("─", innerWidth))

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, line, divider, footer)

	// Wrap in border, sized to terminal
	frame := s.Frame.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI. The config file is watched for the lifetime of the
// program and phase completions are delivered to the notifier.
func Run(ctx context.Context, a *app.App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.StartBackground(ctx)

	updates, err := config.Watch(ctx, a.ConfigPath, a.Logger)
	if err != nil {
		a.Logger.Warn("config reload disabled", "error", err)
		updates = nil
	}

	p := tea.NewProgram(New(a, updates), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
