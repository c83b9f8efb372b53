package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/fomoduct/internal/app"
	"github.com/andy/fomoduct/internal/config"
	"github.com/andy/fomoduct/internal/domain"
	"github.com/andy/fomoduct/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPreferenceRepo struct {
	prefs map[string]*domain.Preference
}

func (r *memPreferenceRepo) Get(ctx context.Context, key string) (*domain.Preference, error) {
	return r.prefs[key], nil
}
func (r *memPreferenceRepo) Set(ctx context.Context, pref *domain.Preference) error {
	r.prefs[pref.Key] = pref
	return nil
}
func (r *memPreferenceRepo) List(ctx context.Context) ([]*domain.Preference, error) {
	return nil, nil
}
func (r *memPreferenceRepo) Delete(ctx context.Context, key string) error {
	delete(r.prefs, key)
	return nil
}
func (r *memPreferenceRepo) Clear(ctx context.Context) error {
	r.prefs = map[string]*domain.Preference{}
	return nil
}

func newTestApp(t *testing.T, timerCfg domain.TimerConfig) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Timer = config.FromDomain(timerCfg)

	repo := &memPreferenceRepo{prefs: map[string]*domain.Preference{}}
	return &app.App{
		Config:         cfg,
		ConfigPath:     filepath.Join(t.TempDir(), "config.yaml"),
		Logger:         hclog.NewNullLogger(),
		PreferenceRepo: repo,
		Timer:          service.NewSessionTimer(timerCfg, nil),
		Preferences:    service.NewPreferenceService(repo, func() bool { return true }),
	}
}

func oneMinute() domain.TimerConfig {
	return domain.TimerConfig{
		WorkMinutes:             1,
		ShortBreakMinutes:       1,
		LongBreakMinutes:        2,
		SessionsBeforeLongBreak: 2,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// collect runs a command that is known not to sleep and flattens batches
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func sized(t *testing.T, m Model) Model {
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestModel_SpaceStartsTimerAndArmsTick(t *testing.T) {
	a := newTestApp(t, oneMinute())
	m := sized(t, New(a, nil))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeySpace})

	assert.True(t, a.Timer.IsRunning())
	assert.True(t, m.ticking)
	assert.Equal(t, 1, m.tickGen)
	assert.NotNil(t, cmd)

	m, _ = send(t, m, timerTickMsg{gen: m.tickGen})
	assert.Equal(t, 59, a.Timer.RemainingSeconds())
}

func TestModel_StaleTickIgnoredAfterPauseResume(t *testing.T) {
	a := newTestApp(t, oneMinute())
	m := sized(t, New(a, nil))

	m, _ = send(t, m, runes("s"))
	stale := m.tickGen

	m, _ = send(t, m, runes("s"))
	assert.False(t, a.Timer.IsRunning())
	assert.False(t, m.ticking)

	m, _ = send(t, m, runes("s"))
	require.True(t, a.Timer.IsRunning())
	assert.NotEqual(t, stale, m.tickGen)

	m, _ = send(t, m, timerTickMsg{gen: stale})
	assert.Equal(t, 60, a.Timer.RemainingSeconds())

	m, _ = send(t, m, timerTickMsg{gen: m.tickGen})
	assert.Equal(t, 59, a.Timer.RemainingSeconds())
}

func TestModel_PhaseCompletionShowsNotice(t *testing.T) {
	a := newTestApp(t, oneMinute())
	m := sized(t, New(a, nil))

	m, _ = send(t, m, runes("s"))
	for i := 0; i < 60; i++ {
		m, _ = send(t, m, timerTickMsg{gen: m.tickGen})
	}

	st := a.Timer.Snapshot()
	assert.Equal(t, domain.PhaseShortBreak, st.Phase)
	assert.False(t, st.Running)
	assert.False(t, m.ticking)
	require.NotNil(t, st.Notice)
	assert.Contains(t, m.View(), "Time for a short break.")

	// Further ticks from the finished run do nothing
	m, _ = send(t, m, timerTickMsg{gen: m.tickGen})
	assert.Equal(t, 60, a.Timer.RemainingSeconds())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, a.Timer.IsRunning())
	assert.Nil(t, a.Timer.Snapshot().Notice)
	assert.True(t, m.ticking)
}

func TestModel_DismissAndReset(t *testing.T) {
	a := newTestApp(t, oneMinute())
	m := sized(t, New(a, nil))

	m, _ = send(t, m, runes("s"))
	for i := 0; i < 60; i++ {
		m, _ = send(t, m, timerTickMsg{gen: m.tickGen})
	}
	require.NotNil(t, a.Timer.Snapshot().Notice)

	m, _ = send(t, m, runes("x"))
	assert.Nil(t, a.Timer.Snapshot().Notice)
	assert.False(t, a.Timer.IsRunning())

	m, _ = send(t, m, runes("r"))
	st := a.Timer.Snapshot()
	assert.Equal(t, domain.PhaseWork, st.Phase)
	assert.Equal(t, 0, st.CompletedWorkSessions)
	assert.Equal(t, 60, st.RemainingSeconds)
}

func TestModel_QuitAllowedWhileRunning(t *testing.T) {
	a := newTestApp(t, oneMinute())
	m := sized(t, New(a, nil))

	m, _ = send(t, m, runes("s"))
	_, cmd := send(t, m, runes("q"))

	msgs := collect(cmd)
	require.NotEmpty(t, msgs)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
}

func TestModel_ThemeToggleAndBackdropCycle(t *testing.T) {
	a := newTestApp(t, oneMinute())
	m := sized(t, New(a, nil))

	for _, msg := range collect(m.loadPreferences()) {
		m, _ = send(t, m, msg)
	}
	assert.Equal(t, domain.ThemeDark, m.styles.Mode)
	assert.Equal(t, domain.BackdropTomato, m.styles.Backdrop)

	_, cmd := send(t, m, runes("T"))
	for _, msg := range collect(cmd) {
		m, _ = send(t, m, msg)
	}
	assert.Equal(t, domain.ThemeLight, m.styles.Mode)

	_, cmd = send(t, m, runes("b"))
	for _, msg := range collect(cmd) {
		m, _ = send(t, m, msg)
	}
	assert.Equal(t, domain.BackdropOcean, m.styles.Backdrop)

	stored, err := a.Preferences.Backdrop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BackdropOcean, stored)
}

func TestModel_TimerKeepsTickingOnSettingsScreen(t *testing.T) {
	a := newTestApp(t, oneMinute())
	m := sized(t, New(a, nil))

	m, _ = send(t, m, runes("s"))
	m, _ = send(t, m, runes(","))
	require.Equal(t, ScreenSettings, m.currentScreen)

	m, _ = send(t, m, timerTickMsg{gen: m.tickGen})
	assert.Equal(t, 59, a.Timer.RemainingSeconds())
}

func TestModel_ConfigReloadAppliesDurations(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := sized(t, New(a, nil))

	reloaded := config.DefaultConfig()
	reloaded.Timer.WorkMinutes = 40
	reloaded.Timer.SessionsBeforeLongBreak = 6

	m, _ = send(t, m, configReloadedMsg{cfg: reloaded})

	assert.Equal(t, 40, a.Timer.Config().WorkMinutes)
	assert.Equal(t, 6, a.Timer.Config().SessionsBeforeLongBreak)
	assert.Equal(t, 40*60, a.Timer.RemainingSeconds())
	assert.Contains(t, m.View(), "Config reloaded")
}

func TestModel_ViewHeader(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := sized(t, New(a, nil))

	view := m.View()
	assert.Contains(t, view, AppName)
	assert.Contains(t, view, "Work")
	assert.Contains(t, view, "0 sessions completed")
}

func TestBigClock(t *testing.T) {
	out := bigClock("25:00")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "███ ███     ███ ███", lines[0])
}
