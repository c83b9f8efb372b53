package tui

import (
	"testing"

	"github.com/andy/fomoduct/internal/config"
	"github.com/andy/fomoduct/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSettings(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, runes(","))
	require.Equal(t, ScreenSettings, m.currentScreen)
	return m
}

func TestSettings_TypedValueIsClamped(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := openSettings(t, sized(t, New(a, nil)))

	// "25" + "99" -> "2599", clamped to 180 when the field loses focus
	m, _ = send(t, m, runes("9"))
	m, _ = send(t, m, runes("9"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, 180, a.Timer.Config().WorkMinutes)
	assert.Equal(t, 180*60, a.Timer.RemainingSeconds())
}

func TestSettings_PlusMinusAdjustFocusedField(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := openSettings(t, sized(t, New(a, nil)))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, runes("+"))
	m, _ = send(t, m, runes("+"))
	assert.Equal(t, 7, a.Timer.Config().ShortBreakMinutes)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, runes("-"))
	}
	assert.Equal(t, 2, a.Timer.Config().SessionsBeforeLongBreak)
}

func TestSettings_GlobalKeysAreTyped(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := openSettings(t, sized(t, New(a, nil)))

	m, _ = send(t, m, runes("q"))
	assert.Equal(t, ScreenSettings, m.currentScreen)

	// Trailing junk after the digits is ignored
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 25, a.Timer.Config().WorkMinutes)

	// Text without digits reads as the minimum
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	for i := 0; i < 3; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m, _ = send(t, m, runes("abc"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, a.Timer.Config().WorkMinutes)
}

func TestSettings_EscReturnsToTimer(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := openSettings(t, sized(t, New(a, nil)))

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	for _, msg := range collect(cmd) {
		m, _ = send(t, m, msg)
	}
	assert.Equal(t, ScreenTimer, m.currentScreen)
}

func TestSettings_SaveWritesConfigFile(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := openSettings(t, sized(t, New(a, nil)))

	m, _ = send(t, m, runes("+"))
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	for _, msg := range collect(cmd) {
		m, _ = send(t, m, msg)
	}

	loaded, err := config.Load(a.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 26, loaded.Timer.WorkMinutes)
	assert.Contains(t, m.View(), "Settings saved")
}

func TestSettings_SaveCapturesValuesBeforeReload(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := openSettings(t, sized(t, New(a, nil)))

	m, _ = send(t, m, runes("+"))
	m, save := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, 26, a.Config.Timer.WorkMinutes)

	// The file watcher delivers a reload before the save command runs
	reloaded := config.DefaultConfig()
	reloaded.Timer.WorkMinutes = 50
	m, _ = send(t, m, configReloadedMsg{cfg: reloaded})
	require.Same(t, reloaded, a.Config)

	for _, msg := range collect(save) {
		m, _ = send(t, m, msg)
	}

	saved, err := config.LoadFile(a.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 26, saved.Timer.WorkMinutes)
	assert.Equal(t, 50, a.Config.Timer.WorkMinutes)
	assert.Contains(t, m.View(), "Settings saved")
}

func TestSettings_UnchangedFieldKeepsPausedCountdown(t *testing.T) {
	a := newTestApp(t, domain.DefaultTimerConfig())
	m := sized(t, New(a, nil))

	m, _ = send(t, m, runes("s"))
	m, _ = send(t, m, timerTickMsg{gen: m.tickGen})
	m, _ = send(t, m, runes("s"))
	require.Equal(t, 25*60-1, a.Timer.RemainingSeconds())

	m = openSettings(t, m)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, 25*60-1, a.Timer.RemainingSeconds())
}
