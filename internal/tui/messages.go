package tui

import (
	"time"

	"github.com/andy/fomoduct/internal/config"
	"github.com/andy/fomoduct/internal/domain"
)

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg asks a screen to reload what it shows
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// timerTickMsg advances the session timer by one second. gen identifies the
// run that scheduled it; ticks from an earlier run are dropped.
type timerTickMsg struct {
	gen int
}

// clockTickMsg refreshes the header clock
type clockTickMsg time.Time

// preferencesLoadedMsg carries the stored theme and backdrop
type preferencesLoadedMsg struct {
	theme    domain.ThemeMode
	backdrop domain.Backdrop
	err      error
}

// themeChangedMsg reports a stored theme change
type themeChangedMsg struct {
	theme domain.ThemeMode
}

// backdropChangedMsg reports a stored backdrop change
type backdropChangedMsg struct {
	backdrop domain.Backdrop
}

// configReloadedMsg carries a config file change seen on disk
type configReloadedMsg struct {
	cfg *config.Config
}

// settingsSavedMsg reports the result of writing the config file
type settingsSavedMsg struct {
	err error
}
