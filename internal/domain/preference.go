package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownBackdrop is returned for backdrop names outside Backdrops
var ErrUnknownBackdrop = errors.New("unknown backdrop")

// Preference keys
const (
	PrefTheme    = "theme"
	PrefBackdrop = "backdrop"
)

// Preference is a single stored key/value setting
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// NewPreference creates a preference stamped with the current time
func NewPreference(key, value string) *Preference {
	return &Preference{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
}

// ThemeMode is the light/dark colour scheme
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Toggle returns the opposite mode
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseThemeMode returns the mode for a stored value; ok is false for
// anything that is not light or dark
func ParseThemeMode(s string) (ThemeMode, bool) {
	switch ThemeMode(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Backdrop is a named accent palette drawn behind the timer
type Backdrop string

const (
	BackdropNone   Backdrop = "none"
	BackdropTomato Backdrop = "tomato"
	BackdropOcean  Backdrop = "ocean"
	BackdropForest Backdrop = "forest"
	BackdropNight  Backdrop = "night"
)

// Backdrops lists every backdrop in cycle order
var Backdrops = []Backdrop{
	BackdropTomato,
	BackdropOcean,
	BackdropForest,
	BackdropNight,
	BackdropNone,
}

// ParseBackdrop validates a backdrop name
func ParseBackdrop(s string) (Backdrop, error) {
	name := Backdrop(strings.ToLower(strings.TrimSpace(s)))
	for _, b := range Backdrops {
		if b == name {
			return b, nil
		}
	}
	return "", ErrUnknownBackdrop
}

// Next returns the following backdrop in cycle order
func (b Backdrop) Next() Backdrop {
	for i, candidate := range Backdrops {
		if candidate == b {
			return Backdrops[(i+1)%len(Backdrops)]
		}
	}
	return Backdrops[0]
}
