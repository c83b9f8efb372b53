package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Timer    key.Binding
	Settings key.Binding

	// Appearance
	Theme    key.Binding
	Backdrop key.Binding

	// Timer
	Toggle  key.Binding
	Reset   key.Binding
	Next    key.Binding
	Dismiss key.Binding

	// Settings form
	Increment key.Binding
	Decrement key.Binding
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Timer:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer")),
	Settings:  key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Theme:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "light/dark")),
	Backdrop:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "backdrop")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Next:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start next")),
	Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
	Increment: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "increase")),
	Decrement: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "decrease")),
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
}

// timerKeys is the help.KeyMap shown under the timer screen
type timerKeys struct{ KeyMap }

func (k timerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Next, k.Dismiss, k.Settings, k.Theme, k.Backdrop, k.Quit}
}

func (k timerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Next, k.Dismiss},
		{k.Settings, k.Timer, k.Theme, k.Backdrop},
		{k.Help, k.Quit},
	}
}

// settingsKeys is the help.KeyMap shown under the settings screen
type settingsKeys struct{ KeyMap }

func (k settingsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Increment, k.Decrement, k.Save, k.Back}
}

func (k settingsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.Increment, k.Decrement},
		{k.Save, k.Back},
	}
}
