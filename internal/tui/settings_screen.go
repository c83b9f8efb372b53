package tui

import (
	"fmt"
	"strconv"

	"github.com/andy/fomoduct/internal/app"
	"github.com/andy/fomoduct/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SettingsModel edits the four timer durations. Typed text is applied when
// the field loses focus, when +/- is pressed and on save.
type SettingsModel struct {
	app        *app.App
	styles     *Styles
	keys       KeyMap
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App, styles *Styles) tea.Model {
	m := &SettingsModel{
		app:    a,
		styles: styles,
		keys:   DefaultKeyMap,
	}
	m.initForm()
	return m
}

// IsCapturingInput is always true: every printable key edits a field
func (m *SettingsModel) IsCapturingInput() bool {
	return true
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.fields[m.fieldFocus].Focus()
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, len(domain.Fields))
	for i, f := range domain.Fields {
		ti := textinput.New()
		ti.Placeholder = strconv.Itoa(f.Bounds().Min)
		ti.CharLimit = 4
		ti.Width = 6
		m.fields[i] = ti
	}
	m.reload()
	m.fieldFocus = 0
	m.fields[0].Focus()
}

// reload copies the timer's current durations into the inputs
func (m *SettingsModel) reload() {
	cfg := m.app.Timer.Config()
	for i, f := range domain.Fields {
		m.fields[i].SetValue(strconv.Itoa(cfg.Get(f)))
	}
}

// commit applies the text of one input through the timer's setter and
// shows the clamped result
func (m *SettingsModel) commit(i int) {
	f := domain.Fields[i]
	if f.Bounds().Parse(m.fields[i].Value()) != m.app.Timer.Config().Get(f) {
		// Unchanged values are not re-applied: setting the work duration
		// restarts a paused work countdown
		m.app.Timer.SetFieldText(f, m.fields[i].Value())
	}
	m.fields[i].SetValue(strconv.Itoa(m.app.Timer.Config().Get(f)))
}

func (m *SettingsModel) commitAll() {
	for i := range m.fields {
		m.commit(i)
	}
}

// adjust moves the focused field by delta, clamped
func (m *SettingsModel) adjust(delta int) {
	m.commit(m.fieldFocus)
	f := domain.Fields[m.fieldFocus]
	n := m.app.Timer.Config().Get(f) + delta
	m.app.Timer.SetFieldText(f, strconv.Itoa(n))
	m.fields[m.fieldFocus].SetValue(strconv.Itoa(m.app.Timer.Config().Get(f)))
}

func (m *SettingsModel) focus(i int) tea.Cmd {
	m.commit(m.fieldFocus)
	m.fields[m.fieldFocus].Blur()
	m.fieldFocus = (i + len(m.fields)) % len(m.fields)
	return m.fields[m.fieldFocus].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	m.commitAll()
	// Capture now; a config reload may replace m.app.Config before the write
	save := m.app.ConfigSaver()
	return func() tea.Msg {
		return settingsSavedMsg{err: save()}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.reload()
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = ""
			return m, nil
		}
		m.err = nil
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch {
		case key.Matches(msg, m.keys.Back):
			m.commit(m.fieldFocus)
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenTimer} }

		case key.Matches(msg, m.keys.NextField), msg.String() == "enter":
			return m, m.focus(m.fieldFocus + 1)

		case key.Matches(msg, m.keys.PrevField):
			return m, m.focus(m.fieldFocus - 1)

		case key.Matches(msg, m.keys.Increment):
			m.adjust(1)
			return m, nil

		case key.Matches(msg, m.keys.Decrement):
			m.adjust(-1)
			return m, nil

		case key.Matches(msg, m.keys.Save):
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	s := m.styles
	var out string
	out += s.Title.Render("Settings") + "\n\n"

	for i, f := range domain.Fields {
		indicator := "  "
		label := s.Subtitle
		if i == m.fieldFocus {
			indicator = "> "
			label = s.Label
		}
		bounds := f.Bounds()
		out += fmt.Sprintf("%s%s %s\n  [-] %s [+]\n\n",
			indicator,
			label.Render(f.Label()),
			s.Help.Render(fmt.Sprintf("(%d-%d)", bounds.Min, bounds.Max)),
			m.fields[i].View(),
		)
	}

	if m.err != nil {
		out += s.Error.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	} else if m.statusMsg != "" {
		out += s.Success.Render("  "+m.statusMsg) + "\n\n"
	}

	return out
}
