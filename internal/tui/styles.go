package tui

import (
	"github.com/andy/fomoduct/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors shared by every theme
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red
)

// palette is the accent set for one backdrop
type palette struct {
	accent     lipgloss.Color
	breakColor lipgloss.Color
	panelDark  lipgloss.Color
	panelLight lipgloss.Color
}

var palettes = map[domain.Backdrop]palette{
	domain.BackdropTomato: {accent: "203", breakColor: "78", panelDark: "52", panelLight: "224"},
	domain.BackdropOcean:  {accent: "39", breakColor: "122", panelDark: "17", panelLight: "153"},
	domain.BackdropForest: {accent: "71", breakColor: "186", panelDark: "22", panelLight: "194"},
	domain.BackdropNight:  {accent: "141", breakColor: "117", panelDark: "234", panelLight: "189"},
	domain.BackdropNone:   {accent: "39", breakColor: "76"},
}

// Styles holds every style the screens render with. It is rebuilt whenever
// the theme or backdrop changes.
type Styles struct {
	Mode     domain.ThemeMode
	Backdrop domain.Backdrop

	Accent     lipgloss.Color
	BreakColor lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style

	Header lipgloss.Style
	Clock  lipgloss.Style
	Footer lipgloss.Style
	Frame  lipgloss.Style

	// Timer specific
	Panel   lipgloss.Style
	Digits  lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Notice  lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the style set for a theme mode and backdrop
func NewStyles(mode domain.ThemeMode, backdrop domain.Backdrop) Styles {
	p, ok := palettes[backdrop]
	if !ok {
		backdrop = domain.BackdropTomato
		p = palettes[backdrop]
	}

	s := Styles{
		Mode:       mode,
		Backdrop:   backdrop,
		Accent:     p.accent,
		BreakColor: p.breakColor,
		Text:       lipgloss.Color("252"),
		Muted:      lipgloss.Color("241"),
		Border:     lipgloss.Color("63"),
	}
	panel := p.panelDark
	if mode == domain.ThemeLight {
		s.Text = lipgloss.Color("235")
		s.Muted = lipgloss.Color("245")
		s.Border = lipgloss.Color("99")
		panel = p.panelLight
	}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(s.Accent)
	s.Subtitle = lipgloss.NewStyle().Foreground(s.Muted)
	s.Help = lipgloss.NewStyle().Foreground(s.Muted)
	s.Label = lipgloss.NewStyle().Bold(true).Foreground(s.Text)
	s.Value = lipgloss.NewStyle().Foreground(s.Accent)

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(s.Accent).Padding(0, 1)
	s.Clock = lipgloss.NewStyle().Foreground(s.Muted)
	s.Footer = lipgloss.NewStyle().Foreground(s.Muted)
	s.Frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Border).
		Padding(1, 2)

	s.Panel = lipgloss.NewStyle().Padding(1, 4).Align(lipgloss.Center)
	if panel != "" {
		s.Panel = s.Panel.Background(panel)
	}
	s.Digits = lipgloss.NewStyle().Bold(true).Foreground(s.Accent)
	s.Running = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	s.Paused = lipgloss.NewStyle().Bold(true).Foreground(warningColor)
	s.Notice = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Accent).
		Padding(0, 2)

	s.Success = lipgloss.NewStyle().Foreground(successColor)
	s.Warning = lipgloss.NewStyle().Foreground(warningColor)
	s.Error = lipgloss.NewStyle().Foreground(errorColor)
	return s
}

// PhaseColor returns the accent used for a phase
func (s Styles) PhaseColor(p domain.Phase) lipgloss.Color {
	if p.IsBreak() {
		return s.BreakColor
	}
	return s.Accent
}
