package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasklist/internal/task"
)

// Palette is the set of colors a theme renders with.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color
	Text      lipgloss.Color
}

var (
	lightPalette = Palette{
		Primary:   lipgloss.Color("127"), // Magenta
		Secondary: lipgloss.Color("244"), // Gray
		Success:   lipgloss.Color("28"),  // Green
		Error:     lipgloss.Color("160"), // Red
		Warning:   lipgloss.Color("166"), // Orange
		Info:      lipgloss.Color("25"),  // Blue
		Text:      lipgloss.Color("235"), // Near black
	}

	darkPalette = Palette{
		Primary:   lipgloss.Color("205"), // Pink
		Secondary: lipgloss.Color("241"), // Gray
		Success:   lipgloss.Color("42"),  // Green
		Error:     lipgloss.Color("203"), // Red
		Warning:   lipgloss.Color("214"), // Orange/Yellow
		Info:      lipgloss.Color("75"),  // Blue
		Text:      lipgloss.Color("252"), // White/Gray
	}
)

// PaletteFor returns the palette of th. Unknown themes get the light palette.
func PaletteFor(th task.Theme) Palette {
	if th == task.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Styles are the rendered styles for one theme.
type Styles struct {
	Theme   task.Theme
	Palette Palette

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Text      lipgloss.Style
	Header    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Box       lipgloss.Style
}

// NewStyles builds the style set for th.
func NewStyles(th task.Theme) Styles {
	p := PaletteFor(th)
	return Styles{
		Theme:     th,
		Palette:   p,
		Title:     lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Subtle:    lipgloss.NewStyle().Foreground(p.Secondary),
		Text:      lipgloss.NewStyle().Foreground(p.Text),
		Header:    lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(p.Success),
		Error:     lipgloss.NewStyle().Foreground(p.Error),
		Warning:   lipgloss.NewStyle().Foreground(p.Warning),
		Selected:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Completed: lipgloss.NewStyle().Foreground(p.Secondary).Strikethrough(true),
		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),
	}
}

// PriorityColor maps a priority to its badge color.
func (s Styles) PriorityColor(p task.Priority) lipgloss.Color {
	switch p {
	case task.PriorityHigh:
		return s.Palette.Error
	case task.PriorityMedium:
		return s.Palette.Warning
	default:
		return s.Palette.Success
	}
}

// StatusColor maps a status to its badge color.
func (s Styles) StatusColor(st task.Status) lipgloss.Color {
	switch st {
	case task.StatusCompleted:
		return s.Palette.Success
	case task.StatusInProgress:
		return s.Palette.Info
	default:
		return s.Palette.Secondary
	}
}

// PriorityBadge renders a priority label in its color.
func (s Styles) PriorityBadge(p task.Priority) string {
	return lipgloss.NewStyle().Foreground(s.PriorityColor(p)).Bold(true).Render(p.Label())
}

// StatusBadge renders a status label in its color.
func (s Styles) StatusBadge(st task.Status) string {
	return lipgloss.NewStyle().Foreground(s.StatusColor(st)).Render(st.Label())
}

// Checkbox renders the completion marker of a task.
func (s Styles) Checkbox(t task.Task) string {
	if t.Completed() {
		return s.Success.Render("[x]")
	}
	return s.Subtle.Render("[ ]")
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
