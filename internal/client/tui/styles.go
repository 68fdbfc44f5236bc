package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent   = lipgloss.Color("#2196F3")
	colorCritical = lipgloss.Color("#e53935")
	colorMuted    = lipgloss.Color("#8a8f98")
	colorOK       = lipgloss.Color("#8BC34A")
)

// Styles groups the lipgloss styles used by every view.
type Styles struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Badge    lipgloss.Style
	Priority lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Card     lipgloss.Style
	Modal    lipgloss.Style
	User     lipgloss.Style
	Bot      lipgloss.Style
	Citation lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Status:   lipgloss.NewStyle().Foreground(colorOK),
		Error:    lipgloss.NewStyle().Foreground(colorCritical),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorCritical).Padding(0, 1),
		Priority: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Label:    lipgloss.NewStyle().Width(18),
		Focused:  lipgloss.NewStyle().Width(18).Bold(true).Foreground(colorAccent),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
		Modal:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorAccent).Padding(1, 2),
		User:     lipgloss.NewStyle().Bold(true),
		Bot:      lipgloss.NewStyle().Foreground(colorAccent),
		Citation: lipgloss.NewStyle().Underline(true).Foreground(colorMuted),
	}
}
