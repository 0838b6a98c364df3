package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warn     lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles builds the styles for t. A nil theme yields unstyled output.
func NewStyles(t *Theme) Styles {
	if t == nil {
		t = Monochrome()
	}
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.AccentFg).Background(t.Accent),
		Item:     lipgloss.NewStyle().Foreground(t.TextFg),
		Muted:    lipgloss.NewStyle().Foreground(t.MutedFg),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(t.SuccessFg),
		Warn:     lipgloss.NewStyle().Foreground(t.WarnFg),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(t.ErrorFg),
		Info:     lipgloss.NewStyle().Foreground(t.Cyan),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
