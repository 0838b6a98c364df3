// Package theme provides the color palettes used for cgc output and pickers.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used by terminal output.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // text drawn on Accent
	AccentDim lipgloss.Color // selected row background
	Border    lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	SuccessFg lipgloss.Color
	WarnFg    lipgloss.Color
	ErrorFg   lipgloss.Color
	Cyan      lipgloss.Color
}

// Theme names.
const (
	DraculaName        = "dracula"
	DraculaLightName   = "dracula-light"
	NordName           = "nord"
	GruvboxDarkName    = "gruvbox-dark"
	SolarizedLightName = "solarized-light"
	MonochromeName     = "monochrome"
)

// Dracula returns the Dracula palette.
func Dracula() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"),
		AccentFg:  lipgloss.Color("#282A36"),
		AccentDim: lipgloss.Color("#44475A"),
		Border:    lipgloss.Color("#6272A4"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		SuccessFg: lipgloss.Color("#50FA7B"),
		WarnFg:    lipgloss.Color("#FFB86C"),
		ErrorFg:   lipgloss.Color("#FF5555"),
		Cyan:      lipgloss.Color("#8BE9FD"),
	}
}

// DraculaLight returns Dracula adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#7C3AED"),
		AccentFg:  lipgloss.Color("#FFFFFF"),
		AccentDim: lipgloss.Color("#F3E8FF"),
		Border:    lipgloss.Color("#D0D7DE"),
		MutedFg:   lipgloss.Color("#6E7781"),
		TextFg:    lipgloss.Color("#24292F"),
		SuccessFg: lipgloss.Color("#059669"),
		WarnFg:    lipgloss.Color("#D97706"),
		ErrorFg:   lipgloss.Color("#DC2626"),
		Cyan:      lipgloss.Color("#0891B2"),
	}
}

// Nord returns the Nord palette.
func Nord() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#88C0D0"),
		AccentFg:  lipgloss.Color("#2E3440"),
		AccentDim: lipgloss.Color("#3B4252"),
		Border:    lipgloss.Color("#4C566A"),
		MutedFg:   lipgloss.Color("#7B88A1"),
		TextFg:    lipgloss.Color("#ECEFF4"),
		SuccessFg: lipgloss.Color("#A3BE8C"),
		WarnFg:    lipgloss.Color("#EBCB8B"),
		ErrorFg:   lipgloss.Color("#BF616A"),
		Cyan:      lipgloss.Color("#8FBCBB"),
	}
}

// GruvboxDark returns the Gruvbox dark palette.
func GruvboxDark() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#FABD2F"),
		AccentFg:  lipgloss.Color("#282828"),
		AccentDim: lipgloss.Color("#3C3836"),
		Border:    lipgloss.Color("#665C54"),
		MutedFg:   lipgloss.Color("#A89984"),
		TextFg:    lipgloss.Color("#EBDBB2"),
		SuccessFg: lipgloss.Color("#B8BB26"),
		WarnFg:    lipgloss.Color("#FE8019"),
		ErrorFg:   lipgloss.Color("#FB4934"),
		Cyan:      lipgloss.Color("#8EC07C"),
	}
}

// SolarizedLight returns the Solarized light palette.
func SolarizedLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#268BD2"),
		AccentFg:  lipgloss.Color("#FDF6E3"),
		AccentDim: lipgloss.Color("#EEE8D5"),
		Border:    lipgloss.Color("#93A1A1"),
		MutedFg:   lipgloss.Color("#93A1A1"),
		TextFg:    lipgloss.Color("#586E75"),
		SuccessFg: lipgloss.Color("#859900"),
		WarnFg:    lipgloss.Color("#CB4B16"),
		ErrorFg:   lipgloss.Color("#DC322F"),
		Cyan:      lipgloss.Color("#2AA198"),
	}
}

// Monochrome uses no colors at all, for NO_COLOR style setups.
func Monochrome() *Theme {
	return &Theme{}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch Normalize(name) {
	case DraculaLightName:
		return DraculaLight()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	case SolarizedLightName:
		return SolarizedLight()
	case MonochromeName:
		return Monochrome()
	default:
		return Dracula()
	}
}

// Normalize returns the canonical theme name, or "" when unsupported.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range AvailableThemes() {
		if n == name {
			return n
		}
	}
	return ""
}

// IsLight returns true if the theme is a light theme.
func IsLight(name string) bool {
	switch name {
	case DraculaLightName, SolarizedLightName:
		return true
	default:
		return false
	}
}

// DefaultDark returns the default dark theme name.
func DefaultDark() string {
	return DraculaName
}

// DefaultLight returns the default light theme name.
func DefaultLight() string {
	return DraculaLightName
}

// hasDarkBackground is swapped in tests.
var hasDarkBackground = lipgloss.HasDarkBackground

// Detect picks the default theme matching the terminal background.
func Detect() string {
	if hasDarkBackground() {
		return DefaultDark()
	}
	return DefaultLight()
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		DraculaLightName,
		NordName,
		GruvboxDarkName,
		SolarizedLightName,
		MonochromeName,
	}
}
