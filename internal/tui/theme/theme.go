// Package theme defines color themes for the runway estimator TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // Focused card and overlays
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Funds and Burn color the two projection series.
	Funds lipgloss.Color
	Burn  lipgloss.Color

	Green  lipgloss.Color
	Orange lipgloss.Color
	Red    lipgloss.Color
	Yellow lipgloss.Color
}

// Sunset is the default theme: purple funds fading into an orange-red burn.
var Sunset = Theme{
	Name:         "sunset",
	Background:   lipgloss.Color("#16121F"),
	Surface:      lipgloss.Color("#1F1A2B"),
	SurfaceHover: lipgloss.Color("#2D2640"),
	Border:       lipgloss.Color("#3F3656"),
	BorderAccent: lipgloss.Color("#A78BFA"),
	TextDim:      lipgloss.Color("#5E5675"),
	TextMuted:    lipgloss.Color("#9A93AE"),
	TextPrimary:  lipgloss.Color("#F5F3FF"),
	Accent:       lipgloss.Color("#A78BFA"),
	AccentBright: lipgloss.Color("#C4B5FD"),
	Funds:        lipgloss.Color("#8B5CF6"),
	Burn:         lipgloss.Color("#F97316"),
	Green:        lipgloss.Color("#82CA9D"),
	Orange:       lipgloss.Color("#F97316"),
	Red:          lipgloss.Color("#EF4444"),
	Yellow:       lipgloss.Color("#FACC15"),
}

// FlexokiDark is a warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Funds:        lipgloss.Color("#4385BE"),
	Burn:         lipgloss.Color("#DA702C"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Yellow:       lipgloss.Color("#D0A215"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("5"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("5"),
	AccentBright: lipgloss.Color("13"),
	Funds:        lipgloss.Color("5"),
	Burn:         lipgloss.Color("3"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Yellow:       lipgloss.Color("11"),
}

// All available themes.
var All = []Theme{Sunset, FlexokiDark, Terminal}

// Active is the currently selected theme.
var Active = Sunset

// ByName returns a theme by its name, defaulting to Sunset.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Sunset
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the available theme names.
func Names() []string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = t.Name
	}
	return out
}
