// Package styles provides shared lipgloss styles for the TUI.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeExists reports whether name is a built-in theme.
func ThemeExists(name string) bool {
	_, ok := themes[name]
	return ok
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Styles derived from the active palette. SetTheme rebuilds them.
var (
	TableHeader  lipgloss.Style
	RowCursor    lipgloss.Style
	RowSelected  lipgloss.Style
	TextMuted    lipgloss.Style
	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	StatusActive lipgloss.Style
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme applies a palette to the shared styles.
func SetTheme(p Palette) {
	TableHeader = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	RowCursor = lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Surface)
	RowSelected = lipgloss.NewStyle().Foreground(p.Success)
	TextMuted = lipgloss.NewStyle().Foreground(p.Muted)
	StatusBar = lipgloss.NewStyle().Foreground(p.Muted)
	StatusError = lipgloss.NewStyle().Foreground(p.Error)
	StatusActive = lipgloss.NewStyle().Foreground(p.Warning)
}

// GetPalette returns the named palette, falling back to the default.
func GetPalette(name string) (Palette, bool) {
	if p, ok := themes[name]; ok {
		return p, true
	}
	return themes[DefaultTheme], false
}
