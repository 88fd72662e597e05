package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Border lipgloss.Color
	Title  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Wall   lipgloss.Color
	Ghost  lipgloss.Color
	Vector lipgloss.Color
	Graph  lipgloss.Color
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:   "neon",
		Border: lipgloss.Color("#444466"),
		Title:  lipgloss.Color("#00ffff"),
		Label:  lipgloss.Color("#888899"),
		Value:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#ff00ff"),
		Muted:  lipgloss.Color("#666688"),
		Wall:   lipgloss.Color("#3a3a5a"),
		Ghost:  lipgloss.Color("#aaaaaa"),
		Vector: lipgloss.Color("#ffff00"), // matches the window front end
		Graph:  lipgloss.Color("#00ff88"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Border: lipgloss.Color("#005500"),
		Title:  lipgloss.Color("#88ff88"),
		Label:  lipgloss.Color("#00cc00"),
		Value:  lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#ffff00"),
		Muted:  lipgloss.Color("#005500"),
		Wall:   lipgloss.Color("#003300"),
		Ghost:  lipgloss.Color("#00aa00"),
		Vector: lipgloss.Color("#88ff88"),
		Graph:  lipgloss.Color("#00ff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Border: lipgloss.Color("#888888"),
		Title:  lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#aaaaaa"),
		Value:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#666666"),
		Wall:   lipgloss.Color("#444444"),
		Ghost:  lipgloss.Color("#cccccc"),
		Vector: lipgloss.Color("#ffaa00"),
		Graph:  lipgloss.Color("#cccccc"),
	}

	Themes = []Theme{ThemeNeon, ThemeRetro, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to neon.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
