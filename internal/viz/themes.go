package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Bodies  lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// Available themes
var (
	ThemeBlueprint = Theme{
		Name:    "blueprint",
		Bodies:  lipgloss.Color("#8ecdf7"),
		Accent:  lipgloss.Color("#ffd166"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4f7796"),
		Border:  lipgloss.Color("#2b4a66"),
		Success: lipgloss.Color("#06d6a0"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ef476f"),
	}

	ThemeChalk = Theme{
		Name:    "chalk",
		Bodies:  lipgloss.Color("#f5f5f5"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#444444"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Bodies:  lipgloss.Color("#00ff00"), // Green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#003300"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	// Default theme
	CurrentTheme = ThemeBlueprint

	Themes = []Theme{
		ThemeBlueprint,
		ThemeChalk,
		ThemePhosphor,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeBlueprint
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeBlueprint
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
