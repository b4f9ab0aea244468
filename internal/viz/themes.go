package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the terminal view. Particle and Link style canvas cells; the
// rest style the stats panel.
type Theme struct {
	Name     string
	Particle lipgloss.Color
	Link     lipgloss.Color
	Title    lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Alert    lipgloss.Color
}

var (
	ThemeNetwork = Theme{
		Name:     "network",
		Particle: lipgloss.Color("#00ff9d"),
		Link:     lipgloss.Color("#00804f"),
		Title:    lipgloss.Color("#00ff9d"),
		Text:     lipgloss.Color("#e0e0e0"),
		Muted:    lipgloss.Color("#666666"),
		Alert:    lipgloss.Color("#ffaa00"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Particle: lipgloss.Color("#00ff00"), // Green phosphor
		Link:     lipgloss.Color("#005500"),
		Title:    lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Alert:    lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Particle: lipgloss.Color("#ffffff"),
		Link:     lipgloss.Color("#777777"),
		Title:    lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Alert:    lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Particle: lipgloss.Color("#00a8cc"),
		Link:     lipgloss.Color("#0077be"),
		Title:    lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Alert:    lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Particle: lipgloss.Color("#feca57"),
		Link:     lipgloss.Color("#ff6b6b"), // Coral
		Title:    lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Alert:    lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeNetwork,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the network theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNetwork
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
