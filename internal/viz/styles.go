package viz

import "github.com/charmbracelet/lipgloss"

const panelWidth = 36

type styles struct {
	bright, dim  lipgloss.Style
	panel        lipgloss.Style
	header       lipgloss.Style
	label, value lipgloss.Style
	running      lipgloss.Style
	paused       lipgloss.Style
	graph        lipgloss.Style
	help         lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		bright: lipgloss.NewStyle().Foreground(t.Particle),
		dim:    lipgloss.NewStyle().Foreground(t.Link),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(panelWidth - 1),
		header:  lipgloss.NewStyle().Foreground(t.Title).Bold(true),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Foreground(t.Particle).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Alert).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Particle),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}
