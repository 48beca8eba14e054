package step

import "github.com/charmbracelet/lipgloss"

type styles struct {
	instructions lipgloss.Style
	position     lipgloss.Style
	heading      lipgloss.Style
	object       lipgloss.Style
	slot         lipgloss.Style
	command      lipgloss.Style
	param        lipgloss.Style
	empty        lipgloss.Style
	latency      lipgloss.Style
}

func newStyles() styles {
	return styles{
		instructions: lipgloss.NewStyle().Bold(true),
		position:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		heading:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		object:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		slot:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		command:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		param:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:        lipgloss.NewStyle().Faint(true),
		latency:      lipgloss.NewStyle().Faint(true),
	}
}
