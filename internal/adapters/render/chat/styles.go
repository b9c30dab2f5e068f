package chat

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title         lipgloss.Style
	userLabel     lipgloss.Style
	userText      lipgloss.Style
	assistantText lipgloss.Style
	thinking      lipgloss.Style
	inputBorder   lipgloss.Style
	help          lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1),
		userLabel:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		userText:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		assistantText: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		thinking:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		inputBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		help:          lipgloss.NewStyle().Faint(true),
	}
}
