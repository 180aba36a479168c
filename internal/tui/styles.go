package tui

import "github.com/charmbracelet/lipgloss"

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
)

type styles struct {
	title    lipgloss.Style
	success  lipgloss.Style
	pending  lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	err      lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	help     lipgloss.Style
	panel    lipgloss.Style
	form     lipgloss.Style
}

func newStyles(dark bool) styles {
	border := lipgloss.Color("250")
	fg := lipgloss.Color("235")
	accent := lipgloss.Color("27")
	if dark {
		border = lipgloss.Color("8")
		fg = lipgloss.Color("252")
		accent = lipgloss.Color("12")
	}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		accent:   lipgloss.NewStyle().Foreground(accent),
		muted:    lipgloss.NewStyle().Faint(true),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:     lipgloss.NewStyle().Faint(true),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		form:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
	}
}
