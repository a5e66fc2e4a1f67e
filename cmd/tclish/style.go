package main

import "github.com/charmbracelet/lipgloss"

// theme groups every style the terminal output uses, so the REPL and the
// token dumps share one palette.
type theme struct {
	title    lipgloss.Style
	rule     lipgloss.Style
	prompt   lipgloss.Style
	echo     lipgloss.Style
	result   lipgloss.Style
	failure  lipgloss.Style
	note     lipgloss.Style
	keyName  lipgloss.Style
	keyDesc  lipgloss.Style
	panel    lipgloss.Style
	heading  lipgloss.Style
	variable lipgloss.Style

	position lipgloss.Style
	kind     lipgloss.Style
	operator lipgloss.Style
	text     lipgloss.Style
}

func newTheme() theme {
	var (
		blue   = lipgloss.Color("#2563EB")
		green  = lipgloss.Color("#059669")
		red    = lipgloss.Color("#DC2626")
		gray   = lipgloss.Color("#71717A")
		amber  = lipgloss.Color("#D97706")
		violet = lipgloss.Color("#7C3AED")
	)
	return theme{
		title:    lipgloss.NewStyle().Foreground(blue).Bold(true),
		rule:     lipgloss.NewStyle().Foreground(gray),
		prompt:   lipgloss.NewStyle().Foreground(violet).Bold(true),
		echo:     lipgloss.NewStyle().Foreground(gray),
		result:   lipgloss.NewStyle().Foreground(green),
		failure:  lipgloss.NewStyle().Foreground(red),
		note:     lipgloss.NewStyle().Foreground(gray).Italic(true),
		keyName:  lipgloss.NewStyle().Foreground(amber),
		keyDesc:  lipgloss.NewStyle().Foreground(gray),
		panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(violet).PaddingLeft(1),
		heading:  lipgloss.NewStyle().Foreground(violet).Bold(true).Underline(true),
		variable: lipgloss.NewStyle().Foreground(amber),

		position: lipgloss.NewStyle().Foreground(gray),
		kind:     lipgloss.NewStyle().Foreground(blue).Bold(true),
		operator: lipgloss.NewStyle().Foreground(amber).Bold(true),
		text:     lipgloss.NewStyle().Foreground(green),
	}
}

var styles = newTheme()
