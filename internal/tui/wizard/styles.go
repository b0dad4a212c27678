package wizard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
)

var (
	primaryColor = lipgloss.Color("99")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("226")
	errorColor   = lipgloss.Color("196")
	mutedColor   = lipgloss.Color("245")
	accentColor  = lipgloss.Color("212")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	pageCountStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	checkedAtStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	successBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(successColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(successColor).
				Padding(0, 2)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(1, 3)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)

// statusStyleFor maps a status to its foreground style.
func statusStyleFor(status inspect.Status) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(status.Color()))
	if status == inspect.StatusFailed || status == inspect.StatusCompleted {
		style = style.Bold(true)
	}
	return style
}

// applyMaxWidth adjusts wrapping styles to the terminal width.
func applyMaxWidth(width int) {
	if width <= 0 {
		return
	}
	panelStyle = panelStyle.MaxWidth(width - 4)
	bodyStyle = bodyStyle.MaxWidth(width - 8)
	footerStyle = footerStyle.Width(width - 2)
}
