package dashboard

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

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	groupHeaderStyle = lipgloss.NewStyle().
				Bold(true)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Bold(true).
				Foreground(accentColor)

	timeStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	scrollInfoStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 2)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	warnBannerStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

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
	itemStyle = itemStyle.MaxWidth(width - 4)
	selectedItemStyle = selectedItemStyle.MaxWidth(width - 4)
	summaryStyle = summaryStyle.MaxWidth(width - 2)
	detailStyle = detailStyle.MaxWidth(width - 2)
	headerStyle = headerStyle.Width(width - 2)
	footerStyle = footerStyle.Width(width - 2)
}
