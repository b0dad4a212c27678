package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/tui"
	"github.com/alexisbeaulieu97/shipshape/internal/tui/components"
)

// View renders the wizard.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ViewHelp:
		return m.renderHelp()
	case ViewConfirmReset:
		return m.renderConfirmReset()
	default:
		return m.renderPage()
	}
}

func (m *Model) renderPage() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderProgress())
	sections = append(sections, "")

	if m.onPickerPage() {
		sections = append(sections, m.renderPicker())
	} else {
		sections = append(sections, m.renderItem())
	}

	if m.machine.Success() {
		banner := tui.StatusIcon(inspect.StatusCompleted, m.useUnicode) + " Machine is ship shape"
		sections = append(sections, "", successBannerStyle.Render(banner))
	}

	if m.errMsg != "" {
		sections = append(sections, "", errorBannerStyle.Render(m.errMsg))
	}

	sections = append(sections, "", m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader() string {
	title := m.cfg.Name
	if m.cfg.Wizard != nil && m.cfg.Wizard.Title != "" {
		title = m.cfg.Wizard.Title
	}
	count := fmt.Sprintf("Page %d of %d", m.machine.Page()+1, m.machine.Pages())
	return titleStyle.Render(title) + "  " + pageCountStyle.Render(count)
}

func (m *Model) renderProgress() string {
	total := m.machine.Pages()
	completed := len(m.machine.CompletedPages())
	if item, ok := m.currentItem(); ok && len(item.Gradient) == 2 {
		return components.NewProgressGradient(total, item.Gradient[0], item.Gradient[1]).View(completed)
	}
	return components.NewProgress(total).View(completed)
}

// renderItem draws the panel for the current page's item: heading, status
// badge, descriptive text, and the last check time.
func (m *Model) renderItem() string {
	item, ok := m.currentItem()
	if !ok {
		return panelStyle.Render(bodyStyle.Render("This page references an unknown item."))
	}
	page := m.pages[m.machine.Page()]

	heading := page.Title
	if heading == "" {
		heading = item.DisplayName()
	}
	if item.Icon != "" {
		heading = item.Icon + " " + heading
	}
	headingStyle := itemTitleStyle
	if item.Highlight != "" {
		headingStyle = highlightStyle.Foreground(lipgloss.Color(item.Highlight))
	}

	var lines []string
	lines = append(lines, headingStyle.Render(heading))
	lines = append(lines, m.renderStatusBadge(item.ID))

	body := page.Body
	if body == "" {
		body = item.Info
	}
	if body != "" {
		lines = append(lines, "", bodyStyle.Render(body))
	}
	for _, bullet := range item.Bullets {
		mark := "•"
		if !m.useUnicode {
			mark = "-"
		}
		lines = append(lines, bulletStyle.Render("  "+mark+" "+bullet))
	}

	if checkedAt := m.tracker.State(item.ID).CheckedAt; !checkedAt.IsZero() {
		lines = append(lines, "", checkedAtStyle.Render("Last checked "+tui.FormatRelativeTime(checkedAt)))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatusBadge(itemID string) string {
	status := m.tracker.Status(itemID)
	badge := tui.StatusIcon(status, m.useUnicode) + " " + status.Label(m.cfg.Settings.Labels)
	if status == inspect.StatusRunning {
		return m.spinner.View() + statusStyleFor(status).Render(badge)
	}
	return statusStyleFor(status).Render(badge)
}

func (m *Model) renderPicker() string {
	title := m.picker.Title
	if title == "" {
		title = "Choose options"
	}

	var lines []string
	lines = append(lines, itemTitleStyle.Render(title))
	lines = append(lines, "")

	selection := m.machine.Selection()
	for i, opt := range m.picker.Options {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		selected := selection.IsSelected(opt.ID)
		box := "[ ]"
		if m.useUnicode {
			box = "○"
		}
		if selected {
			box = "[x]"
			if m.useUnicode {
				box = "●"
			}
		}

		label := opt.Name
		if label == "" {
			label = opt.ID
		}
		if opt.Icon != "" {
			label = opt.Icon + " " + label
		}

		style := optionStyle
		if selected {
			style = selectedOptionStyle
		}
		lines = append(lines, cursor+style.Render(box+" "+label))
	}

	if m.picker.Required {
		lines = append(lines, "", bulletStyle.Render("Selection required"))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	sep := " • "
	if !m.useUnicode {
		sep = " | "
	}

	forwardHint := "enter next"
	if m.machine.IsLast() {
		label := "finish"
		if m.cfg.Wizard != nil && m.cfg.Wizard.DoneLabel != "" {
			label = m.cfg.Wizard.DoneLabel
		}
		forwardHint = "enter " + label
	}

	hints := []string{"←/→ navigate", forwardHint}
	if m.onPickerPage() {
		hints = append(hints, "↑/↓ move", "space select")
	} else {
		hints = append(hints, "r re-check")
	}
	if m.cfg.Wizard != nil && m.cfg.Wizard.AllowSkip {
		label := "skip"
		if m.cfg.Wizard.SkipLabel != "" {
			label = m.cfg.Wizard.SkipLabel
		}
		hints = append(hints, "s "+label)
	}
	hints = append(hints, "? help", "q quit")
	return footerStyle.Render(strings.Join(hints, sep))
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpTitleStyle.Render("Wizard Keys"))
	b.WriteString("\n\n")

	keys := [][2]string{
		{"→/l/enter", "next page"},
		{"←/h", "previous page"},
		{"1-9", "jump to page"},
		{"↑/↓", "move the selection cursor"},
		{"space", "toggle an option"},
		{"r", "re-run the current check"},
		{"ctrl+r", "reset all progress"},
		{"s", "skip out, when enabled"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-10s", k[0])), k[1]))
	}

	if m.cfg.Wizard != nil && m.cfg.Wizard.Help != "" {
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(m.cfg.Wizard.Help))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Press ? or esc to return"))
	return b.String()
}

func (m *Model) renderConfirmReset() string {
	prompt := confirmStyle.Render(
		"Reset all progress?\n\n" +
			"This clears every completed item and the saved run.\n\n" +
			"(y/n)",
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, prompt)
}
