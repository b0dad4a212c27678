package dashboard

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/shipshape/internal/tui"
	"github.com/alexisbeaulieu97/shipshape/internal/tui/components"
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ViewHelp:
		return m.renderHelp()
	case ViewDetail:
		return m.renderDetail()
	default:
		return m.renderList()
	}
}

func (m *Model) renderList() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderStatusLine())
	sections = append(sections, summaryStyle.Render(components.NewSummary(m.summaryData()).View()))
	sections = append(sections, m.renderRows())

	if m.statusMsg != "" {
		sections = append(sections, warnBannerStyle.Render(m.statusMsg))
	}
	if m.errMsg != "" {
		sections = append(sections, errorBannerStyle.Render(m.errMsg))
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) renderTitle() string {
	title := "shipshape"
	if m.useUnicode {
		title = "⚓ shipshape"
	}
	name := m.cfg.Name
	if name == "" {
		name = m.preset
	}
	subtitle := fmt.Sprintf("%s (%d items)", name, m.tracker.Len())
	return headerStyle.Render(title) + "  " + subtitleStyle.Render(subtitle)
}

func (m *Model) renderStatusLine() string {
	if m.refreshing {
		return m.spinner.View() + fmt.Sprintf("Checking %d/%d...", m.refreshDone, m.refreshTotal)
	}
	if m.haveCached {
		line := "Last run " + tui.FormatRelativeTime(m.lastKnown.LastRun)
		if m.lastKnown.Summary != "" {
			line += " (" + m.lastKnown.Summary + ")"
		}
		return subtitleStyle.Render(line)
	}
	return subtitleStyle.Render("No runs recorded yet")
}

// renderRows draws the grouped item list with a scroll window around the
// cursor.
func (m *Model) renderRows() string {
	list := m.itemList()
	rows := list.Rows()
	if len(rows) == 0 {
		return subtitleStyle.Render("No items configured. Add items to the config to get started.")
	}

	cursorRow := list.ItemIndex(m.cursor)

	maxVisible := m.height - 16
	if maxVisible < 4 {
		maxVisible = 4
	}
	start, end := scrollWindow(len(rows), cursorRow, maxVisible)

	var lines []string
	if start > 0 {
		marker := "▲ More above"
		if !m.useUnicode {
			marker = "^ More above"
		}
		lines = append(lines, scrollInfoStyle.Render(marker))
	}

	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == cursorRow))
	}

	if end < len(rows) {
		marker := "▼ More below"
		if !m.useUnicode {
			marker = "v More below"
		}
		lines = append(lines, scrollInfoStyle.Render(marker))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(row components.Row, selected bool) string {
	if row.Header {
		heading := fmt.Sprintf("%s %s (%d)", tui.StatusIcon(row.Status, m.useUnicode), row.Label, row.Count)
		return groupHeaderStyle.Render(statusStyleFor(row.Status).Render(heading))
	}

	label := row.Item.DisplayName()
	if row.Item.Icon != "" {
		label = row.Item.Icon + " " + label
	}
	checked := tui.FormatRelativeTime(m.tracker.State(row.Item.ID).CheckedAt)
	line := fmt.Sprintf("%s %s  %s", tui.StatusIcon(row.Status, m.useUnicode), label, timeStyle.Render(checked))

	if selected {
		marker := "▸ "
		if !m.useUnicode {
			marker = "> "
		}
		return selectedItemStyle.Render(marker + line)
	}
	return itemStyle.Render(line)
}

// scrollWindow centers a window of size around focus within total rows.
func scrollWindow(total, focus, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	if focus < 0 {
		focus = 0
	}
	start := focus - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}

func (m *Model) renderDetail() string {
	item := m.detail
	status := m.tracker.Status(item.ID)
	state := m.tracker.State(item.ID)

	heading := item.DisplayName()
	if item.Icon != "" {
		heading = item.Icon + " " + heading
	}

	var lines []string
	lines = append(lines, groupHeaderStyle.Render(heading))
	badge := tui.StatusIcon(status, m.useUnicode) + " " + status.Label(m.cfg.Settings.Labels)
	lines = append(lines, statusStyleFor(status).Render(badge))
	lines = append(lines, "")

	if item.Category != "" {
		lines = append(lines, "Category: "+item.Category)
	}
	if state.Source != "" {
		lines = append(lines, "Checked via: "+string(state.Source))
	}
	lines = append(lines, "Last checked: "+tui.FormatRelativeTime(state.CheckedAt))

	if item.Info != "" {
		lines = append(lines, "", item.Info)
	}
	for _, bullet := range item.Bullets {
		mark := "•"
		if !m.useUnicode {
			mark = "-"
		}
		lines = append(lines, "  "+mark+" "+bullet)
	}

	body := detailStyle.Render(strings.Join(lines, "\n"))
	footer := footerStyle.Render("esc back" + sep(m.useUnicode) + "r re-check" + sep(m.useUnicode) + "q quit")
	return body + "\n\n" + footer
}

func (m *Model) renderFooter() string {
	s := sep(m.useUnicode)
	hints := "↑/↓ navigate" + s + "enter details" + s + "r refresh"
	if m.auditor != nil && m.cfg.Audit != nil && len(m.cfg.Audit.Sources) > 0 {
		hints += s + "a audit"
	}
	hints += s + "? help" + s + "q quit"
	return footerStyle.Render(hints)
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpTitleStyle.Render("Dashboard Keys"))
	b.WriteString("\n\n")

	keys := [][2]string{
		{"↑/↓, j/k", "move between items"},
		{"1-9", "jump to the nth item"},
		{"enter", "open item details"},
		{"r", "re-check everything"},
		{"a", "re-run the category audit"},
		{"x/esc", "dismiss an error"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-10s", k[0])), k[1]))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Press ? or esc to return"))
	return b.String()
}

func sep(unicode bool) string {
	if unicode {
		return " • "
	}
	return " | "
}
