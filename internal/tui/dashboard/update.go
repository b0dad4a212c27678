package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shipshape/internal/beacon"
	"github.com/alexisbeaulieu97/shipshape/internal/history"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
)

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width < minWidth || msg.Height < minHeight {
			m.statusMsg = fmt.Sprintf(
				"Terminal too small (%dx%d). Minimum size: %dx%d",
				msg.Width, msg.Height, minWidth, minHeight,
			)
		} else {
			m.statusMsg = ""
		}
		applyMaxWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EvalOutcomeMsg:
		return m.handleOutcome(msg.Outcome)

	case EvalClosedMsg:
		// Service shut down; stop re-arming the outcome loop.
		return m, nil

	case RefreshTickMsg:
		if m.quitting {
			return m, nil
		}
		m.beginRefresh()
		if m.cfg.Settings.Refresh > 0 {
			return m, refreshTickCmd(time.Duration(m.cfg.Settings.Refresh) * time.Second)
		}
		return m, nil

	case AuditDoneMsg:
		if msg.Err != nil {
			m.errMsg = "Audit failed: " + msg.Err.Error()
			m.log.WithFields(map[string]any{"error": msg.Err}).Warn("audit failed")
			return m, nil
		}
		m.categories = msg.Aggregates
		return m, nil

	case StatusSavedMsg:
		if msg.Err != nil {
			m.log.WithFields(map[string]any{"error": msg.Err}).Warn("status cache save failed")
		}
		return m, nil

	case RunRecordedMsg:
		if msg.Err != nil {
			m.log.WithFields(map[string]any{"error": msg.Err}).Warn("history record failed")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleOutcome folds one evaluation result into the tracker and closes out
// the sweep when the last queued item reports back.
func (m *Model) handleOutcome(outcome inspect.Outcome) (tea.Model, tea.Cmd) {
	if outcome.Err != nil {
		m.tracker.MarkFailure(outcome.ItemID)
	} else {
		m.tracker.Apply(outcome.Result)
	}

	cmds := []tea.Cmd{awaitOutcomeCmd(m.service)}
	if m.refreshing {
		m.refreshDone++
		if m.refreshDone >= m.refreshTotal {
			cmds = append(cmds, m.finalizeRefresh()...)
		}
	}
	return m, tea.Batch(cmds...)
}

// finalizeRefresh snapshots the sweep into the status cache, the run
// history, and the status signal file.
func (m *Model) finalizeRefresh() []tea.Cmd {
	m.refreshing = false
	now := time.Now()

	counts := m.tracker.Counts()
	total := m.tracker.Len()
	completed := counts[inspect.StatusCompleted]
	failed := counts[inspect.StatusFailed]
	allComplete := m.tracker.AllComplete()

	score := 0.0
	if total > 0 {
		score = float64(completed) / float64(total)
	}

	status := registry.CachedStatus{
		AllComplete: allComplete,
		Score:       score,
		Counts:      statusCounts(counts),
		LastRun:     now,
		Summary:     fmt.Sprintf("%d/%d ready", completed, total),
	}
	m.lastKnown = status
	m.haveCached = true

	if m.signals != nil {
		m.signals.WriteStatus(beacon.Status{
			Preset:      m.preset,
			Total:       total,
			Completed:   completed,
			AllComplete: allComplete,
		})
	}

	m.log.WithFields(map[string]any{
		"completed": completed,
		"failed":    failed,
		"total":     total,
	}).Info("refresh finished")

	var cmds []tea.Cmd
	if cmd := saveStatusCmd(m.cache, m.preset, status); cmd != nil {
		cmds = append(cmds, cmd)
	}
	run := history.Run{
		Preset:      m.preset,
		Surface:     "dashboard",
		Total:       total,
		Completed:   completed,
		Failed:      failed,
		Pending:     total - completed - failed,
		Score:       score,
		AllComplete: allComplete,
		StartedAt:   m.refreshStarted,
		FinishedAt:  now,
	}
	if cmd := recordRunCmd(m.hist, run); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return cmds
}

func statusCounts(counts map[inspect.Status]int) map[string]int {
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[status.String()] = n
	}
	return out
}

// handleKeyPress dispatches on the active view mode.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "q", "esc", "?":
		m.mode = ViewList
	}
	return m, nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "esc", "x", "backspace":
		m.mode = ViewList
	case "r":
		if m.eval != nil {
			m.eval.Invalidate(m.detail.ID)
		}
		if m.service.Request(m.detail) {
			m.tracker.MarkRunning(m.detail.ID)
		}
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m.quit()

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "enter":
		if item, ok := m.selectedItem(); ok {
			m.detail = item
			m.mode = ViewDetail
		}

	case "r":
		m.beginRefresh()

	case "a":
		if m.auditor != nil && m.cfg.Audit != nil && len(m.cfg.Audit.Sources) > 0 {
			return m, runAuditCmd(m.auditor, m.cfg.Audit.Sources)
		}

	case "?":
		m.mode = ViewHelp

	case "x", "esc":
		m.errMsg = ""

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if n := int(key[0]-'0') - 1; n < m.tracker.Len() {
			m.cursor = n
		}
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}
