package wizard

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	shipwizard "github.com/alexisbeaulieu97/shipshape/internal/wizard"
)

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
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

	case PollTickMsg:
		if m.quitting {
			return m, nil
		}
		m.requestCurrent()
		return m, pollTickCmd()

	case StateSavedMsg:
		if msg.Err != nil {
			m.errMsg = "Could not save progress: " + msg.Err.Error()
			m.log.WithFields(map[string]any{"error": msg.Err}).Warn("state save failed")
		}
		return m, nil

	case StateClearedMsg:
		if msg.Err != nil {
			m.errMsg = "Could not clear saved progress: " + msg.Err.Error()
			m.log.WithFields(map[string]any{"error": msg.Err}).Warn("state clear failed")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleOutcome folds one evaluation result into the tracker and fires the
// one-time completion signal when every item just became completed.
func (m *Model) handleOutcome(outcome inspect.Outcome) (tea.Model, tea.Cmd) {
	if outcome.Err != nil {
		m.tracker.MarkFailure(outcome.ItemID)
	} else {
		m.tracker.Apply(outcome.Result)
	}

	if m.machine.SetAllComplete(m.tracker.AllComplete()) {
		if m.signals != nil {
			m.signals.Trigger("all-complete")
		}
		m.log.WithFields(map[string]any{"preset": m.preset}).Info("all items completed")
	}
	m.writeStatus()

	cmds := []tea.Cmd{awaitOutcomeCmd(m.service)}
	if cmd := m.persistCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKeyPress dispatches on the active view mode.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewConfirmReset:
		return m.handleConfirmResetKeys(msg)
	default:
		return m.handlePageKeys(msg)
	}
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit(OutcomeSkip, "quit")
	case "q", "esc", "?":
		m.mode = ViewPage
	}
	return m, nil
}

func (m *Model) handleConfirmResetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.performReset()
	case "n", "N", "esc", "q":
		m.mode = ViewPage
	case "ctrl+c":
		return m.quit(OutcomeSkip, "quit")
	}
	return m, nil
}

func (m *Model) handlePageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m.quit(OutcomeSkip, "quit")

	case "?":
		m.mode = ViewHelp
		return m, nil

	case "enter", "right", "l":
		return m.forward()

	case "left", "h":
		return m.back()

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case " ":
		return m.toggleSelection()

	case "s":
		if m.cfg.Wizard != nil && m.cfg.Wizard.AllowSkip {
			return m.quit(OutcomeSkip, "skip")
		}
		return m, nil

	case "r":
		if item, ok := m.currentItem(); ok {
			if m.eval != nil {
				m.eval.Invalidate(item.ID)
			}
			m.requestCurrent()
		}
		return m, nil

	case "ctrl+r":
		m.mode = ViewConfirmReset
		return m, nil

	case "x", "esc":
		m.errMsg = ""
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.gotoPage(int(key[0]-'0') - 1)
	}

	return m, nil
}

// forward advances a page. At the end of the flow it finishes the run with
// the primary outcome; a missing required selection blocks instead.
func (m *Model) forward() (tea.Model, tea.Cmd) {
	departed, hadItem := m.currentItem()

	switch m.machine.Forward() {
	case shipwizard.AdvanceBlocked:
		m.errMsg = "Select at least one option to continue"
		return m, nil

	case shipwizard.AdvanceAtEnd:
		return m.quit(OutcomePrimary, "done")
	}

	m.errMsg = ""
	m.cursor = 0
	if m.signals != nil {
		m.signals.LogInteraction("forward")
	}
	// Re-check the page just left so a stale pass cannot linger, then the
	// one just entered. The evaluator cache absorbs duplicates.
	if hadItem && m.service.Request(departed) {
		m.tracker.MarkRunning(departed.ID)
	}
	m.requestCurrent()
	m.writeStatus()
	if cmd := m.persistCmd(); cmd != nil {
		return m, cmd
	}
	return m, nil
}

func (m *Model) back() (tea.Model, tea.Cmd) {
	if !m.machine.Back() {
		return m, nil
	}
	m.errMsg = ""
	m.cursor = 0
	if m.signals != nil {
		m.signals.LogInteraction("back")
	}
	m.requestCurrent()
	m.writeStatus()
	if cmd := m.persistCmd(); cmd != nil {
		return m, cmd
	}
	return m, nil
}

func (m *Model) gotoPage(k int) (tea.Model, tea.Cmd) {
	if !m.machine.Goto(k) {
		return m, nil
	}
	m.errMsg = ""
	m.cursor = 0
	m.requestCurrent()
	m.writeStatus()
	if cmd := m.persistCmd(); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// performReset drops all run state: machine position, item results, the
// evaluator cache, and the persisted snapshot.
func (m *Model) performReset() (tea.Model, tea.Cmd) {
	m.machine.Reset()
	m.tracker.Reset()
	if m.eval != nil {
		m.eval.Flush()
	}
	m.mode = ViewPage
	m.cursor = 0
	m.errMsg = ""
	if m.signals != nil {
		m.signals.LogInteraction("reset")
	}
	m.writeStatus()
	m.requestCurrent()
	return m, clearStateCmd(m.states, m.preset)
}

// moveCursor moves the picker cursor with wraparound. No-op off the picker
// page.
func (m *Model) moveCursor(delta int) {
	if !m.onPickerPage() {
		return
	}
	n := len(m.picker.Options)
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

func (m *Model) toggleSelection() (tea.Model, tea.Cmd) {
	if !m.onPickerPage() || m.cursor < 0 || m.cursor >= len(m.picker.Options) {
		return m, nil
	}
	m.machine.Selection().Toggle(m.picker.Options[m.cursor].ID)
	m.errMsg = ""
	if m.signals != nil {
		m.signals.LogInteraction("toggle")
	}
	if cmd := m.persistCmd(); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// quit finalizes the run. The state snapshot is flushed before the program
// exits so an interrupted run resumes where it left off.
func (m *Model) quit(outcome Outcome, event string) (tea.Model, tea.Cmd) {
	m.outcome = outcome
	m.quitting = true
	if m.signals != nil {
		m.signals.LogInteraction(event)
	}
	m.writeStatus()
	if cmd := m.persistCmd(); cmd != nil {
		return m, tea.Sequence(cmd, tea.Quit)
	}
	return m, tea.Quit
}
