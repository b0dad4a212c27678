package wizard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
)

// PollInterval is how often the current page's item is re-validated while the
// wizard is idle.
const PollInterval = 5 * time.Second

// awaitOutcomeCmd blocks on the evaluation service's outcome channel and
// forwards the next result. Re-armed after every delivery.
func awaitOutcomeCmd(svc *inspect.Service) tea.Cmd {
	return func() tea.Msg {
		outcome, ok := <-svc.Outcomes()
		if !ok {
			return EvalClosedMsg{}
		}
		return EvalOutcomeMsg{Outcome: outcome}
	}
}

// pollTickCmd schedules the next re-validation tick.
func pollTickCmd() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg {
		return PollTickMsg{At: t}
	})
}

// saveStateCmd persists the wizard position so an interrupted run resumes.
func saveStateCmd(states *registry.StateStore, state registry.WizardState) tea.Cmd {
	if states == nil {
		return nil
	}
	return func() tea.Msg {
		return StateSavedMsg{Err: states.Save(state)}
	}
}

// clearStateCmd removes the persisted position after a reset.
func clearStateCmd(states *registry.StateStore, preset string) tea.Cmd {
	if states == nil {
		return nil
	}
	return func() tea.Msg {
		return StateClearedMsg{Err: states.Delete(preset)}
	}
}
