package wizard

import (
	"time"

	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
)

// ViewMode determines which screen to render.
type ViewMode int

const (
	ViewPage ViewMode = iota
	ViewHelp
	ViewConfirmReset
)

// Outcome is how a wizard run ended, mapped to the process exit code by the
// caller.
type Outcome int

const (
	// OutcomeSkip covers the secondary ways out: the skip action and
	// quitting before the final page's forward fired.
	OutcomeSkip Outcome = iota
	// OutcomePrimary means the run ended through the final page's forward
	// action.
	OutcomePrimary
)

// ExitCode maps the outcome to the process exit code contract.
func (o Outcome) ExitCode() int {
	if o == OutcomePrimary {
		return 0
	}
	return 2
}

// EvalOutcomeMsg delivers one background evaluation outcome.
type EvalOutcomeMsg struct {
	Outcome inspect.Outcome
}

// EvalClosedMsg reports that the evaluation service has shut down.
type EvalClosedMsg struct{}

// PollTickMsg fires on the recurring re-validation timer.
type PollTickMsg struct {
	At time.Time
}

// StateSavedMsg reports a persistence attempt.
type StateSavedMsg struct {
	Err error
}

// StateClearedMsg reports the persisted-state deletion after a reset.
type StateClearedMsg struct {
	Err error
}
