package dashboard

import (
	"time"

	"github.com/alexisbeaulieu97/shipshape/internal/category"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
)

// ViewMode determines which screen to render.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewHelp
)

// EvalOutcomeMsg delivers one background evaluation outcome.
type EvalOutcomeMsg struct {
	Outcome inspect.Outcome
}

// EvalClosedMsg reports that the evaluation service has shut down.
type EvalClosedMsg struct{}

// RefreshTickMsg fires on the periodic full-refresh timer.
type RefreshTickMsg struct {
	At time.Time
}

// AuditDoneMsg carries the category compliance scores, or the error that
// prevented them.
type AuditDoneMsg struct {
	Aggregates []category.Aggregate
	Err        error
}

// StatusSavedMsg reports the status cache write after a sweep.
type StatusSavedMsg struct {
	Err error
}

// RunRecordedMsg reports the history insert after a sweep.
type RunRecordedMsg struct {
	ID  string
	Err error
}
