package inspect

import (
	"time"
)

// Source identifies which check produced an evaluation result.
type Source string

const (
	// SourceTrivial marks items with no configured paths; they are always
	// considered satisfied.
	SourceTrivial Source = "trivial"
	// SourceFilesystem covers path existence, repo, and command checks.
	SourceFilesystem Source = "filesystem"
	// SourceKeyValue covers key lookups against a value store.
	SourceKeyValue Source = "keyvalue"
)

// Result is the outcome of evaluating a single item once.
//
// Valid reports whether the item's check passed. Installed is the stronger
// condition that feeds the shared completed set: filesystem and trivial
// positives set it, a passing key lookup does not (the artifact it stands in
// for has not been observed on disk).
type Result struct {
	ItemID    string
	Valid     bool
	Installed bool
	Source    Source
	Message   string
	Timestamp time.Time
}

// ItemState is the tracked lifecycle of one item across evaluations.
type ItemState struct {
	// Completed mirrors membership in the shared completed set.
	Completed bool
	// Sticky locks Completed against evaluation-driven retraction. Set when
	// completion came from a trivially satisfied item.
	Sticky bool
	// Failed is set when an evaluation errored rather than returning a
	// negative result.
	Failed bool
	// Running is set while an evaluation for the item is in flight.
	Running bool

	Valid     bool
	Source    Source
	CheckedAt time.Time
}

// ApplyResult folds an evaluation result into an item's state. It is a pure
// transition: completion is granted on any installed result, and revoked only
// by a filesystem-sourced negative on a non-sticky item. Key/value negatives
// never retract a completion.
func ApplyResult(state ItemState, result Result) ItemState {
	next := state
	next.Valid = result.Valid
	next.Source = result.Source
	next.CheckedAt = result.Timestamp
	next.Failed = false
	next.Running = false

	if result.Installed {
		next.Completed = true
		if result.Source == SourceTrivial {
			next.Sticky = true
		}
		return next
	}

	if !state.Sticky && result.Source == SourceFilesystem {
		next.Completed = false
	}
	return next
}

// ApplyFailure folds an errored evaluation into an item's state. Completion
// is left untouched: an errored probe has no trustworthy source and must not
// retract anything.
func ApplyFailure(state ItemState) ItemState {
	next := state
	next.Failed = true
	next.Running = false
	return next
}
