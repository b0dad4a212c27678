package inspect

import (
	"sync"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
)

// Tracker owns the per-item lifecycle states and the shared completed set.
// All mutation goes through Apply, MarkRunning, MarkFailure, and Reset, so a
// single owner (the TUI update loop) can drive it without further locking;
// the internal mutex keeps read access from command goroutines safe.
type Tracker struct {
	mu     sync.RWMutex
	order  []string
	states map[string]ItemState
}

// NewTracker builds a tracker covering the given items, all pending.
func NewTracker(items []config.Item) *Tracker {
	t := &Tracker{
		order:  make([]string, 0, len(items)),
		states: make(map[string]ItemState, len(items)),
	}
	for _, it := range items {
		t.order = append(t.order, it.ID)
		t.states[it.ID] = ItemState{}
	}
	return t
}

// Apply folds an evaluation result into the tracked state.
func (t *Tracker) Apply(result Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[result.ItemID]
	if !ok {
		return
	}
	t.states[result.ItemID] = ApplyResult(state, result)
}

// MarkRunning flags an item as having an evaluation in flight.
func (t *Tracker) MarkRunning(itemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[itemID]
	if !ok {
		return
	}
	state.Running = true
	t.states[itemID] = state
}

// MarkFailure records an errored evaluation for an item.
func (t *Tracker) MarkFailure(itemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[itemID]
	if !ok {
		return
	}
	t.states[itemID] = ApplyFailure(state)
}

// State returns the tracked state for an item. Unknown ids report a zero
// state, which classifies as pending.
func (t *Tracker) State(itemID string) ItemState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[itemID]
}

// Status classifies an item's current state.
func (t *Tracker) Status(itemID string) Status {
	return Classify(t.State(itemID))
}

// Completed reports whether an item is in the completed set.
func (t *Tracker) Completed(itemID string) bool {
	return t.State(itemID).Completed
}

// CompletedIDs returns the completed set in configured item order.
func (t *Tracker) CompletedIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.order))
	for _, id := range t.order {
		if t.states[id].Completed {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetCompleted seeds the completed set, used when restoring a persisted run.
// Seeded completions are not sticky: a later filesystem negative may still
// retract them.
func (t *Tracker) SetCompleted(itemIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range itemIDs {
		state, ok := t.states[id]
		if !ok {
			continue
		}
		state.Completed = true
		t.states[id] = state
	}
}

// AllComplete reports whether every tracked item is in the completed set.
func (t *Tracker) AllComplete() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if !t.states[id].Completed {
			return false
		}
	}
	return len(t.order) > 0
}

// Counts returns how many items currently classify into each status.
func (t *Tracker) Counts() map[Status]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	counts := make(map[Status]int, 4)
	for _, id := range t.order {
		counts[Classify(t.states[id])]++
	}
	return counts
}

// Len returns the number of tracked items.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// Reset clears every flag, including sticky completions. A reset is a fresh
// run, not an evaluation, so the sticky guard does not apply.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.states {
		t.states[id] = ItemState{}
	}
}
