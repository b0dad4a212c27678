// Package wizard holds the pure state machine behind the onboarding flow:
// page cursor, per-page completion, picker selection, and the success flag.
// It knows nothing about rendering or persistence, so every transition can
// be tested without a terminal.
package wizard

import (
	"sort"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
)

// Advance is the outcome of a forward navigation.
type Advance int

const (
	// AdvanceMoved means the cursor moved to the next page.
	AdvanceMoved Advance = iota
	// AdvanceAtEnd means forward was activated on the last page; the host
	// runs its completion logic.
	AdvanceAtEnd
	// AdvanceBlocked means a required picker selection is missing.
	AdvanceBlocked
)

// Machine is the wizard state for one run.
type Machine struct {
	pages            int
	page             int
	completed        map[int]bool
	success          bool
	selection        *Selection
	requireSelection bool
}

// NewMachine builds a machine over totalPages pages. A non-nil picker adds
// selection state; its required flag gates the final forward.
func NewMachine(totalPages int, picker *config.Picker) *Machine {
	if totalPages < 1 {
		totalPages = 1
	}
	m := &Machine{
		pages:     totalPages,
		completed: make(map[int]bool),
	}
	if picker != nil {
		m.selection = NewSelection(picker.Mode == config.PickerModeMulti)
		m.requireSelection = picker.Required
	}
	return m
}

// Forward marks the current page completed and advances. On the last page
// the cursor stays put and AdvanceAtEnd is returned; when a selection is
// required but missing, nothing changes and AdvanceBlocked is returned.
func (m *Machine) Forward() Advance {
	if m.IsLast() {
		if m.requireSelection && m.selection != nil && !m.selection.Any() {
			return AdvanceBlocked
		}
		m.completed[m.page] = true
		return AdvanceAtEnd
	}
	m.completed[m.page] = true
	m.page++
	return AdvanceMoved
}

// Back moves the cursor one page back, clamped at the first page. Page
// completion is never unmarked by going back.
func (m *Machine) Back() bool {
	if m.page == 0 {
		return false
	}
	m.page--
	return true
}

// Goto jumps to page k when it is in range and differs from the current
// page.
func (m *Machine) Goto(k int) bool {
	if k < 0 || k >= m.pages || k == m.page {
		return false
	}
	m.page = k
	return true
}

// Reset returns to page zero and clears page completion, selection, and the
// success flag. Clearing item states and persisted records is the host's
// side of a reset.
func (m *Machine) Reset() {
	m.page = 0
	m.completed = make(map[int]bool)
	m.success = false
	if m.selection != nil {
		m.selection.Clear()
	}
}

// Restore rehydrates a persisted run, clamping the page defensively into
// range and dropping completion marks for pages that no longer exist.
func (m *Machine) Restore(page int, completedPages []int, selected []string) {
	if page < 0 {
		page = 0
	}
	if page >= m.pages {
		page = m.pages - 1
	}
	m.page = page
	for _, p := range completedPages {
		if p >= 0 && p < m.pages {
			m.completed[p] = true
		}
	}
	if m.selection == nil {
		return
	}
	for _, id := range selected {
		if !m.selection.IsSelected(id) {
			m.selection.Toggle(id)
		}
	}
}

// SetAllComplete records whether every item is in the completed set. The
// return is true exactly when the condition is newly entered, for one-time
// success effects. Leaving the condition reverts the flag.
func (m *Machine) SetAllComplete(allComplete bool) bool {
	entered := allComplete && !m.success
	m.success = allComplete
	return entered
}

// Success reports whether the all-complete condition currently holds.
func (m *Machine) Success() bool {
	return m.success
}

// Page returns the current page index.
func (m *Machine) Page() int {
	return m.page
}

// Pages returns the total page count.
func (m *Machine) Pages() int {
	return m.pages
}

// IsFirst reports whether the cursor is on the first page.
func (m *Machine) IsFirst() bool {
	return m.page == 0
}

// IsLast reports whether the cursor is on the last page.
func (m *Machine) IsLast() bool {
	return m.page == m.pages-1
}

// PageCompleted reports whether page n has been marked completed.
func (m *Machine) PageCompleted(n int) bool {
	return m.completed[n]
}

// CompletedPages returns the completed page indices in ascending order.
func (m *Machine) CompletedPages() []int {
	out := make([]int, 0, len(m.completed))
	for p := range m.completed {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Selection returns the picker state, or nil when no picker is configured.
func (m *Machine) Selection() *Selection {
	return m.selection
}

// SelectedIDs returns the picker selection, empty when no picker is
// configured.
func (m *Machine) SelectedIDs() []string {
	if m.selection == nil {
		return nil
	}
	return m.selection.Selected()
}
