package inspect

import (
	"sort"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
)

// Status is the display state of an item, derived from its lifecycle flags.
// The ordinal order doubles as sort priority: failed items surface first,
// pending items last.
type Status int

const (
	StatusFailed Status = iota
	StatusCompleted
	StatusRunning
	StatusPending
)

// Classify collapses an item's lifecycle flags into a single status. Failed
// wins over completed, completed over running, running over pending.
func Classify(state ItemState) Status {
	switch {
	case state.Failed:
		return StatusFailed
	case state.Completed:
		return StatusCompleted
	case state.Running:
		return StatusRunning
	default:
		return StatusPending
	}
}

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusCompleted:
		return "completed"
	case StatusRunning:
		return "running"
	case StatusPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Label returns the display heading for the status, honouring configured
// overrides and falling back to built-in wording.
func (s Status) Label(labels config.StatusLabels) string {
	switch s {
	case StatusFailed:
		if labels.Failed != "" {
			return labels.Failed
		}
		return "Failed"
	case StatusCompleted:
		if labels.Completed != "" {
			return labels.Completed
		}
		return "Completed"
	case StatusRunning:
		if labels.Running != "" {
			return labels.Running
		}
		return "In Progress"
	case StatusPending:
		if labels.Pending != "" {
			return labels.Pending
		}
		return "Pending"
	default:
		return "Unknown"
	}
}

// Icon returns the unicode glyph for the status.
func (s Status) Icon() string {
	switch s {
	case StatusFailed:
		return "✗"
	case StatusCompleted:
		return "✓"
	case StatusRunning:
		return "⏳"
	case StatusPending:
		return "○"
	default:
		return "?"
	}
}

// IconFallback returns an ASCII rendering for terminals without unicode.
func (s Status) IconFallback() string {
	switch s {
	case StatusFailed:
		return "[XX]"
	case StatusCompleted:
		return "[OK]"
	case StatusRunning:
		return "[..]"
	case StatusPending:
		return "[  ]"
	default:
		return "[??]"
	}
}

// Color returns the ANSI color code used when rendering the status.
func (s Status) Color() string {
	switch s {
	case StatusFailed:
		return "196"
	case StatusCompleted:
		return "42"
	case StatusRunning:
		return "33"
	case StatusPending:
		return "240"
	default:
		return "240"
	}
}

// RankedItem pairs an item with its classified status for display ordering.
type RankedItem struct {
	Item   config.Item
	Status Status
}

// Rank classifies every item against the tracker and returns them sorted by
// status priority. Items sharing a status keep their configured order, so the
// sort is stable across refreshes.
func Rank(items []config.Item, stateOf func(id string) ItemState) []RankedItem {
	ranked := make([]RankedItem, 0, len(items))
	for _, it := range items {
		ranked = append(ranked, RankedItem{Item: it, Status: Classify(stateOf(it.ID))})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Status < ranked[j].Status
	})
	return ranked
}

// Group is a run of consecutive ranked items sharing one status.
type Group struct {
	Status Status
	Items  []RankedItem
}

// GroupByStatus splits a ranked slice into contiguous status groups. A group
// boundary falls exactly where two consecutive items differ in status, which
// is where views render a section header.
func GroupByStatus(ranked []RankedItem) []Group {
	var groups []Group
	for _, r := range ranked {
		if len(groups) == 0 || groups[len(groups)-1].Status != r.Status {
			groups = append(groups, Group{Status: r.Status})
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, r)
	}
	return groups
}
