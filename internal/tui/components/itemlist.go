package components

import (
	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
)

// Row is one renderable line of the grouped item list: either a section
// header or an item.
type Row struct {
	Header bool
	Label  string
	Status inspect.Status
	Count  int
	Item   config.Item
}

// ItemList arranges items into contiguous status groups for display. A
// header row precedes each group, falling exactly where consecutive sorted
// items differ in status.
type ItemList struct {
	rows []Row
}

// NewItemList ranks the items by status and builds the grouped row list.
func NewItemList(items []config.Item, stateOf func(id string) inspect.ItemState, labels config.StatusLabels) ItemList {
	ranked := inspect.Rank(items, stateOf)
	groups := inspect.GroupByStatus(ranked)

	rows := make([]Row, 0, len(ranked)+len(groups))
	for _, g := range groups {
		rows = append(rows, Row{
			Header: true,
			Label:  g.Status.Label(labels),
			Status: g.Status,
			Count:  len(g.Items),
		})
		for _, r := range g.Items {
			rows = append(rows, Row{Status: r.Status, Item: r.Item})
		}
	}
	return ItemList{rows: rows}
}

// Rows returns the flattened rows, headers included.
func (l ItemList) Rows() []Row {
	clone := make([]Row, len(l.rows))
	copy(clone, l.rows)
	return clone
}

// Len returns the number of item rows, headers excluded.
func (l ItemList) Len() int {
	n := 0
	for _, r := range l.rows {
		if !r.Header {
			n++
		}
	}
	return n
}

// ItemIndex maps a cursor over item rows to the index in Rows, skipping
// headers. Returns -1 when idx is out of range.
func (l ItemList) ItemIndex(idx int) int {
	if idx < 0 {
		return -1
	}
	seen := 0
	for i, r := range l.rows {
		if r.Header {
			continue
		}
		if seen == idx {
			return i
		}
		seen++
	}
	return -1
}

// ItemAt returns the idx-th item row, headers skipped.
func (l ItemList) ItemAt(idx int) (Row, bool) {
	i := l.ItemIndex(idx)
	if i < 0 {
		return Row{}, false
	}
	return l.rows[i], true
}
