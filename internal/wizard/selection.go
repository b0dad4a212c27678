package wizard

// Selection tracks picker choices. Single mode keeps at most one id, and
// toggling the held id clears it; multi mode toggles each id independently.
type Selection struct {
	multi    bool
	selected map[string]bool
	order    []string
}

// NewSelection builds an empty selection.
func NewSelection(multi bool) *Selection {
	return &Selection{
		multi:    multi,
		selected: make(map[string]bool),
	}
}

// Toggle flips the selection state of id under the mode's rules.
func (s *Selection) Toggle(id string) {
	if s.selected[id] {
		s.remove(id)
		return
	}
	if !s.multi {
		s.Clear()
	}
	s.selected[id] = true
	s.order = append(s.order, id)
}

// IsSelected reports whether id is currently selected.
func (s *Selection) IsSelected(id string) bool {
	return s.selected[id]
}

// Selected returns the selected ids in the order they were chosen.
func (s *Selection) Selected() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Any reports whether anything is selected.
func (s *Selection) Any() bool {
	return len(s.order) > 0
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	return len(s.order)
}

// Multi reports whether the selection allows more than one id.
func (s *Selection) Multi() bool {
	return s.multi
}

// Clear drops every selection.
func (s *Selection) Clear() {
	s.selected = make(map[string]bool)
	s.order = s.order[:0]
}

func (s *Selection) remove(id string) {
	delete(s.selected, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
