package registry

import (
	"os"
	"sync"
	"time"
)

// StaleAfter is the maximum age of a persisted wizard run. Older runs are
// discarded on load and the wizard starts fresh.
const StaleAfter = 24 * time.Hour

// StateStore persists wizard runs between sessions, one record per preset.
type StateStore struct {
	path    string
	mu      sync.RWMutex
	version string
	states  map[string]WizardState
	now     func() time.Time
}

// NewStateStore creates a StateStore backed by the file at path and loads
// it. A missing file starts an empty store.
func NewStateStore(path string) (*StateStore, error) {
	s := &StateStore{
		path:    path,
		version: fileVersion,
		states:  make(map[string]WizardState),
		now:     time.Now,
	}

	if err := ensureDir(path); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

func (s *StateStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var file StateFile
	if err := loadJSON(s.path, &file); err != nil {
		return err
	}

	s.version = file.Version
	s.states = file.States
	if s.states == nil {
		s.states = make(map[string]WizardState)
	}
	return nil
}

// Load returns the persisted run for a preset. The second return is false
// when no run exists or the stored one is older than StaleAfter; stale runs
// are dropped silently rather than surfaced.
func (s *StateStore) Load(preset string) (WizardState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[preset]
	if !ok {
		return WizardState{}, false
	}
	if s.now().Sub(state.SavedAt) > StaleAfter {
		delete(s.states, preset)
		return WizardState{}, false
	}
	return state, true
}

// Save records a run and writes the store to disk atomically. SavedAt is
// stamped here so every transition refreshes the staleness clock.
func (s *StateStore) Save(state WizardState) error {
	s.mu.Lock()
	state.SavedAt = s.now()
	s.states[state.Preset] = state
	file := s.fileLocked()
	s.mu.Unlock()

	return saveJSON(s.path, file)
}

// Delete removes the persisted run for a preset and writes the store.
// Deleting an absent run is a no-op.
func (s *StateStore) Delete(preset string) error {
	s.mu.Lock()
	if _, ok := s.states[preset]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.states, preset)
	file := s.fileLocked()
	s.mu.Unlock()

	return saveJSON(s.path, file)
}

func (s *StateStore) fileLocked() StateFile {
	states := make(map[string]WizardState, len(s.states))
	for k, v := range s.states {
		states[k] = v
	}
	return StateFile{Version: s.version, States: states}
}
