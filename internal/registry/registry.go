// Package registry persists shipshape's durable records: the preset
// registry, per-preset wizard runs, and the status cache. Everything is
// plain JSON written atomically (tmp file, then rename).
package registry

import (
	"fmt"
	"os"
	"sync"
)

const fileVersion = "1.0"

// Registry manages the preset registry persistence.
type Registry struct {
	path    string
	mu      sync.RWMutex
	version string
	presets []Preset
}

// NewRegistry creates a Registry backed by the file at path and loads it.
// A missing file starts an empty registry.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{
		path:    path,
		version: fileVersion,
	}

	if err := ensureDir(path); err != nil {
		return nil, err
	}

	if err := r.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		r.presets = []Preset{}
	}

	return r, nil
}

// Load reads the registry from disk.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var file RegistryFile
	if err := loadJSON(r.path, &file); err != nil {
		return err
	}

	r.version = file.Version
	r.presets = file.Presets
	return nil
}

// Save writes the registry to disk atomically.
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return saveJSON(r.path, RegistryFile{
		Version: r.version,
		Presets: r.presets,
	})
}

// List returns all registered presets.
func (r *Registry) List() []Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Preset, len(r.presets))
	copy(result, r.presets)
	return result
}

// Get retrieves a preset by ID.
func (r *Registry) Get(id string) (Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.presets {
		if p.ID == id {
			return p, nil
		}
	}

	return Preset{}, fmt.Errorf("preset not found: %s", id)
}

// Add adds a new preset.
func (r *Registry) Add(p Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.presets {
		if existing.ID == p.ID {
			return fmt.Errorf("preset with ID %s already exists", p.ID)
		}
	}

	r.presets = append(r.presets, p)
	return nil
}

// Update replaces an existing preset.
func (r *Registry) Update(p Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.presets {
		if existing.ID == p.ID {
			r.presets[i] = p
			return nil
		}
	}

	return fmt.Errorf("preset not found: %s", p.ID)
}

// Remove deletes a preset by ID.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.presets {
		if p.ID == id {
			r.presets = append(r.presets[:i], r.presets[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("preset not found: %s", id)
}
