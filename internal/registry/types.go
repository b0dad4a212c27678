package registry

import (
	"time"
)

// Preset is a registered configuration file.
type Preset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Description  string    `json:"description"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegistryFile is the JSON file format for the preset registry.
type RegistryFile struct {
	Version string   `json:"version"`
	Presets []Preset `json:"presets"`
}

// WizardState is a persisted wizard run, scoped to a preset.
type WizardState struct {
	Preset         string    `json:"preset"`
	Page           int       `json:"page"`
	CompletedPages []int     `json:"completed_pages,omitempty"`
	CompletedItems []string  `json:"completed_items,omitempty"`
	Selected       []string  `json:"selected,omitempty"`
	SavedAt        time.Time `json:"saved_at"`
}

// StateFile is the JSON file format for persisted wizard runs.
type StateFile struct {
	Version string                 `json:"version"`
	States  map[string]WizardState `json:"states"`
}

// CachedStatus stores the last known evaluation summary for a preset, used
// to paint the dashboard before fresh results arrive.
type CachedStatus struct {
	AllComplete bool           `json:"all_complete"`
	Score       float64        `json:"score"`
	Counts      map[string]int `json:"counts,omitempty"`
	LastRun     time.Time      `json:"last_run"`
	Summary     string         `json:"summary,omitempty"`
}

// StatusCacheFile is the JSON file format for the status cache.
type StatusCacheFile struct {
	Version  string                  `json:"version"`
	Statuses map[string]CachedStatus `json:"statuses"`
}
