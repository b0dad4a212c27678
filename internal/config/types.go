package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSuccessValues are the values a key lookup matches against when the
// configuration does not declare its own set.
var DefaultSuccessValues = []string{"true", "1", "YES"}

// Config represents the full shipshape configuration document.
type Config struct {
	Version     string   `yaml:"version" validate:"required,semver"`
	Name        string   `yaml:"name" validate:"required,min=1,max=100"`
	Description string   `yaml:"description,omitempty"`
	Settings    Settings `yaml:"settings,omitempty"`
	Items       []Item   `yaml:"items" validate:"required,min=1,dive"`
	Wizard      *Wizard  `yaml:"wizard,omitempty"`
	Audit       *Audit   `yaml:"audit,omitempty"`
}

// Settings holds global evaluation and presentation parameters.
type Settings struct {
	// Store is the default value-store document consulted for key checks.
	Store         string   `yaml:"store,omitempty"`
	SuccessValues []string `yaml:"success_values,omitempty" validate:"omitempty,min=1,dive,min=1"`
	// Refresh is the dashboard re-evaluation period in seconds.
	Refresh   int          `yaml:"refresh,omitempty" validate:"omitempty,min=1,max=3600"`
	Labels    StatusLabels `yaml:"labels,omitempty"`
	Highlight string       `yaml:"highlight,omitempty" validate:"omitempty,tui_color"`
	Unicode   *bool        `yaml:"unicode,omitempty"`
}

// StatusLabels overrides the section header text shown per status group.
type StatusLabels struct {
	Failed    string `yaml:"failed,omitempty"`
	Completed string `yaml:"completed,omitempty"`
	Running   string `yaml:"running,omitempty"`
	Pending   string `yaml:"pending,omitempty"`
}

// Item describes one inspectable unit.
//
// Validation criteria are a cascade: an empty path list means the item is
// always considered satisfied; otherwise existing paths win, with the key
// lookup as fallback. Repo and command criteria are standalone and may not be
// combined with paths or keys (enforced by ValidateConfig).
type Item struct {
	ID       string   `yaml:"id" validate:"required,item_id"`
	Name     string   `yaml:"name,omitempty" validate:"omitempty,max=100"`
	Category string   `yaml:"category,omitempty"`
	Icon     string   `yaml:"icon,omitempty"`
	Paths    []string `yaml:"paths,omitempty" validate:"omitempty,dive,min=1"`
	Key      string   `yaml:"key,omitempty"`
	Expect   string   `yaml:"expect,omitempty"`
	// Store overrides the global value-store document for this item's key.
	Store   string     `yaml:"store,omitempty"`
	Command string     `yaml:"command,omitempty"`
	Repo    *RepoCheck `yaml:"repo,omitempty"`

	Info      string   `yaml:"info,omitempty"`
	Bullets   []string `yaml:"bullets,omitempty"`
	Highlight string   `yaml:"highlight,omitempty" validate:"omitempty,tui_color"`
	Gradient  []string `yaml:"gradient,omitempty" validate:"omitempty,max=2,dive,tui_color"`
	StepType  string   `yaml:"step_type,omitempty" validate:"omitempty,oneof=install configure manual"`
}

// UnmarshalYAML accepts either a scalar `path` or a `paths` list and merges
// them into the ordered candidate list.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	type rawItem Item
	aux := struct {
		rawItem `yaml:",inline"`
		Path    string `yaml:"path"`
	}{}
	if err := value.Decode(&aux); err != nil {
		return err
	}

	*it = Item(aux.rawItem)
	if aux.Path != "" {
		it.Paths = append([]string{aux.Path}, it.Paths...)
	}
	return nil
}

// DisplayName returns the human-facing name, falling back to the id.
func (it Item) DisplayName() string {
	if strings.TrimSpace(it.Name) != "" {
		return it.Name
	}
	return it.ID
}

// RepoCheck verifies a destination is a git repository, optionally pinned to
// a remote URL and branch.
type RepoCheck struct {
	Destination string `yaml:"destination" validate:"required"`
	URL         string `yaml:"url,omitempty"`
	Branch      string `yaml:"branch,omitempty"`
}

// Wizard configures the multi-page onboarding flow.
type Wizard struct {
	Title string `yaml:"title,omitempty"`
	Help  string `yaml:"help,omitempty"`
	// Pages restricts and orders the wizard to a subset of items. When
	// empty every item gets a page, in config order.
	Pages     []Page  `yaml:"pages,omitempty" validate:"omitempty,min=1,dive"`
	Picker    *Picker `yaml:"picker,omitempty"`
	AllowSkip bool    `yaml:"allow_skip,omitempty"`
	SkipLabel string  `yaml:"skip_label,omitempty"`
	DoneLabel string  `yaml:"done_label,omitempty"`
}

// Page binds a wizard page to an item with optional text overrides.
type Page struct {
	Item  string `yaml:"item" validate:"required,item_id"`
	Title string `yaml:"title,omitempty"`
	Body  string `yaml:"body,omitempty"`
}

// Picker modes.
const (
	PickerModeSingle = "single"
	PickerModeMulti  = "multi"
)

// Picker configures the selection page appended after the item pages.
type Picker struct {
	Mode     string         `yaml:"mode" validate:"required,oneof=single multi"`
	Title    string         `yaml:"title,omitempty"`
	Options  []PickerOption `yaml:"options" validate:"required,min=1,dive"`
	Required bool           `yaml:"required,omitempty"`
}

// PickerOption is one selectable entry.
type PickerOption struct {
	ID   string `yaml:"id" validate:"required,item_id"`
	Name string `yaml:"name,omitempty"`
	Icon string `yaml:"icon,omitempty"`
}

// Audit configures compliance scoring over bulk value-store dumps.
type Audit struct {
	SuccessValues []string      `yaml:"success_values,omitempty" validate:"omitempty,min=1,dive,min=1"`
	Sources       []AuditSource `yaml:"sources" validate:"required,min=1,dive"`
}

// AuditSource points at one value-store dump and its categorization tables.
type AuditSource struct {
	Name string `yaml:"name" validate:"required,min=1"`
	Path string `yaml:"path" validate:"required"`
	Icon string `yaml:"icon,omitempty"`
	// Categories maps a full key to a category name.
	Categories map[string]string `yaml:"categories,omitempty"`
	// Prefixes maps a key prefix to a category name.
	Prefixes map[string]string `yaml:"prefixes,omitempty"`
	// Icons maps a category name to its icon.
	Icons map[string]string `yaml:"icons,omitempty"`
}

// SuccessValues resolves the configured success set, falling back to the
// built-in defaults.
func (s Settings) ResolvedSuccessValues() []string {
	if len(s.SuccessValues) > 0 {
		return s.SuccessValues
	}
	return append([]string(nil), DefaultSuccessValues...)
}

// UseUnicode reports whether unicode glyphs should be rendered. Defaults on.
func (s Settings) UseUnicode() bool {
	if s.Unicode == nil {
		return true
	}
	return *s.Unicode
}

// ItemMap builds a lookup table for items by ID.
func ItemMap(items []Item) map[string]Item {
	out := make(map[string]Item, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}

// WizardPages returns the effective page list: the configured subset when
// present, otherwise one page per item in declaration order.
func (c *Config) WizardPages() []Page {
	if c.Wizard != nil && len(c.Wizard.Pages) > 0 {
		pages := make([]Page, len(c.Wizard.Pages))
		copy(pages, c.Wizard.Pages)
		return pages
	}

	pages := make([]Page, 0, len(c.Items))
	for _, item := range c.Items {
		pages = append(pages, Page{Item: item.ID})
	}
	return pages
}
