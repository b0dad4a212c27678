// Package wizard renders the guided readiness flow: one page per configured
// item, an optional selection page at the end, background validation of the
// current item, and resumable progress.
package wizard

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shipshape/internal/beacon"
	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/logger"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
	shipwizard "github.com/alexisbeaulieu97/shipshape/internal/wizard"
)

// Options carries the wired dependencies for a wizard run. States and
// Signals may be nil; persistence and signal files are then skipped.
type Options struct {
	Config    *config.Config
	Preset    string
	Evaluator *inspect.Evaluator
	Service   *inspect.Service
	States    *registry.StateStore
	Signals   *beacon.Beacon
	Logger    *logger.Logger
}

// Model is the bubbletea model for the wizard.
type Model struct {
	cfg     *config.Config
	preset  string
	eval    *inspect.Evaluator
	service *inspect.Service
	states  *registry.StateStore
	signals *beacon.Beacon
	log     *logger.Logger

	pages   []config.Page
	items   map[string]config.Item
	picker  *config.Picker
	machine *shipwizard.Machine
	tracker *inspect.Tracker

	mode       ViewMode
	outcome    Outcome
	quitting   bool
	width      int
	height     int
	useUnicode bool
	spinner    spinner.Model
	cursor     int
	errMsg     string
}

// NewModel builds the wizard model and, when a persisted run exists for the
// preset, resumes from it. Resuming an already finished run does not replay
// the completion signal.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	pages := cfg.WizardPages()
	var picker *config.Picker
	total := len(pages)
	if cfg.Wizard != nil && cfg.Wizard.Picker != nil {
		picker = cfg.Wizard.Picker
		total++
	}

	machine := shipwizard.NewMachine(total, picker)
	tracker := inspect.NewTracker(cfg.Items)

	if opts.States != nil {
		if state, ok := opts.States.Load(opts.Preset); ok {
			machine.Restore(state.Page, state.CompletedPages, state.Selected)
			tracker.SetCompleted(state.CompletedItems)
			machine.SetAllComplete(tracker.AllComplete())
			log.WithFields(map[string]any{
				"preset": opts.Preset,
				"page":   machine.Page(),
			}).Debug("resumed wizard state")
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return &Model{
		cfg:        cfg,
		preset:     opts.Preset,
		eval:       opts.Evaluator,
		service:    opts.Service,
		states:     opts.States,
		signals:    opts.Signals,
		log:        log,
		pages:      pages,
		items:      config.ItemMap(cfg.Items),
		picker:     picker,
		machine:    machine,
		tracker:    tracker,
		mode:       ViewPage,
		useUnicode: cfg.Settings.UseUnicode(),
		spinner:    s,
	}
}

// Init kicks off the background evaluation of the current page's item and
// arms the outcome and poll loops.
func (m *Model) Init() tea.Cmd {
	if m.signals != nil {
		m.signals.LogInteraction("start")
	}
	m.writeStatus()
	m.requestCurrent()
	return tea.Batch(
		m.spinner.Tick,
		awaitOutcomeCmd(m.service),
		pollTickCmd(),
	)
}

// Outcome reports how the run ended, valid after the program returns.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

// onPickerPage reports whether the cursor sits on the appended selection
// page.
func (m *Model) onPickerPage() bool {
	return m.picker != nil && m.machine.Page() == len(m.pages)
}

// currentItem resolves the item bound to the current page. False on the
// picker page or when the page references an unknown item.
func (m *Model) currentItem() (config.Item, bool) {
	if m.onPickerPage() {
		return config.Item{}, false
	}
	page := m.pages[m.machine.Page()]
	item, ok := m.items[page.Item]
	return item, ok
}

// requestCurrent queues a validation of the current page's item. Marked
// running only when the queue accepted it.
func (m *Model) requestCurrent() {
	item, ok := m.currentItem()
	if !ok {
		return
	}
	if m.service.Request(item) {
		m.tracker.MarkRunning(item.ID)
	}
}

// writeStatus refreshes the machine-readable status file.
func (m *Model) writeStatus() {
	if m.signals == nil {
		return
	}
	m.signals.WriteStatus(beacon.Status{
		Preset:      m.preset,
		Page:        m.machine.Page(),
		Total:       m.tracker.Len(),
		Completed:   len(m.tracker.CompletedIDs()),
		AllComplete: m.machine.Success(),
	})
}

// persistCmd snapshots the run so it can resume after an interrupt.
func (m *Model) persistCmd() tea.Cmd {
	if m.states == nil {
		return nil
	}
	return saveStateCmd(m.states, registry.WizardState{
		Preset:         m.preset,
		Page:           m.machine.Page(),
		CompletedPages: m.machine.CompletedPages(),
		CompletedItems: m.tracker.CompletedIDs(),
		Selected:       m.machine.SelectedIDs(),
	})
}
