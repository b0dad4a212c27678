// Package dashboard renders the at-a-glance readiness view: every item
// grouped by status, category compliance scores, and the cached result of
// the previous run while the first sweep is still in flight.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shipshape/internal/beacon"
	"github.com/alexisbeaulieu97/shipshape/internal/category"
	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/history"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/logger"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
	"github.com/alexisbeaulieu97/shipshape/internal/tui/components"
)

const (
	minWidth  = 80
	minHeight = 24
)

// Options carries the wired dependencies for a dashboard session. Cache,
// History, Signals, and Auditor may be nil; the matching feature is then
// skipped.
type Options struct {
	Config    *config.Config
	Preset    string
	Evaluator *inspect.Evaluator
	Service   *inspect.Service
	Cache     *registry.StatusCache
	History   *history.Store
	Signals   *beacon.Beacon
	Auditor   *category.Auditor
	Logger    *logger.Logger
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	cfg     *config.Config
	preset  string
	eval    *inspect.Evaluator
	service *inspect.Service
	cache   *registry.StatusCache
	hist    *history.Store
	signals *beacon.Beacon
	auditor *category.Auditor
	log     *logger.Logger

	tracker *inspect.Tracker

	mode       ViewMode
	cursor     int
	detail     config.Item
	width      int
	height     int
	useUnicode bool
	spinner    spinner.Model
	statusMsg  string
	errMsg     string
	quitting   bool

	refreshing     bool
	refreshDone    int
	refreshTotal   int
	refreshStarted time.Time

	lastKnown  registry.CachedStatus
	haveCached bool

	categories []category.Aggregate
}

// NewModel builds the dashboard model. A cached status from a previous run
// is shown until the first sweep lands.
func NewModel(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := &Model{
		cfg:        opts.Config,
		preset:     opts.Preset,
		eval:       opts.Evaluator,
		service:    opts.Service,
		cache:      opts.Cache,
		hist:       opts.History,
		signals:    opts.Signals,
		auditor:    opts.Auditor,
		log:        log,
		tracker:    inspect.NewTracker(opts.Config.Items),
		mode:       ViewList,
		useUnicode: opts.Config.Settings.UseUnicode(),
		spinner:    s,
	}

	if m.cache != nil {
		if status, ok := m.cache.Get(m.preset); ok {
			m.lastKnown = status
			m.haveCached = true
		}
	}
	return m
}

// Init starts the first sweep and arms the background loops.
func (m *Model) Init() tea.Cmd {
	m.beginRefresh()

	cmds := []tea.Cmd{
		m.spinner.Tick,
		awaitOutcomeCmd(m.service),
	}
	if m.auditor != nil && m.cfg.Audit != nil && len(m.cfg.Audit.Sources) > 0 {
		cmds = append(cmds, runAuditCmd(m.auditor, m.cfg.Audit.Sources))
	}
	if m.cfg.Settings.Refresh > 0 {
		cmds = append(cmds, refreshTickCmd(time.Duration(m.cfg.Settings.Refresh)*time.Second))
	}
	return tea.Batch(cmds...)
}

// beginRefresh queues every item for re-validation. The sweep counts only
// what the queue accepted, so a saturated queue cannot wedge the progress
// accounting.
func (m *Model) beginRefresh() {
	if m.refreshing {
		return
	}

	requested := 0
	for _, item := range m.cfg.Items {
		if m.service.Request(item) {
			m.tracker.MarkRunning(item.ID)
			requested++
		}
	}
	if requested == 0 {
		return
	}

	m.refreshing = true
	m.refreshDone = 0
	m.refreshTotal = requested
	m.refreshStarted = time.Now()
	m.log.WithFields(map[string]any{"items": requested}).Debug("refresh started")
}

// itemList builds the grouped display rows from the current states.
func (m *Model) itemList() components.ItemList {
	return components.NewItemList(m.cfg.Items, m.tracker.State, m.cfg.Settings.Labels)
}

// selectedItem resolves the item under the cursor in display order.
func (m *Model) selectedItem() (config.Item, bool) {
	row, ok := m.itemList().ItemAt(m.cursor)
	if !ok {
		return config.Item{}, false
	}
	return row.Item, true
}

// moveCursor moves over the items in display order with wraparound.
func (m *Model) moveCursor(delta int) {
	n := m.tracker.Len()
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// summaryData folds the tracker counts and audit scores into the summary
// component's input.
func (m *Model) summaryData() components.SummaryData {
	counts := m.tracker.Counts()
	return components.SummaryData{
		Total:       m.tracker.Len(),
		Completed:   counts[inspect.StatusCompleted],
		Failed:      counts[inspect.StatusFailed],
		Running:     counts[inspect.StatusRunning],
		AllComplete: m.tracker.AllComplete(),
		Categories:  m.categories,
	}
}
