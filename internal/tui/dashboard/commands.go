package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shipshape/internal/category"
	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/history"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
)

const auditTimeout = 10 * time.Second

// awaitOutcomeCmd blocks on the evaluation service's outcome channel and
// forwards the next result. Re-armed after every delivery.
func awaitOutcomeCmd(svc *inspect.Service) tea.Cmd {
	return func() tea.Msg {
		outcome, ok := <-svc.Outcomes()
		if !ok {
			return EvalClosedMsg{}
		}
		return EvalOutcomeMsg{Outcome: outcome}
	}
}

// refreshTickCmd schedules the next periodic refresh.
func refreshTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshTickMsg{At: t}
	})
}

// runAuditCmd scores category compliance off the UI loop.
func runAuditCmd(auditor *category.Auditor, sources []config.AuditSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()

		aggregates, err := auditor.Run(ctx, sources)
		return AuditDoneMsg{Aggregates: aggregates, Err: err}
	}
}

// saveStatusCmd persists the sweep summary for the preset list.
func saveStatusCmd(cache *registry.StatusCache, preset string, status registry.CachedStatus) tea.Cmd {
	if cache == nil {
		return nil
	}
	return func() tea.Msg {
		cache.Set(preset, status)
		return StatusSavedMsg{Err: cache.Save()}
	}
}

// recordRunCmd appends the sweep to the run history.
func recordRunCmd(store *history.Store, run history.Run) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		id, err := store.Record(ctx, run)
		return RunRecordedMsg{ID: id, Err: err}
	}
}
