package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shipshape/internal/category"
	"github.com/alexisbeaulieu97/shipshape/internal/history"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func passOutcome(itemID string) EvalOutcomeMsg {
	return EvalOutcomeMsg{Outcome: inspect.Outcome{
		ItemID: itemID,
		Result: inspect.Result{
			ItemID:    itemID,
			Valid:     true,
			Installed: true,
			Source:    inspect.SourceFilesystem,
			Timestamp: time.Now(),
		},
	}}
}

func TestUpdateWindowSizeWarnsWhenTooSmall(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	dm := updated.(*Model)
	require.Contains(t, dm.statusMsg, "Terminal too small (60x20)")

	updated, _ = dm.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Empty(t, updated.(*Model).statusMsg)
}

func TestUpdateOutcomeFinalizesSweep(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())
	m.beginRefresh()

	updated, cmd := m.Update(passOutcome("terminal"))
	dm := updated.(*Model)
	require.True(t, dm.refreshing)
	require.Equal(t, 1, dm.refreshDone)
	require.NotNil(t, cmd)

	updated, _ = dm.Update(EvalOutcomeMsg{Outcome: inspect.Outcome{
		ItemID: "editor",
		Err:    errors.New("probe exploded"),
	}})
	dm = updated.(*Model)

	require.False(t, dm.refreshing)
	require.True(t, dm.haveCached)
	require.Equal(t, "1/2 ready", dm.lastKnown.Summary)
	require.InDelta(t, 0.5, dm.lastKnown.Score, 0.001)
	require.False(t, dm.lastKnown.AllComplete)
	require.Equal(t, 1, dm.lastKnown.Counts["completed"])
	require.Equal(t, 1, dm.lastKnown.Counts["failed"])
}

func TestSaveStatusCmdPersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "status.json")
	cache, err := registry.NewStatusCache(path)
	require.NoError(t, err)

	cmd := saveStatusCmd(cache, "dev", registry.CachedStatus{
		Score:   1.0,
		Summary: "2/2 ready",
		LastRun: time.Now(),
	})
	require.NotNil(t, cmd)

	msg, ok := cmd().(StatusSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	reloaded, err := registry.NewStatusCache(path)
	require.NoError(t, err)
	status, ok := reloaded.Get("dev")
	require.True(t, ok)
	require.Equal(t, "2/2 ready", status.Summary)
}

func TestRecordRunCmdInsertsRun(t *testing.T) {
	t.Parallel()

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cmd := recordRunCmd(store, history.Run{
		Preset:    "dev",
		Surface:   "dashboard",
		Total:     2,
		Completed: 2,
		Score:     1.0,
	})
	require.NotNil(t, cmd)

	msg, ok := cmd().(RunRecordedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	require.NotEmpty(t, msg.ID)

	runs, err := store.Recent(context.Background(), "dev", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "dashboard", runs[0].Surface)
}

func TestUpdateRefreshTickRearmsWhenConfigured(t *testing.T) {
	t.Parallel()

	cfg := testDashboardConfig()
	cfg.Settings.Refresh = 30
	m := newTestDashboard(t, cfg)

	_, cmd := m.Update(RefreshTickMsg{At: time.Now()})
	require.NotNil(t, cmd)
	require.True(t, m.refreshing)

	cfg = testDashboardConfig()
	m = newTestDashboard(t, cfg)
	_, cmd = m.Update(RefreshTickMsg{At: time.Now()})
	require.Nil(t, cmd)
}

func TestUpdateAuditDone(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())

	updated, _ := m.Update(AuditDoneMsg{Aggregates: []category.Aggregate{
		{Name: "Security", Icon: "🔒", Passed: 2, Total: 3},
	}})
	dm := updated.(*Model)
	require.Len(t, dm.categories, 1)
	require.Equal(t, "Security", dm.categories[0].Name)

	updated, _ = dm.Update(AuditDoneMsg{Err: errors.New("dump unreadable")})
	require.Contains(t, updated.(*Model).errMsg, "Audit failed")
}

func TestUpdateQuitKey(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())

	updated, cmd := m.Update(keyMsg('q'))
	require.True(t, updated.(*Model).quitting)
	require.NotNil(t, cmd)
}

func TestUpdateEnterOpensDetail(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	dm := updated.(*Model)
	require.Equal(t, ViewDetail, dm.mode)
	require.Equal(t, "terminal", dm.detail.ID)

	updated, _ = dm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ViewList, updated.(*Model).mode)
}

func TestUpdateDetailRecheckMarksRunning(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated, _ = updated.(*Model).Update(keyMsg('r'))
	dm := updated.(*Model)

	require.True(t, dm.tracker.State("terminal").Running)
}

func TestUpdateDigitJumpsCursor(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())

	updated, _ := m.Update(keyMsg('2'))
	require.Equal(t, 1, updated.(*Model).cursor)

	// Out of range digits leave the cursor alone.
	updated, _ = updated.(*Model).Update(keyMsg('9'))
	require.Equal(t, 1, updated.(*Model).cursor)
}

func TestUpdateHelpToggle(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())

	updated, _ := m.Update(keyMsg('?'))
	require.Equal(t, ViewHelp, updated.(*Model).mode)

	updated, _ = updated.(*Model).Update(keyMsg('?'))
	require.Equal(t, ViewList, updated.(*Model).mode)
}

func TestViewRendersGroupedList(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, testDashboardConfig())
	require.Equal(t, "Initializing...", m.View())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.(*Model).Update(passOutcome("terminal"))
	updated, _ = updated.(*Model).Update(EvalOutcomeMsg{Outcome: inspect.Outcome{
		ItemID: "editor",
		Err:    errors.New("probe exploded"),
	}})
	dm := updated.(*Model)

	view := dm.View()
	require.Contains(t, view, "shipshape")
	require.Contains(t, view, "Dev Machine")
	require.Contains(t, view, "Failed")
	require.Contains(t, view, "Completed")
	require.Contains(t, view, "Terminal")
	require.Contains(t, view, "Editor")
	require.Contains(t, view, "1/2 ready")
}

func TestViewRendersDetail(t *testing.T) {
	t.Parallel()

	cfg := testDashboardConfig()
	cfg.Items[0].Info = "The daily driver."
	cfg.Items[0].Bullets = []string{"Installed from the bundle"}
	m := newTestDashboard(t, cfg)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.(*Model).Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := updated.(*Model).View()
	require.Contains(t, view, "Terminal")
	require.Contains(t, view, "The daily driver.")
	require.Contains(t, view, "Installed from the bundle")
	require.Contains(t, view, "Last checked: never")
}
