package wizard

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
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

func pickerConfig(required bool) *config.Config {
	cfg := testWizardConfig()
	cfg.Wizard = &config.Wizard{
		Picker: &config.Picker{
			Mode: config.PickerModeMulti,
			Options: []config.PickerOption{
				{ID: "profile-a", Name: "Profile A"},
				{ID: "profile-b", Name: "Profile B"},
			},
			Required: required,
		},
	}
	return cfg
}

func TestUpdateOutcomeCompletesItem(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())

	updated, cmd := m.Update(passOutcome("terminal"))
	wm := updated.(*Model)

	require.Equal(t, inspect.StatusCompleted, wm.tracker.Status("terminal"))
	require.False(t, wm.machine.Success())
	require.NotNil(t, cmd)
}

func TestUpdateOutcomeErrorMarksFailed(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())

	updated, _ := m.Update(EvalOutcomeMsg{Outcome: inspect.Outcome{
		ItemID: "terminal",
		Err:    errors.New("probe exploded"),
	}})
	wm := updated.(*Model)

	require.Equal(t, inspect.StatusFailed, wm.tracker.Status("terminal"))
}

func TestUpdateAllOutcomesEnterSuccess(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())

	updated, _ := m.Update(passOutcome("terminal"))
	updated, _ = updated.(*Model).Update(passOutcome("editor"))
	wm := updated.(*Model)

	require.True(t, wm.machine.Success())
}

func TestUpdateForwardAdvancesAndPersists(t *testing.T) {
	t.Parallel()

	store, err := registry.NewStateStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	m := newTestModel(t, testWizardConfig(), func(o *Options) {
		o.States = store
	})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	wm := updated.(*Model)

	require.Equal(t, 1, wm.machine.Page())
	require.True(t, wm.machine.PageCompleted(0))

	require.NotNil(t, cmd)
	saved, ok := cmd().(StateSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	state, ok := store.Load("dev")
	require.True(t, ok)
	require.Equal(t, 1, state.Page)
	require.Equal(t, []int{0}, state.CompletedPages)
}

func TestUpdateForwardBlockedOnRequiredPicker(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, pickerConfig(true))
	require.True(t, m.machine.Goto(2))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	wm := updated.(*Model)

	require.False(t, wm.quitting)
	require.Equal(t, 2, wm.machine.Page())
	require.Contains(t, wm.errMsg, "Select at least one option")
}

func TestUpdateSelectionUnblocksFinish(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, pickerConfig(true))
	require.True(t, m.machine.Goto(2))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	updated, cmd := updated.(*Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	wm := updated.(*Model)

	require.True(t, wm.quitting)
	require.Equal(t, OutcomePrimary, wm.Outcome())
	require.Equal(t, []string{"profile-a"}, wm.machine.SelectedIDs())
	require.NotNil(t, cmd)
}

func TestUpdateForwardAtEndFinishesPrimary(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())
	require.True(t, m.machine.Goto(1))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	wm := updated.(*Model)

	require.True(t, wm.quitting)
	require.Equal(t, OutcomePrimary, wm.Outcome())
	require.Equal(t, 0, wm.Outcome().ExitCode())
	require.NotNil(t, cmd)
}

func TestUpdateQuitKeySkips(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())

	updated, cmd := m.Update(keyMsg('q'))
	wm := updated.(*Model)

	require.True(t, wm.quitting)
	require.Equal(t, OutcomeSkip, wm.Outcome())
	require.Equal(t, 2, wm.Outcome().ExitCode())
	require.NotNil(t, cmd)
}

func TestUpdateSkipKeyHonorsAllowSkip(t *testing.T) {
	t.Parallel()

	cfg := testWizardConfig()
	m := newTestModel(t, cfg)
	updated, _ := m.Update(keyMsg('s'))
	require.False(t, updated.(*Model).quitting)

	cfg = testWizardConfig()
	cfg.Wizard = &config.Wizard{AllowSkip: true}
	m = newTestModel(t, cfg)
	updated, _ = m.Update(keyMsg('s'))
	wm := updated.(*Model)
	require.True(t, wm.quitting)
	require.Equal(t, OutcomeSkip, wm.Outcome())
}

func TestUpdatePollTickRearmsUntilQuit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())

	_, cmd := m.Update(PollTickMsg{At: time.Now()})
	require.NotNil(t, cmd)

	updated, _ := m.Update(keyMsg('q'))
	_, cmd = updated.(*Model).Update(PollTickMsg{At: time.Now()})
	require.Nil(t, cmd)
}

func TestUpdateResetConfirmFlow(t *testing.T) {
	t.Parallel()

	store, err := registry.NewStateStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	m := newTestModel(t, testWizardConfig(), func(o *Options) {
		o.States = store
	})
	updated, _ := m.Update(passOutcome("terminal"))
	updated, _ = updated.(*Model).Update(tea.KeyMsg{Type: tea.KeyEnter})

	updated, _ = updated.(*Model).Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	wm := updated.(*Model)
	require.Equal(t, ViewConfirmReset, wm.mode)

	updated, _ = wm.Update(keyMsg('n'))
	wm = updated.(*Model)
	require.Equal(t, ViewPage, wm.mode)
	require.Equal(t, 1, wm.machine.Page())

	updated, _ = wm.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	updated, cmd := updated.(*Model).Update(keyMsg('y'))
	wm = updated.(*Model)

	require.Equal(t, ViewPage, wm.mode)
	require.Equal(t, 0, wm.machine.Page())
	require.False(t, wm.tracker.Completed("terminal"))
	require.Equal(t, inspect.StatusPending, wm.tracker.Status("editor"))

	require.NotNil(t, cmd)
	cleared, ok := cmd().(StateClearedMsg)
	require.True(t, ok)
	require.NoError(t, cleared.Err)

	_, ok = store.Load("dev")
	require.False(t, ok)
}

func TestUpdatePickerCursorWrapsAndToggles(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, pickerConfig(false))
	require.True(t, m.machine.Goto(2))

	updated, _ := m.Update(keyMsg('j'))
	wm := updated.(*Model)
	require.Equal(t, 1, wm.cursor)

	updated, _ = wm.Update(keyMsg('j'))
	wm = updated.(*Model)
	require.Equal(t, 0, wm.cursor)

	updated, _ = wm.Update(keyMsg('k'))
	wm = updated.(*Model)
	require.Equal(t, 1, wm.cursor)

	updated, _ = wm.Update(tea.KeyMsg{Type: tea.KeySpace})
	wm = updated.(*Model)
	require.True(t, wm.machine.Selection().IsSelected("profile-b"))

	updated, _ = wm.Update(tea.KeyMsg{Type: tea.KeySpace})
	wm = updated.(*Model)
	require.False(t, wm.machine.Selection().IsSelected("profile-b"))
}

func TestUpdateDigitJumpsToPage(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())

	updated, _ := m.Update(keyMsg('2'))
	require.Equal(t, 1, updated.(*Model).machine.Page())
}

func TestUpdateHelpToggle(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())

	updated, _ := m.Update(keyMsg('?'))
	wm := updated.(*Model)
	require.Equal(t, ViewHelp, wm.mode)

	updated, _ = wm.Update(keyMsg('?'))
	require.Equal(t, ViewPage, updated.(*Model).mode)
}

func TestUpdateRevalidateMarksRunning(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())
	updated, _ := m.Update(passOutcome("terminal"))

	updated, _ = updated.(*Model).Update(keyMsg('r'))
	wm := updated.(*Model)

	// Completion outranks the in-flight probe for display.
	require.Equal(t, inspect.StatusCompleted, wm.tracker.Status("terminal"))
	require.True(t, wm.tracker.State("terminal").Running)
}

func TestViewRendersPageAndBanner(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testWizardConfig())
	require.Equal(t, "Initializing...", m.View())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	wm := updated.(*Model)

	view := wm.View()
	require.Contains(t, view, "Dev Machine")
	require.Contains(t, view, "Page 1 of 2")
	require.Contains(t, view, "Terminal")

	updated, _ = wm.Update(passOutcome("terminal"))
	updated, _ = updated.(*Model).Update(passOutcome("editor"))
	view = updated.(*Model).View()
	require.Contains(t, view, "ship shape")
}

func TestViewRendersPickerOptions(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, pickerConfig(true))
	require.True(t, m.machine.Goto(2))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := updated.(*Model).View()

	require.Contains(t, view, "Profile A")
	require.Contains(t, view, "Profile B")
	require.Contains(t, view, "Selection required")

	require.True(t, strings.Contains(view, "Choose options"))
}
