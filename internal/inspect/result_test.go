package inspect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyResultGrantsCompletion(t *testing.T) {
	t.Parallel()

	state := ApplyResult(ItemState{}, Result{
		ItemID:    "vpn",
		Valid:     true,
		Installed: true,
		Source:    SourceFilesystem,
		Timestamp: time.Now(),
	})

	assert.True(t, state.Completed)
	assert.False(t, state.Sticky)
	assert.True(t, state.Valid)
	assert.Equal(t, SourceFilesystem, state.Source)
}

func TestApplyResultTrivialCompletionIsSticky(t *testing.T) {
	t.Parallel()

	state := ApplyResult(ItemState{}, Result{
		ItemID:    "notes",
		Valid:     true,
		Installed: true,
		Source:    SourceTrivial,
	})
	require.True(t, state.Completed)
	require.True(t, state.Sticky)

	// A later filesystem negative must not revert a sticky completion.
	state = ApplyResult(state, Result{
		ItemID: "notes",
		Source: SourceFilesystem,
	})
	assert.True(t, state.Completed, "sticky completion reverted")
}

func TestApplyResultFilesystemNegativeRetracts(t *testing.T) {
	t.Parallel()

	state := ApplyResult(ItemState{}, Result{Valid: true, Installed: true, Source: SourceFilesystem})
	require.True(t, state.Completed)

	state = ApplyResult(state, Result{Valid: false, Installed: false, Source: SourceFilesystem})
	assert.False(t, state.Completed)
}

func TestApplyResultKeyValueNegativeDoesNotRetract(t *testing.T) {
	t.Parallel()

	state := ApplyResult(ItemState{}, Result{Valid: true, Installed: true, Source: SourceFilesystem})
	require.True(t, state.Completed)

	state = ApplyResult(state, Result{Valid: false, Installed: false, Source: SourceKeyValue})
	assert.True(t, state.Completed, "key/value negative retracted a completion")
	assert.False(t, state.Valid)
}

func TestApplyResultClearsTransientFlags(t *testing.T) {
	t.Parallel()

	state := ItemState{Failed: true, Running: true}
	state = ApplyResult(state, Result{Valid: true, Installed: true, Source: SourceFilesystem})

	assert.False(t, state.Failed)
	assert.False(t, state.Running)
}

func TestApplyFailureKeepsCompletion(t *testing.T) {
	t.Parallel()

	state := ItemState{Completed: true, Running: true}
	state = ApplyFailure(state)

	assert.True(t, state.Failed)
	assert.True(t, state.Completed)
	assert.False(t, state.Running)
}
