package beacon

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogInteractionAppends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := New(dir, nil)
	b.LogInteraction("wizard_opened")
	b.LogInteraction("page_forward")

	data, err := os.ReadFile(filepath.Join(dir, interactionLogName))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "wizard_opened")
	assert.Contains(t, lines[1], "page_forward")
}

func TestTriggerReplaces(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := New(dir, nil)
	b.Trigger("setup_done")
	b.Trigger("setup_skipped")

	data, err := os.ReadFile(filepath.Join(dir, triggerName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "setup_skipped")
	assert.NotContains(t, string(data), "setup_done")

	// No stray tmp file left behind.
	_, err = os.Stat(filepath.Join(dir, triggerName+".tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteStatus(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := New(dir, nil)
	b.WriteStatus(Status{
		Preset:    "team",
		Page:      2,
		Total:     5,
		Completed: 3,
	})

	data, err := os.ReadFile(filepath.Join(dir, statusName))
	require.NoError(t, err)

	var status Status
	require.NoError(t, json.Unmarshal(data, &status))
	assert.Equal(t, "team", status.Preset)
	assert.Equal(t, 2, status.Page)
	assert.Equal(t, 3, status.Completed)
	assert.False(t, status.AllComplete)
	assert.WithinDuration(t, time.Now(), status.UpdatedAt, 5*time.Second)
}

func TestWritesAreBestEffort(t *testing.T) {
	t.Parallel()

	// Point the beacon at a path that is a file, not a directory; every
	// write fails but nothing panics or surfaces.
	dir := t.TempDir()
	notADir := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	b := New(filepath.Join(notADir, "nested"), nil)
	b.LogInteraction("event")
	b.Trigger("event")
	b.WriteStatus(Status{Preset: "team"})
}

func TestDefaultDirIsTempDir(t *testing.T) {
	t.Parallel()

	b := New("", nil)
	assert.Equal(t, os.TempDir(), b.Dir())
}
