package category

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/prefstore"
)

func writeAuditDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAuditorAggregatesAcrossSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	managed := writeAuditDoc(t, dir, "managed.json", `{
		"vpn": {"deployed": "true", "profile": "corp"},
		"dock": {"autohide": "1"}
	}`)
	local := writeAuditDoc(t, dir, "local.json", `{"backup": {"enabled": "NO"}}`)

	sources := []config.AuditSource{
		{
			Name: "Managed",
			Path: managed,
			Categories: map[string]string{
				"vpn.deployed": "Security",
			},
		},
		{Name: "Local", Path: local},
	}

	auditor := NewAuditor(nil, nil, nil)
	aggs, err := auditor.Run(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, aggs, 3)

	// Sorted by name: Local, Managed, Security.
	assert.Equal(t, "Local", aggs[0].Name)
	assert.Equal(t, 1, aggs[0].Total)
	assert.Equal(t, 0, aggs[0].Passed)

	assert.Equal(t, "Managed", aggs[1].Name)
	assert.Equal(t, 2, aggs[1].Total)
	assert.Equal(t, 1, aggs[1].Passed)

	assert.Equal(t, "Security", aggs[2].Name)
	assert.Equal(t, 1, aggs[2].Total)
	assert.Equal(t, 1, aggs[2].Passed)
}

func TestAuditorSkipsUnreadableSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeAuditDoc(t, dir, "good.json", `{"ok": "true"}`)

	sources := []config.AuditSource{
		{Name: "Gone", Path: filepath.Join(dir, "missing.json")},
		{Name: "Good", Path: good},
	}

	auditor := NewAuditor(nil, nil, nil)
	aggs, err := auditor.Run(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, "Good", aggs[0].Name)
	assert.Equal(t, 1, aggs[0].Passed)
}

func TestAuditorCapsSourceCount(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sources := make([]config.AuditSource, 0, prefstore.MaxSources+1)
	for i := 0; i <= prefstore.MaxSources; i++ {
		name := fmt.Sprintf("Source%02d", i)
		path := writeAuditDoc(t, dir, fmt.Sprintf("s%02d.json", i), `{"k": "true"}`)
		sources = append(sources, config.AuditSource{Name: name, Path: path})
	}

	auditor := NewAuditor(nil, nil, nil)
	aggs, err := auditor.Run(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, aggs, prefstore.MaxSources)
	for _, agg := range aggs {
		assert.NotEqual(t, fmt.Sprintf("Source%02d", prefstore.MaxSources), agg.Name)
	}
}

func TestAuditorCustomSuccessValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeAuditDoc(t, dir, "doc.json", `{"a": "enabled", "b": "true"}`)

	auditor := NewAuditor(nil, []string{"enabled"}, nil)
	aggs, err := auditor.Run(context.Background(), []config.AuditSource{{Name: "S", Path: path}})
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, 2, aggs[0].Total)
	assert.Equal(t, 1, aggs[0].Passed, "only the custom success value counts")
}

func TestAuditorCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	auditor := NewAuditor(nil, nil, nil)
	_, err := auditor.Run(ctx, []config.AuditSource{{Name: "S", Path: "/nope"}})
	require.ErrorIs(t, err, context.Canceled)
}
