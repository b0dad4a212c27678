package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCacheSetGet(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.json")

	cache, err := NewStatusCache(cachePath)
	require.NoError(t, err)

	_, ok := cache.Get("team")
	assert.False(t, ok)

	cache.Set("team", CachedStatus{
		AllComplete: false,
		Score:       0.75,
		Counts:      map[string]int{"completed": 3, "pending": 1},
		LastRun:     time.Now(),
		Summary:     "3/4 items ready",
	})

	status, ok := cache.Get("team")
	require.True(t, ok)
	assert.Equal(t, 0.75, status.Score)
	assert.Equal(t, 3, status.Counts["completed"])
}

func TestStatusCacheSaveRoundTrip(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.json")

	cache, err := NewStatusCache(cachePath)
	require.NoError(t, err)
	cache.Set("team", CachedStatus{Score: 1.0, AllComplete: true})
	require.NoError(t, cache.Save())

	cache2, err := NewStatusCache(cachePath)
	require.NoError(t, err)

	status, ok := cache2.Get("team")
	require.True(t, ok)
	assert.True(t, status.AllComplete)
	assert.Equal(t, 1.0, status.Score)
}

func TestStatusCacheInvalidate(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.json")

	cache, err := NewStatusCache(cachePath)
	require.NoError(t, err)
	cache.Set("team", CachedStatus{Score: 0.5})
	cache.Set("personal", CachedStatus{Score: 0.25})

	cache.Invalidate("team")
	_, ok := cache.Get("team")
	assert.False(t, ok)
	_, ok = cache.Get("personal")
	assert.True(t, ok)

	cache.InvalidateAll()
	_, ok = cache.Get("personal")
	assert.False(t, ok)
}
