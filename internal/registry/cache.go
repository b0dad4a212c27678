package registry

import (
	"os"
	"sync"
)

// StatusCache persists per-preset evaluation summaries between sessions so
// the dashboard has something to show before fresh results arrive.
type StatusCache struct {
	path     string
	mu       sync.RWMutex
	version  string
	statuses map[string]CachedStatus
}

// NewStatusCache creates a StatusCache backed by the file at path and loads
// it. A missing file starts an empty cache.
func NewStatusCache(path string) (*StatusCache, error) {
	c := &StatusCache{
		path:     path,
		version:  fileVersion,
		statuses: make(map[string]CachedStatus),
	}

	if err := ensureDir(path); err != nil {
		return nil, err
	}

	if err := c.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return c, nil
}

func (c *StatusCache) load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var file StatusCacheFile
	if err := loadJSON(c.path, &file); err != nil {
		return err
	}

	c.version = file.Version
	c.statuses = file.Statuses
	if c.statuses == nil {
		c.statuses = make(map[string]CachedStatus)
	}
	return nil
}

// Save writes the cache to disk atomically.
func (c *StatusCache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	statuses := make(map[string]CachedStatus, len(c.statuses))
	for k, v := range c.statuses {
		statuses[k] = v
	}
	return saveJSON(c.path, StatusCacheFile{Version: c.version, Statuses: statuses})
}

// Get retrieves the cached status for a preset.
func (c *StatusCache) Get(presetID string) (CachedStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status, ok := c.statuses[presetID]
	return status, ok
}

// Set updates the cached status for a preset.
func (c *StatusCache) Set(presetID string, status CachedStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.statuses[presetID] = status
}

// Invalidate removes the cached status for a preset.
func (c *StatusCache) Invalidate(presetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.statuses, presetID)
}

// InvalidateAll empties the cache.
func (c *StatusCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.statuses = make(map[string]CachedStatus)
}
