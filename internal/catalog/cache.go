package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultTTL is how long catalog answers stay fresh. Completion must be fast
// but does not need to see new projects or issues immediately.
const DefaultTTL = 15 * time.Minute

type cacheEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Cached wraps a Source with a file-backed TTL cache keyed by query.
// A stale or unreadable cache file is ignored, never fatal.
type Cached struct {
	source Source
	path   string
	ttl    time.Duration

	mu       sync.Mutex
	entries  map[string]cacheEntry
	modified bool
}

// NewCached creates or loads a catalog cache at the given path.
func NewCached(source Source, path string) *Cached {
	c := &Cached{
		source:  source,
		path:    path,
		ttl:     DefaultTTL,
		entries: make(map[string]cacheEntry),
	}
	c.load()
	return c
}

// WithTTL overrides the cache TTL.
func (c *Cached) WithTTL(ttl time.Duration) *Cached {
	c.ttl = ttl
	return c
}

// Projects implements Source.
func (c *Cached) Projects(ctx context.Context) ([]Project, error) {
	return cachedFetch(c, "projects", func() ([]Project, error) {
		return c.source.Projects(ctx)
	})
}

// Issues implements Source.
func (c *Cached) Issues(ctx context.Context, projectID int) ([]Issue, error) {
	key := fmt.Sprintf("issues/%d", projectID)
	return cachedFetch(c, key, func() ([]Issue, error) {
		return c.source.Issues(ctx, projectID)
	})
}

// Activities implements Source.
func (c *Cached) Activities(ctx context.Context, projectID int) ([]Activity, error) {
	key := fmt.Sprintf("activities/%d", projectID)
	return cachedFetch(c, key, func() ([]Activity, error) {
		return c.source.Activities(ctx, projectID)
	})
}

// cachedFetch returns the cached value for key when fresh, otherwise calls
// fetch and stores the result.
func cachedFetch[T any](c *Cached, key string, fetch func() ([]T, error)) ([]T, error) {
	if data, ok := c.get(key); ok {
		var values []T
		if err := json.Unmarshal(data, &values); err == nil {
			return values, nil
		}
		// Corrupt entry: fall through and refetch.
	}

	values, err := fetch()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(values); err == nil {
		c.set(key, data)
		_ = c.Save()
	}

	return values, nil
}

func (c *Cached) get(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.Timestamp) > c.ttl {
		return nil, false
	}
	return entry.Data, true
}

func (c *Cached) set(key string, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{Timestamp: time.Now(), Data: data}
	c.modified = true
}

// Save persists the cache to disk if it was modified.
func (c *Cached) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.modified {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(c.entries)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return err
	}

	c.modified = false
	return nil
}

// load reads the cache from disk, ignoring missing or corrupt files.
func (c *Cached) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}

	var entries map[string]cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	c.entries = entries
}
