package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileCache persists the mirror as a single JSON object on disk. Every Set and
// Delete rewrites the file; the dataset is one small snapshot per user, so a
// full rewrite is fine. Loading tolerates a missing or corrupt file by
// starting empty — the cache is never authoritative.
type fileCache struct {
	path    string
	mu      sync.RWMutex
	entries map[string]string
}

func NewFileCache(path string) (KeyValue, error) {
	if path == "" {
		return nil, errors.New("cache path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &fileCache{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if unmarshalErr := json.Unmarshal(data, &c.entries); unmarshalErr != nil {
			c.entries = make(map[string]string)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	return c, nil
}

func (c *fileCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *fileCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return c.flushLocked()
}

func (c *fileCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return c.flushLocked()
}

func (c *fileCache) flushLocked() error {
	data, err := json.MarshalIndent(c.entries, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entries: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
