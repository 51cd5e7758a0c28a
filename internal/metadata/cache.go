package metadata

import (
	"path/filepath"
	"sync"
)

// cacheEntry records one lookup result, including absence.
type cacheEntry struct {
	text    string
	present bool
}

// Cache is a directory-scoped cache in front of a Reader. Both passes of a
// run share one Cache, so the tag pass never re-reads files the prefix pass
// already read. The cache lives for exactly one run and is released with
// Close.
type Cache struct {
	reader Reader

	mu   sync.Mutex
	dirs map[string]map[string]cacheEntry
}

// NewCache creates a Cache over the given Reader.
func NewCache(reader Reader) *Cache {
	return &Cache{
		reader: reader,
		dirs:   make(map[string]map[string]cacheEntry),
	}
}

// ReadDateTaken implements Reader. Successful lookups (present or absent)
// are cached per containing directory; read errors are never cached.
func (c *Cache) ReadDateTaken(path string) (string, bool, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	c.mu.Lock()
	if entries, ok := c.dirs[dir]; ok {
		if entry, ok := entries[base]; ok {
			c.mu.Unlock()
			return entry.text, entry.present, nil
		}
	}
	c.mu.Unlock()

	text, present, err := c.reader.ReadDateTaken(path)
	if err != nil {
		return "", false, err
	}

	c.mu.Lock()
	entries, ok := c.dirs[dir]
	if !ok {
		entries = make(map[string]cacheEntry)
		c.dirs[dir] = entries
	}
	entries[base] = cacheEntry{text: text, present: present}
	c.mu.Unlock()

	return text, present, nil
}

// DirCount returns the number of directories with cached entries.
// This is primarily useful for testing.
func (c *Cache) DirCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dirs)
}

// Close releases all cached entries. The Cache must not be used afterwards
// within the same run; a new run builds a fresh one.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs = make(map[string]map[string]cacheEntry)
}
