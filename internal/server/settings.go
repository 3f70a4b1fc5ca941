package server

import (
	"sync"
)

// Settings is the per-document configuration understood by this server.
type Settings struct {
	MaxNumberOfProblems int `json:"maxNumberOfProblems"`
}

// DefaultSettings applies when the client never supplies a value.
func DefaultSettings() Settings {
	return Settings{MaxNumberOfProblems: 1000}
}

// FetchFunc retrieves the settings scoped to one document URI from the
// client, via a workspace/configuration round-trip.
type FetchFunc func(uri string) (Settings, error)

// settingsEntry is one cache slot. While the fetch is outstanding the
// entry is pending (done still open); afterwards it is resolved and holds
// either a value or the fetch error.
type settingsEntry struct {
	done  chan struct{}
	value Settings
	err   error
}

// SettingsCache caches per-document settings when the client supports
// workspace/configuration queries, and falls back to a single global
// value when it does not. Concurrent callers for the same URI share one
// outstanding fetch instead of issuing duplicates.
type SettingsCache struct {
	session SessionConfig

	mu      sync.Mutex
	global  Settings
	entries map[string]*settingsEntry
}

// NewSettingsCache creates an empty cache bound to the negotiated session
// flags.
func NewSettingsCache(session SessionConfig) *SettingsCache {
	return &SettingsCache{
		session: session,
		global:  DefaultSettings(),
		entries: make(map[string]*settingsEntry),
	}
}

// Get returns the settings for uri. Without configuration support this is
// the global value and fetch is never called. Otherwise the cached
// pending or resolved entry is used when present; on a miss one fetch is
// issued and shared with any concurrent callers. A failed fetch leaves no
// cache entry, so the next call retries.
func (c *SettingsCache) Get(uri string, fetch FetchFunc) (Settings, error) {
	if !c.session.HasConfiguration {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.global, nil
	}

	c.mu.Lock()
	if entry, ok := c.entries[uri]; ok {
		c.mu.Unlock()
		<-entry.done
		return entry.value, entry.err
	}

	entry := &settingsEntry{done: make(chan struct{})}
	c.entries[uri] = entry
	c.mu.Unlock()

	entry.value, entry.err = fetch(uri)
	if entry.err != nil {
		c.mu.Lock()
		// Remove only our own entry; Invalidate may have swapped the map.
		if c.entries[uri] == entry {
			delete(c.entries, uri)
		}
		c.mu.Unlock()
	}
	close(entry.done)

	return entry.value, entry.err
}

// Invalidate drops every cached entry so the next Get per document issues
// a fresh fetch.
func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*settingsEntry)
}

// Forget drops the cache entry for one document. Called when a document
// closes, so only open documents retain cached settings.
func (c *SettingsCache) Forget(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, uri)
}

// SetGlobal replaces the global fallback value.
func (c *SettingsCache) SetGlobal(settings Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.global = settings
}

// Global returns the global fallback value.
func (c *SettingsCache) Global() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.global
}

// Len reports how many documents currently have a cache entry.
func (c *SettingsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
