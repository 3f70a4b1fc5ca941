// Package server provides the core LSP session state and management.
package server

import (
	"sync"
)

// Server holds the state of one LSP session.
type Server struct {
	// documents mirrors all open documents
	documents *DocumentStore

	// settings caches per-document settings fetched from the client
	settings *SettingsCache

	// catalog holds the static completion items and their detail table
	catalog *Catalog

	// session records the capabilities negotiated at initialize
	session SessionConfig

	// mutex protects session, settings and shuttingDown
	mu sync.RWMutex

	// shutting down flag
	shuttingDown bool
}

// New creates a new session server instance.
func New() *Server {
	return &Server{
		documents: NewDocumentStore(),
		settings:  NewSettingsCache(SessionConfig{}),
		catalog:   NewCatalog(),
	}
}

// ConfigureSession installs the negotiated session flags and rebuilds the
// settings cache around them. Called exactly once, from the initialize
// handler, before any document event can arrive.
func (s *Server) ConfigureSession(config SessionConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = config
	s.settings = NewSettingsCache(config)
}

// Session returns the negotiated session flags.
func (s *Server) Session() SessionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Documents returns the document store.
func (s *Server) Documents() *DocumentStore {
	return s.documents
}

// Settings returns the settings cache.
func (s *Server) Settings() *SettingsCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Catalog returns the completion catalog.
func (s *Server) Catalog() *Catalog {
	return s.catalog
}

// IsShuttingDown returns true if the server is shutting down.
func (s *Server) IsShuttingDown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuttingDown
}

// SetShuttingDown marks the server as shutting down.
func (s *Server) SetShuttingDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuttingDown = true
}
