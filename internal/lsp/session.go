// Package lsp implements the protocol handlers of the session.
package lsp

import (
	"github.com/CWBudde/go-caps-lsp/internal/analysis"
	"github.com/CWBudde/go-caps-lsp/internal/server"
)

// Session binds the protocol handlers to the server state they operate
// on. One Session serves one client connection; its methods are
// registered on the glsp handler table in main.
type Session struct {
	srv  *server.Server
	rule analysis.Rule
}

// NewSession creates a session around srv using the default match rule.
func NewSession(srv *server.Server) *Session {
	return NewSessionWithRule(srv, analysis.AllCaps)
}

// NewSessionWithRule creates a session that derives diagnostics from a
// custom match rule.
func NewSessionWithRule(srv *server.Server, rule analysis.Rule) *Session {
	return &Session{
		srv:  srv,
		rule: rule,
	}
}

// Server returns the session's server state.
func (s *Session) Server() *server.Server {
	return s.srv
}
