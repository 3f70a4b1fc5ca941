package lsp

import (
	"encoding/json"
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-caps-lsp/internal/server"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. With configuration support the whole cache is dropped and
// every document refetches on its next validation; without it the pushed
// settings replace the global value. Open documents are revalidated either
// way so the new limits take effect immediately.
func (s *Session) DidChangeConfiguration(context *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	if s.srv.Session().HasConfiguration {
		s.srv.Settings().Invalidate()
		log.Println("Configuration changed, settings cache cleared")
	} else {
		settings := globalSettings(params.Settings)
		s.srv.Settings().SetGlobal(settings)
		log.Printf("Configuration changed: maxNumberOfProblems = %d", settings.MaxNumberOfProblems)
	}

	s.validateAll(context)

	return nil
}

// globalSettings extracts this server's section from the pushed settings
// blob, falling back to defaults when it is absent or malformed.
func globalSettings(raw any) server.Settings {
	blob, ok := raw.(map[string]any)
	if !ok {
		return server.DefaultSettings()
	}

	section, ok := blob[configSection]
	if !ok {
		return server.DefaultSettings()
	}

	encoded, err := json.Marshal(section)
	if err != nil {
		return server.DefaultSettings()
	}

	settings := server.DefaultSettings()
	if err := json.Unmarshal(encoded, &settings); err != nil {
		log.Printf("Warning: malformed %s settings: %v", configSection, err)
		return server.DefaultSettings()
	}

	return settings
}

// validateAll revalidates every open document.
func (s *Session) validateAll(context *glsp.Context) {
	for _, uri := range s.srv.Documents().List() {
		if doc, ok := s.srv.Documents().Get(uri); ok {
			s.validate(context, doc)
		}
	}
}

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification. Filesystem events outside the editor do not feed the
// pipeline; they are only logged.
func (s *Session) DidChangeWatchedFiles(context *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	for _, change := range params.Changes {
		log.Printf("Watched file changed: %s", change.URI)
	}

	return nil
}

// DidChangeWorkspaceFolders handles the workspace/didChangeWorkspaceFolders
// notification, sent only when folder support was negotiated.
func (s *Session) DidChangeWorkspaceFolders(context *glsp.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	if !s.srv.Session().HasWorkspaceFolders {
		return nil
	}

	for _, folder := range params.Event.Added {
		log.Printf("Workspace folder added: %s (%s)", folder.Name, folder.URI)
	}

	for _, folder := range params.Event.Removed {
		log.Printf("Workspace folder removed: %s (%s)", folder.Name, folder.URI)
	}

	return nil
}
