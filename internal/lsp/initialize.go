package lsp

import (
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-caps-lsp/internal/server"
)

const (
	serverName    = "go-caps-lsp"
	serverVersion = "0.1.0"
)

// Initialize handles the initialize request. It records the client's
// optional capabilities on the server and answers with the server's own.
func (s *Session) Initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	config := server.NewSessionConfig(params.Capabilities)
	s.srv.ConfigureSession(config)

	log.Printf("Initialize: configuration=%v workspaceFolders=%v relatedInformation=%v",
		config.HasConfiguration, config.HasWorkspaceFolders, config.HasRelatedInformation)

	changeKind := protocol.TextDocumentSyncKindIncremental
	trueValue := true

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &trueValue,
			Change:    &changeKind,
		},

		// Completion with lazy per-item resolution
		CompletionProvider: &protocol.CompletionOptions{
			ResolveProvider: &trueValue,
		},
	}

	// Workspace folder support is echoed back only if the client has it
	if config.HasWorkspaceFolders {
		capabilities.Workspace = &protocol.ServerCapabilitiesWorkspace{
			WorkspaceFolders: &protocol.WorkspaceFoldersServerCapabilities{
				Supported: &trueValue,
			},
		}
	}

	version := serverVersion

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

// Initialized handles the initialized notification. With configuration
// support the server registers for workspace/didChangeConfiguration so
// the client pushes changes instead of being polled.
func (s *Session) Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	config := s.srv.Session()

	if config.HasConfiguration {
		context.Call(protocol.ServerClientRegisterCapability, protocol.RegistrationParams{
			Registrations: []protocol.Registration{
				{
					ID:     "workspace/didChangeConfiguration",
					Method: "workspace/didChangeConfiguration",
				},
			},
		}, nil)

		log.Println("Registered for configuration change notifications")
	}

	if config.HasWorkspaceFolders {
		log.Println("Client supports workspace folders")
	}

	return nil
}

// Shutdown handles the shutdown request.
func (s *Session) Shutdown(context *glsp.Context) error {
	s.srv.SetShuttingDown()
	s.srv.Documents().Clear()

	return nil
}

// SetTrace handles the $/setTrace notification. Trace output is not
// implemented.
func (s *Session) SetTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}
