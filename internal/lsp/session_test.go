package lsp

import (
	"encoding/json"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-caps-lsp/internal/server"
)

const testURI = "file:///test.txt"

// setupSession creates a session whose server already negotiated the
// given flags, as if initialize had run.
func setupSession(config server.SessionConfig) *Session {
	srv := server.New()
	srv.ConfigureSession(config)
	return NewSession(srv)
}

// connRecorder captures the traffic a handler sends back over the
// connection: published notifications and client-bound requests.
type connRecorder struct {
	published []*protocol.PublishDiagnosticsParams
	calls     []string

	// configuration is returned for workspace/configuration requests
	// while configured is true.
	configuration server.Settings
	configured    bool
}

func (r *connRecorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
		Call: func(method string, params any, result any) {
			r.calls = append(r.calls, method)

			if method == protocol.ServerWorkspaceConfiguration && r.configured {
				encoded, _ := json.Marshal(r.configuration)
				*result.(*[]json.RawMessage) = []json.RawMessage{encoded}
			}
		},
	}
}

func (r *connRecorder) configurationCalls() int {
	count := 0
	for _, method := range r.calls {
		if method == protocol.ServerWorkspaceConfiguration {
			count++
		}
	}
	return count
}

// lastPublished returns the most recent publishDiagnostics payload.
func (r *connRecorder) lastPublished(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()

	if len(r.published) == 0 {
		t.Fatal("no diagnostics were published")
	}
	return r.published[len(r.published)-1]
}

// openDocument runs the didOpen handler for a document with the given text.
func openDocument(t *testing.T, session *Session, ctx *glsp.Context, uri, text string) {
	t.Helper()

	err := session.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "plaintext",
			Version:    1,
			Text:       text,
		},
	})
	if err != nil {
		t.Fatalf("DidOpen returned error: %v", err)
	}
}
