package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-caps-lsp/internal/server"
)

func TestDidChangeConfiguration_InvalidatesCacheAndRevalidates(t *testing.T) {
	session := setupSession(server.SessionConfig{HasConfiguration: true})
	recorder := &connRecorder{
		configuration: server.Settings{MaxNumberOfProblems: 1000},
		configured:    true,
	}
	ctx := recorder.context()

	openDocument(t, session, ctx, testURI, "AB CD EF")
	if got := len(recorder.lastPublished(t).Diagnostics); got != 3 {
		t.Fatalf("got %d diagnostics after open, want 3", got)
	}
	if got := recorder.configurationCalls(); got != 1 {
		t.Fatalf("got %d configuration requests after open, want 1", got)
	}

	// The client's answer changes; the notification must force a refetch.
	recorder.configuration = server.Settings{MaxNumberOfProblems: 2}

	err := session.DidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{})
	if err != nil {
		t.Fatalf("DidChangeConfiguration returned error: %v", err)
	}

	if got := recorder.configurationCalls(); got != 2 {
		t.Errorf("got %d configuration requests, want 2 (stale value must not be reused)", got)
	}
	if got := len(recorder.lastPublished(t).Diagnostics); got != 2 {
		t.Errorf("got %d diagnostics after change, want 2 under the new limit", got)
	}
}

func TestDidChangeConfiguration_GlobalUpdate(t *testing.T) {
	session := setupSession(server.SessionConfig{})
	recorder := &connRecorder{}
	ctx := recorder.context()

	openDocument(t, session, ctx, testURI, "AB CD EF")

	err := session.DidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{
			"languageServerExample": map[string]any{
				"maxNumberOfProblems": float64(2),
			},
		},
	})
	if err != nil {
		t.Fatalf("DidChangeConfiguration returned error: %v", err)
	}

	if got := session.Server().Settings().Global().MaxNumberOfProblems; got != 2 {
		t.Errorf("global maxNumberOfProblems = %d, want 2", got)
	}
	if got := len(recorder.lastPublished(t).Diagnostics); got != 2 {
		t.Errorf("got %d diagnostics after change, want 2", got)
	}
}

func TestDidChangeConfiguration_DefaultsWhenAbsent(t *testing.T) {
	session := setupSession(server.SessionConfig{})
	session.Server().Settings().SetGlobal(server.Settings{MaxNumberOfProblems: 5})
	recorder := &connRecorder{}

	err := session.DidChangeConfiguration(recorder.context(), &protocol.DidChangeConfigurationParams{})
	if err != nil {
		t.Fatalf("DidChangeConfiguration returned error: %v", err)
	}

	if got := session.Server().Settings().Global(); got != server.DefaultSettings() {
		t.Errorf("global settings = %+v, want defaults", got)
	}
}

func TestDidChangeWatchedFiles_NoPipelineEffect(t *testing.T) {
	session := setupSession(server.SessionConfig{})
	recorder := &connRecorder{}
	ctx := recorder.context()

	openDocument(t, session, ctx, testURI, "HELLO")
	publishedBefore := len(recorder.published)

	err := session.DidChangeWatchedFiles(ctx, &protocol.DidChangeWatchedFilesParams{
		Changes: []protocol.FileEvent{
			{URI: "file:///on-disk.txt"},
		},
	})
	if err != nil {
		t.Fatalf("DidChangeWatchedFiles returned error: %v", err)
	}

	if len(recorder.published) != publishedBefore {
		t.Error("watched file events must not trigger validation")
	}
}

func TestDidChangeWorkspaceFolders(t *testing.T) {
	for _, hasFolders := range []bool{true, false} {
		session := setupSession(server.SessionConfig{HasWorkspaceFolders: hasFolders})
		recorder := &connRecorder{}

		err := session.DidChangeWorkspaceFolders(recorder.context(), &protocol.DidChangeWorkspaceFoldersParams{
			Event: protocol.WorkspaceFoldersChangeEvent{
				Added: []protocol.WorkspaceFolder{{URI: "file:///workspace", Name: "workspace"}},
			},
		})
		if err != nil {
			t.Fatalf("DidChangeWorkspaceFolders returned error: %v", err)
		}

		if len(recorder.published) != 0 || len(recorder.calls) != 0 {
			t.Error("workspace folder events are log-only")
		}
	}
}
