package lsp

import (
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-caps-lsp/internal/document"
	"github.com/CWBudde/go-caps-lsp/internal/server"
)

// DidOpen handles the textDocument/didOpen notification: mirror the
// document and validate it.
func (s *Session) DidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := &server.Document{
		URI:        params.TextDocument.URI,
		LanguageID: params.TextDocument.LanguageID,
		Version:    int(params.TextDocument.Version),
		Text:       params.TextDocument.Text,
	}
	s.srv.Documents().Set(doc.URI, doc)

	log.Printf("Document opened: %s (version %d, %d bytes)", doc.URI, doc.Version, len(doc.Text))

	s.validate(context, doc)

	return nil
}

// DidChange handles the textDocument/didChange notification. Both full
// and incremental sync shapes are accepted; all changes carried by the
// notification are applied in order before revalidating.
func (s *Session) DidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	doc, exists := s.srv.Documents().Get(uri)
	if !exists {
		log.Printf("Warning: didChange for unknown document %s", uri)
		return nil
	}

	newText := doc.Text

	for i, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			updated, err := document.ApplyContentChange(newText, change)
			if err != nil {
				log.Printf("Error applying change %d/%d to %s: %v", i+1, len(params.ContentChanges), uri, err)
				continue
			}
			newText = updated
		case protocol.TextDocumentContentChangeEventWhole:
			newText = change.Text
		default:
			log.Printf("Warning: unexpected content change type %T for %s", raw, uri)
		}
	}

	updated := &server.Document{
		URI:        uri,
		LanguageID: doc.LanguageID,
		Version:    int(params.TextDocument.Version),
		Text:       newText,
	}
	s.srv.Documents().Set(uri, updated)

	s.validate(context, updated)

	return nil
}

// DidClose handles the textDocument/didClose notification. The settings
// entry goes with the document, and an empty diagnostics set clears any
// leftover markers in the editor.
func (s *Session) DidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.srv.Documents().Delete(uri)
	s.srv.Settings().Forget(uri)

	log.Printf("Document closed: %s", uri)

	publishDiagnostics(context, uri, nil)

	return nil
}
