package lsp

import (
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Completion handles the textDocument/completion request. The catalog is
// static: position and document context are deliberately ignored, and the
// same list is returned for every document.
func (s *Session) Completion(context *glsp.Context, params *protocol.CompletionParams) (any, error) {
	items := s.srv.Catalog().Items()

	log.Printf("Completion request for %s: returning %d item(s)", params.TextDocument.URI, len(items))

	return items, nil
}

// CompletionResolve handles the completionItem/resolve request by
// attaching the static detail and documentation for the item's id. Items
// with an unknown id come back unchanged; that is not an error.
func (s *Session) CompletionResolve(context *glsp.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	return s.srv.Catalog().Resolve(params), nil
}
