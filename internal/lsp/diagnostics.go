package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-caps-lsp/internal/document"
	"github.com/CWBudde/go-caps-lsp/internal/server"
)

// configSection is the configuration namespace requested from the client.
const configSection = "languageServerExample"

// diagnosticSource tags every diagnostic published by this server.
const diagnosticSource = "ex"

// validate recomputes and publishes the diagnostics for one document.
// The settings lookup may block on a workspace/configuration round-trip;
// document changes arriving meanwhile start further validations, and the
// last publish for a URI wins.
func (s *Session) validate(context *glsp.Context, doc *server.Document) {
	settings, err := s.srv.Settings().Get(doc.URI, configFetcher(context))
	if err != nil {
		// Keep the previously published set rather than publishing garbage;
		// the failed fetch left no cache entry, so the next validation retries.
		log.Printf("Warning: settings fetch failed for %s, skipping validation: %v", doc.URI, err)
		return
	}

	publishDiagnostics(context, doc.URI, s.diagnose(doc, settings))
}

// diagnose runs the match rule over the document text and builds at most
// settings.MaxNumberOfProblems diagnostics. Matches beyond the cap are
// dropped silently.
func (s *Session) diagnose(doc *server.Document, settings server.Settings) []protocol.Diagnostic {
	config := s.srv.Session()
	severity := protocol.DiagnosticSeverityWarning
	source := diagnosticSource

	diagnostics := []protocol.Diagnostic{}

	for _, match := range s.rule(doc.Text) {
		if len(diagnostics) >= settings.MaxNumberOfProblems {
			break
		}

		matchRange, err := document.OffsetRange(doc.Text, match.Start, match.End)
		if err != nil {
			log.Printf("Warning: dropping match at %d-%d in %s: %v", match.Start, match.End, doc.URI, err)
			continue
		}

		diagnostic := protocol.Diagnostic{
			Range:    matchRange,
			Severity: &severity,
			Source:   &source,
			Message:  fmt.Sprintf("%s is all uppercase.", match.Text),
		}

		if config.HasRelatedInformation {
			location := protocol.Location{URI: doc.URI, Range: matchRange}
			diagnostic.RelatedInformation = []protocol.DiagnosticRelatedInformation{
				{Location: location, Message: "Spelling matters"},
				{Location: location, Message: "Particularly for names"},
			}
		}

		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// configFetcher builds the fetch callback handed to the settings cache.
// glsp's Call surfaces no transport error, so an empty or undecodable
// reply is treated as the failure case.
func configFetcher(context *glsp.Context) server.FetchFunc {
	return func(uri string) (server.Settings, error) {
		if context == nil || context.Call == nil {
			return server.Settings{}, fmt.Errorf("no connection context for configuration request")
		}

		scope := uri
		section := configSection
		params := protocol.ConfigurationParams{
			Items: []protocol.ConfigurationItem{
				{ScopeURI: &scope, Section: &section},
			},
		}

		var results []json.RawMessage
		context.Call(protocol.ServerWorkspaceConfiguration, params, &results)

		if len(results) == 0 {
			return server.Settings{}, fmt.Errorf("no configuration returned for %s", uri)
		}

		settings := server.DefaultSettings()
		if err := json.Unmarshal(results[0], &settings); err != nil {
			return server.Settings{}, fmt.Errorf("decoding configuration for %s: %w", uri, err)
		}

		return settings, nil
	}
}

// publishDiagnostics sends the full diagnostic set for uri, replacing
// whatever was published before. An empty set must still be sent so the
// client clears stale markers.
func publishDiagnostics(context *glsp.Context, uri string, diagnostics []protocol.Diagnostic) {
	if context == nil || context.Notify == nil {
		log.Println("Warning: cannot publish diagnostics, no connection context")
		return
	}

	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	sortDiagnostics(diagnostics)

	log.Printf("Publishing %d diagnostic(s) for %s", len(diagnostics), uri)

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// sortDiagnostics orders diagnostics by start position, line first. The
// rule already reports matches in text order; this keeps the guarantee
// for custom rules.
func sortDiagnostics(diagnostics []protocol.Diagnostic) {
	sort.Slice(diagnostics, func(i, j int) bool {
		if diagnostics[i].Range.Start.Line != diagnostics[j].Range.Start.Line {
			return diagnostics[i].Range.Start.Line < diagnostics[j].Range.Start.Line
		}
		return diagnostics[i].Range.Start.Character < diagnostics[j].Range.Start.Character
	})
}
