package server

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SessionConfig records which optional client capabilities were negotiated
// during initialize. It is produced once, installed on the server, and
// never mutated afterwards.
type SessionConfig struct {
	// HasConfiguration is true if the client answers workspace/configuration requests.
	HasConfiguration bool

	// HasWorkspaceFolders is true if the client supports multi-root workspaces.
	HasWorkspaceFolders bool

	// HasRelatedInformation is true if the client renders diagnostic related information.
	HasRelatedInformation bool
}

// NewSessionConfig derives the session flags from the client's declared
// capabilities. Absent or falsy fields default to false.
func NewSessionConfig(capabilities protocol.ClientCapabilities) SessionConfig {
	var config SessionConfig

	if workspace := capabilities.Workspace; workspace != nil {
		if workspace.Configuration != nil {
			config.HasConfiguration = *workspace.Configuration
		}

		if workspace.WorkspaceFolders != nil {
			config.HasWorkspaceFolders = *workspace.WorkspaceFolders
		}
	}

	if textDocument := capabilities.TextDocument; textDocument != nil {
		if publish := textDocument.PublishDiagnostics; publish != nil && publish.RelatedInformation != nil {
			config.HasRelatedInformation = *publish.RelatedInformation
		}
	}

	return config
}
