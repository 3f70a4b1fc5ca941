package server

import (
	"encoding/json"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ItemDetail is the lazily attached part of a completion item, looked up
// by the item's numeric id during completionItem/resolve.
type ItemDetail struct {
	Detail        string
	Documentation string
}

// catalogEntries is the closed set of completions this server offers.
// Ordering and ids are fixed at build time.
var catalogEntries = []struct {
	id            int
	label         string
	detail        string
	documentation string
}{
	{1, "API", "Application Programming Interface", "A contract between software components."},
	{2, "ASCII", "American Standard Code for Information Interchange", "Seven-bit character encoding covering the Latin alphabet."},
	{3, "CPU", "Central Processing Unit", "The part of a computer that executes instructions."},
	{4, "HTML", "HyperText Markup Language", "The markup language of documents served on the web."},
	{5, "HTTP", "HyperText Transfer Protocol", "The application protocol of the web."},
	{6, "JSON", "JavaScript Object Notation", "A lightweight text format for structured data."},
	{7, "LSP", "Language Server Protocol", "The protocol spoken between editors and language servers."},
	{8, "RPC", "Remote Procedure Call", "Invoking a procedure in another address space as if it were local."},
	{9, "URI", "Uniform Resource Identifier", "A compact string identifying an abstract or physical resource."},
	{10, "UTF", "Unicode Transformation Format", "A family of encodings for Unicode code points."},
}

// Catalog holds the static completion items offered for every document,
// plus the id-keyed detail table consulted by completionItem/resolve.
type Catalog struct {
	items   []protocol.CompletionItem
	details map[int]ItemDetail
}

// NewCatalog builds the static catalog.
func NewCatalog() *Catalog {
	kind := protocol.CompletionItemKindText

	catalog := &Catalog{
		items:   make([]protocol.CompletionItem, 0, len(catalogEntries)),
		details: make(map[int]ItemDetail, len(catalogEntries)),
	}

	for _, entry := range catalogEntries {
		catalog.items = append(catalog.items, protocol.CompletionItem{
			Label: entry.label,
			Kind:  &kind,
			Data:  entry.id,
		})
		catalog.details[entry.id] = ItemDetail{
			Detail:        entry.detail,
			Documentation: entry.documentation,
		}
	}

	return catalog
}

// Items returns a copy of the catalog, so callers cannot mutate the
// shared slice. The returned order is stable across calls.
func (c *Catalog) Items() []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, len(c.items))
	copy(items, c.items)

	return items
}

// Resolve fills in the detail and documentation of item from the static
// table. Items whose id is unknown or missing come back unchanged; that
// is not an error.
func (c *Catalog) Resolve(item *protocol.CompletionItem) *protocol.CompletionItem {
	id, ok := itemID(item.Data)
	if !ok {
		return item
	}

	detail, ok := c.details[id]
	if !ok {
		return item
	}

	item.Detail = &detail.Detail
	item.Documentation = detail.Documentation

	return item
}

// itemID extracts the numeric item id from a completion item's data
// field. The id travels through a JSON round-trip, so it arrives as
// float64 or json.Number rather than the int it was sent as.
func itemID(data any) (int, bool) {
	switch value := data.(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	case json.Number:
		id, err := value.Int64()
		if err != nil {
			return 0, false
		}
		return int(id), true
	default:
		return 0, false
	}
}
