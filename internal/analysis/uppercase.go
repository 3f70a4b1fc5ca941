// Package analysis implements the text scanning that feeds the
// diagnostic pipeline.
package analysis

import (
	"regexp"
)

// Match is one rule hit, with byte offsets into the scanned text.
type Match struct {
	Start int
	End   int
	Text  string
}

// Rule scans a document's full text and reports matches. Rules must
// return non-overlapping matches ordered by start offset.
type Rule func(text string) []Match

var allCapsPattern = regexp.MustCompile(`\b[A-Z]{2,}\b`)

// AllCaps is the default rule: maximal word-bounded runs of two or more
// consecutive uppercase ASCII letters.
func AllCaps(text string) []Match {
	spans := allCapsPattern.FindAllStringIndex(text, -1)

	matches := make([]Match, 0, len(spans))
	for _, span := range spans {
		matches = append(matches, Match{
			Start: span[0],
			End:   span[1],
			Text:  text[span[0]:span[1]],
		})
	}

	return matches
}
