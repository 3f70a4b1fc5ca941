// Package document provides the position arithmetic shared by the
// protocol handlers. LSP positions count UTF-16 code units; Go strings
// count bytes.
package document

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ApplyContentChange applies one textDocument/didChange content change to
// text and returns the updated text. A change without a range replaces
// the whole document.
func ApplyContentChange(text string, change protocol.TextDocumentContentChangeEvent) (string, error) {
	if change.Range == nil {
		return change.Text, nil
	}

	lines := strings.Split(text, "\n")

	start, err := locate(lines, change.Range.Start)
	if err != nil {
		return "", fmt.Errorf("invalid start position: %w", err)
	}

	end, err := locate(lines, change.Range.End)
	if err != nil {
		return "", fmt.Errorf("invalid end position: %w", err)
	}

	if end.line < start.line || (end.line == start.line && end.byteInLine < start.byteInLine) {
		return "", fmt.Errorf("range end %d:%d before start %d:%d",
			change.Range.End.Line, change.Range.End.Character,
			change.Range.Start.Line, change.Range.Start.Character)
	}

	var result strings.Builder

	for i := 0; i < start.line; i++ {
		result.WriteString(lines[i])
		result.WriteString("\n")
	}

	result.WriteString(lines[start.line][:start.byteInLine])
	result.WriteString(change.Text)
	result.WriteString(lines[end.line][end.byteInLine:])

	for i := end.line + 1; i < len(lines); i++ {
		result.WriteString("\n")
		result.WriteString(lines[i])
	}

	return result.String(), nil
}

// location is a protocol position resolved to a line index and a byte
// offset within that line.
type location struct {
	line       int
	byteInLine int
}

func locate(lines []string, position protocol.Position) (location, error) {
	line := int(position.Line)
	if line < 0 || line >= len(lines) {
		return location{}, fmt.Errorf("line %d out of range (0-%d)", line, len(lines)-1)
	}

	byteInLine, err := utf16ToByteOffset(lines[line], int(position.Character))
	if err != nil {
		return location{}, err
	}

	return location{line: line, byteInLine: byteInLine}, nil
}

// utf16RuneLen is utf16.RuneLen from the standard library, which was
// added in Go 1.23; the build toolchain here is older.
func utf16RuneLen(r rune) int {
	if 0 <= r && r < surr1 || surr3 <= r && r < 0x10000 {
		return 1
	} else if 0x10000 <= r && r <= unicode.MaxRune {
		return 2
	}
	return -1
}

const (
	surr1 = 0xd800
	surr3 = 0xe000
)

// utf16ToByteOffset converts a UTF-16 code unit offset within line to a
// byte offset. An offset pointing just past the last character is a valid
// insertion point.
func utf16ToByteOffset(line string, utf16Offset int) (int, error) {
	if utf16Offset < 0 {
		return 0, fmt.Errorf("negative UTF-16 offset %d", utf16Offset)
	}

	byteOffset := 0
	utf16Count := 0

	for _, r := range line {
		if utf16Count >= utf16Offset {
			return byteOffset, nil
		}

		utf16Count += utf16RuneLen(r)
		byteOffset += utf8.RuneLen(r)
	}

	if utf16Count < utf16Offset {
		return 0, fmt.Errorf("UTF-16 offset %d exceeds line length %d", utf16Offset, utf16Count)
	}

	return byteOffset, nil
}

// OffsetRange converts a byte-offset span in text to a protocol range.
func OffsetRange(text string, start, end int) (protocol.Range, error) {
	startPosition, err := OffsetPosition(text, start)
	if err != nil {
		return protocol.Range{}, err
	}

	endPosition, err := OffsetPosition(text, end)
	if err != nil {
		return protocol.Range{}, err
	}

	return protocol.Range{Start: startPosition, End: endPosition}, nil
}

// OffsetPosition converts a byte offset in text to a protocol position,
// counting the character column in UTF-16 code units.
func OffsetPosition(text string, offset int) (protocol.Position, error) {
	if offset < 0 || offset > len(text) {
		return protocol.Position{}, fmt.Errorf("offset %d out of range (0-%d)", offset, len(text))
	}

	line := 0
	lineStart := 0

	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	character := 0
	for _, r := range text[lineStart:offset] {
		character += utf16RuneLen(r)
	}

	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(character),
	}, nil
}
