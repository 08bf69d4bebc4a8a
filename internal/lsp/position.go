package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LSP positions count UTF-16 code units; the parser counts bytes for offsets
// and Unicode scalar values for columns.

// positionAt converts a byte offset into text to an LSP position.
func positionAt(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	line := strings.Count(text[:offset], "\n")
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	return protocol.Position{
		Line:      uint32(line),
		Character: utf16Len(text[lineStart:offset]),
	}
}

// offsetAt converts an LSP position to a byte offset into text, clamping to
// the end of the line or text.
func offsetAt(text string, pos protocol.Position) int {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
	}

	units := uint32(0)
	for offset < len(text) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == '\n' {
			break
		}
		units += uint32(utf16.RuneLen(r))
		offset += size
	}
	return offset
}

// rangeAt spans length characters from a 1-based line and column, staying on
// that line.
func rangeAt(text string, line, column, length int) protocol.Range {
	start := lineColumnOffset(text, line, column)
	end := start
	for i := 0; i < length && end < len(text); i++ {
		r, size := utf8.DecodeRuneInString(text[end:])
		if r == '\n' {
			break
		}
		end += size
	}
	return protocol.Range{Start: positionAt(text, start), End: positionAt(text, end)}
}

func lineColumnOffset(text string, line, column int) int {
	offset := 0
	for l := 1; l < line; l++ {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
	}
	for c := 1; c < column && offset < len(text); c++ {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == '\n' {
			break
		}
		offset += size
	}
	return offset
}

func utf16Len(s string) uint32 {
	n := uint32(0)
	for _, r := range s {
		n += uint32(utf16.RuneLen(r))
	}
	return n
}
