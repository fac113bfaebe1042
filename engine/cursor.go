package engine

import (
	"strings"
	"unicode/utf8"
)

// Peek returns the next n runes without moving the cursor. Fewer runes are
// returned near the end of the input.
func (p *Parser) Peek(n int) string {
	return p.source[p.pos:p.runeEnd(p.pos, n)]
}

// PeekRune returns the next rune, or 0 at the end of the input.
func (p *Parser) PeekRune() rune {
	if p.pos >= len(p.source) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.source[p.pos:])

	return r
}

// HasNext reports whether input remains.
func (p *Parser) HasNext() bool {
	return p.pos < len(p.source)
}

// HasNextExcept reports whether input remains and does not continue with word.
// It is the usual loop condition for "read until this delimiter".
func (p *Parser) HasNextExcept(word string) bool {
	return p.HasNext() && (word == "" || !strings.HasPrefix(p.source[p.pos:], word))
}

// Offset returns the byte offset of the cursor.
func (p *Parser) Offset() int {
	return p.pos
}

// Len returns the byte length of the source.
func (p *Parser) Len() int {
	return len(p.source)
}

// LineColumn returns the 1-based line and column of the cursor.
// It scans the consumed prefix, so it is meant for diagnostics only.
func (p *Parser) LineColumn() (int, int) {
	return lineColumn(p.source, p.pos)
}

func lineColumn(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}

	consumed := source[:offset]
	line := strings.Count(consumed, "\n") + 1
	lineStart := strings.LastIndexByte(consumed, '\n') + 1

	return line, utf8.RuneCountInString(consumed[lineStart:]) + 1
}

// runeEnd returns the byte offset n runes after from, clamped to the source length.
func (p *Parser) runeEnd(from, n int) int {
	i := from
	for ; n > 0 && i < len(p.source); n-- {
		_, size := utf8.DecodeRuneInString(p.source[i:])
		i += size
	}

	return i
}
