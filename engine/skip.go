package engine

import "unicode/utf8"

// Skip discards the next n runes.
func (p *Parser) Skip(n int) {
	p.Flush()
	p.pos = p.runeEnd(p.pos, n)
}

// SkipWord discards word, or aborts with a SyntaxError when the input does not
// continue with it.
func (p *Parser) SkipWord(word string) {
	p.Flush()

	found := p.Peek(utf8.RuneCountInString(word))
	if found != word {
		p.raiseAt(p.pos, word, found)
	}

	p.pos += len(word)
}

// SkipWhile discards runes while pred holds.
func (p *Parser) SkipWhile(pred Predicate) {
	p.Flush()

	for p.pos < len(p.source) {
		r, size := utf8.DecodeRuneInString(p.source[p.pos:])
		if !pred(r, p.pos, p.source) {
			return
		}

		p.pos += size
	}
}

// SkipUntil discards runes until pred holds.
func (p *Parser) SkipUntil(pred Predicate) {
	p.SkipWhile(func(r rune, offset int, source string) bool {
		return !pred(r, offset, source)
	})
}

// SkipByRegex discards the match of m anchored at the cursor, or aborts with a
// SyntaxError when m does not match there.
func (p *Parser) SkipByRegex(m *Matcher) {
	p.Flush()

	n := m.MatchAt(p.source, p.pos)
	if n < 0 {
		p.raise(m.String())
	}

	p.pos += n
}
