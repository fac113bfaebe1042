package engine

import (
	"strings"
	"unicode/utf8"
)

// Predicate inspects the rune at offset in source.
type Predicate func(r rune, offset int, source string) bool

// Step consumes n runes into the token buffer and returns them.
func (p *Parser) Step(n int) string {
	end := p.runeEnd(p.pos, n)
	consumed := p.source[p.pos:end]
	p.buffer.WriteString(consumed)
	p.pos = end

	return consumed
}

// StepWhile consumes runes into the token buffer while pred holds.
func (p *Parser) StepWhile(pred Predicate) {
	for p.pos < len(p.source) {
		r, size := utf8.DecodeRuneInString(p.source[p.pos:])
		if !pred(r, p.pos, p.source) {
			return
		}

		p.buffer.WriteString(p.source[p.pos : p.pos+size])
		p.pos += size
	}
}

// StepUntil consumes runes into the token buffer until pred holds.
func (p *Parser) StepUntil(pred Predicate) {
	p.StepWhile(func(r rune, offset int, source string) bool {
		return !pred(r, offset, source)
	})
}

// StepByWord consumes runes until the input continues with target. The target
// itself is not consumed.
func (p *Parser) StepByWord(target string) {
	p.StepUntil(func(_ rune, offset int, source string) bool {
		return strings.HasPrefix(source[offset:], target)
	})
}

// StepByRegex consumes the match of m anchored at the cursor. It reports false
// and consumes nothing when m does not match there.
func (p *Parser) StepByRegex(m *Matcher) bool {
	n := m.MatchAt(p.source, p.pos)
	if n < 0 {
		return false
	}

	p.buffer.WriteString(p.source[p.pos : p.pos+n])
	p.pos += n

	return true
}

// Flush appends the buffered text to the active frame as a Text token.
// It is a no-op when the buffer is empty.
func (p *Parser) Flush() {
	if p.buffer.Len() == 0 {
		return
	}

	top := len(p.frames) - 1
	p.frames[top] = append(p.frames[top], Text(p.buffer.String()))
	p.buffer.Reset()
}
