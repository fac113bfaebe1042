package engine

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Matcher is a regular expression compiled once and matched only at a given
// offset, never scanning ahead.
//
// Empty-width assertions see the rune before the offset, so \b, \B and (?m)^
// behave as they would on the whole source, and ^ without (?m) only matches at
// offset 0.
type Matcher struct {
	pattern string
	atStart *regexp.Regexp
	inside  *regexp.Regexp
}

// Compile compiles pattern into an anchored Matcher.
func Compile(pattern string) (*Matcher, error) {
	atStart, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	// one leading rune of context, consumed and subtracted by MatchAt
	inside, err := regexp.Compile(`^(?s:.)(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	return &Matcher{pattern: pattern, atStart: atStart, inside: inside}, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
// Grammars call it from package-level variables.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}

	return m
}

// MatchAt returns the byte length of the match starting exactly at offset,
// or -1 when there is none.
func (m *Matcher) MatchAt(source string, offset int) int {
	if offset > len(source) {
		return -1
	}

	if offset == 0 {
		loc := m.atStart.FindStringIndex(source)
		if loc == nil {
			return -1
		}

		return loc[1]
	}

	_, size := utf8.DecodeLastRuneInString(source[:offset])

	loc := m.inside.FindStringIndex(source[offset-size:])
	if loc == nil {
		return -1
	}

	return loc[1] - size
}

// String returns the pattern as written by the grammar author.
func (m *Matcher) String() string {
	return m.pattern
}
