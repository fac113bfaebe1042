package engine

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMatchAt(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		source  string
		offset  int
		want    int
	}{
		{name: "plain match", pattern: `[0-9]+`, source: "ab123c", offset: 2, want: 3},
		{name: "no scan ahead", pattern: `[0-9]+`, source: "ab123c", offset: 1, want: -1},
		{name: "empty match", pattern: `\s*`, source: "abc", offset: 1, want: 0},
		{name: "offset at end", pattern: `x?`, source: "ab", offset: 2, want: 0},
		{name: "offset past end", pattern: `x?`, source: "ab", offset: 3, want: -1},
		{name: "word boundary inside word", pattern: `\bfoo`, source: "afoo", offset: 1, want: -1},
		{name: "word boundary after space", pattern: `\bfoo`, source: " foo", offset: 1, want: 3},
		{name: "word boundary at start", pattern: `\bfoo`, source: "foo", offset: 0, want: 3},
		{name: "non boundary inside word", pattern: `\Bfoo`, source: "afoo", offset: 1, want: 3},
		{name: "non boundary after space", pattern: `\Bfoo`, source: " foo", offset: 1, want: -1},
		{name: "multiline caret mid line", pattern: `(?m)^x`, source: "ax", offset: 1, want: -1},
		{name: "multiline caret after newline", pattern: `(?m)^x`, source: "a\nx", offset: 2, want: 1},
		{name: "text start only at offset 0", pattern: `^x`, source: "xx", offset: 1, want: -1},
		{name: "text start at offset 0", pattern: `^x`, source: "xx", offset: 0, want: 1},
		{name: "multibyte context", pattern: `\bfoo`, source: "éfoo", offset: 2, want: 3},
		{name: "end of text", pattern: `a$`, source: "ba", offset: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustCompile(tt.pattern).MatchAt(tt.source, tt.offset))
		})
	}
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	_, err := Compile(`[`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `invalid pattern "["`)
}
