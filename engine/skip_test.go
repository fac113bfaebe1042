package engine

import (
	"testing"
	"unicode"

	"github.com/alecthomas/assert/v2"
)

func isSpace(r rune, _ int, _ string) bool {
	return unicode.IsSpace(r)
}

func TestSkipDiscardsText(t *testing.T) {
	got, err := New(GrammarFunc(func(p *Parser) {
		p.Step(1)
		p.Skip(2)
		p.Step(1)
		p.SkipWord("--")
		p.Step(1)
		p.SkipWhile(isSpace)
		p.Step(1)
		p.SkipUntil(isDigit)
		p.Step(1)
	})).Parse("a..b--c   dxyz9")

	assert.NoError(t, err)
	assert.Equal(t, []Token{Text("a"), Text("b"), Text("c"), Text("d"), Text("9")}, got)
}

func TestSkipWordMismatch(t *testing.T) {
	tests := []struct {
		name   string
		source string
		prefix int
		word   string
		want   SyntaxError
	}{
		{
			name:   "wrong opening delimiter",
			source: "[abc]",
			word:   "(",
			want:   SyntaxError{Expected: "(", Found: "[", Offset: 0, Line: 1, Column: 1},
		},
		{
			name:   "multi-rune word",
			source: "ab\n  endx",
			prefix: 5,
			word:   "end;",
			want:   SyntaxError{Expected: "end;", Found: "endx", Offset: 5, Line: 2, Column: 3},
		},
		{
			name:   "end of input",
			source: "ab",
			prefix: 2,
			word:   ")",
			want:   SyntaxError{Expected: ")", Found: "", Offset: 2, Line: 1, Column: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(GrammarFunc(func(p *Parser) {
				p.Step(tt.prefix)
				p.SkipWord(tt.word)
			})).Parse(tt.source)

			assert.Zero(t, got)

			serr, ok := AsSyntaxError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, *serr)
		})
	}
}

func TestSkipByRegex(t *testing.T) {
	spaces := MustCompile(`\s*`)
	keyword := MustCompile(`let|var`)

	t.Run("match is discarded", func(t *testing.T) {
		got, err := New(GrammarFunc(func(p *Parser) {
			p.SkipByRegex(spaces)
			p.SkipByRegex(keyword)
			p.SkipByRegex(spaces)
			p.Step(1)
			p.SkipByRegex(spaces)
		})).Parse("  let x ")

		assert.NoError(t, err)
		assert.Equal(t, []Token{Text("x")}, got)
	})

	t.Run("empty match always succeeds", func(t *testing.T) {
		got, err := New(GrammarFunc(func(p *Parser) {
			p.SkipByRegex(spaces)
			p.Step(1)
		})).Parse("x")

		assert.NoError(t, err)
		assert.Equal(t, []Token{Text("x")}, got)
	})

	t.Run("mismatch is a syntax error", func(t *testing.T) {
		_, err := New(GrammarFunc(func(p *Parser) {
			p.SkipByRegex(keyword)
		})).Parse("const")

		serr, ok := AsSyntaxError(err)
		assert.True(t, ok)
		assert.Equal(t, "let|var", serr.Expected)
		assert.Equal(t, "c", serr.Found)
	})
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Expected: "(", Found: "[", Line: 1, Column: 1}
	assert.Equal(t, `syntax error at 1:1: expected "(", found "["`, err.Error())

	err = &SyntaxError{Expected: "*", Line: 3, Column: 7}
	assert.Equal(t, `syntax error at 3:7: expected "*", found end of input`, err.Error())
}

func TestCompileRejectsInvalidPatternAndPanics(t *testing.T) {
	_, err := Compile(`(`)
	assert.Error(t, err)

	var recovered any

	func() {
		defer func() { recovered = recover() }()

		MustCompile(`[`)
	}()

	assert.True(t, recovered != nil)
}
