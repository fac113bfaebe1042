package engine

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/require"
)

// markup is a tiny grammar used across these tests: *x* is bold, everything
// else is plain text.
func markup(p *Parser) {
	for p.HasNext() {
		switch p.PeekRune() {
		case '*':
			p.SkipWord("*")
			p.WithFrame(func() { p.StepByWord("*") }, LeafWrap("bold"))
			p.SkipWord("*")
		case '!':
			p.Fail("text or *bold*")
		default:
			p.Step(1)
		}
	}
}

func TestParseReturnsRootFrame(t *testing.T) {
	got, err := New(GrammarFunc(markup)).Parse("a *b* c")

	assert.NoError(t, err)
	assert.Equal(t, []Token{Text("a "), Leaf("bold", "b"), Text(" c")}, got)
}

func TestParseEmptyInput(t *testing.T) {
	got, err := New(GrammarFunc(markup)).Parse("")

	assert.NoError(t, err)
	assert.Equal(t, 0, len(got))
}

func TestParserReuse(t *testing.T) {
	p := New(GrammarFunc(markup))

	first, err := p.Parse("x *y*")
	require.NoError(t, err)

	_, err = p.Parse("broken *tail")
	require.Error(t, err)

	second, err := p.Parse("x *y*")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, EqualTokens(first, second))
}

func TestParseFailsOnUnconsumedInput(t *testing.T) {
	_, err := New(GrammarFunc(func(p *Parser) {
		p.Step(1)
	})).Parse("ab")

	serr, ok := AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, SyntaxError{Expected: "end of input", Found: "b", Offset: 1, Line: 1, Column: 2}, *serr)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   SyntaxError
	}{
		{
			name:   "illegal dispatch character",
			source: "ok\n*b*!",
			want:   SyntaxError{Expected: "text or *bold*", Found: "!", Offset: 6, Line: 2, Column: 4},
		},
		{
			name:   "unterminated span",
			source: "a *b",
			want:   SyntaxError{Expected: "*", Found: "", Offset: 4, Line: 1, Column: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(GrammarFunc(markup)).Parse(tt.source)

			assert.Zero(t, got)
			assert.IsError(t, err, ErrSyntax)

			serr, ok := AsSyntaxError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, *serr)
		})
	}
}

func TestParseUnbalancedFrames(t *testing.T) {
	_, err := New(GrammarFunc(func(p *Parser) {
		p.PushFrame()
	})).Parse("")

	assert.IsError(t, err, ErrUnbalancedFrames)
}

func TestParseIsNotReentrant(t *testing.T) {
	var inner error

	p := New(GrammarFunc(func(p *Parser) {
		_, inner = p.Parse("x")
		p.Skip(1)
	}))

	_, err := p.Parse("y")
	assert.NoError(t, err)
	assert.IsError(t, inner, ErrParserBusy)
}

func TestForeignPanicPropagates(t *testing.T) {
	p := New(GrammarFunc(func(p *Parser) {
		if p.Peek(3) == "abc" {
			p.Step(1)
			panic("grammar bug")
		}
	}))

	var recovered any

	func() {
		defer func() { recovered = recover() }()

		_, _ = p.Parse("abc")
	}()

	assert.Equal(t, any("grammar bug"), recovered)

	got, err := p.Parse("")
	assert.NoError(t, err)
	assert.Zero(t, got)
}

func TestCursorIsMonotonic(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"*bold* and *more*",
		"mixed *é* unicode 日本",
		"**",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var offsets []int

			record := func(p *Parser) { offsets = append(offsets, p.Offset()) }

			_, err := New(GrammarFunc(func(p *Parser) {
				for p.HasNext() {
					record(p)

					if p.PeekRune() == '*' {
						p.SkipWord("*")
						record(p)
						p.WithFrame(func() {
							p.StepByWord("*")
							record(p)
						}, LeafWrap("bold"))
						p.SkipWord("*")
						record(p)

						continue
					}

					p.StepUntil(func(r rune, _ int, _ string) bool { return r == '*' })
					record(p)
				}
				record(p)
			})).Parse(input)

			require.NoError(t, err)

			for i := 1; i < len(offsets); i++ {
				assert.True(t, offsets[i-1] <= offsets[i], "offset moved backwards at step %d", i)
			}

			assert.Equal(t, len(input), offsets[len(offsets)-1])
		})
	}
}

func TestLoggerTracesFrames(t *testing.T) {
	var lines []string

	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	_, err := New(GrammarFunc(markup), WithLogger(logger)).Parse("*x*")
	require.NoError(t, err)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, `"parse started"`)
	assert.Contains(t, joined, `"push frame"`)
	assert.Contains(t, joined, `"pop frame"`)
	assert.Contains(t, joined, `"parse finished"`)
}
