package engine

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPushPopFrame(t *testing.T) {
	got, err := New(GrammarFunc(func(p *Parser) {
		p.Step(1)
		p.PushFrame()
		p.Step(1)
		p.PushFrame()
		p.Step(1)
		p.PopFrame()
		p.PopFrame()
		p.Step(1)
	})).Parse("abcd")

	assert.NoError(t, err)
	assert.Equal(t, []Token{
		Text("a"),
		Group(Text("b"), Group(Text("c"))),
		Text("d"),
	}, got)
}

func TestEmptyFrameBecomesEmptyGroup(t *testing.T) {
	got, err := New(GrammarFunc(func(p *Parser) {
		p.PushFrame()
		p.PopFrame()
	})).Parse("")

	assert.NoError(t, err)
	assert.Equal(t, []Token{Group()}, got)
}

func TestWithFrame(t *testing.T) {
	t.Run("leaf wrap", func(t *testing.T) {
		got, err := New(GrammarFunc(func(p *Parser) {
			p.SkipWord("*")
			p.WithFrame(func() { p.StepByWord("*") }, LeafWrap("bold"))
			p.SkipWord("*")
		})).Parse("*an*")

		assert.NoError(t, err)
		assert.Equal(t, []Token{Leaf("bold", "an")}, got)
	})

	t.Run("compound wrap", func(t *testing.T) {
		got, err := New(GrammarFunc(func(p *Parser) {
			p.WithFrame(func() {
				p.Step(1)
				p.Skip(1)
				p.WithFrame(func() { p.Step(1) }, LeafWrap("inner"))
			}, CompoundWrap("outer"))
		})).Parse("a,b")

		assert.NoError(t, err)
		assert.Equal(t, []Token{Compound("outer", Text("a"), Leaf("inner", "b"))}, got)
	})

	t.Run("concat keeps empty parts", func(t *testing.T) {
		got, err := New(GrammarFunc(func(p *Parser) {
			p.WithFrame(func() {
				p.WithFrame(func() { p.StepByWord("|") }, Concat)
				p.SkipWord("|")
				p.WithFrame(func() { p.StepByWord("|") }, Concat)
			}, CompoundWrap("pair"))
		})).Parse("|x")

		assert.NoError(t, err)
		assert.Equal(t, []Token{Compound("pair", Text(""), Text("x"))}, got)
	})

	t.Run("buffer flushed before wrapping", func(t *testing.T) {
		got, err := New(GrammarFunc(func(p *Parser) {
			p.Step(1)
			p.WithFrame(func() { p.Step(1) }, LeafWrap("x"))
			p.Step(1)
		})).Parse("abc")

		assert.NoError(t, err)
		assert.Equal(t, []Token{Text("a"), Leaf("x", "b"), Text("c")}, got)
	})
}

func TestPushAndPopToken(t *testing.T) {
	var popped Token

	got, err := New(GrammarFunc(func(p *Parser) {
		p.Step(2)
		popped = p.PopToken()
		p.PushToken(Leaf("number", "7"))
		p.Step(1)
	})).Parse("abc")

	assert.NoError(t, err)
	assert.Equal(t, Token(Text("ab")), popped)
	assert.Equal(t, []Token{Leaf("number", "7"), Text("c")}, got)
}

func TestPopTokenOnEmptyFrame(t *testing.T) {
	_, err := New(GrammarFunc(func(p *Parser) {
		p.Skip(1)
		p.PopToken()
	})).Parse("ab")

	assert.IsError(t, err, ErrSyntax)

	serr, ok := AsSyntaxError(err)
	assert.True(t, ok)
	assert.Equal(t, "a token", serr.Expected)
	assert.Equal(t, "empty frame", serr.Found)
	assert.Equal(t, 2, serr.Column)
}

func TestWrapToken(t *testing.T) {
	got, err := New(GrammarFunc(func(p *Parser) {
		p.StepWhile(isDigit)
		p.WrapToken(func(tok Token) Token {
			return Leaf("number", string(tok.(Text)))
		})
	})).Parse("42")

	assert.NoError(t, err)
	assert.Equal(t, []Token{Leaf("number", "42")}, got)
}

func nestedGrammar(p *Parser) {
	var list func()
	list = func() {
		p.SkipWord("(")
		p.WithFrame(func() {
			for p.HasNextExcept(")") {
				if p.PeekRune() == '(' {
					list()
					continue
				}
				p.Step(1)
			}
		}, CompoundWrap("list"))
		p.SkipWord(")")
	}
	list()
}

func TestMaxDepth(t *testing.T) {
	p := New(GrammarFunc(nestedGrammar), WithMaxDepth(2))

	got, err := p.Parse("((a))")
	assert.NoError(t, err)
	assert.Equal(t, []Token{Compound("list", Compound("list", Text("a")))}, got)

	_, err = p.Parse("(((a)))")
	assert.IsError(t, err, ErrSyntax)

	serr, ok := AsSyntaxError(err)
	assert.True(t, ok)
	assert.Equal(t, "at most 2 nested frames", serr.Expected)
	assert.Equal(t, 4, serr.Column)
}

func TestPopRootFramePanics(t *testing.T) {
	p := New(GrammarFunc(func(p *Parser) {
		p.PopFrame()
	}))

	var recovered any

	func() {
		defer func() { recovered = recover() }()

		_, _ = p.Parse("x")
	}()

	err, ok := recovered.(error)
	assert.True(t, ok)
	assert.True(t, errors.Is(err, ErrFrameUnderflow))
	assert.False(t, p.running)
}
