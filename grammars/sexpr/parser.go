// Package sexpr reads S-expressions: parenthesized lists of numbers, double-quoted
// strings and bare symbols, with 'x as shorthand for (quote x).
package sexpr

import (
	"strings"

	"github.com/shibukawa/descent/engine"
)

// Node kinds produced by this grammar.
const (
	KindList   = "list"
	KindNumber = "number"
	KindString = "string"
	KindSymbol = "symbol"
)

// QuoteSymbol is the head symbol 'x expands to.
const QuoteSymbol = "quote"

// space is any Unicode space, including NBSP and the BOM.
const space = `\s\v\x{FEFF}\p{Z}`

var (
	whitespace = engine.MustCompile(`[` + space + `]*`)
	stringLit  = engine.MustCompile(`"(?:[^"\\]|\\.)*"`)
	atomLit    = engine.MustCompile(`[^` + space + `()'"][^` + space + `()]*`)
	numberLit  = engine.MustCompile(`[-+]?[0-9]+(?:\.[0-9]+)?`)

	unescaper = strings.NewReplacer(`\"`, `"`, `\\`, `\`)
)

type literal struct {
	match *engine.Matcher
	wrap  engine.Make
}

// literals are tried in order at an atom position.
var literals = []literal{
	{match: stringLit, wrap: wrapString},
	{match: atomLit, wrap: wrapAtom},
}

// Expression reads exactly one expression, optionally surrounded by whitespace.
var Expression = engine.GrammarFunc(func(p *engine.Parser) {
	p.SkipByRegex(whitespace)

	if !p.HasNext() {
		p.Fail("expression")
	}

	parseExpression(p)
	p.SkipByRegex(whitespace)
})

// Sequence reads any number of top-level expressions into a single list node.
var Sequence = engine.GrammarFunc(func(p *engine.Parser) {
	p.WithFrame(func() {
		parseItems(p, "")
	}, engine.CompoundWrap(KindList))
})

func parseExpression(p *engine.Parser) {
	switch p.PeekRune() {
	case '(':
		parseList(p)
	case '\'':
		parseQuote(p)
	case ')':
		p.Fail("expression")
	default:
		parseAtom(p)
	}
}

func parseItems(p *engine.Parser, closer string) {
	p.SkipByRegex(whitespace)

	for p.HasNextExcept(closer) {
		parseExpression(p)
		p.SkipByRegex(whitespace)
	}
}

func parseList(p *engine.Parser) {
	p.SkipWord("(")
	p.WithFrame(func() {
		parseItems(p, ")")
	}, engine.CompoundWrap(KindList))
	p.SkipWord(")")
}

func parseQuote(p *engine.Parser) {
	p.SkipWord("'")
	p.WithFrame(func() {
		p.PushToken(engine.Leaf(KindSymbol, QuoteSymbol))
		parseExpression(p)
	}, engine.CompoundWrap(KindList))
}

func parseAtom(p *engine.Parser) {
	for _, lit := range literals {
		if p.StepByRegex(lit.match) {
			p.WrapToken(lit.wrap)
			return
		}
	}

	p.Fail("number, string or symbol")
}

func wrapString(t engine.Token) engine.Token {
	raw := string(t.(engine.Text))
	return engine.Leaf(KindString, unescaper.Replace(raw[1:len(raw)-1]))
}

func wrapAtom(t engine.Token) engine.Token {
	text := string(t.(engine.Text))
	if numberLit.MatchAt(text, 0) == len(text) {
		return engine.Leaf(KindNumber, text)
	}

	return engine.Leaf(KindSymbol, text)
}

// NewParser returns a reusable parser for a single expression.
func NewParser(opts ...engine.Option) *engine.Parser {
	return engine.New(Expression, opts...)
}

// Parse reads one expression.
func Parse(source string) (engine.Token, error) {
	tokens, err := NewParser().Parse(source)
	if err != nil {
		return nil, err
	}

	return tokens[0], nil
}

// ParseList reads a sequence of expressions as if it were wrapped in parentheses.
func ParseList(source string) (engine.Node, error) {
	tokens, err := engine.New(Sequence).Parse(source)
	if err != nil {
		return engine.Node{}, err
	}

	return tokens[0].(engine.Node), nil
}
