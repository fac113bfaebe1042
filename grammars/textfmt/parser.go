// Package textfmt reads plain text with inline *bold*, _italic_ and
// [uri][label] link spans.
package textfmt

import "github.com/shibukawa/descent/engine"

// Node kinds produced by this grammar.
const (
	KindBold   = "bold"
	KindItalic = "italic"
	KindLink   = "link"
)

// rules maps a lookahead rune to the span it opens. Any other rune is plain text.
var rules = map[rune]func(*engine.Parser){
	'*': parseBold,
	'_': parseItalic,
	'[': parseLink,
}

// Grammar is the entry procedure of the formatter.
var Grammar = engine.GrammarFunc(func(p *engine.Parser) {
	for p.HasNext() {
		if rule, ok := rules[p.PeekRune()]; ok {
			rule(p)
			continue
		}

		p.Step(1)
	}
})

func parseBold(p *engine.Parser) {
	parseDelimited(p, "*", KindBold)
}

func parseItalic(p *engine.Parser) {
	parseDelimited(p, "_", KindItalic)
}

func parseDelimited(p *engine.Parser, delim, kind string) {
	p.SkipWord(delim)
	p.WithFrame(func() { p.StepByWord(delim) }, engine.LeafWrap(kind))
	p.SkipWord(delim)
}

func parseLink(p *engine.Parser) {
	p.WithFrame(func() {
		p.SkipWord("[")
		p.WithFrame(func() { p.StepByWord("]") }, engine.Concat)
		p.SkipWord("]")

		p.SkipWord("[")
		p.WithFrame(func() { p.StepByWord("]") }, engine.Concat)
		p.SkipWord("]")
	}, engine.CompoundWrap(KindLink))
}

// Bold returns the node for *text*.
func Bold(text string) engine.Node {
	return engine.Leaf(KindBold, text)
}

// Italic returns the node for _text_.
func Italic(text string) engine.Node {
	return engine.Leaf(KindItalic, text)
}

// Link returns the node for [uri][label].
func Link(uri, label string) engine.Node {
	return engine.Compound(KindLink, engine.Text(uri), engine.Text(label))
}

// LinkURI returns the uri of a link node, or "" for any other token.
func LinkURI(t engine.Token) string {
	return linkPart(t, 0)
}

// LinkLabel returns the label of a link node, or "" for any other token.
func LinkLabel(t engine.Token) string {
	return linkPart(t, 1)
}

func linkPart(t engine.Token, i int) string {
	n, ok := t.(engine.Node)
	if !ok || n.Kind != KindLink || len(n.Children) != 2 {
		return ""
	}

	text, _ := n.Children[i].(engine.Text)

	return string(text)
}

// NewParser returns a reusable formatter parser.
func NewParser(opts ...engine.Option) *engine.Parser {
	return engine.New(Grammar, opts...)
}

// Parse reads formatted text into plain Text runs and span nodes, in source order.
func Parse(source string) ([]engine.Token, error) {
	return NewParser().Parse(source)
}
