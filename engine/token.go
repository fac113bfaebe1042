package engine

import (
	"fmt"
	"strings"
)

// Token is an element of a frame: either raw Text or a Node.
type Token interface {
	isToken()
}

// Text is a run of consumed source text flushed from the token buffer.
type Text string

func (Text) isToken() {}

// Node is a tagged, immutable value produced by wrapping. A leaf node carries
// Text, a compound node carries Children. A compound node with an empty Kind is
// a group: the plain nested unit left behind by PopFrame.
type Node struct {
	Kind     string
	Text     string
	Children []Token
	leaf     bool
}

func (Node) isToken() {}

// Leaf creates a leaf node.
func Leaf(kind, text string) Node {
	return Node{Kind: kind, Text: text, leaf: true}
}

// Compound creates a compound node.
func Compound(kind string, children ...Token) Node {
	if len(children) == 0 {
		children = nil
	}

	return Node{Kind: kind, Children: children}
}

// Group creates an unnamed compound node.
func Group(children ...Token) Node {
	return Compound("", children...)
}

// IsLeaf reports whether n was built by Leaf.
func (n Node) IsLeaf() bool {
	return n.leaf
}

// IsGroup reports whether n is an unnamed compound node.
func (n Node) IsGroup() bool {
	return !n.leaf && n.Kind == ""
}

func (n Node) String() string {
	if n.leaf {
		return fmt.Sprintf("%s(%q)", n.Kind, n.Text)
	}

	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = tokenString(child)
	}

	return n.Kind + "[" + strings.Join(parts, " ") + "]"
}

func tokenString(t Token) string {
	switch v := t.(type) {
	case Text:
		return fmt.Sprintf("%q", string(v))
	case Node:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Token) bool {
	switch av := a.(type) {
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Node:
		bv, ok := b.(Node)
		if !ok || av.Kind != bv.Kind || av.leaf != bv.leaf {
			return false
		}

		if av.leaf {
			return av.Text == bv.Text
		}

		return EqualTokens(av.Children, bv.Children)
	default:
		return a == nil && b == nil
	}
}

// EqualTokens reports whether two token sequences are structurally equal.
func EqualTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// JoinText concatenates Text tokens and the text of leaf nodes, in order.
// Compound nodes contribute their joined children.
func JoinText(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		switch v := t.(type) {
		case Text:
			sb.WriteString(string(v))
		case Node:
			if v.leaf {
				sb.WriteString(v.Text)
			} else {
				sb.WriteString(JoinText(v.Children))
			}
		}
	}

	return sb.String()
}
