// Package nodequery selects nodes from a token tree with CEL expressions.
//
// The expression sees one variable, node, with these fields:
//
//	node.kind      string  the node kind ("" for groups)
//	node.text      string  leaf text, or the joined text of a compound node
//	node.children  list    children as produced by dump.ToData
//	node.depth     int     0 for nodes in the root frame
//	node.leaf      bool    whether the node is a leaf
//
// For example `node.kind == "bold" && node.text.startsWith("a")`.
package nodequery

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/decls"
	"github.com/shibukawa/descent/dump"
	"github.com/shibukawa/descent/engine"
)

var (
	// ErrInvalidQuery is returned when an expression does not compile.
	ErrInvalidQuery = errors.New("invalid node query")
	// ErrNotBoolean is returned when an expression does not produce a bool.
	ErrNotBoolean = errors.New("node query must evaluate to bool")
)

// Query is a compiled node filter. It is safe for concurrent use.
type Query struct {
	expr    string
	program cel.Program
}

// Match is a node selected by a query.
type Match struct {
	Node  engine.Node
	Depth int
}

var nodeVariable = cel.VariableDecls(decls.NewVariable("node", cel.MapType(cel.StringType, cel.DynType)))

// Compile parses and type-checks expr.
func Compile(expr string) (*Query, error) {
	env, err := cel.NewEnv(
		cel.HomogeneousAggregateLiterals(),
		cel.EagerlyValidateDeclarations(true),
		nodeVariable,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidQuery, expr, issues.Err())
	}

	switch ast.OutputType().String() {
	case "bool", "dyn":
	default:
		return nil, fmt.Errorf("%w: %s has type %s", ErrNotBoolean, expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidQuery, expr, err)
	}

	return &Query{expr: expr, program: prg}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expr
}

// Matches evaluates the query against n at the given depth.
func (q *Query) Matches(n engine.Node, depth int) (bool, error) {
	v, _, err := q.program.Eval(map[string]any{"node": nodeValue(n, depth)})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate %s: %w", q.expr, err)
	}

	b, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s returned %v", ErrNotBoolean, q.expr, v.Value())
	}

	return b, nil
}

// Select walks tokens depth-first in document order and returns every node the
// query matches. Text tokens are never selected.
func (q *Query) Select(tokens []engine.Token) ([]Match, error) {
	var matches []Match

	var walk func(tokens []engine.Token, depth int) error

	walk = func(tokens []engine.Token, depth int) error {
		for _, t := range tokens {
			n, ok := t.(engine.Node)
			if !ok {
				continue
			}

			matched, err := q.Matches(n, depth)
			if err != nil {
				return err
			}

			if matched {
				matches = append(matches, Match{Node: n, Depth: depth})
			}

			if err := walk(n.Children, depth+1); err != nil {
				return err
			}
		}

		return nil
	}

	if err := walk(tokens, 0); err != nil {
		return nil, err
	}

	return matches, nil
}

func nodeValue(n engine.Node, depth int) map[string]any {
	text := n.Text
	if !n.IsLeaf() {
		text = engine.JoinText(n.Children)
	}

	return map[string]any{
		"kind":     n.Kind,
		"text":     text,
		"children": dump.ToData(n.Children),
		"depth":    int64(depth),
		"leaf":     n.IsLeaf(),
	}
}
