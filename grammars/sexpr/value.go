package sexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/descent/engine"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnexpectedToken is returned by Decode for tokens this grammar never produces.
	ErrUnexpectedToken = errors.New("unexpected token in s-expression tree")
	// ErrInvalidNumber is returned by Decode when a number leaf is not a valid decimal.
	ErrInvalidNumber = errors.New("invalid number literal")
)

// Value is a decoded S-expression.
type Value interface {
	fmt.Stringer
	isValue()
}

// List is a parenthesized sequence.
type List []Value

// Symbol is a bare identifier.
type Symbol string

// String is a double-quoted string with the quotes and escapes removed.
type String string

// Number is a numeric literal. It prints as written in the source, so 1.50
// stays 1.50.
type Number struct {
	decimal.Decimal

	raw string
}

func (List) isValue()   {}
func (Symbol) isValue() {}
func (String) isValue() {}
func (Number) isValue() {}

// Int returns the Number for i.
func Int(i int64) Number {
	return Number{Decimal: decimal.NewFromInt(i)}
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}

func (s Symbol) String() string {
	return string(s)
}

func (s String) String() string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(string(s)) + `"`
}

func (n Number) String() string {
	if n.raw != "" {
		return n.raw
	}

	return n.Decimal.String()
}

// Equal reports whether two values are structurally equal. Numbers compare by
// value, so 1 and 1.0 are equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true
	case Number:
		bv, ok := b.(Number)
		return ok && av.Decimal.Equal(bv.Decimal)
	default:
		return a == b
	}
}

// Decode converts a token produced by this grammar into a Value.
func Decode(t engine.Token) (Value, error) {
	n, ok := t.(engine.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, t)
	}

	switch n.Kind {
	case KindList:
		list := make(List, 0, len(n.Children))
		for _, child := range n.Children {
			v, err := Decode(child)
			if err != nil {
				return nil, err
			}

			list = append(list, v)
		}

		return list, nil
	case KindNumber:
		d, err := decimal.NewFromString(n.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidNumber, n.Text, err)
		}

		return Number{Decimal: d, raw: n.Text}, nil
	case KindString:
		return String(n.Text), nil
	case KindSymbol:
		return Symbol(n.Text), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, n)
	}
}

// Read parses one expression and decodes it.
func Read(source string) (Value, error) {
	t, err := Parse(source)
	if err != nil {
		return nil, err
	}

	return Decode(t)
}

// ReadAll parses a sequence of expressions and decodes them as a List.
func ReadAll(source string) (List, error) {
	n, err := ParseList(source)
	if err != nil {
		return nil, err
	}

	v, err := Decode(n)
	if err != nil {
		return nil, err
	}

	return v.(List), nil
}
