package engine

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every SyntaxError so callers can test with errors.Is.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports where and why a parse stopped.
// Line and Column are 1-based; Column counts runes. Offset is the byte offset.
// An empty Found means the input ended.
type SyntaxError struct {
	Expected string
	Found    string
	Offset   int
	Line     int
	Column   int
}

func (e *SyntaxError) Error() string {
	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}

	return fmt.Sprintf("%s at %d:%d: expected %q, found %s", ErrSyntax, e.Line, e.Column, e.Expected, found)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// AsSyntaxError extracts a *SyntaxError from err using errors.As.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return serr, true
	}

	return nil, false
}
