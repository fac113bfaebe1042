package fixture

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/goccy/go-yaml"
	"github.com/shibukawa/descent/dump"
	"github.com/shibukawa/descent/engine"
)

// ErrMismatch is returned by Verify when a parse result does not match the case.
var ErrMismatch = errors.New("fixture mismatch")

// Verify compares the result of parsing c.Input with the case expectation.
func (c Case) Verify(tokens []engine.Token, err error) error {
	if c.Error != nil {
		serr, ok := engine.AsSyntaxError(err)
		if !ok {
			return fmt.Errorf("%w: expected a syntax error, got %v", ErrMismatch, err)
		}

		got := ExpectedError{Expected: serr.Expected, Found: serr.Found, Line: serr.Line, Column: serr.Column}
		if got != *c.Error {
			return fmt.Errorf("%w: got error %+v, want %+v", ErrMismatch, got, *c.Error)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: unexpected error: %w", ErrMismatch, err)
	}

	actual, err := dump.Normalize(dump.ToData(tokens))
	if err != nil {
		return err
	}

	if !reflect.DeepEqual(c.Expected, actual) {
		want, _ := yaml.Marshal(c.Expected)
		got, _ := yaml.Marshal(actual)

		return fmt.Errorf("%w:\n--- want\n%s--- got\n%s", ErrMismatch, want, got)
	}

	return nil
}
