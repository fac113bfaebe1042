// Package grammars names the grammars bundled with descent so the CLI and the
// config file can refer to them.
package grammars

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shibukawa/descent/engine"
	"github.com/shibukawa/descent/grammars/sexpr"
	"github.com/shibukawa/descent/grammars/textfmt"
)

// ErrUnknownGrammar is returned by Lookup for names not in the registry.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Entry describes one bundled grammar.
type Entry struct {
	Name        string
	Description string
	Grammar     engine.Grammar
}

var registry = map[string]Entry{
	"sexpr": {
		Name:        "sexpr",
		Description: "a single S-expression",
		Grammar:     sexpr.Expression,
	},
	"sexpr-list": {
		Name:        "sexpr-list",
		Description: "a sequence of S-expressions read as one list",
		Grammar:     sexpr.Sequence,
	},
	"textfmt": {
		Name:        "textfmt",
		Description: "plain text with *bold*, _italic_ and [uri][label] spans",
		Grammar:     textfmt.Grammar,
	},
}

// Lookup returns the grammar registered under name.
func Lookup(name string) (Entry, error) {
	e, ok := registry[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownGrammar, name, Names())
	}

	return e, nil
}

// Names returns the registered grammar names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Entries returns all registered grammars sorted by name.
func Entries() []Entry {
	entries := make([]Entry, 0, len(registry))
	for _, name := range Names() {
		entries = append(entries, registry[name])
	}

	return entries
}
