// Package dump turns token trees into plain data for inspection and writes it as
// YAML or JSON.
package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/shibukawa/descent/engine"
)

// ErrUnknownFormat is returned for an output format other than yaml or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects the output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatYAML, FormatJSON:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %q (must be yaml or json)", ErrUnknownFormat, name)
	}
}

// ToData converts tokens into strings, maps and slices:
//
//	Text           -> string
//	leaf node      -> {kind, text}
//	compound node  -> {kind, children}
//	group          -> list of children
func ToData(tokens []engine.Token) []any {
	result := make([]any, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, TokenData(t))
	}

	return result
}

// TokenData converts a single token. See ToData.
func TokenData(t engine.Token) any {
	switch v := t.(type) {
	case engine.Text:
		return string(v)
	case engine.Node:
		if v.IsLeaf() {
			return map[string]any{"kind": v.Kind, "text": v.Text}
		}

		if v.IsGroup() {
			return ToData(v.Children)
		}

		return map[string]any{"kind": v.Kind, "children": ToData(v.Children)}
	default:
		return nil
	}
}

// Write encodes data to w. indent applies to both formats.
func Write(w io.Writer, data any, format Format, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	var (
		out []byte
		err error
	)

	switch format {
	case FormatYAML:
		out, err = yaml.MarshalWithOptions(data, yaml.Indent(indent), yaml.IndentSequence(true))
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", strings.Repeat(" ", indent))
		out = append(out, '\n')
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	_, err = w.Write(out)

	return err
}

// Normalize round-trips data through YAML so it can be compared with values
// decoded from YAML documents.
func Normalize(data any) (any, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, err
	}

	var normalized any
	if err := yaml.Unmarshal(out, &normalized); err != nil {
		return nil, err
	}

	return normalized, nil
}
