// Package fixture reads grammar acceptance cases from Markdown documents.
//
// A document has a level-1 title and one level-2 section per case. Each case
// holds a fenced "input" block with the source text and either a "yaml" block
// with the expected tree (in the shape produced by dump.ToData) or an "error"
// block with the expected syntax error.
//
//	## bold span
//
//	```input
//	*an*
//	```
//
//	```yaml
//	- kind: bold
//	  text: an
//	```
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	ErrMissingInput    = errors.New("fixture case has no input block")
	ErrMissingExpected = errors.New("fixture case has neither a yaml nor an error block")
	ErrInvalidBlock    = errors.New("invalid fixture block")
)

// Document is a parsed fixture file.
type Document struct {
	Title string
	Cases []Case
}

// Case is one acceptance case.
type Case struct {
	Name     string
	Line     int
	Input    string
	Expected any
	Error    *ExpectedError

	hasInput bool
}

// ExpectedError describes the syntax error a case must fail with.
type ExpectedError struct {
	Expected string `yaml:"expected"`
	Found    string `yaml:"found"`
	Line     int    `yaml:"line"`
	Column   int    `yaml:"column"`
}

// Load reads a fixture document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse reads a fixture document.
func Parse(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	root := goldmark.New().Parser().Parse(text.NewReader(content))

	doc := &Document{}

	var current *Case

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := headingText(node, content)
			if node.Level == 1 {
				doc.Title = title
				continue
			}

			if err := finish(doc, current); err != nil {
				return nil, err
			}

			current = &Case{Name: title, Line: lineOf(node, content)}
		case *ast.FencedCodeBlock:
			if current == nil {
				continue
			}

			if err := fill(current, string(node.Language(content)), blockContent(node, content)); err != nil {
				return nil, fmt.Errorf("case %q: %w", current.Name, err)
			}
		}
	}

	if err := finish(doc, current); err != nil {
		return nil, err
	}

	return doc, nil
}

func fill(c *Case, info, body string) error {
	switch strings.ToLower(strings.TrimSpace(info)) {
	case "input":
		c.Input = strings.TrimSuffix(body, "\n")
		c.hasInput = true
	case "yaml", "yml":
		var expected any
		if err := yaml.Unmarshal([]byte(body), &expected); err != nil {
			return fmt.Errorf("%w: yaml: %w", ErrInvalidBlock, err)
		}

		if expected == nil {
			expected = []any{}
		}

		c.Expected = expected
	case "error":
		var expected ExpectedError
		if err := yaml.UnmarshalWithOptions([]byte(body), &expected, yaml.Strict()); err != nil {
			return fmt.Errorf("%w: error: %w", ErrInvalidBlock, err)
		}

		c.Error = &expected
	}

	return nil
}

func finish(doc *Document, c *Case) error {
	if c == nil {
		return nil
	}

	if !c.hasInput {
		return fmt.Errorf("case %q: %w", c.Name, ErrMissingInput)
	}

	if c.Expected == nil && c.Error == nil {
		return fmt.Errorf("case %q: %w", c.Name, ErrMissingExpected)
	}

	doc.Cases = append(doc.Cases, *c)

	return nil
}

func headingText(heading *ast.Heading, content []byte) string {
	var sb strings.Builder

	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(content))
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

func blockContent(block *ast.FencedCodeBlock, content []byte) string {
	var sb strings.Builder

	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(content))
	}

	return sb.String()
}

func lineOf(node ast.Node, content []byte) int {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}

	return strings.Count(string(content[:lines.At(0).Start]), "\n") + 1
}
