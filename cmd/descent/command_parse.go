package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shibukawa/descent"
	"github.com/shibukawa/descent/dump"
	"github.com/shibukawa/descent/engine"
	"github.com/shibukawa/descent/grammars"
	"github.com/shibukawa/descent/nodequery"
)

// ErrInputConflict is returned when both an input file and --expr are given.
var ErrInputConflict = errors.New("input file and --expr are mutually exclusive")

// ParseCmd represents the parse command
type ParseCmd struct {
	Input   string `arg:"" optional:"" help:"Input file ('-' or empty for stdin)"`
	Expr    string `help:"Parse this text instead of reading a file" short:"e"`
	Grammar string `help:"Grammar to use (overrides config)" short:"g"`
	Format  string `help:"Output format: yaml or json (overrides config)" short:"f"`
	Query   string `help:"CEL expression selecting nodes to print, e.g. node.kind == \"bold\""`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	if cmd.Grammar != "" {
		config.Grammar = cmd.Grammar
	}

	if cmd.Format != "" {
		config.Output.Format = cmd.Format
	}

	format, err := dump.ParseFormat(config.Output.Format)
	if err != nil {
		return err
	}

	entry, err := grammars.Lookup(config.Grammar)
	if err != nil {
		return err
	}

	var query *nodequery.Query
	if cmd.Query != "" {
		query, err = nodequery.Compile(cmd.Query)
		if err != nil {
			return err
		}
	}

	source, err := cmd.readSource(ctx)
	if err != nil {
		return err
	}

	tokens, err := newParser(ctx, config, entry).Parse(source)
	if err != nil {
		if serr, ok := engine.AsSyntaxError(err); ok && !ctx.Quiet {
			printSyntaxError(ctx.Stderr, cmd.sourceName(), source, serr)
		}

		return err
	}

	var data any = dump.ToData(tokens)

	if query != nil {
		matches, err := query.Select(tokens)
		if err != nil {
			return err
		}

		selected := make([]engine.Token, 0, len(matches))
		for _, m := range matches {
			selected = append(selected, m.Node)
		}

		data = dump.ToData(selected)
	}

	return dump.Write(ctx.Stdout, data, format, config.Output.Indent)
}

func (cmd *ParseCmd) readSource(ctx *Context) (string, error) {
	if cmd.Expr != "" {
		if cmd.Input != "" {
			return "", ErrInputConflict
		}

		return cmd.Expr, nil
	}

	if cmd.Input == "" || cmd.Input == "-" {
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return string(data), nil
}

func (cmd *ParseCmd) sourceName() string {
	switch {
	case cmd.Expr != "":
		return "<expr>"
	case cmd.Input == "" || cmd.Input == "-":
		return "<stdin>"
	default:
		return cmd.Input
	}
}

func newParser(ctx *Context, config *descent.Config, entry grammars.Entry) *engine.Parser {
	opts := append(config.EngineOptions(), engine.WithLogger(ctx.Logger.WithValues("grammar", entry.Name)))
	return engine.New(entry.Grammar, opts...)
}

// printSyntaxError shows the failing line with a caret under the error column.
func printSyntaxError(w io.Writer, name, source string, serr *engine.SyntaxError) {
	lines := strings.Split(source, "\n")

	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, "%s: %s\n", name, serr.Error())

	if serr.Line < 1 || serr.Line > len(lines) {
		return
	}

	line := lines[serr.Line-1]
	fmt.Fprintf(w, "  %s\n", line)

	var pad strings.Builder
	for i, r := range []rune(line) {
		if i >= serr.Column-1 {
			break
		}

		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}

	color.New(color.FgYellow).Fprintf(w, "  %s^\n", pad.String())
}
