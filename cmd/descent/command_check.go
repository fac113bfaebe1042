package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/shibukawa/descent"
	"github.com/shibukawa/descent/fixture"
	"github.com/shibukawa/descent/grammars"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Paths   []string `arg:"" optional:"" help:"Fixture documents (default: *.md in fixtures_dir; bundled grammar fixtures live in grammars/<name>/testdata)"`
	Grammar string   `help:"Grammar to use (overrides config)" short:"g"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	if cmd.Grammar != "" {
		config.Grammar = cmd.Grammar
	}

	entry, err := grammars.Lookup(config.Grammar)
	if err != nil {
		return err
	}

	paths := cmd.Paths
	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(config.FixturesDir, "*.md"))
		if err != nil {
			return fmt.Errorf("failed to list fixtures: %w", err)
		}
	}

	if len(paths) == 0 {
		return fmt.Errorf("%w in %s (set fixtures_dir or pass documents, e.g. grammars/%s/testdata/*.md)", descent.ErrNoFixtures, config.FixturesDir, entryDir(entry.Name))
	}

	parser := newParser(ctx, config, entry)

	passed, failed := 0, 0

	for _, path := range paths {
		doc, err := fixture.Load(path)
		if err != nil {
			return err
		}

		for _, c := range doc.Cases {
			tokens, err := parser.Parse(c.Input)

			if verr := c.Verify(tokens, err); verr != nil {
				failed++

				if !ctx.Quiet {
					color.New(color.FgRed).Fprintf(ctx.Stdout, "FAIL %s:%d %s\n", path, c.Line, c.Name)
					fmt.Fprintf(ctx.Stdout, "     %v\n", verr)
				}

				continue
			}

			passed++

			if ctx.Verbose {
				color.New(color.FgGreen).Fprintf(ctx.Stdout, "ok   %s:%d %s\n", path, c.Line, c.Name)
			}
		}
	}

	if !ctx.Quiet {
		fmt.Fprintf(ctx.Stdout, "%d passed, %d failed\n", passed, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", descent.ErrFixtureFailed, failed, passed+failed)
	}

	return nil
}

// entryDir maps a registry name to the package directory holding its fixtures.
func entryDir(name string) string {
	if name == "sexpr-list" {
		return "sexpr"
	}

	return name
}
