package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shibukawa/descent/grammars"
)

// GrammarsCmd represents the grammars command
type GrammarsCmd struct{}

// Run executes the grammars command
func (cmd *GrammarsCmd) Run(ctx *Context) error {
	w := tabwriter.NewWriter(ctx.Stdout, 0, 4, 2, ' ', 0)

	name := color.New(color.FgCyan)
	for _, e := range grammars.Entries() {
		fmt.Fprintf(w, "%s\t%s\n", name.Sprint(e.Name), e.Description)
	}

	return w.Flush()
}
