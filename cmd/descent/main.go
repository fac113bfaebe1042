package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/shibukawa/descent"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Logger  logr.Logger
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// loadConfig loads the configuration file named by the global flag.
func (ctx *Context) loadConfig() (*descent.Config, error) {
	config, err := descent.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// CLI represents the command-line interface
var CLI struct {
	Config   string      `help:"Configuration file path" default:"descent.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Parse    ParseCmd    `cmd:"" help:"Parse input with a grammar and print the token tree"`
	Check    CheckCmd    `cmd:"" help:"Run Markdown acceptance fixtures against a grammar"`
	Grammars GrammarsCmd `cmd:"" help:"List available grammars"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "descent v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	logger, sync, err := newLogger(CLI.Verbose, CLI.Quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sync()

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Logger:  logger,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	err = ctx.Run(appCtx)
	if err != nil {
		sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
