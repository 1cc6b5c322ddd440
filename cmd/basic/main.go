// Command basic is an interactive Microsoft-style BASIC interpreter: a
// line editor, a tokenizer, and an evaluator/driver wired together into
// one binary.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/interp"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/internal/config"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/internal/dump"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/repl"
)

type options struct {
	Debug  bool   `short:"d" long:"debug" description:"dump interpreter state to stderr on exit"`
	Config string `short:"c" long:"config" description:"path to a TOML settings file" value-name:"FILE"`

	Args struct {
		Program string `positional-arg-name:"program" description:"BASIC program file to load and run"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "?%v\n", err)
		os.Exit(1)
	}

	in, err := interp.New(
		interp.WithOutput(os.Stdout),
		interp.WithInput(os.Stdin),
		interp.WithMaxProgramSize(cfg.ProgramSize),
		interp.WithFileIO(repl.FileSystem{}),
	)
	if err != nil {
		atExit(nil, opts.Debug, err)
	}

	fmt.Fprint(os.Stdout, cfg.Banner)
	console := repl.New(in, os.Stdout)

	if opts.Args.Program != "" {
		lines, err := repl.FileSystem{}.Load(opts.Args.Program)
		if err != nil {
			atExit(in, opts.Debug, errors.Wrapf(err, "loading %s", opts.Args.Program))
		}
		console.LoadAndRun(lines)
	}

	console.Run()

	if opts.Debug {
		dump.Instance(os.Stderr, in)
	}
}

// atExit reports a fatal startup error and exits; with --debug it prints
// the interpreter's state alongside the error chain instead of just the
// top-level message.
func atExit(in *interp.Instance, debug bool, err error) {
	if debug {
		dump.Error(os.Stderr, err)
		if in != nil {
			dump.Instance(os.Stderr, in)
		}
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "?%v\n", err)
	os.Exit(1)
}
