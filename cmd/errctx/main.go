package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/errctx/errctx/internal/command"
)

type cli struct {
	Verbose bool   `help:"Enable verbose output." short:"v"`
	Config  string `help:"Path to errctx.yml." type:"path"`

	Rewrite command.Rewrite `cmd:"" help:"Rewrite annotated functions so their errors carry context."`
	Check   command.Check   `cmd:"" help:"Verify annotated functions are rewritten and up to date."`
}

func main() {
	c := new(cli)
	ctx := kong.Parse(
		c,
		kong.Name("errctx"),
		kong.Description("Attach error context derived from doc comments to annotated functions."),
	)
	err := ctx.Run(&command.App{
		Verbose: c.Verbose,
		Config:  c.Config,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	ctx.FatalIfErrorf(err)
}
