// Package command implements the errctx CLI subcommands.
package command

import (
	"fmt"
	"io"

	"github.com/errctx/errctx/internal/config"
	"github.com/errctx/errctx/internal/rewrite"
	"github.com/errctx/errctx/internal/source"
)

// App carries flags and streams shared by all subcommands.
type App struct {
	Verbose bool
	Config  string

	Stdout io.Writer
	Stderr io.Writer
}

func (a *App) verbosef(format string, args ...any) {
	if !a.Verbose {
		return
	}

	fmt.Fprintf(a.Stderr, format+"\n", args...)
}

// setup loads the configuration, builds the rewriter and resolves path
// arguments. Shared by rewrite and check.
func (a *App) setup(paths []string) (*rewrite.Rewriter, []string, error) {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	rw, err := rewrite.New(cfg.Options())
	if err != nil {
		return nil, nil, fmt.Errorf("set up rewriter: %w", err)
	}

	files, err := source.Collect(paths)
	if err != nil {
		return nil, nil, fmt.Errorf("collect files: %w", err)
	}
	a.verbosef("found %d candidate files", len(files))

	return rw, files, nil
}
