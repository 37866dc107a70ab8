package command

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/errctx/errctx/internal/source"
)

// Rewrite applies the error context transformation. Without flags the
// rewritten content goes to stdout the way gofmt does it.
type Rewrite struct {
	Write bool     `help:"Rewrite files in place." short:"w"`
	Diff  bool     `help:"Print unified diffs instead of full content." short:"d"`
	List  bool     `help:"Only list files whose content would change." short:"l"`
	Paths []string `arg:"" name:"path" help:"Files, directories or dir/... trees."`
}

func (c *Rewrite) Run(app *App) error {
	rw, files, err := app.setup(c.Paths)
	if err != nil {
		return err
	}

	var problems int
	for _, path := range files {
		f, err := source.ParseFile(path)
		if err != nil {
			fmt.Fprintln(app.Stderr, err)
			problems++
			continue
		}

		res := rw.RewriteFile(f)
		for _, diag := range res.Diags() {
			fmt.Fprintln(app.Stderr, diag)
			problems++
		}

		if !res.Changed() {
			continue
		}

		out, err := res.Output()
		if err != nil {
			fmt.Fprintln(app.Stderr, err)
			problems++
			continue
		}

		switch {
		case c.List:
			fmt.Fprintln(app.Stdout, path)

		case c.Diff:
			text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(f.Code)),
				B:        difflib.SplitLines(string(out)),
				FromFile: path + ".orig",
				ToFile:   path,
				Context:  3,
			})
			if err != nil {
				return fmt.Errorf("diff %s: %w", path, err)
			}
			fmt.Fprint(app.Stdout, text)

		case c.Write:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			app.verbosef("rewrote %s", path)

		default:
			fmt.Fprint(app.Stdout, string(out))
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}

	return nil
}
