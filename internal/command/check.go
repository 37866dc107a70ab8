package command

import (
	"fmt"

	"github.com/errctx/errctx/internal/source"
)

// Check verifies that every annotated function carries an up to date
// context wrapper and that every directive is well-formed. It changes
// nothing and fails when anything is off, which makes it the CI side of
// the tool.
type Check struct {
	Paths []string `arg:"" name:"path" help:"Files, directories or dir/... trees."`
}

func (c *Check) Run(app *App) error {
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

		for _, fn := range res.Funcs {
			if fn.Diag != nil || len(fn.Edits) == 0 {
				continue
			}
			fmt.Fprintf(
				app.Stderr,
				"%s: function %s: error context missing or out of date, run errctx rewrite -w\n",
				f.Fset.Position(fn.Decl.Pos()), fn.Decl.Name.Name,
			)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}

	app.verbosef("all annotated functions are up to date")

	return nil
}
