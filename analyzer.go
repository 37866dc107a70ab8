// Package errctx exposes the //errctx:context rewriter as a go/analysis
// pass. The command line front end lives in cmd/errctx.
package errctx

import (
	"flag"
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/analysis"

	"github.com/errctx/errctx/internal/config"
	"github.com/errctx/errctx/internal/rewrite"
	"github.com/errctx/errctx/internal/source"
)

const doc = `errctx rewrites annotated functions so their returned errors carry a context message

A function marked with //errctx:context in its doc comment must wrap every
error it returns with a message taken from the doc comment, the function
name or an explicit msg:"…" argument. The analyzer reports annotated
functions whose bodies do not attach that context yet and offers the
rewritten body as a suggested fix.`

// Analyzer is the go/analysis entry point of the tool. The same rewrite
// machinery backs the errctx CLI.
var Analyzer = &analysis.Analyzer{
	Name:  "errctx",
	Doc:   doc,
	Flags: analyzerFlags(),
	Run:   run,
}

func analyzerFlags() flag.FlagSet {
	var fs flag.FlagSet
	fs.String("config", "", "path to errctx.yml")
	return fs
}

func run(pass *analysis.Pass) (any, error) {
	cfg, err := config.Load(pass.Analyzer.Flags.Lookup("config").Value.String())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	rw, err := rewrite.New(cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("set up rewriter: %w", err)
	}

	for _, file := range pass.Files {
		checkFile(pass, rw, file)
	}

	return nil, nil
}

func checkFile(pass *analysis.Pass, rw *rewrite.Rewriter, file *ast.File) {
	filename := pass.Fset.Position(file.Pos()).Filename
	code, err := pass.ReadFile(filename)
	if err != nil {
		// Generated or cached files may not be readable, nothing to do then.
		return
	}

	res := rw.RewriteFile(&source.File{
		Path: filename,
		Code: code,
		Ast:  file,
		Fset: pass.Fset,
	})

	for _, fn := range res.Funcs {
		switch {
		case fn.Diag != nil:
			pass.Reportf(fn.Decl.Pos(), "%v", fn.Diag)

		case len(fn.Edits) > 0:
			edits := make([]analysis.TextEdit, 0, len(fn.Edits))
			for _, e := range fn.Edits {
				edits = append(edits, analysis.TextEdit{
					Pos:     e.Start,
					End:     e.End,
					NewText: []byte(e.Text),
				})
			}

			pass.Report(analysis.Diagnostic{
				Pos:     fn.Decl.Pos(),
				Message: fmt.Sprintf("function %s does not attach its error context %q", fn.Decl.Name.Name, fn.Message),
				SuggestedFixes: []analysis.SuggestedFix{{
					Message:   fmt.Sprintf("attach context %q to returned errors", fn.Message),
					TextEdits: edits,
				}},
			})
		}
	}
}
