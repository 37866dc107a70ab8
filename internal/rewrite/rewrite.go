// Package rewrite turns annotated function bodies into bodies that attach
// a context message to every error they return.
//
// The original body moves into a closure, the closure gets called and a
// non-nil error is wrapped before leaving the function:
//
//	// Square a number if it's less than 10.
//	//
//	//errctx:context
//	func Square(num int) (int, error) {
//		__errctx_body := func() (int, error) {
//			…original statements…
//		}
//		__errctx_r0, __errctx_err := __errctx_body()
//		if __errctx_err != nil {
//			return __errctx_r0, fmt.Errorf("Square a number if it's less than 10: %w", __errctx_err)
//		}
//		return __errctx_r0, nil
//	}
//
// Rewriting is idempotent: an instrumented body is recognized by the
// __errctx_body closure and regenerated from the closure's statements, so
// doc comment edits propagate and wrappers never nest.
//
// Changing the configured wrapper on already instrumented code updates the
// wrap calls but does not remove the previous wrapper's import; when
// nothing else uses it, a goimports run cleans it up.
package rewrite

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/errctx/errctx/internal/directive"
	"github.com/errctx/errctx/internal/edit"
	"github.com/errctx/errctx/internal/message"
	"github.com/errctx/errctx/internal/source"
)

// Generated identifier names. The prefix keeps them out of the way of
// anything hand-written; a collision means the file was already ours.
const (
	bodyVar   = "__errctx_body"
	errVar    = "__errctx_err"
	resPrefix = "__errctx_r"
)

// Options configures a Rewriter.
type Options struct {
	// Wrapper attaches the message to the error. DefaultWrapper when zero.
	Wrapper Wrapper

	// Registry resolves the wrapper call shape. A fresh registry with no
	// custom entries is used when nil.
	Registry *WrapperRegistry

	// FnTemplate formats fn-mode messages. message.DefaultFnTemplate when
	// empty.
	FnTemplate string
}

// Rewriter rewrites annotated functions file by file.
type Rewriter struct {
	wrapper Wrapper
	style   WrapStyle
	deriver *message.Deriver
}

func New(opts Options) (*Rewriter, error) {
	wrapper := opts.Wrapper
	if wrapper == (Wrapper{}) {
		wrapper = DefaultWrapper
	}

	registry := opts.Registry
	if registry == nil {
		registry = NewWrapperRegistry(nil)
	}

	style, ok := registry.StyleOf(wrapper)
	if !ok {
		return nil, fmt.Errorf("wrapper %s has no registered call style", wrapper)
	}

	return &Rewriter{
		wrapper: wrapper,
		style:   style,
		deriver: message.NewDeriver(opts.FnTemplate),
	}, nil
}

// Edit is a single replacement span within the original file content.
type Edit struct {
	Start token.Pos
	End   token.Pos
	Text  string
}

// FuncResult is the outcome for one annotated function.
type FuncResult struct {
	Decl *ast.FuncDecl

	// Message is the derived context text. Empty when Diag is set.
	Message string

	// Edits replace the function body (and add the wrapper import when the
	// file lacks it). Empty when the body is already up to date.
	Edits []Edit

	// Diag is set when the directive cannot be honored: malformed argument,
	// doc mode without documentation, or a signature without a trailing
	// error result.
	Diag error
}

// Result is the outcome of rewriting a single file.
type Result struct {
	File  *source.File
	Funcs []FuncResult
}

// Changed reports whether any function body needs replacing.
func (r *Result) Changed() bool {
	for _, fn := range r.Funcs {
		if len(fn.Edits) > 0 {
			return true
		}
	}

	return false
}

// Diags collects per-function diagnostics in declaration order,
// positions prepended.
func (r *Result) Diags() []error {
	var diags []error
	for _, fn := range r.Funcs {
		if fn.Diag != nil {
			diags = append(diags, fmt.Errorf("%s: %w", posOf(r.File, fn.Decl.Pos()), fn.Diag))
		}
	}

	return diags
}

// Output applies all edits and returns the rewritten file content.
func (r *Result) Output() ([]byte, error) {
	editor := edit.New(r.File.Fset, r.File.Code)
	for _, fn := range r.Funcs {
		for _, e := range fn.Edits {
			editor.Replace(e.Start, e.End, e.Text)
		}
	}

	out, err := editor.Bytes()
	if err != nil {
		return nil, fmt.Errorf("apply edits to %s: %w", r.File.Path, err)
	}

	return out, nil
}

// RewriteFile processes every annotated top level function of the file.
// Functions without the directive are left untouched.
func (r *Rewriter) RewriteFile(f *source.File) *Result {
	res := &Result{File: f}

	ident, imported := wrapperIdent(f.Ast, r.wrapper)
	importNeeded := !imported
	for _, decl := range f.Ast.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		dir, found, err := directive.FromComments(fn.Doc)
		if !found {
			continue
		}
		if err != nil {
			res.Funcs = append(res.Funcs, FuncResult{
				Decl: fn,
				Diag: err,
			})
			continue
		}

		fr := r.rewriteFunc(f, fn, dir, ident)
		if len(fr.Edits) > 0 && importNeeded {
			fr.Edits = append(fr.Edits, importEdit(f, r.wrapper.PkgPath))
			importNeeded = false
		}
		res.Funcs = append(res.Funcs, fr)
	}

	return res
}

func (r *Rewriter) rewriteFunc(f *source.File, fn *ast.FuncDecl, dir directive.Directive, ident string) FuncResult {
	if fn.Body == nil {
		return FuncResult{
			Decl: fn,
			Diag: fmt.Errorf("function %s has no body", fn.Name.Name),
		}
	}

	count := resultCount(fn.Type.Results)
	if count == 0 || !lastResultIsError(fn.Type.Results) {
		return FuncResult{
			Decl: fn,
			Diag: fmt.Errorf("function %s does not return an error as its last result", fn.Name.Name),
		}
	}

	msg, err := r.deriver.Derive(dir, fn)
	if err != nil {
		return FuncResult{
			Decl: fn,
			Diag: err,
		}
	}

	inner := pristineBody(f, fn)
	body, err := r.renderBody(f, fn, inner, msg, count, ident)
	if err != nil {
		return FuncResult{
			Decl: fn,
			Diag: err,
		}
	}

	current := string(f.Code[offsetOf(f, fn.Body.Lbrace):offsetOf(f, fn.Body.Rbrace)+1])
	if current == body {
		return FuncResult{Decl: fn, Message: msg}
	}

	return FuncResult{
		Decl:    fn,
		Message: msg,
		Edits: []Edit{{
			Start: fn.Body.Lbrace,
			End:   fn.Body.Rbrace + 1,
			Text:  body,
		}},
	}
}

// renderBody produces the full replacement text for the body block,
// braces included.
func (r *Rewriter) renderBody(f *source.File, fn *ast.FuncDecl, inner string, msg string, count int, ident string) (string, error) {
	results := string(f.Code[offsetOf(f, fn.Type.Results.Pos()):offsetOf(f, fn.Type.Results.End())])

	var leading []string
	for i := 0; i < count-1; i++ {
		leading = append(leading, resPrefix+strconv.Itoa(i))
	}

	wrap, err := wrapCall(r.wrapper, ident, r.style, msg, errVar)
	if err != nil {
		return "", err
	}

	if !strings.HasSuffix(inner, "\n") {
		inner += "\n"
	}
	if reindentable(inner) {
		inner = indentLines(inner)
	}

	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString("\t" + bodyVar + " := func() " + results + " {")
	b.WriteString(inner)
	b.WriteString("\t}\n")
	b.WriteString("\t" + strings.Join(append(leading, errVar), ", ") + " := " + bodyVar + "()\n")
	b.WriteString("\tif " + errVar + " != nil {\n")
	b.WriteString("\t\treturn " + strings.Join(append(leading, wrap), ", ") + "\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn " + strings.Join(append(leading, "nil"), ", ") + "\n")
	b.WriteString("}")

	return b.String(), nil
}

// pristineBody returns the statement text to evaluate inside the closure.
// For an untouched function that is the current body content; for an
// instrumented one the closure's own statements, shifted back one level.
func pristineBody(f *source.File, fn *ast.FuncDecl) string {
	if lit := instrumentedClosure(fn.Body); lit != nil {
		inner := string(f.Code[offsetOf(f, lit.Body.Lbrace)+1 : offsetOf(f, lit.Body.Rbrace)])
		if reindentable(inner) {
			return outdentLines(inner)
		}
		// Drop the indentation of the closing brace, renderBody adds its own.
		return strings.TrimRight(inner, "\t")
	}

	return string(f.Code[offsetOf(f, fn.Body.Lbrace)+1 : offsetOf(f, fn.Body.Rbrace)])
}

// reindentable guards the tab shifting applied when statements move in and
// out of the closure. A body holding a raw string literal is kept verbatim:
// adding a tab inside `…` would change the string value.
func reindentable(text string) bool {
	return !strings.Contains(text, "`")
}

// instrumentedClosure detects a previous run of the rewriter: the first
// statement defines the __errctx_body closure.
func instrumentedClosure(body *ast.BlockStmt) *ast.FuncLit {
	if len(body.List) == 0 {
		return nil
	}

	assign, ok := body.List[0].(*ast.AssignStmt)
	if !ok || assign.Tok != token.DEFINE {
		return nil
	}
	if len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
		return nil
	}

	name, ok := assign.Lhs[0].(*ast.Ident)
	if !ok || name.Name != bodyVar {
		return nil
	}

	lit, ok := assign.Rhs[0].(*ast.FuncLit)
	if !ok {
		return nil
	}

	return lit
}

// resultCount expands result fields into the number of returned values.
func resultCount(results *ast.FieldList) int {
	if results == nil {
		return 0
	}

	var count int
	for _, field := range results.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		count += n
	}

	return count
}

func lastResultIsError(results *ast.FieldList) bool {
	if results == nil || len(results.List) == 0 {
		return false
	}

	last, ok := results.List[len(results.List)-1].Type.(*ast.Ident)
	return ok && last.Name == "error"
}

// wrapperIdent resolves the identifier the wrapper package goes by inside
// the file. An existing import of the wrapper path wins over the
// path-derived name: an alias is used as is and a dot import drops the
// qualifier entirely. A blank import binds no identifier at all and counts
// as no import, a second import of the same path is legal.
func wrapperIdent(f *ast.File, w Wrapper) (ident string, imported bool) {
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != w.PkgPath {
			continue
		}

		if imp.Name == nil {
			return w.pkgIdent(), true
		}
		switch imp.Name.Name {
		case "_":
			continue
		case ".":
			return "", true
		default:
			return imp.Name.Name, true
		}
	}

	return w.pkgIdent(), false
}

// importEdit inserts the wrapper import. A parenthesized import block gets
// a new line right after the opening paren, otherwise a standalone import
// declaration goes in front of the first one, or after the package clause
// when the file imports nothing at all.
func importEdit(f *source.File, pkgPath string) Edit {
	for _, decl := range f.Ast.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}

		if gen.Lparen.IsValid() {
			return Edit{
				Start: gen.Lparen + 1,
				End:   gen.Lparen + 1,
				Text:  "\n\t" + strconv.Quote(pkgPath),
			}
		}

		return Edit{
			Start: gen.Pos(),
			End:   gen.Pos(),
			Text:  "import " + strconv.Quote(pkgPath) + "\n\n",
		}
	}

	pos := f.Ast.Name.End()
	return Edit{
		Start: pos,
		End:   pos,
		Text:  "\n\nimport " + strconv.Quote(pkgPath),
	}
}

func indentLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "\t" + line
		}
	}

	return strings.Join(lines, "\n")
}

func outdentLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "\t")
	}

	return strings.Join(lines, "\n")
}

func offsetOf(f *source.File, pos token.Pos) int {
	return f.Fset.Position(pos).Offset
}

func posOf(f *source.File, pos token.Pos) token.Position {
	return f.Fset.Position(pos)
}
