package message

import (
	"go/ast"
	"strings"
	"testing"

	"github.com/errctx/errctx/internal/directive"
)

func funcDecl(name string, doc ...string) *ast.FuncDecl {
	var group *ast.CommentGroup
	if len(doc) > 0 {
		comments := make([]*ast.Comment, len(doc))
		for i, line := range doc {
			comments[i] = &ast.Comment{Text: line}
		}
		group = &ast.CommentGroup{List: comments}
	}

	return &ast.FuncDecl{
		Doc:  group,
		Name: ast.NewIdent(name),
	}
}

func TestDerive(t *testing.T) {
	deriver := NewDeriver("")

	tests := []struct {
		name string
		dir  directive.Directive
		fn   *ast.FuncDecl
		want string
	}{
		{
			name: "doc mode takes the first doc line",
			dir:  directive.Directive{Mode: directive.ModeDoc},
			fn:   funcDecl("Square", "// Square a number if it's less than 10.", "//", "//errctx:context"),
			want: "Square a number if it's less than 10",
		},
		{
			name: "doc mode skips directive lines",
			dir:  directive.Directive{Mode: directive.ModeDoc},
			fn:   funcDecl("Gen", "//go:generate stringer -type=Kind", "// Generate the kind names.", "//errctx:context"),
			want: "Generate the kind names",
		},
		{
			name: "fn mode formats the function name",
			dir:  directive.Directive{Mode: directive.ModeFn},
			fn:   funcDecl("ReadConfig", "//errctx:context fn"),
			want: "call ReadConfig fail",
		},
		{
			name: "msg mode is literal",
			dir:  directive.Directive{Mode: directive.ModeMsg, Msg: "custom msg."},
			fn:   funcDecl("Whatever", `//errctx:context msg:"custom msg."`),
			want: "custom msg.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deriver.Derive(tt.dir, tt.fn)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveMissingDoc(t *testing.T) {
	deriver := NewDeriver("")

	_, err := deriver.Derive(
		directive.Directive{Mode: directive.ModeDoc},
		funcDecl("Nameless", "//errctx:context"),
	)
	if err == nil {
		t.Fatal("expected an error for doc mode without documentation")
	}
	if !strings.Contains(err.Error(), "could not find doc") {
		t.Errorf("error %q does not mention the missing doc", err)
	}
}

func TestDeriveCustomFnTemplate(t *testing.T) {
	deriver := NewDeriver("%s did not work out")

	got, err := deriver.Derive(
		directive.Directive{Mode: directive.ModeFn},
		funcDecl("Sync"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "Sync did not work out" {
		t.Errorf("message = %q", got)
	}
}

func TestFirstDocLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name: "nil group",
		},
		{
			name:  "plain line",
			lines: []string{"// Count down until the target number."},
			want:  "Count down until the target number.",
		},
		{
			name:  "directives only",
			lines: []string{"//go:noinline", "//errctx:context"},
			want:  "",
		},
		{
			name:  "block comment",
			lines: []string{"/*\n * Read the address file.\n */"},
			want:  "Read the address file.",
		},
		{
			name:  "empty lines are skipped",
			lines: []string{"//", "//   ", "// Second paragraph wins."},
			want:  "Second paragraph wins.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var group *ast.CommentGroup
			if len(tt.lines) > 0 {
				comments := make([]*ast.Comment, len(tt.lines))
				for i, line := range tt.lines {
					comments[i] = &ast.Comment{Text: line}
				}
				group = &ast.CommentGroup{List: comments}
			}

			if got := FirstDocLine(group); got != tt.want {
				t.Errorf("FirstDocLine = %q, want %q", got, tt.want)
			}
		})
	}
}
