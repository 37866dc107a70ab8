// Package message derives the context text a rewritten function attaches
// to its returned errors.
package message

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/errctx/errctx/internal/directive"
)

// DefaultFnTemplate is the fn-mode message template when the configuration
// does not override it. The single verb receives the function name.
const DefaultFnTemplate = "call %s fail"

// Deriver produces context messages for annotated functions.
type Deriver struct {
	fnTemplate string
}

func NewDeriver(fnTemplate string) *Deriver {
	if fnTemplate == "" {
		fnTemplate = DefaultFnTemplate
	}

	return &Deriver{fnTemplate: fnTemplate}
}

// Derive computes the context message for fn under the given directive.
func (d *Deriver) Derive(dir directive.Directive, fn *ast.FuncDecl) (string, error) {
	switch dir.Mode {
	case directive.ModeDoc:
		doc := FirstDocLine(fn.Doc)
		if doc == "" {
			return "", fmt.Errorf("could not find doc for function %s", fn.Name.Name)
		}
		// A doc sentence ends with a period, a wrap message must not.
		return strings.TrimSuffix(doc, "."), nil

	case directive.ModeFn:
		return fmt.Sprintf(d.fnTemplate, fn.Name.Name), nil

	case directive.ModeMsg:
		return dir.Msg, nil

	default:
		return "", fmt.Errorf("unknown context mode %v", dir.Mode)
	}
}

// FirstDocLine extracts the first meaningful documentation line out of
// a comment group. Directive lines, other tool directives and empty lines
// do not count as documentation.
func FirstDocLine(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}

	for _, comment := range group.List {
		text := strings.TrimSpace(comment.Text)
		if !strings.HasPrefix(text, "//") {
			// A /* … */ group. Take its first meaningful line.
			if line := firstBlockLine(text); line != "" {
				return line
			}
			continue
		}

		body := strings.TrimPrefix(text, "//")
		if isDirective(body) {
			continue
		}

		body = strings.TrimSpace(body)
		if body == "" {
			continue
		}

		return body
	}

	return ""
}

func firstBlockLine(text string) string {
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line != "" {
			return line
		}
	}

	return ""
}

// isDirective reports whether the comment body (text after //) is a tool
// directive like go:generate or errctx:context rather than documentation.
// Directives have no space between // and the word before the colon.
func isDirective(body string) bool {
	if body == "" || body[0] == ' ' || body[0] == '\t' {
		return false
	}

	colon := strings.Index(body, ":")
	if colon <= 0 {
		return false
	}

	for _, r := range body[:colon] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}

	return true
}
