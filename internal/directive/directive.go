// Package directive parses the //errctx:context comment directive.
//
// The directive goes into the doc comment group of a function and selects
// how the context message attached to returned errors is produced:
//
//	//errctx:context             doc comment text (the default)
//	//errctx:context doc         doc comment text, spelled out
//	//errctx:context fn          message derived from the function name
//	//errctx:context msg:"..."   the literal message
package directive

import (
	"fmt"
	"go/ast"
	"strings"
)

// Prefix is the comment text every directive line starts with.
const Prefix = "//errctx:context"

// Mode describes where the context message comes from.
type Mode int

const (
	modeInvalid Mode = iota

	// ModeDoc takes the message from the function's documentation text.
	ModeDoc

	// ModeFn derives the message from the function name.
	ModeFn

	// ModeMsg uses a literal message given in the directive itself.
	ModeMsg
)

var modeValueMap = map[Mode]string{
	ModeDoc: "doc",
	ModeFn:  "fn",
	ModeMsg: "msg",
}

func (m Mode) String() string {
	v, ok := modeValueMap[m]
	if !ok {
		return fmt.Sprintf("invalid(%d)", m)
	}

	return v
}

// UnmarshalText for setting values with configs, CLI, etc.
func (m *Mode) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range modeValueMap {
		if v == text {
			*m = k
			return nil
		}
	}

	return fmt.Errorf("unknown context mode %q", text)
}

// Directive is a parsed //errctx:context line.
type Directive struct {
	Mode Mode

	// Msg holds the literal message for ModeMsg, empty otherwise.
	Msg string
}

// FromComments finds the directive in a doc comment group. The second result
// is false when the group carries no directive at all. A present but
// malformed directive is an error.
func FromComments(group *ast.CommentGroup) (Directive, bool, error) {
	if group == nil {
		return Directive{}, false, nil
	}

	for _, comment := range group.List {
		text := strings.TrimSpace(comment.Text)
		if text != Prefix && !strings.HasPrefix(text, Prefix+" ") {
			continue
		}

		d, err := parseArg(strings.TrimSpace(strings.TrimPrefix(text, Prefix)))
		if err != nil {
			return Directive{}, true, err
		}

		return d, true, nil
	}

	return Directive{}, false, nil
}

func parseArg(arg string) (Directive, error) {
	switch {
	case arg == "":
		return Directive{Mode: ModeDoc}, nil
	case arg == "doc":
		return Directive{Mode: ModeDoc}, nil
	case arg == "fn":
		return Directive{Mode: ModeFn}, nil
	}

	if i := strings.Index(arg, ":"); i >= 0 {
		name := strings.TrimSpace(arg[:i])
		msg := strings.TrimSpace(arg[i+1:])
		msg = strings.TrimSpace(strings.Trim(msg, `"`))
		if name == "msg" {
			if msg == "" {
				return Directive{}, fmt.Errorf(`empty message in %s msg:"…"`, Prefix)
			}
			return Directive{Mode: ModeMsg, Msg: msg}, nil
		}

		return Directive{}, fmt.Errorf(`invalid name %q, only msg:"…" is supported`, name)
	}

	return Directive{}, fmt.Errorf(
		`unsupported argument %q, supported forms are %s, %[2]s doc, %[2]s fn and %[2]s msg:"…"`,
		arg, Prefix,
	)
}
