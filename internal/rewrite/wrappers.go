package rewrite

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Wrapper identifies the function whose call attaches the context message
// to an error.
type Wrapper struct {
	PkgPath string
	Name    string
}

// DefaultWrapper is what gets used when the configuration stays silent.
var DefaultWrapper = Wrapper{PkgPath: "fmt", Name: "Errorf"}

func (w Wrapper) String() string {
	return w.PkgPath + "." + w.Name
}

// pkgIdent is the identifier the wrapper's package is referred to with.
// Derived from the import path the way the compiler does for sane packages,
// version suffixes excluded.
func (w Wrapper) pkgIdent() string {
	path := w.PkgPath
	if i := strings.LastIndex(path, "/"); i >= 0 {
		last := path[i+1:]
		if len(last) > 1 && last[0] == 'v' {
			if _, err := strconv.Atoi(last[1:]); err == nil {
				path = path[:i]
				if j := strings.LastIndex(path, "/"); j >= 0 {
					return path[j+1:]
				}
				return path
			}
		}
		return last
	}

	return path
}

// WrapperRegistry keeps wrap functions with known call shapes.
type WrapperRegistry struct {
	known map[Wrapper]WrapStyle
}

func NewWrapperRegistry(custom map[Wrapper]WrapStyle) *WrapperRegistry {
	predefined := map[Wrapper]WrapStyle{
		{PkgPath: "fmt", Name: "Errorf"}: WrapStyleErrorf,

		// Were widely used before errors gained %w. Still are in older codebases.
		{PkgPath: "github.com/pkg/errors", Name: "Wrap"}:        WrapStyleWrap,
		{PkgPath: "github.com/pkg/errors", Name: "WithMessage"}: WrapStyleWrap,

		{PkgPath: "github.com/sirkon/errors", Name: "Wrap"}: WrapStyleWrap,

		{PkgPath: "golang.org/x/xerrors", Name: "Errorf"}: WrapStyleErrorf,
	}

	// Merge custom defs over the predefined ones.
	known := maps.Clone(predefined)
	maps.Insert(known, maps.All(custom))

	return &WrapperRegistry{known: known}
}

// StyleOf returns the call shape registered for the given wrapper.
func (r *WrapperRegistry) StyleOf(w Wrapper) (WrapStyle, bool) {
	s, ok := r.known[w]
	return s, ok
}

// wrapCall renders the call expression attaching msg to the error held
// by errVar. ident qualifies the wrapper name; an empty ident means the
// name is already in scope (dot import) and needs no qualifier.
func wrapCall(w Wrapper, ident string, style WrapStyle, msg string, errVar string) (string, error) {
	sel := w.Name
	if ident != "" {
		sel = ident + "." + w.Name
	}

	switch style {
	case WrapStyleErrorf:
		format := strings.ReplaceAll(msg, "%", "%%") + ": %w"
		return sel + "(" + strconv.Quote(format) + ", " + errVar + ")", nil

	case WrapStyleWrap:
		return sel + "(" + errVar + ", " + strconv.Quote(msg) + ")", nil

	default:
		return "", fmt.Errorf("wrapper %s has unsupported call style %v", w, style)
	}
}
