// Package source parses Go files and resolves command line path arguments
// into lists of candidate files.
package source

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is a parsed Go source file together with its raw content.
type File struct {
	Path string
	Code []byte
	Ast  *ast.File
	Fset *token.FileSet
}

// ParseFile reads and parses a single file, keeping comments.
func ParseFile(path string) (*File, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return ParseCode(path, code)
}

// ParseCode parses in-memory content. The path only labels positions.
func ParseCode(path string, code []byte) (*File, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, code, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &File{
		Path: path,
		Code: code,
		Ast:  f,
		Fset: fset,
	}, nil
}

// Collect resolves path arguments into Go files. A plain file argument is
// taken as is, a directory is listed non-recursively and an argument ending
// with /... walks the whole tree. Test files are kept, testdata, vendor and
// _/. prefixed entries are not.
func Collect(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		recursive := false
		if strings.HasSuffix(arg, string(filepath.Separator)+"...") || strings.HasSuffix(arg, "/...") {
			recursive = true
			arg = strings.TrimSuffix(strings.TrimSuffix(arg, "..."), "/")
			if arg == "" {
				arg = "."
			}
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("access %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !strings.HasSuffix(arg, ".go") {
				return nil, fmt.Errorf("%s is not a Go file", arg)
			}
			add(arg)
			continue
		}

		if !recursive {
			entries, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", arg, err)
			}
			for _, entry := range entries {
				if entry.IsDir() || !isCandidate(entry.Name()) {
					continue
				}
				add(filepath.Join(arg, entry.Name()))
			}
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != arg && skipDir(name) {
					return filepath.SkipDir
				}
				return nil
			}
			if isCandidate(name) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	sort.Strings(files)

	return files, nil
}

func isCandidate(name string) bool {
	if !strings.HasSuffix(name, ".go") {
		return false
	}

	return !strings.HasPrefix(name, "_") && !strings.HasPrefix(name, ".")
}

func skipDir(name string) bool {
	switch name {
	case "testdata", "vendor":
		return true
	}

	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}
