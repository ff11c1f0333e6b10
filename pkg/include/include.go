// Package include resolves the paths named by #include declarations and
// walks the include graph of a shader file.
//
// Paths starting with res:// are resolved against the project root. Other
// relative paths are tried next to the including file first, then in each
// search directory in order.
package include

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/parser"
)

// ResourcePrefix marks a path relative to the project root.
const ResourcePrefix = "res://"

// MaxIncludeDepth is the maximum allowed include nesting.
const MaxIncludeDepth = 64

// ErrNoProjectRoot is returned when a res:// path is resolved without a
// project root.
var ErrNoProjectRoot = errors.New("res:// path used but no project root is set")

// Resolver handles include path resolution.
type Resolver struct {
	ProjectRoot string         // directory res:// paths resolve against
	SearchPaths []string       // -I directories
	Options     parser.Options // used when parsing included files

	includeStack []string // files being walked, for cycle detection
}

// NewResolver creates a resolver for the project rooted at projectRoot,
// which may be empty.
func NewResolver(projectRoot string) *Resolver {
	return &Resolver{ProjectRoot: projectRoot}
}

// AddSearchPath adds a -I include directory.
func (r *Resolver) AddSearchPath(dir string) {
	r.SearchPaths = append(r.SearchPaths, dir)
}

// Resolve finds the file named by path as written in an include of from.
// It returns an absolute path.
func (r *Resolver) Resolve(path, from string) (string, error) {
	var candidates []string
	switch {
	case strings.HasPrefix(path, ResourcePrefix):
		if r.ProjectRoot == "" {
			return "", fmt.Errorf("%s: %w", path, ErrNoProjectRoot)
		}
		rel := filepath.FromSlash(strings.TrimPrefix(path, ResourcePrefix))
		candidates = append(candidates, filepath.Join(r.ProjectRoot, rel))
	case filepath.IsAbs(path):
		candidates = append(candidates, path)
	default:
		if from != "" {
			candidates = append(candidates, filepath.Join(filepath.Dir(from), path))
		}
		for _, dir := range r.SearchPaths {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}

	for _, c := range candidates {
		if fileExists(c) {
			return absPath(c), nil
		}
	}
	return "", &NotFoundError{Path: path, Searched: candidates}
}

// PushFile pushes path onto the include stack. It fails if the file is
// already being walked or the stack is too deep.
func (r *Resolver) PushFile(path string) error {
	abs := absPath(path)
	for _, f := range r.includeStack {
		if f == abs {
			return &CycleError{Path: abs, Stack: append([]string(nil), r.includeStack...)}
		}
	}
	if len(r.includeStack) >= MaxIncludeDepth {
		return fmt.Errorf("%s: include nesting deeper than %d", abs, MaxIncludeDepth)
	}
	r.includeStack = append(r.includeStack, abs)
	return nil
}

// PopFile removes the current file from the include stack.
func (r *Resolver) PopFile() {
	if len(r.includeStack) > 0 {
		r.includeStack = r.includeStack[:len(r.includeStack)-1]
	}
}

// IncludeStack returns the current include stack for error messages.
func (r *Resolver) IncludeStack() []string {
	return r.includeStack
}

// Dependency is one #include found while walking a file.
type Dependency struct {
	From     string // absolute path of the including file
	Line     int    // line of the include in From
	Path     string // path as written, without quotes
	Resolved string // absolute path; empty when resolution failed
	Err      error  // resolution, cycle, read or parse failure
}

// Walk parses file and, recursively, every file it includes. Dependencies
// are returned in depth-first order. A file reached twice is listed at
// each include but only walked once. Only a failure to read or parse file
// itself is returned as an error.
func (r *Resolver) Walk(file string) ([]Dependency, error) {
	abs := absPath(file)
	if err := r.PushFile(abs); err != nil {
		return nil, err
	}
	defer r.PopFile()

	var deps []Dependency
	visited := map[string]bool{abs: true}
	if err := r.walk(abs, visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Resolver) walk(file string, visited map[string]bool, deps *[]Dependency) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	tree, err := parser.ParseWithOptions(string(src), r.Options)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	for _, decl := range tree.Decls {
		inc, ok := decl.(*gdast.IncludeDecl)
		if !ok {
			continue
		}
		dep := Dependency{
			From: file,
			Line: lineAt(src, inc.Span().Start),
			Path: inc.File.Value(),
		}
		dep.Resolved, dep.Err = r.Resolve(dep.Path, file)
		if dep.Err == nil {
			dep.Err = r.PushFile(dep.Resolved)
		}

		i := len(*deps)
		*deps = append(*deps, dep)
		if dep.Err != nil {
			continue
		}
		if !visited[dep.Resolved] {
			visited[dep.Resolved] = true
			if err := r.walk(dep.Resolved, visited, deps); err != nil {
				(*deps)[i].Err = err
			}
		}
		r.PopFile()
	}
	return nil
}

// NotFoundError indicates that an include file was not found.
type NotFoundError struct {
	Path     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	return "include file not found: " + e.Path
}

// CycleError indicates a circular include dependency.
type CycleError struct {
	Path  string
	Stack []string
}

func (e *CycleError) Error() string {
	var sb strings.Builder
	sb.WriteString("circular include detected: ")
	sb.WriteString(e.Path)
	sb.WriteString("\ninclude stack:\n")
	for i, f := range e.Stack {
		sb.WriteString(strings.Repeat("  ", i+1))
		sb.WriteString(filepath.Base(f))
		sb.WriteString("\n")
	}
	return sb.String()
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func lineAt(src []byte, offset int) int {
	return strings.Count(string(src[:offset]), "\n") + 1
}
