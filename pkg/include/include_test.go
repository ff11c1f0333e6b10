package include

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolver_Resolve_RelativeToIncludingFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "lib", "noise.gdshaderinc"), "// noise")

	r := NewResolver("")
	path, err := r.Resolve("lib/noise.gdshaderinc", filepath.Join(tmpDir, "water.gdshader"))
	if err != nil {
		t.Fatalf("expected to find noise.gdshaderinc, got error: %v", err)
	}
	if path != filepath.Join(tmpDir, "lib", "noise.gdshaderinc") {
		t.Errorf("unexpected path %s", path)
	}
}

func TestResolver_Resolve_SearchPath(t *testing.T) {
	shaderDir := t.TempDir()
	libDir := t.TempDir()
	writeFile(t, filepath.Join(libDir, "util.gdshaderinc"), "// util")

	r := NewResolver("")
	r.AddSearchPath(libDir)

	path, err := r.Resolve("util.gdshaderinc", filepath.Join(shaderDir, "a.gdshader"))
	if err != nil {
		t.Fatalf("expected to find util.gdshaderinc, got error: %v", err)
	}
	if filepath.Dir(path) != libDir {
		t.Errorf("expected file in %s, got %s", libDir, path)
	}
}

func TestResolver_Resolve_SearchOrder(t *testing.T) {
	shaderDir := t.TempDir()
	libDir := t.TempDir()
	writeFile(t, filepath.Join(shaderDir, "common.gdshaderinc"), "local")
	writeFile(t, filepath.Join(libDir, "common.gdshaderinc"), "lib")

	r := NewResolver("")
	r.AddSearchPath(libDir)

	path, err := r.Resolve("common.gdshaderinc", filepath.Join(shaderDir, "a.gdshader"))
	if err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "local" {
		t.Errorf("include should find the including file's directory first, got %s", content)
	}
}

func TestResolver_Resolve_ResourcePath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shaders", "inc", "light.gdshaderinc"), "// light")

	r := NewResolver(root)
	path, err := r.Resolve("res://shaders/inc/light.gdshaderinc", filepath.Join(root, "elsewhere", "a.gdshader"))
	if err != nil {
		t.Fatalf("expected to resolve res:// path, got error: %v", err)
	}
	if path != filepath.Join(root, "shaders", "inc", "light.gdshaderinc") {
		t.Errorf("unexpected path %s", path)
	}
}

func TestResolver_Resolve_ResourcePathWithoutRoot(t *testing.T) {
	r := NewResolver("")
	_, err := r.Resolve("res://a.gdshaderinc", "")
	if !errors.Is(err, ErrNoProjectRoot) {
		t.Fatalf("expected ErrNoProjectRoot, got %v", err)
	}
}

func TestResolver_Resolve_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	r := NewResolver("")
	r.AddSearchPath(tmpDir)

	_, err := r.Resolve("missing.gdshaderinc", filepath.Join(tmpDir, "a.gdshader"))
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Path != "missing.gdshaderinc" {
		t.Errorf("expected path missing.gdshaderinc, got %s", nf.Path)
	}
	if len(nf.Searched) != 2 {
		t.Errorf("expected 2 searched locations, got %v", nf.Searched)
	}
}

func TestResolver_Resolve_DirectoryIsNotAFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, "dir.gdshaderinc"), 0755); err != nil {
		t.Fatal(err)
	}
	r := NewResolver("")
	if _, err := r.Resolve("dir.gdshaderinc", filepath.Join(tmpDir, "a.gdshader")); err == nil {
		t.Error("expected a directory not to resolve")
	}
}

func TestResolver_CircularInclude(t *testing.T) {
	r := NewResolver("")

	for _, f := range []string{"/a.gdshaderinc", "/b.gdshaderinc", "/c.gdshaderinc"} {
		if err := r.PushFile(f); err != nil {
			t.Fatal(err)
		}
	}

	err := r.PushFile("/a.gdshaderinc")
	if err == nil {
		t.Fatal("expected circular include error")
	}
	cycle, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if len(cycle.Stack) != 3 {
		t.Errorf("expected stack of 3, got %v", cycle.Stack)
	}
}

func TestResolver_IncludeStack(t *testing.T) {
	r := NewResolver("")

	if len(r.IncludeStack()) != 0 {
		t.Error("initial stack should be empty")
	}
	r.PushFile("/a.gdshaderinc")
	r.PushFile("/b.gdshaderinc")
	if len(r.IncludeStack()) != 2 {
		t.Error("stack should hold 2 files")
	}
	r.PopFile()
	r.PopFile()
	r.PopFile()
	if len(r.IncludeStack()) != 0 {
		t.Error("stack should be empty after pops")
	}
}

func TestResolver_Walk(t *testing.T) {
	root := t.TempDir()
	main := filepath.Join(root, "main.gdshader")
	writeFile(t, main, `shader_type spatial;
#include "a.gdshaderinc"

#include "res://lib/c.gdshaderinc"
#include "missing.gdshaderinc"
`)
	writeFile(t, filepath.Join(root, "a.gdshaderinc"), `#include "res://lib/c.gdshaderinc"`)
	writeFile(t, filepath.Join(root, "lib", "c.gdshaderinc"), `float c() { return 1.0; }`)

	deps, err := NewResolver(root).Walk(main)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	want := []struct {
		path string
		line int
		ok   bool
	}{
		{"a.gdshaderinc", 2, true},
		{"res://lib/c.gdshaderinc", 1, true},
		{"res://lib/c.gdshaderinc", 4, true},
		{"missing.gdshaderinc", 5, false},
	}
	if len(deps) != len(want) {
		t.Fatalf("expected %d dependencies, got %d: %+v", len(want), len(deps), deps)
	}
	for i, w := range want {
		d := deps[i]
		if d.Path != w.path || d.Line != w.line || (d.Err == nil) != w.ok {
			t.Errorf("dependency %d: expected %s line %d ok=%v, got %s line %d err=%v", i, w.path, w.line, w.ok, d.Path, d.Line, d.Err)
		}
	}
	if deps[1].From != filepath.Join(root, "a.gdshaderinc") {
		t.Errorf("expected second dependency to come from a.gdshaderinc, got %s", deps[1].From)
	}
	if deps[1].Resolved != filepath.Join(root, "lib", "c.gdshaderinc") {
		t.Errorf("unexpected resolution %s", deps[1].Resolved)
	}
}

func TestResolver_Walk_Cycle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.gdshaderinc"), `#include "b.gdshaderinc"`)
	writeFile(t, filepath.Join(root, "b.gdshaderinc"), `#include "a.gdshaderinc"`)

	r := NewResolver(root)
	deps, err := r.Walk(filepath.Join(root, "a.gdshaderinc"))
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(deps) != 2 {
		t.Fatalf("expected 2 dependencies, got %+v", deps)
	}
	if deps[0].Err != nil {
		t.Errorf("a -> b should resolve, got %v", deps[0].Err)
	}
	var cycle *CycleError
	if !errors.As(deps[1].Err, &cycle) {
		t.Errorf("b -> a should be a cycle, got %v", deps[1].Err)
	}
	if len(r.IncludeStack()) != 0 {
		t.Errorf("stack should be empty after Walk, got %v", r.IncludeStack())
	}
}

func TestResolver_Walk_MissingRoot(t *testing.T) {
	_, err := NewResolver("").Walk(filepath.Join(t.TempDir(), "nope.gdshader"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
