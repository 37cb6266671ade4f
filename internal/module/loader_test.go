package module

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveFileModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "greet.nx", `
func hello() -> string
  return "hi"
end
`)
	l := NewLoader(dir)
	file, children, err := l.Resolve([]string{"greet"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if children != nil {
		t.Fatalf("expected file resolution, got dir children %+v", children)
	}
	if file == nil || file.Program == nil {
		t.Fatal("expected a loaded file with a parsed program")
	}
}

func TestResolveCachesByCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "counter.nx", `
global n: int = 0
`)
	l := NewLoader(dir)
	first, _, err := l.Resolve([]string{"counter"})
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := l.Resolve([]string{"counter"})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the second Resolve of the same module to return the cached *Loaded")
	}
}

func TestResolveDirectoryModule(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "a.nx", "global a: int = 1\n")
	writeFile(t, sub, "b.nx", "global b: int = 2\n")

	l := NewLoader(dir)
	file, children, err := l.Resolve([]string{"pkg"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if file != nil {
		t.Fatalf("expected directory resolution, got file %+v", file)
	}
	if len(children) != 2 || children["a"] == nil || children["b"] == nil {
		t.Fatalf("children = %+v, want a and b", children)
	}
}

func TestResolveModuleNotFound(t *testing.T) {
	l := NewLoader(t.TempDir())
	_, _, err := l.Resolve([]string{"does", "not", "exist"})
	if err == nil {
		t.Fatal("expected an error for a missing module")
	}
}

func TestResolveCircularImportDetected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.nx", "use b\n")
	writeFile(t, dir, "b.nx", "use a\n")

	l := NewLoader(dir)
	_, _, err := l.Resolve([]string{"a"})
	if err == nil {
		t.Fatal("expected a circular import error")
	}
}

func TestResolveSearchesRootsInOrder(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, rootA, "shared.nx", "global from_a: bool = true\n")
	writeFile(t, rootB, "shared.nx", "global from_b: bool = true\n")

	l := NewLoader(rootA, rootB)
	file, _, err := l.Resolve([]string{"shared"})
	if err != nil {
		t.Fatal(err)
	}
	canonicalA, _ := filepath.Abs(filepath.Join(rootA, "shared.nx"))
	if file.CanonicalPath != filepath.Clean(canonicalA) {
		t.Errorf("resolved %s, want the first root's copy %s", file.CanonicalPath, canonicalA)
	}
}
