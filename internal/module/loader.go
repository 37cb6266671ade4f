// Package module implements Noxy's `use` resolution, caching, and cycle
// detection (spec.md §4.5). A Loader parses and statically analyzes each
// module file on first import and serves subsequent imports of the same
// canonical path from cache, satisfying the "global runs exactly once"
// and "no re-parsing" guarantees of spec.md §8 property 6 and §9 "Module
// cache".
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/lexer"
	"github.com/noxy-lang/noxy/internal/parser"
	"github.com/noxy-lang/noxy/internal/semantic"
)

// Loaded is one fully analyzed module: its exported surface plus the
// program body, retained so the evaluator can run its top-level globals
// exactly once (spec.md §8 property 6).
type Loaded struct {
	CanonicalPath string
	Program       *ast.Program
	Source        string
	Exports       *semantic.Module
}

// Loader resolves `use` paths against an ordered list of search roots
// (the importing file's directory by convention first, with a standard
// library root as fallback — spec.md §4.5).
type Loader struct {
	roots []string

	files   map[string]*Loaded            // canonical file path -> loaded module
	dirs    map[string]map[string]*Loaded // canonical dir path -> child stem -> loaded module
	loading map[string]bool               // canonical path currently being loaded (cycle detection)
}

// NewLoader creates a Loader searching roots in order for each `use` path.
func NewLoader(roots ...string) *Loader {
	return &Loader{
		roots:   roots,
		files:   make(map[string]*Loaded),
		dirs:    make(map[string]map[string]*Loaded),
		loading: make(map[string]bool),
	}
}

// Import implements semantic.Importer. path is the dot-separated segment
// list from a `use` statement.
func (l *Loader) Import(path []string) (*semantic.Resolved, error) {
	file, dir, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}
	if file != nil {
		return &semantic.Resolved{File: file.Exports}, nil
	}
	children := make(map[string]*semantic.Module, len(dir))
	for stem, loaded := range dir {
		children[stem] = loaded.Exports
	}
	return &semantic.Resolved{Dir: children}, nil
}

// Resolve locates the file or directory module for path and returns its
// full Loaded entry (program, source, and exports), not just the static
// surface Import exposes. The evaluator uses this to run a module's
// top-level statements, which Analyze never does.
func (l *Loader) Resolve(path []string) (file *Loaded, dir map[string]*Loaded, err error) {
	rel := filepath.Join(path...)

	for _, root := range l.roots {
		filePath := filepath.Join(root, rel+".nx")
		if fi, statErr := os.Stat(filePath); statErr == nil && !fi.IsDir() {
			loaded, loadErr := l.loadFile(filePath)
			if loadErr != nil {
				return nil, nil, loadErr
			}
			return loaded, nil, nil
		}

		dirPath := filepath.Join(root, rel)
		if fi, statErr := os.Stat(dirPath); statErr == nil && fi.IsDir() {
			children, loadErr := l.loadDir(dirPath)
			if loadErr != nil {
				return nil, nil, loadErr
			}
			return nil, children, nil
		}
	}

	return nil, nil, fmt.Errorf("ModuleNotFound: %s", strings.Join(path, "."))
}

// loadFile parses, analyzes, and caches the module at filePath, returning
// the cached entry on repeat calls without re-parsing.
func (l *Loader) loadFile(filePath string) (*Loaded, error) {
	canonical, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path '%s': %w", filePath, err)
	}
	canonical = filepath.Clean(canonical)

	if cached, ok := l.files[canonical]; ok {
		return cached, nil
	}
	if l.loading[canonical] {
		return nil, fmt.Errorf("CircularImport: %s", canonical)
	}

	content, err := os.ReadFile(canonical)
	if err != nil {
		return nil, fmt.Errorf("cannot read module '%s': %w", canonical, err)
	}
	source := string(content)

	l.loading[canonical] = true
	defer delete(l.loading, canonical)

	lx := lexer.New(canonical, source)
	p := parser.New(lx, canonical, source)
	prog := p.ParseProgram()
	if p.Err() != nil {
		return nil, fmt.Errorf("%s", p.Err().Error())
	}

	childRoots := append([]string{filepath.Dir(canonical)}, l.roots...)
	childLoader := &Loader{roots: childRoots, files: l.files, dirs: l.dirs, loading: l.loading}

	analyzer := semantic.NewAnalyzerWithImporter(source, childLoader)
	if diag := analyzer.Analyze(prog); diag != nil {
		return nil, fmt.Errorf("%s", diag.Error())
	}

	loaded := &Loaded{CanonicalPath: canonical, Program: prog, Source: source, Exports: analyzer.Exports()}
	l.files[canonical] = loaded
	return loaded, nil
}

// loadDir loads every `.nx` file directly inside dirPath, keyed by file
// stem, for the `use path select *` directory form (spec.md §4.5).
func (l *Loader) loadDir(dirPath string) (map[string]*Loaded, error) {
	canonical, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path '%s': %w", dirPath, err)
	}
	canonical = filepath.Clean(canonical)

	if cached, ok := l.dirs[canonical]; ok {
		return cached, nil
	}

	entries, err := os.ReadDir(canonical)
	if err != nil {
		return nil, fmt.Errorf("cannot read module directory '%s': %w", canonical, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	result := make(map[string]*Loaded)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".nx") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".nx")
		loaded, err := l.loadFile(filepath.Join(canonical, entry.Name()))
		if err != nil {
			return nil, err
		}
		result[stem] = loaded
	}
	l.dirs[canonical] = result
	return result, nil
}
