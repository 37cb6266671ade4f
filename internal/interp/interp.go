package interp

import (
	"io"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/errors"
	"github.com/noxy-lang/noxy/internal/module"
	"github.com/noxy-lang/noxy/internal/token"
)

// maxCallDepth is the soft recursion cap named in spec.md §5: beyond this
// the interpreter reports a RuntimeError instead of exhausting the host
// stack.
const maxCallDepth = 10000

// FuncValue is a registered function together with the module namespace
// it was declared in. A call frame for this function always encloses
// Owner's global scope, never the caller's (spec.md §9 "Scoping model"),
// so Owner must travel with the declaration itself once it crosses a
// `use` boundary.
type FuncValue struct {
	Decl  *ast.FuncDecl
	Owner *ModuleNS
}

// ModuleNS is one source file's materialized runtime namespace: its
// top-level functions, structs, globals (evaluated exactly once), and the
// namespaces it has imported (spec.md §4.5 "Namespacing").
type ModuleNS struct {
	Funcs   map[string]*FuncValue
	Structs map[string]*ast.StructDecl
	Imports map[string]*ModuleNS
	Env     *Environment
	Source  string
}

func newModuleNS(source string) *ModuleNS {
	return &ModuleNS{
		Funcs:   make(map[string]*FuncValue),
		Structs: make(map[string]*ast.StructDecl),
		Imports: make(map[string]*ModuleNS),
		Env:     NewEnvironment(),
		Source:  source,
	}
}

// Interp evaluates an analyzed Noxy program (spec.md §4.4). It shares a
// *module.Loader with the static analyzer so `use` resolution and caching
// happen exactly once per canonical path, satisfying the "global runs
// exactly once" guarantee of §8 property 6.
type Interp struct {
	loader  *module.Loader
	modules map[string]*ModuleNS // canonical path -> materialized namespace
	out     io.Writer
	depth   int
}

// New creates an Interp. loader resolves `use` statements at runtime
// (reusing the cache already populated by analysis); out receives
// `print` output.
func New(loader *module.Loader, out io.Writer) *Interp {
	return &Interp{loader: loader, modules: make(map[string]*ModuleNS), out: out}
}

// Run evaluates prog's top-level statements as the program entry point.
// source backs diagnostic spans for runtime errors raised directly at
// top level.
func (it *Interp) Run(prog *ast.Program, source string) error {
	ns := newModuleNS(source)
	return it.execProgram(prog, ns)
}

// RunInto evaluates prog's top-level statements into an existing
// namespace, used by the REPL to keep accumulating global state across
// inputs (spec.md §6.1 "the REPL preserves the global scope").
func (it *Interp) RunInto(ns *ModuleNS, prog *ast.Program) error {
	return it.execProgram(prog, ns)
}

// NewTopLevelNS creates an empty namespace suitable for RunInto, for
// callers (the REPL) that need to hold it across multiple Run calls.
func NewTopLevelNS(source string) *ModuleNS { return newModuleNS(source) }

func (it *Interp) execProgram(prog *ast.Program, ns *ModuleNS) error {
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.StructDecl:
			ns.Structs[s.Name] = s
		case *ast.FuncDecl:
			if _, exists := ns.Funcs[s.Name]; !exists {
				ns.Funcs[s.Name] = &FuncValue{Decl: s, Owner: ns}
			}
		}
	}

	for _, stmt := range prog.Statements {
		switch stmt.(type) {
		case *ast.StructDecl, *ast.FuncDecl:
			// Already registered in the pass above.
		default:
			if _, err := it.evalStmt(ns.Env, ns, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

// materialize loads (if needed) and evaluates the module loaded found at
// a `use` path, caching by canonical path so a second import reuses the
// namespace without re-running its globals (spec.md §4.5, §8 property 6).
func (it *Interp) materialize(loaded *module.Loaded) (*ModuleNS, error) {
	if cached, ok := it.modules[loaded.CanonicalPath]; ok {
		return cached, nil
	}
	ns := newModuleNS(loaded.Source)
	it.modules[loaded.CanonicalPath] = ns
	if err := it.execProgram(loaded.Program, ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (it *Interp) runUseStmt(s *ast.UseStmt, ns *ModuleNS) error {
	file, dir, err := it.loader.Resolve(s.Path)
	if err != nil {
		return errors.New(errors.Module, s.Pos(), ns.Source, "%s", err)
	}

	switch s.Kind {
	case ast.ImportNamespace:
		modNS, err := it.materialize(file)
		if err != nil {
			return err
		}
		name := s.Path[len(s.Path)-1]
		if s.Alias != "" {
			name = s.Alias
		}
		ns.Imports[name] = modNS
	case ast.ImportWildcard:
		if dir != nil {
			for stem, loaded := range dir {
				childNS, err := it.materialize(loaded)
				if err != nil {
					return err
				}
				ns.Imports[stem] = childNS
			}
			return nil
		}
		modNS, err := it.materialize(file)
		if err != nil {
			return err
		}
		for name, cell := range modNS.Env.store {
			v := *cell
			ns.Env.Define(name, v)
		}
		for name, fn := range modNS.Funcs {
			ns.Funcs[name] = fn
		}
		for name, sd := range modNS.Structs {
			ns.Structs[name] = sd
		}
	case ast.ImportSelect:
		modNS, err := it.materialize(file)
		if err != nil {
			return err
		}
		for _, name := range s.Names {
			if fn, ok := modNS.Funcs[name]; ok {
				ns.Funcs[name] = fn
				continue
			}
			if sd, ok := modNS.Structs[name]; ok {
				ns.Structs[name] = sd
				continue
			}
			if v, ok := modNS.Env.Get(name); ok {
				ns.Env.Define(name, v)
				continue
			}
			return errors.New(errors.Module, s.Pos(), ns.Source, "module has no exported member '%s'", name)
		}
	}
	return nil
}

func runtimeErr(pos token.Position, source, format string, args ...any) error {
	return errors.New(errors.Runtime, pos, source, format, args...)
}
