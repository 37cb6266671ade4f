package semantic

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/errors"
	"github.com/noxy-lang/noxy/internal/token"
	"github.com/noxy-lang/noxy/internal/types"
)

// Analyzer performs semantic analysis on a parsed Noxy program: struct and
// function registration, scope-checked declarations, assignment/call type
// checks, and reachability analysis (spec.md §4.3).
type Analyzer struct {
	globals *SymbolTable
	structs map[string]*StructInfo
	funcs   map[string]*FuncInfo
	imports map[string]*Module // alias/leaf name -> imported namespace

	importer Importer
	source   string

	currentFunc *FuncInfo
	loopDepth   int

	err *errors.Diagnostic
}

// NewAnalyzer creates an Analyzer with no module importer; `use`
// statements fail with ModuleError if encountered.
func NewAnalyzer(source string) *Analyzer {
	return &Analyzer{
		globals: NewSymbolTable(),
		structs: make(map[string]*StructInfo),
		funcs:   make(map[string]*FuncInfo),
		imports: make(map[string]*Module),
		source:  source,
	}
}

// NewAnalyzerWithImporter creates an Analyzer able to resolve `use`
// statements through imp (spec.md §4.5).
func NewAnalyzerWithImporter(source string, imp Importer) *Analyzer {
	a := NewAnalyzer(source)
	a.importer = imp
	return a
}

// Err returns the first diagnostic reported, or nil on success.
func (a *Analyzer) Err() *errors.Diagnostic { return a.err }

func (a *Analyzer) failed() bool { return a.err != nil }

func (a *Analyzer) fail(pos token.Position, format string, args ...any) {
	if a.err != nil {
		return
	}
	a.err = errors.New(errors.Type, pos, a.source, format, args...)
}

// failModule reports a `use`-resolution failure as a ModuleError rather
// than a TypeError (spec.md §7).
func (a *Analyzer) failModule(pos token.Position, format string, args ...any) {
	if a.err != nil {
		return
	}
	a.err = errors.New(errors.Module, pos, a.source, format, args...)
}

// Seed pre-populates a fresh Analyzer with a prior Module's exports, so a
// later analysis pass can resolve structs, functions, and globals declared
// in an earlier one. Used by the REPL driver, which preserves the global
// scope across separately analyzed inputs (spec.md §6.1).
func (a *Analyzer) Seed(mod *Module) {
	for name, info := range mod.Funcs {
		a.funcs[name] = info
	}
	for name, info := range mod.Structs {
		a.structs[name] = info
	}
	for name, t := range mod.Globals {
		a.globals.Define(name, t)
	}
}

// Exports returns the Module surface of this analyzed file: every
// top-level func, struct, and global (spec.md §4.5 "Namespacing").
func (a *Analyzer) Exports() *Module {
	globals := make(map[string]types.Type)
	for name, sym := range a.globals.symbols {
		globals[name] = sym.Type
	}
	return &Module{Funcs: a.funcs, Structs: a.structs, Globals: globals}
}

// Analyze runs the full single pass described in spec.md §4.3 and returns
// the first error encountered, if any.
func (a *Analyzer) Analyze(prog *ast.Program) *errors.Diagnostic {
	a.registerStructs(prog)
	if a.failed() {
		return a.err
	}
	a.resolveStructFields(prog)
	if a.failed() {
		return a.err
	}
	a.registerFuncs(prog)
	if a.failed() {
		return a.err
	}

	for _, stmt := range prog.Statements {
		if a.failed() {
			break
		}
		switch s := stmt.(type) {
		case *ast.StructDecl, *ast.FuncDecl:
			// Already handled in the registration passes above.
		case *ast.GlobalStmt:
			a.analyzeGlobalStmt(s)
		case *ast.UseStmt:
			a.analyzeUseStmt(s, a.globals)
		case *ast.ReturnStmt:
			a.fail(stmt.Pos(), "'return' is only valid inside a function body")
		default:
			// Top-level scripts may also contain ordinary statements
			// (let, if, while, assignment, bare expressions), executed in
			// declaration order alongside 'global'/'use' (spec.md §8 seed
			// tests run top-level 'print'/'let' directly).
			a.analyzeStmt(a.globals, s)
		}
	}

	if a.failed() {
		return a.err
	}

	for _, stmt := range prog.Statements {
		if a.failed() {
			break
		}
		if fd, ok := stmt.(*ast.FuncDecl); ok {
			a.analyzeFuncBody(fd)
		}
	}

	return a.err
}

// registerStructs pre-declares every struct name so that mutually
// referencing fields (through `ref`) resolve regardless of declaration
// order.
func (a *Analyzer) registerStructs(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		sd, ok := stmt.(*ast.StructDecl)
		if !ok {
			continue
		}
		if _, exists := a.structs[sd.Name]; exists {
			a.fail(sd.Pos(), "struct '%s' already declared", sd.Name)
			return
		}
		a.structs[sd.Name] = &StructInfo{Name: sd.Name, FieldTypes: make(map[string]types.Type)}
	}
}

// resolveStructFields fills in each registered struct's field types, now
// that every struct name is known. A field naming its own struct directly
// (not through `ref`) is rejected (spec.md §4.3).
func (a *Analyzer) resolveStructFields(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		sd, ok := stmt.(*ast.StructDecl)
		if !ok {
			continue
		}
		info := a.structs[sd.Name]
		for _, f := range sd.Fields {
			if named, ok := f.Type.(*ast.NamedTypeExpr); ok && named.Name == sd.Name {
				a.fail(f.Type.Pos(), "field '%s' of struct '%s' directly embeds itself; use 'ref %s'", f.Name, sd.Name, sd.Name)
				return
			}
			ft := a.resolveTypeExpr(f.Type)
			if a.failed() {
				return
			}
			if _, dup := info.FieldTypes[f.Name]; dup {
				a.fail(f.Type.Pos(), "duplicate field '%s' in struct '%s'", f.Name, sd.Name)
				return
			}
			info.FieldOrder = append(info.FieldOrder, f.Name)
			info.FieldTypes[f.Name] = ft
		}
	}
}

// registerFuncs pre-declares every function signature so call sites may
// reference functions declared later in the file, including recursively.
func (a *Analyzer) registerFuncs(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		fd, ok := stmt.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if _, exists := a.funcs[fd.Name]; exists {
			a.fail(fd.Pos(), "function '%s' already declared", fd.Name)
			return
		}
		params := make([]ParamInfo, len(fd.Params))
		for i, p := range fd.Params {
			params[i] = ParamInfo{Name: p.Name, Type: a.resolveTypeExpr(p.Type), ByRef: p.ByRef}
			if a.failed() {
				return
			}
		}
		var ret types.Type = types.Void
		if fd.ReturnType != nil {
			ret = a.resolveTypeExpr(fd.ReturnType)
			if a.failed() {
				return
			}
		}
		a.funcs[fd.Name] = &FuncInfo{Name: fd.Name, Params: params, ReturnType: ret}
	}
}
