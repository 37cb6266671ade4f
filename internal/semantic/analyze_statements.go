package semantic

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/types"
)

// analyzeGlobalStmt checks a top-level `global` declaration and installs it
// in the global scope (spec.md §4.3, §4.4.2).
func (a *Analyzer) analyzeGlobalStmt(s *ast.GlobalStmt) {
	declared := a.resolveTypeExpr(s.Type)
	if a.failed() {
		return
	}
	initType := a.inferTypeHinted(a.globals, s.Value, declared)
	if a.failed() {
		return
	}
	if !types.AssignableTo(initType, declared) {
		a.fail(s.Pos(), "cannot assign '%s' to variable '%s' declared '%s'", initType, s.Name, declared)
		return
	}
	if !a.globals.Define(s.Name, declared) {
		a.fail(s.Pos(), "'%s' is already declared at top level", s.Name)
	}
}

// analyzeUseStmt implements spec.md §4.5: resolves the import through the
// configured Importer and binds either a namespace identifier or selected
// symbols into scope.
func (a *Analyzer) analyzeUseStmt(s *ast.UseStmt, scope *SymbolTable) {
	if a.importer == nil {
		a.failModule(s.Pos(), "module imports are not available in this context")
		return
	}
	resolved, err := a.importer.Import(s.Path)
	if err != nil {
		a.failModule(s.Pos(), "%s", err)
		return
	}

	switch s.Kind {
	case ast.ImportNamespace:
		if resolved.File == nil {
			a.fail(s.Pos(), "'%s' is a directory; only 'select *' may import a directory", joinPath(s.Path))
			return
		}
		name := s.Path[len(s.Path)-1]
		if s.Alias != "" {
			name = s.Alias
		}
		a.imports[name] = resolved.File
	case ast.ImportWildcard:
		if resolved.Dir != nil {
			for name, mod := range resolved.Dir {
				a.imports[name] = mod
			}
			return
		}
		mod := resolved.File
		for name, t := range mod.Globals {
			if !scope.Define(name, t) {
				a.fail(s.Pos(), "import of '%s' conflicts with an existing declaration", name)
				return
			}
		}
		for name := range mod.Funcs {
			a.funcs[name] = mod.Funcs[name]
		}
		for name := range mod.Structs {
			a.structs[name] = mod.Structs[name]
		}
	case ast.ImportSelect:
		if resolved.File == nil {
			a.fail(s.Pos(), "'%s' is a directory; select a single file to import names from it", joinPath(s.Path))
			return
		}
		mod := resolved.File
		for _, name := range s.Names {
			if t, ok := mod.Globals[name]; ok {
				if !scope.Define(name, t) {
					a.fail(s.Pos(), "import of '%s' conflicts with an existing declaration", name)
					return
				}
				continue
			}
			if fn, ok := mod.Funcs[name]; ok {
				a.funcs[name] = fn
				continue
			}
			if st, ok := mod.Structs[name]; ok {
				a.structs[name] = st
				continue
			}
			a.fail(s.Pos(), "module has no exported member '%s'", name)
			return
		}
	}
}

func joinPath(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}

// analyzeFuncBody checks a function's parameter scope, body, and (for
// non-Void functions) reachability.
func (a *Analyzer) analyzeFuncBody(fd *ast.FuncDecl) {
	info := a.funcs[fd.Name]
	a.currentFunc = info
	defer func() { a.currentFunc = nil }()

	scope := NewEnclosedSymbolTable(a.globals)
	for _, p := range info.Params {
		if !scope.Define(p.Name, p.Type) {
			a.fail(fd.Pos(), "duplicate parameter name '%s' in function '%s'", p.Name, fd.Name)
			return
		}
	}

	a.analyzeBlock(scope, fd.Body)
	if a.failed() {
		return
	}

	if !types.IsVoid(info.ReturnType) && !alwaysReturns(fd.Body.Statements) {
		a.fail(fd.Pos(), "function '%s' does not return a value on all paths", fd.Name)
	}
}

// analyzeBlock checks every statement of a block in its own nested scope.
func (a *Analyzer) analyzeBlock(outer *SymbolTable, block *ast.BlockStmt) {
	scope := NewEnclosedSymbolTable(outer)
	for _, stmt := range block.Statements {
		if a.failed() {
			return
		}
		a.analyzeStmt(scope, stmt)
	}
}

func (a *Analyzer) analyzeStmt(scope *SymbolTable, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		a.analyzeLetStmt(scope, s)
	case *ast.IfStmt:
		a.analyzeIfStmt(scope, s)
	case *ast.WhileStmt:
		a.analyzeWhileStmt(scope, s)
	case *ast.ReturnStmt:
		a.analyzeReturnStmt(scope, s)
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.fail(s.Pos(), "'break' outside of a loop")
		}
	case *ast.AssignStmt:
		a.analyzeAssignStmt(scope, s)
	case *ast.ExpressionStmt:
		a.inferType(scope, s.Expr)
	case *ast.GlobalStmt, *ast.UseStmt, *ast.FuncDecl, *ast.StructDecl:
		a.fail(stmt.Pos(), "declaration not valid inside a function body")
	default:
		a.fail(stmt.Pos(), "unsupported statement")
	}
}

func (a *Analyzer) analyzeLetStmt(scope *SymbolTable, s *ast.LetStmt) {
	declared := a.resolveTypeExpr(s.Type)
	if a.failed() {
		return
	}
	initType := a.inferTypeHinted(scope, s.Value, declared)
	if a.failed() {
		return
	}
	if !types.AssignableTo(initType, declared) {
		a.fail(s.Pos(), "cannot assign '%s' to variable '%s' declared '%s'", initType, s.Name, declared)
		return
	}
	if !scope.Define(s.Name, declared) {
		a.fail(s.Pos(), "'%s' is already declared in this scope", s.Name)
	}
}

func (a *Analyzer) analyzeIfStmt(scope *SymbolTable, s *ast.IfStmt) {
	condType := a.inferType(scope, s.Condition)
	if a.failed() {
		return
	}
	if !types.Equal(condType, types.Bool) {
		a.fail(s.Condition.Pos(), "'if' condition must be Bool, got '%s'", condType)
		return
	}
	a.analyzeBlock(scope, s.Then)
	if a.failed() || s.Else == nil {
		return
	}
	a.analyzeBlock(scope, s.Else)
}

func (a *Analyzer) analyzeWhileStmt(scope *SymbolTable, s *ast.WhileStmt) {
	condType := a.inferType(scope, s.Condition)
	if a.failed() {
		return
	}
	if !types.Equal(condType, types.Bool) {
		a.fail(s.Condition.Pos(), "'while' condition must be Bool, got '%s'", condType)
		return
	}
	a.loopDepth++
	a.analyzeBlock(scope, s.Body)
	a.loopDepth--
}

func (a *Analyzer) analyzeReturnStmt(scope *SymbolTable, s *ast.ReturnStmt) {
	want := types.Void
	if a.currentFunc != nil {
		want = a.currentFunc.ReturnType
	}
	if s.Value == nil {
		if !types.IsVoid(want) {
			a.fail(s.Pos(), "function must return a value of type '%s'", want)
		}
		return
	}
	got := a.inferTypeHinted(scope, s.Value, want)
	if a.failed() {
		return
	}
	if !types.AssignableTo(got, want) {
		a.fail(s.Value.Pos(), "return type '%s' does not match declared return type '%s'", got, want)
	}
}

func (a *Analyzer) analyzeAssignStmt(scope *SymbolTable, s *ast.AssignStmt) {
	if !isLValue(s.Target) {
		a.fail(s.Target.Pos(), "invalid assignment target")
		return
	}
	targetType := a.inferType(scope, s.Target)
	if a.failed() {
		return
	}
	valType := a.inferTypeHinted(scope, s.Value, targetType)
	if a.failed() {
		return
	}
	if !types.AssignableTo(valType, targetType) {
		a.fail(s.Pos(), "cannot assign '%s' to target of type '%s'", valType, targetType)
	}
}
