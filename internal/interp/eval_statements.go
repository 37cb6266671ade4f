package interp

import (
	"github.com/noxy-lang/noxy/internal/ast"
)

// evalBlock runs a block's statements in a fresh nested scope (spec.md
// §3.3), stopping early on the first non-sigNone signal or error.
func (it *Interp) evalBlock(env *Environment, ns *ModuleNS, block *ast.BlockStmt) (signal, error) {
	inner := NewEnclosedEnvironment(env)
	for _, stmt := range block.Statements {
		sig, err := it.evalStmt(inner, ns, stmt)
		if err != nil {
			return normalSignal, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return normalSignal, nil
}

func (it *Interp) evalStmt(env *Environment, ns *ModuleNS, stmt ast.Statement) (signal, error) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		val, err := it.evalExprHinted(env, ns, s.Value, resolveType(s.Type))
		if err != nil {
			return normalSignal, err
		}
		env.Define(s.Name, deepCopy(val))
		return normalSignal, nil

	case *ast.GlobalStmt:
		// Reached for every top-level `global`, and installs into
		// whatever env this statement runs against (the module's top-level
		// env, since the analyzer restricts `global` to top level).
		val, err := it.evalExprHinted(env, ns, s.Value, resolveType(s.Type))
		if err != nil {
			return normalSignal, err
		}
		env.Define(s.Name, deepCopy(val))
		return normalSignal, nil

	case *ast.IfStmt:
		cond, err := it.evalExpr(env, ns, s.Condition)
		if err != nil {
			return normalSignal, err
		}
		if bool(cond.(BoolValue)) {
			return it.evalBlock(env, ns, s.Then)
		}
		if s.Else != nil {
			return it.evalBlock(env, ns, s.Else)
		}
		return normalSignal, nil

	case *ast.WhileStmt:
		for {
			cond, err := it.evalExpr(env, ns, s.Condition)
			if err != nil {
				return normalSignal, err
			}
			if !bool(cond.(BoolValue)) {
				break
			}
			sig, err := it.evalBlock(env, ns, s.Body)
			if err != nil {
				return normalSignal, err
			}
			switch sig.kind {
			case sigBreak:
				return normalSignal, nil
			case sigReturn:
				return sig, nil
			}
		}
		return normalSignal, nil

	case *ast.ReturnStmt:
		if s.Value == nil {
			return returnSignal(VoidValue{}), nil
		}
		val, err := it.evalExpr(env, ns, s.Value)
		if err != nil {
			return normalSignal, err
		}
		return returnSignal(deepCopy(val)), nil

	case *ast.BreakStmt:
		return breakSignal(), nil

	case *ast.AssignStmt:
		val, err := it.evalExpr(env, ns, s.Value)
		if err != nil {
			return normalSignal, err
		}
		cell, err := it.evalLValueCell(env, ns, s.Target)
		if err != nil {
			return normalSignal, err
		}
		*cell = deepCopy(val)
		return normalSignal, nil

	case *ast.ExpressionStmt:
		_, err := it.evalExpr(env, ns, s.Expr)
		return normalSignal, err

	case *ast.UseStmt:
		return normalSignal, it.runUseStmt(s, ns)

	default:
		return normalSignal, runtimeErr(stmt.Pos(), ns.Source, "unsupported statement")
	}
}
