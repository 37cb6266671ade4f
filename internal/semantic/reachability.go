package semantic

import "github.com/noxy-lang/noxy/internal/ast"

// alwaysReturns implements spec.md §4.3's reachability pass for functions
// with a non-Void return type: every `if` requires both branches return;
// `while true` with no `break` is considered to always return; otherwise
// the statement sequence must terminate with a `return`.
func alwaysReturns(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		if stmtAlwaysReturns(stmt) {
			return true
		}
	}
	return false
}

func stmtAlwaysReturns(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		if s.Else == nil {
			return false
		}
		return alwaysReturns(s.Then.Statements) && alwaysReturns(s.Else.Statements)
	case *ast.WhileStmt:
		if lit, ok := s.Condition.(*ast.BooleanLiteral); ok && lit.Value {
			return !containsBreak(s.Body.Statements)
		}
		return false
	default:
		return false
	}
}

// containsBreak reports whether a `break` targeting the nearest enclosing
// loop appears anywhere in stmts, descending into `if` branches but not
// into a nested `while` (whose own break belongs to it, not the outer
// loop).
func containsBreak(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.BreakStmt:
			return true
		case *ast.IfStmt:
			if containsBreak(s.Then.Statements) {
				return true
			}
			if s.Else != nil && containsBreak(s.Else.Statements) {
				return true
			}
		}
	}
	return false
}
