// Package semantic implements Noxy's single-pass static analyzer
// (spec.md §4.3): struct/function registration, scope-checked variable
// declarations, assignment and call type checks, and reachability
// analysis for non-Void functions.
package semantic

import "github.com/noxy-lang/noxy/internal/types"

// Symbol is one variable binding tracked by a SymbolTable.
type Symbol struct {
	Name string
	Type types.Type
}

// SymbolTable is one lexical scope. Noxy has no closures (spec.md §9
// "Scoping model"): a function's parameter scope is enclosed directly by
// the global scope, never by whatever scope lexically surrounds the call.
type SymbolTable struct {
	symbols map[string]*Symbol
	outer   *SymbolTable
}

// NewSymbolTable creates the top-level (global) scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable creates a nested scope whose lookups fall back to
// outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol), outer: outer}
}

// Define binds name in the current scope. Returns false if name is already
// bound in this exact scope (shadowing an outer binding is allowed; a
// duplicate declaration in the same scope is not, per spec.md §4.3).
func (st *SymbolTable) Define(name string, typ types.Type) bool {
	if _, exists := st.symbols[name]; exists {
		return false
	}
	st.symbols[name] = &Symbol{Name: name, Type: typ}
	return true
}

// Resolve looks up name in this scope and, failing that, each enclosing
// scope in turn.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.outer != nil {
		return st.outer.Resolve(name)
	}
	return nil, false
}

// IsGlobal reports whether st is the outermost scope.
func (st *SymbolTable) IsGlobal() bool { return st.outer == nil }
