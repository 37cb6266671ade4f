package interp

// Environment is a scope in the evaluator's chain: the global scope for
// top-level `global` bindings, and one enclosed scope per call frame and
// per nested block (spec.md §4.4.2, §9 "Scoping model"). Names are bound
// to *Value cells, not bare Values, so that a `ref`-mode parameter can
// alias the caller's storage exactly (see Bind) instead of copying.
type Environment struct {
	store map[string]*Value
	outer *Environment
}

// NewEnvironment creates a root environment with no outer scope: the
// global scope of a program.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]*Value)}
}

// NewEnclosedEnvironment creates a scope nested inside outer. Per spec.md
// §9's no-closures rule, a function call frame's outer is always the
// global environment, never the caller's lexical scope; blocks (if/while
// bodies) enclose their containing scope normally.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]*Value), outer: outer}
}

// Get looks up name in this scope, then outer scopes.
func (e *Environment) Get(name string) (Value, bool) {
	cell, ok := e.cell(name)
	if !ok {
		return nil, false
	}
	return *cell, true
}

func (e *Environment) cell(name string) (*Value, bool) {
	if c, ok := e.store[name]; ok {
		return c, true
	}
	if e.outer != nil {
		return e.outer.cell(name)
	}
	return nil, false
}

// Set assigns val to name's existing binding, wherever in the scope chain
// it was declared. Reports false if name is undeclared (should not occur
// once the static analyzer has accepted the program).
func (e *Environment) Set(name string, val Value) bool {
	cell, ok := e.cell(name)
	if !ok {
		return false
	}
	*cell = val
	return true
}

// Define introduces name as a new binding in this exact scope, boxing val
// in a fresh cell (`let`/`global` and parameter binding).
func (e *Environment) Define(name string, val Value) {
	v := val
	e.store[name] = &v
}

// Bind installs an existing cell directly under name in this scope, so
// mutations through name and through the original binding are the same
// storage. Used for `ref T` parameters (spec.md §4.4.3, SPEC_FULL.md §A).
func (e *Environment) Bind(name string, cell *Value) {
	e.store[name] = cell
}

// Cell exposes name's storage cell for aliasing (e.g. a `ref T` argument
// forwarded from one call frame into another). ok is false if name is
// unbound in this scope chain.
func (e *Environment) Cell(name string) (cell *Value, ok bool) {
	return e.cell(name)
}
