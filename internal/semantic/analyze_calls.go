package semantic

import (
	"fmt"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/format"
	"github.com/noxy-lang/noxy/internal/types"
)

// builtinArity lists builtin argument counts (spec.md §6.3). isBuiltinName
// uses it to recognize builtin callees, and the arity check uses it to produce
// a good error message before type-checking each position.
var builtinArity = map[string]int{
	"print": 1, "to_str": 1, "to_int": 1, "to_float": 1,
	"strlen": 1, "ord": 1, "length": 1,
	"append": 2, "pop": 1, "contains": 2,
	"has_key": 2, "keys": 1, "delete": 2,
}

func isBuiltinName(name string) bool {
	_, ok := builtinArity[name]
	return ok
}

func (a *Analyzer) analyzeCallExpr(scope *SymbolTable, e *ast.CallExpr) types.Type {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if isBuiltinName(callee.Name) {
			e.Resolved = ast.CallBuiltin
			return a.analyzeBuiltinCall(scope, callee.Name, e)
		}
		if info, ok := a.structs[callee.Name]; ok {
			e.Resolved = ast.CallConstructor
			return a.analyzeConstructorCall(scope, info, e)
		}
		if info, ok := a.funcs[callee.Name]; ok {
			e.Resolved = ast.CallFunction
			return a.analyzeFunctionCall(scope, info, e)
		}
		a.fail(e.Pos(), "call to undeclared function '%s'", callee.Name)
		return types.Void
	case *ast.FieldAccessExpr:
		ident, ok := callee.Value.(*ast.Identifier)
		if !ok {
			a.fail(e.Pos(), "expression is not callable")
			return types.Void
		}
		mod, isMod := a.imports[ident.Name]
		if !isMod {
			a.fail(e.Pos(), "expression is not callable")
			return types.Void
		}
		callee.IsModuleAccess = true
		info, ok := mod.Funcs[callee.Field]
		if !ok {
			a.fail(e.Pos(), "module has no exported function '%s'", callee.Field)
			return types.Void
		}
		e.Resolved = ast.CallFunction
		return a.analyzeFunctionCall(scope, info, e)
	default:
		a.fail(e.Pos(), "expression is not callable")
		return types.Void
	}
}

func (a *Analyzer) analyzeFunctionCall(scope *SymbolTable, info *FuncInfo, e *ast.CallExpr) types.Type {
	if len(e.Args) != len(info.Params) {
		a.fail(e.Pos(), "function '%s' expects %d argument(s), got %d", info.Name, len(info.Params), len(e.Args))
		return types.Void
	}
	for i, arg := range e.Args {
		param := info.Params[i]
		at := a.inferTypeHinted(scope, arg, param.Type)
		if a.failed() {
			return types.Void
		}
		if !types.AssignableTo(at, param.Type) {
			a.fail(arg.Pos(), "argument %d to '%s' has type '%s', expected '%s'", i+1, info.Name, at, param.Type)
			return types.Void
		}
		if param.ByRef && !isLValue(arg) {
			a.fail(arg.Pos(), "argument %d to '%s' binds by reference and requires an l-value", i+1, info.Name)
			return types.Void
		}
	}
	return info.ReturnType
}

func (a *Analyzer) analyzeConstructorCall(scope *SymbolTable, info *StructInfo, e *ast.CallExpr) types.Type {
	if len(e.Args) != len(info.FieldOrder) {
		a.fail(e.Pos(), "constructor '%s' expects %d argument(s), got %d", info.Name, len(info.FieldOrder), len(e.Args))
		return types.Void
	}
	for i, arg := range e.Args {
		fieldName := info.FieldOrder[i]
		fieldType := info.FieldTypes[fieldName]
		at := a.inferTypeHinted(scope, arg, fieldType)
		if a.failed() {
			return types.Void
		}
		if !types.AssignableTo(at, fieldType) {
			a.fail(arg.Pos(), "constructor '%s' field '%s' expects '%s', got '%s'", info.Name, fieldName, fieldType, at)
			return types.Void
		}
	}
	return types.StructType{Name: info.Name}
}

func (a *Analyzer) analyzeBuiltinCall(scope *SymbolTable, name string, e *ast.CallExpr) types.Type {
	wantArgs := builtinArity[name]
	if len(e.Args) != wantArgs {
		a.fail(e.Pos(), "'%s' expects %d argument(s), got %d", name, wantArgs, len(e.Args))
		return types.Void
	}
	argType := func(i int) types.Type {
		t := a.inferType(scope, e.Args[i])
		return t
	}

	switch name {
	case "print", "to_str":
		argType(0)
		if name == "print" {
			return types.Void
		}
		return types.String
	case "to_int":
		t := argType(0)
		if !a.failed() && !types.Equal(t, types.Float) {
			a.fail(e.Args[0].Pos(), "to_int requires a Float argument, got '%s'", t)
		}
		return types.Int
	case "to_float":
		t := argType(0)
		if !a.failed() && !types.Equal(t, types.Int) {
			a.fail(e.Args[0].Pos(), "to_float requires an Int argument, got '%s'", t)
		}
		return types.Float
	case "strlen":
		t := argType(0)
		if !a.failed() && !types.Equal(t, types.String) {
			a.fail(e.Args[0].Pos(), "strlen requires a String argument, got '%s'", t)
		}
		return types.Int
	case "ord":
		t := argType(0)
		if !a.failed() && !types.Equal(t, types.String) {
			a.fail(e.Args[0].Pos(), "ord requires a String argument, got '%s'", t)
		}
		return types.Int
	case "length":
		t := argType(0)
		if !a.failed() && !types.IsContainer(t) {
			a.fail(e.Args[0].Pos(), "length requires an array or map argument, got '%s'", t)
		}
		return types.Int
	case "append":
		container := argType(0)
		dyn, ok := container.(types.DynamicArrayType)
		if !ok {
			a.fail(e.Args[0].Pos(), "append requires a dynamic array as its first argument, got '%s'", container)
			return types.Void
		}
		valueArg := e.Args[1]
		elem := a.inferTypeHinted(scope, valueArg, dyn.Elem)
		if !a.failed() && !types.Equal(elem, dyn.Elem) {
			a.fail(valueArg.Pos(), "append element has type '%s', expected '%s'", elem, dyn.Elem)
		}
		return types.Void
	case "pop":
		container := argType(0)
		dyn, ok := container.(types.DynamicArrayType)
		if !ok {
			a.fail(e.Args[0].Pos(), "pop requires a dynamic array argument, got '%s'", container)
			return types.Void
		}
		return dyn.Elem
	case "contains":
		container := argType(0)
		var elemType types.Type
		switch c := container.(type) {
		case types.DynamicArrayType:
			elemType = c.Elem
		case types.FixedArrayType:
			elemType = c.Elem
		default:
			a.fail(e.Args[0].Pos(), "contains requires an array argument, got '%s'", container)
			return types.Bool
		}
		needle := a.inferTypeHinted(scope, e.Args[1], elemType)
		if !a.failed() && !types.Equal(needle, elemType) {
			a.fail(e.Args[1].Pos(), "contains element has type '%s', expected '%s'", needle, elemType)
		}
		return types.Bool
	case "has_key", "delete":
		container := argType(0)
		m, ok := container.(types.MapType)
		if !ok {
			a.fail(e.Args[0].Pos(), "%s requires a map argument, got '%s'", name, container)
			return boolOrVoid(name)
		}
		key := a.inferTypeHinted(scope, e.Args[1], m.Key)
		if !a.failed() && !types.Equal(key, m.Key) {
			a.fail(e.Args[1].Pos(), "%s key has type '%s', expected '%s'", name, key, m.Key)
		}
		return boolOrVoid(name)
	case "keys":
		container := argType(0)
		m, ok := container.(types.MapType)
		if !ok {
			a.fail(e.Args[0].Pos(), "keys requires a map argument, got '%s'", container)
			return types.DynamicArrayType{Elem: types.Void}
		}
		return types.DynamicArrayType{Elem: m.Key}
	default:
		a.fail(e.Pos(), "unknown builtin '%s'", name)
		return types.Void
	}
}

func boolOrVoid(name string) types.Type {
	if name == "has_key" {
		return types.Bool
	}
	return types.Void
}

// analyzeFString type-checks every hole expression and its format spec
// (spec.md §4.3 "F-string holes").
func (a *Analyzer) analyzeFString(scope *SymbolTable, lit *ast.FStringLiteral) types.Type {
	for _, part := range lit.Parts() {
		if part.Hole == nil {
			continue
		}
		t := a.inferType(scope, part.Hole.Expr)
		if a.failed() {
			return types.Void
		}
		if err := checkFormatSpec(part.Hole.Spec, t); err != nil {
			a.fail(part.Hole.Expr.Pos(), "%s", err)
			return types.Void
		}
	}
	return types.String
}

// checkFormatSpec validates a hole's format spec against its expression's
// static type (spec.md §4.3, §6.2).
func checkFormatSpec(spec string, t types.Type) error {
	if spec == "" {
		return nil
	}
	f := format.Parse(spec)
	switch f.Kind {
	case 'x', 'X', 'o':
		if !types.Equal(t, types.Int) {
			return fmt.Errorf("format spec '%s' requires an Int value, got '%s'", spec, t)
		}
		if f.HasPrecision {
			return fmt.Errorf("format spec '%s': precision is only valid with a float spec", spec)
		}
	case 'f', 'e', 'g':
		if !types.Equal(t, types.Float) {
			return fmt.Errorf("format spec '%s' requires a Float value, got '%s'", spec, t)
		}
	case 0:
		if f.HasPrecision && !types.Equal(t, types.Float) {
			return fmt.Errorf("format spec '%s': precision is only valid with a float spec", spec)
		}
	}
	return nil
}
