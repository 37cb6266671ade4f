package interp

import (
	"fmt"

	"github.com/noxy-lang/noxy/internal/ast"
)

func (it *Interp) evalCallExpr(env *Environment, ns *ModuleNS, e *ast.CallExpr) (Value, error) {
	switch e.Resolved {
	case ast.CallBuiltin:
		name := e.Callee.(*ast.Identifier).Name
		return it.evalBuiltinCall(env, ns, name, e)
	case ast.CallConstructor:
		name := e.Callee.(*ast.Identifier).Name
		return it.evalConstructorCall(env, ns, name, e)
	case ast.CallFunction:
		fn, err := it.resolveCallee(ns, e.Callee)
		if err != nil {
			return nil, err
		}
		return it.callFunction(env, ns, fn, e)
	default:
		return nil, runtimeErr(e.Pos(), ns.Source, "call target did not resolve during analysis")
	}
}

// resolveCallee finds the FuncValue a CallExpr's callee names. The
// callee's Owner (captured at registration) determines the new frame's
// enclosing scope, not the namespace the call happens to occur in.
func (it *Interp) resolveCallee(ns *ModuleNS, callee ast.Expression) (*FuncValue, error) {
	switch c := callee.(type) {
	case *ast.Identifier:
		fn, ok := ns.Funcs[c.Name]
		if !ok {
			return nil, runtimeErr(c.Pos(), ns.Source, "call to undeclared function '%s'", c.Name)
		}
		return fn, nil
	case *ast.FieldAccessExpr:
		ident := c.Value.(*ast.Identifier)
		mod, ok := ns.Imports[ident.Name]
		if !ok {
			return nil, runtimeErr(c.Pos(), ns.Source, "undeclared module '%s'", ident.Name)
		}
		fn, ok := mod.Funcs[c.Field]
		if !ok {
			return nil, runtimeErr(c.Pos(), ns.Source, "module has no exported function '%s'", c.Field)
		}
		return fn, nil
	default:
		return nil, runtimeErr(callee.Pos(), ns.Source, "expression is not callable")
	}
}

// callFunction builds fn's call frame (spec.md §4.4.3): each argument is
// deep-copied into a fresh cell, except `ref`-mode parameters, which alias
// the caller's own storage cell directly. The frame encloses fn.Owner's
// global scope, never the caller's (no-closures rule, spec.md §9).
func (it *Interp) callFunction(env *Environment, callerNS *ModuleNS, fn *FuncValue, e *ast.CallExpr) (Value, error) {
	it.depth++
	defer func() { it.depth-- }()
	if it.depth > maxCallDepth {
		return nil, runtimeErr(e.Pos(), callerNS.Source, "stack overflow: call depth exceeded %d", maxCallDepth)
	}

	frame := NewEnclosedEnvironment(fn.Owner.Env)
	for i, param := range fn.Decl.Params {
		arg := e.Args[i]
		if param.ByRef {
			cell, err := it.evalLValueCell(env, callerNS, arg)
			if err != nil {
				return nil, err
			}
			frame.Bind(param.Name, cell)
			continue
		}
		val, err := it.evalExprHinted(env, callerNS, arg, resolveType(param.Type))
		if err != nil {
			return nil, err
		}
		frame.Define(param.Name, deepCopy(val))
	}

	sig, err := it.evalBlock(frame, fn.Owner, fn.Decl.Body)
	if err != nil {
		return nil, err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return VoidValue{}, nil
}

func (it *Interp) evalConstructorCall(env *Environment, ns *ModuleNS, name string, e *ast.CallExpr) (Value, error) {
	decl, ok := ns.Structs[name]
	if !ok {
		return nil, runtimeErr(e.Pos(), ns.Source, "undeclared struct '%s'", name)
	}
	fields := make(map[string]*Value, len(decl.Fields))
	for i, f := range decl.Fields {
		val, err := it.evalExprHinted(env, ns, e.Args[i], resolveType(f.Type))
		if err != nil {
			return nil, err
		}
		v := deepCopy(val)
		fields[f.Name] = &v
	}
	return StructValue{Instance: &StructInstance{TypeName: name, Fields: fields}}, nil
}

func (it *Interp) evalBuiltinCall(env *Environment, ns *ModuleNS, name string, e *ast.CallExpr) (Value, error) {
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.evalExpr(env, ns, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch name {
	case "print":
		fmt.Fprintln(it.out, ToDisplayString(args[0]))
		return VoidValue{}, nil
	case "to_str":
		return StringValue(ToDisplayString(args[0])), nil
	case "to_int":
		return IntValue(int64(args[0].(FloatValue))), nil
	case "to_float":
		return FloatValue(float64(args[0].(IntValue))), nil
	case "strlen":
		return IntValue(codePointCount(string(args[0].(StringValue)))), nil
	case "ord":
		runes := []rune(string(args[0].(StringValue)))
		if len(runes) != 1 {
			return nil, runtimeErr(e.Args[0].Pos(), ns.Source, "ord requires a single-character string, got %d characters", len(runes))
		}
		return IntValue(runes[0]), nil
	case "length":
		switch c := args[0].(type) {
		case *ArrayValue:
			return IntValue(len(c.Elements)), nil
		case *MapValue:
			return IntValue(len(c.Entries)), nil
		}
		return IntValue(0), nil
	case "append":
		arr := args[0].(*ArrayValue)
		v := deepCopy(args[1])
		arr.Elements = append(arr.Elements, &v)
		return VoidValue{}, nil
	case "pop":
		arr := args[0].(*ArrayValue)
		if len(arr.Elements) == 0 {
			return nil, runtimeErr(e.Args[0].Pos(), ns.Source, "pop on empty array")
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return *last, nil
	case "contains":
		arr := args[0].(*ArrayValue)
		for _, c := range arr.Elements {
			if valuesEqual(*c, args[1]) {
				return BoolValue(true), nil
			}
		}
		return BoolValue(false), nil
	case "has_key":
		m := args[0].(*MapValue)
		_, ok := m.Entries[mapKey(args[1])]
		return BoolValue(ok), nil
	case "delete":
		m := args[0].(*MapValue)
		delete(m.Entries, mapKey(args[1]))
		return VoidValue{}, nil
	case "keys":
		m := args[0].(*MapValue)
		elems := make([]*Value, 0, len(m.Entries))
		for k := range m.Entries {
			v := keyToValue(k)
			elems = append(elems, &v)
		}
		return &ArrayValue{ElemType: m.KeyType, Fixed: false, Elements: elems}, nil
	default:
		return nil, runtimeErr(e.Pos(), ns.Source, "unknown builtin '%s'", name)
	}
}

// keyToValue reverses mapKey, reconstructing a Value from a map's native Go
// key representation (used by `keys`).
func keyToValue(k any) Value {
	switch kv := k.(type) {
	case int64:
		return IntValue(kv)
	case string:
		return StringValue(kv)
	case bool:
		return BoolValue(kv)
	default:
		return VoidValue{}
	}
}
