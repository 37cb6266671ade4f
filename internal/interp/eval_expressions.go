package interp

import (
	"unicode/utf8"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/types"
)

// evalExpr evaluates expr with no contextual type hint (spec.md §4.4.1).
func (it *Interp) evalExpr(env *Environment, ns *ModuleNS, expr ast.Expression) (Value, error) {
	return it.evalExprHinted(env, ns, expr, nil)
}

// evalExprHinted evaluates expr, using hint to resolve the expression
// forms whose runtime shape depends on context: array literals, map
// literals and `zeros(n)` (mirrors internal/semantic's inferTypeHinted).
func (it *Interp) evalExprHinted(env *Environment, ns *ModuleNS, expr ast.Expression, hint types.Type) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return IntValue(e.Value), nil
	case *ast.FloatLiteral:
		return FloatValue(e.Value), nil
	case *ast.StringLiteral:
		return StringValue(e.Value), nil
	case *ast.BooleanLiteral:
		return BoolValue(e.Value), nil
	case *ast.NullLiteral:
		return RefValue{}, nil
	case *ast.FStringLiteral:
		return it.evalFString(env, ns, e)
	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, runtimeErr(e.Pos(), ns.Source, "undeclared identifier '%s'", e.Name)
		}
		return v, nil
	case *ast.ArrayLiteral:
		return it.evalArrayLiteral(env, ns, e, hint)
	case *ast.MapLiteral:
		return it.evalMapLiteral(env, ns, e, hint)
	case *ast.ZerosExpr:
		return it.evalZeros(env, ns, e, hint)
	case *ast.RefExpr:
		return it.evalRefExpr(env, ns, e)
	case *ast.UnaryExpr:
		return it.evalUnaryExpr(env, ns, e)
	case *ast.BinaryExpr:
		return it.evalBinaryExpr(env, ns, e)
	case *ast.CallExpr:
		return it.evalCallExpr(env, ns, e)
	case *ast.FieldAccessExpr:
		return it.evalFieldAccess(env, ns, e)
	case *ast.IndexExpr:
		return it.evalIndexExpr(env, ns, e)
	case *ast.GroupedExpr:
		return it.evalExprHinted(env, ns, e.Inner, hint)
	default:
		return nil, runtimeErr(expr.Pos(), ns.Source, "unsupported expression")
	}
}

func (it *Interp) evalArrayLiteral(env *Environment, ns *ModuleNS, e *ast.ArrayLiteral, hint types.Type) (Value, error) {
	var elemHint types.Type
	fixed := false
	var size int64
	switch h := hint.(type) {
	case types.FixedArrayType:
		elemHint, fixed, size = h.Elem, true, h.Size
	case types.DynamicArrayType:
		elemHint = h.Elem
	}

	elems := make([]*Value, len(e.Elements))
	var elemType types.Type
	for i, el := range e.Elements {
		v, err := it.evalExprHinted(env, ns, el, elemHint)
		if err != nil {
			return nil, err
		}
		v = deepCopy(v)
		elems[i] = &v
		if elemType == nil {
			elemType = v.Type()
		}
	}
	if elemType == nil {
		elemType = elemHint
	}
	return &ArrayValue{ElemType: elemType, Fixed: fixed, Size: size, Elements: elems}, nil
}

func (it *Interp) evalMapLiteral(env *Environment, ns *ModuleNS, e *ast.MapLiteral, hint types.Type) (Value, error) {
	var keyHint, valHint types.Type
	if h, ok := hint.(types.MapType); ok {
		keyHint, valHint = h.Key, h.Value
	}

	entries := make(map[any]*Value, len(e.Entries))
	var keyType, valType types.Type
	for _, entry := range e.Entries {
		k, err := it.evalExprHinted(env, ns, entry.Key, keyHint)
		if err != nil {
			return nil, err
		}
		v, err := it.evalExprHinted(env, ns, entry.Value, valHint)
		if err != nil {
			return nil, err
		}
		v = deepCopy(v)
		entries[mapKey(k)] = &v
		if keyType == nil {
			keyType, valType = k.Type(), v.Type()
		}
	}
	if keyType == nil {
		keyType, valType = keyHint, valHint
	}
	return &MapValue{KeyType: keyType, ValType: valType, Entries: entries}, nil
}

func (it *Interp) evalZeros(env *Environment, ns *ModuleNS, e *ast.ZerosExpr, hint types.Type) (Value, error) {
	countVal, err := it.evalExpr(env, ns, e.Count)
	if err != nil {
		return nil, err
	}
	n := int64(countVal.(IntValue))
	fixed, ok := hint.(types.FixedArrayType)
	if !ok {
		fixed = types.FixedArrayType{Elem: types.Void, Size: n}
	}
	elems := make([]*Value, n)
	for i := range elems {
		v := it.zeroValue(ns, fixed.Elem)
		elems[i] = &v
	}
	return &ArrayValue{ElemType: fixed.Elem, Fixed: true, Size: n, Elements: elems}, nil
}

func (it *Interp) evalRefExpr(env *Environment, ns *ModuleNS, e *ast.RefExpr) (Value, error) {
	v, err := it.evalExpr(env, ns, e.Target)
	if err != nil {
		return nil, err
	}
	sv, ok := v.(StructValue)
	if !ok {
		return nil, runtimeErr(e.Pos(), ns.Source, "'ref' target is not a struct instance")
	}
	return RefValue{TypeName: sv.Instance.TypeName, Target: sv.Instance}, nil
}

func (it *Interp) evalUnaryExpr(env *Environment, ns *ModuleNS, e *ast.UnaryExpr) (Value, error) {
	v, err := it.evalExpr(env, ns, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "!":
		return BoolValue(!bool(v.(BoolValue))), nil
	case "-":
		switch n := v.(type) {
		case IntValue:
			return IntValue(-n), nil
		case FloatValue:
			return FloatValue(-n), nil
		}
	}
	return nil, runtimeErr(e.Pos(), ns.Source, "invalid unary operator '%s'", e.Operator)
}

func (it *Interp) evalBinaryExpr(env *Environment, ns *ModuleNS, e *ast.BinaryExpr) (Value, error) {
	switch e.Operator {
	case "&":
		l, err := it.evalExpr(env, ns, e.Left)
		if err != nil {
			return nil, err
		}
		if !bool(l.(BoolValue)) {
			return BoolValue(false), nil
		}
		r, err := it.evalExpr(env, ns, e.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(bool(r.(BoolValue))), nil
	case "|":
		l, err := it.evalExpr(env, ns, e.Left)
		if err != nil {
			return nil, err
		}
		if bool(l.(BoolValue)) {
			return BoolValue(true), nil
		}
		r, err := it.evalExpr(env, ns, e.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(bool(r.(BoolValue))), nil
	}

	l, err := it.evalExpr(env, ns, e.Left)
	if err != nil {
		return nil, err
	}
	r, err := it.evalExpr(env, ns, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "+":
		if ls, ok := l.(StringValue); ok {
			return ls + r.(StringValue), nil
		}
		return arith(e, l, r, ns.Source)
	case "-", "*", "/", "%":
		return arith(e, l, r, ns.Source)
	case "==":
		return BoolValue(valuesEqual(l, r)), nil
	case "!=":
		return BoolValue(!valuesEqual(l, r)), nil
	case "<", ">", "<=", ">=":
		return compare(e, l, r, ns.Source)
	}
	return nil, runtimeErr(e.Pos(), ns.Source, "unsupported binary operator '%s'", e.Operator)
}

func arith(e *ast.BinaryExpr, l, r Value, source string) (Value, error) {
	switch lv := l.(type) {
	case IntValue:
		rv := r.(IntValue)
		switch e.Operator {
		case "+":
			return lv + rv, nil
		case "-":
			return lv - rv, nil
		case "*":
			return lv * rv, nil
		case "/":
			if rv == 0 {
				return nil, runtimeErr(e.Pos(), source, "division by zero")
			}
			return lv / rv, nil
		case "%":
			if rv == 0 {
				return nil, runtimeErr(e.Pos(), source, "division by zero")
			}
			return lv % rv, nil
		}
	case FloatValue:
		rv := r.(FloatValue)
		switch e.Operator {
		case "+":
			return lv + rv, nil
		case "-":
			return lv - rv, nil
		case "*":
			return lv * rv, nil
		case "/":
			return lv / rv, nil
		}
	}
	return nil, runtimeErr(e.Pos(), source, "unsupported operand types for '%s'", e.Operator)
}

func compare(e *ast.BinaryExpr, l, r Value, source string) (Value, error) {
	var lt bool
	var eq bool
	switch lv := l.(type) {
	case IntValue:
		rv := r.(IntValue)
		lt, eq = lv < rv, lv == rv
	case FloatValue:
		rv := r.(FloatValue)
		lt, eq = lv < rv, lv == rv
	case StringValue:
		rv := r.(StringValue)
		lt, eq = lv < rv, lv == rv
	default:
		return nil, runtimeErr(e.Pos(), source, "'%s' requires orderable operands", e.Operator)
	}
	switch e.Operator {
	case "<":
		return BoolValue(lt), nil
	case ">":
		return BoolValue(!lt && !eq), nil
	case "<=":
		return BoolValue(lt || eq), nil
	case ">=":
		return BoolValue(!lt), nil
	}
	return nil, runtimeErr(e.Pos(), source, "unsupported comparison operator '%s'", e.Operator)
}

func (it *Interp) evalFieldAccess(env *Environment, ns *ModuleNS, e *ast.FieldAccessExpr) (Value, error) {
	if e.IsModuleAccess {
		ident := e.Value.(*ast.Identifier)
		mod := ns.Imports[ident.Name]
		v, ok := mod.Env.Get(e.Field)
		if !ok {
			return nil, runtimeErr(e.Pos(), ns.Source, "module has no exported member '%s'", e.Field)
		}
		return v, nil
	}
	v, err := it.evalExpr(env, ns, e.Value)
	if err != nil {
		return nil, err
	}
	inst, err := structInstanceOf(e, v, ns.Source)
	if err != nil {
		return nil, err
	}
	cell, ok := inst.Fields[e.Field]
	if !ok {
		return nil, runtimeErr(e.Pos(), ns.Source, "struct '%s' has no field '%s'", inst.TypeName, e.Field)
	}
	return *cell, nil
}

func structInstanceOf(e ast.Node, v Value, source string) (*StructInstance, error) {
	switch val := v.(type) {
	case StructValue:
		return val.Instance, nil
	case RefValue:
		if val.IsNull() {
			return nil, runtimeErr(e.Pos(), source, "null-reference access")
		}
		return val.Target, nil
	default:
		return nil, runtimeErr(e.Pos(), source, "value is not a struct or struct reference")
	}
}

func (it *Interp) evalIndexExpr(env *Environment, ns *ModuleNS, e *ast.IndexExpr) (Value, error) {
	container, err := it.evalExpr(env, ns, e.Value)
	if err != nil {
		return nil, err
	}
	idxVal, err := it.evalExpr(env, ns, e.Index)
	if err != nil {
		return nil, err
	}

	switch c := container.(type) {
	case *ArrayValue:
		i := int64(idxVal.(IntValue))
		if i < 0 || i >= int64(len(c.Elements)) {
			return nil, runtimeErr(e.Pos(), ns.Source, "array index %d out of bounds (length %d)", i, len(c.Elements))
		}
		return *c.Elements[i], nil
	case *MapValue:
		key := mapKey(idxVal)
		cell, ok := c.Entries[key]
		if !ok {
			return nil, runtimeErr(e.Pos(), ns.Source, "map has no entry for key '%v'", idxVal)
		}
		return *cell, nil
	case StringValue:
		i := int64(idxVal.(IntValue))
		runes := []rune(string(c))
		if i < 0 || i >= int64(len(runes)) {
			return nil, runtimeErr(e.Pos(), ns.Source, "string index %d out of bounds (length %d)", i, len(runes))
		}
		return StringValue(string(runes[i])), nil
	default:
		return nil, runtimeErr(e.Pos(), ns.Source, "value is not indexable")
	}
}

// evalLValueCell resolves expr's addressable storage cell: used by
// assignment and by-ref argument binding (spec.md §4.4.2, §4.4.3).
func (it *Interp) evalLValueCell(env *Environment, ns *ModuleNS, expr ast.Expression) (*Value, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		cell, ok := env.Cell(e.Name)
		if !ok {
			return nil, runtimeErr(e.Pos(), ns.Source, "undeclared identifier '%s'", e.Name)
		}
		return cell, nil
	case *ast.FieldAccessExpr:
		v, err := it.evalExpr(env, ns, e.Value)
		if err != nil {
			return nil, err
		}
		inst, err := structInstanceOf(e, v, ns.Source)
		if err != nil {
			return nil, err
		}
		cell, ok := inst.Fields[e.Field]
		if !ok {
			return nil, runtimeErr(e.Pos(), ns.Source, "struct '%s' has no field '%s'", inst.TypeName, e.Field)
		}
		return cell, nil
	case *ast.IndexExpr:
		container, err := it.evalExpr(env, ns, e.Value)
		if err != nil {
			return nil, err
		}
		idxVal, err := it.evalExpr(env, ns, e.Index)
		if err != nil {
			return nil, err
		}
		switch c := container.(type) {
		case *ArrayValue:
			i := int64(idxVal.(IntValue))
			if i < 0 || i >= int64(len(c.Elements)) {
				return nil, runtimeErr(e.Pos(), ns.Source, "array index %d out of bounds (length %d)", i, len(c.Elements))
			}
			return c.Elements[i], nil
		case *MapValue:
			key := mapKey(idxVal)
			if cell, ok := c.Entries[key]; ok {
				return cell, nil
			}
			v := it.zeroValue(ns, c.ValType)
			cell := &v
			c.Entries[key] = cell
			return cell, nil
		default:
			return nil, runtimeErr(e.Pos(), ns.Source, "value is not assignable by index")
		}
	default:
		return nil, runtimeErr(expr.Pos(), ns.Source, "invalid assignment target")
	}
}

func (it *Interp) evalFString(env *Environment, ns *ModuleNS, lit *ast.FStringLiteral) (Value, error) {
	var sb []byte
	for _, part := range lit.Parts() {
		if part.Hole == nil {
			sb = append(sb, part.Literal...)
			continue
		}
		v, err := it.evalExpr(env, ns, part.Hole.Expr)
		if err != nil {
			return nil, err
		}
		sb = append(sb, RenderHole(v, part.Hole.Spec)...)
	}
	return StringValue(sb), nil
}

// codePointCount is used by `strlen`; kept here alongside other rune-aware
// expression helpers.
func codePointCount(s string) int {
	return utf8.RuneCountInString(s)
}
