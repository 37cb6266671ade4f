package semantic

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/types"
)

// inferType bottom-up infers an expression's static type with no
// contextual hint (spec.md §4.3).
func (a *Analyzer) inferType(scope *SymbolTable, expr ast.Expression) types.Type {
	return a.inferTypeHinted(scope, expr, nil)
}

// inferTypeHinted infers expr's type, using hint to resolve expressions
// whose type depends on context: array literals, map literals and `zeros(n)` (spec.md
// §4.4.1).
func (a *Analyzer) inferTypeHinted(scope *SymbolTable, expr ast.Expression, hint types.Type) types.Type {
	if a.failed() {
		return types.Void
	}
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.Int
	case *ast.FloatLiteral:
		return types.Float
	case *ast.StringLiteral:
		return types.String
	case *ast.BooleanLiteral:
		return types.Bool
	case *ast.NullLiteral:
		return types.Null
	case *ast.FStringLiteral:
		return a.analyzeFString(scope, e)
	case *ast.Identifier:
		if mod, ok := a.imports[e.Name]; ok && mod != nil {
			return types.Void // namespace identifiers are only valid on the left of '.'
		}
		sym, ok := scope.Resolve(e.Name)
		if !ok {
			a.fail(e.Pos(), "undeclared identifier '%s'", e.Name)
			return types.Void
		}
		return sym.Type
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(scope, e, hint)
	case *ast.MapLiteral:
		return a.analyzeMapLiteral(scope, e, hint)
	case *ast.ZerosExpr:
		return a.analyzeZeros(scope, e, hint)
	case *ast.RefExpr:
		return a.analyzeRefExpr(scope, e)
	case *ast.UnaryExpr:
		return a.analyzeUnaryExpr(scope, e)
	case *ast.BinaryExpr:
		return a.analyzeBinaryExpr(scope, e)
	case *ast.CallExpr:
		return a.analyzeCallExpr(scope, e)
	case *ast.FieldAccessExpr:
		return a.analyzeFieldAccess(scope, e)
	case *ast.IndexExpr:
		return a.analyzeIndexExpr(scope, e)
	case *ast.GroupedExpr:
		return a.inferTypeHinted(scope, e.Inner, hint)
	default:
		a.fail(expr.Pos(), "unsupported expression")
		return types.Void
	}
}

func (a *Analyzer) analyzeArrayLiteral(scope *SymbolTable, e *ast.ArrayLiteral, hint types.Type) types.Type {
	var elemHint types.Type
	if hint != nil {
		switch h := hint.(type) {
		case types.FixedArrayType:
			elemHint = h.Elem
		case types.DynamicArrayType:
			elemHint = h.Elem
		}
	}

	var elemType types.Type
	for _, el := range e.Elements {
		t := a.inferTypeHinted(scope, el, elemHint)
		if a.failed() {
			return types.Void
		}
		if elemType == nil {
			elemType = t
		} else if !types.Equal(elemType, t) {
			a.fail(el.Pos(), "array literal element type '%s' does not match preceding element type '%s'", t, elemType)
			return types.Void
		}
	}
	if elemType == nil {
		if elemHint != nil {
			elemType = elemHint
		} else {
			a.fail(e.Pos(), "cannot infer element type of empty array literal without context")
			return types.Void
		}
	}

	if fixed, ok := hint.(types.FixedArrayType); ok {
		if int64(len(e.Elements)) != fixed.Size {
			a.fail(e.Pos(), "array literal has %d elements, expected %d", len(e.Elements), fixed.Size)
			return types.Void
		}
		return types.FixedArrayType{Elem: elemType, Size: fixed.Size}
	}
	return types.DynamicArrayType{Elem: elemType}
}

// analyzeMapLiteral checks `{k: v, ...}` (spec.md §3.1): every key must be
// hashable and share one type, every value must share one type, and the
// empty literal `{}` needs a Map-typed context to resolve its element
// types, mirroring analyzeArrayLiteral's empty-literal handling.
func (a *Analyzer) analyzeMapLiteral(scope *SymbolTable, e *ast.MapLiteral, hint types.Type) types.Type {
	var keyHint, valHint types.Type
	if h, ok := hint.(types.MapType); ok {
		keyHint, valHint = h.Key, h.Value
	}

	var keyType, valType types.Type
	for _, entry := range e.Entries {
		kt := a.inferTypeHinted(scope, entry.Key, keyHint)
		if a.failed() {
			return types.Void
		}
		if !types.IsHashableKey(kt) {
			a.fail(entry.Key.Pos(), "map key type '%s' is not hashable", kt)
			return types.Void
		}
		vt := a.inferTypeHinted(scope, entry.Value, valHint)
		if a.failed() {
			return types.Void
		}
		if keyType == nil {
			keyType, valType = kt, vt
			continue
		}
		if !types.Equal(keyType, kt) {
			a.fail(entry.Key.Pos(), "map literal key type '%s' does not match preceding key type '%s'", kt, keyType)
			return types.Void
		}
		if !types.Equal(valType, vt) {
			a.fail(entry.Value.Pos(), "map literal value type '%s' does not match preceding value type '%s'", vt, valType)
			return types.Void
		}
	}

	if keyType == nil {
		if keyHint == nil {
			a.fail(e.Pos(), "cannot infer key/value types of empty map literal without context")
			return types.Void
		}
		keyType, valType = keyHint, valHint
	}
	return types.MapType{Key: keyType, Value: valType}
}

func (a *Analyzer) analyzeZeros(scope *SymbolTable, e *ast.ZerosExpr, hint types.Type) types.Type {
	countType := a.inferType(scope, e.Count)
	if a.failed() {
		return types.Void
	}
	if !types.Equal(countType, types.Int) {
		a.fail(e.Count.Pos(), "zeros(n) requires an Int argument, got '%s'", countType)
		return types.Void
	}
	if fixed, ok := hint.(types.FixedArrayType); ok {
		return fixed
	}
	a.fail(e.Pos(), "zeros(n) requires a fixed-array-typed context")
	return types.Void
}

// analyzeRefExpr implements spec.md §4.3: `ref x` is valid only when x is
// a struct-typed l-value.
func (a *Analyzer) analyzeRefExpr(scope *SymbolTable, e *ast.RefExpr) types.Type {
	if !isLValue(e.Target) {
		a.fail(e.Target.Pos(), "'ref' requires an l-value operand")
		return types.Void
	}
	t := a.inferType(scope, e.Target)
	if a.failed() {
		return types.Void
	}
	if !types.IsStruct(t) {
		a.fail(e.Target.Pos(), "'ref' requires a struct-typed operand, got '%s'", t)
		return types.Void
	}
	return types.RefType{Inner: t}
}

func (a *Analyzer) analyzeUnaryExpr(scope *SymbolTable, e *ast.UnaryExpr) types.Type {
	t := a.inferType(scope, e.Operand)
	if a.failed() {
		return types.Void
	}
	switch e.Operator {
	case "!":
		if !types.Equal(t, types.Bool) {
			a.fail(e.Pos(), "'!' requires a Bool operand, got '%s'", t)
			return types.Void
		}
		return types.Bool
	case "-":
		if !types.IsNumeric(t) {
			a.fail(e.Pos(), "unary '-' requires a numeric operand, got '%s'", t)
			return types.Void
		}
		return t
	default:
		a.fail(e.Pos(), "unknown unary operator '%s'", e.Operator)
		return types.Void
	}
}

func (a *Analyzer) analyzeBinaryExpr(scope *SymbolTable, e *ast.BinaryExpr) types.Type {
	lt := a.inferType(scope, e.Left)
	if a.failed() {
		return types.Void
	}
	rt := a.inferType(scope, e.Right)
	if a.failed() {
		return types.Void
	}

	switch e.Operator {
	case "&", "|":
		if !types.Equal(lt, types.Bool) || !types.Equal(rt, types.Bool) {
			a.fail(e.Pos(), "'%s' requires Bool operands, got '%s' and '%s'", e.Operator, lt, rt)
			return types.Void
		}
		return types.Bool
	case "+":
		if types.Equal(lt, types.String) && types.Equal(rt, types.String) {
			return types.String
		}
		return a.checkNumericBinary(e, lt, rt)
	case "-", "*", "/", "%":
		return a.checkNumericBinary(e, lt, rt)
	case "==", "!=":
		if !equalOrRefNull(lt, rt) {
			a.fail(e.Pos(), "cannot compare '%s' and '%s'", lt, rt)
			return types.Void
		}
		return types.Bool
	case "<", ">", "<=", ">=":
		if !types.Equal(lt, rt) || !(types.IsNumeric(lt) || types.Equal(lt, types.String)) {
			a.fail(e.Pos(), "'%s' requires two Int, Float, or String operands of the same type, got '%s' and '%s'", e.Operator, lt, rt)
			return types.Void
		}
		return types.Bool
	default:
		a.fail(e.Pos(), "unknown binary operator '%s'", e.Operator)
		return types.Void
	}
}

func (a *Analyzer) checkNumericBinary(e *ast.BinaryExpr, lt, rt types.Type) types.Type {
	if !types.IsNumeric(lt) || !types.Equal(lt, rt) {
		a.fail(e.Pos(), "'%s' requires two operands of the same numeric type, got '%s' and '%s'", e.Operator, lt, rt)
		return types.Void
	}
	return lt
}

func equalOrRefNull(a, b types.Type) bool {
	if types.Equal(a, b) {
		return true
	}
	if types.IsNull(a) {
		_, isRef := b.(types.RefType)
		return isRef
	}
	if types.IsNull(b) {
		_, isRef := a.(types.RefType)
		return isRef
	}
	return false
}

func (a *Analyzer) analyzeFieldAccess(scope *SymbolTable, e *ast.FieldAccessExpr) types.Type {
	if ident, ok := e.Value.(*ast.Identifier); ok {
		if mod, isMod := a.imports[ident.Name]; isMod {
			e.IsModuleAccess = true
			return a.resolveModuleMember(e, mod, e.Field)
		}
	}

	t := a.inferType(scope, e.Value)
	if a.failed() {
		return types.Void
	}
	structName, ok := structNameOf(t)
	if !ok {
		a.fail(e.Value.Pos(), "field access requires a struct or ref-to-struct value, got '%s'", t)
		return types.Void
	}
	info := a.structs[structName]
	ft, ok := info.FieldTypes[e.Field]
	if !ok {
		a.fail(e.Pos(), "struct '%s' has no field '%s'", structName, e.Field)
		return types.Void
	}
	return ft
}

func (a *Analyzer) resolveModuleMember(pos ast.Node, mod *Module, name string) types.Type {
	if fn, ok := mod.Funcs[name]; ok {
		return functionSignatureType(fn)
	}
	if _, ok := mod.Structs[name]; ok {
		return types.StructType{Name: name}
	}
	if t, ok := mod.Globals[name]; ok {
		return t
	}
	a.fail(pos.Pos(), "module has no exported member '%s'", name)
	return types.Void
}

// functionSignatureType is a placeholder type used only so that a module
// member expression referring to a function type-checks structurally;
// the evaluator resolves the call by name, not by this type.
func functionSignatureType(fn *FuncInfo) types.Type { return types.Void }

func structNameOf(t types.Type) (string, bool) {
	switch tt := t.(type) {
	case types.StructType:
		return tt.Name, true
	case types.RefType:
		return structNameOf(tt.Inner)
	default:
		return "", false
	}
}

func (a *Analyzer) analyzeIndexExpr(scope *SymbolTable, e *ast.IndexExpr) types.Type {
	t := a.inferType(scope, e.Value)
	if a.failed() {
		return types.Void
	}
	idx := a.inferType(scope, e.Index)
	if a.failed() {
		return types.Void
	}
	switch container := t.(type) {
	case types.FixedArrayType:
		if !types.Equal(idx, types.Int) {
			a.fail(e.Index.Pos(), "array index must be Int, got '%s'", idx)
			return types.Void
		}
		return container.Elem
	case types.DynamicArrayType:
		if !types.Equal(idx, types.Int) {
			a.fail(e.Index.Pos(), "array index must be Int, got '%s'", idx)
			return types.Void
		}
		return container.Elem
	case types.MapType:
		if !types.Equal(idx, container.Key) {
			a.fail(e.Index.Pos(), "map key must be '%s', got '%s'", container.Key, idx)
			return types.Void
		}
		return container.Value
	default:
		if types.Equal(t, types.String) {
			if !types.Equal(idx, types.Int) {
				a.fail(e.Index.Pos(), "string index must be Int, got '%s'", idx)
				return types.Void
			}
			return types.String
		}
		a.fail(e.Value.Pos(), "cannot index a value of type '%s'", t)
		return types.Void
	}
}

// isLValue reports whether expr may appear on the left of `=` or as the
// operand of `ref` (spec.md §4.2 "L-values").
func isLValue(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.FieldAccessExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}
