package interp

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/types"
)

// resolveType converts parsed type syntax into a types.Type at evaluation
// time, mirroring internal/semantic's resolveTypeExpr. The program has
// already passed static analysis (or the CLI's --no-typecheck bypass), so
// this never needs to report an error — malformed type syntax that would
// have produced a TypeError is unreachable here.
func resolveType(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		switch t.Name {
		case "int":
			return types.Int
		case "float":
			return types.Float
		case "string":
			return types.String
		case "bool":
			return types.Bool
		default:
			return types.Void
		}
	case *ast.NamedTypeExpr:
		return types.StructType{Name: t.Name}
	case *ast.ArrayTypeExpr:
		elem := resolveType(t.Elem)
		if t.Fixed {
			return types.FixedArrayType{Elem: elem, Size: t.Size}
		}
		return types.DynamicArrayType{Elem: elem}
	case *ast.MapTypeExpr:
		return types.MapType{Key: resolveType(t.Key), Value: resolveType(t.Value)}
	case *ast.RefTypeExpr:
		return types.RefType{Inner: resolveType(t.Inner)}
	default:
		return types.Void
	}
}

// zeroValue produces the default value for t (spec.md §4.4.1 "zeros"): 0 /
// 0.0 / "" / false / null-ref, recursing into nested containers and
// structs. ns supplies the struct field declarations needed to build a
// zero-valued struct element.
func (it *Interp) zeroValue(ns *ModuleNS, t types.Type) Value {
	switch tt := t.(type) {
	case types.FixedArrayType:
		elems := make([]*Value, tt.Size)
		for i := range elems {
			v := it.zeroValue(ns, tt.Elem)
			elems[i] = &v
		}
		return &ArrayValue{ElemType: tt.Elem, Fixed: true, Size: tt.Size, Elements: elems}
	case types.DynamicArrayType:
		return &ArrayValue{ElemType: tt.Elem, Fixed: false, Elements: []*Value{}}
	case types.MapType:
		return &MapValue{KeyType: tt.Key, ValType: tt.Value, Entries: map[any]*Value{}}
	case types.RefType:
		name := ""
		if st, ok := tt.Inner.(types.StructType); ok {
			name = st.Name
		}
		return RefValue{TypeName: name}
	case types.StructType:
		sd, ok := ns.Structs[tt.Name]
		fields := make(map[string]*Value)
		if ok {
			for _, f := range sd.Fields {
				v := it.zeroValue(ns, resolveType(f.Type))
				fields[f.Name] = &v
			}
		}
		return StructValue{Instance: &StructInstance{TypeName: tt.Name, Fields: fields}}
	}
	switch t {
	case types.Int:
		return IntValue(0)
	case types.Float:
		return FloatValue(0)
	case types.String:
		return StringValue("")
	case types.Bool:
		return BoolValue(false)
	default:
		return VoidValue{}
	}
}

// valuesEqual implements `==`/`!=` (spec.md §4.4.1): natural value
// equality for scalars, identity equality for Ref(T) handles and struct
// instances, and structural (elementwise) equality for arrays and maps.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av == bv
	case FloatValue:
		bv, ok := b.(FloatValue)
		return ok && av == bv
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case VoidValue:
		_, ok := b.(VoidValue)
		return ok
	case RefValue:
		bv, ok := b.(RefValue)
		return ok && av.Target == bv.Target
	case StructValue:
		bv, ok := b.(StructValue)
		return ok && av.Instance == bv.Instance
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i, c := range av.Elements {
			if !valuesEqual(*c, *bv.Elements[i]) {
				return false
			}
		}
		return true
	case *MapValue:
		bv, ok := b.(*MapValue)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for k, c := range av.Entries {
			oc, ok := bv.Entries[k]
			if !ok || !valuesEqual(*c, *oc) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
