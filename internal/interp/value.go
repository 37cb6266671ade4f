// Package interp implements Noxy's tree-walking evaluator (spec.md §4.4):
// expression and statement evaluation, call-frame setup with the deep-copy
// vs. by-reference parameter rule of §4.4.3, and the built-in functions of
// §6.3.
package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"github.com/noxy-lang/noxy/internal/format"
	"github.com/noxy-lang/noxy/internal/types"
)

// Value is a runtime value. Every variant also reports its static Type, so
// the evaluator never needs to re-derive a value's shape from its Go type
// alone (spec.md §3.2 "Runtime values mirror types").
type Value interface {
	Type() types.Type
	String() string
}

// IntValue is an Int value: two's-complement 64-bit (spec.md §4.4.1).
type IntValue int64

func (v IntValue) Type() types.Type { return types.Int }
func (v IntValue) String() string   { return strconv.FormatInt(int64(v), 10) }

// FloatValue is a Float value: IEEE-754 double.
type FloatValue float64

func (v FloatValue) Type() types.Type { return types.Float }
func (v FloatValue) String() string   { return strconv.FormatFloat(float64(v), 'f', 6, 64) }

// StringValue is a String value.
type StringValue string

func (v StringValue) Type() types.Type { return types.String }
func (v StringValue) String() string   { return string(v) }

// BoolValue is a Bool value.
type BoolValue bool

func (v BoolValue) Type() types.Type { return types.Bool }
func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

// VoidValue is the sole Void value, produced by a call to a Void function
// used in a context that discards its result.
type VoidValue struct{}

func (VoidValue) Type() types.Type { return types.Void }
func (VoidValue) String() string   { return "void" }

// StructInstance is a struct's heap-allocated identity (spec.md §9
// "Cyclic structures"). Fields are boxed in *Value cells so a field can be
// aliased by a `ref` parameter exactly like a local variable (see Cell in
// environment.go). Go's garbage collector resolves reference cycles
// through Ref(T) fields, so the instance itself is addressed by a native
// pointer rather than an arena index.
type StructInstance struct {
	TypeName string
	Fields   map[string]*Value
}

// StructValue is a struct-typed value: the instance it currently names.
// Two StructValues with the same Instance pointer are the same identity;
// deep copy (§4.4.3) allocates a new Instance.
type StructValue struct {
	Instance *StructInstance
}

func (v StructValue) Type() types.Type { return types.StructType{Name: v.Instance.TypeName} }
func (v StructValue) String() string   { return structString(v.Instance) }

func structString(inst *StructInstance) string {
	var sb strings.Builder
	sb.WriteString(inst.TypeName)
	sb.WriteByte('(')
	for i, name := range fieldOrder(inst) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(ToDisplayString(*inst.Fields[name]))
	}
	sb.WriteByte(')')
	return sb.String()
}

// fieldOrder returns a struct instance's field names sorted for stable
// `to_str` output regardless of map iteration order. Declaration order is
// not threaded through StructInstance at runtime, only in semantic.StructInfo,
// so rendering falls back to lexical order; this only affects display.
func fieldOrder(inst *StructInstance) []string {
	names := make([]string, 0, len(inst.Fields))
	for name := range inst.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RefValue is a Ref(T) handle: either the identity of a struct instance,
// or null (Target == nil), produced by `ref expr` or the `null` literal
// (spec.md §3.1, §4.4.1).
type RefValue struct {
	TypeName string // the declared T of Ref(T), for Type()
	Target   *StructInstance
}

func (v RefValue) Type() types.Type {
	return types.RefType{Inner: types.StructType{Name: v.TypeName}}
}
func (v RefValue) String() string {
	if v.Target == nil {
		return "null"
	}
	return structString(v.Target)
}

// IsNull reports whether this handle is null.
func (v RefValue) IsNull() bool { return v.Target == nil }

// ArrayValue is a fixed or dynamic array. Elements are boxed in *Value
// cells so an element slot is independently addressable for `a[i]`
// assignment and for `ref` aliasing of a whole by-ref array parameter.
type ArrayValue struct {
	ElemType types.Type
	Fixed    bool
	Size     int64 // only meaningful when Fixed
	Elements []*Value
}

func (v *ArrayValue) Type() types.Type {
	if v.Fixed {
		return types.FixedArrayType{Elem: v.ElemType, Size: v.Size}
	}
	return types.DynamicArrayType{Elem: v.ElemType}
}

func (v *ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, c := range v.Elements {
		parts[i] = ToDisplayString(*c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapValue is a Map(key, value). Keys are the Go-native comparable form of
// an Int/String/Bool key (see mapKey); values are boxed in *Value cells.
type MapValue struct {
	KeyType, ValType types.Type
	Entries          map[any]*Value
}

func (v *MapValue) Type() types.Type { return types.MapType{Key: v.KeyType, Value: v.ValType} }

func (v *MapValue) String() string {
	keys := make([]any, 0, len(v.Entries))
	for k := range v.Entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return natural.Less(fmt.Sprint(keys[i]), fmt.Sprint(keys[j]))
	})
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v: %s", k, ToDisplayString(*v.Entries[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// mapKey converts a Value known to be Int, String, or Bool (spec.md
// §3.1 "IsHashableKey") into its comparable Go-native form for use as a
// MapValue.Entries key.
func mapKey(v Value) any {
	switch val := v.(type) {
	case IntValue:
		return int64(val)
	case StringValue:
		return string(val)
	case BoolValue:
		return bool(val)
	default:
		panic(fmt.Sprintf("mapKey: unhashable value %T", v))
	}
}

// ToDisplayString renders v per the canonical `to_str` rules (spec.md
// §6.3): used by the `to_str`/`print` built-ins and by bare f-string
// holes alike.
func ToDisplayString(v Value) string {
	return v.String()
}

// RenderHole formats a hole's evaluated value per its (possibly empty)
// format spec (spec.md §6.2). The analyzer has already validated spec
// against the hole's static type, so this never needs to report an error.
func RenderHole(v Value, spec string) string {
	if spec == "" {
		return ToDisplayString(v)
	}
	f := format.Parse(spec)
	switch val := v.(type) {
	case IntValue:
		return format.RenderInt(f, int64(val))
	case FloatValue:
		return format.RenderFloat(f, float64(val))
	default:
		return ToDisplayString(v)
	}
}

// deepCopy implements spec.md §4.4.3/§9's single deep-copy rule: scalars
// copy by value, Ref(T) handles copy by identity, struct instances and
// containers recurse field/element-wise into fresh storage.
func deepCopy(v Value) Value {
	switch val := v.(type) {
	case StructValue:
		return StructValue{Instance: copyStructInstance(val.Instance)}
	case *ArrayValue:
		elems := make([]*Value, len(val.Elements))
		for i, c := range val.Elements {
			copied := deepCopy(*c)
			elems[i] = &copied
		}
		return &ArrayValue{ElemType: val.ElemType, Fixed: val.Fixed, Size: val.Size, Elements: elems}
	case *MapValue:
		entries := make(map[any]*Value, len(val.Entries))
		for k, c := range val.Entries {
			copied := deepCopy(*c)
			entries[k] = &copied
		}
		return &MapValue{KeyType: val.KeyType, ValType: val.ValType, Entries: entries}
	default:
		// IntValue, FloatValue, StringValue, BoolValue, VoidValue, RefValue
		// are all immutable Go value types: copying the interface copies them.
		return v
	}
}

func copyStructInstance(src *StructInstance) *StructInstance {
	fields := make(map[string]*Value, len(src.Fields))
	for name, cell := range src.Fields {
		copied := deepCopy(*cell)
		fields[name] = &copied
	}
	return &StructInstance{TypeName: src.TypeName, Fields: fields}
}

