// Package types implements the Noxy type system: the closed tagged variant
// of spec.md §3.1, structural equality, and the assignment-compatibility
// rule used by the static analyzer.
package types

import "fmt"

// Type is implemented by every member of the type universe.
type Type interface {
	String() string
	kind() kind
}

type kind int

const (
	kInt kind = iota
	kFloat
	kString
	kBool
	kVoid
	kFixedArray
	kDynamicArray
	kMap
	kStruct
	kRef
	kNull
)

// Primitive singletons. Primitives are comparable by identity since there
// is exactly one instance of each.
var (
	Int    Type = primitive{kInt, "int"}
	Float  Type = primitive{kFloat, "float"}
	String Type = primitive{kString, "string"}
	Bool   Type = primitive{kBool, "bool"}
	Void   Type = primitive{kVoid, "void"}
	// Null is the type of the `null` literal: compatible with any Ref(T)
	// in assignment/comparison contexts only (spec.md §3.1).
	Null Type = primitive{kNull, "null"}
)

type primitive struct {
	k    kind
	name string
}

func (p primitive) String() string { return p.name }
func (p primitive) kind() kind      { return p.k }

// FixedArrayType is `FixedArray(elem, n)`: length fixed at declaration.
type FixedArrayType struct {
	Elem Type
	Size int64
}

func (t FixedArrayType) String() string { return fmt.Sprintf("%s[%d]", t.Elem, t.Size) }
func (t FixedArrayType) kind() kind     { return kFixedArray }

// DynamicArrayType is `DynamicArray(elem)`: growable.
type DynamicArrayType struct {
	Elem Type
}

func (t DynamicArrayType) String() string { return t.Elem.String() + "[]" }
func (t DynamicArrayType) kind() kind     { return kDynamicArray }

// MapType is `Map(key, value)`. Key must be Int, String, or Bool
// (spec.md §3.1); that restriction is enforced by the analyzer, not here.
type MapType struct {
	Key   Type
	Value Type
}

func (t MapType) String() string { return fmt.Sprintf("map[%s, %s]", t.Key, t.Value) }
func (t MapType) kind() kind     { return kMap }

// StructType is a nominal type identified by declaration name.
type StructType struct {
	Name string
}

func (t StructType) String() string { return t.Name }
func (t StructType) kind() kind     { return kStruct }

// RefType is `Ref(inner)`: a nullable handle to a struct instance.
type RefType struct {
	Inner Type
}

func (t RefType) String() string { return "ref " + t.Inner.String() }
func (t RefType) kind() kind     { return kRef }

// Equal reports whether a and b are the same type, structurally.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind() != b.kind() {
		return false
	}
	switch av := a.(type) {
	case primitive:
		return av.k == b.(primitive).k
	case FixedArrayType:
		bv := b.(FixedArrayType)
		return av.Size == bv.Size && Equal(av.Elem, bv.Elem)
	case DynamicArrayType:
		bv := b.(DynamicArrayType)
		return Equal(av.Elem, bv.Elem)
	case MapType:
		bv := b.(MapType)
		return Equal(av.Key, bv.Key) && Equal(av.Value, bv.Value)
	case StructType:
		bv := b.(StructType)
		return av.Name == bv.Name
	case RefType:
		bv := b.(RefType)
		return Equal(av.Inner, bv.Inner)
	default:
		return false
	}
}

// AssignableTo implements spec.md §3.1's compatibility rule: T may be
// assigned to a slot of declared type U iff T == U structurally, or T is
// Null and U is a Ref(_).
func AssignableTo(t, u Type) bool {
	if Equal(t, u) {
		return true
	}
	if t.kind() == kNull {
		_, isRef := u.(RefType)
		return isRef
	}
	return false
}

// IsHashableKey reports whether t may be used as a Map key (spec.md §3.1).
func IsHashableKey(t Type) bool {
	switch t.kind() {
	case kInt, kString, kBool:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	return t.kind() == kInt || t.kind() == kFloat
}

// IsContainer reports whether t is one of the three container kinds that
// are deep-copied by default when passed as parameters (spec.md §4.4.3).
func IsContainer(t Type) bool {
	switch t.kind() {
	case kFixedArray, kDynamicArray, kMap:
		return true
	default:
		return false
	}
}

// IsStruct reports whether t is a StructType.
func IsStruct(t Type) bool {
	return t.kind() == kStruct
}

// IsNull reports whether t is the Null bottom type.
func IsNull(t Type) bool {
	return t.kind() == kNull
}

// IsVoid reports whether t is Void.
func IsVoid(t Type) bool {
	return t.kind() == kVoid
}
