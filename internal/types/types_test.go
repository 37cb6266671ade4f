package types

import "testing"

func TestEqualPrimitives(t *testing.T) {
	if !Equal(Int, Int) {
		t.Error("Int should equal Int")
	}
	if Equal(Int, Float) {
		t.Error("Int should not equal Float")
	}
}

func TestEqualCompoundTypes(t *testing.T) {
	a := FixedArrayType{Elem: Int, Size: 3}
	b := FixedArrayType{Elem: Int, Size: 3}
	c := FixedArrayType{Elem: Int, Size: 4}
	if !Equal(a, b) {
		t.Error("identical fixed arrays should be equal")
	}
	if Equal(a, c) {
		t.Error("fixed arrays of different size should not be equal")
	}

	m1 := MapType{Key: String, Value: Int}
	m2 := MapType{Key: String, Value: Int}
	if !Equal(m1, m2) {
		t.Error("identical map types should be equal")
	}

	s1 := StructType{Name: "Node"}
	s2 := StructType{Name: "Node"}
	s3 := StructType{Name: "Other"}
	if !Equal(s1, s2) || Equal(s1, s3) {
		t.Error("struct type equality should be by name")
	}
}

func TestAssignableToNullRef(t *testing.T) {
	refT := RefType{Inner: StructType{Name: "Node"}}
	if !AssignableTo(Null, refT) {
		t.Error("null should be assignable to a ref type")
	}
	if AssignableTo(Null, Int) {
		t.Error("null should not be assignable to int")
	}
	if !AssignableTo(refT, refT) {
		t.Error("ref type should be assignable to itself")
	}
}

func TestIsHashableKey(t *testing.T) {
	for _, ty := range []Type{Int, String, Bool} {
		if !IsHashableKey(ty) {
			t.Errorf("%s should be hashable", ty)
		}
	}
	if IsHashableKey(Float) {
		t.Error("float should not be hashable")
	}
}

func TestIsContainer(t *testing.T) {
	if !IsContainer(FixedArrayType{Elem: Int, Size: 1}) {
		t.Error("fixed array should be a container")
	}
	if !IsContainer(DynamicArrayType{Elem: Int}) {
		t.Error("dynamic array should be a container")
	}
	if !IsContainer(MapType{Key: Int, Value: Int}) {
		t.Error("map should be a container")
	}
	if IsContainer(StructType{Name: "Node"}) {
		t.Error("struct should not be a container")
	}
}
