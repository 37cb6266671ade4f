package ast

import (
	"fmt"

	"github.com/noxy-lang/noxy/internal/token"
)

// PrimitiveTypeExpr names a primitive: int, float, string, bool, void.
type PrimitiveTypeExpr struct {
	Token token.Token
	Name  string
}

func (t *PrimitiveTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *PrimitiveTypeExpr) String() string      { return t.Name }
func (*PrimitiveTypeExpr) typeExprNode()         {}

// NamedTypeExpr references a declared struct type by name.
type NamedTypeExpr struct {
	Token token.Token
	Name  string
}

func (t *NamedTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *NamedTypeExpr) String() string      { return t.Name }
func (*NamedTypeExpr) typeExprNode()         {}

// ArrayTypeExpr is `T[]` (Fixed == false) or `T[N]` (Fixed == true, Size is
// the compile-time literal length).
type ArrayTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
	Fixed bool
	Size  int64
}

func (t *ArrayTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *ArrayTypeExpr) String() string {
	if t.Fixed {
		return fmt.Sprintf("%s[%d]", t.Elem.String(), t.Size)
	}
	return t.Elem.String() + "[]"
}
func (*ArrayTypeExpr) typeExprNode() {}

// MapTypeExpr is `map[K, V]`.
type MapTypeExpr struct {
	Token token.Token
	Key   TypeExpr
	Value TypeExpr
}

func (t *MapTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *MapTypeExpr) String() string {
	return fmt.Sprintf("map[%s, %s]", t.Key.String(), t.Value.String())
}
func (*MapTypeExpr) typeExprNode() {}

// RefTypeExpr is `ref T`, used both for struct reference types and for the
// by-reference parameter-passing modifier (SPEC_FULL.md §A).
type RefTypeExpr struct {
	Token token.Token
	Inner TypeExpr
}

func (t *RefTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *RefTypeExpr) String() string      { return "ref " + t.Inner.String() }
func (*RefTypeExpr) typeExprNode()         {}
