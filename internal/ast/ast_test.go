package ast

import (
	"testing"

	"github.com/noxy-lang/noxy/internal/token"
)

func TestProgramString(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&LetStmt{
				Token: token.Token{Type: token.LET},
				Name:  "x",
				Type:  &PrimitiveTypeExpr{Name: "int"},
				Value: &IntegerLiteral{Token: token.Token{Literal: "5"}, Value: 5},
			},
		},
	}
	want := "let x: int = 5\n"
	if got := prog.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBinaryExprString(t *testing.T) {
	e := &BinaryExpr{
		Operator: "+",
		Left:     &IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
		Right:    &IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
	}
	if got := e.String(); got != "(1 + 2)" {
		t.Errorf("got %q", got)
	}
}

func TestArrayTypeExprString(t *testing.T) {
	fixed := &ArrayTypeExpr{Elem: &PrimitiveTypeExpr{Name: "int"}, Fixed: true, Size: 3}
	if got := fixed.String(); got != "int[3]" {
		t.Errorf("got %q", got)
	}
	dyn := &ArrayTypeExpr{Elem: &PrimitiveTypeExpr{Name: "string"}}
	if got := dyn.String(); got != "string[]" {
		t.Errorf("got %q", got)
	}
}

func TestFStringLiteralString(t *testing.T) {
	e := &FStringLiteral{}
	e.AppendLiteral("n=")
	e.AppendHole(&FStringHole{Expr: &Identifier{Name: "n"}, Spec: "05"})
	want := `f"n={n:05}"`
	if got := e.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCallExprString(t *testing.T) {
	e := &CallExpr{
		Callee: &Identifier{Name: "fib"},
		Args:   []Expression{&IntegerLiteral{Token: token.Token{Literal: "10"}, Value: 10}},
	}
	if got := e.String(); got != "fib(10)" {
		t.Errorf("got %q", got)
	}
}
