package parser

import (
	"testing"

	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New("test.nx", src), "test.nx", src)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func TestParseLetAndGlobal(t *testing.T) {
	prog := parse(t, `
let x: int = 1
global y: float[] = []
`)
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	let, ok := prog.Statements[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ast.LetStmt", prog.Statements[0])
	}
	if let.Name != "x" {
		t.Errorf("let name = %q, want x", let.Name)
	}
	glob, ok := prog.Statements[1].(*ast.GlobalStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ast.GlobalStmt", prog.Statements[1])
	}
	arrType, ok := glob.Type.(*ast.ArrayTypeExpr)
	if !ok || arrType.Fixed {
		t.Errorf("global type = %+v, want dynamic array", glob.Type)
	}
}

func TestParseFuncDeclWithRefParamAndReturnType(t *testing.T) {
	prog := parse(t, `
func swap(a: ref int, b: ref int) -> void
  let tmp: int = a
  a = b
  b = tmp
end
`)
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.FuncDecl", prog.Statements[0])
	}
	if fn.Name != "swap" || len(fn.Params) != 2 {
		t.Fatalf("fn = %+v", fn)
	}
	if !fn.Params[0].ByRef || !fn.Params[1].ByRef {
		t.Errorf("params = %+v, want both ByRef", fn.Params)
	}
	if _, ok := fn.Params[0].Type.(*ast.PrimitiveTypeExpr); !ok {
		t.Errorf("param type = %+v, want primitive int", fn.Params[0].Type)
	}
	if len(fn.Body.Statements) != 3 {
		t.Errorf("got %d body statements, want 3", len(fn.Body.Statements))
	}
}

func TestParseStructDecl(t *testing.T) {
	prog := parse(t, `
struct Point
  x: int, y: int
end
`)
	sd, ok := prog.Statements[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.StructDecl", prog.Statements[0])
	}
	if sd.Name != "Point" || len(sd.Fields) != 2 {
		t.Fatalf("struct = %+v", sd)
	}
	if sd.Fields[0].Name != "x" || sd.Fields[1].Name != "y" {
		t.Errorf("fields = %+v", sd.Fields)
	}
}

func TestParseFixedAndMapTypes(t *testing.T) {
	prog := parse(t, `
let a: int[16] = zeros(16)
let m: map[string, int] = {}
`)
	let := prog.Statements[0].(*ast.LetStmt)
	arr, ok := let.Type.(*ast.ArrayTypeExpr)
	if !ok || !arr.Fixed || arr.Size != 16 {
		t.Fatalf("type = %+v, want fixed int[16]", let.Type)
	}
	m := prog.Statements[1].(*ast.LetStmt)
	mt, ok := m.Type.(*ast.MapTypeExpr)
	if !ok {
		t.Fatalf("type = %+v, want map[string, int]", m.Type)
	}
	if _, ok := mt.Key.(*ast.PrimitiveTypeExpr); !ok {
		t.Errorf("map key type = %+v", mt.Key)
	}
}

func TestParseIfElseAndWhileAndBreak(t *testing.T) {
	prog := parse(t, `
if x < 1 then
  print(x)
else
  while x < 10 do
    break
  end
end
`)
	ifStmt, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStmt", prog.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected else branch")
	}
	whileStmt, ok := ifStmt.Else.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileStmt", ifStmt.Else.Statements[0])
	}
	if _, ok := whileStmt.Body.Statements[0].(*ast.BreakStmt); !ok {
		t.Errorf("got %T, want *ast.BreakStmt", whileStmt.Body.Statements[0])
	}
}

func TestParseAssignmentVsExpressionStmt(t *testing.T) {
	prog := parse(t, `
x = 1
print(x)
`)
	if _, ok := prog.Statements[0].(*ast.AssignStmt); !ok {
		t.Errorf("statement 0 is %T, want *ast.AssignStmt", prog.Statements[0])
	}
	exprStmt, ok := prog.Statements[1].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ast.ExpressionStmt", prog.Statements[1])
	}
	if _, ok := exprStmt.Expr.(*ast.CallExpr); !ok {
		t.Errorf("expr = %T, want *ast.CallExpr", exprStmt.Expr)
	}
}

func TestParseUseStmtForms(t *testing.T) {
	prog := parse(t, `
use a.b
use a.b as ab
use a.b select *
use a.b select one, two
`)
	if len(prog.Statements) != 4 {
		t.Fatalf("got %d statements, want 4", len(prog.Statements))
	}
	plain := prog.Statements[0].(*ast.UseStmt)
	if plain.Kind != ast.ImportNamespace || plain.Alias != "" {
		t.Errorf("plain use = %+v", plain)
	}
	if len(plain.Path) != 2 || plain.Path[0] != "a" || plain.Path[1] != "b" {
		t.Errorf("path = %+v", plain.Path)
	}
	aliased := prog.Statements[1].(*ast.UseStmt)
	if aliased.Kind != ast.ImportNamespace || aliased.Alias != "ab" {
		t.Errorf("aliased use = %+v", aliased)
	}
	wildcard := prog.Statements[2].(*ast.UseStmt)
	if wildcard.Kind != ast.ImportWildcard {
		t.Errorf("wildcard use = %+v", wildcard)
	}
	selected := prog.Statements[3].(*ast.UseStmt)
	if selected.Kind != ast.ImportSelect || len(selected.Names) != 2 {
		t.Errorf("select use = %+v", selected)
	}
}

func TestParseMapLiteralAndArrayLiteral(t *testing.T) {
	prog := parse(t, `
let xs: int[] = [1, 2, 3]
let m: map[string, int] = {"a": 1, "b": 2}
`)
	let := prog.Statements[0].(*ast.LetStmt)
	arrLit, ok := let.Value.(*ast.ArrayLiteral)
	if !ok || len(arrLit.Elements) != 3 {
		t.Fatalf("value = %+v", let.Value)
	}
	m := prog.Statements[1].(*ast.LetStmt)
	mapLit, ok := m.Value.(*ast.MapLiteral)
	if !ok || len(mapLit.Entries) != 2 {
		t.Fatalf("value = %+v", m.Value)
	}
	if mapLit.Entries[0].Key.String() != `"a"` {
		t.Errorf("entry 0 key = %s", mapLit.Entries[0].Key.String())
	}
}

func TestParseEmptyMapLiteral(t *testing.T) {
	prog := parse(t, `let m: map[string, int] = {}`)
	let := prog.Statements[0].(*ast.LetStmt)
	mapLit, ok := let.Value.(*ast.MapLiteral)
	if !ok || len(mapLit.Entries) != 0 {
		t.Fatalf("value = %+v, want empty map literal", let.Value)
	}
}

func TestPrecedenceAndAndOrBindLooserThanComparison(t *testing.T) {
	prog := parse(t, `let ok: bool = i < n & s[i] == c`)
	let := prog.Statements[0].(*ast.LetStmt)
	and, ok := let.Value.(*ast.BinaryExpr)
	if !ok || and.Operator != "&" {
		t.Fatalf("top-level expr = %+v, want '&'", let.Value)
	}
	left, ok := and.Left.(*ast.BinaryExpr)
	if !ok || left.Operator != "<" {
		t.Errorf("left = %+v, want '<'", and.Left)
	}
	right, ok := and.Right.(*ast.BinaryExpr)
	if !ok || right.Operator != "==" {
		t.Errorf("right = %+v, want '=='", and.Right)
	}
}

func TestComparisonIsNonAssociative(t *testing.T) {
	p := New(lexer.New("test.nx", "let x: bool = a < b < c"), "test.nx", "let x: bool = a < b < c")
	p.ParseProgram()
	if p.Err() == nil {
		t.Fatal("expected parse error for chained comparison")
	}
}

func TestUnaryNotBindsLooserThanComparison(t *testing.T) {
	prog := parse(t, `let ok: bool = !a < b`)
	let := prog.Statements[0].(*ast.LetStmt)
	not, ok := let.Value.(*ast.UnaryExpr)
	if !ok || not.Operator != "!" {
		t.Fatalf("top-level expr = %+v, want unary '!'", let.Value)
	}
	if _, ok := not.Operand.(*ast.BinaryExpr); !ok {
		t.Errorf("operand = %+v, want comparison BinaryExpr", not.Operand)
	}
}

func TestPostfixChainFieldIndexCall(t *testing.T) {
	prog := parse(t, `print(a.b[0].c())`)
	exprStmt := prog.Statements[0].(*ast.ExpressionStmt)
	call := exprStmt.Expr.(*ast.CallExpr)
	inner := call.Args[0].(*ast.CallExpr)
	field := inner.Callee.(*ast.FieldAccessExpr)
	if field.Field != "c" {
		t.Errorf("field = %q, want c", field.Field)
	}
	idx := field.Value.(*ast.IndexExpr)
	if _, ok := idx.Value.(*ast.FieldAccessExpr); !ok {
		t.Errorf("index target = %T, want *ast.FieldAccessExpr", idx.Value)
	}
}

func TestParseRefExprAndRefType(t *testing.T) {
	prog := parse(t, `
struct Node
  proximo: ref Node
end
let p: ref Node = ref n
`)
	sd := prog.Statements[0].(*ast.StructDecl)
	if _, ok := sd.Fields[0].Type.(*ast.RefTypeExpr); !ok {
		t.Errorf("field type = %+v, want *ast.RefTypeExpr", sd.Fields[0].Type)
	}
	let := prog.Statements[1].(*ast.LetStmt)
	if _, ok := let.Value.(*ast.RefExpr); !ok {
		t.Errorf("value = %T, want *ast.RefExpr", let.Value)
	}
}

func TestParseReturnWithAndWithoutValue(t *testing.T) {
	prog := parse(t, `
func f() -> int
  return 1
end
func g() -> void
  return
end
`)
	f := prog.Statements[0].(*ast.FuncDecl)
	ret := f.Body.Statements[0].(*ast.ReturnStmt)
	if ret.Value == nil {
		t.Error("expected return value")
	}
	g := prog.Statements[1].(*ast.FuncDecl)
	ret2 := g.Body.Statements[0].(*ast.ReturnStmt)
	if ret2.Value != nil {
		t.Errorf("expected no return value, got %v", ret2.Value)
	}
}

func TestParseErrorOnMissingEnd(t *testing.T) {
	src := `
func f() -> void
  print(1)
`
	p := New(lexer.New("test.nx", src), "test.nx", src)
	p.ParseProgram()
	if p.Err() == nil {
		t.Fatal("expected parse error for missing 'end'")
	}
}
