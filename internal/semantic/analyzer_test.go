package semantic

import (
	"testing"

	"github.com/noxy-lang/noxy/internal/lexer"
	"github.com/noxy-lang/noxy/internal/parser"
)

func analyze(t *testing.T, src string) *Analyzer {
	t.Helper()
	p := parser.New(lexer.New("test.nx", src), "test.nx", src)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := NewAnalyzer(src)
	if diag := a.Analyze(prog); diag != nil {
		t.Fatalf("analysis error: %s", diag.Error())
	}
	return a
}

func analyzeExpectErr(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(lexer.New("test.nx", src), "test.nx", src)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := NewAnalyzer(src)
	diag := a.Analyze(prog)
	if diag == nil {
		t.Fatal("expected an analysis error, got none")
	}
	return diag.Error()
}

func TestAnalyzeTopLevelOrdinaryStatements(t *testing.T) {
	analyze(t, `
let x: int = 1
print(to_str(x))
`)
}

func TestAnalyzeStructAndFuncRegistrationOrderIndependent(t *testing.T) {
	analyze(t, `
func makeNode() -> Node
  return Node(1, null)
end

struct Node
  valor: int
  proximo: ref Node
end
`)
}

func TestAnalyzeRecursiveFunction(t *testing.T) {
	analyze(t, `
func fib(n: int) -> int
  if n < 2 then
    return n
  else
    return fib(n - 1) + fib(n - 2)
  end
end
`)
}

func TestAnalyzeDuplicateStructRejected(t *testing.T) {
	msg := analyzeExpectErr(t, `
struct Point
  x: int
end
struct Point
  y: int
end
`)
	if msg == "" {
		t.Fatal("expected a non-empty diagnostic")
	}
}

func TestAnalyzeSelfEmbeddingFieldRejected(t *testing.T) {
	analyzeExpectErr(t, `
struct Bad
  next: Bad
end
`)
}

func TestAnalyzeReturnOutsideFunctionRejected(t *testing.T) {
	analyzeExpectErr(t, `return 1`)
}

func TestAnalyzeUndeclaredIdentifierRejected(t *testing.T) {
	analyzeExpectErr(t, `print(to_str(undeclared))`)
}

func TestAnalyzeTypeMismatchOnAssignmentRejected(t *testing.T) {
	analyzeExpectErr(t, `let x: int = "not a number"`)
}

func TestAnalyzeLogicalOperatorsRequireBool(t *testing.T) {
	analyzeExpectErr(t, `let x: bool = 1 & 2`)
}

func TestAnalyzeBreakOutsideLoopRejected(t *testing.T) {
	analyzeExpectErr(t, `break`)
}

func TestAnalyzeWithoutImporterRejectsUse(t *testing.T) {
	analyzeExpectErr(t, `use somemodule`)
}

func TestAnalyzeEmptyMapLiteralNeedsContext(t *testing.T) {
	analyzeExpectErr(t, `print(to_str({}))`)
}

func TestAnalyzeMapLiteralTypedContextOK(t *testing.T) {
	analyze(t, `
let m: map[string, int] = {"a": 1, "b": 2}
print(to_str(m))
`)
}

func TestAnalyzeFixedArrayRefParamRoundTrips(t *testing.T) {
	analyze(t, `
func fillZero(a: ref int[4]) -> void
  let i: int = 0
  while i < 4 do
    a[i] = 0
    i = i + 1
  end
end

let a: int[4] = zeros(4)
fillZero(a)
`)
}

func TestExportsSurfaceAfterAnalyze(t *testing.T) {
	a := analyze(t, `
global total: int = 0

func add(x: int, y: int) -> int
  return x + y
end

struct Pair
  a: int
  b: int
end
`)
	exports := a.Exports()
	if _, ok := exports.Funcs["add"]; !ok {
		t.Error("expected 'add' in exported funcs")
	}
	if _, ok := exports.Structs["Pair"]; !ok {
		t.Error("expected 'Pair' in exported structs")
	}
	if _, ok := exports.Globals["total"]; !ok {
		t.Error("expected 'total' in exported globals")
	}
}

func TestSeedCarriesPriorModuleIntoNewAnalyzer(t *testing.T) {
	first := analyze(t, `
global shared: int = 41

func bump(x: int) -> int
  return x + 1
end
`)

	p := parser.New(lexer.New("test2.nx", "print(to_str(bump(shared)))"), "test2.nx", "print(to_str(bump(shared)))")
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	second := NewAnalyzer("print(to_str(bump(shared)))")
	second.Seed(first.Exports())
	if diag := second.Analyze(prog); diag != nil {
		t.Fatalf("analysis error: %s", diag.Error())
	}
}
