package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/noxy-lang/noxy/internal/lexer"
	"github.com/noxy-lang/noxy/internal/module"
	"github.com/noxy-lang/noxy/internal/parser"
	"github.com/noxy-lang/noxy/internal/semantic"
)

// runSource parses, analyzes, and evaluates source as a standalone program
// with no module search roots, returning captured stdout.
func runSource(t *testing.T, source string) string {
	t.Helper()
	return runSourceWithLoader(t, source, module.NewLoader())
}

func runSourceWithLoader(t *testing.T, source string, loader *module.Loader) string {
	t.Helper()
	const file = "<test>"

	p := parser.New(lexer.New(file, source), file, source)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("parse error: %v", err)
	}

	analyzer := semantic.NewAnalyzerWithImporter(source, loader)
	if diag := analyzer.Analyze(prog); diag != nil {
		t.Fatalf("analysis error: %s", diag.Error())
	}

	var out bytes.Buffer
	it := New(loader, &out)
	if err := it.Run(prog, source); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return out.String()
}

// Seed test 1: quicksort takes its array parameter `ref int[16]`, so the
// caller observes the sorted array: arrays are passed by value unless the
// parameter is marked `ref`.
func TestSeedQuicksort(t *testing.T) {
	const source = `
func partition(a: ref int[16], lo: int, hi: int) -> int
  let pivot: int = a[hi]
  let i: int = lo - 1
  let j: int = lo
  while j < hi do
    if a[j] < pivot then
      i = i + 1
      let tmp: int = a[i]
      a[i] = a[j]
      a[j] = tmp
    end
    j = j + 1
  end
  let tmp2: int = a[i + 1]
  a[i + 1] = a[hi]
  a[hi] = tmp2
  return i + 1
end

func quicksort(a: ref int[16], lo: int, hi: int) -> void
  if lo < hi then
    let p: int = partition(a, lo, hi)
    quicksort(a, lo, p - 1)
    quicksort(a, p + 1, hi)
  end
end

let a: int[16] = [10,7,8,9,1,5,2,6,3,4,15,12,11,14,13,0]
quicksort(a, 0, 15)
print(to_str(a))
`
	got := runSource(t, source)
	want := "[0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15]\n"
	if got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestSeedFibonacci(t *testing.T) {
	const source = `
func fib(n: int) -> int
  if n < 2 then
    return n
  else
    return fib(n - 1) + fib(n - 2)
  end
end

print(to_str(fib(10)))
`
	got := runSource(t, source)
	if want := "55\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestSeedStructByValueVsByRef(t *testing.T) {
	const source = `
struct C
  valor: int
end

func incC(c: C) -> void
  c.valor = c.valor + 1
end

func incR(c: ref C) -> void
  c.valor = c.valor + 1
end

let x: C = C(10)
incC(x)
print(to_str(x.valor))
incR(x)
print(to_str(x.valor))
`
	got := runSource(t, source)
	if want := "10\n11\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestSeedFStringFormatting(t *testing.T) {
	const source = `
let n: int = 42
print(f"{n:05} {n:x}")
let p: float = 3.14159
print(f"{p:.2f}")
`
	got := runSource(t, source)
	if want := "00042 2a\n3.14\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestSeedLinkedListViaRefFields(t *testing.T) {
	const source = `
struct Node
  valor: int
  proximo: ref Node
end

let c: Node = Node(3, null)
let b: Node = Node(2, ref c)
let a: Node = Node(1, ref b)

let cur: ref Node = ref a
while cur != null do
  print(to_str(cur.valor))
  cur = cur.proximo
end
`
	got := runSource(t, source)
	if want := "1\n2\n3\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

// Seed test 6: importing the same module twice must not re-run its
// top-level code a second time.
func TestSeedModuleImportIdempotence(t *testing.T) {
	dir := t.TempDir()
	mathSrc := `
global callCount: int = 0

func add(a: int, b: int) -> int
  callCount = callCount + 1
  return a + b
end
`
	if err := os.WriteFile(filepath.Join(dir, "math.nx"), []byte(mathSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	const mainSrc = `
use math select add
use math select add
print(to_str(add(2, 3)))
`
	loader := module.NewLoader(dir)
	got := runSourceWithLoader(t, mainSrc, loader)
	if want := "5\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

// Golden whole-program runs: broader coverage over containers and
// formatting snapshotted rather than hand-compared line by line.
func TestGoldenPrograms(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{
			name: "dynamic_array_builtins",
			source: `
let xs: int[] = []
append(xs, 3)
append(xs, 1)
append(xs, 2)
print(to_str(xs))
print(to_str(contains(xs, 1)))
print(to_str(length(xs)))
print(to_str(pop(xs)))
print(to_str(xs))
`,
		},
		{
			name: "map_builtins",
			source: `
let m: map[string, int] = {}
m["b"] = 2
m["a"] = 1
print(to_str(m))
print(to_str(has_key(m, "a")))
delete(m, "a")
print(to_str(has_key(m, "a")))
print(to_str(keys(m)))
`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := runSource(t, c.source)
			snaps.MatchSnapshot(t, got)
		})
	}
}
