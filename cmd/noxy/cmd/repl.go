package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/noxy-lang/noxy/internal/interp"
	"github.com/noxy-lang/noxy/internal/lexer"
	"github.com/noxy-lang/noxy/internal/parser"
	"github.com/noxy-lang/noxy/internal/semantic"
	"github.com/noxy-lang/noxy/internal/token"
	"github.com/noxy-lang/noxy/internal/types"
)

const replFile = "<repl>"

// runREPL implements spec.md §6.1's interactive mode: read statements and
// expressions until EOF, analyzing and evaluating each complete top-level
// form against a namespace and module registry that persist across inputs.
// Input accumulates across lines until the parser reports a clean
// EOF-terminated form, so a function or struct declaration may span
// several lines (SPEC_FULL.md §D).
func runREPL() error {
	loader, err := newLoader("")
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	ns := interp.NewTopLevelNS(replFile)
	it := interp.New(loader, os.Stdout)
	seed := &semantic.Module{
		Funcs:   make(map[string]*semantic.FuncInfo),
		Structs: make(map[string]*semantic.StructInfo),
		Globals: make(map[string]types.Type),
	}

	var pending string
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(os.Stdout)
			return nil
		}
		pending += scanner.Text() + "\n"

		lx := lexer.New(replFile, pending)
		p := parser.New(lx, replFile, pending)
		prog := p.ParseProgram()

		if perr := p.Err(); perr != nil {
			if perr.Found.Type == token.EOF {
				continue // incomplete form: keep accumulating input
			}
			fmt.Fprint(os.Stderr, p.Diagnostics().First().Report())
			pending = ""
			continue
		}

		if !noTypecheck {
			analyzer := semantic.NewAnalyzerWithImporter(pending, loader)
			analyzer.Seed(seed)
			if diag := analyzer.Analyze(prog); diag != nil {
				fmt.Fprint(os.Stderr, diag.Report())
				pending = ""
				continue
			}
			mergeModule(seed, analyzer.Exports())
		}

		ns.Source = pending
		if err := it.RunInto(ns, prog); err != nil {
			reportRuntimeErr(err)
		}
		pending = ""
	}
}

func mergeModule(dst, src *semantic.Module) {
	for name, info := range src.Funcs {
		dst.Funcs[name] = info
	}
	for name, info := range src.Structs {
		dst.Structs[name] = info
	}
	for name, t := range src.Globals {
		dst.Globals[name] = t
	}
}
