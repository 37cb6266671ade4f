package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noxy-lang/noxy/internal/debugdump"
	"github.com/noxy-lang/noxy/internal/errors"
	"github.com/noxy-lang/noxy/internal/interp"
	"github.com/noxy-lang/noxy/internal/lexer"
	"github.com/noxy-lang/noxy/internal/module"
	"github.com/noxy-lang/noxy/internal/parser"
	"github.com/noxy-lang/noxy/internal/semantic"
	"github.com/noxy-lang/noxy/internal/token"
)

func runRoot(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runREPL()
	}
	return runFile(args[0])
}

func runFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if debugDump {
		dumpTokens(filename, source)
	}

	lx := lexer.New(filename, source)
	p := parser.New(lx, filename, source)
	prog := p.ParseProgram()
	if perr := p.Err(); perr != nil {
		fmt.Fprint(os.Stderr, p.Diagnostics().First().Report())
		os.Exit(1)
	}

	loader, err := newLoader(filename)
	if err != nil {
		return err
	}

	if !noTypecheck {
		analyzer := semantic.NewAnalyzerWithImporter(source, loader)
		if diag := analyzer.Analyze(prog); diag != nil {
			fmt.Fprint(os.Stderr, diag.Report())
			os.Exit(1)
		}
	}

	it := interp.New(loader, os.Stdout)
	if err := it.Run(prog, source); err != nil {
		reportRuntimeErr(err)
		os.Exit(1)
	}
	return nil
}

// newLoader builds the module.Loader used both for `use` resolution during
// analysis and for materializing imported namespaces at evaluation time
// (spec.md §4.5, §6.4). Search order: --search roots, then the script's own
// directory (or cwd for stdin/REPL input), then the manifest's stdlib root.
func newLoader(scriptPath string) (*module.Loader, error) {
	scriptDir := "."
	if scriptPath != "" {
		scriptDir = filepath.Dir(scriptPath)
	}

	configDir := scriptDir
	if manifestPath != "" {
		configDir = filepath.Dir(manifestPath)
	}
	manifest, err := module.LoadManifest(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	if stdlibRoot != "" {
		manifest.StdlibRoot = stdlibRoot
	}

	roots := append([]string{}, searchRoots...)
	roots = append(roots, manifest.Roots(configDir, scriptDir)...)
	return module.NewLoader(roots...), nil
}

func reportRuntimeErr(err error) {
	if diag, ok := err.(*errors.Diagnostic); ok {
		fmt.Fprint(os.Stderr, diag.Report())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

// dumpTokens lexes filename's source a second time (the parser's own lexer
// is single-pass and already consumed) and writes the --debug JSON dump to
// standard error.
func dumpTokens(filename, source string) {
	lx := lexer.New(filename, source)
	p := parser.New(lexer.New(filename, source), filename, source)
	prog := p.ParseProgram()

	var tokens []token.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	doc, err := debugdump.Dump(tokens, prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug dump failed: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, doc)
}
