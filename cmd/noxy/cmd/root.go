// Package cmd implements Noxy's command-line driver (spec.md §6.1): run a
// script file, fall back to an interactive REPL with no file argument, and
// report a `version` subcommand, mirroring the teacher's cobra-based
// cmd/<bin>/cmd package layout.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	debugDump    bool
	noTypecheck  bool
	searchRoots  []string
	stdlibRoot   string
	manifestPath string
)

var rootCmd = &cobra.Command{
	Use:   "noxy [file]",
	Short: "Noxy interpreter",
	Long: `noxy runs programs written in Noxy, a small statically-typed,
tree-walking interpreted language.

Examples:
  # Run a script file
  noxy script.nx

  # Start an interactive session
  noxy

  # Dump tokens and AST before evaluating
  noxy --debug script.nx`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
	Version:      Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&debugDump, "debug", false, "dump tokens and AST to standard error before evaluation")
	rootCmd.PersistentFlags().BoolVar(&noTypecheck, "no-typecheck", false, "skip the static analyzer (parsing is still required)")
	rootCmd.PersistentFlags().StringSliceVar(&searchRoots, "search", nil, "extra module search roots, checked in order before the script's own directory")
	rootCmd.PersistentFlags().StringVar(&stdlibRoot, "stdlib", "", "override the manifest's standard library root")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "config", "", "path to a noxy.yaml project manifest (default: alongside the script)")
}
