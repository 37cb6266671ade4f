// Command noxy runs and interactively evaluates Noxy programs (spec.md §6.1).
package main

import (
	"os"

	"github.com/noxy-lang/noxy/cmd/noxy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
