/*
tableau is a semantic tableau prover for modal propositional logic.

Usage:

	tableau prove [flags] FILE
	tableau active FILE
	tableau logics

See 'tableau help <command>' for the flags of each command.
*/
package main

import (
	"os"

	"github.com/rfielding/kripke-tableau/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
