// Command lumen is the CLI driver: lex, parse, resolve, and run Lumen
// programs from a file or an inline expression.
package main

import (
	"fmt"
	"os"

	"lumen/cmd/lumen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
