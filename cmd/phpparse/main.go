// Command phpparse is a thin CLI wrapper around pkg/parser, used to inspect
// the lexer and parser output of a PHP source file from the shell.
package main

import (
	"os"

	"github.com/timglabisch/pico-php-parser/cmd/phpparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
