// Package clog is a thin wrapper around the standard library log package,
// giving the CLI a single place to prefix and gate verbose diagnostics.
package clog

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "phpparse: ", 0)

var verbose bool

// SetVerbose toggles whether Verbosef emits anything.
func SetVerbose(v bool) { verbose = v }

// Verbosef logs a formatted diagnostic when verbose mode is on.
func Verbosef(format string, args ...any) {
	if verbose {
		std.Printf(format, args...)
	}
}

// Errorf always logs, regardless of verbose mode.
func Errorf(format string, args ...any) {
	std.Printf(format, args...)
}
