// Command nodelang is the CLI entry point for the nodelang toolchain.
//
// Usage:
//
//	nodelang tokens <file> [--json]            Print tokens
//	nodelang parse  <file> [--format tree]     Print the syntax tree
//	nodelang fmt    <file> [-w]                Reprint a file in canonical form
//	nodelang check  <file>...                  Report diagnostics only
//	nodelang repl                              Start interactive REPL
//	nodelang version                           Print version information
//
// A file argument of "-" (or none) reads from standard input.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
