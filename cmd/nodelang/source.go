package main

import (
	"fmt"
	"io"
	"os"

	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/lexer"
	"nodelang/internal/parser"
	"nodelang/internal/span"
	"nodelang/internal/token"
)

const stdinName = "<stdin>"

// source is one input text together with its line index.
type source struct {
	name  string
	text  string
	lines *span.LineMap
}

func newSource(name, text string) *source {
	return &source{name: name, text: text, lines: span.NewLineMap(text)}
}

// readSource reads the file named by path, or stdin for "" and "-".
func readSource(path string, stdin io.Reader) (*source, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("cannot read stdin: %w", err)
		}
		return newSource(stdinName, string(data)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %s: %w", path, err)
	}
	return newSource(path, string(data)), nil
}

// tokenize scans src with the lexer switches from opts.
func tokenize(src *source, opts parser.Options) ([]token.Token, []diag.Diagnostic) {
	l := lexer.New(src.text, nil)
	l.SetLegacyColon(opts.LegacyColon)
	l.SetLegacyOctal(!opts.NoLegacyOctal)
	return l.Tokenize()
}

// parseSource parses src and collects its diagnostics. The error is only
// set for internal parser failures.
func parseSource(src *source, opts parser.Options) (*ast.SourceFile, []diag.Diagnostic, error) {
	var bag diag.Bag
	file, err := parser.ParseSourceFile(src.name, src.text, bag.Add, opts)
	if err != nil {
		return nil, nil, err
	}
	return file, bag.Items, nil
}
