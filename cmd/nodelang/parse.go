package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nodelang/internal/ast"
	"nodelang/internal/config"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a file and print its syntax tree",
	Long: `Parse a file and print its syntax tree.

Formats:
  json  the tree plus diagnostics as one JSON document
  yaml  the tree as YAML; diagnostics go to stderr
  tree  an indented outline; diagnostics go to stderr`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(firstArg(args), cmd.InOrStdin())
		if err != nil {
			return err
		}
		format := cfg.Output.Format
		if parseFormat != "" {
			format = parseFormat
		}
		return runParse(cmd.OutOrStdout(), cmd.ErrOrStderr(), src, format)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: json, yaml or tree (default from config)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(out, errOut io.Writer, src *source, format string) error {
	opts := cfg.ParserOptions()
	if verbose {
		tokens, _ := tokenize(src, opts)
		logf(errOut, "%s: %d tokens", src.name, len(tokens))
	}
	file, diags, err := parseSource(src, opts)
	if err != nil {
		return err
	}
	logf(errOut, "%s: %d nodes, %d diagnostics", src.name, file.NodeCount, len(diags))

	p := painter{color: cfg.Output.Color}
	switch format {
	case config.OutputJSON:
		data, err := ast.Dump(file, "")
		if err != nil {
			return err
		}
		output := map[string]interface{}{
			"ast":         json.RawMessage(data),
			"diagnostics": diagsToSlice(src, diags),
		}
		if err := printJSON(out, output, cfg.Output.Indent); err != nil {
			return err
		}
	case config.OutputYAML:
		data, err := ast.DumpYAML(file, cfg.Output.Indent)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
		printDiags(errOut, src, diags, p)
	case config.OutputTree:
		fmt.Fprintln(out, renderTree(src, file, p))
		printDiags(errOut, src, diags, p)
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or tree)", format)
	}

	if len(diags) > 0 {
		return errHasErrors
	}
	return nil
}
