package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]...",
	Short: "Parse files and report their diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"-"}
		}
		var sources []*source
		for _, path := range args {
			src, err := readSource(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			sources = append(sources, src)
		}
		return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), sources)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(out, errOut io.Writer, sources []*source) error {
	p := painter{color: cfg.Output.Color}
	total, failed := 0, 0
	for _, src := range sources {
		file, diags, err := parseSource(src, cfg.ParserOptions())
		if err != nil {
			return fmt.Errorf("%s: %w", src.name, err)
		}
		logf(errOut, "%s: %d nodes, %d diagnostics", src.name, file.NodeCount, len(diags))
		printDiags(errOut, src, diags, p)
		total += len(diags)
		if len(diags) > 0 {
			failed++
		}
	}

	if total == 0 {
		fmt.Fprintf(out, "%d file(s) ok\n", len(sources))
		return nil
	}
	fmt.Fprintf(out, "%d problem(s) in %d of %d file(s)\n", total, failed, len(sources))
	return errHasErrors
}
