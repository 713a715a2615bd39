package main

import (
	"io"

	"github.com/spf13/cobra"
)

var tokensJSON bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a file and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(firstArg(args), cmd.InOrStdin())
		if err != nil {
			return err
		}
		return runTokens(cmd.OutOrStdout(), cmd.ErrOrStderr(), src, tokensJSON)
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "print tokens as JSON")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(out, errOut io.Writer, src *source, asJSON bool) error {
	tokens, diags := tokenize(src, cfg.ParserOptions())
	logf(errOut, "%s: %d tokens, %d diagnostics", src.name, len(tokens), len(diags))

	if asJSON {
		output := map[string]interface{}{
			"tokens":      tokensToSlice(src, tokens),
			"diagnostics": diagsToSlice(src, diags),
		}
		if err := printJSON(out, output, cfg.Output.Indent); err != nil {
			return err
		}
	} else {
		p := painter{color: cfg.Output.Color}
		printTokensText(out, src, tokens, p)
		printDiags(errOut, src, diags, p)
	}

	if len(diags) > 0 {
		return errHasErrors
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
