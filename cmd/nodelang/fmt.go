package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"nodelang/internal/printer"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reprint a file in canonical form",
	Long: `Reprint a file in canonical form. Files with syntax errors are left
untouched and their diagnostics are reported instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(firstArg(args), cmd.InOrStdin())
		if err != nil {
			return err
		}
		formatted, err := runFmt(cmd.ErrOrStderr(), src)
		if err != nil {
			return err
		}
		if fmtWrite && src.name != stdinName {
			if formatted == src.text {
				return nil
			}
			if err := os.WriteFile(src.name, []byte(formatted), 0o644); err != nil {
				return fmt.Errorf("cannot write file %s: %w", src.name, err)
			}
			logf(cmd.ErrOrStderr(), "formatted %s", src.name)
			return nil
		}
		_, err = io.WriteString(cmd.OutOrStdout(), formatted)
		return err
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the file")
	rootCmd.AddCommand(fmtCmd)
}

// runFmt returns the canonical text of src, or errHasErrors after printing
// its diagnostics.
func runFmt(errOut io.Writer, src *source) (string, error) {
	file, diags, err := parseSource(src, cfg.ParserOptions())
	if err != nil {
		return "", err
	}
	if len(diags) > 0 {
		printDiags(errOut, src, diags, painter{color: cfg.Output.Color})
		return "", errHasErrors
	}
	return printer.New(printer.Options{Indent: cfg.Output.Indent}).Print(file), nil
}
