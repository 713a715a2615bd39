package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nodelang/internal/config"
)

// errHasErrors makes the process exit with status 1 once diagnostics have
// already been printed.
var errHasErrors = errors.New("source has errors")

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "nodelang",
	Short: "nodelang - scanner, parser and printer for the nodelang language",
	Long: `nodelang tokenizes, parses and reprints nodelang sources.

Settings are read from --config, $NODELANG_CONFIG, ./nodelang.toml,
./nodelang.yaml or ~/.config/nodelang/config.toml, in that order.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print phase summaries to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Discover(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if noColor {
		c.Output.Color = false
	}
	cfg = c
	if verbose && c.Path() != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "using config %s\n", c.Path())
	}
	return nil
}

// logf writes a --verbose line to w.
func logf(w io.Writer, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
