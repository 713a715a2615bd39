package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"nodelang/internal/config"
	"nodelang/internal/printer"
)

const (
	replPrompt         = "nodelang> "
	replContinuePrompt = "...       "
	replFormatFmt      = "fmt"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session that parses each input",
	Long: `Start an interactive session. Every complete input is parsed and its
syntax tree printed. Input continues on the next line while braces are open.

Commands:
  :format json|yaml|tree|fmt   change how results are printed
  exit                         leave the session (Ctrl+D works too)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// replSession holds the state that survives between inputs.
type replSession struct {
	out, errOut io.Writer
	format      string
	painter     painter
	count       int
}

func runRepl() error {
	// Determine history file path (~/.nodelang_history)
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".nodelang_history")
	}

	p := painter{color: cfg.Output.Color}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            p.paint(promptStyle, replPrompt),
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		p.paint(kindStyle, "nodelang REPL"), p.paint(codeStyle, "(type 'exit' or Ctrl+D to quit)"))

	s := &replSession{out: rl.Stdout(), errOut: rl.Stderr(), format: config.OutputTree, painter: p}
	var accumulated strings.Builder
	braceDepth := 0

	for {
		// Update prompt based on multi-line state
		if braceDepth > 0 {
			rl.SetPrompt(p.paint(codeStyle, replContinuePrompt))
		} else {
			rl.SetPrompt(p.paint(promptStyle, replPrompt))
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if braceDepth > 0 {
					// Cancel multi-line input
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s\n", p.paint(codeStyle, "(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
			}
			return nil
		}

		if braceDepth == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "exit" {
				return nil
			}
			if strings.HasPrefix(trimmed, ":") {
				s.command(trimmed)
				continue
			}
		}

		braceDepth += braceDelta(line)
		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		text := accumulated.String()
		accumulated.Reset()
		s.eval(text)
	}
}

// braceDelta counts opening minus closing braces on a line.
func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

func (s *replSession) command(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":format":
		if len(fields) != 2 {
			fmt.Fprintf(s.out, "format is %s\n", s.format)
			return
		}
		switch fields[1] {
		case config.OutputJSON, config.OutputYAML, config.OutputTree, replFormatFmt:
			s.format = fields[1]
		default:
			fmt.Fprintf(s.errOut, "unknown format %q\n", fields[1])
		}
	default:
		fmt.Fprintf(s.errOut, "unknown command %s\n", fields[0])
	}
}

// eval parses one complete input and prints the result in the session
// format.
func (s *replSession) eval(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.count++
	src := newSource(fmt.Sprintf("<repl:%d>", s.count), text)
	file, diags, err := parseSource(src, cfg.ParserOptions())
	if err != nil {
		fmt.Fprintf(s.errOut, "%s\n", s.painter.paint(errorStyle, "error: "+err.Error()))
		return
	}
	if len(diags) > 0 {
		printDiags(s.errOut, src, diags, s.painter)
		return
	}

	switch s.format {
	case replFormatFmt:
		fmt.Fprint(s.out, printer.New(printer.Options{Indent: cfg.Output.Indent}).Print(file))
	case config.OutputTree:
		fmt.Fprintln(s.out, renderTree(src, file, s.painter))
	default:
		if err := runParse(s.out, s.errOut, src, s.format); err != nil && !errors.Is(err, errHasErrors) {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
	}
}
