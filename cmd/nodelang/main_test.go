package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nodelang/internal/config"
	"nodelang/internal/diag"
)

// helper: run with default settings and plain output
func withConfig(t *testing.T) *config.Config {
	t.Helper()
	savedCfg, savedVerbose := cfg, verbose
	cfg = config.Default()
	cfg.Output.Color = false
	verbose = false
	t.Cleanup(func() { cfg, verbose = savedCfg, savedVerbose })
	return cfg
}

func TestReadSource(t *testing.T) {
	src, err := readSource("-", strings.NewReader("let x"))
	if err != nil {
		t.Fatal(err)
	}
	if src.name != stdinName || src.text != "let x" {
		t.Errorf("stdin source: got %q %q", src.name, src.text)
	}

	path := filepath.Join(t.TempDir(), "a.nl")
	if err := os.WriteFile(path, []byte("a -> b"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err = readSource(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if src.name != path || src.text != "a -> b" {
		t.Errorf("file source: got %q %q", src.name, src.text)
	}

	if _, err := readSource(filepath.Join(t.TempDir(), "missing.nl"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunTokensText(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	if err := runTokens(&out, &errOut, newSource("t.nl", "x = 1"), false); err != nil {
		t.Fatalf("runTokens: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 token lines, got %d:\n%s", len(lines), out.String())
	}
	want := [][]string{
		{"IDENT", "x", "1:1"},
		{"=", "=", "1:3"},
		{"NUMBER", "1", "1:5"},
		{"EOF", "1:6"},
	}
	for i, fields := range want {
		if got := strings.Fields(lines[i]); strings.Join(got, " ") != strings.Join(fields, " ") {
			t.Errorf("line %d: got %q, want %q", i, got, fields)
		}
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected stderr: %s", errOut.String())
	}
}

func TestRunTokensJSON(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	err := runTokens(&out, &errOut, newSource("t.nl", "a # b"), true)
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("expected errHasErrors, got %v", err)
	}

	var doc struct {
		Tokens      []tokenJSON      `json:"tokens"`
		Diagnostics []map[string]any `json:"diagnostics"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(doc.Tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(doc.Tokens))
	}
	if doc.Tokens[2].Kind != "IDENT" || doc.Tokens[2].Column != 5 {
		t.Errorf("third token: got %+v", doc.Tokens[2])
	}
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0]["code"] != diag.InvalidCharacter {
		t.Errorf("diagnostics: got %v", doc.Diagnostics)
	}
}

func TestRunParseJSON(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	if err := runParse(&out, &errOut, newSource("t.nl", "let x = 1"), config.OutputJSON); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	var doc struct {
		AST         map[string]any   `json:"ast"`
		Diagnostics []map[string]any `json:"diagnostics"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if doc.AST["kind"] != "SourceFile" {
		t.Errorf("root kind: got %v", doc.AST["kind"])
	}
	if doc.Diagnostics == nil || len(doc.Diagnostics) != 0 {
		t.Errorf("expected empty diagnostics array, got %v", doc.Diagnostics)
	}
}

func TestRunParseYAML(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	if err := runParse(&out, &errOut, newSource("t.nl", "a -> b"), config.OutputYAML); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	for _, want := range []string{"kind: SourceFile", "kind: ConnectExpression"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("YAML output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunParseTree(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	if err := runParse(&out, &errOut, newSource("t.nl", "let x = 1"), config.OutputTree); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	for _, want := range []string{"SourceFile 1:1", "VariableStatement 1:1", "Identifier x 1:5", "NumericLiteral 1 1:9"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("tree output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunParseReportsDiagnostics(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	err := runParse(&out, &errOut, newSource("t.nl", "x = ;"), config.OutputTree)
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("expected errHasErrors, got %v", err)
	}
	if !strings.Contains(errOut.String(), "t.nl:1:5: error [E2004]") {
		t.Errorf("stderr: got %q", errOut.String())
	}
}

func TestRunParseUnknownFormat(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	err := runParse(&out, &errOut, newSource("t.nl", "x"), "xml")
	if err == nil || errors.Is(err, errHasErrors) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestRunFmt(t *testing.T) {
	withConfig(t)
	var errOut bytes.Buffer
	got, err := runFmt(&errOut, newSource("t.nl", "let x=1\na->b"))
	if err != nil {
		t.Fatalf("runFmt: %v", err)
	}
	if want := "let x = 1;\na -> b;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := runFmt(&errOut, newSource("t.nl", "x = ;")); !errors.Is(err, errHasErrors) {
		t.Errorf("expected errHasErrors for broken source, got %v", err)
	}
}

func TestRunFmtLegacyColon(t *testing.T) {
	c := withConfig(t)
	c.Parser.WalrusColon = false
	var errOut bytes.Buffer
	got, err := runFmt(&errOut, newSource("t.nl", "x := 1"))
	if err != nil {
		t.Fatalf("runFmt: %v", err)
	}
	if want := "x: 1;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunCheck(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	good := newSource("good.nl", "node N { $$: any; }")
	if err := runCheck(&out, &errOut, []*source{good, newSource("b.nl", "a -> b")}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if got := out.String(); got != "2 file(s) ok\n" {
		t.Errorf("got %q", got)
	}

	out.Reset()
	err := runCheck(&out, &errOut, []*source{good, newSource("bad.nl", "x = ;")})
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("expected errHasErrors, got %v", err)
	}
	if !strings.HasSuffix(out.String(), "in 1 of 2 file(s)\n") {
		t.Errorf("summary: got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "bad.nl:1:5") {
		t.Errorf("stderr: got %q", errOut.String())
	}
}

func TestFormatDiag(t *testing.T) {
	src := newSource("t.nl", "let a\nx = ;\n")
	d := diag.Errorf(diag.ExpressionExpected, 10, 1, "Expression expected.")
	got := formatDiag(src, d, painter{})
	want := "t.nl:2:5: error [E2004] Expression expected.\n    x = ;\n        ^"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	d = diag.Warningf(diag.LegacyOctal, 0, 3, "Octal literal.")
	d.Hint = "use 0o"
	got = formatDiag(src, d, painter{})
	want = "t.nl:1:1: warning [E1009] Octal literal. (hint: use 0o)\n    let a\n    ^~~"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestBraceDelta(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"node N {", 1},
		{"}", -1},
		{"a = { b: { c } }", 0},
		{"x := 1", 0},
	}
	for _, tt := range tests {
		if got := braceDelta(tt.line); got != tt.want {
			t.Errorf("braceDelta(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestReplSession(t *testing.T) {
	withConfig(t)
	var out, errOut bytes.Buffer
	s := &replSession{out: &out, errOut: &errOut, format: config.OutputTree}

	s.command(":format fmt")
	if s.format != replFormatFmt {
		t.Fatalf("format: got %q", s.format)
	}
	s.eval("a->b\n")
	if got := out.String(); got != "a -> b;\n" {
		t.Errorf("fmt output: got %q", got)
	}

	out.Reset()
	s.eval("   \n")
	if out.Len() != 0 || errOut.Len() != 0 {
		t.Errorf("blank input produced output: %q %q", out.String(), errOut.String())
	}

	s.eval("x = ;\n")
	if !strings.Contains(errOut.String(), "[E2004]") {
		t.Errorf("stderr: got %q", errOut.String())
	}

	errOut.Reset()
	s.command(":format xml")
	if s.format != replFormatFmt || !strings.Contains(errOut.String(), "unknown format") {
		t.Errorf("bad format accepted: %q %q", s.format, errOut.String())
	}
}

func TestVersionCommand(t *testing.T) {
	withConfig(t)
	t.Setenv(config.EnvVar, "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	if err := Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "nodelang v"+Version+"\n") {
		t.Errorf("got %q", out.String())
	}
}
