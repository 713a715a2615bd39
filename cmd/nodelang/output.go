package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// ---- colors ----

var (
	colorPrimary = lipgloss.Color("#8B5CF6") // Violet
	colorAccent  = lipgloss.Color("#06B6D4") // Cyan
	colorError   = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	locationStyle = lipgloss.NewStyle().Bold(true)
	codeStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	caretStyle    = lipgloss.NewStyle().Foreground(colorError)
	kindStyle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	branchStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

// painter applies styles only when color output is enabled.
type painter struct {
	color bool
}

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// ---- JSON ----

func printJSON(w io.Writer, v interface{}, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

func diagsToSlice(src *source, diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		pos := src.lines.Position(d.Start)
		result[i] = map[string]interface{}{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     pos.Line,
			"column":   pos.Column,
			"offset":   d.Start,
			"length":   d.Length,
		}
		if d.Hint != "" {
			result[i]["hint"] = d.Hint
		}
	}
	return result
}

// ---- diagnostics ----

func printDiags(w io.Writer, src *source, diags []diag.Diagnostic, p painter) {
	for _, d := range diags {
		fmt.Fprintln(w, formatDiag(src, d, p))
	}
}

// formatDiag renders d with its location followed by the offending source
// line and a caret underline.
func formatDiag(src *source, d diag.Diagnostic, p painter) string {
	pos := src.lines.Position(d.Start)
	sevStyle := errorStyle
	if d.Severity == diag.Warning {
		sevStyle = warningStyle
	}

	var b strings.Builder
	b.WriteString(p.paint(locationStyle, fmt.Sprintf("%s:%d:%d:", src.name, pos.Line, pos.Column)))
	b.WriteString(" ")
	b.WriteString(p.paint(sevStyle, d.Severity.String()))
	b.WriteString(" ")
	b.WriteString(p.paint(codeStyle, "["+d.Code+"]"))
	b.WriteString(" ")
	b.WriteString(d.Message)
	if d.Hint != "" {
		b.WriteString(" (hint: " + d.Hint + ")")
	}

	line := lineAt(src.text, pos.Offset-(pos.Column-1))
	if strings.TrimSpace(line) == "" {
		return b.String()
	}
	width := max(d.Length, 1)
	if rest := len(line) - (pos.Column - 1); width > rest {
		width = max(rest, 1)
	}
	b.WriteString("\n    ")
	b.WriteString(line)
	b.WriteString("\n    ")
	b.WriteString(strings.Repeat(" ", pos.Column-1))
	b.WriteString(p.paint(caretStyle, "^"+strings.Repeat("~", width-1)))
	return b.String()
}

// lineAt returns the text of the line starting at offset start, with tabs
// expanded to single spaces so the caret lines up.
func lineAt(text string, start int) string {
	if start < 0 || start > len(text) {
		return ""
	}
	end := start
	for end < len(text) && text[end] != '\n' && text[end] != '\r' {
		end++
	}
	return strings.ReplaceAll(text[start:end], "\t", " ")
}

// ---- tokens ----

func printTokensText(w io.Writer, src *source, tokens []token.Token, p painter) {
	for _, tok := range tokens {
		pos := src.lines.Position(tok.Pos)
		text := tok.Text
		if tok.Kind == token.EOF {
			text = ""
		}
		kind := fmt.Sprintf("%-16s", tok.Kind)
		fmt.Fprintf(w, "%s %-20s %d:%d\n", p.paint(kindStyle, kind), text, pos.Line, pos.Column)
	}
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Value  string `json:"value,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

func tokensToSlice(src *source, tokens []token.Token) []tokenJSON {
	toks := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		pos := src.lines.Position(tok.Pos)
		toks = append(toks, tokenJSON{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Value:  tok.Value,
			Line:   pos.Line,
			Column: pos.Column,
			Offset: tok.Pos,
		})
	}
	return toks
}

// ---- syntax tree ----

// renderTree draws n and its descendants as an indented tree, one node per
// line: the node kind, its detail and its line:column.
func renderTree(src *source, n ast.Node, p painter) string {
	return buildTree(src, n, p).String()
}

func buildTree(src *source, n ast.Node, p painter) *tree.Tree {
	t := tree.Root(nodeLabel(src, n, p))
	if p.color {
		t = t.EnumeratorStyle(branchStyle)
	}
	ast.ForEachChild(n, func(child ast.Node) bool {
		t.Child(buildTree(src, child, p))
		return false
	})
	return t
}

func nodeLabel(src *source, n ast.Node, p painter) string {
	pos := src.lines.Position(n.Base().Pos)
	label := p.paint(kindStyle, n.Kind().String())
	if detail := nodeDetail(n); detail != "" {
		label += " " + p.paint(detailStyle, detail)
	}
	return label + " " + p.paint(codeStyle, fmt.Sprintf("%d:%d", pos.Line, pos.Column))
}

// nodeDetail returns the part of a leaf node that its kind does not already
// say.
func nodeDetail(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Identifier:
		return n.Text
	case *ast.NumericLiteral:
		return n.Text
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", n.Text)
	case *ast.TokenNode:
		return n.Token.String()
	case *ast.KeywordType:
		return n.Keyword.String()
	case *ast.PrefixUnaryExpression:
		return n.Operator.String()
	case *ast.PostfixUnaryExpression:
		return n.Operator.String()
	}
	return ""
}
