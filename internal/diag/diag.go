// Package diag provides diagnostic (error/warning) types for the compiler.
package diag

import (
	"fmt"

	"nodelang/internal/span"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Stable diagnostic codes. E1xxx are lexical, E2xxx syntactic.
const (
	InvalidCharacter        = "E1001"
	UnterminatedString      = "E1002"
	UnterminatedComment     = "E1003"
	DigitExpected           = "E1004"
	InvalidEscape           = "E1005"
	HexDigitExpected        = "E1006"
	BinaryDigitExpected     = "E1007"
	OctalDigitExpected      = "E1008"
	LegacyOctal             = "E1009"
	TokenExpected           = "E2001"
	CommaExpected           = "E2002"
	IdentifierExpected      = "E2003"
	ExpressionExpected      = "E2004"
	DeclarationExpected     = "E2005"
	PropertyNameExpected    = "E2006"
	TypeExpected            = "E2007"
	UnexpectedToken         = "E2008"
	InvalidAssignmentTarget = "E2009"
	StatementExpected       = "E2010"
)

// Diagnostic represents a compiler diagnostic message. Start and Length are
// byte offsets into the source text.
type Diagnostic struct {
	Code     string   `json:"code"`           // stable error code, e.g. "E1001"
	Severity Severity `json:"severity"`       // error or warning
	Message  string   `json:"message"`        // human-readable description
	Start    int      `json:"start"`          // byte offset of the first offending byte
	Length   int      `json:"length"`         // byte length of the offending range
	Hint     string   `json:"hint,omitempty"` // optional hint
}

// String returns a human-readable representation of the diagnostic using raw
// offsets. Use Format for line/column output.
func (d Diagnostic) String() string {
	msg := fmt.Sprintf("[%s] %s at %d: %s", d.Code, d.Severity, d.Start, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Format renders the diagnostic with a line/column location taken from lines.
func (d Diagnostic) Format(fileName string, lines *span.LineMap) string {
	pos := lines.Position(d.Start)
	msg := fmt.Sprintf("%s:%d:%d: [%s] %s: %s", fileName, pos.Line, pos.Column, d.Code, d.Severity, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Errorf creates an error diagnostic at [start, start+length).
func Errorf(code string, start, length int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Start:    start,
		Length:   length,
	}
}

// Warningf creates a warning diagnostic at [start, start+length).
func Warningf(code string, start, length int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Start:    start,
		Length:   length,
	}
}

// Sink receives diagnostics as they are produced. It is owned by the caller.
type Sink func(d Diagnostic)

// Bag is a Sink that keeps every diagnostic it receives.
type Bag struct {
	Items []Diagnostic
}

// Add records d. Its method value satisfies Sink.
func (b *Bag) Add(d Diagnostic) {
	b.Items = append(b.Items, d)
}

// HasErrors reports whether any recorded diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for _, d := range b.Items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Len returns the number of recorded diagnostics.
func (b *Bag) Len() int { return len(b.Items) }
