// Package span provides source position and span types used across the compiler.
package span

import (
	"fmt"
	"sort"
)

// Position represents a position in source code.
type Position struct {
	Offset int `json:"offset"` // byte offset from beginning of source
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// LineMap converts byte offsets of one source text into line/column positions.
type LineMap struct {
	starts []int // offset of the first byte of every line
	size   int
}

// NewLineMap indexes the line starts of text. "\r\n", "\r", "\n", U+2028 and
// U+2029 all end a line.
func NewLineMap(text string) *LineMap {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		case 0xE2:
			// U+2028 / U+2029 encode as E2 80 A8 / E2 80 A9
			if i+2 < len(text) && text[i+1] == 0x80 && (text[i+2] == 0xA8 || text[i+2] == 0xA9) {
				i += 2
				starts = append(starts, i+1)
			}
		}
	}
	return &LineMap{starts: starts, size: len(text)}
}

// Position returns the line/column position of offset. Offsets outside the
// text are clamped.
func (m *LineMap) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > m.size {
		offset = m.size
	}
	line := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > offset }) - 1
	return Position{Offset: offset, Line: line + 1, Column: offset - m.starts[line] + 1}
}

// Span returns the span covering [start, start+length).
func (m *LineMap) Span(start, length int) Span {
	return Span{Start: m.Position(start), End: m.Position(start + length)}
}

// LineCount returns the number of lines in the text.
func (m *LineMap) LineCount() int {
	return len(m.starts)
}
