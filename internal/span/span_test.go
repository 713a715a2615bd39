package span

import "testing"

func TestLineMapPosition(t *testing.T) {
	m := NewLineMap("ab\ncd\r\nef\rg h")
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
		{10, 4, 1},
		{12, 4, 3},
		{-4, 1, 1},
		{100, 4, 4},
	}
	for _, tt := range tests {
		got := m.Position(tt.offset)
		if got.Line != tt.line || got.Column != tt.column {
			t.Errorf("Position(%d) = %s, want %d:%d", tt.offset, got, tt.line, tt.column)
		}
	}
	if got := m.LineCount(); got != 4 {
		t.Errorf("LineCount() = %d, want 4", got)
	}
}

func TestLineMapSpan(t *testing.T) {
	m := NewLineMap("let x\n  = 1")
	s := m.Span(4, 5)
	if s.String() != "1:5..2:4" {
		t.Errorf("Span(4, 5) = %s", s)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}
