package diag

import (
	"testing"

	"nodelang/internal/span"
)

func TestBag(t *testing.T) {
	var bag Bag
	var sink Sink = bag.Add
	sink(Warningf(LegacyOctal, 0, 3, "Octal literals are not allowed."))
	if bag.HasErrors() {
		t.Error("a warning must not count as an error")
	}
	sink(Errorf(TokenExpected, 5, 1, "'%s' expected.", ")"))
	if !bag.HasErrors() || bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics with an error, got %v", bag.Items)
	}
	if got := bag.Items[1].Message; got != "')' expected." {
		t.Errorf("message: got %q", got)
	}
}

func TestFormat(t *testing.T) {
	lines := span.NewLineMap("a\nb c")
	d := Errorf(TokenExpected, 4, 1, "';' expected.")
	if got, want := d.Format("x.nl", lines), "x.nl:2:3: [E2001] error: ';' expected."; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	d.Hint = "add a semicolon"
	if got, want := d.String(), "[E2001] error at 4: ';' expected. (hint: add a semicolon)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
