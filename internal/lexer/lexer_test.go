package lexer

import (
	"strings"
	"testing"

	"nodelang/internal/diag"
	"nodelang/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, source string, expected ...token.Kind) []token.Token {
	t.Helper()
	tokens, diags := New(source, nil).Tokenize()
	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	expected = append(expected, token.EOF)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), kinds(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s (%q)", i, exp, tokens[i].Kind, tokens[i].Text)
		}
	}
	return tokens
}

func TestTokenizeSimple(t *testing.T) {
	expectKinds(t, `var x = 1 + 2;`,
		token.KW_VAR, token.IDENT, token.ASSIGN,
		token.NUMBER, token.PLUS, token.NUMBER, token.SEMICOLON)
}

func TestTokenizeKeywords(t *testing.T) {
	expectKinds(t, `if elif else fallthrough using node subnet state of while return class function`,
		token.KW_IF, token.KW_ELIF, token.KW_ELSE, token.KW_FALLTHROUGH, token.KW_USING,
		token.KW_NODE, token.KW_SUBNET, token.KW_STATE, token.KW_OF,
		token.KW_WHILE, token.KW_RETURN, token.KW_CLASS, token.KW_FUNCTION)
}

func TestTokenizeTypeKeywords(t *testing.T) {
	tokens := expectKinds(t, `any unknown number string boolean void never object symbol bigint undefined`,
		token.KW_ANY, token.KW_UNKNOWN, token.KW_NUMBER, token.KW_STRING, token.KW_BOOLEAN,
		token.KW_VOID, token.KW_NEVER, token.KW_OBJECT, token.KW_SYMBOL, token.KW_BIGINT, token.KW_UNDEFINED)
	for _, tok := range tokens[:len(tokens)-1] {
		if !tok.Kind.IsTypeKeyword() {
			t.Errorf("%s: expected a type keyword", tok.Kind)
		}
	}
}

func TestTokenizeGreedyOperators(t *testing.T) {
	expectKinds(t, `>>>= >>> >>= >> >= > -> -- -= - ** **= ?? ??= ?. ... === !== => :=`,
		token.USHR_ASSIGN, token.USHR, token.SHR_ASSIGN, token.SHR, token.GTE, token.GT,
		token.CONNECT, token.DEC, token.MINUS_ASSIGN, token.MINUS,
		token.STAR_STAR, token.STAR_STAR_ASSIGN, token.QUESTION_QUESTION, token.QUESTION_QUESTION_ASSIGN,
		token.QUESTION_DOT, token.ELLIPSIS, token.STRICT_EQ, token.STRICT_NEQ, token.ARROW, token.COLON_ASSIGN)
}

func TestTokenizeOptionalChainBeforeDigit(t *testing.T) {
	expectKinds(t, `a?.5:b`, token.IDENT, token.QUESTION, token.NUMBER, token.COLON, token.IDENT)
}

func TestTokenizeDelimiters(t *testing.T) {
	expectKinds(t, `( ) { } [ ] , . ; : @`,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.DOT,
		token.SEMICOLON, token.COLON, token.AT)
}

func TestLegacyColon(t *testing.T) {
	l := New(`x := 1`, nil)
	l.SetLegacyColon(true)
	tokens, _ := l.Tokenize()
	if got := kinds(tokens); got[1] != token.COLON || got[2] != token.NUMBER {
		t.Fatalf("expected ':' followed by number, got %v", got)
	}
	if tokens[1].Text != ":=" {
		t.Errorf("expected the colon token to span ':=', got %q", tokens[1].Text)
	}
}

func TestTokenizeString(t *testing.T) {
	tokens := expectKinds(t, `"hello" 'line1\nline2' "q\"\'\\\0\t"`, token.STRING, token.STRING, token.STRING)
	if tokens[0].Value != "hello" {
		t.Errorf("expected 'hello', got %q", tokens[0].Value)
	}
	if tokens[1].Value != "line1\nline2" {
		t.Errorf("expected string with newline, got %q", tokens[1].Value)
	}
	if tokens[2].Value != "q\"'\\\x00\t" {
		t.Errorf("unexpected escape decoding: %q", tokens[2].Value)
	}
}

func TestTokenizeInvalidEscape(t *testing.T) {
	tokens, diags := New(`"a\qb"`, nil).Tokenize()
	if len(diags) != 1 || diags[0].Code != diag.InvalidEscape {
		t.Fatalf("expected one invalid escape diagnostic, got %v", diags)
	}
	if tokens[0].Value != "ab" {
		t.Errorf("invalid escape should contribute nothing, got %q", tokens[0].Value)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tokens, diags := New(`'abc`, nil).Tokenize()
	if len(diags) != 1 || diags[0].Code != diag.UnterminatedString {
		t.Fatalf("expected unterminated string diagnostic, got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "Unterminated string literal") {
		t.Errorf("unexpected message %q", diags[0].Message)
	}
	if tokens[0].Kind != token.STRING || tokens[0].Value != "abc" {
		t.Errorf("expected STRING 'abc', got %s %q", tokens[0].Kind, tokens[0].Value)
	}
	if !tokens[0].Flags.Has(token.Unterminated) {
		t.Error("expected Unterminated flag")
	}
}

func TestTokenizeStringStopsAtLineBreak(t *testing.T) {
	tokens, diags := New("\"ab\ncd", nil).Tokenize()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if got := kinds(tokens); len(got) != 3 || got[1] != token.IDENT {
		t.Fatalf("expected STRING IDENT EOF, got %v", got)
	}
	if !tokens[1].Flags.Has(token.PrecedingLineBreak) {
		t.Error("expected identifier after the line break to carry PrecedingLineBreak")
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		source string
		value  string
		flag   token.Flags
	}{
		{"123", "123", token.None},
		{"0x1A", "26", token.HexSpecifier},
		{"0XfF", "255", token.HexSpecifier},
		{"0o17", "15", token.OctalSpecifier},
		{"0b101", "5", token.BinarySpecifier},
		{"0755", "493", token.Octal},
		{"1.5e2", "150", token.Scientific},
		{"10e2", "1000", token.Scientific},
		{"1e400", "1e400", token.Scientific},
		{"2.5E+999", "2.5E+999", token.Scientific},
		{"1.50", "1.5", token.None},
		{".5", "0.5", token.None},
		{"12345678901234567890123", "12345678901234567890123", token.None},
		{"0x123456789abcdef0123", "5373003642731685151011", token.HexSpecifier},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := expectKinds(t, tt.source, token.NUMBER)
			if tokens[0].Value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, tokens[0].Value)
			}
			if tokens[0].Flags&token.NumericLiteralFlags != tt.flag {
				t.Errorf("expected flags %b, got %b", tt.flag, tokens[0].Flags)
			}
		})
	}
}

func TestTokenizeMissingRadixDigits(t *testing.T) {
	tokens, diags := New(`0x`, nil).Tokenize()
	if len(diags) != 1 || diags[0].Code != diag.HexDigitExpected {
		t.Fatalf("expected hex digit diagnostic, got %v", diags)
	}
	if tokens[0].Value != "0" {
		t.Errorf("expected value 0, got %q", tokens[0].Value)
	}
}

func TestLegacyOctalDisabled(t *testing.T) {
	l := New(`0755`, nil)
	l.SetLegacyOctal(false)
	tokens, diags := l.Tokenize()
	if len(diags) != 1 || diags[0].Code != diag.LegacyOctal {
		t.Fatalf("expected legacy octal diagnostic, got %v", diags)
	}
	if tokens[0].Value != "493" || !tokens[0].Flags.Has(token.Octal) {
		t.Errorf("expected octal value 493, got %q (flags %b)", tokens[0].Value, tokens[0].Flags)
	}
}

func TestTokenizeComments(t *testing.T) {
	tokens := expectKinds(t, "x // line\n/* block\n */ y", token.IDENT, token.IDENT)
	if !tokens[1].Flags.Has(token.PrecedingLineBreak) {
		t.Error("expected PrecedingLineBreak on 'y'")
	}
	if tokens[0].Flags.Has(token.PrecedingLineBreak) {
		t.Error("'x' must not carry PrecedingLineBreak")
	}
}

func TestTokenizeUnterminatedComment(t *testing.T) {
	tokens, diags := New("a /* never closed", nil).Tokenize()
	if len(diags) != 1 || diags[0].Code != diag.UnterminatedComment {
		t.Fatalf("expected unterminated comment diagnostic, got %v", diags)
	}
	if got := kinds(tokens); len(got) != 2 || got[1] != token.EOF {
		t.Errorf("expected IDENT EOF, got %v", got)
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	tokens, diags := New("a # b", nil).Tokenize()
	if len(diags) != 1 || diags[0].Code != diag.InvalidCharacter {
		t.Fatalf("expected invalid character diagnostic, got %v", diags)
	}
	if got := kinds(tokens); len(got) != 4 || got[1] != token.ILLEGAL || got[2] != token.IDENT {
		t.Errorf("expected IDENT ILLEGAL IDENT EOF, got %v", got)
	}
}

func TestTokenizeIdentifiers(t *testing.T) {
	tokens := expectKinds(t, `$$ $out _x größe`, token.IDENT, token.IDENT, token.IDENT, token.IDENT)
	if tokens[3].Value != "größe" {
		t.Errorf("expected unicode identifier, got %q", tokens[3].Value)
	}
}

func TestTokenTextMatchesRange(t *testing.T) {
	source := "let s = 'a\\tb' /* c */ + 0x10 >>>= node;\n  x -> y"
	tokens, _ := New(source, nil).Tokenize()
	for _, tok := range tokens {
		if tok.Text != source[tok.Pos:tok.End] {
			t.Errorf("%s: text %q does not match source range %q", tok.Kind, tok.Text, source[tok.Pos:tok.End])
		}
	}
}

func TestLookAheadRestoresState(t *testing.T) {
	l := New("a b c d", nil)
	l.Scan()
	before := l.Token()
	result := l.LookAhead(func() bool {
		l.Scan()
		l.Scan()
		return l.Kind() == token.IDENT
	})
	if !result {
		t.Error("expected lookahead callback result to be returned")
	}
	if l.Token() != before {
		t.Errorf("state changed across LookAhead: %v -> %v", before, l.Token())
	}
}

func TestLookAheadRestoresOnPanic(t *testing.T) {
	l := New("a b c", nil)
	l.Scan()
	before := l.Token()
	func() {
		defer func() { _ = recover() }()
		l.LookAhead(func() bool {
			l.Scan()
			panic("boom")
		})
	}()
	if l.Token() != before {
		t.Errorf("state not restored after panic: %v", l.Token())
	}
}

func TestTryScan(t *testing.T) {
	l := New("a b c", nil)
	l.Scan()
	if l.TryScan(func() bool { l.Scan(); return false }) {
		t.Fatal("expected false")
	}
	if l.TokenText() != "a" {
		t.Errorf("failed TryScan must rewind, at %q", l.TokenText())
	}
	if !l.TryScan(func() bool { l.Scan(); return true }) {
		t.Fatal("expected true")
	}
	if l.TokenText() != "b" {
		t.Errorf("successful TryScan must keep progress, at %q", l.TokenText())
	}
}

func TestScanRange(t *testing.T) {
	l := New("alpha beta gamma", nil)
	l.Scan()
	var inner []string
	l.ScanRange(6, 4, func() bool {
		for l.Scan() != token.EOF {
			inner = append(inner, l.TokenText())
		}
		return true
	})
	if len(inner) != 1 || inner[0] != "beta" {
		t.Errorf("expected [beta], got %v", inner)
	}
	if l.TokenText() != "alpha" {
		t.Errorf("expected state restored to 'alpha', got %q", l.TokenText())
	}
	if l.Scan(); l.TokenText() != "beta" {
		t.Errorf("expected scanning to continue over full text, got %q", l.TokenText())
	}
}

func TestSplitGreater(t *testing.T) {
	l := New("x>>y", nil)
	l.Scan()
	if l.Scan() != token.SHR {
		t.Fatalf("expected >>, got %s", l.Kind())
	}
	if l.SplitGreater() != token.GT || l.Pos() != 2 {
		t.Fatalf("expected single '>' ending at 2, got %s ending at %d", l.Kind(), l.Pos())
	}
	if l.Scan() != token.GT {
		t.Errorf("expected second '>', got %s", l.Kind())
	}
}

func TestSetTextRange(t *testing.T) {
	l := New("one two three", nil)
	l.SetTextRange(4, 3)
	if l.Scan() != token.IDENT || l.TokenText() != "two" {
		t.Fatalf("expected 'two', got %s %q", l.Kind(), l.TokenText())
	}
	if l.Scan() != token.EOF {
		t.Errorf("expected EOF at end of range, got %s", l.Kind())
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		150:     "150",
		0.5:     "0.5",
		1e21:    "1e+21",
		1.5e-10: "1.5e-10",
		0:       "0",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
