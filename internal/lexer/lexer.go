// Package lexer implements the lexical analysis (tokenization) for nodelang.
//
// The Lexer materializes one token at a time. Parsers drive it with Scan and
// use Checkpoint/Restore (or the TryScan, LookAhead and ScanRange helpers) to
// look ahead without losing their place.
package lexer

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// Lexer tokenizes source code one token at a time.
type Lexer struct {
	text string
	end  int // end of the scan range (exclusive)

	pos          int // current read position; end of the current token after Scan
	fullStartPos int // start of the trivia preceding the current token
	tokenPos     int // start of the current token

	tok   token.Kind
	value string
	flags token.Flags

	onError       diag.Sink
	legacyColon   bool
	noLegacyOctal bool
}

// New creates a new Lexer for the given source text. onError may be nil.
func New(text string, onError diag.Sink) *Lexer {
	l := &Lexer{onError: onError}
	l.ResetText(text)
	return l
}

// SetOnError replaces the diagnostic sink.
func (l *Lexer) SetOnError(onError diag.Sink) {
	l.onError = onError
}

// SetLegacyColon makes ":=" scan as a plain ':' token, silently consuming the
// '='. By default ":=" is the distinct COLON_ASSIGN token.
func (l *Lexer) SetLegacyColon(on bool) {
	l.legacyColon = on
}

// SetLegacyOctal controls whether a leading zero followed by octal digits
// (017) is accepted as an octal literal. When off such literals are still
// scanned as octal but reported. The default is on.
func (l *Lexer) SetLegacyOctal(on bool) {
	l.noLegacyOctal = !on
}

// ResetText re-initializes the lexer to scan text from offset 0.
func (l *Lexer) ResetText(text string) {
	l.text = text
	l.SetTextRange(0, -1)
}

// SetTextRange restricts scanning to [start, start+length). A negative length
// scans to the end of the text.
func (l *Lexer) SetTextRange(start, length int) {
	if length < 0 {
		l.end = len(l.text)
	} else {
		l.end = min(start+length, len(l.text))
	}
	l.pos = start
	l.fullStartPos = start
	l.tokenPos = start
	l.tok = token.ILLEGAL
	l.value = ""
	l.flags = token.None
}

// Tokenize scans the entire source and returns all tokens and diagnostics.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var bag diag.Bag
	saved := l.onError
	l.onError = bag.Add
	defer func() { l.onError = saved }()

	var tokens []token.Token
	for {
		l.Scan()
		tokens = append(tokens, l.Token())
		if l.tok == token.EOF {
			break
		}
	}
	return tokens, bag.Items
}

// ---- accessors ----

func (l *Lexer) Text() string            { return l.text }
func (l *Lexer) Kind() token.Kind        { return l.tok }
func (l *Lexer) Pos() int                { return l.pos }
func (l *Lexer) TokenPos() int           { return l.tokenPos }
func (l *Lexer) FullStartPos() int       { return l.fullStartPos }
func (l *Lexer) TokenValue() string      { return l.value }
func (l *Lexer) TokenFlags() token.Flags { return l.flags }
func (l *Lexer) HasPrecedingLineBreak() bool {
	return l.flags.Has(token.PrecedingLineBreak)
}

// TokenText returns the raw source text of the current token.
func (l *Lexer) TokenText() string {
	return l.text[l.tokenPos:l.pos]
}

// Token materializes the current token.
func (l *Lexer) Token() token.Token {
	return token.Token{
		Kind:  l.tok,
		Pos:   l.tokenPos,
		End:   l.pos,
		Text:  l.TokenText(),
		Value: l.value,
		Flags: l.flags,
	}
}

// ---- internal helpers ----

// runeAt returns the code point at offset i and its width, or -1 past the end.
func (l *Lexer) runeAt(i int) (rune, int) {
	if i >= l.end {
		return -1, 0
	}
	if b := l.text[i]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(l.text[i:l.end])
}

// byteAt returns the byte at offset i, or 0 past the end of the range.
func (l *Lexer) byteAt(i int) byte {
	if i >= l.end {
		return 0
	}
	return l.text[i]
}

func (l *Lexer) error(code string, start, length int, msg string) {
	if l.onError != nil {
		l.onError(diag.Errorf(code, start, length, "%s", msg))
	}
}

// ---- token reading ----

// Scan advances to the next token and returns its kind.
func (l *Lexer) Scan() token.Kind {
	l.fullStartPos = l.pos
	l.flags = token.None
	l.value = ""

	for {
		l.tokenPos = l.pos
		if l.pos >= l.end {
			l.tok = token.EOF
			return l.tok
		}

		ch, size := l.runeAt(l.pos)
		switch {
		case ch == '\n' || ch == '\r' || ch == 0x2028 || ch == 0x2029:
			l.flags |= token.PrecedingLineBreak
			l.pos += size
			continue
		case token.IsWhiteSpaceSingleLine(ch):
			l.pos += size
			continue
		case ch == '/' && l.byteAt(l.pos+1) == '/':
			l.skipLineComment()
			continue
		case ch == '/' && l.byteAt(l.pos+1) == '*':
			l.skipBlockComment()
			continue
		case ch == '"' || ch == '\'':
			l.value = l.readString(byte(ch))
			l.tok = token.STRING
			return l.tok
		case token.IsDigit(ch):
			l.tok = l.readNumber()
			return l.tok
		case ch == '.' && token.IsDigit(rune(l.byteAt(l.pos+1))):
			l.tok = l.readNumber()
			return l.tok
		case token.IsIdentifierStart(ch):
			l.tok = l.readIdentifier()
			return l.tok
		}

		if kind, n := l.readOperator(); n > 0 {
			l.pos += n
			l.tok = kind
			return l.tok
		}

		l.error(diag.InvalidCharacter, l.pos, size, "Invalid character.")
		l.pos += size
		l.tok = token.ILLEGAL
		return l.tok
	}
}

// skipLineComment skips from // to end of line.
func (l *Lexer) skipLineComment() {
	l.pos += 2
	for l.pos < l.end {
		ch, size := l.runeAt(l.pos)
		if token.IsLineBreak(ch) {
			break
		}
		l.pos += size
	}
}

// skipBlockComment skips a /* */ comment. An unterminated comment runs to the
// end of the range.
func (l *Lexer) skipBlockComment() {
	start := l.pos
	l.pos += 2
	for l.pos < l.end {
		if l.text[l.pos] == '*' && l.byteAt(l.pos+1) == '/' {
			l.pos += 2
			return
		}
		ch, size := l.runeAt(l.pos)
		if token.IsLineBreak(ch) {
			l.flags |= token.PrecedingLineBreak
		}
		l.pos += size
	}
	l.error(diag.UnterminatedComment, start, l.pos-start, "'*/' expected.")
}

// readString reads a string literal quoted by quote and returns its decoded value.
func (l *Lexer) readString(quote byte) string {
	l.pos++ // skip opening quote
	var value strings.Builder

	for {
		if l.pos >= l.end {
			l.flags |= token.Unterminated
			l.error(diag.UnterminatedString, l.tokenPos, l.pos-l.tokenPos, "Unterminated string literal.")
			return value.String()
		}
		ch, size := l.runeAt(l.pos)
		if ch == rune(quote) {
			l.pos++ // skip closing quote
			return value.String()
		}
		if token.IsLineBreak(ch) {
			l.flags |= token.Unterminated
			l.error(diag.UnterminatedString, l.tokenPos, l.pos-l.tokenPos, "Unterminated string literal.")
			return value.String()
		}
		if ch == '\\' {
			l.readEscape(&value)
			continue
		}
		value.WriteRune(ch)
		l.pos += size
	}
}

var escapes = map[rune]byte{
	'0':  0,
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
}

// readEscape decodes the escape sequence at l.pos into value. Unknown escapes
// are reported and contribute nothing.
func (l *Lexer) readEscape(value *strings.Builder) {
	start := l.pos
	l.pos++ // skip backslash
	if l.pos >= l.end {
		return
	}
	ch, size := l.runeAt(l.pos)
	if token.IsLineBreak(ch) {
		// left for readString to report as unterminated
		return
	}
	l.pos += size
	if b, ok := escapes[ch]; ok {
		value.WriteByte(b)
		return
	}
	l.flags |= token.ContainsInvalidEscape
	l.error(diag.InvalidEscape, start, l.pos-start, "Invalid escape sequence '\\"+string(ch)+"'.")
}

// readNumber reads a numeric literal and sets l.value to its normalized text.
func (l *Lexer) readNumber() token.Kind {
	start := l.pos
	if l.text[l.pos] == '0' {
		switch l.byteAt(l.pos + 1) {
		case 'x', 'X':
			l.pos += 2
			l.value = l.readRadixDigits(16, token.IsHexDigit, diag.HexDigitExpected, "Hexadecimal digit expected.")
			l.flags |= token.HexSpecifier
			return token.NUMBER
		case 'b', 'B':
			l.pos += 2
			l.value = l.readRadixDigits(2, token.IsBinaryDigit, diag.BinaryDigitExpected, "Binary digit expected.")
			l.flags |= token.BinarySpecifier
			return token.NUMBER
		case 'o', 'O':
			l.pos += 2
			l.value = l.readRadixDigits(8, token.IsOctalDigit, diag.OctalDigitExpected, "Octal digit expected.")
			l.flags |= token.OctalSpecifier
			return token.NUMBER
		}
		if token.IsOctalDigit(rune(l.byteAt(l.pos + 1))) {
			l.pos++
			l.value = l.readRadixDigits(8, token.IsOctalDigit, diag.OctalDigitExpected, "Octal digit expected.")
			l.flags |= token.Octal
			if l.noLegacyOctal {
				l.error(diag.LegacyOctal, start, l.pos-start, "Octal literals are not allowed. Use the syntax '0o"+l.text[start+1:l.pos]+"'.")
			}
			return token.NUMBER
		}
	}

	l.skipDigits()
	normalize := false
	if l.byteAt(l.pos) == '.' {
		normalize = true
		l.pos++
		l.skipDigits()
	}
	if c := l.byteAt(l.pos); c == 'e' || c == 'E' {
		normalize = true
		l.flags |= token.Scientific
		l.pos++
		if c := l.byteAt(l.pos); c == '+' || c == '-' {
			l.pos++
		}
		if !token.IsDigit(rune(l.byteAt(l.pos))) {
			l.error(diag.DigitExpected, l.pos, 0, "Digit expected.")
		}
		l.skipDigits()
	}

	text := l.text[start:l.pos]
	if !normalize {
		l.value = text
		return token.NUMBER
	}
	f, err := strconv.ParseFloat(strings.TrimRight(text, "eE+-"), 64)
	if (err != nil && f == 0) || math.IsInf(f, 0) {
		l.value = text
		return token.NUMBER
	}
	l.value = FormatNumber(f)
	return token.NUMBER
}

func (l *Lexer) skipDigits() {
	for token.IsDigit(rune(l.byteAt(l.pos))) {
		l.pos++
	}
}

// readRadixDigits reads digits accepted by isDigit and returns their decimal value.
func (l *Lexer) readRadixDigits(base int, isDigit func(rune) bool, code, msg string) string {
	start := l.pos
	for isDigit(rune(l.byteAt(l.pos))) {
		l.pos++
	}
	if l.pos == start {
		l.error(code, l.pos, 0, msg)
		return "0"
	}
	n, ok := new(big.Int).SetString(l.text[start:l.pos], base)
	if !ok {
		return "0"
	}
	return n.String()
}

// FormatNumber renders f the way the language prints numbers: plain decimal
// notation between 1e-7 and 1e21, exponent notation outside.
func FormatNumber(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs == 0 || (abs >= 1e-7 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() token.Kind {
	start := l.pos
	_, size := l.runeAt(l.pos)
	l.pos += size
	for l.pos < l.end {
		ch, size := l.runeAt(l.pos)
		if !token.IsIdentifierPart(ch) {
			break
		}
		l.pos += size
	}
	l.value = l.text[start:l.pos]
	return token.LookupIdent(l.value)
}

// operators lists every punctuator, longest first within each leading byte,
// so the first prefix match is the greedy one.
var operators = map[byte][]struct {
	text string
	kind token.Kind
}{
	'{': {{"{", token.LBRACE}},
	'}': {{"}", token.RBRACE}},
	'(': {{"(", token.LPAREN}},
	')': {{")", token.RPAREN}},
	'[': {{"[", token.LBRACKET}},
	']': {{"]", token.RBRACKET}},
	'.': {{"...", token.ELLIPSIS}, {".", token.DOT}},
	';': {{";", token.SEMICOLON}},
	',': {{",", token.COMMA}},
	'@': {{"@", token.AT}},
	'?': {{"??=", token.QUESTION_QUESTION_ASSIGN}, {"??", token.QUESTION_QUESTION}, {"?.", token.QUESTION_DOT}, {"?", token.QUESTION}},
	':': {{":=", token.COLON_ASSIGN}, {":", token.COLON}},
	'<': {{"<<=", token.SHL_ASSIGN}, {"<<", token.SHL}, {"<=", token.LTE}, {"<", token.LT}},
	'>': {{">>>=", token.USHR_ASSIGN}, {">>>", token.USHR}, {">>=", token.SHR_ASSIGN}, {">>", token.SHR}, {">=", token.GTE}, {">", token.GT}},
	'=': {{"===", token.STRICT_EQ}, {"==", token.EQ}, {"=>", token.ARROW}, {"=", token.ASSIGN}},
	'!': {{"!==", token.STRICT_NEQ}, {"!=", token.NEQ}, {"!", token.BANG}},
	'+': {{"++", token.INC}, {"+=", token.PLUS_ASSIGN}, {"+", token.PLUS}},
	'-': {{"->", token.CONNECT}, {"--", token.DEC}, {"-=", token.MINUS_ASSIGN}, {"-", token.MINUS}},
	'*': {{"**=", token.STAR_STAR_ASSIGN}, {"**", token.STAR_STAR}, {"*=", token.STAR_ASSIGN}, {"*", token.STAR}},
	'/': {{"/=", token.SLASH_ASSIGN}, {"/", token.SLASH}},
	'%': {{"%=", token.PERCENT_ASSIGN}, {"%", token.PERCENT}},
	'&': {{"&&=", token.AND_ASSIGN}, {"&&", token.AND}, {"&=", token.AMP_ASSIGN}, {"&", token.AMP}},
	'|': {{"||=", token.OR_ASSIGN}, {"||", token.OR}, {"|=", token.PIPE_ASSIGN}, {"|", token.PIPE}},
	'^': {{"^=", token.CARET_ASSIGN}, {"^", token.CARET}},
	'~': {{"~", token.TILDE}},
}

// readOperator matches the longest punctuator at l.pos and returns its kind
// and byte length; n is 0 when nothing matches.
func (l *Lexer) readOperator() (kind token.Kind, n int) {
	rest := l.text[l.pos:l.end]
	for _, op := range operators[rest[0]] {
		if !strings.HasPrefix(rest, op.text) {
			continue
		}
		if op.kind == token.COLON_ASSIGN && l.legacyColon {
			return token.COLON, 2
		}
		if op.kind == token.QUESTION_DOT && len(rest) > 2 && token.IsDigit(rune(rest[2])) {
			// "a?.5:b" is a conditional, not optional chaining
			continue
		}
		return op.kind, len(op.text)
	}
	return token.ILLEGAL, 0
}

// SplitGreater re-scans a '>'-led compound token (">>", ">=", ">>>=" ...) as
// a lone '>'. Type argument lists use it to close on nested '>>'.
func (l *Lexer) SplitGreater() token.Kind {
	switch l.tok {
	case token.SHR, token.USHR, token.GTE, token.SHR_ASSIGN, token.USHR_ASSIGN:
		l.pos = l.tokenPos + 1
		l.tok = token.GT
	}
	return l.tok
}
