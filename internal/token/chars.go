package token

import "unicode"

const (
	lineSeparator      = 0x2028
	paragraphSeparator = 0x2029
	nextLine           = 0x0085
	byteOrderMark      = 0xFEFF
)

func IsDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func IsOctalDigit(ch rune) bool {
	return ch >= '0' && ch <= '7'
}

func IsBinaryDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}

func IsHexDigit(ch rune) bool {
	return IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// IsLineBreak reports whether ch terminates a line.
func IsLineBreak(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == lineSeparator || ch == paragraphSeparator
}

// IsWhiteSpaceSingleLine reports whether ch is whitespace that does not end a line.
func IsWhiteSpaceSingleLine(ch rune) bool {
	switch ch {
	case ' ', '\t', '\v', '\f', 0xA0, nextLine, 0x1680, 0x202F, 0x205F, 0x3000, byteOrderMark:
		return true
	}
	return ch >= 0x2000 && ch <= 0x200B
}

// IsIdentifierStart reports whether ch may begin an identifier.
func IsIdentifierStart(ch rune) bool {
	if ch == '$' || ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') {
		return true
	}
	return ch > 0x7F && unicode.IsLetter(ch)
}

// IsIdentifierPart reports whether ch may continue an identifier.
func IsIdentifierPart(ch rune) bool {
	if IsIdentifierStart(ch) || IsDigit(ch) {
		return true
	}
	return ch > 0x7F && (unicode.IsDigit(ch) || unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch) || unicode.Is(unicode.Pc, ch))
}
