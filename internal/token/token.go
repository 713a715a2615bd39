// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF

	// Literals
	IDENT  // identifiers: x, foo, $port
	NUMBER // numeric literals: 123, 0x1A, 1.5e2
	STRING // string literals: "hello", 'hello'

	// Punctuation
	LBRACE            // {
	RBRACE            // }
	LPAREN            // (
	RPAREN            // )
	LBRACKET          // [
	RBRACKET          // ]
	DOT               // .
	ELLIPSIS          // ...
	SEMICOLON         // ;
	COMMA             // ,
	AT                // @
	QUESTION          // ?
	QUESTION_DOT      // ?.
	QUESTION_QUESTION // ??
	COLON             // :
	COLON_ASSIGN      // :=

	// Operators
	LT         // <
	GT         // >
	LTE        // <=
	GTE        // >=
	EQ         // ==
	NEQ        // !=
	STRICT_EQ  // ===
	STRICT_NEQ // !==
	ARROW      // =>
	CONNECT    // ->
	PLUS       // +
	MINUS      // -
	STAR       // *
	STAR_STAR  // **
	SLASH      // /
	PERCENT    // %
	INC        // ++
	DEC        // --
	SHL        // <<
	SHR        // >>
	USHR       // >>>
	AMP        // &
	PIPE       // |
	CARET      // ^
	BANG       // !
	TILDE      // ~
	AND        // &&
	OR         // ||

	// Assignment
	ASSIGN                   // =
	PLUS_ASSIGN              // +=
	MINUS_ASSIGN             // -=
	STAR_ASSIGN              // *=
	STAR_STAR_ASSIGN         // **=
	SLASH_ASSIGN             // /=
	PERCENT_ASSIGN           // %=
	SHL_ASSIGN               // <<=
	SHR_ASSIGN               // >>=
	USHR_ASSIGN              // >>>=
	AMP_ASSIGN               // &=
	PIPE_ASSIGN              // |=
	CARET_ASSIGN             // ^=
	AND_ASSIGN               // &&=
	OR_ASSIGN                // ||=
	QUESTION_QUESTION_ASSIGN // ??=

	// Reserved words
	KW_BREAK
	KW_CASE
	KW_CATCH
	KW_CLASS
	KW_CONST
	KW_CONTINUE
	KW_DEBUGGER
	KW_DEFAULT
	KW_DELETE
	KW_DO
	KW_ELIF
	KW_ELSE
	KW_ENUM
	KW_EXPORT
	KW_EXTENDS
	KW_FALSE
	KW_FALLTHROUGH
	KW_FINALLY
	KW_FOR
	KW_FUNCTION
	KW_IF
	KW_IMPORT
	KW_IN
	KW_INSTANCEOF
	KW_NEW
	KW_NULL
	KW_RETURN
	KW_SUPER
	KW_SWITCH
	KW_THIS
	KW_THROW
	KW_TRUE
	KW_TRY
	KW_TYPEOF
	KW_USING
	KW_VAR
	KW_VOID
	KW_WHILE
	KW_WITH

	// Strict mode reserved words
	KW_IMPLEMENTS
	KW_INTERFACE
	KW_LET
	KW_PACKAGE
	KW_PRIVATE
	KW_PROTECTED
	KW_PUBLIC
	KW_STATIC
	KW_YIELD

	// Contextual keywords
	KW_ABSTRACT
	KW_AS
	KW_ASYNC
	KW_AWAIT
	KW_CONSTRUCTOR
	KW_DECLARE
	KW_FROM
	KW_GET
	KW_NAMESPACE
	KW_NODE
	KW_OF
	KW_READONLY
	KW_REQUIRE
	KW_SET
	KW_STATE
	KW_SUBNET
	KW_TYPE

	// Type keywords (contextual)
	KW_ANY
	KW_UNKNOWN
	KW_NUMBER
	KW_STRING
	KW_BOOLEAN
	KW_NEVER
	KW_OBJECT
	KW_SYMBOL
	KW_BIGINT
	KW_UNDEFINED

	kindCount
)

const (
	firstPunctuation        = LBRACE
	lastPunctuation         = QUESTION_QUESTION_ASSIGN
	firstAssignment         = ASSIGN
	lastAssignment          = QUESTION_QUESTION_ASSIGN
	compoundAssignmentStart = PLUS_ASSIGN

	firstKeyword            = KW_BREAK
	lastReservedWord        = KW_WITH
	firstFutureReservedWord = KW_IMPLEMENTS
	lastFutureReservedWord  = KW_YIELD
	firstContextualKeyword  = KW_ABSTRACT
	lastKeyword             = KW_UNDEFINED
	firstTypeKeyword        = KW_ANY
)

var kindNames = [kindCount]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	LBRACE:            "{",
	RBRACE:            "}",
	LPAREN:            "(",
	RPAREN:            ")",
	LBRACKET:          "[",
	RBRACKET:          "]",
	DOT:               ".",
	ELLIPSIS:          "...",
	SEMICOLON:         ";",
	COMMA:             ",",
	AT:                "@",
	QUESTION:          "?",
	QUESTION_DOT:      "?.",
	QUESTION_QUESTION: "??",
	COLON:             ":",
	COLON_ASSIGN:      ":=",

	LT:         "<",
	GT:         ">",
	LTE:        "<=",
	GTE:        ">=",
	EQ:         "==",
	NEQ:        "!=",
	STRICT_EQ:  "===",
	STRICT_NEQ: "!==",
	ARROW:      "=>",
	CONNECT:    "->",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	STAR_STAR:  "**",
	SLASH:      "/",
	PERCENT:    "%",
	INC:        "++",
	DEC:        "--",
	SHL:        "<<",
	SHR:        ">>",
	USHR:       ">>>",
	AMP:        "&",
	PIPE:       "|",
	CARET:      "^",
	BANG:       "!",
	TILDE:      "~",
	AND:        "&&",
	OR:         "||",

	ASSIGN:                   "=",
	PLUS_ASSIGN:              "+=",
	MINUS_ASSIGN:             "-=",
	STAR_ASSIGN:              "*=",
	STAR_STAR_ASSIGN:         "**=",
	SLASH_ASSIGN:             "/=",
	PERCENT_ASSIGN:           "%=",
	SHL_ASSIGN:               "<<=",
	SHR_ASSIGN:               ">>=",
	USHR_ASSIGN:              ">>>=",
	AMP_ASSIGN:               "&=",
	PIPE_ASSIGN:              "|=",
	CARET_ASSIGN:             "^=",
	AND_ASSIGN:               "&&=",
	OR_ASSIGN:                "||=",
	QUESTION_QUESTION_ASSIGN: "??=",
}

var keywords = map[string]Kind{
	"break":       KW_BREAK,
	"case":        KW_CASE,
	"catch":       KW_CATCH,
	"class":       KW_CLASS,
	"const":       KW_CONST,
	"continue":    KW_CONTINUE,
	"debugger":    KW_DEBUGGER,
	"default":     KW_DEFAULT,
	"delete":      KW_DELETE,
	"do":          KW_DO,
	"elif":        KW_ELIF,
	"else":        KW_ELSE,
	"enum":        KW_ENUM,
	"export":      KW_EXPORT,
	"extends":     KW_EXTENDS,
	"false":       KW_FALSE,
	"fallthrough": KW_FALLTHROUGH,
	"finally":     KW_FINALLY,
	"for":         KW_FOR,
	"function":    KW_FUNCTION,
	"if":          KW_IF,
	"import":      KW_IMPORT,
	"in":          KW_IN,
	"instanceof":  KW_INSTANCEOF,
	"new":         KW_NEW,
	"null":        KW_NULL,
	"return":      KW_RETURN,
	"super":       KW_SUPER,
	"switch":      KW_SWITCH,
	"this":        KW_THIS,
	"throw":       KW_THROW,
	"true":        KW_TRUE,
	"try":         KW_TRY,
	"typeof":      KW_TYPEOF,
	"using":       KW_USING,
	"var":         KW_VAR,
	"void":        KW_VOID,
	"while":       KW_WHILE,
	"with":        KW_WITH,

	"implements": KW_IMPLEMENTS,
	"interface":  KW_INTERFACE,
	"let":        KW_LET,
	"package":    KW_PACKAGE,
	"private":    KW_PRIVATE,
	"protected":  KW_PROTECTED,
	"public":     KW_PUBLIC,
	"static":     KW_STATIC,
	"yield":      KW_YIELD,

	"abstract":    KW_ABSTRACT,
	"as":          KW_AS,
	"async":       KW_ASYNC,
	"await":       KW_AWAIT,
	"constructor": KW_CONSTRUCTOR,
	"declare":     KW_DECLARE,
	"from":        KW_FROM,
	"get":         KW_GET,
	"namespace":   KW_NAMESPACE,
	"node":        KW_NODE,
	"of":          KW_OF,
	"readonly":    KW_READONLY,
	"require":     KW_REQUIRE,
	"set":         KW_SET,
	"state":       KW_STATE,
	"subnet":      KW_SUBNET,
	"type":        KW_TYPE,

	"any":       KW_ANY,
	"unknown":   KW_UNKNOWN,
	"number":    KW_NUMBER,
	"string":    KW_STRING,
	"boolean":   KW_BOOLEAN,
	"never":     KW_NEVER,
	"object":    KW_OBJECT,
	"symbol":    KW_SYMBOL,
	"bigint":    KW_BIGINT,
	"undefined": KW_UNDEFINED,
}

func init() {
	for text, kind := range keywords {
		kindNames[kind] = text
	}
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if k >= 0 && k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is any keyword, reserved or contextual.
func (k Kind) IsKeyword() bool {
	return k >= firstKeyword && k <= lastKeyword
}

// IsReservedWord reports whether k can never be used as an identifier.
func (k Kind) IsReservedWord() bool {
	return k >= firstKeyword && k <= lastReservedWord
}

// IsFutureReservedWord reports whether k is reserved only in strict mode.
func (k Kind) IsFutureReservedWord() bool {
	return k >= firstFutureReservedWord && k <= lastFutureReservedWord
}

// IsContextualKeyword reports whether k is a keyword only in certain positions.
func (k Kind) IsContextualKeyword() bool {
	return k >= firstContextualKeyword && k <= lastKeyword
}

// IsTypeKeyword reports whether k names a primitive type.
func (k Kind) IsTypeKeyword() bool {
	return (k >= firstTypeKeyword && k <= lastKeyword) || k == KW_VOID
}

// IsIdentifier reports whether a token of kind k may serve as an identifier:
// plain identifiers plus every non-reserved keyword.
func (k Kind) IsIdentifier() bool {
	return k == IDENT || (k > lastReservedWord && k <= lastKeyword)
}

// IsIdentifierOrKeyword reports whether the token text is word-like, which is
// what property names after '.' accept.
func (k Kind) IsIdentifierOrKeyword() bool {
	return k == IDENT || k.IsKeyword()
}

// IsLiteral returns true if the kind is a literal (ident/number/string).
func (k Kind) IsLiteral() bool {
	return k >= IDENT && k <= STRING
}

// IsPunctuation reports whether k is an operator or punctuator.
func (k Kind) IsPunctuation() bool {
	return k >= firstPunctuation && k <= lastPunctuation
}

// IsAssignment reports whether k is '=' or a compound assignment operator.
func (k Kind) IsAssignment() bool {
	return k >= firstAssignment && k <= lastAssignment
}

// IsCompoundAssignment reports whether k is an operator-assignment like '+='.
func (k Kind) IsCompoundAssignment() bool {
	return k >= compoundAssignmentStart && k <= lastAssignment
}

// MarshalText renders the kind by name so dumps stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Flags carries per-token scanner facts.
type Flags uint16

const (
	PrecedingLineBreak Flags = 1 << iota
	Unterminated
	Scientific      // e.g. 10e2
	Octal           // legacy octal, e.g. 0755
	HexSpecifier    // e.g. 0x1A
	BinarySpecifier // e.g. 0b101
	OctalSpecifier  // e.g. 0o17
	ContainsInvalidEscape

	None Flags = 0

	NumericLiteralFlags = Scientific | Octal | HexSpecifier | BinarySpecifier | OctalSpecifier
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Token represents a lexical token with its kind, text, and source range.
type Token struct {
	Kind  Kind   `json:"kind"`
	Pos   int    `json:"pos"`   // byte offset of the first byte
	End   int    `json:"end"`   // byte offset past the last byte
	Text  string `json:"text"`  // raw source text in [Pos, End)
	Value string `json:"value"` // decoded value for literals and identifiers
	Flags Flags  `json:"flags,omitempty"`
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d", t.Kind, t.Text, t.Pos)
}
