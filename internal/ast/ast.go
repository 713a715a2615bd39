// Package ast defines the syntax tree for nodelang.
//
// Every node embeds NodeBase, which carries the kind tag, the source range
// [Pos, End), contextual flags and a non-owning parent reference. Parents are
// filled in by SetParents after the tree is complete.
package ast

import "nodelang/internal/token"

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() Kind
	Base() *NodeBase
	// ForEachChild calls visit on each direct child in source order and stops
	// early, returning true, as soon as visit returns true.
	ForEachChild(visit func(Node) bool) bool
}

// Expression is the interface for expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Statement is the interface for statement and declaration nodes.
type Statement interface {
	Node
	statementNode()
}

// TypeNode is the interface for type annotation nodes.
type TypeNode interface {
	Node
	typeNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeFlags carries contextual facts recorded on nodes.
type NodeFlags uint16

const (
	FlagsNone NodeFlags = 0
	FlagLet   NodeFlags = 1 << iota
	FlagConst
	FlagAmbient       // inside a 'declare' context
	FlagOptionalChain // part of a ?. chain
	FlagThisNodeHasError

	FlagBlockScoped = FlagLet | FlagConst
	// FlagsContext are the flags inherited by every node finished inside the context.
	FlagsContext = FlagAmbient
)

// NodeBase provides the fields common to all AST nodes.
type NodeBase struct {
	NodeKind Kind      `json:"kind"`
	Pos      int       `json:"pos"`
	End      int       `json:"end"`
	Flags    NodeFlags `json:"flags,omitempty"`
	parent   Node
}

func (n *NodeBase) Kind() Kind      { return n.NodeKind }
func (n *NodeBase) Base() *NodeBase { return n }

// Parent returns the syntactic parent, or nil for the root or before SetParents ran.
func (n *NodeBase) Parent() Node { return n.parent }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (*ExprBase) expressionNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (*StmtBase) statementNode() {}

// TypeBase is embedded by all type nodes.
type TypeBase struct{ NodeBase }

func (*TypeBase) typeNode() {}

// NodeList is an ordered, ranged sequence of nodes. Its range runs from the
// start of the first element to just before the list terminator.
type NodeList[T Node] struct {
	Pos              int  `json:"pos"`
	End              int  `json:"end"`
	Nodes            []T  `json:"nodes"`
	HasTrailingComma bool `json:"hasTrailingComma,omitempty"`
}

// Len returns the number of elements; a nil list has none.
func (l *NodeList[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Nodes)
}

// At returns the i-th element.
func (l *NodeList[T]) At(i int) T {
	return l.Nodes[i]
}

// TokenNode wraps a single token: modifiers, '?', '*', '...', '?.'.
type TokenNode struct {
	NodeBase
	Token token.Kind `json:"token"`
}

// Modifiers holds decorators and modifier tokens in source order.
type Modifiers = NodeList[Node]

// HasModifier reports whether mods contains a modifier token of kind k.
func HasModifier(mods *Modifiers, k token.Kind) bool {
	if mods == nil {
		return false
	}
	for _, m := range mods.Nodes {
		if t, ok := m.(*TokenNode); ok && t.Token == k {
			return true
		}
	}
	return false
}

// ============================================================
// Names and literals
// ============================================================

// Identifier is a name. Identifiers synthesized for missing names have empty Text.
type Identifier struct {
	ExprBase
	Text string `json:"text"`
}

// NumericLiteral holds the normalized decimal value of a number.
type NumericLiteral struct {
	ExprBase
	Text         string      `json:"text"`
	LiteralFlags token.Flags `json:"literalFlags,omitempty"`
}

// StringLiteral holds the decoded value of a string.
type StringLiteral struct {
	ExprBase
	Text         string      `json:"text"`
	LiteralFlags token.Flags `json:"literalFlags,omitempty"`
}

// QualifiedName is a dotted type name: A.B.
type QualifiedName struct {
	NodeBase
	Left  Node        `json:"left"` // *Identifier or *QualifiedName
	Right *Identifier `json:"right"`
}

// ComputedPropertyName is a [expr] property name.
type ComputedPropertyName struct {
	NodeBase
	Expression Expression `json:"expression"`
}

// Decorator is @expr before a declaration.
type Decorator struct {
	NodeBase
	Expression Expression `json:"expression"`
}

// TypeParameter is one entry of <T extends C = D>.
type TypeParameter struct {
	NodeBase
	Name       *Identifier `json:"name"`
	Constraint TypeNode    `json:"constraint,omitempty"`
	Default    TypeNode    `json:"default,omitempty"`
}

// Parameter is one function or node parameter.
type Parameter struct {
	NodeBase
	Modifiers     *Modifiers  `json:"modifiers,omitempty"`
	DotDotDot     *TokenNode  `json:"dotDotDot,omitempty"`
	Name          *Identifier `json:"name"`
	QuestionToken *TokenNode  `json:"questionToken,omitempty"`
	Type          TypeNode    `json:"type,omitempty"`
	Initializer   Expression  `json:"initializer,omitempty"`
}

// ============================================================
// Types
// ============================================================

// KeywordType is a primitive type keyword such as number or void.
type KeywordType struct {
	TypeBase
	Keyword token.Kind `json:"keyword"`
}

// TypeReference names a type, optionally with type arguments.
type TypeReference struct {
	TypeBase
	TypeName      Node                `json:"typeName"` // *Identifier or *QualifiedName
	TypeArguments *NodeList[TypeNode] `json:"typeArguments,omitempty"`
}

// ArrayType is T[].
type ArrayType struct {
	TypeBase
	ElementType TypeNode `json:"elementType"`
}

// ParenthesizedType is (T).
type ParenthesizedType struct {
	TypeBase
	Type TypeNode `json:"type"`
}

// ============================================================
// Source file (top-level AST root)
// ============================================================

// SourceFile is the root of a parsed file. It owns every node below it.
type SourceFile struct {
	NodeBase
	FileName       string               `json:"fileName"`
	Text           string               `json:"-"`
	Statements     *NodeList[Statement] `json:"statements"`
	EndOfFileToken *TokenNode           `json:"endOfFileToken"`
	NodeCount      int                  `json:"nodeCount"`
}

// TextOf returns the source text covered by n.
func (f *SourceFile) TextOf(n Node) string {
	b := n.Base()
	return f.Text[b.Pos:b.End]
}
