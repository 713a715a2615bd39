package ast

import "nodelang/internal/token"

// ============================================================
// Expressions
// ============================================================

// KeywordExpression is one of true, false, null, this or super. The node kind
// tells which.
type KeywordExpression struct {
	ExprBase
}

// ArrayLiteralExpression is [a, , ...b].
type ArrayLiteralExpression struct {
	ExprBase
	Elements *NodeList[Expression] `json:"elements"`
}

// ObjectLiteralExpression is { a: 1, b, ...c, m() {} }.
type ObjectLiteralExpression struct {
	ExprBase
	Properties *NodeList[Node] `json:"properties"`
}

// PropertyAccessExpression is obj.name or obj?.name.
type PropertyAccessExpression struct {
	ExprBase
	Expression       Expression  `json:"expression"`
	QuestionDotToken *TokenNode  `json:"questionDotToken,omitempty"`
	Name             *Identifier `json:"name"`
}

// ElementAccessExpression is obj[index] or obj?.[index].
type ElementAccessExpression struct {
	ExprBase
	Expression         Expression `json:"expression"`
	QuestionDotToken   *TokenNode `json:"questionDotToken,omitempty"`
	ArgumentExpression Expression `json:"argumentExpression"`
}

// CallExpression is callee<T>(args) or callee?.(args).
type CallExpression struct {
	ExprBase
	Expression       Expression            `json:"expression"`
	QuestionDotToken *TokenNode            `json:"questionDotToken,omitempty"`
	TypeArguments    *NodeList[TypeNode]   `json:"typeArguments,omitempty"`
	Arguments        *NodeList[Expression] `json:"arguments"`
}

// NewExpression is new C<T>(args). Arguments is nil when the parentheses
// are omitted.
type NewExpression struct {
	ExprBase
	Expression    Expression            `json:"expression"`
	TypeArguments *NodeList[TypeNode]   `json:"typeArguments,omitempty"`
	Arguments     *NodeList[Expression] `json:"arguments,omitempty"`
}

// TypeAssertionExpression is <T>expr.
type TypeAssertionExpression struct {
	ExprBase
	Type       TypeNode   `json:"type"`
	Expression Expression `json:"expression"`
}

// ParenthesizedExpression is (expr).
type ParenthesizedExpression struct {
	ExprBase
	Expression Expression `json:"expression"`
}

// FunctionExpression is function* name<T>(params): R { body }.
type FunctionExpression struct {
	ExprBase
	Modifiers      *Modifiers                `json:"modifiers,omitempty"`
	AsteriskToken  *TokenNode                `json:"asteriskToken,omitempty"`
	Name           *Identifier               `json:"name,omitempty"`
	TypeParameters *NodeList[*TypeParameter] `json:"typeParameters,omitempty"`
	Parameters     *NodeList[*Parameter]     `json:"parameters"`
	Type           TypeNode                  `json:"type,omitempty"`
	Body           *Block                    `json:"body"`
}

// ArrowFunction is (params): R => body. Body is a *Block or an Expression.
type ArrowFunction struct {
	ExprBase
	Modifiers              *Modifiers                `json:"modifiers,omitempty"`
	TypeParameters         *NodeList[*TypeParameter] `json:"typeParameters,omitempty"`
	Parameters             *NodeList[*Parameter]     `json:"parameters"`
	Type                   TypeNode                  `json:"type,omitempty"`
	EqualsGreaterThanToken *TokenNode                `json:"equalsGreaterThanToken"`
	Body                   Node                      `json:"body"`
}

// ClassExpression is class Name<T> extends B { members } in expression position.
type ClassExpression struct {
	ExprBase
	ClassLike
}

// DeleteExpression is delete expr.
type DeleteExpression struct {
	ExprBase
	Expression Expression `json:"expression"`
}

// TypeOfExpression is typeof expr.
type TypeOfExpression struct {
	ExprBase
	Expression Expression `json:"expression"`
}

// VoidExpression is void expr.
type VoidExpression struct {
	ExprBase
	Expression Expression `json:"expression"`
}

// AwaitExpression is await expr.
type AwaitExpression struct {
	ExprBase
	Expression Expression `json:"expression"`
}

// PrefixUnaryExpression is op operand for + - ~ ! ++ --.
type PrefixUnaryExpression struct {
	ExprBase
	Operator token.Kind `json:"operator"`
	Operand  Expression `json:"operand"`
}

// PostfixUnaryExpression is operand++ or operand--.
type PostfixUnaryExpression struct {
	ExprBase
	Operand  Expression `json:"operand"`
	Operator token.Kind `json:"operator"`
}

// BinaryExpression covers arithmetic, comparison, logical, assignment and
// comma operators.
type BinaryExpression struct {
	ExprBase
	Left          Expression `json:"left"`
	OperatorToken *TokenNode `json:"operatorToken"`
	Right         Expression `json:"right"`
}

// ConditionalExpression is cond ? whenTrue : whenFalse.
type ConditionalExpression struct {
	ExprBase
	Condition     Expression `json:"condition"`
	QuestionToken *TokenNode `json:"questionToken"`
	WhenTrue      Expression `json:"whenTrue"`
	ColonToken    *TokenNode `json:"colonToken"`
	WhenFalse     Expression `json:"whenFalse"`
}

// YieldExpression is yield, yield expr or yield* expr.
type YieldExpression struct {
	ExprBase
	AsteriskToken *TokenNode `json:"asteriskToken,omitempty"`
	Expression    Expression `json:"expression,omitempty"`
}

// SpreadElement is ...expr in array literals and argument lists.
type SpreadElement struct {
	ExprBase
	Expression Expression `json:"expression"`
}

// OmittedExpression is an elided array element.
type OmittedExpression struct {
	ExprBase
}

// AsExpression is expr as T.
type AsExpression struct {
	ExprBase
	Expression Expression `json:"expression"`
	Type       TypeNode   `json:"type"`
}

// ConnectExpression is left -> right. The arrow is right-associative and binds
// looser than assignment.
type ConnectExpression struct {
	ExprBase
	Left       Expression `json:"left"`
	ArrowToken *TokenNode `json:"arrowToken"`
	Right      Expression `json:"right"`
}

// WalrusDeclaration is name := expr, a declaration usable as an expression.
type WalrusDeclaration struct {
	ExprBase
	Name        *Identifier `json:"name"`
	ColonEquals *TokenNode  `json:"colonEquals"`
	Initializer Expression  `json:"initializer"`
}

// ExpressionWithTypeArguments is a heritage clause entry: Base<T>.
type ExpressionWithTypeArguments struct {
	ExprBase
	Expression    Expression          `json:"expression"`
	TypeArguments *NodeList[TypeNode] `json:"typeArguments,omitempty"`
}

// ============================================================
// Object literal members
// ============================================================

// PropertyAssignment is name: value.
type PropertyAssignment struct {
	NodeBase
	Modifiers     *Modifiers `json:"modifiers,omitempty"`
	Name          Node       `json:"name"`
	QuestionToken *TokenNode `json:"questionToken,omitempty"`
	Initializer   Expression `json:"initializer"`
}

// ShorthandPropertyAssignment is a bare name in an object literal.
type ShorthandPropertyAssignment struct {
	NodeBase
	Modifiers     *Modifiers  `json:"modifiers,omitempty"`
	Name          *Identifier `json:"name"`
	QuestionToken *TokenNode  `json:"questionToken,omitempty"`
}

// SpreadAssignment is ...expr in an object literal.
type SpreadAssignment struct {
	NodeBase
	Expression Expression `json:"expression"`
}
