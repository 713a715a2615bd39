package ast

// ============================================================
// Statements
// ============================================================

// Block is { statements }.
type Block struct {
	StmtBase
	Statements *NodeList[Statement] `json:"statements"`
}

// EmptyStatement is a lone ';'.
type EmptyStatement struct {
	StmtBase
}

// VariableStatement is var/let/const declarations followed by ';'.
type VariableStatement struct {
	StmtBase
	Modifiers       *Modifiers               `json:"modifiers,omitempty"`
	DeclarationList *VariableDeclarationList `json:"declarationList"`
}

// ExpressionStatement wraps an expression used as a statement. Walrus
// statements are expression statements holding a WalrusDeclaration.
type ExpressionStatement struct {
	StmtBase
	Expression Expression `json:"expression"`
}

// IfStatement is if (cond) then [elif (cond) then]* [else otherwise]. An elif
// chain is stored as an ElifStatement in ElseStatement; ElifStatement uses the
// same shape with kind KindElifStatement.
type IfStatement struct {
	StmtBase
	Expression    Expression `json:"expression"`
	ThenStatement Statement  `json:"thenStatement"`
	ElseStatement Statement  `json:"elseStatement,omitempty"`
}

// DoStatement is do body while (cond).
type DoStatement struct {
	StmtBase
	Statement  Statement  `json:"statement"`
	Expression Expression `json:"expression"`
}

// WhileStatement is while (cond) body.
type WhileStatement struct {
	StmtBase
	Expression Expression `json:"expression"`
	Statement  Statement  `json:"statement"`
}

// ForStatement is for (init; cond; incr) body. A single-condition loop
// for (cond) body has only Condition set. Initializer holds a
// *VariableDeclarationList or an Expression.
type ForStatement struct {
	StmtBase
	Initializer Node       `json:"initializer,omitempty"`
	Condition   Expression `json:"condition,omitempty"`
	Incrementor Expression `json:"incrementor,omitempty"`
	Statement   Statement  `json:"statement"`
}

// ForInOrOfStatement is for (let x in obj) body or for [await] (let x of obj) body.
// The kind tells which.
type ForInOrOfStatement struct {
	StmtBase
	AwaitModifier *TokenNode               `json:"awaitModifier,omitempty"`
	Initializer   *VariableDeclarationList `json:"initializer"`
	Expression    Expression               `json:"expression"`
	Statement     Statement                `json:"statement"`
}

// BranchStatement is continue [label] or break [label]. The kind tells which.
type BranchStatement struct {
	StmtBase
	Label *Identifier `json:"label,omitempty"`
}

// FallthroughStatement transfers control to the next case clause.
type FallthroughStatement struct {
	StmtBase
}

// ReturnStatement is return [expr].
type ReturnStatement struct {
	StmtBase
	Expression Expression `json:"expression,omitempty"`
}

// WithStatement is with (obj) body.
type WithStatement struct {
	StmtBase
	Expression Expression `json:"expression"`
	Statement  Statement  `json:"statement"`
}

// SwitchStatement is switch (expr) { clauses }.
type SwitchStatement struct {
	StmtBase
	Expression Expression `json:"expression"`
	CaseBlock  *CaseBlock `json:"caseBlock"`
}

// CaseBlock holds the clauses of a switch.
type CaseBlock struct {
	NodeBase
	Clauses *NodeList[Node] `json:"clauses"`
}

// CaseOrDefaultClause is case expr: statements or default: statements. The
// kind tells which; Expression is nil for default.
type CaseOrDefaultClause struct {
	NodeBase
	Expression Expression           `json:"expression,omitempty"`
	Statements *NodeList[Statement] `json:"statements"`
}

// LabeledStatement is label: statement.
type LabeledStatement struct {
	StmtBase
	Label     *Identifier `json:"label"`
	Statement Statement   `json:"statement"`
}

// ThrowStatement is throw expr.
type ThrowStatement struct {
	StmtBase
	Expression Expression `json:"expression"`
}

// TryStatement is try block [catch (param) block] [finally block].
type TryStatement struct {
	StmtBase
	TryBlock     *Block       `json:"tryBlock"`
	CatchClause  *CatchClause `json:"catchClause,omitempty"`
	FinallyBlock *Block       `json:"finallyBlock,omitempty"`
}

// CatchClause is catch [(name[: T])] block.
type CatchClause struct {
	NodeBase
	VariableDeclaration *VariableDeclaration `json:"variableDeclaration,omitempty"`
	Block               *Block               `json:"block"`
}

// DebuggerStatement is debugger.
type DebuggerStatement struct {
	StmtBase
}

// UsingStatement is using (header) body. The header is an expression,
// typically a walrus declaration.
type UsingStatement struct {
	StmtBase
	Expression Expression `json:"expression"`
	Statement  Statement  `json:"statement"`
}
