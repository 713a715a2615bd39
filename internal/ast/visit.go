package ast

// ============================================================
// Traversal
// ============================================================

// ForEachChild calls visit on each direct child of n in source order. It stops
// and returns true as soon as visit returns true.
func ForEachChild(n Node, visit func(Node) bool) bool {
	if n == nil {
		return false
	}
	return n.ForEachChild(visit)
}

// Walk traverses the tree rooted at n depth-first in source order. Children
// of a node are skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	n.ForEachChild(func(child Node) bool {
		Walk(child, fn)
		return false
	})
}

// SetParents fills in the parent reference of every node below root. The
// root's own parent is cleared.
func SetParents(root Node) {
	if root == nil {
		return
	}
	root.Base().parent = nil
	var bind func(parent Node)
	bind = func(parent Node) {
		parent.ForEachChild(func(child Node) bool {
			child.Base().parent = parent
			bind(child)
			return false
		})
	}
	bind(root)
}

// CountNodes returns the number of nodes in the tree rooted at n, n included.
func CountNodes(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}

func visitNode(v func(Node) bool, n Node) bool {
	return n != nil && v(n)
}

// visitPtr guards optional pointer fields so a nil *T never reaches visit as a
// non-nil interface.
func visitPtr[T any, P interface {
	*T
	Node
}](v func(Node) bool, n P) bool {
	return n != nil && v(n)
}

func visitList[T Node](v func(Node) bool, l *NodeList[T]) bool {
	if l == nil {
		return false
	}
	for _, n := range l.Nodes {
		if v(n) {
			return true
		}
	}
	return false
}

// ---- Names, literals, types ----

func (n *TokenNode) ForEachChild(func(Node) bool) bool      { return false }
func (n *Identifier) ForEachChild(func(Node) bool) bool     { return false }
func (n *NumericLiteral) ForEachChild(func(Node) bool) bool { return false }
func (n *StringLiteral) ForEachChild(func(Node) bool) bool  { return false }
func (n *KeywordType) ForEachChild(func(Node) bool) bool    { return false }

func (n *QualifiedName) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Left) || visitPtr(v, n.Right)
}

func (n *ComputedPropertyName) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *Decorator) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *TypeParameter) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Name) || visitNode(v, n.Constraint) || visitNode(v, n.Default)
}

func (n *Parameter) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitPtr(v, n.DotDotDot) ||
		visitPtr(v, n.Name) ||
		visitPtr(v, n.QuestionToken) ||
		visitNode(v, n.Type) ||
		visitNode(v, n.Initializer)
}

func (n *TypeReference) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.TypeName) || visitList(v, n.TypeArguments)
}

func (n *ArrayType) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.ElementType)
}

func (n *ParenthesizedType) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Type)
}

func (n *SourceFile) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Statements) || visitPtr(v, n.EndOfFileToken)
}

// ---- Expressions ----

func (n *KeywordExpression) ForEachChild(func(Node) bool) bool { return false }
func (n *OmittedExpression) ForEachChild(func(Node) bool) bool { return false }

func (n *ArrayLiteralExpression) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Elements)
}

func (n *ObjectLiteralExpression) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Properties)
}

func (n *PropertyAccessExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitPtr(v, n.QuestionDotToken) || visitPtr(v, n.Name)
}

func (n *ElementAccessExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitPtr(v, n.QuestionDotToken) || visitNode(v, n.ArgumentExpression)
}

func (n *CallExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) ||
		visitPtr(v, n.QuestionDotToken) ||
		visitList(v, n.TypeArguments) ||
		visitList(v, n.Arguments)
}

func (n *NewExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitList(v, n.TypeArguments) || visitList(v, n.Arguments)
}

func (n *TypeAssertionExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Type) || visitNode(v, n.Expression)
}

func (n *ParenthesizedExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *FunctionExpression) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitPtr(v, n.AsteriskToken) ||
		visitPtr(v, n.Name) ||
		visitList(v, n.TypeParameters) ||
		visitList(v, n.Parameters) ||
		visitNode(v, n.Type) ||
		visitPtr(v, n.Body)
}

func (n *ArrowFunction) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitList(v, n.TypeParameters) ||
		visitList(v, n.Parameters) ||
		visitNode(v, n.Type) ||
		visitPtr(v, n.EqualsGreaterThanToken) ||
		visitNode(v, n.Body)
}

func (n *ClassExpression) ForEachChild(v func(Node) bool) bool {
	return n.ClassLike.forEachChild(v)
}

func (n *DeleteExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *TypeOfExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *VoidExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *AwaitExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *PrefixUnaryExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Operand)
}

func (n *PostfixUnaryExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Operand)
}

func (n *BinaryExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Left) || visitPtr(v, n.OperatorToken) || visitNode(v, n.Right)
}

func (n *ConditionalExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Condition) ||
		visitPtr(v, n.QuestionToken) ||
		visitNode(v, n.WhenTrue) ||
		visitPtr(v, n.ColonToken) ||
		visitNode(v, n.WhenFalse)
}

func (n *YieldExpression) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.AsteriskToken) || visitNode(v, n.Expression)
}

func (n *SpreadElement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *AsExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitNode(v, n.Type)
}

func (n *ConnectExpression) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Left) || visitPtr(v, n.ArrowToken) || visitNode(v, n.Right)
}

func (n *WalrusDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Name) || visitPtr(v, n.ColonEquals) || visitNode(v, n.Initializer)
}

func (n *ExpressionWithTypeArguments) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitList(v, n.TypeArguments)
}

func (n *PropertyAssignment) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitNode(v, n.Name) || visitPtr(v, n.QuestionToken) ||
		visitNode(v, n.Initializer)
}

func (n *ShorthandPropertyAssignment) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitPtr(v, n.Name) || visitPtr(v, n.QuestionToken)
}

func (n *SpreadAssignment) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

// ---- Statements ----

func (n *EmptyStatement) ForEachChild(func(Node) bool) bool       { return false }
func (n *FallthroughStatement) ForEachChild(func(Node) bool) bool { return false }
func (n *DebuggerStatement) ForEachChild(func(Node) bool) bool    { return false }

func (n *Block) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Statements)
}

func (n *VariableStatement) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitPtr(v, n.DeclarationList)
}

func (n *ExpressionStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *IfStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitNode(v, n.ThenStatement) || visitNode(v, n.ElseStatement)
}

func (n *DoStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Statement) || visitNode(v, n.Expression)
}

func (n *WhileStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitNode(v, n.Statement)
}

func (n *ForStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Initializer) ||
		visitNode(v, n.Condition) ||
		visitNode(v, n.Incrementor) ||
		visitNode(v, n.Statement)
}

func (n *ForInOrOfStatement) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.AwaitModifier) ||
		visitPtr(v, n.Initializer) ||
		visitNode(v, n.Expression) ||
		visitNode(v, n.Statement)
}

func (n *BranchStatement) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Label)
}

func (n *ReturnStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *WithStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitNode(v, n.Statement)
}

func (n *SwitchStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitPtr(v, n.CaseBlock)
}

func (n *CaseBlock) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Clauses)
}

func (n *CaseOrDefaultClause) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitList(v, n.Statements)
}

func (n *LabeledStatement) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Label) || visitNode(v, n.Statement)
}

func (n *ThrowStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression)
}

func (n *TryStatement) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.TryBlock) || visitPtr(v, n.CatchClause) || visitPtr(v, n.FinallyBlock)
}

func (n *CatchClause) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.VariableDeclaration) || visitPtr(v, n.Block)
}

func (n *UsingStatement) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Expression) || visitNode(v, n.Statement)
}

// ---- Declarations ----

func (n *SemicolonClassElement) ForEachChild(func(Node) bool) bool { return false }

func (n *VariableDeclarationList) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Declarations)
}

func (n *VariableDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Name) || visitNode(v, n.Type) || visitNode(v, n.Initializer)
}

func (n *FunctionDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitPtr(v, n.AsteriskToken) ||
		visitPtr(v, n.Name) ||
		visitList(v, n.TypeParameters) ||
		visitList(v, n.Parameters) ||
		visitNode(v, n.Type) ||
		visitPtr(v, n.Body)
}

func (c *ClassLike) forEachChild(v func(Node) bool) bool {
	return visitList(v, c.Modifiers) ||
		visitPtr(v, c.Name) ||
		visitList(v, c.TypeParameters) ||
		visitList(v, c.HeritageClauses) ||
		visitList(v, c.Members)
}

func (n *ClassDeclaration) ForEachChild(v func(Node) bool) bool {
	return n.ClassLike.forEachChild(v)
}

func (n *HeritageClause) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Types)
}

func (n *PropertyDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitNode(v, n.Name) ||
		visitPtr(v, n.QuestionToken) ||
		visitNode(v, n.Type) ||
		visitNode(v, n.Initializer)
}

func (n *MethodDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitPtr(v, n.AsteriskToken) ||
		visitNode(v, n.Name) ||
		visitPtr(v, n.QuestionToken) ||
		visitList(v, n.TypeParameters) ||
		visitList(v, n.Parameters) ||
		visitNode(v, n.Type) ||
		visitPtr(v, n.Body)
}

func (n *InterfaceDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitPtr(v, n.Name) ||
		visitList(v, n.TypeParameters) ||
		visitList(v, n.HeritageClauses) ||
		visitList(v, n.Members)
}

func (n *PropertySignature) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitNode(v, n.Name) ||
		visitPtr(v, n.QuestionToken) ||
		visitNode(v, n.Type)
}

func (n *MethodSignature) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitNode(v, n.Name) ||
		visitPtr(v, n.QuestionToken) ||
		visitList(v, n.TypeParameters) ||
		visitList(v, n.Parameters) ||
		visitNode(v, n.Type)
}

func (n *TypeAliasDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitPtr(v, n.Name) ||
		visitList(v, n.TypeParameters) ||
		visitNode(v, n.Type)
}

func (n *EnumDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitPtr(v, n.Name) || visitList(v, n.Members)
}

func (n *EnumMember) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Name) || visitNode(v, n.Initializer)
}

func (n *ModuleDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitPtr(v, n.Name) || visitNode(v, n.Body)
}

func (n *ModuleBlock) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Statements)
}

func (n *ImportDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitPtr(v, n.ImportClause) || visitNode(v, n.ModuleSpecifier)
}

func (n *ImportClause) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Name) || visitNode(v, n.NamedBindings)
}

func (n *NamespaceImport) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Name)
}

func (n *NamedImportsOrExports) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Elements)
}

func (n *ImportOrExportSpecifier) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.PropertyName) || visitPtr(v, n.Name)
}

func (n *ExportAssignment) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitNode(v, n.Expression)
}

func (n *ExportDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) || visitPtr(v, n.ExportClause) || visitNode(v, n.ModuleSpecifier)
}

func (n *NodeDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers) ||
		visitPtr(v, n.Name) ||
		visitList(v, n.TypeParameters) ||
		visitList(v, n.Parameters) ||
		visitPtr(v, n.Body)
}

func (n *NodeBlock) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Statements)
}

func (n *AllPortsTypeDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Types)
}

func (n *PortTypeDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitPtr(v, n.Name) || visitNode(v, n.Type)
}

func (n *StateDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitNode(v, n.Initializer)
}

func (n *MissingDeclaration) ForEachChild(v func(Node) bool) bool {
	return visitList(v, n.Modifiers)
}
