package parser

import (
	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// ============================================================
// Statements
// ============================================================

func (p *Parser) parseStatement() ast.Statement {
	pos := p.tokenPos()
	switch p.tok {
	case token.SEMICOLON:
		p.nextToken()
		return finish(p, &ast.EmptyStatement{}, ast.KindEmptyStatement, pos)
	case token.LBRACE:
		return p.parseBlock()
	case token.KW_VAR:
		return p.parseVariableStatement(pos, nil)
	case token.KW_LET:
		if p.isLetDeclaration() {
			return p.parseVariableStatement(pos, nil)
		}
	case token.KW_FUNCTION:
		return p.parseFunctionDeclaration(pos, nil)
	case token.KW_CLASS:
		return p.parseClassDeclaration(pos, nil)
	case token.KW_IF:
		return p.parseIfOrElif(ast.KindIfStatement)
	case token.KW_DO:
		return p.parseDoStatement()
	case token.KW_WHILE:
		return p.parseWhileStatement()
	case token.KW_FOR:
		return p.parseForStatement()
	case token.KW_CONTINUE:
		return p.parseBranchStatement(ast.KindContinueStatement)
	case token.KW_BREAK:
		return p.parseBranchStatement(ast.KindBreakStatement)
	case token.KW_FALLTHROUGH:
		p.nextToken()
		p.parseSemicolon()
		return finish(p, &ast.FallthroughStatement{}, ast.KindFallthroughStatement, pos)
	case token.KW_RETURN:
		return p.parseReturnStatement()
	case token.KW_WITH:
		return p.parseWithStatement()
	case token.KW_SWITCH:
		return p.parseSwitchStatement()
	case token.KW_THROW:
		return p.parseThrowStatement()
	case token.KW_TRY, token.KW_CATCH, token.KW_FINALLY:
		return p.parseTryStatement()
	case token.KW_DEBUGGER:
		p.nextToken()
		p.parseSemicolon()
		return finish(p, &ast.DebuggerStatement{}, ast.KindDebuggerStatement, pos)
	case token.KW_USING:
		return p.parseUsingStatement()
	case token.AT:
		return p.parseDeclaration()
	case token.KW_ASYNC, token.KW_INTERFACE, token.KW_TYPE, token.KW_NAMESPACE, token.KW_DECLARE,
		token.KW_CONST, token.KW_ENUM, token.KW_EXPORT, token.KW_IMPORT, token.KW_NODE, token.KW_SUBNET,
		token.KW_ABSTRACT, token.KW_PRIVATE, token.KW_PROTECTED, token.KW_PUBLIC, token.KW_READONLY, token.KW_STATIC:
		if p.isStartOfDeclaration() {
			return p.parseDeclaration()
		}
	}
	return p.parseExpressionOrLabeledStatement()
}

func (p *Parser) isStartOfStatement() bool {
	switch p.tok {
	case token.AT, token.SEMICOLON, token.LBRACE, token.KW_VAR, token.KW_LET, token.KW_FUNCTION, token.KW_CLASS,
		token.KW_ENUM, token.KW_IF, token.KW_DO, token.KW_WHILE, token.KW_FOR, token.KW_CONTINUE, token.KW_BREAK,
		token.KW_FALLTHROUGH, token.KW_RETURN, token.KW_WITH, token.KW_SWITCH, token.KW_THROW, token.KW_TRY,
		token.KW_CATCH, token.KW_FINALLY, token.KW_DEBUGGER, token.KW_USING:
		return true
	case token.KW_CONST, token.KW_EXPORT, token.KW_IMPORT:
		return p.isStartOfDeclaration()
	case token.KW_PUBLIC, token.KW_PRIVATE, token.KW_PROTECTED, token.KW_STATIC, token.KW_READONLY:
		return p.isStartOfDeclaration() || !p.lookAhead(func() bool {
			p.nextToken()
			return p.tok.IsIdentifierOrKeyword() && !p.hasPrecedingLineBreak()
		})
	}
	return p.isStartOfExpression()
}

// isLetDeclaration reports whether 'let' starts a declaration rather than
// naming a variable.
func (p *Parser) isLetDeclaration() bool {
	return p.lookAhead(func() bool {
		p.nextToken()
		return p.isIdentifier()
	})
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.tokenPos()
	if !p.parseExpected(token.LBRACE) {
		return finish(p, &ast.Block{Statements: emptyList[ast.Statement](p)}, ast.KindBlock, pos)
	}
	statements := parseList(p, ctxBlockStatements, p.parseStatement)
	p.parseExpected(token.RBRACE)
	return finish(p, &ast.Block{Statements: statements}, ast.KindBlock, pos)
}

// parseFunctionBlock parses a function body with ctx as the yield/await
// context.
func (p *Parser) parseFunctionBlock(ctx funcContext) *ast.Block {
	saved := p.funcCtx
	p.funcCtx = ctx
	block := p.parseBlock()
	p.funcCtx = saved
	return block
}

// parseFunctionBlockOrSemicolon allows the body to be left out, as in
// overloads and ambient declarations.
func (p *Parser) parseFunctionBlockOrSemicolon(ctx funcContext) *ast.Block {
	if p.tok != token.LBRACE && p.canParseSemicolon() {
		p.parseSemicolon()
		return nil
	}
	return p.parseFunctionBlock(ctx)
}

func (p *Parser) parseVariableStatement(pos int, mods *ast.Modifiers) *ast.VariableStatement {
	list := p.parseVariableDeclarationList()
	p.parseSemicolon()
	return finish(p, &ast.VariableStatement{Modifiers: mods, DeclarationList: list}, ast.KindVariableStatement, pos)
}

func (p *Parser) parseVariableDeclarationList() *ast.VariableDeclarationList {
	pos := p.tokenPos()
	var flags ast.NodeFlags
	switch p.tok {
	case token.KW_VAR:
	case token.KW_LET:
		flags = ast.FlagLet
	case token.KW_CONST:
		flags = ast.FlagConst
	default:
		p.fail(pos, "variable declaration list cannot start with %s", p.tok)
	}
	p.nextToken()

	decls := parseDelimitedList(p, ctxVariableDeclarations, p.parseVariableDeclaration)
	if decls.Len() == 0 {
		p.errorAtCurrent(diag.IdentifierExpected, "Variable declaration list cannot be empty.")
	}
	list := finish(p, &ast.VariableDeclarationList{Declarations: decls}, ast.KindVariableDeclarationList, pos)
	list.Flags |= flags
	return list
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	pos := p.tokenPos()
	decl := &ast.VariableDeclaration{Name: p.parseIdentifier()}
	decl.Type = p.parseTypeAnnotation()
	decl.Initializer = p.parseInitializer()
	return finish(p, decl, ast.KindVariableDeclaration, pos)
}

func (p *Parser) parseInitializer() ast.Expression {
	if p.parseOptional(token.ASSIGN) {
		return p.parseConnectExpressionOrHigher()
	}
	return nil
}

// parseIfOrElif parses if (cond) stmt followed by any elif branches and an
// optional else. Each elif becomes an ElifStatement in the else slot of the
// branch before it.
func (p *Parser) parseIfOrElif(kind ast.Kind) *ast.IfStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.IfStatement{}
	stmt.Expression = p.parseParenthesizedCondition()
	stmt.ThenStatement = p.parseStatement()
	switch p.tok {
	case token.KW_ELIF:
		stmt.ElseStatement = p.parseIfOrElif(ast.KindElifStatement)
	case token.KW_ELSE:
		p.nextToken()
		stmt.ElseStatement = p.parseStatement()
	}
	return finish(p, stmt, kind, pos)
}

func (p *Parser) parseParenthesizedCondition() ast.Expression {
	p.parseExpected(token.LPAREN)
	expr := p.parseExpression()
	p.parseExpected(token.RPAREN)
	return expr
}

func (p *Parser) parseDoStatement() *ast.DoStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.DoStatement{Statement: p.parseStatement()}
	p.parseExpected(token.KW_WHILE)
	stmt.Expression = p.parseParenthesizedCondition()
	// the ';' after do-while is always optional
	p.parseOptional(token.SEMICOLON)
	return finish(p, stmt, ast.KindDoStatement, pos)
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.WhileStatement{Expression: p.parseParenthesizedCondition()}
	stmt.Statement = p.parseStatement()
	return finish(p, stmt, ast.KindWhileStatement, pos)
}

// parseForStatement parses the three for forms:
//
//	for [await] (let x in|of expr) stmt
//	for (init; cond; incr) stmt
//	for (cond) stmt
func (p *Parser) parseForStatement() ast.Statement {
	pos := p.tokenPos()
	p.parseExpected(token.KW_FOR)
	awaitToken := p.parseOptionalToken(token.KW_AWAIT)
	p.parseExpected(token.LPAREN)

	if p.isForInOrOfHeader() {
		stmt := &ast.ForInOrOfStatement{AwaitModifier: awaitToken, Initializer: p.parseVariableDeclarationList()}
		kind := ast.KindForInStatement
		if p.tok == token.KW_OF {
			kind = ast.KindForOfStatement
			p.nextToken()
			stmt.Expression = p.parseConnectExpressionOrHigher()
		} else {
			p.parseExpected(token.KW_IN)
			stmt.Expression = p.parseExpression()
		}
		if awaitToken != nil && kind != ast.KindForOfStatement {
			p.errorAt(awaitToken.Pos, awaitToken.End-awaitToken.Pos, diag.UnexpectedToken, "'for await' loops must use 'of'.")
		}
		p.parseExpected(token.RPAREN)
		stmt.Statement = p.parseStatement()
		return finish(p, stmt, kind, pos)
	}
	if awaitToken != nil {
		p.errorAt(awaitToken.Pos, awaitToken.End-awaitToken.Pos, diag.UnexpectedToken, "'for await' loops must use 'of'.")
	}

	stmt := &ast.ForStatement{}
	var initExpr ast.Expression
	switch {
	case p.tok == token.SEMICOLON:
	case p.tok == token.KW_VAR || p.tok == token.KW_CONST || (p.tok == token.KW_LET && p.isLetDeclaration()):
		stmt.Initializer = p.parseVariableDeclarationList()
	default:
		initExpr = p.parseExpression()
		if p.tok != token.SEMICOLON {
			stmt.Condition = initExpr
			p.parseExpected(token.RPAREN)
			stmt.Statement = p.parseStatement()
			return finish(p, stmt, ast.KindForStatement, pos)
		}
		stmt.Initializer = initExpr
	}

	p.parseExpected(token.SEMICOLON)
	if p.tok != token.SEMICOLON && p.tok != token.RPAREN {
		stmt.Condition = p.parseExpression()
	}
	p.parseExpected(token.SEMICOLON)
	if p.tok != token.RPAREN {
		stmt.Incrementor = p.parseExpression()
	}
	p.parseExpected(token.RPAREN)
	stmt.Statement = p.parseStatement()
	return finish(p, stmt, ast.KindForStatement, pos)
}

// isForInOrOfHeader looks for var|let|const name (in|of).
func (p *Parser) isForInOrOfHeader() bool {
	if p.tok != token.KW_VAR && p.tok != token.KW_LET && p.tok != token.KW_CONST {
		return false
	}
	return p.lookAhead(func() bool {
		p.nextToken()
		if !p.isIdentifier() {
			return false
		}
		p.nextToken()
		return p.tok == token.KW_IN || p.tok == token.KW_OF
	})
}

func (p *Parser) parseBranchStatement(kind ast.Kind) *ast.BranchStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.BranchStatement{}
	if !p.canParseSemicolon() {
		stmt.Label = p.parseIdentifier()
	}
	p.parseSemicolon()
	return finish(p, stmt, kind, pos)
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.ReturnStatement{}
	if !p.canParseSemicolon() {
		stmt.Expression = p.parseExpression()
	}
	p.parseSemicolon()
	return finish(p, stmt, ast.KindReturnStatement, pos)
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.WithStatement{Expression: p.parseParenthesizedCondition()}
	stmt.Statement = p.parseStatement()
	return finish(p, stmt, ast.KindWithStatement, pos)
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.SwitchStatement{Expression: p.parseParenthesizedCondition()}

	blockPos := p.tokenPos()
	var clauses *ast.NodeList[ast.Node]
	if p.parseExpected(token.LBRACE) {
		clauses = parseList(p, ctxSwitchClauses, p.parseCaseOrDefaultClause)
		p.parseExpected(token.RBRACE)
	} else {
		clauses = emptyList[ast.Node](p)
	}
	stmt.CaseBlock = finish(p, &ast.CaseBlock{Clauses: clauses}, ast.KindCaseBlock, blockPos)
	return finish(p, stmt, ast.KindSwitchStatement, pos)
}

func (p *Parser) parseCaseOrDefaultClause() ast.Node {
	pos := p.tokenPos()
	clause := &ast.CaseOrDefaultClause{}
	kind := ast.KindDefaultClause
	if p.parseOptional(token.KW_CASE) {
		kind = ast.KindCaseClause
		clause.Expression = p.parseExpression()
	} else {
		p.parseExpected(token.KW_DEFAULT)
	}
	p.parseExpected(token.COLON)
	clause.Statements = parseList(p, ctxSwitchClauseStatements, p.parseStatement)
	return finish(p, clause, kind, pos)
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.ThrowStatement{}
	if p.hasPrecedingLineBreak() {
		p.errorAtCurrent(diag.UnexpectedToken, "Line break not permitted here.")
		stmt.Expression = p.missingIdentifier()
	} else {
		stmt.Expression = p.parseExpression()
	}
	p.parseSemicolon()
	return finish(p, stmt, ast.KindThrowStatement, pos)
}

// parseTryStatement also handles a stray catch or finally by reporting the
// missing try and parsing the rest.
func (p *Parser) parseTryStatement() *ast.TryStatement {
	pos := p.tokenPos()
	p.parseExpected(token.KW_TRY)
	stmt := &ast.TryStatement{TryBlock: p.parseBlock()}
	if p.tok == token.KW_CATCH {
		stmt.CatchClause = p.parseCatchClause()
	}
	if stmt.CatchClause == nil || p.tok == token.KW_FINALLY {
		p.parseExpected(token.KW_FINALLY)
		stmt.FinallyBlock = p.parseBlock()
	}
	return finish(p, stmt, ast.KindTryStatement, pos)
}

func (p *Parser) parseCatchClause() *ast.CatchClause {
	pos := p.tokenPos()
	p.parseExpected(token.KW_CATCH)
	clause := &ast.CatchClause{}
	if p.parseOptional(token.LPAREN) {
		clause.VariableDeclaration = p.parseVariableDeclaration()
		p.parseExpected(token.RPAREN)
	}
	clause.Block = p.parseBlock()
	return finish(p, clause, ast.KindCatchClause, pos)
}

// parseUsingStatement parses using (header) stmt. The header is usually a
// walrus declaration that binds the resource.
func (p *Parser) parseUsingStatement() *ast.UsingStatement {
	pos := p.tokenPos()
	p.nextToken()
	stmt := &ast.UsingStatement{Expression: p.parseParenthesizedCondition()}
	stmt.Statement = p.parseStatement()
	return finish(p, stmt, ast.KindUsingStatement, pos)
}

// parseExpressionOrLabeledStatement parses an expression statement. A lone
// identifier followed by ':' is a label instead.
func (p *Parser) parseExpressionOrLabeledStatement() ast.Statement {
	pos := p.tokenPos()
	wasIdentifier := p.isIdentifier()
	expr := p.parseExpression()
	if id, ok := expr.(*ast.Identifier); ok && wasIdentifier && p.tok == token.COLON {
		p.nextToken()
		stmt := p.parseStatement()
		return finish(p, &ast.LabeledStatement{Label: id, Statement: stmt}, ast.KindLabeledStatement, pos)
	}
	p.parseSemicolon()
	return finish(p, &ast.ExpressionStatement{Expression: expr}, ast.KindExpressionStatement, pos)
}
