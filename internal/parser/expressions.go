package parser

import (
	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// ============================================================
// Comma, walrus and connection
// ============================================================

// parseExpression parses a comma expression. Each operand may be a walrus
// declaration.
func (p *Parser) parseExpression() ast.Expression {
	expr := p.parseWalrusOrConnect()
	for p.tok == token.COMMA {
		op := p.parseTokenNode()
		right := p.parseWalrusOrConnect()
		expr = finish(p, &ast.BinaryExpression{Left: expr, OperatorToken: op, Right: right}, ast.KindBinaryExpression, expr.Base().Pos)
	}
	return expr
}

func (p *Parser) parseWalrusOrConnect() ast.Expression {
	if p.isIdentifier() && p.nextTokenIs(token.COLON_ASSIGN) {
		return p.parseWalrusDeclaration()
	}
	return p.parseConnectExpressionOrHigher()
}

func (p *Parser) parseWalrusDeclaration() *ast.WalrusDeclaration {
	pos := p.tokenPos()
	name := p.parseIdentifier()
	colonEquals := p.parseExpectedToken(token.COLON_ASSIGN)
	init := p.parseConnectExpressionOrHigher()
	return finish(p, &ast.WalrusDeclaration{Name: name, ColonEquals: colonEquals, Initializer: init}, ast.KindWalrusDeclaration, pos)
}

// parseConnectExpressionOrHigher parses a -> b -> c, grouping to the right.
func (p *Parser) parseConnectExpressionOrHigher() ast.Expression {
	left := p.parseAssignmentExpressionOrHigher()
	if p.tok != token.CONNECT {
		return left
	}
	arrow := p.parseTokenNode()
	right := p.parseConnectExpressionOrHigher()
	return finish(p, &ast.ConnectExpression{Left: left, ArrowToken: arrow, Right: right}, ast.KindConnectExpression, left.Base().Pos)
}

// ============================================================
// Assignment and conditional
// ============================================================

func (p *Parser) parseAssignmentExpressionOrHigher() ast.Expression {
	if p.isYieldExpression() {
		return p.parseYieldExpression()
	}
	if arrow := p.tryParseParenthesizedArrowFunction(); arrow != nil {
		return arrow
	}
	if arrow := p.tryParseAsyncSimpleArrowFunction(); arrow != nil {
		return arrow
	}

	expr := p.parseBinaryExpressionOrHigher(0)
	if id, ok := expr.(*ast.Identifier); ok && p.tok == token.ARROW {
		return p.parseSimpleArrowFunction(id.Pos, id, nil)
	}
	if p.tok.IsAssignment() {
		if !ast.IsLeftHandExp(expr.Kind()) {
			b := expr.Base()
			p.errorAt(b.Pos, b.End-b.Pos, diag.InvalidAssignmentTarget, "Invalid left-hand side in assignment.")
		}
		op := p.parseTokenNode()
		right := p.parseAssignmentExpressionOrHigher()
		return finish(p, &ast.BinaryExpression{Left: expr, OperatorToken: op, Right: right}, ast.KindBinaryExpression, expr.Base().Pos)
	}
	return p.parseConditionalExpressionRest(expr)
}

func (p *Parser) parseConditionalExpressionRest(cond ast.Expression) ast.Expression {
	if p.tok != token.QUESTION {
		return cond
	}
	question := p.parseTokenNode()
	whenTrue := p.parseAssignmentExpressionOrHigher()
	colon := p.parseExpectedToken(token.COLON)
	whenFalse := p.parseAssignmentExpressionOrHigher()
	return finish(p, &ast.ConditionalExpression{
		Condition:     cond,
		QuestionToken: question,
		WhenTrue:      whenTrue,
		ColonToken:    colon,
		WhenFalse:     whenFalse,
	}, ast.KindConditionalExpression, cond.Base().Pos)
}

func (p *Parser) isYieldExpression() bool {
	if p.tok != token.KW_YIELD {
		return false
	}
	if p.funcCtx&inGenerator != 0 {
		return true
	}
	// outside a generator, yield is an identifier unless an operand follows
	return p.nextTokenIsLiteralOnSameLine()
}

func (p *Parser) parseYieldExpression() *ast.YieldExpression {
	pos := p.tokenPos()
	p.nextToken()
	y := &ast.YieldExpression{}
	if !p.hasPrecedingLineBreak() && (p.tok == token.STAR || p.isStartOfExpression()) {
		y.AsteriskToken = p.parseOptionalToken(token.STAR)
		y.Expression = p.parseAssignmentExpressionOrHigher()
	}
	return finish(p, y, ast.KindYieldExpression, pos)
}

// ============================================================
// Arrow functions
// ============================================================

type tristate uint8

const (
	tristateFalse tristate = iota
	tristateTrue
	tristateUnknown
)

// tryParseParenthesizedArrowFunction parses an arrow function with a
// parenthesized parameter list, or returns nil and leaves the parser
// untouched when the tokens ahead do not form one.
func (p *Parser) tryParseParenthesizedArrowFunction() *ast.ArrowFunction {
	switch p.isParenthesizedArrowFunction() {
	case tristateFalse:
		return nil
	case tristateTrue:
		return p.parseParenthesizedArrowFunction(true)
	}
	var arrow *ast.ArrowFunction
	if !p.tryParse(func() bool {
		arrow = p.parseParenthesizedArrowFunction(false)
		return arrow != nil
	}) {
		return nil
	}
	return arrow
}

func (p *Parser) isParenthesizedArrowFunction() tristate {
	switch p.tok {
	case token.LPAREN, token.LT, token.KW_ASYNC:
		result := tristateFalse
		p.lookAhead(func() bool {
			result = p.scanParenthesizedArrowFunctionHead()
			return true
		})
		return result
	case token.ARROW:
		// "=> x" is an arrow function missing its parameters
		return tristateTrue
	}
	return tristateFalse
}

// scanParenthesizedArrowFunctionHead looks at the first few tokens of a
// possible arrow function head. It consumes tokens and must run under
// lookAhead.
func (p *Parser) scanParenthesizedArrowFunctionHead() tristate {
	if p.tok == token.KW_ASYNC {
		p.nextToken()
		if p.hasPrecedingLineBreak() || (p.tok != token.LPAREN && p.tok != token.LT) {
			return tristateFalse
		}
	}
	first := p.tok
	second := p.nextToken()

	if first == token.LPAREN {
		switch second {
		case token.RPAREN:
			switch p.nextToken() {
			case token.ARROW, token.COLON, token.LBRACE:
				return tristateTrue
			}
			return tristateFalse
		case token.LBRACKET, token.LBRACE:
			return tristateUnknown
		case token.ELLIPSIS:
			return tristateTrue
		}
		if isModifierKind(second) && second != token.KW_ASYNC && p.lookAhead(func() bool {
			p.nextToken()
			return p.isIdentifier()
		}) {
			if p.nextToken() == token.KW_AS {
				return tristateFalse
			}
			return tristateTrue
		}
		if !p.isIdentifier() && second != token.KW_THIS {
			return tristateFalse
		}
		switch p.nextToken() {
		case token.COLON:
			return tristateTrue
		case token.QUESTION:
			switch p.nextToken() {
			case token.COLON, token.COMMA, token.ASSIGN, token.RPAREN:
				return tristateTrue
			}
			return tristateFalse
		case token.COMMA, token.ASSIGN, token.RPAREN:
			return tristateUnknown
		}
		return tristateFalse
	}

	// '<' starts type parameters of a generic arrow or a type assertion
	if !p.isIdentifier() && p.tok != token.KW_CONST {
		return tristateFalse
	}
	return tristateUnknown
}

// parseParenthesizedArrowFunction parses [async] <T>(params): R => body. When
// allowAmbiguity is false the head must be error free and followed by '=>',
// otherwise nil is returned.
func (p *Parser) parseParenthesizedArrowFunction(allowAmbiguity bool) *ast.ArrowFunction {
	pos := p.tokenPos()
	reported := len(p.pending)
	mods := p.parseArrowFunctionModifiers()
	ctx := functionContext(false, ast.HasModifier(mods, token.KW_ASYNC))

	typeParams := p.parseTypeParameters()
	params := p.parseParameters(ctx)
	typ := p.parseTypeAnnotation()
	if !allowAmbiguity && (p.tok != token.ARROW || len(p.pending) != reported) {
		return nil
	}

	arrow := p.parseExpectedToken(token.ARROW)
	body := p.parseArrowFunctionBody(ctx)
	return finish(p, &ast.ArrowFunction{
		Modifiers:              mods,
		TypeParameters:         typeParams,
		Parameters:             params,
		Type:                   typ,
		EqualsGreaterThanToken: arrow,
		Body:                   body,
	}, ast.KindArrowFunction, pos)
}

func (p *Parser) parseArrowFunctionModifiers() *ast.Modifiers {
	if p.tok != token.KW_ASYNC {
		return nil
	}
	pos := p.tokenPos()
	mod := p.parseTokenNode()
	return finishList(p, &ast.Modifiers{Pos: pos, Nodes: []ast.Node{mod}})
}

// tryParseAsyncSimpleArrowFunction parses async x => body.
func (p *Parser) tryParseAsyncSimpleArrowFunction() *ast.ArrowFunction {
	if p.tok != token.KW_ASYNC || !p.lookAhead(func() bool {
		p.nextToken()
		if p.hasPrecedingLineBreak() || !p.isIdentifier() {
			return false
		}
		p.nextToken()
		return p.tok == token.ARROW && !p.hasPrecedingLineBreak()
	}) {
		return nil
	}
	pos := p.tokenPos()
	mods := p.parseArrowFunctionModifiers()
	return p.parseSimpleArrowFunction(pos, p.parseIdentifier(), mods)
}

// parseSimpleArrowFunction parses the rest of x => body once x is parsed.
func (p *Parser) parseSimpleArrowFunction(pos int, name *ast.Identifier, mods *ast.Modifiers) *ast.ArrowFunction {
	param := finish(p, &ast.Parameter{Name: name}, ast.KindParameter, name.Pos)
	params := &ast.NodeList[*ast.Parameter]{Pos: name.Pos, End: name.End, Nodes: []*ast.Parameter{param}}
	ctx := functionContext(false, ast.HasModifier(mods, token.KW_ASYNC))
	arrow := p.parseExpectedToken(token.ARROW)
	body := p.parseArrowFunctionBody(ctx)
	return finish(p, &ast.ArrowFunction{
		Modifiers:              mods,
		Parameters:             params,
		EqualsGreaterThanToken: arrow,
		Body:                   body,
	}, ast.KindArrowFunction, pos)
}

func (p *Parser) parseArrowFunctionBody(ctx funcContext) ast.Node {
	if p.tok == token.LBRACE {
		return p.parseFunctionBlock(ctx)
	}
	saved := p.funcCtx
	p.funcCtx = ctx
	body := p.parseConnectExpressionOrHigher()
	p.funcCtx = saved
	return body
}

// ============================================================
// Binary operators
// ============================================================

// binaryPrecedence returns the binding power of k as a binary operator, or 0.
func binaryPrecedence(k token.Kind) int {
	switch k {
	case token.QUESTION_QUESTION:
		return 4
	case token.OR:
		return 5
	case token.AND:
		return 6
	case token.PIPE:
		return 7
	case token.CARET:
		return 8
	case token.AMP:
		return 9
	case token.EQ, token.NEQ, token.STRICT_EQ, token.STRICT_NEQ:
		return 10
	case token.LT, token.GT, token.LTE, token.GTE, token.KW_INSTANCEOF, token.KW_IN, token.KW_AS:
		return 11
	case token.SHL, token.SHR, token.USHR:
		return 12
	case token.PLUS, token.MINUS:
		return 13
	case token.STAR, token.SLASH, token.PERCENT:
		return 14
	case token.STAR_STAR:
		return 15
	}
	return 0
}

func (p *Parser) parseBinaryExpressionOrHigher(precedence int) ast.Expression {
	left := p.parseUnaryExpressionOrHigher()
	return p.parseBinaryExpressionRest(precedence, left)
}

// parseBinaryExpressionRest climbs operators that bind tighter than
// precedence. '**' is right-associative, every other operator groups left.
func (p *Parser) parseBinaryExpressionRest(precedence int, left ast.Expression) ast.Expression {
	for {
		newPrecedence := binaryPrecedence(p.tok)
		if newPrecedence == 0 {
			return left
		}
		if p.tok == token.STAR_STAR {
			if newPrecedence < precedence {
				return left
			}
		} else if newPrecedence <= precedence {
			return left
		}

		if p.tok == token.KW_AS {
			if p.hasPrecedingLineBreak() {
				return left
			}
			p.nextToken()
			typ := p.parseType()
			left = finish(p, &ast.AsExpression{Expression: left, Type: typ}, ast.KindAsExpression, left.Base().Pos)
			continue
		}

		op := p.parseTokenNode()
		right := p.parseBinaryExpressionOrHigher(newPrecedence)
		left = finish(p, &ast.BinaryExpression{Left: left, OperatorToken: op, Right: right}, ast.KindBinaryExpression, left.Base().Pos)
	}
}

// ============================================================
// Unary and update
// ============================================================

func (p *Parser) parseUnaryExpressionOrHigher() ast.Expression {
	if p.isUpdateExpression() {
		update := p.parseUpdateExpression()
		if p.tok == token.STAR_STAR {
			return p.parseBinaryExpressionRest(binaryPrecedence(token.STAR_STAR), update)
		}
		return update
	}

	operator := p.tok
	simple := p.parseSimpleUnaryExpression()
	if p.tok == token.STAR_STAR {
		b := simple.Base()
		if simple.Kind() == ast.KindTypeAssertionExpression {
			p.errorAt(b.Pos, b.End-b.Pos, diag.UnexpectedToken,
				"A type assertion expression is not allowed in the left-hand side of an exponentiation expression. Consider enclosing the expression in parentheses.")
		} else {
			p.errorAt(b.Pos, b.End-b.Pos, diag.UnexpectedToken,
				"An unary expression with the '%s' operator is not allowed in the left-hand side of an exponentiation expression. Consider enclosing the expression in parentheses.", operator)
		}
	}
	return simple
}

// isUpdateExpression reports whether the current token starts an update
// expression rather than a prefix unary operator or a type assertion.
func (p *Parser) isUpdateExpression() bool {
	switch p.tok {
	case token.PLUS, token.MINUS, token.TILDE, token.BANG,
		token.KW_DELETE, token.KW_TYPEOF, token.KW_VOID, token.KW_AWAIT, token.LT:
		return false
	}
	return true
}

func (p *Parser) parseSimpleUnaryExpression() ast.Expression {
	pos := p.tokenPos()
	switch p.tok {
	case token.PLUS, token.MINUS, token.TILDE, token.BANG:
		op := p.tok
		p.nextToken()
		operand := p.parseSimpleUnaryExpression()
		return finish(p, &ast.PrefixUnaryExpression{Operator: op, Operand: operand}, ast.KindPrefixUnaryExpression, pos)
	case token.KW_DELETE:
		p.nextToken()
		return finish(p, &ast.DeleteExpression{Expression: p.parseSimpleUnaryExpression()}, ast.KindDeleteExpression, pos)
	case token.KW_TYPEOF:
		p.nextToken()
		return finish(p, &ast.TypeOfExpression{Expression: p.parseSimpleUnaryExpression()}, ast.KindTypeOfExpression, pos)
	case token.KW_VOID:
		p.nextToken()
		return finish(p, &ast.VoidExpression{Expression: p.parseSimpleUnaryExpression()}, ast.KindVoidExpression, pos)
	case token.LT:
		return p.parseTypeAssertion()
	case token.KW_AWAIT:
		if p.isAwaitExpression() {
			p.nextToken()
			return finish(p, &ast.AwaitExpression{Expression: p.parseSimpleUnaryExpression()}, ast.KindAwaitExpression, pos)
		}
	}
	return p.parseUpdateExpression()
}

func (p *Parser) isAwaitExpression() bool {
	if p.tok != token.KW_AWAIT {
		return false
	}
	return p.funcCtx&inAsync != 0 || p.nextTokenIsLiteralOnSameLine()
}

// parseTypeAssertion parses <T>expr.
func (p *Parser) parseTypeAssertion() *ast.TypeAssertionExpression {
	pos := p.tokenPos()
	p.parseExpected(token.LT)
	typ := p.parseType()
	p.reScanGreater()
	p.parseExpected(token.GT)
	expr := p.parseSimpleUnaryExpression()
	return finish(p, &ast.TypeAssertionExpression{Type: typ, Expression: expr}, ast.KindTypeAssertionExpression, pos)
}

func (p *Parser) parseUpdateExpression() ast.Expression {
	if p.tok == token.INC || p.tok == token.DEC {
		pos := p.tokenPos()
		op := p.tok
		p.nextToken()
		operand := p.parseLeftHandSideExpressionOrHigher()
		return finish(p, &ast.PrefixUnaryExpression{Operator: op, Operand: operand}, ast.KindPrefixUnaryExpression, pos)
	}

	expr := p.parseLeftHandSideExpressionOrHigher()
	if (p.tok == token.INC || p.tok == token.DEC) && !p.hasPrecedingLineBreak() {
		op := p.tok
		p.nextToken()
		return finish(p, &ast.PostfixUnaryExpression{Operand: expr, Operator: op}, ast.KindPostfixUnaryExpression, expr.Base().Pos)
	}
	return expr
}

// ============================================================
// Left-hand side: member access and calls
// ============================================================

func (p *Parser) parseLeftHandSideExpressionOrHigher() ast.Expression {
	var expr ast.Expression
	if p.tok == token.KW_SUPER {
		expr = p.parseSuperExpression()
	} else {
		expr = p.parseMemberExpressionOrHigher()
	}
	return p.parseCallExpressionRest(expr)
}

func (p *Parser) parseSuperExpression() ast.Expression {
	pos := p.tokenPos()
	p.nextToken()
	expr := finish(p, &ast.KeywordExpression{}, ast.KindSuperKeyword, pos)
	switch p.tok {
	case token.LPAREN, token.DOT, token.LBRACKET, token.LT:
	default:
		p.errorAtCurrent(diag.UnexpectedToken, "'super' must be followed by an argument list or member access.")
	}
	return expr
}

func (p *Parser) parseMemberExpressionOrHigher() ast.Expression {
	return p.parseMemberExpressionRest(p.parsePrimaryExpression(), true)
}

func (p *Parser) parseMemberExpressionRest(expr ast.Expression, allowOptionalChain bool) ast.Expression {
	for {
		var questionDot *ast.TokenNode
		var isPropertyAccess bool
		if allowOptionalChain && p.isStartOfOptionalAccess() {
			questionDot = p.parseTokenNode()
			isPropertyAccess = p.tok.IsIdentifierOrKeyword()
		} else {
			isPropertyAccess = p.parseOptional(token.DOT)
		}

		if isPropertyAccess {
			name := p.parseIdentifierName()
			access := finish(p, &ast.PropertyAccessExpression{Expression: expr, QuestionDotToken: questionDot, Name: name}, ast.KindPropertyAccessExpression, expr.Base().Pos)
			markOptionalChain(access, questionDot, expr)
			expr = access
			continue
		}

		if p.parseOptional(token.LBRACKET) {
			var arg ast.Expression
			if p.tok == token.RBRACKET {
				p.errorAtCurrent(diag.ExpressionExpected, "An element access expression should take an argument.")
				arg = p.missingIdentifier()
			} else {
				arg = p.parseExpression()
			}
			p.parseExpected(token.RBRACKET)
			access := finish(p, &ast.ElementAccessExpression{Expression: expr, QuestionDotToken: questionDot, ArgumentExpression: arg}, ast.KindElementAccessExpression, expr.Base().Pos)
			markOptionalChain(access, questionDot, expr)
			expr = access
			continue
		}
		return expr
	}
}

// isStartOfOptionalAccess reports whether '?.' starts a property or element
// access. '?.(' and '?.<' are left for the call rules.
func (p *Parser) isStartOfOptionalAccess() bool {
	return p.tok == token.QUESTION_DOT && p.lookAhead(func() bool {
		p.nextToken()
		return p.tok.IsIdentifierOrKeyword() || p.tok == token.LBRACKET
	})
}

// markOptionalChain flags n as part of an optional chain when it starts one
// or continues the chain of its operand.
func markOptionalChain(n ast.Node, questionDot *ast.TokenNode, operand ast.Expression) {
	if questionDot != nil || operand.Base().Flags&ast.FlagOptionalChain != 0 {
		n.Base().Flags |= ast.FlagOptionalChain
	}
}

func (p *Parser) parseCallExpressionRest(expr ast.Expression) ast.Expression {
	for {
		expr = p.parseMemberExpressionRest(expr, true)

		var questionDot *ast.TokenNode
		if p.tok == token.QUESTION_DOT && p.lookAhead(func() bool {
			next := p.nextToken()
			return next == token.LPAREN || next == token.LT
		}) {
			questionDot = p.parseTokenNode()
		}

		if p.tok == token.LT {
			if typeArgs := p.tryParseTypeArgumentsInExpression(); typeArgs != nil {
				args := p.parseArgumentList()
				call := finish(p, &ast.CallExpression{Expression: expr, QuestionDotToken: questionDot, TypeArguments: typeArgs, Arguments: args}, ast.KindCallExpression, expr.Base().Pos)
				markOptionalChain(call, questionDot, expr)
				expr = call
				continue
			}
		}
		if p.tok == token.LPAREN {
			args := p.parseArgumentList()
			call := finish(p, &ast.CallExpression{Expression: expr, QuestionDotToken: questionDot, Arguments: args}, ast.KindCallExpression, expr.Base().Pos)
			markOptionalChain(call, questionDot, expr)
			expr = call
			continue
		}
		if questionDot != nil {
			// '?.<' that did not turn out to be a generic call
			p.errorAtCurrent(diag.IdentifierExpected, "Identifier expected.")
			access := finish(p, &ast.PropertyAccessExpression{Expression: expr, QuestionDotToken: questionDot, Name: p.missingIdentifier()}, ast.KindPropertyAccessExpression, expr.Base().Pos)
			access.Flags |= ast.FlagOptionalChain
			expr = access
			continue
		}
		return expr
	}
}

// tryParseTypeArgumentsInExpression parses <T, U> after a call target. The
// list is kept only when it is closed by '>' and an argument list follows;
// otherwise '<' is a comparison and nil is returned.
func (p *Parser) tryParseTypeArgumentsInExpression() *ast.NodeList[ast.TypeNode] {
	var list *ast.NodeList[ast.TypeNode]
	if !p.tryParse(func() bool {
		p.nextToken()
		list = parseDelimitedList(p, ctxTypeArguments, p.parseType)
		if list.Len() == 0 || p.reScanGreater() != token.GT {
			return false
		}
		p.nextToken()
		return p.tok == token.LPAREN
	}) {
		return nil
	}
	return list
}

func (p *Parser) parseArgumentList() *ast.NodeList[ast.Expression] {
	return parseBracketedList(p, ctxArgumentExpressions, p.parseArgumentOrArrayLiteralElement, token.LPAREN, token.RPAREN)
}

func (p *Parser) parseArgumentOrArrayLiteralElement() ast.Expression {
	pos := p.tokenPos()
	switch p.tok {
	case token.ELLIPSIS:
		p.nextToken()
		return finish(p, &ast.SpreadElement{Expression: p.parseAssignmentExpressionOrHigher()}, ast.KindSpreadElement, pos)
	case token.COMMA:
		return finish(p, &ast.OmittedExpression{}, ast.KindOmittedExpression, pos)
	}
	return p.parseConnectExpressionOrHigher()
}

// ============================================================
// Primary expressions
// ============================================================

func (p *Parser) parsePrimaryExpression() ast.Expression {
	switch p.tok {
	case token.NUMBER:
		return p.parseNumericLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.KW_THIS, token.KW_TRUE, token.KW_FALSE, token.KW_NULL:
		return p.parseKeywordExpression()
	case token.LPAREN:
		return p.parseParenthesizedExpression()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.KW_ASYNC:
		if p.lookAhead(func() bool {
			return p.nextToken() == token.KW_FUNCTION && !p.hasPrecedingLineBreak()
		}) {
			return p.parseFunctionExpression()
		}
	case token.KW_CLASS:
		return p.parseClassExpression()
	case token.KW_FUNCTION:
		return p.parseFunctionExpression()
	case token.KW_NEW:
		return p.parseNewExpression()
	}
	return p.parseIdentifierWith(diag.ExpressionExpected, "Expression expected.")
}

var keywordExpressionKinds = map[token.Kind]ast.Kind{
	token.KW_THIS:  ast.KindThisKeyword,
	token.KW_TRUE:  ast.KindTrueKeyword,
	token.KW_FALSE: ast.KindFalseKeyword,
	token.KW_NULL:  ast.KindNullKeyword,
}

func (p *Parser) parseKeywordExpression() *ast.KeywordExpression {
	pos := p.tokenPos()
	kind := keywordExpressionKinds[p.tok]
	p.nextToken()
	return finish(p, &ast.KeywordExpression{}, kind, pos)
}

func (p *Parser) parseNumericLiteral() *ast.NumericLiteral {
	pos := p.tokenPos()
	lit := &ast.NumericLiteral{Text: p.tokenValue(), LiteralFlags: p.lexer.TokenFlags() & token.NumericLiteralFlags}
	p.nextToken()
	return finish(p, lit, ast.KindNumericLiteral, pos)
}

func (p *Parser) parseStringLiteral() *ast.StringLiteral {
	pos := p.tokenPos()
	lit := &ast.StringLiteral{Text: p.tokenValue(), LiteralFlags: p.lexer.TokenFlags() & (token.Unterminated | token.ContainsInvalidEscape)}
	p.nextToken()
	return finish(p, lit, ast.KindStringLiteral, pos)
}

func (p *Parser) parseParenthesizedExpression() *ast.ParenthesizedExpression {
	pos := p.tokenPos()
	p.parseExpected(token.LPAREN)
	expr := p.parseExpression()
	p.parseExpected(token.RPAREN)
	return finish(p, &ast.ParenthesizedExpression{Expression: expr}, ast.KindParenthesizedExpression, pos)
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteralExpression {
	pos := p.tokenPos()
	elements := parseBracketedList(p, ctxArrayLiteralMembers, p.parseArgumentOrArrayLiteralElement, token.LBRACKET, token.RBRACKET)
	return finish(p, &ast.ArrayLiteralExpression{Elements: elements}, ast.KindArrayLiteralExpression, pos)
}

func (p *Parser) parseObjectLiteral() *ast.ObjectLiteralExpression {
	pos := p.tokenPos()
	props := parseBracketedList(p, ctxObjectLiteralMembers, p.parseObjectLiteralElement, token.LBRACE, token.RBRACE)
	return finish(p, &ast.ObjectLiteralExpression{Properties: props}, ast.KindObjectLiteralExpression, pos)
}

func (p *Parser) parseObjectLiteralElement() ast.Node {
	pos := p.tokenPos()
	if p.parseOptional(token.ELLIPSIS) {
		expr := p.parseAssignmentExpressionOrHigher()
		return finish(p, &ast.SpreadAssignment{Expression: expr}, ast.KindSpreadAssignment, pos)
	}

	mods := p.parseModifiers(false)
	if p.parseContextualModifier(token.KW_GET) {
		return p.parseAccessor(pos, mods, ast.KindGetAccessor)
	}
	if p.parseContextualModifier(token.KW_SET) {
		return p.parseAccessor(pos, mods, ast.KindSetAccessor)
	}

	asterisk := p.parseOptionalToken(token.STAR)
	tokenIsIdentifier := p.isIdentifier()
	name := p.parsePropertyName()
	question := p.parseOptionalToken(token.QUESTION)
	if asterisk != nil || p.tok == token.LPAREN || p.tok == token.LT {
		return p.parseMethodDeclaration(pos, mods, asterisk, name, question)
	}

	if id, ok := name.(*ast.Identifier); ok && tokenIsIdentifier && p.tok != token.COLON {
		shorthand := &ast.ShorthandPropertyAssignment{Modifiers: mods, Name: id, QuestionToken: question}
		return finish(p, shorthand, ast.KindShorthandPropertyAssignment, pos)
	}
	p.parseExpected(token.COLON)
	prop := &ast.PropertyAssignment{Modifiers: mods, Name: name, QuestionToken: question}
	prop.Initializer = p.parseConnectExpressionOrHigher()
	return finish(p, prop, ast.KindPropertyAssignment, pos)
}

func (p *Parser) parseFunctionExpression() *ast.FunctionExpression {
	pos := p.tokenPos()
	fn := &ast.FunctionExpression{Modifiers: p.parseModifiers(false)}
	p.parseExpected(token.KW_FUNCTION)
	fn.AsteriskToken = p.parseOptionalToken(token.STAR)
	ctx := functionContext(fn.AsteriskToken != nil, ast.HasModifier(fn.Modifiers, token.KW_ASYNC))
	if p.isIdentifier() {
		fn.Name = p.parseIdentifier()
	}
	fn.TypeParameters = p.parseTypeParameters()
	fn.Parameters = p.parseParameters(ctx)
	fn.Type = p.parseTypeAnnotation()
	fn.Body = p.parseFunctionBlock(ctx)
	return finish(p, fn, ast.KindFunctionExpression, pos)
}

// parseNewExpression parses new C<T>(args). The argument list is optional.
func (p *Parser) parseNewExpression() *ast.NewExpression {
	pos := p.tokenPos()
	p.parseExpected(token.KW_NEW)
	n := &ast.NewExpression{Expression: p.parseMemberExpressionRest(p.parsePrimaryExpression(), false)}
	if p.tok == token.LT {
		n.TypeArguments = p.tryParseTypeArgumentsInExpression()
	}
	if p.tok == token.LPAREN {
		n.Arguments = p.parseArgumentList()
	}
	return finish(p, n, ast.KindNewExpression, pos)
}

// ============================================================
// Names
// ============================================================

func (p *Parser) parseIdentifier() *ast.Identifier {
	return p.parseIdentifierWith(diag.IdentifierExpected, "Identifier expected.")
}

// parseIdentifierWith parses an identifier, or reports code and returns an
// empty identifier without consuming anything.
func (p *Parser) parseIdentifierWith(code, msg string) *ast.Identifier {
	if p.isIdentifier() {
		pos := p.tokenPos()
		text := p.tokenValue()
		p.nextToken()
		return finish(p, &ast.Identifier{Text: text}, ast.KindIdentifier, pos)
	}
	if p.tok.IsReservedWord() && code == diag.IdentifierExpected {
		p.errorAtCurrent(code, "Identifier expected. '%s' is a reserved word that cannot be used here.", p.tok)
	} else {
		p.errorAtCurrent(code, msg)
	}
	return p.missingIdentifier()
}

// parseIdentifierName parses a name after '.', where every keyword is allowed.
func (p *Parser) parseIdentifierName() *ast.Identifier {
	if p.tok.IsIdentifierOrKeyword() {
		pos := p.tokenPos()
		text := p.tokenValue()
		p.nextToken()
		return finish(p, &ast.Identifier{Text: text}, ast.KindIdentifier, pos)
	}
	p.errorAtCurrent(diag.IdentifierExpected, "Identifier expected.")
	return p.missingIdentifier()
}

func (p *Parser) isLiteralPropertyName() bool {
	return p.tok.IsIdentifierOrKeyword() || p.tok == token.STRING || p.tok == token.NUMBER
}

// parsePropertyName parses a member name: identifier, keyword, string,
// number or [computed].
func (p *Parser) parsePropertyName() ast.Node {
	switch p.tok {
	case token.STRING:
		return p.parseStringLiteral()
	case token.NUMBER:
		return p.parseNumericLiteral()
	case token.LBRACKET:
		pos := p.tokenPos()
		p.nextToken()
		expr := p.parseExpression()
		p.parseExpected(token.RBRACKET)
		return finish(p, &ast.ComputedPropertyName{Expression: expr}, ast.KindComputedPropertyName, pos)
	}
	if p.tok.IsIdentifierOrKeyword() {
		return p.parseIdentifierName()
	}
	p.errorAtCurrent(diag.PropertyNameExpected, "Property name expected.")
	return p.missingIdentifier()
}

// ============================================================
// Lookahead predicates
// ============================================================

func (p *Parser) isStartOfLeftHandSideExpression() bool {
	switch p.tok {
	case token.KW_THIS, token.KW_SUPER, token.KW_NULL, token.KW_TRUE, token.KW_FALSE,
		token.NUMBER, token.STRING, token.LPAREN, token.LBRACKET, token.LBRACE,
		token.KW_FUNCTION, token.KW_CLASS, token.KW_NEW:
		return true
	}
	return p.isIdentifier()
}

func (p *Parser) isStartOfExpression() bool {
	if p.isStartOfLeftHandSideExpression() {
		return true
	}
	switch p.tok {
	case token.PLUS, token.MINUS, token.TILDE, token.BANG, token.KW_DELETE, token.KW_TYPEOF, token.KW_VOID,
		token.INC, token.DEC, token.LT:
		return true
	}
	return false
}

// nextTokenIsLiteralOnSameLine reports whether the next token is a word,
// number or string on the current line.
func (p *Parser) nextTokenIsLiteralOnSameLine() bool {
	return p.lookAhead(func() bool {
		p.nextToken()
		if p.hasPrecedingLineBreak() {
			return false
		}
		return p.tok.IsIdentifierOrKeyword() || p.tok == token.NUMBER || p.tok == token.STRING
	})
}
