package parser

import (
	"strings"

	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// ============================================================
// Modifiers and decorators
// ============================================================

func isModifierKind(k token.Kind) bool {
	switch k {
	case token.KW_ABSTRACT, token.KW_ASYNC, token.KW_CONST, token.KW_DECLARE, token.KW_DEFAULT, token.KW_EXPORT,
		token.KW_PRIVATE, token.KW_PROTECTED, token.KW_PUBLIC, token.KW_READONLY, token.KW_STATIC:
		return true
	}
	return false
}

func isClassMemberModifier(k token.Kind) bool {
	switch k {
	case token.KW_PRIVATE, token.KW_PROTECTED, token.KW_PUBLIC, token.KW_READONLY, token.KW_STATIC:
		return true
	}
	return false
}

// parseModifiers parses decorators (when allowed) and modifier keywords. It
// returns nil when there are none.
func (p *Parser) parseModifiers(allowDecorators bool) *ast.Modifiers {
	pos := p.tokenPos()
	var nodes []ast.Node
	for {
		if allowDecorators && p.tok == token.AT {
			nodes = append(nodes, p.parseDecorator())
			continue
		}
		mod := p.tryParseModifier()
		if mod == nil {
			break
		}
		nodes = append(nodes, mod)
	}
	if len(nodes) == 0 {
		return nil
	}
	return finishList(p, &ast.Modifiers{Pos: pos, Nodes: nodes})
}

// tryParseModifier consumes a modifier keyword when the token after it can
// follow a modifier. Otherwise the keyword is left alone to be parsed as a
// name.
func (p *Parser) tryParseModifier() *ast.TokenNode {
	if !isModifierKind(p.tok) {
		return nil
	}
	pos := p.tokenPos()
	kind := p.tok
	if !p.tryParse(p.nextTokenCanFollowModifier) {
		return nil
	}
	return finish(p, &ast.TokenNode{Token: kind}, ast.KindToken, pos)
}

// parseContextualModifier consumes get or set when it introduces an accessor.
func (p *Parser) parseContextualModifier(k token.Kind) bool {
	return p.tok == k && p.tryParse(p.nextTokenCanFollowModifier)
}

// nextTokenCanFollowModifier advances past the modifier and reports whether
// what follows is something a modifier can apply to.
func (p *Parser) nextTokenCanFollowModifier() bool {
	switch p.tok {
	case token.KW_CONST:
		return p.nextToken() == token.KW_ENUM
	case token.KW_EXPORT:
		p.nextToken()
		if p.tok == token.KW_DEFAULT {
			return p.lookAhead(p.nextTokenCanFollowDefault)
		}
		return p.tok == token.AT || (p.tok != token.STAR && p.tok != token.KW_AS && p.tok != token.LBRACE && p.canFollowModifier())
	case token.KW_DEFAULT:
		return p.nextTokenCanFollowDefault()
	case token.KW_STATIC, token.KW_GET, token.KW_SET:
		p.nextToken()
		return p.canFollowModifier()
	}
	p.nextToken()
	return !p.hasPrecedingLineBreak() && p.canFollowModifier()
}

func (p *Parser) nextTokenCanFollowDefault() bool {
	switch p.nextToken() {
	case token.KW_CLASS, token.KW_FUNCTION, token.KW_INTERFACE, token.AT:
		return true
	case token.KW_ABSTRACT:
		return p.nextTokenIsOnSameLine(token.KW_CLASS)
	case token.KW_ASYNC:
		return p.nextTokenIsOnSameLine(token.KW_FUNCTION)
	}
	return false
}

func (p *Parser) canFollowModifier() bool {
	switch p.tok {
	case token.LBRACKET, token.LBRACE, token.STAR, token.ELLIPSIS:
		return true
	}
	return p.isLiteralPropertyName()
}

func (p *Parser) parseDecorator() *ast.Decorator {
	pos := p.tokenPos()
	p.parseExpected(token.AT)
	expr := p.parseLeftHandSideExpressionOrHigher()
	return finish(p, &ast.Decorator{Expression: expr}, ast.KindDecorator, pos)
}

// ============================================================
// Declarations
// ============================================================

// isStartOfDeclaration walks past modifiers to see whether a declaration
// keyword follows.
func (p *Parser) isStartOfDeclaration() bool {
	return p.lookAhead(p.scanDeclarationStart)
}

func (p *Parser) scanDeclarationStart() bool {
	for {
		switch p.tok {
		case token.KW_VAR, token.KW_LET, token.KW_CONST, token.KW_FUNCTION, token.KW_CLASS, token.KW_ENUM:
			return true
		case token.KW_INTERFACE, token.KW_TYPE, token.KW_NAMESPACE, token.KW_NODE, token.KW_SUBNET:
			p.nextToken()
			return !p.hasPrecedingLineBreak() && p.isIdentifier()
		case token.KW_ABSTRACT, token.KW_ASYNC, token.KW_DECLARE, token.KW_PRIVATE, token.KW_PROTECTED,
			token.KW_PUBLIC, token.KW_READONLY:
			p.nextToken()
			if p.hasPrecedingLineBreak() {
				return false
			}
		case token.KW_STATIC:
			p.nextToken()
		case token.KW_IMPORT:
			p.nextToken()
			return p.tok == token.STRING || p.tok == token.STAR || p.tok == token.LBRACE || p.isIdentifier()
		case token.KW_EXPORT:
			p.nextToken()
			switch p.tok {
			case token.ASSIGN, token.STAR, token.LBRACE, token.KW_DEFAULT, token.KW_AS:
				return true
			}
		default:
			return false
		}
	}
}

// parseDeclaration parses decorators and modifiers followed by a declaration.
// A declare modifier puts everything inside in the ambient context.
func (p *Parser) parseDeclaration() ast.Statement {
	pos := p.tokenPos()
	mods := p.parseModifiers(true)
	if !ast.HasModifier(mods, token.KW_DECLARE) {
		return p.parseDeclarationWorker(pos, mods)
	}
	for _, m := range mods.Nodes {
		m.Base().Flags |= ast.FlagAmbient
	}
	saved := p.contextFlags
	p.contextFlags |= ast.FlagAmbient
	decl := p.parseDeclarationWorker(pos, mods)
	p.contextFlags = saved
	return decl
}

func (p *Parser) parseDeclarationWorker(pos int, mods *ast.Modifiers) ast.Statement {
	switch p.tok {
	case token.KW_VAR, token.KW_LET, token.KW_CONST:
		return p.parseVariableStatement(pos, mods)
	case token.KW_FUNCTION:
		return p.parseFunctionDeclaration(pos, mods)
	case token.KW_CLASS:
		return p.parseClassDeclaration(pos, mods)
	case token.KW_INTERFACE:
		return p.parseInterfaceDeclaration(pos, mods)
	case token.KW_TYPE:
		return p.parseTypeAliasDeclaration(pos, mods)
	case token.KW_ENUM:
		return p.parseEnumDeclaration(pos, mods)
	case token.KW_NAMESPACE:
		p.nextToken()
		return p.parseModuleDeclaration(pos, mods)
	case token.KW_NODE, token.KW_SUBNET:
		return p.parseNodeDeclaration(pos, mods)
	case token.KW_IMPORT:
		return p.parseImportDeclaration(pos, mods)
	case token.KW_EXPORT:
		p.nextToken()
		if p.tok == token.KW_DEFAULT || p.tok == token.ASSIGN {
			return p.parseExportAssignment(pos, mods)
		}
		return p.parseExportDeclaration(pos, mods)
	}

	// modifiers or decorators with nothing to apply to
	p.errorAtCurrent(diag.DeclarationExpected, "Declaration expected.")
	return finish(p, &ast.MissingDeclaration{Modifiers: mods}, ast.KindMissingDeclaration, pos)
}

func functionContext(generator, async bool) funcContext {
	var ctx funcContext
	if generator {
		ctx |= inGenerator
	}
	if async {
		ctx |= inAsync
	}
	return ctx
}

func (p *Parser) parseFunctionDeclaration(pos int, mods *ast.Modifiers) *ast.FunctionDeclaration {
	p.parseExpected(token.KW_FUNCTION)
	fn := &ast.FunctionDeclaration{Modifiers: mods, AsteriskToken: p.parseOptionalToken(token.STAR)}
	ctx := functionContext(fn.AsteriskToken != nil, ast.HasModifier(mods, token.KW_ASYNC))
	if !ast.HasModifier(mods, token.KW_DEFAULT) || p.isIdentifier() {
		fn.Name = p.parseIdentifier()
	}
	fn.TypeParameters = p.parseTypeParameters()
	fn.Parameters = p.parseParameters(ctx)
	fn.Type = p.parseTypeAnnotation()
	fn.Body = p.parseFunctionBlockOrSemicolon(ctx)
	return finish(p, fn, ast.KindFunctionDeclaration, pos)
}

// parseParameters parses (params) with ctx as the yield/await context of the
// parameter initializers.
func (p *Parser) parseParameters(ctx funcContext) *ast.NodeList[*ast.Parameter] {
	saved := p.funcCtx
	p.funcCtx = ctx
	params := parseBracketedList(p, ctxParameters, p.parseParameter, token.LPAREN, token.RPAREN)
	p.funcCtx = saved
	return params
}

func (p *Parser) isStartOfParameter() bool {
	return p.tok == token.ELLIPSIS || p.tok == token.AT || p.isIdentifier() || isModifierKind(p.tok)
}

func (p *Parser) parseParameter() *ast.Parameter {
	pos := p.tokenPos()
	param := &ast.Parameter{Modifiers: p.parseModifiers(true)}
	param.DotDotDot = p.parseOptionalToken(token.ELLIPSIS)
	param.Name = p.parseIdentifier()
	param.QuestionToken = p.parseOptionalToken(token.QUESTION)
	param.Type = p.parseTypeAnnotation()
	param.Initializer = p.parseInitializer()
	return finish(p, param, ast.KindParameter, pos)
}

// ============================================================
// Classes
// ============================================================

func (p *Parser) parseClassDeclaration(pos int, mods *ast.Modifiers) *ast.ClassDeclaration {
	decl := &ast.ClassDeclaration{}
	p.parseClassLike(&decl.ClassLike, mods, !ast.HasModifier(mods, token.KW_DEFAULT))
	return finish(p, decl, ast.KindClassDeclaration, pos)
}

func (p *Parser) parseClassExpression() *ast.ClassExpression {
	pos := p.tokenPos()
	expr := &ast.ClassExpression{}
	p.parseClassLike(&expr.ClassLike, nil, false)
	return finish(p, expr, ast.KindClassExpression, pos)
}

func (p *Parser) parseClassLike(c *ast.ClassLike, mods *ast.Modifiers, nameRequired bool) {
	p.parseExpected(token.KW_CLASS)
	c.Modifiers = mods
	if p.isIdentifier() && !p.isImplementsClause() {
		c.Name = p.parseIdentifier()
	} else if nameRequired {
		c.Name = p.parseIdentifier()
	}
	c.TypeParameters = p.parseTypeParameters()
	if p.tok == token.KW_EXTENDS || p.tok == token.KW_IMPLEMENTS {
		c.HeritageClauses = p.parseHeritageClauses()
	}
	if p.parseExpected(token.LBRACE) {
		c.Members = parseList(p, ctxClassMembers, p.parseClassElement)
		p.parseExpected(token.RBRACE)
	} else {
		c.Members = emptyList[ast.Node](p)
	}
}

func (p *Parser) isImplementsClause() bool {
	return p.tok == token.KW_IMPLEMENTS && p.lookAhead(func() bool {
		p.nextToken()
		return p.tok.IsIdentifierOrKeyword()
	})
}

func (p *Parser) parseHeritageClauses() *ast.NodeList[*ast.HeritageClause] {
	list := &ast.NodeList[*ast.HeritageClause]{Pos: p.tokenPos()}
	for p.tok == token.KW_EXTENDS || p.tok == token.KW_IMPLEMENTS {
		list.Nodes = append(list.Nodes, p.parseHeritageClause())
	}
	return finishList(p, list)
}

func (p *Parser) parseHeritageClause() *ast.HeritageClause {
	pos := p.tokenPos()
	kind := p.tok
	p.nextToken()
	types := parseDelimitedList(p, ctxHeritageClauseElement, p.parseExpressionWithTypeArguments)
	return finish(p, &ast.HeritageClause{Token: kind, Types: types}, ast.KindHeritageClause, pos)
}

func (p *Parser) parseExpressionWithTypeArguments() *ast.ExpressionWithTypeArguments {
	pos := p.tokenPos()
	e := &ast.ExpressionWithTypeArguments{Expression: p.parseLeftHandSideExpressionOrHigher()}
	if p.tok == token.LT {
		e.TypeArguments = parseBracketedList(p, ctxTypeArguments, p.parseType, token.LT, token.GT)
	}
	return finish(p, e, ast.KindExpressionWithTypeArguments, pos)
}

// isClassMemberStart runs under lookAhead and may consume tokens.
func (p *Parser) isClassMemberStart() bool {
	idToken := token.ILLEGAL
	if p.tok == token.AT {
		return true
	}
	for isModifierKind(p.tok) {
		idToken = p.tok
		if isClassMemberModifier(idToken) {
			return true
		}
		p.nextToken()
	}
	if p.tok == token.STAR {
		return true
	}
	if p.isLiteralPropertyName() {
		idToken = p.tok
		p.nextToken()
	}
	if p.tok == token.LBRACKET {
		return true
	}
	if idToken != token.ILLEGAL {
		if !idToken.IsKeyword() || idToken == token.KW_GET || idToken == token.KW_SET {
			return true
		}
		switch p.tok {
		case token.LPAREN, token.LT, token.COLON, token.ASSIGN, token.QUESTION:
			return true
		}
		return p.canParseSemicolon()
	}
	return false
}

func (p *Parser) parseClassElement() ast.Node {
	pos := p.tokenPos()
	if p.parseOptional(token.SEMICOLON) {
		return finish(p, &ast.SemicolonClassElement{}, ast.KindSemicolonClassElement, pos)
	}

	mods := p.parseModifiers(true)
	if p.parseContextualModifier(token.KW_GET) {
		return p.parseAccessor(pos, mods, ast.KindGetAccessor)
	}
	if p.parseContextualModifier(token.KW_SET) {
		return p.parseAccessor(pos, mods, ast.KindSetAccessor)
	}
	if p.tok == token.KW_CONSTRUCTOR && p.lookAhead(func() bool {
		next := p.nextToken()
		return next == token.LPAREN || next == token.LT
	}) {
		return p.parseConstructor(pos, mods)
	}
	if p.isLiteralPropertyName() || p.tok == token.STAR || p.tok == token.LBRACKET {
		return p.parsePropertyOrMethodDeclaration(pos, mods)
	}

	// modifiers or decorators without a member
	p.errorAtCurrent(diag.DeclarationExpected, "Declaration expected.")
	return p.parsePropertyDeclaration(pos, mods, p.missingIdentifier(), nil)
}

func (p *Parser) parseConstructor(pos int, mods *ast.Modifiers) *ast.MethodDeclaration {
	p.parseExpected(token.KW_CONSTRUCTOR)
	m := &ast.MethodDeclaration{Modifiers: mods}
	m.TypeParameters = p.parseTypeParameters()
	m.Parameters = p.parseParameters(0)
	m.Type = p.parseTypeAnnotation()
	m.Body = p.parseFunctionBlockOrSemicolon(0)
	return finish(p, m, ast.KindConstructor, pos)
}

// parseAccessor parses the rest of get name() {} or set name(v) {} once the
// get or set keyword is consumed.
func (p *Parser) parseAccessor(pos int, mods *ast.Modifiers, kind ast.Kind) *ast.MethodDeclaration {
	m := &ast.MethodDeclaration{Modifiers: mods, Name: p.parsePropertyName()}
	m.TypeParameters = p.parseTypeParameters()
	m.Parameters = p.parseParameters(0)
	m.Type = p.parseTypeAnnotation()
	m.Body = p.parseFunctionBlockOrSemicolon(0)
	return finish(p, m, kind, pos)
}

func (p *Parser) parsePropertyOrMethodDeclaration(pos int, mods *ast.Modifiers) ast.Node {
	asterisk := p.parseOptionalToken(token.STAR)
	name := p.parsePropertyName()
	question := p.parseOptionalToken(token.QUESTION)
	if asterisk != nil || p.tok == token.LPAREN || p.tok == token.LT {
		return p.parseMethodDeclaration(pos, mods, asterisk, name, question)
	}
	return p.parsePropertyDeclaration(pos, mods, name, question)
}

func (p *Parser) parseMethodDeclaration(pos int, mods *ast.Modifiers, asterisk *ast.TokenNode, name ast.Node, question *ast.TokenNode) *ast.MethodDeclaration {
	ctx := functionContext(asterisk != nil, ast.HasModifier(mods, token.KW_ASYNC))
	m := &ast.MethodDeclaration{Modifiers: mods, AsteriskToken: asterisk, Name: name, QuestionToken: question}
	m.TypeParameters = p.parseTypeParameters()
	m.Parameters = p.parseParameters(ctx)
	m.Type = p.parseTypeAnnotation()
	m.Body = p.parseFunctionBlockOrSemicolon(ctx)
	return finish(p, m, ast.KindMethodDeclaration, pos)
}

func (p *Parser) parsePropertyDeclaration(pos int, mods *ast.Modifiers, name ast.Node, question *ast.TokenNode) *ast.PropertyDeclaration {
	prop := &ast.PropertyDeclaration{Modifiers: mods, Name: name, QuestionToken: question}
	prop.Type = p.parseTypeAnnotation()
	prop.Initializer = p.parseInitializer()
	p.parseSemicolon()
	return finish(p, prop, ast.KindPropertyDeclaration, pos)
}

// ============================================================
// Interfaces, type aliases, enums, namespaces
// ============================================================

func (p *Parser) parseInterfaceDeclaration(pos int, mods *ast.Modifiers) *ast.InterfaceDeclaration {
	p.parseExpected(token.KW_INTERFACE)
	decl := &ast.InterfaceDeclaration{Modifiers: mods, Name: p.parseIdentifier()}
	decl.TypeParameters = p.parseTypeParameters()
	if p.tok == token.KW_EXTENDS || p.tok == token.KW_IMPLEMENTS {
		decl.HeritageClauses = p.parseHeritageClauses()
	}
	if p.parseExpected(token.LBRACE) {
		decl.Members = parseList(p, ctxTypeMembers, p.parseTypeMember)
		p.parseExpected(token.RBRACE)
	} else {
		decl.Members = emptyList[ast.Node](p)
	}
	return finish(p, decl, ast.KindInterfaceDeclaration, pos)
}

// isTypeMemberStart runs under lookAhead and may consume tokens.
func (p *Parser) isTypeMemberStart() bool {
	idToken := false
	for isModifierKind(p.tok) {
		idToken = true
		p.nextToken()
	}
	if p.tok == token.LBRACKET {
		return true
	}
	if p.isLiteralPropertyName() {
		idToken = true
		p.nextToken()
	}
	if !idToken {
		return false
	}
	switch p.tok {
	case token.LPAREN, token.LT, token.QUESTION, token.COLON, token.COMMA:
		return true
	}
	return p.canParseSemicolon()
}

func (p *Parser) parseTypeMember() ast.Node {
	pos := p.tokenPos()
	mods := p.parseModifiers(false)
	name := p.parsePropertyName()
	question := p.parseOptionalToken(token.QUESTION)

	var member ast.Node
	if p.tok == token.LPAREN || p.tok == token.LT {
		sig := &ast.MethodSignature{Modifiers: mods, Name: name, QuestionToken: question}
		sig.TypeParameters = p.parseTypeParameters()
		sig.Parameters = p.parseParameters(0)
		sig.Type = p.parseTypeAnnotation()
		p.parseTypeMemberSemicolon()
		member = finish(p, sig, ast.KindMethodSignature, pos)
	} else {
		sig := &ast.PropertySignature{Modifiers: mods, Name: name, QuestionToken: question}
		sig.Type = p.parseTypeAnnotation()
		p.parseTypeMemberSemicolon()
		member = finish(p, sig, ast.KindPropertySignature, pos)
	}
	return member
}

// parseTypeMemberSemicolon accepts ',' as well as ';' between members.
func (p *Parser) parseTypeMemberSemicolon() {
	if p.parseOptional(token.COMMA) {
		return
	}
	p.parseSemicolon()
}

func (p *Parser) parseTypeAliasDeclaration(pos int, mods *ast.Modifiers) *ast.TypeAliasDeclaration {
	p.parseExpected(token.KW_TYPE)
	decl := &ast.TypeAliasDeclaration{Modifiers: mods, Name: p.parseIdentifier()}
	decl.TypeParameters = p.parseTypeParameters()
	p.parseExpected(token.ASSIGN)
	decl.Type = p.parseType()
	p.parseSemicolon()
	return finish(p, decl, ast.KindTypeAliasDeclaration, pos)
}

func (p *Parser) parseEnumDeclaration(pos int, mods *ast.Modifiers) *ast.EnumDeclaration {
	p.parseExpected(token.KW_ENUM)
	decl := &ast.EnumDeclaration{Modifiers: mods, Name: p.parseIdentifier()}
	if p.parseExpected(token.LBRACE) {
		decl.Members = parseDelimitedList(p, ctxEnumMembers, p.parseEnumMember)
		p.parseExpected(token.RBRACE)
	} else {
		decl.Members = emptyList[*ast.EnumMember](p)
	}
	return finish(p, decl, ast.KindEnumDeclaration, pos)
}

func (p *Parser) parseEnumMember() *ast.EnumMember {
	pos := p.tokenPos()
	member := &ast.EnumMember{Name: p.parsePropertyName()}
	member.Initializer = p.parseInitializer()
	return finish(p, member, ast.KindEnumMember, pos)
}

// parseModuleDeclaration parses the name and body after 'namespace'. A dotted
// name A.B nests the declaration of B as the body of A.
func (p *Parser) parseModuleDeclaration(pos int, mods *ast.Modifiers) *ast.ModuleDeclaration {
	decl := &ast.ModuleDeclaration{Modifiers: mods, Name: p.parseIdentifier()}
	if p.parseOptional(token.DOT) {
		decl.Body = p.parseModuleDeclaration(p.tokenPos(), nil)
	} else {
		decl.Body = p.parseModuleBlock()
	}
	return finish(p, decl, ast.KindModuleDeclaration, pos)
}

func (p *Parser) parseModuleBlock() *ast.ModuleBlock {
	pos := p.tokenPos()
	var statements *ast.NodeList[ast.Statement]
	if p.parseExpected(token.LBRACE) {
		statements = parseList(p, ctxBlockStatements, p.parseStatement)
		p.parseExpected(token.RBRACE)
	} else {
		statements = emptyList[ast.Statement](p)
	}
	return finish(p, &ast.ModuleBlock{Statements: statements}, ast.KindModuleBlock, pos)
}

// ============================================================
// Imports and exports
// ============================================================

func (p *Parser) parseImportDeclaration(pos int, mods *ast.Modifiers) *ast.ImportDeclaration {
	p.parseExpected(token.KW_IMPORT)
	decl := &ast.ImportDeclaration{Modifiers: mods}
	if p.tok != token.STRING {
		decl.ImportClause = p.parseImportClause()
		p.parseExpected(token.KW_FROM)
	}
	decl.ModuleSpecifier = p.parseModuleSpecifier()
	p.parseSemicolon()
	return finish(p, decl, ast.KindImportDeclaration, pos)
}

// parseImportClause parses default, * as ns, { a as b } or a default name
// followed by one of the other two.
func (p *Parser) parseImportClause() *ast.ImportClause {
	pos := p.tokenPos()
	clause := &ast.ImportClause{}
	if p.isIdentifier() && (p.tok != token.KW_FROM || p.nextTokenIs(token.KW_FROM)) {
		clause.Name = p.parseIdentifier()
	}
	if clause.Name == nil || p.parseOptional(token.COMMA) {
		switch p.tok {
		case token.STAR:
			clause.NamedBindings = p.parseNamespaceImport()
		case token.LBRACE:
			clause.NamedBindings = p.parseNamedImportsOrExports(ast.KindNamedImports)
		default:
			if clause.Name == nil {
				clause.Name = p.parseIdentifier()
			} else {
				p.errorAtCurrent(diag.TokenExpected, "'{' or '*' expected.")
			}
		}
	}
	return finish(p, clause, ast.KindImportClause, pos)
}

func (p *Parser) parseNamespaceImport() *ast.NamespaceImport {
	pos := p.tokenPos()
	p.parseExpected(token.STAR)
	p.parseExpected(token.KW_AS)
	return finish(p, &ast.NamespaceImport{Name: p.parseIdentifier()}, ast.KindNamespaceImport, pos)
}

func (p *Parser) parseNamedImportsOrExports(kind ast.Kind) *ast.NamedImportsOrExports {
	pos := p.tokenPos()
	specifierKind := ast.KindImportSpecifier
	if kind == ast.KindNamedExports {
		specifierKind = ast.KindExportSpecifier
	}
	elements := parseBracketedList(p, ctxImportOrExportSpecifiers, func() *ast.ImportOrExportSpecifier {
		return p.parseImportOrExportSpecifier(specifierKind)
	}, token.LBRACE, token.RBRACE)
	return finish(p, &ast.NamedImportsOrExports{Elements: elements}, kind, pos)
}

func (p *Parser) parseImportOrExportSpecifier(kind ast.Kind) *ast.ImportOrExportSpecifier {
	pos := p.tokenPos()
	spec := &ast.ImportOrExportSpecifier{Name: p.parseIdentifierName()}
	if p.parseOptional(token.KW_AS) {
		spec.PropertyName = spec.Name
		spec.Name = p.parseIdentifierName()
	}
	return finish(p, spec, kind, pos)
}

func (p *Parser) parseModuleSpecifier() ast.Expression {
	if p.tok == token.STRING {
		return p.parseStringLiteral()
	}
	return p.parseExpression()
}

// parseExportAssignment parses the rest of export default expr; or
// export = expr; once 'export' is consumed.
func (p *Parser) parseExportAssignment(pos int, mods *ast.Modifiers) *ast.ExportAssignment {
	decl := &ast.ExportAssignment{Modifiers: mods}
	if p.parseOptional(token.ASSIGN) {
		decl.IsExportEquals = true
	} else {
		p.parseExpected(token.KW_DEFAULT)
	}
	decl.Expression = p.parseConnectExpressionOrHigher()
	p.parseSemicolon()
	return finish(p, decl, ast.KindExportAssignment, pos)
}

// parseExportDeclaration parses the rest of export { a as b } [from "m"];
// or export * from "m"; once 'export' is consumed.
func (p *Parser) parseExportDeclaration(pos int, mods *ast.Modifiers) *ast.ExportDeclaration {
	decl := &ast.ExportDeclaration{Modifiers: mods}
	if p.parseOptional(token.STAR) {
		p.parseExpected(token.KW_FROM)
		decl.ModuleSpecifier = p.parseModuleSpecifier()
	} else {
		decl.ExportClause = p.parseNamedImportsOrExports(ast.KindNamedExports)
		if p.parseOptional(token.KW_FROM) {
			decl.ModuleSpecifier = p.parseModuleSpecifier()
		}
	}
	p.parseSemicolon()
	return finish(p, decl, ast.KindExportDeclaration, pos)
}

// ============================================================
// Node and subnet blocks
// ============================================================

func (p *Parser) parseNodeDeclaration(pos int, mods *ast.Modifiers) *ast.NodeDeclaration {
	kind := ast.KindNodeDeclaration
	if p.tok == token.KW_SUBNET {
		kind = ast.KindSubnetDeclaration
	}
	p.nextToken()
	decl := &ast.NodeDeclaration{Modifiers: mods, Name: p.parseIdentifier()}
	decl.TypeParameters = p.parseTypeParameters()
	if p.tok == token.LPAREN {
		decl.Parameters = p.parseParameters(0)
	}
	decl.Body = p.parseNodeBlock()
	return finish(p, decl, kind, pos)
}

func (p *Parser) parseNodeBlock() *ast.NodeBlock {
	pos := p.tokenPos()
	var statements *ast.NodeList[ast.Statement]
	if p.parseExpected(token.LBRACE) {
		statements = parseList(p, ctxNodeBlockStatements, p.parseNodeBlockStatement)
		p.parseExpected(token.RBRACE)
	} else {
		statements = emptyList[ast.Statement](p)
	}
	return finish(p, &ast.NodeBlock{Statements: statements}, ast.KindNodeBlock, pos)
}

// parseNodeBlockStatement parses a statement inside a node body. Port types
// ($$: T, U; and $name: T;) and the state initializer (state: expr;) are
// recognized by a name followed by ':'.
func (p *Parser) parseNodeBlockStatement() ast.Statement {
	if p.isIdentifier() && p.nextTokenIs(token.COLON) {
		name := p.tokenValue()
		switch {
		case name == "$$":
			return p.parseAllPortsTypeDeclaration()
		case p.tok == token.KW_STATE:
			return p.parseStateDeclaration()
		case strings.HasPrefix(name, "$"):
			return p.parsePortTypeDeclaration()
		}
	}
	return p.parseStatement()
}

func (p *Parser) parseAllPortsTypeDeclaration() *ast.AllPortsTypeDeclaration {
	pos := p.tokenPos()
	p.nextToken()
	p.parseExpected(token.COLON)
	types := parseDelimitedList(p, ctxPortTypes, p.parseType)
	p.parseExpected(token.SEMICOLON)
	return finish(p, &ast.AllPortsTypeDeclaration{Types: types}, ast.KindAllPortsTypeDeclaration, pos)
}

func (p *Parser) parsePortTypeDeclaration() *ast.PortTypeDeclaration {
	pos := p.tokenPos()
	decl := &ast.PortTypeDeclaration{Name: p.parseIdentifier()}
	p.parseExpected(token.COLON)
	decl.Type = p.parseType()
	p.parseExpected(token.SEMICOLON)
	return finish(p, decl, ast.KindPortTypeDeclaration, pos)
}

func (p *Parser) parseStateDeclaration() *ast.StateDeclaration {
	pos := p.tokenPos()
	p.nextToken()
	p.parseExpected(token.COLON)
	init := p.parseExpression()
	p.parseExpected(token.SEMICOLON)
	return finish(p, &ast.StateDeclaration{Initializer: init}, ast.KindStateDeclaration, pos)
}
