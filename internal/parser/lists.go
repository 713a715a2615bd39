package parser

import (
	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// parsingContext is a bitmask of the lists currently being parsed. Error
// recovery consults every enclosing list to decide whether a token ends the
// innermost one or should be skipped.
type parsingContext uint32

const (
	ctxSourceElements parsingContext = iota
	ctxBlockStatements
	ctxSwitchClauses
	ctxSwitchClauseStatements
	ctxNodeBlockStatements
	ctxClassMembers
	ctxTypeMembers
	ctxEnumMembers
	ctxHeritageClauseElement
	ctxVariableDeclarations
	ctxObjectLiteralMembers
	ctxArrayLiteralMembers
	ctxArgumentExpressions
	ctxParameters
	ctxTypeParameters
	ctxTypeArguments
	ctxPortTypes
	ctxImportOrExportSpecifiers
	ctxCount
)

type contextError struct {
	code string
	msg  string
}

var contextErrors = [ctxCount]contextError{
	ctxSourceElements:           {diag.StatementExpected, "Declaration or statement expected."},
	ctxBlockStatements:          {diag.StatementExpected, "Declaration or statement expected."},
	ctxSwitchClauses:            {diag.TokenExpected, "'case' or 'default' expected."},
	ctxSwitchClauseStatements:   {diag.StatementExpected, "Statement expected."},
	ctxNodeBlockStatements:      {diag.StatementExpected, "Statement, port or state declaration expected."},
	ctxClassMembers:             {diag.UnexpectedToken, "Unexpected token. A constructor, method, accessor, or property was expected."},
	ctxTypeMembers:              {diag.PropertyNameExpected, "Property or signature expected."},
	ctxEnumMembers:              {diag.PropertyNameExpected, "Enum member expected."},
	ctxHeritageClauseElement:    {diag.ExpressionExpected, "Expression expected."},
	ctxVariableDeclarations:     {diag.IdentifierExpected, "Variable declaration expected."},
	ctxObjectLiteralMembers:     {diag.PropertyNameExpected, "Property assignment expected."},
	ctxArrayLiteralMembers:      {diag.ExpressionExpected, "Expression or comma expected."},
	ctxArgumentExpressions:      {diag.ExpressionExpected, "Argument expression expected."},
	ctxParameters:               {diag.IdentifierExpected, "Parameter declaration expected."},
	ctxTypeParameters:           {diag.IdentifierExpected, "Type parameter declaration expected."},
	ctxTypeArguments:            {diag.TypeExpected, "Type argument expected."},
	ctxPortTypes:                {diag.TypeExpected, "Type expected."},
	ctxImportOrExportSpecifiers: {diag.IdentifierExpected, "Identifier expected."},
}

// isListElement reports whether the current token can start an element of ctx.
func (p *Parser) isListElement(ctx parsingContext) bool {
	switch ctx {
	case ctxSourceElements, ctxBlockStatements, ctxSwitchClauseStatements, ctxNodeBlockStatements:
		return p.isStartOfStatement()
	case ctxSwitchClauses:
		return p.tok == token.KW_CASE || p.tok == token.KW_DEFAULT
	case ctxClassMembers:
		return p.tok == token.SEMICOLON || p.lookAhead(p.isClassMemberStart)
	case ctxTypeMembers:
		return p.lookAhead(p.isTypeMemberStart)
	case ctxEnumMembers:
		return p.tok == token.LBRACKET || p.isLiteralPropertyName()
	case ctxObjectLiteralMembers:
		return p.tok == token.LBRACKET || p.tok == token.STAR || p.tok == token.ELLIPSIS || p.isLiteralPropertyName()
	case ctxHeritageClauseElement, ctxVariableDeclarations, ctxTypeParameters:
		return p.isIdentifier()
	case ctxArrayLiteralMembers:
		return p.tok == token.COMMA || p.tok == token.ELLIPSIS || p.isStartOfExpression()
	case ctxArgumentExpressions:
		return p.tok == token.ELLIPSIS || p.isStartOfExpression()
	case ctxParameters:
		return p.isStartOfParameter()
	case ctxTypeArguments, ctxPortTypes:
		return p.tok == token.COMMA || p.isStartOfType()
	case ctxImportOrExportSpecifiers:
		return p.tok.IsIdentifierOrKeyword()
	}
	p.fail(p.tokenPos(), "unknown parsing context %d", ctx)
	return false
}

// isListTerminator reports whether the current token ends a list of ctx.
func (p *Parser) isListTerminator(ctx parsingContext) bool {
	if p.tok == token.EOF {
		return true
	}
	switch ctx {
	case ctxBlockStatements, ctxSwitchClauses, ctxNodeBlockStatements, ctxClassMembers, ctxTypeMembers,
		ctxEnumMembers, ctxObjectLiteralMembers, ctxImportOrExportSpecifiers:
		return p.tok == token.RBRACE
	case ctxSwitchClauseStatements:
		return p.tok == token.RBRACE || p.tok == token.KW_CASE || p.tok == token.KW_DEFAULT
	case ctxHeritageClauseElement:
		return p.tok == token.LBRACE || p.tok == token.KW_EXTENDS || p.tok == token.KW_IMPLEMENTS
	case ctxVariableDeclarations:
		return p.canParseSemicolon() || p.tok == token.KW_IN || p.tok == token.KW_OF ||
			p.tok == token.ARROW || p.tok == token.LBRACE
	case ctxTypeParameters:
		return p.reScanGreater() == token.GT || p.tok == token.LPAREN || p.tok == token.LBRACE ||
			p.tok == token.KW_EXTENDS || p.tok == token.KW_IMPLEMENTS
	case ctxTypeArguments:
		return p.tok != token.COMMA
	case ctxArgumentExpressions:
		return p.tok == token.RPAREN || p.tok == token.SEMICOLON
	case ctxArrayLiteralMembers:
		return p.tok == token.RBRACKET
	case ctxParameters:
		return p.tok == token.RPAREN || p.tok == token.RBRACKET
	case ctxPortTypes:
		return p.tok == token.SEMICOLON || p.tok == token.RBRACE
	}
	return false
}

// isInSomeParsingContext reports whether any enclosing list can make use of
// the current token.
func (p *Parser) isInSomeParsingContext() bool {
	for ctx := parsingContext(0); ctx < ctxCount; ctx++ {
		if p.parsingContext&(1<<ctx) != 0 && (p.isListElement(ctx) || p.isListTerminator(ctx)) {
			return true
		}
	}
	return false
}

// abortListOrSkipToken reports the current token as unexpected in ctx. It
// returns true when an enclosing list wants the token; otherwise the token is
// skipped.
func (p *Parser) abortListOrSkipToken(ctx parsingContext) bool {
	e := contextErrors[ctx]
	p.errorAtCurrent(e.code, e.msg)
	if p.isInSomeParsingContext() {
		return true
	}
	p.nextToken()
	return false
}

// parseList parses elements until the terminator of ctx.
func parseList[T ast.Node](p *Parser, ctx parsingContext, parseElement func() T) *ast.NodeList[T] {
	saved := p.parsingContext
	p.parsingContext |= 1 << ctx
	list := &ast.NodeList[T]{Pos: p.tokenPos()}

	for !p.isListTerminator(ctx) {
		if p.isListElement(ctx) {
			start := p.tokenPos()
			list.Nodes = append(list.Nodes, parseElement())
			if p.tokenPos() == start && p.tok != token.EOF {
				// the element consumed nothing; skip the token to make progress
				p.nextToken()
			}
			continue
		}
		if p.abortListOrSkipToken(ctx) {
			break
		}
	}

	p.parsingContext = saved
	return finishList(p, list)
}

// parseDelimitedList parses comma separated elements until the terminator of
// ctx. A single trailing comma is accepted and recorded.
func parseDelimitedList[T ast.Node](p *Parser, ctx parsingContext, parseElement func() T) *ast.NodeList[T] {
	saved := p.parsingContext
	p.parsingContext |= 1 << ctx
	list := &ast.NodeList[T]{Pos: p.tokenPos()}
	commaStart := -1

	for {
		if p.isListElement(ctx) {
			start := p.tokenPos()
			list.Nodes = append(list.Nodes, parseElement())
			commaStart = p.tokenPos()
			if p.parseOptional(token.COMMA) {
				continue
			}
			commaStart = -1
			if p.isListTerminator(ctx) {
				break
			}
			p.errorAtCurrent(diag.CommaExpected, "',' expected.")
			if p.tokenPos() == start {
				p.nextToken()
			}
			continue
		}
		if p.isListTerminator(ctx) {
			break
		}
		if p.abortListOrSkipToken(ctx) {
			break
		}
	}

	list.HasTrailingComma = commaStart >= 0
	p.parsingContext = saved
	return finishList(p, list)
}

// parseBracketedList parses open, a delimited list, then close.
func parseBracketedList[T ast.Node](p *Parser, ctx parsingContext, parseElement func() T, open, close token.Kind) *ast.NodeList[T] {
	if p.parseExpected(open) {
		list := parseDelimitedList(p, ctx, parseElement)
		if close == token.GT {
			p.reScanGreater()
		}
		p.parseExpected(close)
		return list
	}
	return emptyList[T](p)
}

// finishList closes a list just before its terminator. An empty list has an
// empty range at the end of the previous token.
func finishList[T ast.Node](p *Parser, list *ast.NodeList[T]) *ast.NodeList[T] {
	list.End = p.prevEnd
	if len(list.Nodes) == 0 || list.Pos > list.End {
		list.Pos = list.End
	}
	if len(list.Nodes) > 0 {
		list.Pos = min(list.Pos, list.Nodes[0].Base().Pos)
	}
	return list
}

func emptyList[T ast.Node](p *Parser) *ast.NodeList[T] {
	return &ast.NodeList[T]{Pos: p.prevEnd, End: p.prevEnd}
}
