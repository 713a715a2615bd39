package parser

import (
	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// ============================================================
// Types
// ============================================================

func (p *Parser) isStartOfType() bool {
	return p.tok.IsTypeKeyword() || p.tok == token.LPAREN || p.isIdentifier()
}

// parseType parses a type followed by any number of [] suffixes on the same
// line.
func (p *Parser) parseType() ast.TypeNode {
	pos := p.tokenPos()
	typ := p.parseNonArrayType()
	for p.tok == token.LBRACKET && !p.hasPrecedingLineBreak() {
		p.nextToken()
		p.parseExpected(token.RBRACKET)
		typ = finish(p, &ast.ArrayType{ElementType: typ}, ast.KindArrayType, pos)
	}
	return typ
}

func (p *Parser) parseNonArrayType() ast.TypeNode {
	pos := p.tokenPos()
	switch {
	case p.tok.IsTypeKeyword() && !p.nextTokenIs(token.DOT):
		keyword := p.tok
		p.nextToken()
		return finish(p, &ast.KeywordType{Keyword: keyword}, ast.KindKeywordType, pos)
	case p.tok == token.LPAREN:
		p.nextToken()
		inner := p.parseType()
		p.parseExpected(token.RPAREN)
		return finish(p, &ast.ParenthesizedType{Type: inner}, ast.KindParenthesizedType, pos)
	case p.isIdentifier():
		return p.parseTypeReference()
	}
	p.errorAtCurrent(diag.TypeExpected, "Type expected.")
	return finish(p, &ast.TypeReference{TypeName: p.missingIdentifier()}, ast.KindTypeReference, p.prevEnd)
}

func (p *Parser) parseTypeReference() *ast.TypeReference {
	pos := p.tokenPos()
	ref := &ast.TypeReference{TypeName: p.parseEntityName()}
	if p.tok == token.LT && !p.hasPrecedingLineBreak() {
		ref.TypeArguments = parseBracketedList(p, ctxTypeArguments, p.parseType, token.LT, token.GT)
	}
	return finish(p, ref, ast.KindTypeReference, pos)
}

// parseEntityName parses A or A.B.C.
func (p *Parser) parseEntityName() ast.Node {
	pos := p.tokenPos()
	var entity ast.Node = p.parseIdentifier()
	for p.parseOptional(token.DOT) {
		right := p.parseIdentifierName()
		entity = finish(p, &ast.QualifiedName{Left: entity, Right: right}, ast.KindQualifiedName, pos)
	}
	return entity
}

// parseTypeAnnotation parses an optional ': T'.
func (p *Parser) parseTypeAnnotation() ast.TypeNode {
	if p.parseOptional(token.COLON) {
		return p.parseType()
	}
	return nil
}

// parseTypeParameters parses an optional <T extends C = D, ...>.
func (p *Parser) parseTypeParameters() *ast.NodeList[*ast.TypeParameter] {
	if p.tok != token.LT {
		return nil
	}
	return parseBracketedList(p, ctxTypeParameters, p.parseTypeParameter, token.LT, token.GT)
}

func (p *Parser) parseTypeParameter() *ast.TypeParameter {
	pos := p.tokenPos()
	tp := &ast.TypeParameter{Name: p.parseIdentifier()}
	if p.parseOptional(token.KW_EXTENDS) {
		tp.Constraint = p.parseType()
	}
	if p.parseOptional(token.ASSIGN) {
		tp.Default = p.parseType()
	}
	return finish(p, tp, ast.KindTypeParameter, pos)
}
