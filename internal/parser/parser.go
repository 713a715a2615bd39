// Package parser implements the syntax analysis for nodelang.
//
// It is a recursive-descent parser with precedence climbing for binary
// operators. Grammar ambiguities (arrow function heads, generic calls, for
// statement forms, declarations introduced by contextual keywords) are
// resolved with bounded speculative lookahead over the lexer's checkpoints.
package parser

import (
	"fmt"

	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/lexer"
	"nodelang/internal/token"
)

// Options tunes the accepted grammar.
type Options struct {
	// LegacyColon scans ":=" as a plain ':' token, which disables walrus
	// declarations.
	LegacyColon bool
	// NoLegacyOctal reports 017-style octal literals.
	NoLegacyOctal bool
}

// InvariantError reports a broken internal parser invariant. It is never
// caused by malformed input alone.
type InvariantError struct {
	Pos     int
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal parser error at offset %d: %s", e.Pos, e.Message)
}

type funcContext uint8

const (
	inGenerator funcContext = 1 << iota
	inAsync
)

// Parser turns source text into a syntax tree. A Parser owns its lexer and can
// be reused for any number of independent parses, but not concurrently.
type Parser struct {
	lexer *lexer.Lexer
	opts  Options

	fileName string
	text     string
	sink     diag.Sink

	tok     token.Kind // current token
	prevEnd int        // end of the previously consumed token

	contextFlags   ast.NodeFlags // OR-ed into every finished node
	funcCtx        funcContext
	parsingContext parsingContext
	nodeCount      int

	speculation       int               // depth of active lookahead/tryParse calls
	pending           []diag.Diagnostic // diagnostics held back while speculating
	lastErrorPos      int
	errorBeforeFinish bool
}

// New creates a parser.
func New(opts Options) *Parser {
	p := &Parser{opts: opts}
	p.lexer = lexer.New("", p.report)
	return p
}

// ParseSourceFile parses text into a SourceFile. Syntax errors go to sink (which
// may be nil) and never stop the parse. The returned error is non-nil only
// when an internal invariant broke, in which case the file is nil.
func ParseSourceFile(fileName, text string, sink diag.Sink, opts Options) (*ast.SourceFile, error) {
	return New(opts).Parse(fileName, text, sink)
}

// Parse parses text into a SourceFile. All state from a previous call is reset.
func (p *Parser) Parse(fileName, text string, sink diag.Sink) (file *ast.SourceFile, err error) {
	p.reset(fileName, text, sink)
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			file, err = nil, ie
		}
		p.release()
	}()

	p.nextToken()
	file = p.parseSourceFileWorker()
	return file, nil
}

func (p *Parser) reset(fileName, text string, sink diag.Sink) {
	p.fileName = fileName
	p.text = text
	p.sink = sink
	p.lexer.ResetText(text)
	p.lexer.SetLegacyColon(p.opts.LegacyColon)
	p.lexer.SetLegacyOctal(!p.opts.NoLegacyOctal)
	p.lexer.SetOnError(p.report)
	p.tok = token.ILLEGAL
	p.prevEnd = 0
	p.contextFlags = ast.FlagsNone
	p.funcCtx = 0
	p.parsingContext = 0
	p.nodeCount = 0
	p.speculation = 0
	p.pending = p.pending[:0]
	p.lastErrorPos = -1
	p.errorBeforeFinish = false
}

// release drops references to the caller's text and sink.
func (p *Parser) release() {
	p.text = ""
	p.sink = nil
	p.lexer.ResetText("")
	p.pending = p.pending[:0]
}

func (p *Parser) parseSourceFileWorker() *ast.SourceFile {
	statements := parseList(p, ctxSourceElements, p.parseStatement)
	p.assert(p.tok == token.EOF, "source elements ended before end of file at %s", p.tok)

	eofPos := p.lexer.TokenPos()
	eof := finish(p, &ast.TokenNode{Token: token.EOF}, ast.KindToken, eofPos)
	eof.Pos, eof.End = eofPos, eofPos

	file := &ast.SourceFile{
		FileName:       p.fileName,
		Text:           p.text,
		Statements:     statements,
		EndOfFileToken: eof,
	}
	finish(p, file, ast.KindSourceFile, 0)
	file.End = len(p.text)
	file.NodeCount = p.nodeCount
	ast.SetParents(file)
	return file
}

// ============================================================
// Token helpers
// ============================================================

func (p *Parser) nextToken() token.Kind {
	p.prevEnd = p.lexer.Pos()
	p.tok = p.lexer.Scan()
	return p.tok
}

func (p *Parser) tokenPos() int { return p.lexer.TokenPos() }

func (p *Parser) tokenValue() string { return p.lexer.TokenValue() }

func (p *Parser) hasPrecedingLineBreak() bool { return p.lexer.HasPrecedingLineBreak() }

// reScanGreater splits a '>'-led compound token so that type argument lists
// can close on '>>'.
func (p *Parser) reScanGreater() token.Kind {
	p.tok = p.lexer.SplitGreater()
	return p.tok
}

func (p *Parser) isIdentifier() bool { return p.tok.IsIdentifier() }

func (p *Parser) parseOptional(k token.Kind) bool {
	if p.tok == k {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) parseExpected(k token.Kind) bool {
	if p.tok == k {
		p.nextToken()
		return true
	}
	p.errorAtCurrent(diag.TokenExpected, "'%s' expected.", k)
	return false
}

func (p *Parser) parseTokenNode() *ast.TokenNode {
	pos := p.tokenPos()
	k := p.tok
	p.nextToken()
	return finish(p, &ast.TokenNode{Token: k}, ast.KindToken, pos)
}

func (p *Parser) parseOptionalToken(k token.Kind) *ast.TokenNode {
	if p.tok == k {
		return p.parseTokenNode()
	}
	return nil
}

// parseExpectedToken consumes k, or reports it missing and returns an empty
// token node in its place.
func (p *Parser) parseExpectedToken(k token.Kind) *ast.TokenNode {
	if p.tok == k {
		return p.parseTokenNode()
	}
	p.errorAtCurrent(diag.TokenExpected, "'%s' expected.", k)
	return finish(p, &ast.TokenNode{Token: k}, ast.KindToken, p.prevEnd)
}

// canParseSemicolon reports whether a statement may end here: at ';', before
// '}', at end of file or before a line break.
func (p *Parser) canParseSemicolon() bool {
	if p.tok == token.SEMICOLON {
		return true
	}
	return p.tok == token.RBRACE || p.tok == token.EOF || p.hasPrecedingLineBreak()
}

func (p *Parser) parseSemicolon() bool {
	if p.canParseSemicolon() {
		p.parseOptional(token.SEMICOLON)
		return true
	}
	return p.parseExpected(token.SEMICOLON)
}

// finish stamps a node with its kind and range [pos, end of the last consumed
// token) and counts it. A node that consumed nothing is placed at the end of
// the previous token, and pos never lies after the node's first child.
func finish[T ast.Node](p *Parser, n T, kind ast.Kind, pos int) T {
	if p.prevEnd < pos {
		// nothing consumed: sit at the end of the previous token
		pos = p.prevEnd
	}
	ast.ForEachChild(n, func(child ast.Node) bool {
		pos = min(pos, child.Base().Pos)
		return true
	})
	b := n.Base()
	b.NodeKind = kind
	b.Pos = pos
	b.End = max(p.prevEnd, pos)
	b.Flags |= p.contextFlags
	if p.errorBeforeFinish {
		b.Flags |= ast.FlagThisNodeHasError
		p.errorBeforeFinish = false
	}
	if b.Pos < 0 || b.End > len(p.text) {
		p.fail(pos, "%s range [%d, %d) outside source of length %d", kind, b.Pos, b.End, len(p.text))
	}
	p.nodeCount++
	return n
}

// missingIdentifier stands in for a name the source does not provide.
func (p *Parser) missingIdentifier() *ast.Identifier {
	return finish(p, &ast.Identifier{}, ast.KindIdentifier, p.prevEnd)
}

// ============================================================
// Diagnostics
// ============================================================

// report is the sink for both lexer and parser diagnostics. Only the first
// error at a given offset is kept. While speculating, diagnostics are held
// until the outermost speculation commits.
func (p *Parser) report(d diag.Diagnostic) {
	if d.Start == p.lastErrorPos {
		return
	}
	p.lastErrorPos = d.Start
	p.errorBeforeFinish = true
	if p.speculation > 0 {
		p.pending = append(p.pending, d)
		return
	}
	if p.sink != nil {
		p.sink(d)
	}
}

func (p *Parser) errorAt(start, length int, code, format string, args ...interface{}) {
	p.report(diag.Errorf(code, start, length, format, args...))
}

func (p *Parser) errorAtCurrent(code, format string, args ...interface{}) {
	start := p.tokenPos()
	p.errorAt(start, p.lexer.Pos()-start, code, format, args...)
}

func (p *Parser) assert(cond bool, format string, args ...interface{}) {
	if !cond {
		p.fail(p.tokenPos(), format, args...)
	}
}

func (p *Parser) fail(pos int, format string, args ...interface{}) {
	panic(&InvariantError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// ============================================================
// Speculation
// ============================================================

type parserState struct {
	lexer             lexer.Checkpoint
	tok               token.Kind
	prevEnd           int
	contextFlags      ast.NodeFlags
	funcCtx           funcContext
	parsingContext    parsingContext
	nodeCount         int
	pending           int
	lastErrorPos      int
	errorBeforeFinish bool
}

func (p *Parser) mark() parserState {
	return parserState{
		lexer:             p.lexer.Checkpoint(),
		tok:               p.tok,
		prevEnd:           p.prevEnd,
		contextFlags:      p.contextFlags,
		funcCtx:           p.funcCtx,
		parsingContext:    p.parsingContext,
		nodeCount:         p.nodeCount,
		pending:           len(p.pending),
		lastErrorPos:      p.lastErrorPos,
		errorBeforeFinish: p.errorBeforeFinish,
	}
}

func (p *Parser) rewind(s parserState) {
	p.lexer.Restore(s.lexer)
	p.tok = s.tok
	p.prevEnd = s.prevEnd
	p.contextFlags = s.contextFlags
	p.funcCtx = s.funcCtx
	p.parsingContext = s.parsingContext
	p.nodeCount = s.nodeCount
	p.pending = p.pending[:s.pending]
	p.lastErrorPos = s.lastErrorPos
	p.errorBeforeFinish = s.errorBeforeFinish
}

// speculate runs cb and rewinds afterwards unless it is a successful tryParse.
// The rewind is deferred so that it also happens when cb panics.
func (p *Parser) speculate(cb func() bool, lookAhead bool) (result bool) {
	saved := p.mark()
	p.speculation++
	completed := false
	defer func() {
		p.speculation--
		if completed && (p.parsingContext != saved.parsingContext || p.contextFlags != saved.contextFlags) {
			pos := p.tokenPos()
			p.rewind(saved)
			p.fail(pos, "speculative parse changed the parsing context")
		}
		if lookAhead || !result {
			p.rewind(saved)
		} else if p.speculation == 0 {
			p.flushPending()
		}
	}()
	result = cb()
	completed = true
	return result
}

// lookAhead runs cb and always restores the parser state.
func (p *Parser) lookAhead(cb func() bool) bool {
	return p.speculate(cb, true)
}

// tryParse runs cb and keeps its progress only if cb returns true.
func (p *Parser) tryParse(cb func() bool) bool {
	return p.speculate(cb, false)
}

func (p *Parser) flushPending() {
	if p.sink != nil {
		for _, d := range p.pending {
			p.sink(d)
		}
	}
	p.pending = p.pending[:0]
}

func (p *Parser) nextTokenIs(k token.Kind) bool {
	return p.lookAhead(func() bool { return p.nextToken() == k })
}

func (p *Parser) nextTokenIsIdentifierOnSameLine() bool {
	return p.lookAhead(func() bool {
		p.nextToken()
		return !p.hasPrecedingLineBreak() && p.isIdentifier()
	})
}

func (p *Parser) nextTokenIsOnSameLine(k token.Kind) bool {
	return p.lookAhead(func() bool {
		return p.nextToken() == k && !p.hasPrecedingLineBreak()
	})
}
