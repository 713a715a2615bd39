// Package printer renders a syntax tree back to canonical source text.
//
// The output is not a faithful copy of the input: comments and original
// spacing are dropped, and every construct is written in one fixed layout.
// Parsing the printed text of a tree without syntax errors yields a tree of
// the same shape.
package printer

import (
	"fmt"
	"reflect"
	"strings"

	"nodelang/internal/ast"
	"nodelang/internal/token"
)

// Options controls the layout.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero means 4.
	Indent int
}

// Printer writes nodes as source text. A Printer may be reused but not
// shared between goroutines.
type Printer struct {
	indent string
	depth  int
	buf    strings.Builder
}

// New creates a printer.
func New(opts Options) *Printer {
	n := opts.Indent
	if n <= 0 {
		n = 4
	}
	return &Printer{indent: strings.Repeat(" ", n)}
}

// Print renders n with the default options.
func Print(n ast.Node) string {
	return New(Options{}).Print(n)
}

// Print renders n. A SourceFile ends with a newline; anything else is
// rendered without one.
func (p *Printer) Print(n ast.Node) string {
	p.buf.Reset()
	p.depth = 0
	p.node(n)
	return p.buf.String()
}

// ============================================================
// Output helpers
// ============================================================

func (p *Printer) write(parts ...string) {
	for _, s := range parts {
		p.buf.WriteString(s)
	}
}

// line starts a new line at the current depth.
func (p *Printer) line() {
	p.buf.WriteByte('\n')
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.indent)
	}
}

// absent reports whether n is nil or a nil node pointer held in an interface.
func absent(n ast.Node) bool {
	return n == nil || reflect.ValueOf(n).IsNil()
}

// optional prints prefix and n when n is present.
func (p *Printer) optional(prefix string, n ast.Node) {
	if absent(n) {
		return
	}
	p.write(prefix)
	p.node(n)
}

func list[T ast.Node](p *Printer, l *ast.NodeList[T], sep string) {
	if l == nil {
		return
	}
	for i, n := range l.Nodes {
		if i > 0 {
			p.write(sep)
		}
		p.node(n)
	}
}

// bracketed prints open, the comma separated list, then close.
func bracketed[T ast.Node](p *Printer, l *ast.NodeList[T], open, close string) {
	p.write(open)
	list(p, l, ", ")
	p.write(close)
}

// lines prints each element of l on its own line one level deeper, wrapped in
// braces.
func lines[T ast.Node](p *Printer, l *ast.NodeList[T]) {
	if l.Len() == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.depth++
	for _, n := range l.Nodes {
		p.line()
		p.node(n)
	}
	p.depth--
	p.line()
	p.write("}")
}

func (p *Printer) modifiers(mods *ast.Modifiers) {
	if mods == nil {
		return
	}
	for _, m := range mods.Nodes {
		p.node(m)
		p.write(" ")
	}
}

func (p *Printer) typeParameters(l *ast.NodeList[*ast.TypeParameter]) {
	if l != nil {
		bracketed(p, l, "<", ">")
	}
}

func (p *Printer) typeArguments(l *ast.NodeList[ast.TypeNode]) {
	if l != nil {
		bracketed(p, l, "<", ">")
	}
}

// signature prints <T>(params): R.
func (p *Printer) signature(typeParams *ast.NodeList[*ast.TypeParameter], params *ast.NodeList[*ast.Parameter], typ ast.TypeNode) {
	p.typeParameters(typeParams)
	bracketed(p, params, "(", ")")
	p.optional(": ", typ)
}

// body prints " {...}" or ";" for a missing function body.
func (p *Printer) body(b *ast.Block) {
	if b == nil {
		p.write(";")
		return
	}
	p.write(" ")
	p.node(b)
}

// embedded prints a statement nested in another one.
func (p *Printer) embedded(s ast.Statement) {
	p.write(" ")
	p.node(s)
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`,
	"\b", `\b`, "\f", `\f`, "\v", `\v`, "\x00", `\0`,
)

// isIntegerText reports whether a normalized number has no fraction or
// exponent part.
func isIntegerText(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

func declarationKeyword(l *ast.VariableDeclarationList) string {
	switch {
	case l.Flags&ast.FlagConst != 0:
		return "const"
	case l.Flags&ast.FlagLet != 0:
		return "let"
	}
	return "var"
}

// ============================================================
// Dispatch
// ============================================================

func (p *Printer) node(n ast.Node) {
	if absent(n) {
		return
	}
	switch n := n.(type) {
	// names and literals
	case *ast.TokenNode:
		if n.Token != token.EOF {
			p.write(n.Token.String())
		}
	case *ast.Identifier:
		p.write(n.Text)
	case *ast.NumericLiteral:
		p.write(n.Text)
	case *ast.StringLiteral:
		p.write(quote(n.Text))
	case *ast.KeywordExpression:
		p.keywordExpression(n)
	case *ast.QualifiedName:
		p.node(n.Left)
		p.write(".")
		p.node(n.Right)
	case *ast.ComputedPropertyName:
		p.write("[")
		p.node(n.Expression)
		p.write("]")
	case *ast.Decorator:
		p.write("@")
		p.node(n.Expression)

	// types
	case *ast.KeywordType:
		p.write(n.Keyword.String())
	case *ast.TypeReference:
		p.node(n.TypeName)
		p.typeArguments(n.TypeArguments)
	case *ast.ArrayType:
		p.node(n.ElementType)
		p.write("[]")
	case *ast.ParenthesizedType:
		p.write("(")
		p.node(n.Type)
		p.write(")")
	case *ast.TypeParameter:
		p.node(n.Name)
		p.optional(" extends ", n.Constraint)
		p.optional(" = ", n.Default)
	case *ast.Parameter:
		p.modifiers(n.Modifiers)
		p.optional("", n.DotDotDot)
		p.node(n.Name)
		p.optional("", n.QuestionToken)
		p.optional(": ", n.Type)
		p.optional(" = ", n.Initializer)

	default:
		switch {
		case ast.IsExpression(n.Kind()):
			p.expression(n)
		default:
			p.statementOrMember(n)
		}
	}
}

func (p *Printer) keywordExpression(n *ast.KeywordExpression) {
	switch n.Kind() {
	case ast.KindThisKeyword:
		p.write("this")
	case ast.KindSuperKeyword:
		p.write("super")
	case ast.KindTrueKeyword:
		p.write("true")
	case ast.KindFalseKeyword:
		p.write("false")
	case ast.KindNullKeyword:
		p.write("null")
	}
}

// ============================================================
// Expressions
// ============================================================

func (p *Printer) expression(n ast.Node) {
	switch n := n.(type) {
	case *ast.ArrayLiteralExpression:
		bracketed(p, n.Elements, "[", "")
		if n.Elements.HasTrailingComma {
			p.write(",")
		}
		p.write("]")
	case *ast.ObjectLiteralExpression:
		if n.Properties.Len() == 0 {
			p.write("{}")
			return
		}
		bracketed(p, n.Properties, "{ ", " }")
	case *ast.PropertyAccessExpression:
		p.node(n.Expression)
		if lit, ok := n.Expression.(*ast.NumericLiteral); ok && n.QuestionDotToken == nil && isIntegerText(lit.Text) {
			// 1.x would scan as the number 1. followed by x
			p.write(".")
		}
		if n.QuestionDotToken != nil {
			p.write("?.")
		} else {
			p.write(".")
		}
		p.node(n.Name)
	case *ast.ElementAccessExpression:
		p.node(n.Expression)
		p.optional("", n.QuestionDotToken)
		p.write("[")
		p.node(n.ArgumentExpression)
		p.write("]")
	case *ast.CallExpression:
		p.node(n.Expression)
		p.optional("", n.QuestionDotToken)
		p.typeArguments(n.TypeArguments)
		bracketed(p, n.Arguments, "(", ")")
	case *ast.NewExpression:
		p.write("new ")
		p.node(n.Expression)
		p.typeArguments(n.TypeArguments)
		if n.Arguments != nil {
			bracketed(p, n.Arguments, "(", ")")
		}
	case *ast.TypeAssertionExpression:
		p.write("<")
		p.node(n.Type)
		p.write(">")
		p.node(n.Expression)
	case *ast.ParenthesizedExpression:
		p.write("(")
		p.node(n.Expression)
		p.write(")")
	case *ast.FunctionExpression:
		p.modifiers(n.Modifiers)
		p.write("function")
		p.optional("", n.AsteriskToken)
		p.optional(" ", n.Name)
		p.signature(n.TypeParameters, n.Parameters, n.Type)
		p.body(n.Body)
	case *ast.ArrowFunction:
		p.modifiers(n.Modifiers)
		p.signature(n.TypeParameters, n.Parameters, n.Type)
		p.write(" => ")
		p.node(n.Body)
	case *ast.ClassExpression:
		p.classLike(&n.ClassLike)
	case *ast.DeleteExpression:
		p.write("delete ")
		p.node(n.Expression)
	case *ast.TypeOfExpression:
		p.write("typeof ")
		p.node(n.Expression)
	case *ast.VoidExpression:
		p.write("void ")
		p.node(n.Expression)
	case *ast.AwaitExpression:
		p.write("await ")
		p.node(n.Expression)
	case *ast.PrefixUnaryExpression:
		p.write(n.Operator.String())
		if needsSpaceAfterPrefix(n) {
			p.write(" ")
		}
		p.node(n.Operand)
	case *ast.PostfixUnaryExpression:
		p.node(n.Operand)
		p.write(n.Operator.String())
	case *ast.BinaryExpression:
		p.node(n.Left)
		if n.OperatorToken.Token == token.COMMA {
			p.write(", ")
		} else {
			p.write(" ", n.OperatorToken.Token.String(), " ")
		}
		p.node(n.Right)
	case *ast.ConditionalExpression:
		p.node(n.Condition)
		p.write(" ? ")
		p.node(n.WhenTrue)
		p.write(" : ")
		p.node(n.WhenFalse)
	case *ast.YieldExpression:
		p.write("yield")
		p.optional("", n.AsteriskToken)
		p.optional(" ", n.Expression)
	case *ast.SpreadElement:
		p.write("...")
		p.node(n.Expression)
	case *ast.OmittedExpression:
	case *ast.AsExpression:
		p.node(n.Expression)
		p.write(" as ")
		p.node(n.Type)
	case *ast.ConnectExpression:
		p.node(n.Left)
		p.write(" -> ")
		p.node(n.Right)
	case *ast.WalrusDeclaration:
		p.node(n.Name)
		p.write(" := ")
		p.node(n.Initializer)
	case *ast.ExpressionWithTypeArguments:
		p.node(n.Expression)
		p.typeArguments(n.TypeArguments)
	default:
		panic(fmt.Sprintf("printer: unhandled expression %s", n.Kind()))
	}
}

// needsSpaceAfterPrefix keeps - -x and + ++x from fusing into one token.
func needsSpaceAfterPrefix(n *ast.PrefixUnaryExpression) bool {
	if n.Operator != token.PLUS && n.Operator != token.MINUS {
		return false
	}
	operand, ok := n.Operand.(*ast.PrefixUnaryExpression)
	if !ok {
		return false
	}
	switch operand.Operator {
	case token.PLUS, token.INC:
		return n.Operator == token.PLUS
	case token.MINUS, token.DEC:
		return n.Operator == token.MINUS
	}
	return false
}

// ============================================================
// Statements, declarations and members
// ============================================================

func (p *Printer) statementOrMember(n ast.Node) {
	switch n := n.(type) {
	case *ast.SourceFile:
		for _, s := range n.Statements.Nodes {
			p.node(s)
			p.write("\n")
		}
	case *ast.Block:
		lines(p, n.Statements)
	case *ast.EmptyStatement:
		p.write(";")
	case *ast.VariableStatement:
		p.modifiers(n.Modifiers)
		p.node(n.DeclarationList)
		p.write(";")
	case *ast.VariableDeclarationList:
		p.write(declarationKeyword(n), " ")
		list(p, n.Declarations, ", ")
	case *ast.VariableDeclaration:
		p.node(n.Name)
		p.optional(": ", n.Type)
		p.optional(" = ", n.Initializer)
	case *ast.ExpressionStatement:
		p.node(n.Expression)
		p.write(";")
	case *ast.IfStatement:
		p.ifStatement(n)
	case *ast.DoStatement:
		p.write("do")
		p.embedded(n.Statement)
		p.write(" while (")
		p.node(n.Expression)
		p.write(");")
	case *ast.WhileStatement:
		p.write("while (")
		p.node(n.Expression)
		p.write(")")
		p.embedded(n.Statement)
	case *ast.ForStatement:
		p.forStatement(n)
	case *ast.ForInOrOfStatement:
		p.write("for ")
		p.optional("", n.AwaitModifier)
		if n.AwaitModifier != nil {
			p.write(" ")
		}
		p.write("(")
		p.node(n.Initializer)
		if n.Kind() == ast.KindForOfStatement {
			p.write(" of ")
		} else {
			p.write(" in ")
		}
		p.node(n.Expression)
		p.write(")")
		p.embedded(n.Statement)
	case *ast.BranchStatement:
		if n.Kind() == ast.KindBreakStatement {
			p.write("break")
		} else {
			p.write("continue")
		}
		p.optional(" ", n.Label)
		p.write(";")
	case *ast.FallthroughStatement:
		p.write("fallthrough;")
	case *ast.ReturnStatement:
		p.write("return")
		p.optional(" ", n.Expression)
		p.write(";")
	case *ast.WithStatement:
		p.write("with (")
		p.node(n.Expression)
		p.write(")")
		p.embedded(n.Statement)
	case *ast.SwitchStatement:
		p.write("switch (")
		p.node(n.Expression)
		p.write(") ")
		lines(p, n.CaseBlock.Clauses)
	case *ast.CaseOrDefaultClause:
		if n.Kind() == ast.KindCaseClause {
			p.write("case ")
			p.node(n.Expression)
			p.write(":")
		} else {
			p.write("default:")
		}
		p.depth++
		for _, s := range n.Statements.Nodes {
			p.line()
			p.node(s)
		}
		p.depth--
	case *ast.LabeledStatement:
		p.node(n.Label)
		p.write(":")
		p.embedded(n.Statement)
	case *ast.ThrowStatement:
		p.write("throw ")
		p.node(n.Expression)
		p.write(";")
	case *ast.TryStatement:
		p.write("try ")
		p.node(n.TryBlock)
		p.optional(" ", n.CatchClause)
		p.optional(" finally ", n.FinallyBlock)
	case *ast.CatchClause:
		p.write("catch ")
		if n.VariableDeclaration != nil {
			p.write("(")
			p.node(n.VariableDeclaration)
			p.write(") ")
		}
		p.node(n.Block)
	case *ast.DebuggerStatement:
		p.write("debugger;")
	case *ast.UsingStatement:
		p.write("using (")
		p.node(n.Expression)
		p.write(")")
		p.embedded(n.Statement)

	case *ast.FunctionDeclaration:
		p.modifiers(n.Modifiers)
		p.write("function")
		p.optional("", n.AsteriskToken)
		p.optional(" ", n.Name)
		p.signature(n.TypeParameters, n.Parameters, n.Type)
		p.body(n.Body)
	case *ast.ClassDeclaration:
		p.classLike(&n.ClassLike)
	case *ast.HeritageClause:
		p.write(n.Token.String(), " ")
		list(p, n.Types, ", ")
	case *ast.PropertyDeclaration:
		p.modifiers(n.Modifiers)
		p.node(n.Name)
		p.optional("", n.QuestionToken)
		p.optional(": ", n.Type)
		p.optional(" = ", n.Initializer)
		p.write(";")
	case *ast.MethodDeclaration:
		p.method(n)
	case *ast.SemicolonClassElement:
		p.write(";")
	case *ast.InterfaceDeclaration:
		p.modifiers(n.Modifiers)
		p.write("interface ")
		p.node(n.Name)
		p.typeParameters(n.TypeParameters)
		p.heritage(n.HeritageClauses)
		p.write(" ")
		lines(p, n.Members)
	case *ast.PropertySignature:
		p.modifiers(n.Modifiers)
		p.node(n.Name)
		p.optional("", n.QuestionToken)
		p.optional(": ", n.Type)
		p.write(";")
	case *ast.MethodSignature:
		p.modifiers(n.Modifiers)
		p.node(n.Name)
		p.optional("", n.QuestionToken)
		p.signature(n.TypeParameters, n.Parameters, n.Type)
		p.write(";")
	case *ast.TypeAliasDeclaration:
		p.modifiers(n.Modifiers)
		p.write("type ")
		p.node(n.Name)
		p.typeParameters(n.TypeParameters)
		p.write(" = ")
		p.node(n.Type)
		p.write(";")
	case *ast.EnumDeclaration:
		p.modifiers(n.Modifiers)
		p.write("enum ")
		p.node(n.Name)
		if n.Members.Len() == 0 {
			p.write(" {}")
		} else {
			bracketed(p, n.Members, " { ", " }")
		}
	case *ast.EnumMember:
		p.node(n.Name)
		p.optional(" = ", n.Initializer)
	case *ast.ModuleDeclaration:
		p.modifiers(n.Modifiers)
		p.write("namespace ")
		p.moduleName(n)
	case *ast.ModuleBlock:
		lines(p, n.Statements)

	case *ast.ImportDeclaration:
		p.modifiers(n.Modifiers)
		p.write("import ")
		if n.ImportClause != nil {
			p.node(n.ImportClause)
			p.write(" from ")
		}
		p.node(n.ModuleSpecifier)
		p.write(";")
	case *ast.ImportClause:
		p.optional("", n.Name)
		if n.Name != nil && n.NamedBindings != nil {
			p.write(", ")
		}
		p.optional("", n.NamedBindings)
	case *ast.NamespaceImport:
		p.write("* as ")
		p.node(n.Name)
	case *ast.NamedImportsOrExports:
		if n.Elements.Len() == 0 {
			p.write("{}")
			return
		}
		bracketed(p, n.Elements, "{ ", " }")
	case *ast.ImportOrExportSpecifier:
		if n.PropertyName != nil {
			p.node(n.PropertyName)
			p.write(" as ")
		}
		p.node(n.Name)
	case *ast.ExportAssignment:
		p.modifiers(n.Modifiers)
		if n.IsExportEquals {
			p.write("export = ")
		} else {
			p.write("export default ")
		}
		p.node(n.Expression)
		p.write(";")
	case *ast.ExportDeclaration:
		p.modifiers(n.Modifiers)
		p.write("export ")
		if n.ExportClause == nil {
			p.write("*")
		} else {
			p.node(n.ExportClause)
		}
		p.optional(" from ", n.ModuleSpecifier)
		p.write(";")

	case *ast.NodeDeclaration:
		p.modifiers(n.Modifiers)
		if n.Kind() == ast.KindSubnetDeclaration {
			p.write("subnet ")
		} else {
			p.write("node ")
		}
		p.node(n.Name)
		p.typeParameters(n.TypeParameters)
		if n.Parameters != nil {
			bracketed(p, n.Parameters, "(", ")")
		}
		p.write(" ")
		p.node(n.Body)
	case *ast.NodeBlock:
		lines(p, n.Statements)
	case *ast.AllPortsTypeDeclaration:
		p.write("$$: ")
		list(p, n.Types, ", ")
		p.write(";")
	case *ast.PortTypeDeclaration:
		p.node(n.Name)
		p.write(": ")
		p.node(n.Type)
		p.write(";")
	case *ast.StateDeclaration:
		p.write("state: ")
		p.node(n.Initializer)
		p.write(";")
	case *ast.MissingDeclaration:
		p.modifiers(n.Modifiers)

	case *ast.PropertyAssignment:
		p.modifiers(n.Modifiers)
		p.node(n.Name)
		p.optional("", n.QuestionToken)
		p.write(": ")
		p.node(n.Initializer)
	case *ast.ShorthandPropertyAssignment:
		p.modifiers(n.Modifiers)
		p.node(n.Name)
		p.optional("", n.QuestionToken)
	case *ast.SpreadAssignment:
		p.write("...")
		p.node(n.Expression)
	default:
		panic(fmt.Sprintf("printer: unhandled node %s", n.Kind()))
	}
}

func (p *Printer) ifStatement(n *ast.IfStatement) {
	if n.Kind() == ast.KindElifStatement {
		p.write("elif (")
	} else {
		p.write("if (")
	}
	p.node(n.Expression)
	p.write(")")
	p.embedded(n.ThenStatement)
	switch e := n.ElseStatement.(type) {
	case nil:
	case *ast.IfStatement:
		if e.Kind() == ast.KindElifStatement {
			p.write(" ")
			p.ifStatement(e)
			return
		}
		p.write(" else")
		p.embedded(e)
	default:
		p.write(" else")
		p.embedded(e)
	}
}

// forStatement prints for (cond) for the single condition form and
// for (init; cond; incr) otherwise.
func (p *Printer) forStatement(n *ast.ForStatement) {
	p.write("for (")
	if n.Initializer == nil && n.Incrementor == nil && n.Condition != nil {
		p.node(n.Condition)
	} else {
		p.node(n.Initializer)
		p.write(";")
		p.optional(" ", n.Condition)
		p.write(";")
		p.optional(" ", n.Incrementor)
	}
	p.write(")")
	p.embedded(n.Statement)
}

func (p *Printer) classLike(c *ast.ClassLike) {
	p.modifiers(c.Modifiers)
	p.write("class")
	p.optional(" ", c.Name)
	p.typeParameters(c.TypeParameters)
	p.heritage(c.HeritageClauses)
	p.write(" ")
	lines(p, c.Members)
}

func (p *Printer) heritage(l *ast.NodeList[*ast.HeritageClause]) {
	if l == nil {
		return
	}
	for _, h := range l.Nodes {
		p.write(" ")
		p.node(h)
	}
}

func (p *Printer) method(n *ast.MethodDeclaration) {
	p.modifiers(n.Modifiers)
	switch n.Kind() {
	case ast.KindConstructor:
		p.write("constructor")
	case ast.KindGetAccessor:
		p.write("get ")
	case ast.KindSetAccessor:
		p.write("set ")
	}
	p.optional("", n.AsteriskToken)
	p.optional("", n.Name)
	p.optional("", n.QuestionToken)
	p.signature(n.TypeParameters, n.Parameters, n.Type)
	p.body(n.Body)
}

// moduleName prints A.B { ... } for nested namespace declarations.
func (p *Printer) moduleName(n *ast.ModuleDeclaration) {
	p.node(n.Name)
	if inner, ok := n.Body.(*ast.ModuleDeclaration); ok {
		p.write(".")
		p.moduleName(inner)
		return
	}
	p.write(" ")
	p.node(n.Body)
}
