package parser

import (
	"errors"
	"testing"

	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/token"
)

// helper: parse source and fail on any diagnostic
func parseOK(t *testing.T, source string) *ast.SourceFile {
	t.Helper()
	return parseWith(t, source, Options{})
}

func parseWith(t *testing.T, source string, opts Options) *ast.SourceFile {
	t.Helper()
	var bag diag.Bag
	file, err := ParseSourceFile("test.nl", source, bag.Add, opts)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", source, bag.Items)
	}
	return file
}

// helper: parse source that is expected to be malformed
func parseDiags(t *testing.T, source string, opts Options) (*ast.SourceFile, []diag.Diagnostic) {
	t.Helper()
	var bag diag.Bag
	file, err := ParseSourceFile("test.nl", source, bag.Add, opts)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if file == nil {
		t.Fatal("expected a tree even for malformed input")
	}
	return file, bag.Items
}

func onlyStatement(t *testing.T, file *ast.SourceFile) ast.Statement {
	t.Helper()
	if file.Statements.Len() != 1 {
		t.Fatalf("expected 1 statement, got %d", file.Statements.Len())
	}
	return file.Statements.At(0)
}

// helper: the expression of a single expression statement
func parseExpr(t *testing.T, source string) ast.Expression {
	t.Helper()
	stmt, ok := onlyStatement(t, parseOK(t, source)).(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement for %q", source)
	}
	return stmt.Expression
}

func binary(t *testing.T, e ast.Expression, op token.Kind) *ast.BinaryExpression {
	t.Helper()
	b, ok := e.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected BinaryExpression, got %s", e.Kind())
	}
	if b.OperatorToken.Token != op {
		t.Fatalf("expected operator %s, got %s", op, b.OperatorToken.Token)
	}
	return b
}

// ============================================================
// Expressions
// ============================================================

func TestParseMultiplicationBindsTighter(t *testing.T) {
	b := binary(t, parseExpr(t, "1 + 2 * 3"), token.PLUS)
	binary(t, b.Right, token.STAR)
	if b.Left.Kind() != ast.KindNumericLiteral {
		t.Errorf("left: expected NumericLiteral, got %s", b.Left.Kind())
	}
}

func TestParseExponentRightAssociative(t *testing.T) {
	b := binary(t, parseExpr(t, "2 ** 3 ** 2"), token.STAR_STAR)
	binary(t, b.Right, token.STAR_STAR)
}

func TestParseSubtractionLeftAssociative(t *testing.T) {
	b := binary(t, parseExpr(t, "a - b - c"), token.MINUS)
	binary(t, b.Left, token.MINUS)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	b := binary(t, parseExpr(t, "a = b = c"), token.ASSIGN)
	binary(t, b.Right, token.ASSIGN)
}

func TestParseConnect(t *testing.T) {
	c, ok := parseExpr(t, "a -> b -> c").(*ast.ConnectExpression)
	if !ok {
		t.Fatal("expected ConnectExpression")
	}
	if c.Left.Kind() != ast.KindIdentifier {
		t.Errorf("left: expected Identifier, got %s", c.Left.Kind())
	}
	if c.Right.Kind() != ast.KindConnectExpression {
		t.Errorf("right: expected ConnectExpression, got %s", c.Right.Kind())
	}
}

func TestParseConnectLooserThanAssignment(t *testing.T) {
	c, ok := parseExpr(t, "a = b -> c").(*ast.ConnectExpression)
	if !ok {
		t.Fatal("expected ConnectExpression at the top")
	}
	binary(t, c.Left, token.ASSIGN)
}

func TestParseWalrus(t *testing.T) {
	w, ok := parseExpr(t, "total := a -> b").(*ast.WalrusDeclaration)
	if !ok {
		t.Fatal("expected WalrusDeclaration")
	}
	if w.Name.Text != "total" {
		t.Errorf("name: expected total, got %q", w.Name.Text)
	}
	if w.Initializer.Kind() != ast.KindConnectExpression {
		t.Errorf("initializer: expected ConnectExpression, got %s", w.Initializer.Kind())
	}
}

func TestParseLegacyColon(t *testing.T) {
	file := parseWith(t, "x := 1", Options{LegacyColon: true})
	label, ok := onlyStatement(t, file).(*ast.LabeledStatement)
	if !ok {
		t.Fatal("expected LabeledStatement with legacy colon")
	}
	if label.Label.Text != "x" {
		t.Errorf("label: expected x, got %q", label.Label.Text)
	}
}

func TestParseConditional(t *testing.T) {
	c, ok := parseExpr(t, "a ? b : c ? d : e").(*ast.ConditionalExpression)
	if !ok {
		t.Fatal("expected ConditionalExpression")
	}
	if c.WhenFalse.Kind() != ast.KindConditionalExpression {
		t.Errorf("whenFalse: expected ConditionalExpression, got %s", c.WhenFalse.Kind())
	}
}

func TestParseArrowOrParenthesized(t *testing.T) {
	tests := []struct {
		source string
		kind   ast.Kind
	}{
		{"(a)", ast.KindParenthesizedExpression},
		{"(a, b)", ast.KindParenthesizedExpression},
		{"(a) => a", ast.KindArrowFunction},
		{"() => 1", ast.KindArrowFunction},
		{"(a, b) => { return a }", ast.KindArrowFunction},
		{"(a: number): number => a", ast.KindArrowFunction},
		{"(...rest) => rest", ast.KindArrowFunction},
		{"x => x", ast.KindArrowFunction},
		{"async x => x", ast.KindArrowFunction},
		{"async (x) => x", ast.KindArrowFunction},
		{"<T>(x: T) => x", ast.KindArrowFunction},
		{"<T>x", ast.KindTypeAssertionExpression},
		{"(a) -> b", ast.KindConnectExpression},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := parseExpr(t, tt.source).Kind(); got != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, got)
			}
		})
	}
}

func TestParseGenericCallOrComparison(t *testing.T) {
	call, ok := parseExpr(t, "f<T, U[]>(x)").(*ast.CallExpression)
	if !ok {
		t.Fatal("expected CallExpression")
	}
	if call.TypeArguments.Len() != 2 {
		t.Errorf("expected 2 type arguments, got %d", call.TypeArguments.Len())
	}

	b := binary(t, parseExpr(t, "a < b > c"), token.GT)
	binary(t, b.Left, token.LT)

	b = binary(t, parseExpr(t, "a < b"), token.LT)
	if b.Right.Kind() != ast.KindIdentifier {
		t.Errorf("right: expected Identifier, got %s", b.Right.Kind())
	}
}

func TestParseNestedGenericCall(t *testing.T) {
	call, ok := parseExpr(t, "f<Map<K, V>>()").(*ast.CallExpression)
	if !ok {
		t.Fatal("expected CallExpression")
	}
	ref, ok := call.TypeArguments.At(0).(*ast.TypeReference)
	if !ok || ref.TypeArguments.Len() != 2 {
		t.Fatal("expected Map<K, V> type argument")
	}
}

func TestParseOptionalChain(t *testing.T) {
	e := parseExpr(t, "a?.b.c")
	outer, ok := e.(*ast.PropertyAccessExpression)
	if !ok {
		t.Fatal("expected PropertyAccessExpression")
	}
	if outer.QuestionDotToken != nil {
		t.Error("outer access should not carry '?.'")
	}
	if outer.Flags&ast.FlagOptionalChain == 0 {
		t.Error("outer access should be part of the optional chain")
	}
	inner := outer.Expression.(*ast.PropertyAccessExpression)
	if inner.QuestionDotToken == nil {
		t.Error("inner access should carry '?.'")
	}

	plain := parseExpr(t, "a.b").(*ast.PropertyAccessExpression)
	if plain.Flags&ast.FlagOptionalChain != 0 {
		t.Error("a.b is not an optional chain")
	}
}

func TestParseConditionalBeforeDigit(t *testing.T) {
	if _, ok := parseExpr(t, "a?.5:b").(*ast.ConditionalExpression); !ok {
		t.Error("expected ConditionalExpression for a?.5:b")
	}
}

func TestParseNewExpression(t *testing.T) {
	n, ok := parseExpr(t, "new Foo").(*ast.NewExpression)
	if !ok {
		t.Fatal("expected NewExpression")
	}
	if n.Arguments != nil {
		t.Error("expected nil arguments without parentheses")
	}
	n = parseExpr(t, "new Foo<T>(1, 2)").(*ast.NewExpression)
	if n.TypeArguments.Len() != 1 || n.Arguments.Len() != 2 {
		t.Errorf("unexpected arguments: %d type, %d value", n.TypeArguments.Len(), n.Arguments.Len())
	}
}

func TestParseUnary(t *testing.T) {
	tests := []struct {
		source string
		kind   ast.Kind
	}{
		{"!a", ast.KindPrefixUnaryExpression},
		{"++a", ast.KindPrefixUnaryExpression},
		{"a--", ast.KindPostfixUnaryExpression},
		{"typeof a", ast.KindTypeOfExpression},
		{"void 0", ast.KindVoidExpression},
		{"delete a.b", ast.KindDeleteExpression},
		{"a as T", ast.KindAsExpression},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := parseExpr(t, tt.source).Kind(); got != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, got)
			}
		})
	}
}

func TestParseYieldAndAwaitAsIdentifiers(t *testing.T) {
	// outside generators and async functions these are plain names
	binary(t, parseExpr(t, "yield + await"), token.PLUS)
}

func TestParseArrayLiteral(t *testing.T) {
	arr, ok := parseExpr(t, "[a, , ...b,]").(*ast.ArrayLiteralExpression)
	if !ok {
		t.Fatal("expected ArrayLiteralExpression")
	}
	if arr.Elements.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", arr.Elements.Len())
	}
	if arr.Elements.At(1).Kind() != ast.KindOmittedExpression {
		t.Errorf("element 1: expected OmittedExpression, got %s", arr.Elements.At(1).Kind())
	}
	if arr.Elements.At(2).Kind() != ast.KindSpreadElement {
		t.Errorf("element 2: expected SpreadElement, got %s", arr.Elements.At(2).Kind())
	}
	if !arr.Elements.HasTrailingComma {
		t.Error("expected trailing comma to be recorded")
	}
}

func TestParseObjectLiteral(t *testing.T) {
	b := binary(t, parseExpr(t, "o = { a, b: 1, ...c, m() {}, get g() { return 1 } }"), token.ASSIGN)
	obj, ok := b.Right.(*ast.ObjectLiteralExpression)
	if !ok {
		t.Fatal("expected ObjectLiteralExpression")
	}
	want := []ast.Kind{
		ast.KindShorthandPropertyAssignment,
		ast.KindPropertyAssignment,
		ast.KindSpreadAssignment,
		ast.KindMethodDeclaration,
		ast.KindGetAccessor,
	}
	if obj.Properties.Len() != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), obj.Properties.Len())
	}
	for i, k := range want {
		if got := obj.Properties.At(i).Kind(); got != k {
			t.Errorf("property %d: expected %s, got %s", i, k, got)
		}
	}
}

// ============================================================
// Statements
// ============================================================

func TestParseVariableStatement(t *testing.T) {
	tests := []struct {
		source string
		flags  ast.NodeFlags
		count  int
	}{
		{"var x = 1", ast.FlagsNone, 1},
		{"let a, b = 2", ast.FlagLet, 2},
		{"const PI: number = 3.14", ast.FlagConst, 1},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			stmt, ok := onlyStatement(t, parseOK(t, tt.source)).(*ast.VariableStatement)
			if !ok {
				t.Fatal("expected VariableStatement")
			}
			list := stmt.DeclarationList
			if list.Flags&ast.FlagBlockScoped != tt.flags {
				t.Errorf("flags: expected %v, got %v", tt.flags, list.Flags&ast.FlagBlockScoped)
			}
			if list.Declarations.Len() != tt.count {
				t.Errorf("expected %d declarations, got %d", tt.count, list.Declarations.Len())
			}
		})
	}
}

func TestParseLetAsIdentifier(t *testing.T) {
	binary(t, parseExpr(t, "let = 1"), token.ASSIGN)
}

func TestParseForForms(t *testing.T) {
	tests := []struct {
		source string
		kind   ast.Kind
	}{
		{"for (;;) {}", ast.KindForStatement},
		{"for (let i = 0; i < n; i++) {}", ast.KindForStatement},
		{"for (i = 0; i < n;) {}", ast.KindForStatement},
		{"for (x) {}", ast.KindForStatement},
		{"for (let k in o) {}", ast.KindForInStatement},
		{"for (const v of xs) {}", ast.KindForOfStatement},
		{"for await (const v of xs) {}", ast.KindForOfStatement},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := onlyStatement(t, parseOK(t, tt.source)).Kind(); got != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, got)
			}
		})
	}
}

func TestParseSingleConditionFor(t *testing.T) {
	stmt := onlyStatement(t, parseOK(t, "for (running) tick()")).(*ast.ForStatement)
	if stmt.Initializer != nil || stmt.Incrementor != nil {
		t.Error("single-condition for should have no initializer or incrementor")
	}
	if stmt.Condition == nil || stmt.Condition.Kind() != ast.KindIdentifier {
		t.Error("expected the condition to be the identifier")
	}
}

func TestParseForWithoutDeclarationIsCondition(t *testing.T) {
	// without var, let or const the parenthesized part is a plain condition
	stmt := onlyStatement(t, parseOK(t, "for (k in o) {}")).(*ast.ForStatement)
	binary(t, stmt.Condition, token.KW_IN)
}

func TestParseElif(t *testing.T) {
	stmt, ok := onlyStatement(t, parseOK(t, "if (a) x()\nelif (b) y()\nelif (c) z()\nelse w()")).(*ast.IfStatement)
	if !ok {
		t.Fatal("expected IfStatement")
	}
	if stmt.Kind() != ast.KindIfStatement {
		t.Errorf("expected IfStatement kind, got %s", stmt.Kind())
	}
	first, ok := stmt.ElseStatement.(*ast.IfStatement)
	if !ok || first.Kind() != ast.KindElifStatement {
		t.Fatal("expected an elif in the else branch")
	}
	second, ok := first.ElseStatement.(*ast.IfStatement)
	if !ok || second.Kind() != ast.KindElifStatement {
		t.Fatal("expected a second elif")
	}
	if second.ElseStatement == nil || second.ElseStatement.Kind() != ast.KindExpressionStatement {
		t.Error("expected the final else to hold an expression statement")
	}
}

func TestParseLabels(t *testing.T) {
	label, ok := onlyStatement(t, parseOK(t, "outer: for (;;) { break outer }")).(*ast.LabeledStatement)
	if !ok {
		t.Fatal("expected LabeledStatement")
	}
	loop := label.Statement.(*ast.ForStatement)
	brk := loop.Statement.(*ast.Block).Statements.At(0).(*ast.BranchStatement)
	if brk.Kind() != ast.KindBreakStatement || brk.Label == nil || brk.Label.Text != "outer" {
		t.Error("expected break outer")
	}
}

func TestParseBreakBeforeLineBreak(t *testing.T) {
	file := parseOK(t, "while (a) { break\nouter }")
	body := onlyStatement(t, file).(*ast.WhileStatement).Statement.(*ast.Block)
	if body.Statements.Len() != 2 {
		t.Fatalf("expected break and a separate statement, got %d statements", body.Statements.Len())
	}
	if body.Statements.At(0).(*ast.BranchStatement).Label != nil {
		t.Error("a label on the next line does not belong to break")
	}
}

func TestParseSwitchFallthrough(t *testing.T) {
	stmt := onlyStatement(t, parseOK(t, "switch (x) { case 1: a(); fallthrough; case 2: default: b() }")).(*ast.SwitchStatement)
	clauses := stmt.CaseBlock.Clauses
	if clauses.Len() != 3 {
		t.Fatalf("expected 3 clauses, got %d", clauses.Len())
	}
	first := clauses.At(0).(*ast.CaseOrDefaultClause)
	if first.Statements.Len() != 2 || first.Statements.At(1).Kind() != ast.KindFallthroughStatement {
		t.Error("expected the first clause to end with fallthrough")
	}
	if clauses.At(2).Kind() != ast.KindDefaultClause {
		t.Errorf("expected DefaultClause, got %s", clauses.At(2).Kind())
	}
}

func TestParseUsing(t *testing.T) {
	stmt, ok := onlyStatement(t, parseOK(t, "using (f := open()) { f.read() }")).(*ast.UsingStatement)
	if !ok {
		t.Fatal("expected UsingStatement")
	}
	if stmt.Expression.Kind() != ast.KindWalrusDeclaration {
		t.Errorf("expected walrus header, got %s", stmt.Expression.Kind())
	}
}

func TestParseTry(t *testing.T) {
	stmt := onlyStatement(t, parseOK(t, "try { a() } catch (e) { b() } finally { c() }")).(*ast.TryStatement)
	if stmt.CatchClause == nil || stmt.CatchClause.VariableDeclaration.Name.Text != "e" {
		t.Error("expected catch (e)")
	}
	if stmt.FinallyBlock == nil {
		t.Error("expected finally block")
	}
}

func TestParseAutomaticSemicolons(t *testing.T) {
	file := parseOK(t, "a = 1\nb = 2\n{ c }\nreturn")
	if file.Statements.Len() != 4 {
		t.Fatalf("expected 4 statements, got %d", file.Statements.Len())
	}
}

// ============================================================
// Declarations
// ============================================================

func TestParseFunctionDeclaration(t *testing.T) {
	fn, ok := onlyStatement(t, parseOK(t, "async function* gen<T>(a: T, b?: number, ...rest: T[]): T { yield a; await b }")).(*ast.FunctionDeclaration)
	if !ok {
		t.Fatal("expected FunctionDeclaration")
	}
	if !ast.HasModifier(fn.Modifiers, token.KW_ASYNC) {
		t.Error("expected async modifier")
	}
	if fn.AsteriskToken == nil {
		t.Error("expected generator asterisk")
	}
	if fn.TypeParameters.Len() != 1 || fn.Parameters.Len() != 3 {
		t.Errorf("unexpected signature: %d type params, %d params", fn.TypeParameters.Len(), fn.Parameters.Len())
	}
	if fn.Parameters.At(1).QuestionToken == nil {
		t.Error("expected b to be optional")
	}
	if fn.Parameters.At(2).DotDotDot == nil {
		t.Error("expected rest parameter")
	}
	stmts := fn.Body.Statements
	if stmts.At(0).(*ast.ExpressionStatement).Expression.Kind() != ast.KindYieldExpression {
		t.Error("expected yield expression inside generator")
	}
	if stmts.At(1).(*ast.ExpressionStatement).Expression.Kind() != ast.KindAwaitExpression {
		t.Error("expected await expression inside async function")
	}
}

func TestParseFunctionOverload(t *testing.T) {
	fn := onlyStatement(t, parseOK(t, "function f(a: string): void;")).(*ast.FunctionDeclaration)
	if fn.Body != nil {
		t.Error("expected no body for an overload")
	}
}

func TestParseClass(t *testing.T) {
	source := `export abstract class A<T> extends B implements C, D {
    private x: number = 1;
    static readonly y;
    constructor(public z: string) {}
    get v() { return 1 }
    set v(n) {}
    *items() {}
    m?(): void;
}`
	cls, ok := onlyStatement(t, parseOK(t, source)).(*ast.ClassDeclaration)
	if !ok {
		t.Fatal("expected ClassDeclaration")
	}
	if cls.Name.Text != "A" || cls.HeritageClauses.Len() != 2 {
		t.Fatalf("unexpected class header: %q, %d heritage clauses", cls.Name.Text, cls.HeritageClauses.Len())
	}
	if cls.HeritageClauses.At(1).Types.Len() != 2 {
		t.Error("expected two implemented interfaces")
	}
	want := []ast.Kind{
		ast.KindPropertyDeclaration,
		ast.KindPropertyDeclaration,
		ast.KindConstructor,
		ast.KindGetAccessor,
		ast.KindSetAccessor,
		ast.KindMethodDeclaration,
		ast.KindMethodDeclaration,
	}
	if cls.Members.Len() != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), cls.Members.Len())
	}
	for i, k := range want {
		if got := cls.Members.At(i).Kind(); got != k {
			t.Errorf("member %d: expected %s, got %s", i, k, got)
		}
	}
}

func TestParseInterfaceTypeEnumNamespace(t *testing.T) {
	file := parseOK(t, `interface I { a: string; b?(x: number): void }
type Id = string;
enum Color { Red = 1, Green }
namespace Outer.Inner { let x }`)
	want := []ast.Kind{
		ast.KindInterfaceDeclaration,
		ast.KindTypeAliasDeclaration,
		ast.KindEnumDeclaration,
		ast.KindModuleDeclaration,
	}
	for i, k := range want {
		if got := file.Statements.At(i).Kind(); got != k {
			t.Errorf("statement %d: expected %s, got %s", i, k, got)
		}
	}
	ns := file.Statements.At(3).(*ast.ModuleDeclaration)
	if inner, ok := ns.Body.(*ast.ModuleDeclaration); !ok || inner.Name.Text != "Inner" {
		t.Error("expected nested module declaration for a dotted name")
	}
}

func TestParseImportsAndExports(t *testing.T) {
	tests := []struct {
		source string
		kind   ast.Kind
	}{
		{"import 'side'", ast.KindImportDeclaration},
		{"import d from 'm'", ast.KindImportDeclaration},
		{"import * as ns from 'm'", ast.KindImportDeclaration},
		{"import { a, b as c } from 'm'", ast.KindImportDeclaration},
		{"export { a, b as c }", ast.KindExportDeclaration},
		{"export * from 'm'", ast.KindExportDeclaration},
		{"export = x", ast.KindExportAssignment},
		{"export default x", ast.KindExportAssignment},
		{"export default function () {}", ast.KindFunctionDeclaration},
		{"export const a = 1", ast.KindVariableStatement},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := onlyStatement(t, parseOK(t, tt.source)).Kind(); got != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, got)
			}
		})
	}
}

func TestParseDeclareSetsAmbientFlag(t *testing.T) {
	fn := onlyStatement(t, parseOK(t, "declare function f(a: number): void")).(*ast.FunctionDeclaration)
	if fn.Flags&ast.FlagAmbient == 0 {
		t.Error("expected the declaration to be ambient")
	}
	if fn.Parameters.At(0).Flags&ast.FlagAmbient == 0 {
		t.Error("expected nested nodes to inherit the ambient flag")
	}

	plain := onlyStatement(t, parseOK(t, "function g() {}"))
	if plain.Base().Flags&ast.FlagAmbient != 0 {
		t.Error("a plain function is not ambient")
	}
}

func TestParseNodeDeclaration(t *testing.T) {
	source := `node Adder<T>(a: T, b: T) {
    $$: number, number;
    $out: number;
    state: { sum: 0 };
    sum := a + b;
    $in -> $out;
}`
	decl, ok := onlyStatement(t, parseOK(t, source)).(*ast.NodeDeclaration)
	if !ok {
		t.Fatal("expected NodeDeclaration")
	}
	if decl.Kind() != ast.KindNodeDeclaration || decl.Name.Text != "Adder" {
		t.Errorf("unexpected header: %s %q", decl.Kind(), decl.Name.Text)
	}
	if decl.Parameters.Len() != 2 {
		t.Errorf("expected 2 parameters, got %d", decl.Parameters.Len())
	}
	want := []ast.Kind{
		ast.KindAllPortsTypeDeclaration,
		ast.KindPortTypeDeclaration,
		ast.KindStateDeclaration,
		ast.KindExpressionStatement,
		ast.KindExpressionStatement,
	}
	stmts := decl.Body.Statements
	if stmts.Len() != len(want) {
		t.Fatalf("expected %d body statements, got %d", len(want), stmts.Len())
	}
	for i, k := range want {
		if got := stmts.At(i).Kind(); got != k {
			t.Errorf("statement %d: expected %s, got %s", i, k, got)
		}
	}
	if ports := stmts.At(0).(*ast.AllPortsTypeDeclaration); ports.Types.Len() != 2 {
		t.Errorf("expected 2 port types, got %d", ports.Types.Len())
	}
	if port := stmts.At(1).(*ast.PortTypeDeclaration); port.Name.Text != "$out" {
		t.Errorf("expected port $out, got %q", port.Name.Text)
	}
}

func TestParseSubnetWithoutParameters(t *testing.T) {
	decl := onlyStatement(t, parseOK(t, "subnet Pipeline { a -> b }")).(*ast.NodeDeclaration)
	if decl.Kind() != ast.KindSubnetDeclaration {
		t.Errorf("expected SubnetDeclaration, got %s", decl.Kind())
	}
	if decl.Parameters != nil {
		t.Error("expected no parameter list")
	}
}

func TestParseStateOutsideNodeIsLabel(t *testing.T) {
	if got := onlyStatement(t, parseOK(t, "state: x")).Kind(); got != ast.KindLabeledStatement {
		t.Errorf("expected LabeledStatement, got %s", got)
	}
}

// ============================================================
// Diagnostics and recovery
// ============================================================

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   string
		start  int
	}{
		{"missing comma", "f(a b)", diag.CommaExpected, 4},
		{"missing expression", "x = ;", diag.ExpressionExpected, 4},
		{"bad assignment target", "1 = 2", diag.InvalidAssignmentTarget, 0},
		{"missing paren", "if (a { }", diag.TokenExpected, 6},
		{"stray brace", "}", diag.StatementExpected, 0},
		{"missing type", "let x: = 1", diag.TypeExpected, 7},
		{"decorator without declaration", "@dec", diag.DeclarationExpected, 4},
		{"missing property name", "a.;", diag.IdentifierExpected, 2},
		{"unary before exponent", "-1 ** 2", diag.UnexpectedToken, 0},
		{"unterminated string", `"abc`, diag.UnterminatedString, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parseDiags(t, tt.source, Options{})
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
			}
			if diags[0].Code != tt.code || diags[0].Start != tt.start {
				t.Errorf("expected %s at %d, got %s at %d", tt.code, tt.start, diags[0].Code, diags[0].Start)
			}
		})
	}
}

func TestParseLegacyOctal(t *testing.T) {
	parseOK(t, "x = 017")
	_, diags := parseDiags(t, "x = 017", Options{NoLegacyOctal: true})
	if len(diags) != 1 || diags[0].Code != diag.LegacyOctal {
		t.Errorf("expected a legacy octal diagnostic, got %v", diags)
	}
}

func TestParseErrorMarksNode(t *testing.T) {
	file, _ := parseDiags(t, "x = ;", Options{})
	marked := 0
	ast.Walk(file, func(n ast.Node) bool {
		if n.Base().Flags&ast.FlagThisNodeHasError != 0 {
			marked++
		}
		return true
	})
	if marked == 0 {
		t.Error("expected a node to be marked with the error")
	}
}

func TestParseRecoversAndContinues(t *testing.T) {
	sources := []string{
		"let = ; function () {} class { x( } if (",
		"a(b, c d, e)) ] } ) {",
		"node { $$: ; state }",
		"import { from ; export { ",
		"for (let in) {} for (;",
		"x = <T>(a: T => a; y = f<<T>>(1)",
		"interface { a b c } enum { , } type = ;",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			file, diags := parseDiags(t, src, Options{})
			if len(diags) == 0 {
				t.Error("expected diagnostics")
			}
			if file.NodeCount != ast.CountNodes(file) {
				t.Errorf("node count %d does not match tree size %d", file.NodeCount, ast.CountNodes(file))
			}
			if file.End != len(src) {
				t.Errorf("file end %d, want %d", file.End, len(src))
			}
		})
	}
}

// ============================================================
// Tree invariants
// ============================================================

func TestParseRanges(t *testing.T) {
	file := parseOK(t, "let abc = 1;\nf(x)")
	stmt := file.Statements.At(0).(*ast.VariableStatement)
	if stmt.Pos != 0 || stmt.End != 12 {
		t.Errorf("statement range [%d, %d), want [0, 12)", stmt.Pos, stmt.End)
	}
	name := stmt.DeclarationList.Declarations.At(0).Name
	if name.Pos != 4 || name.End != 7 {
		t.Errorf("name range [%d, %d), want [4, 7)", name.Pos, name.End)
	}
	if got := file.TextOf(file.Statements.At(1)); got != "f(x)" {
		t.Errorf("second statement text %q, want %q", got, "f(x)")
	}
}

func TestParseChildrenWithinParent(t *testing.T) {
	checkChildRanges(t, parseOK(t, "class A { m(a, b) { return a -> b } }\nx := [1, 2].map(v => v * 2)"))
}

func TestParseChildrenWithinParentAfterErrors(t *testing.T) {
	sources := []string{
		"(function () ",
		"if ",
		"node N ",
		"subnet S<T> ",
		"class A { m() ",
		"let x = [1, , 2",
		"for (let i = 0; i <",
		"switch (x) { case ",
		"x := { a: ",
		"while (a) \n",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			file, _ := parseDiags(t, src, Options{})
			checkChildRanges(t, file)
		})
	}
}

func checkChildRanges(t *testing.T, file *ast.SourceFile) {
	t.Helper()
	ast.Walk(file, func(n ast.Node) bool {
		parent := n.Base().Parent()
		if parent == nil {
			return true
		}
		b, pb := n.Base(), parent.Base()
		if b.Pos < pb.Pos || b.End > pb.End {
			t.Errorf("%s [%d, %d) escapes parent %s [%d, %d)", n.Kind(), b.Pos, b.End, parent.Kind(), pb.Pos, pb.End)
		}
		return true
	})
}

func TestParseNodeCount(t *testing.T) {
	sources := []string{
		"let x = 1 + 2; a -> b; y := f<T>(1)",
		"o = { a?, b?: 1, async c, d }",
		"@dec export class A { x?: number }",
	}
	for _, src := range sources {
		file, _ := parseDiags(t, src, Options{})
		if file.NodeCount != ast.CountNodes(file) {
			t.Errorf("%q: node count %d does not match tree size %d", src, file.NodeCount, ast.CountNodes(file))
		}
	}
}

func TestParserReuse(t *testing.T) {
	p := New(Options{})

	var first diag.Bag
	if _, err := p.Parse("a.nl", "let = ;", first.Add); err != nil {
		t.Fatal(err)
	}
	if first.Len() == 0 {
		t.Fatal("expected diagnostics from the first parse")
	}

	var second diag.Bag
	file, err := p.Parse("b.nl", "x = 1", second.Add)
	if err != nil {
		t.Fatal(err)
	}
	if second.Len() != 0 {
		t.Errorf("state leaked between parses: %v", second.Items)
	}
	if file.FileName != "b.nl" || file.Statements.Len() != 1 {
		t.Errorf("unexpected second parse result: %q with %d statements", file.FileName, file.Statements.Len())
	}
	if file.NodeCount != ast.CountNodes(file) {
		t.Errorf("node count %d does not match tree size %d", file.NodeCount, ast.CountNodes(file))
	}
}

func TestSpeculationDropsDiagnostics(t *testing.T) {
	// "(a, b)" is first tried as an arrow head; the failed attempt must not
	// leave diagnostics behind
	parseOK(t, "x = (a, b) -> c")
	parseOK(t, "y = <T>z")
}

func TestSpeculationContextChangeIsInvariantError(t *testing.T) {
	p := New(Options{})
	p.reset("t.nl", "a", nil)
	p.nextToken()

	defer func() {
		r := recover()
		var ie *InvariantError
		err, _ := r.(error)
		if !errors.As(err, &ie) {
			t.Fatalf("expected InvariantError panic, got %v", r)
		}
	}()
	p.tryParse(func() bool {
		p.contextFlags |= ast.FlagAmbient
		return true
	})
	t.Error("expected a panic")
}

func TestInvariantErrorMessage(t *testing.T) {
	err := &InvariantError{Pos: 3, Message: "boom"}
	if got, want := err.Error(), "internal parser error at offset 3: boom"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
