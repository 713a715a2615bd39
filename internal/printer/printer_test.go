package printer

import (
	"strings"
	"testing"

	"nodelang/internal/ast"
	"nodelang/internal/diag"
	"nodelang/internal/parser"
)

func parseClean(t *testing.T, source string) *ast.SourceFile {
	t.Helper()
	var bag diag.Bag
	file, err := parser.ParseSourceFile("test.nl", source, bag.Add, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", source, bag.Items)
	}
	return file
}

// shape lists the kinds of every node in depth-first order.
func shape(n ast.Node) []ast.Kind {
	var kinds []ast.Kind
	ast.Walk(n, func(n ast.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	return kinds
}

func sameShape(a, b []ast.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPrintStatements(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"let x=1", "let x = 1;\n"},
		{"const a:number=1,b", "const a: number = 1, b;\n"},
		{"a->b->c", "a -> b -> c;\n"},
		{"x:=foo()", "x := foo();\n"},
		{"if(a)b()\nelif(c)d()\nelse e()", "if (a) b(); elif (c) d(); else e();\n"},
		{"for(;;){}", "for (;;) {}\n"},
		{"for(let i=0;i<n;i++)f(i)", "for (let i = 0; i < n; i++) f(i);\n"},
		{"for(x)y()", "for (x) y();\n"},
		{"for await(const v of xs){}", "for await (const v of xs) {}\n"},
		{"outer:while(true)break outer", "outer: while (true) break outer;\n"},
		{"s='a\"b\\n'", "s = \"a\\\"b\\n\";\n"},
		{"f = async (x, y?: string) => x", "f = async (x, y?: string) => x;\n"},
		{"g = v => v * 2", "g = (v) => v * 2;\n"},
		{"a?.b?.[c]?.(d)", "a?.b?.[c]?.(d);\n"},
		{"x = - -y", "x = - -y;\n"},
		{"n = 0x1F", "n = 31;\n"},
		{"s = 0x10.toString()", "s = 16..toString();\n"},
		{"s = 1.5.toFixed(1)", "s = 1.5.toFixed(1);\n"},
		{"big = 1e400", "big = 1e400;\n"},
		{"import d, { a as b } from 'm'", "import d, { a as b } from \"m\";\n"},
		{"export * from 'm'", "export * from \"m\";\n"},
		{"export default 42", "export default 42;\n"},
		{"namespace A.B { let x }", "namespace A.B {\n    let x;\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := Print(parseClean(t, tt.source))
			if got != tt.want {
				t.Errorf("Print(%q):\n got %q\nwant %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestPrintIndent(t *testing.T) {
	file := parseClean(t, "function f() { if (a) { return 1 } }")
	got := New(Options{Indent: 2}).Print(file)
	want := "function f() {\n  if (a) {\n    return 1;\n  }\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintNodeBlock(t *testing.T) {
	source := `node Adder<T>(a: T, b: T) {
    $$: number, number;
    $out: number;
    state: { sum: 0 };
    x := 1;
}
subnet Pipeline {
    a -> b;
}
`
	got := Print(parseClean(t, source))
	want := `node Adder<T>(a: T, b: T) {
    $$: number, number;
    $out: number;
    state: { sum: 0 };
    x := 1;
}
subnet Pipeline {
    a -> b;
}
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintClass(t *testing.T) {
	source := `@sealed export abstract class A<T> extends B<T> implements C {
    private readonly x?: number = 1;
    constructor(public y: string) {}
    get z(): number { return this.x }
    static *gen() {}
    m(): void;
}`
	want := `@sealed export abstract class A<T> extends B<T> implements C {
    private readonly x?: number = 1;
    constructor(public y: string) {}
    get z(): number {
        return this.x;
    }
    static *gen() {}
    m(): void;
}
`
	if got := Print(parseClean(t, source)); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRoundTripPreservesShape(t *testing.T) {
	sources := []string{
		"var a = 1 + 2 * 3 ** 2 ** 1;",
		"a = b = c ? d : e ?? f || g && h | i ^ j & k == l < m << n + o * p;",
		"let f = <T>(x: T): T[] => [x, , ...rest,];",
		"const o = { a, b: 1, [k]: v, ...s, get g() { return 1 }, set g(v) {}, async *m() {} };",
		"new Foo<number>(1).bar<string>()(2)[3];",
		"x = <Foo>y as Bar;",
		"typeof a; void 0; delete a.b; !a; ~a; -a; +a; ++a; a--;",
		"async function* gen(a = 1, ...b: number[]) { yield* a; await b; }",
		"switch (x) { case 1: a(); fallthrough; default: break; }",
		"try { a() } catch (e) { b() } finally { c() }",
		"try {} finally {}",
		"do x++; while (x < 10)",
		"with (o) { f() }",
		"using (r := open()) { r.read() }",
		"for (var k in o) {} for (const v of xs) {} for (;;) break;",
		"label: for (;;) { continue label; }",
		"if (a) b(); else if (c) d(); elif (e) f(); else g();",
		"interface I<T> extends J { a?: T; m<U>(x: U): void }",
		"type Pair<A, B = A> = Foo.Bar<A, B>;",
		"declare enum Color { Red = 1, Green, Blue }",
		"const enum E { A }",
		"export { a, b as c } from 'mod'; export = q;",
		"import * as ns from 'x'; import 'side';",
		"export default class {}",
		"class K { ; static x = 1; @dec m() {} }",
		"debugger; throw new Error('x');",
		"a = function named() {}; b = class extends Base {};",
		"node N { $$: any; $in: string[]; state: 0; on($in) -> out; }",
		"x = (a, b) -> (c := d);",
		"f(a)(b)?.c!==d",
		"x = 1..toString();",
		"x = 0x10.toString();",
		"x = 1e400 + 1e21.valueOf() + 2?.x;",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first := parseClean(t, src)
			printed := Print(first)
			second := parseClean(t, printed)
			if !sameShape(shape(first), shape(second)) {
				t.Errorf("shape changed after printing %q as:\n%s", src, printed)
			}
			if again := Print(second); again != printed {
				t.Errorf("printing is not stable:\n%s\nvs\n%s", printed, again)
			}
		})
	}
}

func TestPrintStringEscapes(t *testing.T) {
	file := parseClean(t, `s = "tab\there\\ \0 'q'";`)
	got := Print(file)
	if !strings.Contains(got, `"tab\there\\ \0 'q'"`) {
		t.Errorf("escapes not preserved: %s", got)
	}
}
