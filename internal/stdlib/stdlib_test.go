package stdlib

import (
	"strings"
	"testing"

	"tern/internal/ast"
	"tern/internal/checker"
	"tern/internal/evaluator"
	"tern/internal/lexer"
	"tern/internal/object"
	"tern/internal/parser"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(input).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %s", err)
	}
	p := parser.New(tokens)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	return program
}

// run pushes a program through the whole pipeline with the standard library
// bound, checker included.
func run(t *testing.T, input string) object.Object {
	t.Helper()

	ev := evaluator.New()
	ck := checker.New()
	Bind(ev, ck)

	program := parseProgram(t, input)
	if err := ck.Check(program); err != nil {
		t.Fatalf("type error: %s", err)
	}
	result, err := ev.Interpret(program)
	if err != nil {
		t.Fatalf("runtime error: %s", err)
	}
	return result
}

func runExpectError(t *testing.T, input string, wantSubstring string) {
	t.Helper()

	ev := evaluator.New()
	Bind(ev, nil)

	_, err := ev.Interpret(parseProgram(t, input))
	if err == nil {
		t.Fatalf("expected runtime error for %q", input)
	}
	if !strings.Contains(err.Msg, wantSubstring) {
		t.Errorf("error %q does not mention %q", err.Msg, wantSubstring)
	}
}

func expectInspect(t *testing.T, input string, expected string) {
	t.Helper()
	result := run(t, input)
	if result == nil {
		t.Fatalf("%q produced no value", input)
	}
	if result.Inspect() != expected {
		t.Errorf("%q - got %q, want %q", input, result.Inspect(), expected)
	}
}

func TestOptionBuiltins(t *testing.T) {
	expectInspect(t, "Some(5);", "Some(5)")
	expectInspect(t, "isSome(Some(5));", "true")
	expectInspect(t, "let o: Option<number> = None; isNone(o);", "true")
	expectInspect(t, "unwrap(Some(7));", "7")
	expectInspect(t, "let o: Option<number> = None; unwrapOr(o, 9);", "9")
	expectInspect(t, "unwrapOr(Some(3), 9);", "3")

	runExpectError(t, "unwrap(None);", "unwrap of None")
}

func TestResultBuiltins(t *testing.T) {
	expectInspect(t, "Ok(5);", "Ok(5)")
	expectInspect(t, `Err("boom");`, "Err(boom)")
	expectInspect(t, "isOk(Ok(1));", "true")
	expectInspect(t, `isErr(Err("boom"));`, "true")
	expectInspect(t, "unwrap(Ok(4));", "4")

	runExpectError(t, `unwrap(Err("boom"));`, "unwrap of Err")
}

func TestStringBuiltins(t *testing.T) {
	expectInspect(t, `trim("  hi  ");`, "hi")
	expectInspect(t, `upper("hi");`, "HI")
	expectInspect(t, `lower("HI");`, "hi")
	expectInspect(t, `contains("haystack", "st");`, "true")
	expectInspect(t, `startsWith("haystack", "hay");`, "true")
	expectInspect(t, `endsWith("haystack", "hay");`, "false")
	expectInspect(t, `indexOf("haystack", "st");`, "3")
	expectInspect(t, `substr("haystack", 0, 3);`, "hay")
	expectInspect(t, `repeat("ab", 3);`, "ababab")
	expectInspect(t, `concat("foo", "bar");`, "foobar")
	expectInspect(t, `len("hello");`, "5")
}

func TestMathBuiltins(t *testing.T) {
	expectInspect(t, "abs(0 - 5);", "5")
	expectInspect(t, "floor(3.7);", "3")
	expectInspect(t, "ceil(3.2);", "4")
	expectInspect(t, "sqrt(16);", "4")
	expectInspect(t, "pow(2, 10);", "1024")
	expectInspect(t, "min(3, 7);", "3")
	expectInspect(t, "max(3, 7);", "7")
	expectInspect(t, "mod(10, 3);", "1")

	runExpectError(t, "sqrt(0 - 1);", "sqrt of negative")
	runExpectError(t, "mod(1, 0);", "division by zero")
}

func TestJsonBuiltins(t *testing.T) {
	// String literals in source are verbatim, so a quoted JSON document
	// cannot be written inline; the builtins are exercised directly.
	doc := &object.String{Value: `{"user": {"name": "ada", "age": 36}}`}
	get := funcJsonGet().Fn
	has := funcJsonHas().Fn

	tests := []struct {
		path     string
		expected string
	}{
		{"user.name", "Some(ada)"},
		{"user.age", "Some(36)"},
		{"user.missing", "None"},
		{"user", `Some({"age":36,"name":"ada"})`},
	}
	for _, tt := range tests {
		result := get(doc, &object.String{Value: tt.path})
		if result.Inspect() != tt.expected {
			t.Errorf("jsonGet(%q) = %q, want %q", tt.path, result.Inspect(), tt.expected)
		}
	}

	if has(doc, &object.String{Value: "user"}) != object.TRUE {
		t.Errorf("jsonHas(user) = false, want true")
	}
	if has(doc, &object.String{Value: "nope"}) != object.FALSE {
		t.Errorf("jsonHas(nope) = true, want false")
	}

	bad := get(&object.String{Value: "not json"}, &object.String{Value: "a"})
	if err, ok := bad.(*object.Error); !ok || !strings.Contains(err.Message, "invalid JSON") {
		t.Errorf("expected invalid JSON error, got %v", bad)
	}
}

func TestTypeOf(t *testing.T) {
	expectInspect(t, "typeOf(1);", "NUMBER")
	expectInspect(t, `typeOf("a");`, "STRING")
	expectInspect(t, "typeOf(Some(1));", "OPTION")
}

func TestSignaturesSatisfyChecker(t *testing.T) {
	// Every builtin resolves through the checker with a concrete result type.
	inputs := []string{
		"let n: number = unwrapOr(Some(1), 0);",
		"let s: string = concat(trim(\" a \"), \"b\");",
		"let b: boolean = jsonHas(\"{}\", \"k\");",
		"let o: Option<string> = jsonGet(\"{}\", \"k\");",
		"let r: Result<string, string> = readFile(\"/no/such/file\");",
		"println(now());",
	}

	for _, input := range inputs {
		run(t, input)
	}
}

func TestSqliteRoundTrip(t *testing.T) {
	input := `
let conn: Result<number, string> = dbOpen("sqlite3", ":memory:");
let db = unwrap(conn);
dbExec(db, "CREATE TABLE kv (k TEXT, v TEXT)");
dbExec(db, "INSERT INTO kv VALUES ('greeting', 'hello')");
let v = dbQueryValue(db, "SELECT v FROM kv WHERE k = 'greeting'");
dbClose(db);
unwrap(v);
`
	result := run(t, input)
	if result == nil || result.Inspect() != "hello" {
		t.Fatalf("round trip result = %v, want hello", result)
	}
}

func TestDbInvalidHandle(t *testing.T) {
	result := run(t, "dbExec(9999, \"SELECT 1\");")
	res, ok := result.(*object.Result)
	if !ok || res.Ok {
		t.Fatalf("expected Err result, got %v", result)
	}
	if !strings.Contains(res.Value.Inspect(), "invalid connection handle") {
		t.Errorf("unexpected error payload %q", res.Value.Inspect())
	}
}
