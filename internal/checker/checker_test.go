package checker

import (
	"strings"
	"testing"

	"tern/internal/ast"
	"tern/internal/lexer"
	"tern/internal/parser"
	"tern/internal/types"
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

func checkProgram(t *testing.T, input string) (*ast.Program, *TypeError) {
	t.Helper()
	program := parseProgram(t, input)
	return program, New().Check(program)
}

func expectTypeError(t *testing.T, input string, wantSubstring string) {
	t.Helper()
	_, err := checkProgram(t, input)
	if err == nil {
		t.Fatalf("expected type error for %q", input)
	}
	if !strings.Contains(err.Msg, wantSubstring) {
		t.Errorf("error %q does not mention %q", err.Msg, wantSubstring)
	}
}

func TestArithmeticAndRelationalTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Type
	}{
		{"2 + 3 * 4;", types.Number},
		{"10 / 2 - 1;", types.Number},
		{"1 < 2;", types.Boolean},
		{"1 >= 2;", types.Boolean},
		{"1 == 2;", types.Boolean},
		{`"a" != "b";`, types.Boolean},
		{"true == false;", types.Boolean},
	}

	for i, tt := range tests {
		program, err := checkProgram(t, tt.input)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected type error: %s", i, err)
		}

		stmt := program.Statements[0].(*ast.ExpressionStatement)
		if !types.Equals(stmt.Expression.Type(), tt.expected) {
			t.Errorf("tests[%d] - resolved type is %s, want %s", i, stmt.Expression.Type(), tt.expected)
		}
	}
}

func TestOperandRuleViolations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`1 + "a";`, "operator +"},
		{`"a" * "b";`, "operator *"},
		{`"a" < "b";`, "operator <"},
		{`1 == "a";`, "operator =="},
		{`true + true;`, "operator +"},
	}

	for _, tt := range tests {
		expectTypeError(t, tt.input, tt.want)
	}
}

func TestDeclarationRules(t *testing.T) {
	valid := []string{
		"let x = 5;",
		"let x: number = 5;",
		"let s: string;",
		"const c = true; let b: boolean = c;",
	}
	for _, input := range valid {
		if _, err := checkProgram(t, input); err != nil {
			t.Errorf("unexpected type error for %q: %s", input, err)
		}
	}

	expectTypeError(t, `let x: number = "a";`, "cannot initialize")
	expectTypeError(t, "let x;", "cannot infer")
}

func TestDeclarationBindsInferredType(t *testing.T) {
	program, err := checkProgram(t, `let x = 5; x + 1;`)
	if err != nil {
		t.Fatalf("unexpected type error: %s", err)
	}

	stmt := program.Statements[1].(*ast.ExpressionStatement)
	if !types.Equals(stmt.Expression.Type(), types.Number) {
		t.Errorf("resolved type is %s, want number", stmt.Expression.Type())
	}
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	if _, err := checkProgram(t, "if (1 < 2) { 1; }"); err != nil {
		t.Errorf("unexpected type error: %s", err)
	}

	expectTypeError(t, "if (1) { 1; }", "must be boolean")
	expectTypeError(t, `if ("yes") { 1; }`, "must be boolean")
}

func TestBranchScopesDoNotLeak(t *testing.T) {
	expectTypeError(t, "if (true) { let a = 1; } a;", "undefined variable")
}

func TestDirectRecursionResolves(t *testing.T) {
	input := `
fn factorial(n: number) -> number {
	if (n <= 1) { 1; } else { n * factorial(n - 1); }
}
factorial(5);
`
	if _, err := checkProgram(t, input); err != nil {
		t.Errorf("unexpected type error: %s", err)
	}
}

func TestMutualRecursionIsUndefined(t *testing.T) {
	input := `
fn even(n: number) -> boolean {
	return odd(n - 1);
}
fn odd(n: number) -> boolean {
	return even(n - 1);
}
`
	expectTypeError(t, input, "undefined variable")
}

func TestCallRules(t *testing.T) {
	header := "fn add(x: number, y: number) -> number { return x + y; }\n"

	if _, err := checkProgram(t, header+"add(1, 2);"); err != nil {
		t.Errorf("unexpected type error: %s", err)
	}

	expectTypeError(t, header+"add(1);", "expected 2, got 1")
	expectTypeError(t, header+`add(1, "a");`, "argument 2")
	expectTypeError(t, "let n = 5; n(1);", "cannot call")
}

func TestCallResultType(t *testing.T) {
	input := `
fn greet(name: string) -> string { return name; }
let g = greet("hi");
g == "hi";
`
	program, err := checkProgram(t, input)
	if err != nil {
		t.Fatalf("unexpected type error: %s", err)
	}

	stmt := program.Statements[1].(*ast.LetStatement)
	if !types.Equals(stmt.Value.Type(), types.String) {
		t.Errorf("call resolved to %s, want string", stmt.Value.Type())
	}
}

func TestConstCannotBeReassigned(t *testing.T) {
	if _, err := checkProgram(t, "let x = 1; x = 2;"); err != nil {
		t.Errorf("unexpected type error: %s", err)
	}

	expectTypeError(t, "const x = 1; x = 2;", "constant")
	expectTypeError(t, "y = 1;", "undefined variable")
	expectTypeError(t, `let x = 1; x = "a";`, "cannot assign")
}

func TestReturnTypeConformance(t *testing.T) {
	valid := []string{
		"fn f() -> number { return 1; }",
		"fn f() -> void { return; }",
		"fn f() -> string { return \"a\"; }",
	}
	for _, input := range valid {
		if _, err := checkProgram(t, input); err != nil {
			t.Errorf("unexpected type error for %q: %s", input, err)
		}
	}

	expectTypeError(t, "fn f() -> string { return 1; }", "cannot return")
	expectTypeError(t, "fn f() -> number { return; }", "bare return")
	expectTypeError(t, "return 1;", "outside of a function")
}

func TestRegisteredBuiltins(t *testing.T) {
	c := New()
	c.Register("print", &types.Function{
		Parameters: []types.Type{&types.Generic{Name: "T"}},
		Return:     types.Void,
	})
	c.Register("Some", &types.Function{
		Parameters: []types.Type{&types.Generic{Name: "T"}},
		Return:     &types.Option{Inner: &types.Generic{Name: "T"}},
	})
	c.Register("None", &types.Option{Inner: &types.Generic{Name: "T"}})

	input := `
let o: Option<number> = Some(1);
let n: Option<string> = None;
print(o);
print("done");
`
	program := parseProgram(t, input)
	if err := c.Check(program); err != nil {
		t.Fatalf("unexpected type error: %s", err)
	}

	// Placeholders are fixed by the argument, so the call's type is concrete.
	stmt := program.Statements[0].(*ast.LetStatement)
	want := &types.Option{Inner: types.Number}
	if !types.Equals(stmt.Value.Type(), want) {
		t.Errorf("Some(1) resolved to %s, want %s", stmt.Value.Type(), want)
	}
}

func TestBuiltinPlaceholderMismatch(t *testing.T) {
	c := New()
	c.Register("unwrapOr", &types.Function{
		Parameters: []types.Type{
			&types.Option{Inner: &types.Generic{Name: "T"}},
			&types.Generic{Name: "T"},
		},
		Return: &types.Generic{Name: "T"},
	})
	c.Register("Some", &types.Function{
		Parameters: []types.Type{&types.Generic{Name: "T"}},
		Return:     &types.Option{Inner: &types.Generic{Name: "T"}},
	})

	program := parseProgram(t, `unwrapOr(Some(1), "fallback");`)
	err := c.Check(program)
	if err == nil {
		t.Fatalf("expected type error for mismatched placeholder binding")
	}
	if !strings.Contains(err.Msg, "argument 2") {
		t.Errorf("error %q does not name the offending argument", err.Msg)
	}
}

func TestCheckIsRepeatable(t *testing.T) {
	program := parseProgram(t, "fn f(x: number) -> number { return x + 1; } f(1);")
	c := New()

	if err := c.Check(program); err != nil {
		t.Fatalf("first check failed: %s", err)
	}
	if err := c.Check(program); err != nil {
		t.Fatalf("second check failed: %s", err)
	}
}
