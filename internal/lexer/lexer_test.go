package lexer

import (
	"tern/internal/token"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5;
const ten = 10.5;

fn add(x: number, y: number) -> number {
	x + y;
}

let result = add(five, ten);
5 < 10 > 5;

if (5 < 10) {
	return true;
} else {
	return false;
}

10 == 10;
10 != 9;
let opt: Option<number> = Some(1);
let r: Result<number, string> = Ok(2);
a => b | c . d [ ] - / *
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.IDENT, "five"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.CONST, "const"},
		{token.IDENT, "ten"},
		{token.ASSIGN, "="},
		{token.NUMBER, "10.5"},
		{token.SEMICOLON, ";"},
		{token.FUNCTION, "fn"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.IDENT, "number"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.COLON, ":"},
		{token.IDENT, "number"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "number"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.LET, "let"},
		{token.IDENT, "result"},
		{token.ASSIGN, "="},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "five"},
		{token.COMMA, ","},
		{token.IDENT, "ten"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.LT, "<"},
		{token.NUMBER, "10"},
		{token.GT, ">"},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.IF, "if"},
		{token.LPAREN, "("},
		{token.NUMBER, "5"},
		{token.LT, "<"},
		{token.NUMBER, "10"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.TRUE, "true"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.FALSE, "false"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.NUMBER, "10"},
		{token.EQ, "=="},
		{token.NUMBER, "10"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "10"},
		{token.NOT_EQ, "!="},
		{token.NUMBER, "9"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"},
		{token.IDENT, "opt"},
		{token.COLON, ":"},
		{token.IDENT, "Option"},
		{token.LT, "<"},
		{token.IDENT, "number"},
		{token.GT, ">"},
		{token.ASSIGN, "="},
		{token.IDENT, "Some"},
		{token.LPAREN, "("},
		{token.NUMBER, "1"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"},
		{token.IDENT, "r"},
		{token.COLON, ":"},
		{token.IDENT, "Result"},
		{token.LT, "<"},
		{token.IDENT, "number"},
		{token.COMMA, ","},
		{token.IDENT, "string"},
		{token.GT, ">"},
		{token.ASSIGN, "="},
		{token.IDENT, "Ok"},
		{token.LPAREN, "("},
		{token.NUMBER, "2"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "a"},
		{token.ROCKET, "=>"},
		{token.IDENT, "b"},
		{token.PIPE, "|"},
		{token.IDENT, "c"},
		{token.PERIOD, "."},
		{token.IDENT, "d"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.MINUS, "-"},
		{token.SLASH, "/"},
		{token.ASTERISK, "*"},
		{token.EOF, ""},
	}

	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(tests), len(tokens))
	}

	for i, tt := range tests {
		tok := tokens[i]

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q '%q', got=%q: '%q'",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	input := "let x = 1;\n  x == 2;"

	tests := []struct {
		expectedType   token.TokenType
		expectedLine   int
		expectedColumn int
	}{
		{token.LET, 1, 1},
		{token.IDENT, 1, 5},
		{token.ASSIGN, 1, 7},
		{token.NUMBER, 1, 9},
		{token.SEMICOLON, 1, 10},
		{token.IDENT, 2, 3},
		{token.EQ, 2, 5},
		{token.NUMBER, 2, 8},
		{token.SEMICOLON, 2, 9},
		{token.EOF, 2, 10},
	}

	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Line != tt.expectedLine || tok.Column != tt.expectedColumn {
			t.Fatalf("tests[%d] - position wrong. expected=%d:%d, got=%d:%d",
				i, tt.expectedLine, tt.expectedColumn, tok.Line, tok.Column)
		}
	}
}

func TestPermissiveNumberLiteral(t *testing.T) {
	// Multiple decimal points survive lexing; the parser rejects them when it
	// converts the literal.
	tokens, err := New("1.2.3;").Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}
	if tokens[0].Type != token.NUMBER || tokens[0].Literal != "1.2.3" {
		t.Fatalf("expected NUMBER '1.2.3', got %q %q", tokens[0].Type, tokens[0].Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := New(`let s = "never closed`).Tokenize()
	if err == nil {
		t.Fatalf("expected lex error for unterminated string")
	}
	if err.Line != 1 || err.Column != 9 {
		t.Fatalf("error position wrong. expected=1:9, got=%d:%d", err.Line, err.Column)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := New("let a = 1 @ 2;").Tokenize()
	if err == nil {
		t.Fatalf("expected lex error for unrecognized character")
	}
	if err.Line != 1 || err.Column != 11 {
		t.Fatalf("error position wrong. expected=1:11, got=%d:%d", err.Line, err.Column)
	}
}

func TestStringContentIsVerbatim(t *testing.T) {
	tokens, err := New(`"a\nb";`).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}
	// No escape processing: the backslash and 'n' come through as-is.
	if tokens[0].Literal != `a\nb` {
		t.Fatalf("string literal wrong. expected=%q, got=%q", `a\nb`, tokens[0].Literal)
	}
}

func TestRelationalCompoundOperators(t *testing.T) {
	tokens, err := New("n <= 1; n >= 2;").Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}

	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.IDENT, "n"},
		{token.LT_EQ, "<="},
		{token.NUMBER, "1"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "n"},
		{token.GT_EQ, ">="},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	for i, e := range expected {
		if tokens[i].Type != e.typ {
			t.Fatalf("tokens[%d] - tokentype wrong. expected=%q, got=%q", i, e.typ, tokens[i].Type)
		}
		if tokens[i].Literal != e.literal {
			t.Fatalf("tokens[%d] - literal wrong. expected=%q, got=%q", i, e.literal, tokens[i].Literal)
		}
	}
}
