package token

type TokenType string

const (
	EOF = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // factorial, x, y, ...
	NUMBER = "NUMBER" // 1343456, 3.14
	STRING = "STRING" // "foobar"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	LT    = "<"
	GT    = ">"
	LT_EQ = "<="
	GT_EQ = ">="

	EQ     = "=="
	NOT_EQ = "!="

	ARROW  = "->"
	ROCKET = "=>"

	// Delimiters
	PERIOD    = "."
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	PIPE      = "|"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	LET      = "LET"
	CONST    = "CONST"
	FUNCTION = "FUNCTION"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	IF       = "IF"
	ELSE     = "ELSE"
	RETURN   = "RETURN"

	// Reserved for future language revisions; lexed as keywords so they can
	// never be shadowed by user identifiers.
	MATCH  = "MATCH"
	TYPE   = "TYPE"
	ENUM   = "ENUM"
	STRUCT = "STRUCT"
	IMPL   = "IMPL"
	ASYNC  = "ASYNC"
	AWAIT  = "AWAIT"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	// constants
	"true":  TRUE,
	"false": FALSE,

	// declarations
	"let":   LET,
	"const": CONST,
	"fn":    FUNCTION,

	// flow control
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,

	// reserved
	"match":  MATCH,
	"type":   TYPE,
	"enum":   ENUM,
	"struct": STRUCT,
	"impl":   IMPL,
	"async":  ASYNC,
	"await":  AWAIT,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
