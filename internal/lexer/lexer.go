package lexer

import (
	"fmt"
	"tern/internal/token"
	"unicode"
	"unicode/utf8"
)

// LexError reports the first malformed token encountered; lexing stops there.
type LexError struct {
	Msg    string
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[%3d:%2d] lex error: %s", e.Line, e.Column, e.Msg)
}

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans the whole input in one pass. The returned slice always ends
// with an EOF token unless an error cut the scan short.
func (l *Lexer) Tokenize() ([]token.Token, *LexError) {
	var tokens []token.Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) nextToken() (token.Token, *LexError) {
	l.skipWhitespace()

	line, column := l.line, l.column

	switch l.ch {
	case '=':
		return l.handleCompoundToken2(token.ASSIGN, '=', token.EQ, '>', token.ROCKET), nil
	case '+':
		return l.emit(token.PLUS), nil
	case '-':
		return l.handleCompoundToken(token.MINUS, '>', token.ARROW), nil
	case '*':
		return l.emit(token.ASTERISK), nil
	case '/':
		return l.emit(token.SLASH), nil
	case '<':
		return l.handleCompoundToken(token.LT, '=', token.LT_EQ), nil
	case '>':
		return l.handleCompoundToken(token.GT, '=', token.GT_EQ), nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NOT_EQ, Literal: "!=", Line: line, Column: column}, nil
		}
		return token.Token{}, l.errorf("unexpected character %q", l.ch)
	case ';':
		return l.emit(token.SEMICOLON), nil
	case ':':
		return l.emit(token.COLON), nil
	case ',':
		return l.emit(token.COMMA), nil
	case '.':
		return l.emit(token.PERIOD), nil
	case '|':
		return l.emit(token.PIPE), nil
	case '(':
		return l.emit(token.LPAREN), nil
	case ')':
		return l.emit(token.RPAREN), nil
	case '{':
		return l.emit(token.LBRACE), nil
	case '}':
		return l.emit(token.RBRACE), nil
	case '[':
		return l.emit(token.LBRACKET), nil
	case ']':
		return l.emit(token.RBRACKET), nil
	case '"':
		return l.readString()
	case 0:
		return token.Token{Type: token.EOF, Literal: "", Line: line, Column: column}, nil
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return token.Token{
				Type:    token.LookupIdent(literal),
				Literal: literal,
				Line:    line,
				Column:  column,
			}, nil
		}
		if isDigit(l.ch) {
			return token.Token{
				Type:    token.NUMBER,
				Literal: l.readNumber(),
				Line:    line,
				Column:  column,
			}, nil
		}
		return token.Token{}, l.errorf("unexpected character %q", l.ch)
	}
}

func (l *Lexer) emit(t token.TokenType) token.Token {
	tok := token.Token{Type: t, Literal: string(l.ch), Line: l.line, Column: l.column}
	l.readChar()
	return tok
}

func (l *Lexer) handleCompoundToken(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
) token.Token {
	line, column := l.line, l.column
	if l.peekChar() == ch1 {
		first := l.ch
		l.readChar()
		literal := string(first) + string(l.ch)
		l.readChar()
		return token.Token{Type: t1, Literal: literal, Line: line, Column: column}
	}
	return l.emit(t)
}

func (l *Lexer) handleCompoundToken2(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
	ch2 rune,
	t2 token.TokenType,
) token.Token {
	line, column := l.line, l.column
	peek := l.peekChar()
	if peek == ch1 || peek == ch2 {
		first := l.ch
		l.readChar()
		literal := string(first) + string(l.ch)
		typ := t1
		if peek == ch2 {
			typ = t2
		}
		l.readChar()
		return token.Token{Type: typ, Literal: literal, Line: line, Column: column}
	}
	return l.emit(t)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions and the
// line/column counters.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber consumes a maximal run of digits and periods. A literal like
// "1.2.3" is accepted here and rejected later by the parser's conversion.
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString consumes a double-quoted string. The content is taken verbatim;
// there is no escape-sequence processing.
func (l *Lexer) readString() (token.Token, *LexError) {
	line, column := l.line, l.column
	l.readChar() // consume the opening "
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 {
			return token.Token{}, &LexError{Msg: "unterminated string", Line: line, Column: column}
		}
		l.readChar()
	}
	literal := l.input[start:l.position]
	l.readChar() // consume the closing "
	return token.Token{Type: token.STRING, Literal: literal, Line: line, Column: column}, nil
}

func (l *Lexer) errorf(format string, args ...interface{}) *LexError {
	return &LexError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   l.line,
		Column: l.column,
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}
