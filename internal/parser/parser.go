package parser

import (
	"fmt"
	"strconv"
	"tern/internal/ast"
	"tern/internal/token"
	"tern/internal/types"
)

const (
	_          int = iota
	LOWEST         // entry point
	ASSIGNMENT     // =
	EQUALS         // == or !=
	COMPARISON     // < > <= >=
	SUM            // +
	PRODUCT        // *
	CALL           // myFunction(X)
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:   ASSIGNMENT,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       COMPARISON,
	token.LT_EQ:    COMPARISON,
	token.GT:       COMPARISON,
	token.GT_EQ:    COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
}

// ParseError carries the offending token so callers can point at the exact
// source location.
type ParseError struct {
	Msg   string
	Token token.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%3d:%2d] parse error: %s", e.Token.Line, e.Token.Column, e.Msg)
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser walks a pre-lexed token sequence with a single token of lookahead.
// There is no backtracking; a failed statement is reported and skipped at the
// next statement boundary.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []*ParseError

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token) *Parser {
	p := &Parser{
		tokens: tokens,
		errors: []*ParseError{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.LT_EQ, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.GT_EQ, p.parseInfixExpression)
	p.registerInfix(token.ASSIGN, p.parseAssignExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	}
	// Past the end the EOF token just repeats.
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) addError(tok token.Token, message string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{
		Msg:   fmt.Sprintf(message, args...),
		Token: tok,
	})
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(p.peekToken, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.addError(p.curToken, "unexpected token %s in expression", t)
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) Errors() []*ParseError {
	return p.errors
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		start := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
			p.nextToken()
			continue
		}
		if p.curToken != start && startsStatement(p.curToken.Type) {
			continue
		}
		before := p.curToken
		p.synchronize()
		if p.curToken == before {
			p.nextToken()
		}
	}

	return program
}

// synchronize discards tokens until a statement boundary so that one bad
// statement does not take the rest of the program with it. The discarded
// region has already produced exactly one error. On return the cursor sits
// on the next statement start, on a closing brace, or at EOF.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.SEMICOLON:
			p.nextToken()
			return
		case token.RBRACE:
			return
		}
		p.nextToken()
		if startsStatement(p.curToken.Type) {
			return
		}
	}
}

func startsStatement(t token.TokenType) bool {
	switch t {
	case token.FUNCTION, token.LET, token.CONST, token.IF:
		return true
	}
	return false
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET, token.CONST:
		return p.parseLetStatement()
	case token.FUNCTION:
		return p.parseFunctionStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken, Const: p.curTokenIs(token.CONST)}

	if !p.expectPeek(token.IDENT) {
		return nil
	}

	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.DeclaredType = p.parseTypeAnnotation()
		if stmt.DeclaredType == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}

	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	stmt.Parameters = params

	if !p.expectPeek(token.ARROW) {
		return nil
	}

	p.nextToken()
	stmt.ReturnType = p.parseTypeAnnotation()
	if stmt.ReturnType == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

func (p *Parser) parseFunctionParameters() ([]*ast.FunctionParameter, bool) {
	params := []*ast.FunctionParameter{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		param := &ast.FunctionParameter{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}

		if !p.expectPeek(token.COLON) {
			return nil, false
		}

		p.nextToken()
		param.Type = p.parseTypeAnnotation()
		if param.Type == nil {
			return nil, false
		}

		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}

	return params, true
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	stmt.ThenBranch = p.parseBlockStatement()
	if stmt.ThenBranch == nil {
		return nil
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()

		if !p.expectPeek(token.LBRACE) {
			return nil
		}

		stmt.ElseBranch = p.parseBlockStatement()
		if stmt.ElseBranch == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}

	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		start := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
			p.nextToken()
			continue
		}
		if p.curToken != start && startsStatement(p.curToken.Type) {
			continue
		}
		p.synchronize()
	}

	if p.curTokenIs(token.EOF) {
		p.addError(p.curToken, "expected %s before end of input", token.RBRACE)
		return nil
	}

	return block
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.NumberLiteral{Token: p.curToken}

	// The lexer is permissive about number shapes; malformed literals such
	// as "1.2.3" are rejected here.
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as number", p.curToken.Literal)
		return nil
	}

	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.addError(p.curToken, "invalid assignment target")
		return nil
	}

	expression := &ast.AssignExpression{Token: p.curToken, Name: ident}

	precedence := p.curPrecedence()
	p.nextToken()
	// Assignment is right-associative.
	expression.Value = p.parseExpression(precedence - 1)
	if expression.Value == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	exp.Arguments = args
	return exp
}

func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil, false
	}
	list = append(list, exp)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		exp := p.parseExpression(LOWEST)
		if exp == nil {
			return nil, false
		}
		list = append(list, exp)
	}

	if !p.expectPeek(end) {
		return nil, false
	}

	return list, true
}

// parseTypeAnnotation reads a type written in source, curToken sitting on its
// first token. Generic annotations read a base name and then a bracketed list
// of inner types.
func (p *Parser) parseTypeAnnotation() types.Type {
	if !p.curTokenIs(token.IDENT) {
		p.addError(p.curToken, "expected a type name, got %s instead", p.curToken.Type)
		return nil
	}

	name := p.curToken.Literal

	switch name {
	case "number":
		return types.Number
	case "string":
		return types.String
	case "boolean":
		return types.Boolean
	case "void":
		return types.Void
	case "Option":
		args := p.parseTypeArguments(name, 1)
		if args == nil {
			return nil
		}
		return &types.Option{Inner: args[0]}
	case "Result":
		args := p.parseTypeArguments(name, 2)
		if args == nil {
			return nil
		}
		return &types.Result{Ok: args[0], Err: args[1]}
	default:
		p.addError(p.curToken, "unknown type name %q", name)
		return nil
	}
}

func (p *Parser) parseTypeArguments(base string, count int) []types.Type {
	if !p.expectPeek(token.LT) {
		return nil
	}

	args := []types.Type{}

	p.nextToken()
	arg := p.parseTypeAnnotation()
	if arg == nil {
		return nil
	}
	args = append(args, arg)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseTypeAnnotation()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}

	if !p.expectPeek(token.GT) {
		return nil
	}

	if len(args) != count {
		p.addError(p.curToken, "%s takes %d type argument(s), got %d", base, count, len(args))
		return nil
	}

	return args
}
