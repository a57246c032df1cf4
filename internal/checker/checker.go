// Package checker walks a parsed program, validates the type rules, and
// annotates every expression node with its resolved type. It fails fast: the
// first violation aborts the whole check.
package checker

import (
	"fmt"
	"tern/internal/ast"
	"tern/internal/token"
	"tern/internal/types"
)

type TypeError struct {
	Msg    string
	Line   int
	Column int
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("[%3d:%2d] type error: %s", e.Line, e.Column, e.Msg)
}

type symbol struct {
	typ     types.Type
	mutable bool
}

// Checker keeps a scope stack of name to type mappings. Entering a function
// body or an if-branch pushes a full copy of the current scope and exiting
// pops it, matching the interpreter's copy-not-chain environments so static
// visibility lines up with runtime visibility.
type Checker struct {
	scopes      []map[string]symbol
	returnStack []types.Type
}

func New() *Checker {
	return &Checker{
		scopes: []map[string]symbol{{}},
	}
}

// Register binds a builtin name in the base scope. Registered names are
// immutable and survive across Check calls.
func (c *Checker) Register(name string, t types.Type) {
	c.scopes[0][name] = symbol{typ: t, mutable: false}
}

// Check validates the program. A per-run scope sits on top of the base scope
// so top-level declarations from one run do not leak into the next.
func (c *Checker) Check(program *ast.Program) *TypeError {
	c.pushScope()
	defer c.popScope()

	return c.checkStatements(program.Statements)
}

// CheckPersistent validates statements directly in the base scope, so
// declarations survive across calls. The REPL uses this to keep one session.
func (c *Checker) CheckPersistent(program *ast.Program) *TypeError {
	return c.checkStatements(program.Statements)
}

func (c *Checker) pushScope() {
	top := c.currentScope()
	next := make(map[string]symbol, len(top))
	for k, v := range top {
		next[k] = v
	}
	c.scopes = append(c.scopes, next)
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) currentScope() map[string]symbol {
	return c.scopes[len(c.scopes)-1]
}

func (c *Checker) define(name string, t types.Type, mutable bool) {
	c.currentScope()[name] = symbol{typ: t, mutable: mutable}
}

func (c *Checker) lookup(name string) (symbol, bool) {
	sym, ok := c.currentScope()[name]
	return sym, ok
}

func (c *Checker) errorf(tok token.Token, format string, args ...interface{}) *TypeError {
	return &TypeError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   tok.Line,
		Column: tok.Column,
	}
}

func (c *Checker) checkStatements(statements []ast.Statement) *TypeError {
	for _, stmt := range statements {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStatement(stmt ast.Statement) *TypeError {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return c.checkLetStatement(s)
	case *ast.FunctionStatement:
		return c.checkFunctionStatement(s)
	case *ast.IfStatement:
		return c.checkIfStatement(s)
	case *ast.ReturnStatement:
		return c.checkReturnStatement(s)
	case *ast.ExpressionStatement:
		_, err := c.checkExpression(s.Expression)
		return err
	case *ast.BlockStatement:
		return c.checkStatements(s.Statements)
	default:
		return c.errorf(token.Token{}, "unhandled statement %T", stmt)
	}
}

func (c *Checker) checkLetStatement(s *ast.LetStatement) *TypeError {
	if s.DeclaredType == nil && s.Value == nil {
		return c.errorf(s.Token, "cannot infer type of %q: no type annotation and no initializer", s.Name.Value)
	}

	bound := s.DeclaredType

	if s.Value != nil {
		valueType, err := c.checkExpression(s.Value)
		if err != nil {
			return err
		}
		if s.DeclaredType != nil {
			if !types.Assignable(s.DeclaredType, valueType) {
				return c.errorf(s.Token, "cannot initialize %q of type %s with value of type %s",
					s.Name.Value, s.DeclaredType, valueType)
			}
		} else {
			bound = valueType
		}
	}

	c.define(s.Name.Value, bound, !s.Const)
	return nil
}

func (c *Checker) checkFunctionStatement(s *ast.FunctionStatement) *TypeError {
	paramTypes := make([]types.Type, len(s.Parameters))
	for i, p := range s.Parameters {
		paramTypes[i] = p.Type
	}
	fnType := &types.Function{Parameters: paramTypes, Return: s.ReturnType}

	// Registered in the enclosing scope before the body is checked so that
	// direct recursion resolves.
	c.define(s.Name.Value, fnType, false)

	c.pushScope()
	defer c.popScope()

	for _, p := range s.Parameters {
		c.define(p.Name.Value, p.Type, true)
	}

	c.returnStack = append(c.returnStack, s.ReturnType)
	defer func() {
		c.returnStack = c.returnStack[:len(c.returnStack)-1]
	}()

	return c.checkStatements(s.Body.Statements)
}

func (c *Checker) checkIfStatement(s *ast.IfStatement) *TypeError {
	condType, err := c.checkExpression(s.Condition)
	if err != nil {
		return err
	}
	if !types.Equals(condType, types.Boolean) {
		return c.errorf(s.Token, "if condition must be boolean, got %s", condType)
	}

	c.pushScope()
	err = c.checkStatements(s.ThenBranch.Statements)
	c.popScope()
	if err != nil {
		return err
	}

	if s.ElseBranch != nil {
		c.pushScope()
		err = c.checkStatements(s.ElseBranch.Statements)
		c.popScope()
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Checker) checkReturnStatement(s *ast.ReturnStatement) *TypeError {
	if len(c.returnStack) == 0 {
		return c.errorf(s.Token, "return outside of a function")
	}
	expected := c.returnStack[len(c.returnStack)-1]

	if s.ReturnValue == nil {
		if !types.Equals(expected, types.Void) {
			return c.errorf(s.Token, "bare return in a function returning %s", expected)
		}
		return nil
	}

	valueType, err := c.checkExpression(s.ReturnValue)
	if err != nil {
		return err
	}
	if !types.Assignable(expected, valueType) {
		return c.errorf(s.Token, "cannot return %s from a function returning %s", valueType, expected)
	}
	return nil
}

func (c *Checker) checkExpression(expr ast.Expression) (types.Type, *TypeError) {
	t, err := c.resolveExpression(expr)
	if err != nil {
		return nil, err
	}
	expr.SetType(t)
	return t, nil
}

func (c *Checker) resolveExpression(expr ast.Expression) (types.Type, *TypeError) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return types.Number, nil
	case *ast.StringLiteral:
		return types.String, nil
	case *ast.BooleanLiteral:
		return types.Boolean, nil
	case *ast.Identifier:
		sym, ok := c.lookup(e.Value)
		if !ok {
			return nil, c.errorf(e.Token, "undefined variable %q", e.Value)
		}
		return sym.typ, nil
	case *ast.InfixExpression:
		return c.checkInfixExpression(e)
	case *ast.AssignExpression:
		return c.checkAssignExpression(e)
	case *ast.CallExpression:
		return c.checkCallExpression(e)
	default:
		return nil, c.errorf(token.Token{}, "unhandled expression %T", expr)
	}
}

func (c *Checker) checkInfixExpression(e *ast.InfixExpression) (types.Type, *TypeError) {
	left, err := c.checkExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.checkExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "+", "-", "*", "/":
		if !types.Equals(left, types.Number) || !types.Equals(right, types.Number) {
			return nil, c.errorf(e.Token, "operator %s is not defined for %s and %s", e.Operator, left, right)
		}
		return types.Number, nil
	case "<", ">", "<=", ">=":
		if !types.Equals(left, types.Number) || !types.Equals(right, types.Number) {
			return nil, c.errorf(e.Token, "operator %s is not defined for %s and %s", e.Operator, left, right)
		}
		return types.Boolean, nil
	case "==", "!=":
		if !types.Assignable(left, right) && !types.Assignable(right, left) {
			return nil, c.errorf(e.Token, "operator %s is not defined for %s and %s", e.Operator, left, right)
		}
		return types.Boolean, nil
	default:
		return nil, c.errorf(e.Token, "unknown operator %s", e.Operator)
	}
}

func (c *Checker) checkAssignExpression(e *ast.AssignExpression) (types.Type, *TypeError) {
	sym, ok := c.lookup(e.Name.Value)
	if !ok {
		return nil, c.errorf(e.Name.Token, "undefined variable %q", e.Name.Value)
	}
	if !sym.mutable {
		return nil, c.errorf(e.Name.Token, "cannot assign to constant %q", e.Name.Value)
	}

	valueType, err := c.checkExpression(e.Value)
	if err != nil {
		return nil, err
	}
	if !types.Assignable(sym.typ, valueType) {
		return nil, c.errorf(e.Token, "cannot assign %s to %q of type %s", valueType, e.Name.Value, sym.typ)
	}

	e.Name.SetType(sym.typ)
	return sym.typ, nil
}

func (c *Checker) checkCallExpression(e *ast.CallExpression) (types.Type, *TypeError) {
	calleeType, err := c.checkExpression(e.Function)
	if err != nil {
		return nil, err
	}

	fnType, ok := calleeType.(*types.Function)
	if !ok {
		return nil, c.errorf(e.Token, "cannot call value of type %s", calleeType)
	}

	if len(e.Arguments) != len(fnType.Parameters) {
		return nil, c.errorf(e.Token, "wrong number of arguments to %s: expected %d, got %d",
			calleeName(e), len(fnType.Parameters), len(e.Arguments))
	}

	// Placeholder parameters in builtin signatures are bound to the first
	// concrete argument type they meet, so the call's type comes out concrete.
	bindings := map[string]types.Type{}

	for i, arg := range e.Arguments {
		argType, err := c.checkExpression(arg)
		if err != nil {
			return nil, err
		}
		paramType := substitute(fnType.Parameters[i], bindings)
		if !bindArgument(paramType, argType, bindings) {
			return nil, c.errorf(e.Token, "argument %d to %s: expected %s, got %s",
				i+1, calleeName(e), paramType, argType)
		}
	}

	return substitute(fnType.Return, bindings), nil
}

func calleeName(e *ast.CallExpression) string {
	if ident, ok := e.Function.(*ast.Identifier); ok {
		return ident.Value
	}
	return "function"
}

// bindArgument matches an argument type against a parameter type, recording
// placeholder bindings as it goes.
func bindArgument(param, arg types.Type, bindings map[string]types.Type) bool {
	if g, ok := param.(*types.Generic); ok && len(g.Constraints) == 0 {
		if bound, seen := bindings[g.Name]; seen {
			return types.Assignable(bound, arg)
		}
		bindings[g.Name] = arg
		return true
	}
	if ag, ok := arg.(*types.Generic); ok && len(ag.Constraints) == 0 {
		return true
	}

	switch param := param.(type) {
	case *types.Option:
		ao, ok := arg.(*types.Option)
		return ok && bindArgument(param.Inner, ao.Inner, bindings)
	case *types.Result:
		ar, ok := arg.(*types.Result)
		return ok && bindArgument(param.Ok, ar.Ok, bindings) && bindArgument(param.Err, ar.Err, bindings)
	case *types.Function:
		af, ok := arg.(*types.Function)
		if !ok || len(param.Parameters) != len(af.Parameters) {
			return false
		}
		for i, p := range param.Parameters {
			if !bindArgument(p, af.Parameters[i], bindings) {
				return false
			}
		}
		return bindArgument(param.Return, af.Return, bindings)
	default:
		return types.Assignable(param, arg)
	}
}

// substitute replaces bound placeholders in t. Unbound placeholders pass
// through unchanged.
func substitute(t types.Type, bindings map[string]types.Type) types.Type {
	if len(bindings) == 0 {
		return t
	}
	switch t := t.(type) {
	case *types.Generic:
		if bound, ok := bindings[t.Name]; ok {
			return bound
		}
		return t
	case *types.Option:
		return &types.Option{Inner: substitute(t.Inner, bindings)}
	case *types.Result:
		return &types.Result{Ok: substitute(t.Ok, bindings), Err: substitute(t.Err, bindings)}
	case *types.Function:
		params := make([]types.Type, len(t.Parameters))
		for i, p := range t.Parameters {
			params[i] = substitute(p, bindings)
		}
		return &types.Function{Parameters: params, Return: substitute(t.Return, bindings)}
	default:
		return t
	}
}
