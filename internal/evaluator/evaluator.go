// Package evaluator walks the AST and produces runtime values. It keeps a
// stack of environments: block entry pushes a full copy of the current one,
// block exit pops it, so bindings never leak outward.
package evaluator

import (
	"fmt"
	"log/slog"
	"tern/internal/ast"
	"tern/internal/object"
	"tern/internal/token"
)

type RuntimeError struct {
	Msg    string
	Line   int
	Column int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[%3d:%2d] runtime error: %s", e.Line, e.Column, e.Msg)
}

type Evaluator struct {
	envStack []*object.Environment
}

func New() *Evaluator {
	return &Evaluator{
		envStack: []*object.Environment{object.NewEnvironment()},
	}
}

// Register pre-populates the global environment with a named value. This is
// how the standard library injects its builtins before Interpret runs.
func (e *Evaluator) Register(name string, val object.Object) {
	e.envStack[0].Define(name, val, false)
}

// Interpret evaluates the program's statements in order. Evaluation happens
// in a per-run copy of the global environment, so repeated runs start from
// the same registered builtins. A runtime failure stops the run and is
// returned; it never panics the host.
func (e *Evaluator) Interpret(program *ast.Program) (object.Object, *RuntimeError) {
	e.pushEnv(e.envStack[0].Copy())
	defer e.popEnv()

	result := e.evalStatements(program.Statements)

	if err, ok := result.(*object.Error); ok {
		slog.Debug("run aborted", slog.String("error", err.Message))
		return nil, &RuntimeError{Msg: err.Message, Line: err.Line, Column: err.Column}
	}
	if rv, ok := result.(*object.ReturnValue); ok {
		result = rv.Value
	}
	return result, nil
}

// InterpretPersistent evaluates directly in the global environment, so
// top-level bindings survive across calls. The REPL uses this to keep one
// session.
func (e *Evaluator) InterpretPersistent(program *ast.Program) (object.Object, *RuntimeError) {
	result := e.evalStatements(program.Statements)

	if err, ok := result.(*object.Error); ok {
		return nil, &RuntimeError{Msg: err.Message, Line: err.Line, Column: err.Column}
	}
	if rv, ok := result.(*object.ReturnValue); ok {
		result = rv.Value
	}
	return result, nil
}

func (e *Evaluator) CurrentEnv() *object.Environment {
	return e.envStack[len(e.envStack)-1]
}

func (e *Evaluator) pushEnv(env *object.Environment) {
	e.envStack = append(e.envStack, env)
}

func (e *Evaluator) popEnv() {
	e.envStack = e.envStack[:len(e.envStack)-1]
}

// evalStatements runs a statement sequence and yields the value of the last
// statement that produced one. An error or an explicit return short-circuits
// the rest of the sequence.
func (e *Evaluator) evalStatements(statements []ast.Statement) object.Object {
	var result object.Object

	for _, stmt := range statements {
		result = e.evalStatement(stmt)

		switch result.(type) {
		case *object.Error, *object.ReturnValue:
			return result
		}
	}

	return result
}

func (e *Evaluator) evalStatement(stmt ast.Statement) object.Object {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return e.evalLetStatement(s)
	case *ast.FunctionStatement:
		return e.evalFunctionStatement(s)
	case *ast.IfStatement:
		return e.evalIfStatement(s)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(s)
	case *ast.ExpressionStatement:
		return e.evalExpression(s.Expression)
	case *ast.BlockStatement:
		return e.evalBlock(s)
	default:
		return newError(token.Token{}, "unhandled statement %T", stmt)
	}
}

func (e *Evaluator) evalLetStatement(s *ast.LetStatement) object.Object {
	var val object.Object = object.UNINITIALIZED

	if s.Value != nil {
		val = e.evalExpression(s.Value)
		if isError(val) {
			return val
		}
	}

	e.CurrentEnv().Define(s.Name.Value, val, !s.Const)
	return nil
}

func (e *Evaluator) evalFunctionStatement(s *ast.FunctionStatement) object.Object {
	fn := &object.Function{Decl: s}

	// The name is bound before the snapshot is taken, so the snapshot
	// contains the function itself and direct recursion resolves.
	e.CurrentEnv().Define(s.Name.Value, fn, false)
	fn.Env = e.CurrentEnv().Copy()

	return nil
}

func (e *Evaluator) evalIfStatement(s *ast.IfStatement) object.Object {
	condition := e.evalExpression(s.Condition)
	if isError(condition) {
		return condition
	}

	if isTruthy(condition) {
		return e.evalBlock(s.ThenBranch)
	}
	if s.ElseBranch != nil {
		return e.evalBlock(s.ElseBranch)
	}
	return nil
}

func (e *Evaluator) evalBlock(block *ast.BlockStatement) object.Object {
	e.pushEnv(e.CurrentEnv().Copy())
	defer e.popEnv()

	return e.evalStatements(block.Statements)
}

func (e *Evaluator) evalReturnStatement(s *ast.ReturnStatement) object.Object {
	if s.ReturnValue == nil {
		return &object.ReturnValue{Value: nil}
	}

	val := e.evalExpression(s.ReturnValue)
	if isError(val) {
		return val
	}
	return &object.ReturnValue{Value: val}
}

func (e *Evaluator) evalExpression(expr ast.Expression) object.Object {
	switch ex := expr.(type) {
	case *ast.NumberLiteral:
		return &object.Number{Value: ex.Value}
	case *ast.StringLiteral:
		return &object.String{Value: ex.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(ex.Value)
	case *ast.Identifier:
		return e.evalIdentifier(ex)
	case *ast.InfixExpression:
		return e.evalInfixExpression(ex)
	case *ast.AssignExpression:
		return e.evalAssignExpression(ex)
	case *ast.CallExpression:
		return e.evalCallExpression(ex)
	default:
		return newError(token.Token{}, "unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(ident *ast.Identifier) object.Object {
	val, ok := e.CurrentEnv().Get(ident.Value)
	if !ok {
		return newError(ident.Token, "undefined variable %q", ident.Value)
	}
	if val == object.UNINITIALIZED {
		return newError(ident.Token, "variable %q read before initialization", ident.Value)
	}
	return val
}

func (e *Evaluator) evalInfixExpression(ex *ast.InfixExpression) object.Object {
	left := e.evalExpression(ex.Left)
	if isError(left) {
		return left
	}
	right := e.evalExpression(ex.Right)
	if isError(right) {
		return right
	}

	switch ex.Operator {
	case "==":
		return nativeBoolToBooleanObject(object.Equals(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!object.Equals(left, right))
	}

	ln, lok := left.(*object.Number)
	rn, rok := right.(*object.Number)
	if !lok || !rok {
		return newError(ex.Token, "operator %s is not defined for %s and %s",
			ex.Operator, objectType(left), objectType(right))
	}

	switch ex.Operator {
	case "+":
		return &object.Number{Value: ln.Value + rn.Value}
	case "-":
		return &object.Number{Value: ln.Value - rn.Value}
	case "*":
		return &object.Number{Value: ln.Value * rn.Value}
	case "/":
		if rn.Value == 0 {
			return newError(ex.Token, "division by zero")
		}
		return &object.Number{Value: ln.Value / rn.Value}
	case "<":
		return nativeBoolToBooleanObject(ln.Value < rn.Value)
	case ">":
		return nativeBoolToBooleanObject(ln.Value > rn.Value)
	case "<=":
		return nativeBoolToBooleanObject(ln.Value <= rn.Value)
	case ">=":
		return nativeBoolToBooleanObject(ln.Value >= rn.Value)
	default:
		return newError(ex.Token, "unknown operator %s", ex.Operator)
	}
}

func (e *Evaluator) evalAssignExpression(ex *ast.AssignExpression) object.Object {
	val := e.evalExpression(ex.Value)
	if isError(val) {
		return val
	}

	if _, err := e.CurrentEnv().Assign(ex.Name.Value, val); err != nil {
		return newError(ex.Name.Token, "%s", err)
	}
	return val
}

func (e *Evaluator) evalCallExpression(ex *ast.CallExpression) object.Object {
	callee := e.evalExpression(ex.Function)
	if isError(callee) {
		return callee
	}

	args := make([]object.Object, 0, len(ex.Arguments))
	for _, argExpr := range ex.Arguments {
		arg := e.evalExpression(argExpr)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	return e.applyFunction(ex.Token, callee, args)
}

func (e *Evaluator) applyFunction(tok token.Token, callee object.Object, args []object.Object) object.Object {
	switch fn := callee.(type) {
	case *object.Function:
		if len(args) != len(fn.Decl.Parameters) {
			return newError(tok, "wrong number of arguments to %s: expected %d, got %d",
				fn.Decl.Name.Value, len(fn.Decl.Parameters), len(args))
		}

		slog.Debug("applying function",
			slog.String("name", fn.Decl.Name.Value),
			slog.Int("args", len(args)))

		// The call environment is seeded from the closure snapshot, never
		// from the caller's scope.
		callEnv := fn.Env.Copy()
		for i, param := range fn.Decl.Parameters {
			callEnv.Define(param.Name.Value, args[i], true)
		}

		e.pushEnv(callEnv)
		result := e.evalStatements(fn.Decl.Body.Statements)
		e.popEnv()

		return unwrapCallResult(result)

	case *object.Builtin:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return newError(tok, "wrong number of arguments to %s: expected %d, got %d",
				fn.Name, fn.Arity, len(args))
		}
		result := fn.Fn(args...)
		if err, ok := result.(*object.Error); ok && err.Line == 0 {
			err.Line = tok.Line
			err.Column = tok.Column
		}
		return result

	default:
		return newError(tok, "cannot call value of type %s", objectType(callee))
	}
}

// objectType tolerates the nil result of a void builtin call.
func objectType(obj object.Object) object.ObjectType {
	if obj == nil {
		return "VOID"
	}
	return obj.Type()
}

// unwrapCallResult turns the body's evaluation into the call's value: explicit
// returns are unwrapped, errors pass through, and a body that produced no
// value yields a numeric zero.
func unwrapCallResult(result object.Object) object.Object {
	if isError(result) {
		return result
	}
	if rv, ok := result.(*object.ReturnValue); ok {
		result = rv.Value
	}
	if result == nil {
		return &object.Number{Value: 0}
	}
	return result
}

func isTruthy(obj object.Object) bool {
	switch obj := obj.(type) {
	case *object.Boolean:
		return obj.Value
	case *object.Number:
		return obj.Value != 0
	case nil:
		return false
	default:
		return true
	}
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return object.TRUE
	}
	return object.FALSE
}

func newError(tok token.Token, format string, a ...interface{}) *object.Error {
	return &object.Error{
		Message: fmt.Sprintf(format, a...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}
