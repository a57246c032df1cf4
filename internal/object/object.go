package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"tern/internal/ast"
)

const (
	NUMBER_OBJ  = "NUMBER"
	STRING_OBJ  = "STRING"
	BOOLEAN_OBJ = "BOOLEAN"

	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"

	OPTION_OBJ = "OPTION"
	RESULT_OBJ = "RESULT"

	ERROR_OBJ         = "ERROR"
	RETURN_VALUE_OBJ  = "RETURN_VALUE"
	UNINITIALIZED_OBJ = "UNINITIALIZED"
)

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}

	// UNINITIALIZED backs a declared-but-unassigned variable. Reading it is a
	// runtime error; assigning over it is fine.
	UNINITIALIZED = &Uninitialized{}
)

type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return strconv.FormatFloat(n.Value, 'f', -1, 64) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

// Function is a closure: the declaration node plus a by-value snapshot of the
// environment visible at declaration time.
type Function struct {
	Decl *ast.FunctionStatement
	Env  *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	var out bytes.Buffer

	params := []string{}
	for _, p := range f.Decl.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("fn ")
	out.WriteString(f.Decl.Name.Value)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") -> ")
	out.WriteString(f.Decl.ReturnType.String())

	return out.String()
}

// BuiltinFunction is a host-provided callable. Arity is validated by the
// evaluator before the call.
type BuiltinFunction func(args ...Object) Object

type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function " + b.Name }

// Option wraps a value or holds none.
type Option struct {
	Value   Object
	Present bool
}

func (o *Option) Type() ObjectType { return OPTION_OBJ }
func (o *Option) Inspect() string {
	if !o.Present {
		return "None"
	}
	return "Some(" + o.Value.Inspect() + ")"
}

// Result carries an ok/err flag plus the payload for whichever side is set.
type Result struct {
	Ok    bool
	Value Object
}

func (r *Result) Type() ObjectType { return RESULT_OBJ }
func (r *Result) Inspect() string {
	if r.Ok {
		return "Ok(" + r.Value.Inspect() + ")"
	}
	return "Err(" + r.Value.Inspect() + ")"
}

// Error is a runtime failure produced during evaluation. Builtins return it
// with zero position; the evaluator stamps the call site before it surfaces.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "runtime error: " + e.Message }

// ReturnValue wraps the operand of an explicit return so it can unwind the
// enclosing statement sequence.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

type Uninitialized struct{}

func (u *Uninitialized) Type() ObjectType { return UNINITIALIZED_OBJ }
func (u *Uninitialized) Inspect() string  { return "uninitialized" }

// Equals is value equality for the runtime comparison operators.
// Cross-variant comparisons are always unequal.
func Equals(a, b Object) bool {
	switch a := a.(type) {
	case *Number:
		bn, ok := b.(*Number)
		return ok && a.Value == bn.Value
	case *String:
		bs, ok := b.(*String)
		return ok && a.Value == bs.Value
	case *Boolean:
		bb, ok := b.(*Boolean)
		return ok && a.Value == bb.Value
	case *Option:
		bo, ok := b.(*Option)
		if !ok || a.Present != bo.Present {
			return false
		}
		return !a.Present || Equals(a.Value, bo.Value)
	case *Result:
		br, ok := b.(*Result)
		return ok && a.Ok == br.Ok && Equals(a.Value, br.Value)
	default:
		return a == b
	}
}
