// Package stdlib is the standard-library surface: host functions injected
// into the evaluator's global environment, each paired with the static type
// the checker sees for it.
package stdlib

import (
	"fmt"
	"tern/internal/checker"
	"tern/internal/evaluator"
	"tern/internal/object"
	"tern/internal/types"
)

type entry struct {
	value object.Object
	typ   types.Type
}

// Bind installs every builtin into the evaluator and, when a checker is given
// (unchecked runs pass nil), registers the matching signatures.
func Bind(ev *evaluator.Evaluator, ck *checker.Checker) {
	for _, entries := range []map[string]entry{
		coreEntries(),
		optresEntries(),
		stringEntries(),
		mathEntries(),
		jsonEntries(),
		ioEntries(),
		timeEntries(),
		dbEntries(),
	} {
		for name, e := range entries {
			ev.Register(name, e.value)
			if ck != nil {
				ck.Register(name, e.typ)
			}
		}
	}
}

// Signature placeholders used by the polymorphic builtins.
func typeT() *types.Generic { return &types.Generic{Name: "T"} }
func typeE() *types.Generic { return &types.Generic{Name: "E"} }

func fnType(ret types.Type, params ...types.Type) *types.Function {
	return &types.Function{Parameters: params, Return: ret}
}

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

func ok(value object.Object) *object.Result {
	return &object.Result{Ok: true, Value: value}
}

func errResult(format string, a ...interface{}) *object.Result {
	return &object.Result{Ok: false, Value: &object.String{Value: fmt.Sprintf(format, a...)}}
}

func unpackString(arg object.Object, fnName string, pos int) (string, *object.Error) {
	s, ok := arg.(*object.String)
	if !ok {
		return "", newError("argument %d to `%s` must be STRING, got %s", pos, fnName, arg.Type())
	}
	return s.Value, nil
}

func unpackNumber(arg object.Object, fnName string, pos int) (float64, *object.Error) {
	n, ok := arg.(*object.Number)
	if !ok {
		return 0, newError("argument %d to `%s` must be NUMBER, got %s", pos, fnName, arg.Type())
	}
	return n.Value, nil
}
