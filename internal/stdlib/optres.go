package stdlib

import (
	"tern/internal/object"
	"tern/internal/types"
)

func optresEntries() map[string]entry {
	optionT := &types.Option{Inner: typeT()}
	resultTE := &types.Result{Ok: typeT(), Err: typeE()}

	return map[string]entry{
		"Some": {funcSome(), fnType(optionT, typeT())},
		"None": {&object.Option{}, optionT},
		"Ok":   {funcOk(), fnType(resultTE, typeT())},
		"Err":  {funcErr(), fnType(resultTE, typeE())},

		"isSome": {funcIsSome(), fnType(types.Boolean, optionT)},
		"isNone": {funcIsNone(), fnType(types.Boolean, optionT)},
		"isOk":   {funcIsOk(), fnType(types.Boolean, resultTE)},
		"isErr":  {funcIsErr(), fnType(types.Boolean, resultTE)},

		// unwrap accepts both Option and Result at runtime, so its static
		// signature stays fully generic; unwrapOr is the typed extractor.
		"unwrap":   {funcUnwrap(), fnType(typeE(), typeT())},
		"unwrapOr": {funcUnwrapOr(), fnType(typeT(), optionT, typeT())},
	}
}

func funcSome() *object.Builtin {
	return &object.Builtin{
		Name:  "Some",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			return &object.Option{Value: args[0], Present: true}
		},
	}
}

func funcOk() *object.Builtin {
	return &object.Builtin{
		Name:  "Ok",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			return &object.Result{Ok: true, Value: args[0]}
		},
	}
}

func funcErr() *object.Builtin {
	return &object.Builtin{
		Name:  "Err",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			return &object.Result{Ok: false, Value: args[0]}
		},
	}
}

func funcIsSome() *object.Builtin {
	return &object.Builtin{
		Name:  "isSome",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			opt, ok := args[0].(*object.Option)
			if !ok {
				return newError("argument 1 to `isSome` must be OPTION, got %s", args[0].Type())
			}
			if opt.Present {
				return object.TRUE
			}
			return object.FALSE
		},
	}
}

func funcIsNone() *object.Builtin {
	return &object.Builtin{
		Name:  "isNone",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			opt, ok := args[0].(*object.Option)
			if !ok {
				return newError("argument 1 to `isNone` must be OPTION, got %s", args[0].Type())
			}
			if opt.Present {
				return object.FALSE
			}
			return object.TRUE
		},
	}
}

func funcIsOk() *object.Builtin {
	return &object.Builtin{
		Name:  "isOk",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			res, ok := args[0].(*object.Result)
			if !ok {
				return newError("argument 1 to `isOk` must be RESULT, got %s", args[0].Type())
			}
			if res.Ok {
				return object.TRUE
			}
			return object.FALSE
		},
	}
}

func funcIsErr() *object.Builtin {
	return &object.Builtin{
		Name:  "isErr",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			res, ok := args[0].(*object.Result)
			if !ok {
				return newError("argument 1 to `isErr` must be RESULT, got %s", args[0].Type())
			}
			if res.Ok {
				return object.FALSE
			}
			return object.TRUE
		},
	}
}

func funcUnwrap() *object.Builtin {
	return &object.Builtin{
		Name:  "unwrap",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			switch arg := args[0].(type) {
			case *object.Option:
				if !arg.Present {
					return newError("unwrap of None")
				}
				return arg.Value
			case *object.Result:
				if !arg.Ok {
					return newError("unwrap of Err(%s)", arg.Value.Inspect())
				}
				return arg.Value
			default:
				return newError("argument 1 to `unwrap` must be OPTION or RESULT, got %s", args[0].Type())
			}
		},
	}
}

func funcUnwrapOr() *object.Builtin {
	return &object.Builtin{
		Name:  "unwrapOr",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			opt, ok := args[0].(*object.Option)
			if !ok {
				return newError("argument 1 to `unwrapOr` must be OPTION, got %s", args[0].Type())
			}
			if opt.Present {
				return opt.Value
			}
			return args[1]
		},
	}
}
