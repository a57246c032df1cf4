package stdlib

import (
	"math"
	"math/rand"
	"tern/internal/object"
	"tern/internal/types"
)

func mathEntries() map[string]entry {
	return map[string]entry{
		"abs":    {mathFunc1("abs", math.Abs), fnType(types.Number, types.Number)},
		"floor":  {mathFunc1("floor", math.Floor), fnType(types.Number, types.Number)},
		"ceil":   {mathFunc1("ceil", math.Ceil), fnType(types.Number, types.Number)},
		"sqrt":   {funcSqrt(), fnType(types.Number, types.Number)},
		"pow":    {mathFunc2("pow", math.Pow), fnType(types.Number, types.Number, types.Number)},
		"min":    {mathFunc2("min", math.Min), fnType(types.Number, types.Number, types.Number)},
		"max":    {mathFunc2("max", math.Max), fnType(types.Number, types.Number, types.Number)},
		"mod":    {funcMod(), fnType(types.Number, types.Number, types.Number)},
		"random": {funcRandom(), fnType(types.Number)},
	}
}

func mathFunc1(name string, fn func(float64) float64) *object.Builtin {
	return &object.Builtin{
		Name:  name,
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			n, err := unpackNumber(args[0], name, 1)
			if err != nil {
				return err
			}
			return &object.Number{Value: fn(n)}
		},
	}
}

func mathFunc2(name string, fn func(float64, float64) float64) *object.Builtin {
	return &object.Builtin{
		Name:  name,
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			a, err := unpackNumber(args[0], name, 1)
			if err != nil {
				return err
			}
			b, err := unpackNumber(args[1], name, 2)
			if err != nil {
				return err
			}
			return &object.Number{Value: fn(a, b)}
		},
	}
}

func funcSqrt() *object.Builtin {
	return &object.Builtin{
		Name:  "sqrt",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			n, err := unpackNumber(args[0], "sqrt", 1)
			if err != nil {
				return err
			}
			if n < 0 {
				return newError("sqrt of negative number %v", n)
			}
			return &object.Number{Value: math.Sqrt(n)}
		},
	}
}

func funcMod() *object.Builtin {
	return &object.Builtin{
		Name:  "mod",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			a, err := unpackNumber(args[0], "mod", 1)
			if err != nil {
				return err
			}
			b, err := unpackNumber(args[1], "mod", 2)
			if err != nil {
				return err
			}
			if b == 0 {
				return newError("division by zero")
			}
			return &object.Number{Value: math.Mod(a, b)}
		},
	}
}

func funcRandom() *object.Builtin {
	return &object.Builtin{
		Name:  "random",
		Arity: 0,
		Fn: func(args ...object.Object) object.Object {
			return &object.Number{Value: rand.Float64()}
		},
	}
}
