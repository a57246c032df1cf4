package stdlib

import (
	"strings"
	"tern/internal/object"
	"tern/internal/types"
)

func stringEntries() map[string]entry {
	return map[string]entry{
		"trim":       {stringFunc1("trim", strings.TrimSpace), fnType(types.String, types.String)},
		"upper":      {stringFunc1("upper", strings.ToUpper), fnType(types.String, types.String)},
		"lower":      {stringFunc1("lower", strings.ToLower), fnType(types.String, types.String)},
		"contains":   {stringPredicate("contains", strings.Contains), fnType(types.Boolean, types.String, types.String)},
		"startsWith": {stringPredicate("startsWith", strings.HasPrefix), fnType(types.Boolean, types.String, types.String)},
		"endsWith":   {stringPredicate("endsWith", strings.HasSuffix), fnType(types.Boolean, types.String, types.String)},
		"indexOf":    {funcIndexOf(), fnType(types.Number, types.String, types.String)},
		"substr":     {funcSubstr(), fnType(types.String, types.String, types.Number, types.Number)},
		"repeat":     {funcRepeat(), fnType(types.String, types.String, types.Number)},
		"concat":     {funcConcat(), fnType(types.String, types.String, types.String)},
	}
}

func stringFunc1(name string, fn func(string) string) *object.Builtin {
	return &object.Builtin{
		Name:  name,
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			s, err := unpackString(args[0], name, 1)
			if err != nil {
				return err
			}
			return &object.String{Value: fn(s)}
		},
	}
}

func stringPredicate(name string, fn func(string, string) bool) *object.Builtin {
	return &object.Builtin{
		Name:  name,
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			s, err := unpackString(args[0], name, 1)
			if err != nil {
				return err
			}
			sub, err := unpackString(args[1], name, 2)
			if err != nil {
				return err
			}
			if fn(s, sub) {
				return object.TRUE
			}
			return object.FALSE
		},
	}
}

func funcIndexOf() *object.Builtin {
	return &object.Builtin{
		Name:  "indexOf",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			s, err := unpackString(args[0], "indexOf", 1)
			if err != nil {
				return err
			}
			sub, err := unpackString(args[1], "indexOf", 2)
			if err != nil {
				return err
			}
			return &object.Number{Value: float64(strings.Index(s, sub))}
		},
	}
}

func funcSubstr() *object.Builtin {
	return &object.Builtin{
		Name:  "substr",
		Arity: 3,
		Fn: func(args ...object.Object) object.Object {
			s, err := unpackString(args[0], "substr", 1)
			if err != nil {
				return err
			}
			start, err := unpackNumber(args[1], "substr", 2)
			if err != nil {
				return err
			}
			length, err := unpackNumber(args[2], "substr", 3)
			if err != nil {
				return err
			}

			runes := []rune(s)
			from := int(start)
			if from < 0 || from > len(runes) {
				return newError("substr start %d out of range for string of length %d", from, len(runes))
			}
			to := from + int(length)
			if int(length) < 0 || to > len(runes) {
				return newError("substr length %d out of range for string of length %d", int(length), len(runes))
			}
			return &object.String{Value: string(runes[from:to])}
		},
	}
}

func funcRepeat() *object.Builtin {
	return &object.Builtin{
		Name:  "repeat",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			s, err := unpackString(args[0], "repeat", 1)
			if err != nil {
				return err
			}
			count, err := unpackNumber(args[1], "repeat", 2)
			if err != nil {
				return err
			}
			if count < 0 {
				return newError("repeat count must not be negative, got %d", int(count))
			}
			return &object.String{Value: strings.Repeat(s, int(count))}
		},
	}
}

func funcConcat() *object.Builtin {
	return &object.Builtin{
		Name:  "concat",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			a, err := unpackString(args[0], "concat", 1)
			if err != nil {
				return err
			}
			b, err := unpackString(args[1], "concat", 2)
			if err != nil {
				return err
			}
			return &object.String{Value: a + b}
		},
	}
}
