package stdlib

import (
	"fmt"
	"tern/internal/object"
	"tern/internal/types"
	"unicode/utf8"
)

func coreEntries() map[string]entry {
	return map[string]entry{
		"print":   {funcPrint(), fnType(types.Void, typeT())},
		"println": {funcPrintLn(), fnType(types.Void, typeT())},
		"len":     {funcLen(), fnType(types.Number, types.String)},
		"typeOf":  {funcTypeOf(), fnType(types.String, typeT())},
	}
}

func funcPrint() *object.Builtin {
	return &object.Builtin{
		Name:  "print",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			fmt.Print(args[0].Inspect())
			return nil
		},
	}
}

func funcPrintLn() *object.Builtin {
	return &object.Builtin{
		Name:  "println",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			fmt.Println(args[0].Inspect())
			return nil
		},
	}
}

func funcLen() *object.Builtin {
	return &object.Builtin{
		Name:  "len",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			s, err := unpackString(args[0], "len", 1)
			if err != nil {
				return err
			}
			return &object.Number{Value: float64(utf8.RuneCountInString(s))}
		},
	}
}

func funcTypeOf() *object.Builtin {
	return &object.Builtin{
		Name:  "typeOf",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			return &object.String{Value: string(args[0].Type())}
		},
	}
}
