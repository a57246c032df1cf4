package stdlib

import (
	"bufio"
	"os"
	"strings"
	"tern/internal/object"
	"tern/internal/types"
)

func ioEntries() map[string]entry {
	resultStr := &types.Result{Ok: types.String, Err: types.String}

	return map[string]entry{
		"readFile":  {funcReadFile(), fnType(resultStr, types.String)},
		"writeFile": {funcWriteFile(), fnType(resultStr, types.String, types.String)},
		"readLine":  {funcReadLine(), fnType(types.String)},
	}
}

func funcReadFile() *object.Builtin {
	return &object.Builtin{
		Name:  "readFile",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			path, oerr := unpackString(args[0], "readFile", 1)
			if oerr != nil {
				return oerr
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return errResult("readFile: %v", err)
			}
			return ok(&object.String{Value: string(data)})
		},
	}
}

func funcWriteFile() *object.Builtin {
	return &object.Builtin{
		Name:  "writeFile",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			path, oerr := unpackString(args[0], "writeFile", 1)
			if oerr != nil {
				return oerr
			}
			content, oerr := unpackString(args[1], "writeFile", 2)
			if oerr != nil {
				return oerr
			}

			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return errResult("writeFile: %v", err)
			}
			return ok(&object.String{Value: path})
		},
	}
}

func funcReadLine() *object.Builtin {
	reader := bufio.NewReader(os.Stdin)
	return &object.Builtin{
		Name:  "readLine",
		Arity: 0,
		Fn: func(args ...object.Object) object.Object {
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return &object.String{Value: ""}
			}
			return &object.String{Value: strings.TrimRight(line, "\r\n")}
		},
	}
}
