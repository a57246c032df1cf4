package stdlib

import (
	"encoding/json"
	"strings"
	"tern/internal/object"
	"tern/internal/types"
)

func jsonEntries() map[string]entry {
	return map[string]entry{
		"jsonGet": {funcJsonGet(), fnType(&types.Option{Inner: types.String}, types.String, types.String)},
		"jsonHas": {funcJsonHas(), fnType(types.Boolean, types.String, types.String)},
	}
}

// jsonLookup walks a dot-separated path through a decoded document.
func jsonLookup(doc string, path string) (interface{}, bool, *object.Error) {
	var root interface{}
	if err := json.Unmarshal([]byte(doc), &root); err != nil {
		return nil, false, newError("invalid JSON document: %v", err)
	}

	current := root
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false, nil
		}
		current, ok = obj[key]
		if !ok {
			return nil, false, nil
		}
	}
	return current, true, nil
}

func renderJSONValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func funcJsonGet() *object.Builtin {
	return &object.Builtin{
		Name:  "jsonGet",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			doc, oerr := unpackString(args[0], "jsonGet", 1)
			if oerr != nil {
				return oerr
			}
			path, oerr := unpackString(args[1], "jsonGet", 2)
			if oerr != nil {
				return oerr
			}

			value, found, oerr := jsonLookup(doc, path)
			if oerr != nil {
				return oerr
			}
			if !found {
				return &object.Option{}
			}
			return &object.Option{
				Value:   &object.String{Value: renderJSONValue(value)},
				Present: true,
			}
		},
	}
}

func funcJsonHas() *object.Builtin {
	return &object.Builtin{
		Name:  "jsonHas",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			doc, oerr := unpackString(args[0], "jsonHas", 1)
			if oerr != nil {
				return oerr
			}
			path, oerr := unpackString(args[1], "jsonHas", 2)
			if oerr != nil {
				return oerr
			}

			_, found, oerr := jsonLookup(doc, path)
			if oerr != nil {
				return oerr
			}
			if found {
				return object.TRUE
			}
			return object.FALSE
		},
	}
}
