package stdlib

import (
	"time"
	"tern/internal/object"
	"tern/internal/types"
)

func timeEntries() map[string]entry {
	return map[string]entry{
		"now":        {funcNow(), fnType(types.Number)},
		"sleep":      {funcSleep(), fnType(types.Void, types.Number)},
		"formatTime": {funcFormatTime(), fnType(types.String, types.Number, types.String)},
	}
}

func funcNow() *object.Builtin {
	return &object.Builtin{
		Name:  "now",
		Arity: 0,
		Fn: func(args ...object.Object) object.Object {
			return &object.Number{Value: float64(time.Now().UnixMilli())}
		},
	}
}

func funcSleep() *object.Builtin {
	return &object.Builtin{
		Name:  "sleep",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			ms, err := unpackNumber(args[0], "sleep", 1)
			if err != nil {
				return err
			}
			if ms < 0 {
				return newError("sleep duration must not be negative, got %v", ms)
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return nil
		},
	}
}

func funcFormatTime() *object.Builtin {
	return &object.Builtin{
		Name:  "formatTime",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			millis, oerr := unpackNumber(args[0], "formatTime", 1)
			if oerr != nil {
				return oerr
			}
			layout, oerr := unpackString(args[1], "formatTime", 2)
			if oerr != nil {
				return oerr
			}
			return &object.String{Value: time.UnixMilli(int64(millis)).UTC().Format(layout)}
		},
	}
}
