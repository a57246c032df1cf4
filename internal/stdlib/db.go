package stdlib

import (
	"database/sql"
	"fmt"
	"sync"
	"tern/internal/object"
	"tern/internal/types"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connection handles are plain numbers on the language side; the actual
// *sql.DB lives here.
var (
	dbMu          sync.Mutex
	dbConnections = map[int64]*sql.DB{}
	dbNextHandle  int64
)

func dbEntries() map[string]entry {
	resultNum := &types.Result{Ok: types.Number, Err: types.String}
	resultStr := &types.Result{Ok: types.String, Err: types.String}

	return map[string]entry{
		"dbOpen":       {funcDbOpen(), fnType(resultNum, types.String, types.String)},
		"dbExec":       {funcDbExec(), fnType(resultNum, types.Number, types.String)},
		"dbQueryValue": {funcDbQueryValue(), fnType(resultStr, types.Number, types.String)},
		"dbClose":      {funcDbClose(), fnType(resultNum, types.Number)},
	}
}

func lookupConnection(handle float64) (*sql.DB, *object.Result) {
	dbMu.Lock()
	defer dbMu.Unlock()
	db, ok := dbConnections[int64(handle)]
	if !ok {
		return nil, errResult("invalid connection handle %d", int64(handle))
	}
	return db, nil
}

func funcDbOpen() *object.Builtin {
	return &object.Builtin{
		Name:  "dbOpen",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			driver, oerr := unpackString(args[0], "dbOpen", 1)
			if oerr != nil {
				return oerr
			}
			dsn, oerr := unpackString(args[1], "dbOpen", 2)
			if oerr != nil {
				return oerr
			}

			db, err := sql.Open(driver, dsn)
			if err != nil {
				return errResult("failed to open connection: %v", err)
			}
			if err := db.Ping(); err != nil {
				db.Close()
				return errResult("failed to ping database: %v", err)
			}

			dbMu.Lock()
			dbNextHandle++
			handle := dbNextHandle
			dbConnections[handle] = db
			dbMu.Unlock()

			return ok(&object.Number{Value: float64(handle)})
		},
	}
}

func funcDbExec() *object.Builtin {
	return &object.Builtin{
		Name:  "dbExec",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			handle, oerr := unpackNumber(args[0], "dbExec", 1)
			if oerr != nil {
				return oerr
			}
			query, oerr := unpackString(args[1], "dbExec", 2)
			if oerr != nil {
				return oerr
			}

			db, fail := lookupConnection(handle)
			if fail != nil {
				return fail
			}

			result, err := db.Exec(query)
			if err != nil {
				return errResult("exec failed: %v", err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				affected = 0
			}
			return ok(&object.Number{Value: float64(affected)})
		},
	}
}

func funcDbQueryValue() *object.Builtin {
	return &object.Builtin{
		Name:  "dbQueryValue",
		Arity: 2,
		Fn: func(args ...object.Object) object.Object {
			handle, oerr := unpackNumber(args[0], "dbQueryValue", 1)
			if oerr != nil {
				return oerr
			}
			query, oerr := unpackString(args[1], "dbQueryValue", 2)
			if oerr != nil {
				return oerr
			}

			db, fail := lookupConnection(handle)
			if fail != nil {
				return fail
			}

			var value interface{}
			if err := db.QueryRow(query).Scan(&value); err != nil {
				return errResult("query failed: %v", err)
			}

			return ok(&object.String{Value: renderScanned(value)})
		},
	}
}

func renderScanned(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func funcDbClose() *object.Builtin {
	return &object.Builtin{
		Name:  "dbClose",
		Arity: 1,
		Fn: func(args ...object.Object) object.Object {
			handle, oerr := unpackNumber(args[0], "dbClose", 1)
			if oerr != nil {
				return oerr
			}

			dbMu.Lock()
			db, exists := dbConnections[int64(handle)]
			if exists {
				delete(dbConnections, int64(handle))
			}
			dbMu.Unlock()

			if !exists {
				return errResult("invalid connection handle %d", int64(handle))
			}
			if err := db.Close(); err != nil {
				return errResult("close failed: %v", err)
			}
			return ok(&object.Number{Value: handle})
		},
	}
}
