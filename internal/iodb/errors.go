package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(host string, port int, database, user string, err error) error {
	msg := `Could not connect to PostgreSQL database <em>%s</em>

Check if PostgreSQL is running:
  <em>pg_isready -h %s -p %d</em>
Verify that the database exists:
  <em>psql -h %s -U %s -l</em>`
	vars := []any{database, host, port, host, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

// SchemaError is returned when the schema cannot be migrated.
func SchemaError(err error) error {
	msg := "Cannot create or update the database schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBSchemaError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: schema migration failed: %w", fn, err),
	}
}

// ExportError is returned when catalog rows cannot be stored.
func ExportError(table string, err error) error {
	msg := "Cannot export data to table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: export to %s failed: %w", fn, table, err),
	}
}
