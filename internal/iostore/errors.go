package iostore

import (
	"fmt"
	"runtime"

	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError is returned when the cache cannot be opened.
func ConnectionError(backend, target string, err error) error {
	msg := "Cannot open <em>%s</em> cache at <em>%s</em>"
	vars := []any{backend, target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s cache %s: %w",
			fn.Name(), backend, target, err),
	}
}

// NotConnectedError is returned when the store is used before Connect.
func NotConnectedError() error {
	msg := "Cache is not opened"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: store is not connected", fn.Name()),
	}
}

// UnknownBackendError is returned for a cache backend other than sqlite
// or postgres.
func UnknownBackendError(backend string) error {
	msg := "Unknown cache backend <em>%s</em>, use sqlite or postgres"
	vars := []any{backend}
	return &gn.Error{
		Code: errcode.StoreUnknownBackendError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown cache backend %q", backend),
	}
}

// MigrateError is returned when the cache schema cannot be created.
func MigrateError(err error) error {
	msg := "Cannot create cache tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: automigrate failed: %w", fn.Name(), err),
	}
}

// QueryError is returned when reading from the cache fails.
func QueryError(what string, err error) error {
	msg := "Cannot read %s from cache"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query %s: %w", fn.Name(), what, err),
	}
}

// InsertError is returned when a row cannot be inserted.
func InsertError(table string, err error) error {
	msg := "Cannot insert into <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert into %s: %w", fn.Name(), table, err),
	}
}

// DeleteError is returned when a table cannot be emptied.
func DeleteError(table string, err error) error {
	msg := "Cannot empty <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreDeleteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: delete from %s: %w", fn.Name(), table, err),
	}
}

// RebuildError is returned when the rebuild transaction is rolled back.
func RebuildError(err error) error {
	msg := "Cache rebuild failed, previous cache is kept"
	return &gn.Error{
		Code: errcode.StoreRebuildError,
		Msg:  msg,
		Err:  fmt.Errorf("rebuild rolled back: %w", err),
	}
}
