package iosync

import (
	"fmt"
	"runtime"

	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/gnames/gn"
)

// UnreachableError is returned when the health probe of the recipe
// server fails. The cache is not touched.
func UnreachableError(host, port string, err error) error {
	msg := "Recipe server <em>%s:%s</em> is not reachable, check the address and try again"
	vars := []any{host, port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SyncUnreachableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: server %s:%s unreachable: %w",
			fn.Name(), host, port, err),
	}
}

// FetchError is returned when the catalog cannot be downloaded after a
// successful probe. The cache is not touched.
func FetchError(host, port string, err error) error {
	msg := "Cannot download recipes from <em>%s:%s</em>, local cache is kept"
	vars := []any{host, port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SyncFetchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: fetch catalog from %s:%s: %w",
			fn.Name(), host, port, err),
	}
}

// CancelledError is returned when a sync is interrupted.
func CancelledError(err error) error {
	msg := "Sync was cancelled"
	return &gn.Error{
		Code: errcode.SyncCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("sync cancelled: %w", err),
	}
}
