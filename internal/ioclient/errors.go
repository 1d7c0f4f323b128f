package ioclient

import (
	"fmt"
	"runtime"

	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/gnames/gn"
)

// RequestError is returned when a request to the recipe server fails
// before a response arrives (timeout, refused connection, DNS).
func RequestError(url string, err error) error {
	msg := "Cannot reach <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: GET %s: %w", fn.Name(), url, err),
	}
}

// StatusError is returned when the server answers with a status other
// than 200.
func StatusError(url string, status int, body string) error {
	msg := "Server answered <warn>%d</warn> for <em>%s</em>"
	vars := []any{status, url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: GET %s: status %d: %s",
			fn.Name(), url, status, body),
	}
}

// DecodeError is returned when a response is not the expected JSON.
func DecodeError(url string, err error) error {
	msg := "Cannot read the answer of <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: decode %s: %w", fn.Name(), url, err),
	}
}

// ProbeError carries the cause of a failed reachability probe.
func ProbeError(url string, err error) error {
	msg := "<em>%s</em> is not reachable"
	vars := []any{url}
	return &gn.Error{
		Code: errcode.ProbeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("probe %s: %w", url, err),
	}
}
