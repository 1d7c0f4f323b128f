package catalog

import (
	"fmt"
	"runtime"

	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/gnames/gn"
)

// AddressError is returned when host and port cannot form a server URL.
func AddressError(host, port, reason string) error {
	msg := "Cannot use <em>%s:%s</em> as a recipe server address: %s"
	vars := []any{host, port, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerAddressError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad server address %s:%s: %s",
			fn.Name(), host, port, reason),
	}
}

// ServerURIError is returned when a scanned URI has no usable host/port.
func ServerURIError(uri, reason string) error {
	msg := "Cannot read server address from <em>%s</em>: %s"
	vars := []any{uri, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerURIError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad server URI %q: %s",
			fn.Name(), uri, reason),
	}
}

// RecordError is returned for a catalog record that misses required data.
func RecordError(name, reason string) error {
	msg := "Catalog record <em>%s</em> is malformed: %s"
	vars := []any{name, reason}
	return &gn.Error{
		Code: errcode.CatalogRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("malformed catalog record %q: %s", name, reason),
	}
}
