/*
Copyright © 2026 The findcoffee Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/gnames/gn"
)

// CoffeeNotFoundError is returned when a coffee is not in the cache.
func CoffeeNotFoundError(name string) error {
	return &gn.Error{
		Code: errcode.CoffeeNotFoundError,
		Msg:  "Coffee <em>%s</em> is not in the cache, try 'findcoffee list'",
		Vars: []any{name},
		Err:  fmt.Errorf("coffee %q not found", name),
	}
}

// SizeNotFoundError is returned when a coffee has no such size.
func SizeNotFoundError(coffee, size string) error {
	return &gn.Error{
		Code: errcode.SizeNotFoundError,
		Msg:  "Coffee <em>%s</em> has no size <em>%s</em>",
		Vars: []any{coffee, size},
		Err:  fmt.Errorf("size %q of coffee %q not found", size, coffee),
	}
}

// MissingSizeError is returned when --remote is used without --size.
func MissingSizeError() error {
	return &gn.Error{
		Code: errcode.SizeNotFoundError,
		Msg:  "Option <em>--remote</em> needs <em>--size</em>",
		Err:  errors.New("remote ingredients need a size"),
	}
}

// EmptyCacheError is returned when browsing a cache that was never
// synced.
func EmptyCacheError() error {
	return &gn.Error{
		Code: errcode.SyncEmptyCacheError,
		Msg: `<warn>Local cache is empty.</warn>
   Run <em>'findcoffee sync --host HOST --port PORT'</em> first.`,
		Err: errors.New("cache is empty"),
	}
}

// OutputFormatError is returned for an unknown --format value.
func OutputFormatError(format string, allowed []string) error {
	return &gn.Error{
		Code: errcode.OutputFormatError,
		Msg:  "Unknown format <em>%s</em>, use one of: %s",
		Vars: []any{format, strings.Join(allowed, ", ")},
		Err:  fmt.Errorf("unknown output format %q", format),
	}
}
