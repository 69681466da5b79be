package ioinput

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/errcode"
)

func ReadInputError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func InputFormatError(path string, line int, text string) error {
	msg := "Line %d of <em>%s</em> must have two tab-separated fields"
	vars := []any{line, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputFormatError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad line %d in %s: %q",
			fn, line, path, text),
	}
}

func GenomeListError(path string, err error) error {
	msg := "Cannot parse genome list <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenomeListError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad genome list %s: %w", fn, path, err),
	}
}
