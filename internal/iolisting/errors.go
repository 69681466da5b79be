package iolisting

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/errcode"
)

func ListingReadError(path string, err error) error {
	msg := "Cannot read file listing <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ListingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read listing %s: %w", fn, path, err),
	}
}

func ListingWriteError(path string, err error) error {
	msg := "Cannot write file listing <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write listing %s: %w", fn, path, err),
	}
}
