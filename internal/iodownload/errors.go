package iodownload

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create dir %s: %w", fn, dir, err),
	}
}

func LockError(path string, err error) error {
	msg := "Another download is running in this directory\n" +
		"Remove <em>%s</em> if it is not true"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LockError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot lock %s: %w", fn, path, err),
	}
}

func CopyError(src, dir string, err error) error {
	msg := "Cannot copy <em>%s</em> into <em>%s</em>"
	vars := []any{src, dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot copy %s to %s: %w", fn, src, dir, err),
	}
}

func ReportError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadReportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}
