package ioportal

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/errcode"
)

func CredentialsError(err error) error {
	msg := "Cannot get JGI credentials\n" +
		"Set <em>JGI_USER</em> and <em>JGI_PASSWORD</em> or use <em>--credentials</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CredentialsError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: no credentials: %w", fn, err),
	}
}

func LoginError(user string, err error) error {
	msg := "JGI login failed for user <em>%s</em>"
	vars := []any{user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoginError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: login failed for %s: %w", fn, user, err),
	}
}

func HTTPError(url string, err error) error {
	msg := "Cannot download <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HTTPError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot get %s: %w", fn, url, err),
	}
}
