package iotaxonomy

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/errcode"
)

func TaxonomyDBError(path string, err error) error {
	msg := "Cannot open taxonomy database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyDBError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open taxonomy %s: %w", fn, path, err),
	}
}

func TaxonomyImportError(path string, err error) error {
	msg := "Cannot import NCBI taxonomy dump <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyImportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot import %s: %w", fn, path, err),
	}
}

func TaxonomyNotFoundError(path string) error {
	msg := "Taxonomy database <em>%s</em> is missing or empty\n" +
		"Run <em>gnmyco taxonomy</em> to create it"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no taxonomy at %s", fn, path),
	}
}
