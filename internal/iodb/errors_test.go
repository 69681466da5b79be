package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	assert := assert.New(t)
	cause := errors.New("boom")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		vars int
	}{
		{"connection", ConnectionError("localhost", 5432, "db", "me", cause),
			errcode.DBConnectionError, 5},
		{"schema", SchemaError(cause), errcode.DBSchemaError, 0},
		{"export", ExportError("projects", cause), errcode.DBExportError, 1},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(v.code, gnErr.Code, v.msg)
		assert.Len(gnErr.Vars, v.vars, v.msg)
		assert.ErrorIs(gnErr.Err, cause, v.msg)
	}
}
