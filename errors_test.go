package memfs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathError_Is(t *testing.T) {
	t.Parallel()

	err := NewPathError("mkdir", "/a/b", ENODIR)

	assert.ErrorIs(t, err, ErrNoDir)
	assert.NotErrorIs(t, err, ErrNoEnt)
	assert.Equal(t, ENODIR, err.Code())
	assert.Equal(t, "mkdir /a/b: ENODIR: not a directory", err.Error())
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		exp  Code
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ""},
		{"sentinel", ErrNotEmpty, ENOTEMPTY},
		{"path error", NewPathError("rename", "/x", EEXISTS), EEXISTS},
		{"wrapped path error", fmt.Errorf("seed: %w", NewPathError("writeFile", "/", EINVALIDPATH)), EINVALIDPATH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.exp, CodeOf(tt.err))
		})
	}
}

func TestErrForCode(t *testing.T) {
	t.Parallel()

	for _, code := range []Code{ENOENT, ENODIR, ENOTEMPTY, EEXISTS, EINVALIDPATH} {
		err := ErrForCode(code)
		assert.Equal(t, code, CodeOf(err))
	}
	assert.Nil(t, ErrForCode("EBOGUS"))
}
