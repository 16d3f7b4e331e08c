package store

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("fetch", nil))

	err := Wrap("fetch", fs.ErrPermission)
	require.Error(t, err)
	assert.Equal(t, "store fetch: permission denied", err.Error())
	assert.ErrorIs(t, err, fs.ErrPermission)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "fetch", se.Op)
}
