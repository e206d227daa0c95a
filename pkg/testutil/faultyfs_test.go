package testutil_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/repatch/pkg/filesystem"
	"github.com/arthur-debert/repatch/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaultyFS(t *testing.T) {
	inner := filesystem.NewMemory()
	testutil.WriteFiles(t, inner, map[string]string{
		"/p/a.txt": "a",
		"/p/b.txt": "b",
	})

	boom := errors.New("boom")
	fsys := testutil.NewFaultyFS(inner).
		FailRead("/p/a.txt", fs.ErrPermission).
		FailWrite("/p/b.txt", boom)

	_, err := fsys.ReadFile("/p/a.txt")
	assert.ErrorIs(t, err, fs.ErrPermission)

	assert.Equal(t, "b", testutil.ReadFile(t, fsys, "/p/b.txt"))
	assert.ErrorIs(t, fsys.WriteFile("/p/b.txt", []byte("x"), 0644), boom)
	assert.Equal(t, "b", testutil.ReadFile(t, inner, "/p/b.txt"))

	require.NoError(t, fsys.WriteFile("/p/a.txt", []byte("aa"), 0644))

	assert.Equal(t, 1, fsys.Reads("/p/a.txt"))
	assert.Equal(t, 1, fsys.Reads("/p/b.txt"))
	assert.Equal(t, 1, fsys.Writes("/p//b.txt"))
	assert.Equal(t, 1, fsys.Writes("/p/a.txt"))
}
