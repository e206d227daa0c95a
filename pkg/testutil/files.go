package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/stretchr/testify/require"
)

// WriteFiles creates each path -> content entry on fsys, making parent
// directories as needed
func WriteFiles(t *testing.T, fsys types.FS, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// ReadFile returns the content of path on fsys, failing the test on error
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
