package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFindsRustFilesAndSkipsExcluded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte("fn x() {}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "target"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target", "generated.rs"), []byte("fn y() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not rust"), 0o644))

	d := NewDiscoverer([]string{"target/"}, nil)
	files, err := d.Discover([]string{dir})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "lib.rs"), files[0])
}
