package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "saves", "slot", "dig.db")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path), "idempotent")

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "the file itself is not created")
}

func TestEnsureParentDir_SkipsSpecialNames(t *testing.T) {
	for _, p := range []string{"", ":memory:", "file:dig?mode=memory", "dig.db"} {
		assert.NoError(t, EnsureParentDir(p), p)
	}
}

func TestEnsureParentDir_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "saves")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "dig.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mkdir")
}
