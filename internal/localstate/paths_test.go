package localstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDir_Override(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "state")
	t.Setenv(envHome, tmp)

	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, tmp, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDBPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envHome, tmp)

	p, err := DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, dbFilename), p)
}

func TestResolveSQLitePath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envHome, tmp)

	p, err := ResolveSQLitePath("/var/lib/snippets/custom.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/snippets/custom.db", p)

	p, err = ResolveSQLitePath(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", p)

	p, err = ResolveSQLitePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "snippets.db"), p)
}
