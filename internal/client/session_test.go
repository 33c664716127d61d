package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSessionStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session")
	store := NewFileSessionStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok-1"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileSessionStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("tok-1\n"), 0o600))

	token, err := NewFileSessionStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}
