package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	data := []byte{0xde, 0xad, 0xbe, 0xef}
	ref, err := store.Save(ctx, "photo.png", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "posts/"))
	assert.True(t, strings.HasSuffix(ref, ".png"), "original extension is kept")

	got, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, data, got, "bytes are stored untouched")

	require.NoError(t, store.Remove(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, ref))
	assert.True(t, os.IsNotExist(err))

	// Removing a missing file is a no-op.
	require.NoError(t, store.Remove(ctx, ref))
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Save(ctx, "same.jpg", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "same.jpg", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "uploads never collide on the client filename")
}
