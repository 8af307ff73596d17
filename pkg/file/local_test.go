package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/file"
)

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("creates base directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "exports")
		_, err := file.NewLocalStorage(dir, "/exports")
		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("empty base directory", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStorage("", "/exports")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestLocalStorage_Put(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store, err := file.NewLocalStorage(dir, "/exports/")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("writes file", func(t *testing.T) {
		t.Parallel()
		obj, err := store.Put(ctx, "ws/jane-lee.html", "text/html; charset=utf-8", []byte("<p>hi</p>"))
		require.NoError(t, err)
		assert.Equal(t, "ws/jane-lee.html", obj.Key)
		assert.Equal(t, int64(9), obj.Size)
		assert.Equal(t, "text/html; charset=utf-8", obj.ContentType)
		assert.Equal(t, filepath.Join(dir, "ws", "jane-lee.html"), obj.Location)

		data, err := os.ReadFile(obj.Location)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(data))

		info, err := os.Stat(obj.Location)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	})

	t.Run("replaces file", func(t *testing.T) {
		t.Parallel()
		_, err := store.Put(ctx, "again.txt", "", []byte("one"))
		require.NoError(t, err)
		obj, err := store.Put(ctx, "again.txt", "", []byte("two"))
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", obj.ContentType)

		data, err := os.ReadFile(obj.Location)
		require.NoError(t, err)
		assert.Equal(t, "two", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".again.txt.")
		}
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()
		_, err := store.Put(ctx, "../escape.png", "image/png", []byte("x"))
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("rejects root", func(t *testing.T) {
		t.Parallel()
		_, err := store.Put(ctx, ".", "image/png", []byte("x"))
		assert.ErrorIs(t, err, file.ErrIsDirectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Put(cctx, "never.png", "image/png", []byte("x"))
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, store.Exists(ctx, "never.png"))
	})
}

func TestLocalStorage_DeleteExists(t *testing.T) {
	t.Parallel()
	store, err := file.NewLocalStorage(t.TempDir(), "/exports")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Put(ctx, "sig/out.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.True(t, store.Exists(ctx, "sig/out.png"))
	assert.False(t, store.Exists(ctx, "sig"))

	assert.ErrorIs(t, store.Delete(ctx, "sig"), file.ErrIsDirectory)
	require.NoError(t, store.Delete(ctx, "sig/out.png"))
	assert.False(t, store.Exists(ctx, "sig/out.png"))
	assert.ErrorIs(t, store.Delete(ctx, "sig/out.png"), file.ErrFileNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "../../etc/passwd"), file.ErrInvalidPath)
}

func TestLocalStorage_URL(t *testing.T) {
	t.Parallel()
	store, err := file.NewLocalStorage(t.TempDir(), "/exports")
	require.NoError(t, err)

	assert.Equal(t, "/exports/ws/jane-lee.png", store.URL("ws/jane-lee.png"))
	assert.Equal(t, "/exports/jane-lee.png", store.URL("ws/../jane-lee.png"))
	assert.Equal(t, "/abs/jane-lee.png", store.URL("/abs/jane-lee.png"))
}
