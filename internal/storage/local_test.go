package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"cover-builder-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagePath(t *testing.T) {
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	imageID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t,
		"images/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222.png",
		storage.ImagePath(projectID, imageID))
}

func TestCleanPath(t *testing.T) {
	for _, bad := range []string{"", "/etc/passwd", "../../etc/passwd", "images/../../x", "..", ".", `images\x.png`} {
		_, err := storage.CleanPath(bad)
		assert.ErrorIs(t, err, storage.ErrInvalidPath, bad)
	}

	cleaned, err := storage.CleanPath("images/./a/../b.png")
	require.NoError(t, err)
	assert.Equal(t, "images/b.png", cleaned)
}

func TestLocalStore(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := storage.NewLocalStore(filepath.Join(tmpDir, "storage"), "/static/")
	require.NoError(t, err)

	projectID := uuid.New()
	relPath := storage.ImagePath(projectID, uuid.New())

	t.Run("Save", func(t *testing.T) {
		require.NoError(t, store.Save(relPath, []byte("png bytes")))

		data, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(relPath)))
		require.NoError(t, err)
		assert.Equal(t, []byte("png bytes"), data)
	})

	t.Run("URL", func(t *testing.T) {
		assert.Equal(t, "/static/"+relPath, store.URL(relPath))
	})

	t.Run("PathTraversalPrevention", func(t *testing.T) {
		assert.ErrorIs(t, store.Save("../escape.png", []byte("x")), storage.ErrInvalidPath)
		assert.ErrorIs(t, store.Delete("../../etc/passwd"), storage.ErrInvalidPath)
		_, err := os.Stat(filepath.Join(tmpDir, "escape.png"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(relPath))
		_, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(relPath)))
		assert.True(t, os.IsNotExist(err))

		assert.NoError(t, store.Delete(relPath), "missing file is not an error")
	})

	t.Run("DeleteProject", func(t *testing.T) {
		require.NoError(t, store.Save(storage.ImagePath(projectID, uuid.New()), []byte("a")))
		require.NoError(t, store.Save(storage.ImagePath(projectID, uuid.New()), []byte("b")))

		require.NoError(t, store.DeleteProject(projectID))
		_, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(storage.ProjectDir(projectID))))
		assert.True(t, os.IsNotExist(err))
	})
}
