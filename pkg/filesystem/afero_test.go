package filesystem_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/filerouter/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "draft.jpg"), []byte("jpeg"), 0644))

	storage := filesystem.NewOS(root)

	t.Run("exists", func(t *testing.T) {
		ok, err := storage.Exists("draft.jpg")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = storage.Exists("missing.jpg")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("mkdir_all", func(t *testing.T) {
		require.NoError(t, storage.MkdirAll("attachments/image"))
		info, err := os.Stat(filepath.Join(root, "attachments", "image"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, storage.Rename("draft.jpg", "attachments/image/draft.jpg"))

		_, err := os.Stat(filepath.Join(root, "draft.jpg"))
		assert.True(t, os.IsNotExist(err))
		content, err := os.ReadFile(filepath.Join(root, "attachments", "image", "draft.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", string(content))
	})

	t.Run("rename_into_missing_dir_fails", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "b.pdf"), []byte("pdf"), 0644))

		err := storage.Rename("b.pdf", "nowhere/b.pdf")
		assert.Error(t, err)
		_, statErr := os.Stat(filepath.Join(root, "b.pdf"))
		assert.NoError(t, statErr, "source must stay in place")
	})

	t.Run("paths_stay_inside_vault", func(t *testing.T) {
		ok, err := storage.Exists("..")
		require.NoError(t, err)
		assert.True(t, ok, "leading .. collapses onto the vault root")

		ok, err = storage.Exists("../../etc/passwd")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNewMemory(t *testing.T) {
	storage, fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, filesystem.Native("inbox/a.png"), []byte("png"), 0644))

	ok, err := storage.Exists("inbox/a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, storage.MkdirAll("img"))
	require.NoError(t, storage.Rename("inbox/a.png", "img/a.png"))

	ok, _ = storage.Exists("inbox/a.png")
	assert.False(t, ok)
	ok, _ = storage.Exists("/img/a.png")
	assert.True(t, ok, "leading slash is ignored")
}

func TestNative(t *testing.T) {
	sep := string(filepath.Separator)
	assert.Equal(t, sep, filesystem.Native(""))
	assert.Equal(t, sep+filepath.Join("a", "b.png"), filesystem.Native("a//b.png"))
}

func TestWalkFiles(t *testing.T) {
	_, fs := filesystem.NewMemory()
	for _, p := range []string{"a.png", "notes/b.md", "notes/deep/c.pdf", ".obsidian/workspace.json", ".git/HEAD"} {
		require.NoError(t, afero.WriteFile(fs, filesystem.Native(p), []byte("x"), 0644))
	}

	var seen []string
	err := filesystem.WalkFiles(fs, []string{".git", ".obsidian"}, func(p string) error {
		seen = append(seen, p)
		return nil
	})
	require.NoError(t, err)

	sort.Strings(seen)
	assert.Equal(t, []string{"a.png", "notes/b.md", "notes/deep/c.pdf"}, seen)
}
