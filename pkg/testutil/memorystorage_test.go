package testutil_test

import (
	"errors"
	"testing"

	"github.com/arthur-debert/filerouter/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Run("rename_requires_parent", func(t *testing.T) {
		s := testutil.NewMemoryStorage().AddFile("a.png")
		err := s.Rename("a.png", "missing/a.png")
		require.Error(t, err)
		assert.True(t, s.HasFile("a.png"))

		require.NoError(t, s.MkdirAll("missing"))
		require.NoError(t, s.Rename("a.png", "missing/a.png"))
		assert.False(t, s.HasFile("a.png"))
		assert.True(t, s.HasFile("missing/a.png"))
	})

	t.Run("rename_moves_children", func(t *testing.T) {
		s := testutil.NewMemoryStorage().AddFile("old/x/1.txt").AddDir("dest")
		require.NoError(t, s.Rename("old", "dest/new"))
		assert.Equal(t, []string{"dest/new/x/1.txt"}, s.Files())
		assert.True(t, s.HasDir("dest/new/x"))
	})

	t.Run("mkdir_through_file_fails", func(t *testing.T) {
		s := testutil.NewMemoryStorage().AddFile("blocker")
		assert.Error(t, s.MkdirAll("blocker/sub"))
	})

	t.Run("error_injection_and_calls", func(t *testing.T) {
		boom := errors.New("boom")
		s := testutil.NewMemoryStorage().AddFile("a.png")
		s.FailOn(testutil.OpExists, "a.png", boom)

		_, err := s.Exists("a.png")
		assert.ErrorIs(t, err, boom)
		ok, err := s.Exists("/b.png")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.Equal(t, []string{"exists a.png", "exists b.png"}, s.Calls())
		assert.Equal(t, 2, s.CountCalls(testutil.OpExists))
	})

	t.Run("root_exists", func(t *testing.T) {
		ok, err := testutil.NewMemoryStorage().Exists("")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
