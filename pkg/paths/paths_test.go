package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("explicit_root", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv(paths.EnvStateDir, filepath.Join(root, "state"))
		t.Setenv(paths.EnvConfigDir, filepath.Join(root, "config"))

		p, err := paths.New(root)
		require.NoError(t, err)

		assert.Equal(t, root, p.VaultRoot())
		assert.False(t, p.UsedFallback())
		assert.Equal(t, filepath.Join(root, "state", "journal.db"), p.JournalPath())
		assert.Equal(t, filepath.Join(root, "config", "config.toml"), p.UserConfigPath())
		assert.Equal(t, filepath.Join(root, "state"), p.StateDir())
		assert.Equal(t, filepath.Join(root, "config"), p.ConfigDir())
	})

	t.Run("env_root", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv(paths.EnvVault, root)

		p, err := paths.New("")
		require.NoError(t, err)
		assert.Equal(t, root, p.VaultRoot())
		assert.False(t, p.UsedFallback())
	})

	t.Run("cwd_fallback", func(t *testing.T) {
		t.Setenv(paths.EnvVault, "")
		p, err := paths.New("")
		require.NoError(t, err)
		assert.True(t, p.UsedFallback())
	})

	t.Run("missing_root", func(t *testing.T) {
		_, err := paths.New(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("root_is_a_file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := paths.New(file)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestLockPathIsStablePerVault(t *testing.T) {
	state := t.TempDir()
	t.Setenv(paths.EnvStateDir, state)

	a, err := paths.New(t.TempDir())
	require.NoError(t, err)
	b, err := paths.New(t.TempDir())
	require.NoError(t, err)
	again, err := paths.New(a.VaultRoot())
	require.NoError(t, err)

	assert.Equal(t, a.LockPath(), again.LockPath())
	assert.NotEqual(t, a.LockPath(), b.LockPath())
	assert.Equal(t, filepath.Join(state, "locks"), filepath.Dir(a.LockPath()))
}

func TestVaultConfigPath(t *testing.T) {
	root := t.TempDir()
	p, err := paths.New(root)
	require.NoError(t, err)

	path, exists := p.VaultConfigPath()
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(root, ".filerouter.toml"), path)

	yamlPath := filepath.Join(root, ".filerouter.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("skip_pattern: x\n"), 0644))

	path, exists = p.VaultConfigPath()
	assert.True(t, exists)
	assert.Equal(t, yamlPath, path)
}
