package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is a vault on the real filesystem with its own config and
// state directories, so nothing leaks into the user's XDG dirs
type TestEnvironment struct {
	t *testing.T

	VaultRoot string
	ConfigDir string
	StateDir  string
	Paths     *paths.Paths
}

// FileTree maps vault-relative paths to file contents. A nil FileTree value
// creates a directory.
type FileTree map[string]interface{}

// NewTestEnvironment creates an isolated vault. It sets FILEROUTER_CONFIG_DIR
// and FILEROUTER_STATE_DIR for the duration of the test, so tests using it
// cannot run in parallel.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	tempDir := t.TempDir()

	env := &TestEnvironment{
		t:         t,
		VaultRoot: filepath.Join(tempDir, "vault"),
		ConfigDir: filepath.Join(tempDir, "config"),
		StateDir:  filepath.Join(tempDir, "state"),
	}
	for _, dir := range []string{env.VaultRoot, env.ConfigDir, env.StateDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv(paths.EnvVault, "")

	p, err := paths.New(env.VaultRoot)
	require.NoError(t, err)
	env.Paths = p
	return env
}

// Path returns the absolute path of a vault-relative path
func (env *TestEnvironment) Path(rel string) string {
	return filepath.Join(env.VaultRoot, filepath.FromSlash(rel))
}

// WithFileTree creates the files in tree inside the vault
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	for rel, content := range tree {
		abs := env.Path(rel)
		if content == nil {
			require.NoError(env.t, os.MkdirAll(abs, 0755))
			continue
		}
		require.NoError(env.t, os.MkdirAll(filepath.Dir(abs), 0755))
		var data []byte
		switch c := content.(type) {
		case string:
			data = []byte(c)
		case []byte:
			data = c
		default:
			env.t.Fatalf("unsupported content type %T for %s", content, rel)
		}
		require.NoError(env.t, os.WriteFile(abs, data, 0644))
	}
	return env
}

// WriteVaultConfig writes the vault-level TOML config
func (env *TestEnvironment) WriteVaultConfig(content string) {
	env.t.Helper()
	require.NoError(env.t, os.WriteFile(env.Path(paths.VaultConfigFiles[0]), []byte(content), 0644))
}

// AssertFileExists fails the test if the vault-relative file is missing
func (env *TestEnvironment) AssertFileExists(rel string, msgAndArgs ...interface{}) {
	env.t.Helper()
	info, err := os.Stat(env.Path(rel))
	require.NoError(env.t, err, msgAndArgs...)
	require.False(env.t, info.IsDir(), msgAndArgs...)
}

// AssertNoFile fails the test if anything exists at the vault-relative path
func (env *TestEnvironment) AssertNoFile(rel string, msgAndArgs ...interface{}) {
	env.t.Helper()
	_, err := os.Stat(env.Path(rel))
	require.True(env.t, os.IsNotExist(err), msgAndArgs...)
}
