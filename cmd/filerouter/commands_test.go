// Test Type: Integration Test
// Description: Tests for the filerouter commands against a temp vault

package filerouter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/filerouter/pkg/config"
	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/journal"
	"github.com/arthur-debert/filerouter/pkg/testutil"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const jpgConfig = `
[[rules]]
pattern = '\.jpg$'
destination = "attachments/image"
`

// execute runs the root command against env's vault and returns its output
func execute(t *testing.T, env *testutil.TestEnvironment, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--vault", env.VaultRoot}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRouteCmd(t *testing.T) {
	t.Run("dry_run_moves_nothing", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		env.WriteVaultConfig(jpgConfig)
		env.WithFileTree(testutil.FileTree{"draft.jpg": "jpeg"})

		out, err := execute(t, env, "route", "--dry-run", env.Path("draft.jpg"))
		require.NoError(t, err)
		assert.Contains(t, out, "draft.jpg will move to attachments/image/draft.jpg")
		env.AssertFileExists("draft.jpg")
		env.AssertNoFile("attachments")
	})

	t.Run("moves_and_records", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		env.WriteVaultConfig(jpgConfig)
		env.WithFileTree(testutil.FileTree{
			"draft.jpg":      "jpeg",
			"notes/today.md": "text",
		})

		out, err := execute(t, env, "route", "--scan")
		require.NoError(t, err)
		assert.Contains(t, out, "1 moved")
		env.AssertFileExists("attachments/image/draft.jpg")
		env.AssertFileExists("notes/today.md", "skip pattern keeps notes out of the queue")

		out, err = execute(t, env, "history", "--format", "json")
		require.NoError(t, err)
		var entries []journal.Entry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "draft.jpg", entries[0].Source)
		assert.Equal(t, "attachments/image/draft.jpg", entries[0].Destination)
		assert.Equal(t, types.OutcomeMoved, entries[0].Outcome)
	})

	t.Run("needs_files_or_scan", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)

		_, err := execute(t, env, "route")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("path_outside_vault", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		outside := filepath.Join(t.TempDir(), "elsewhere.jpg")

		_, err := execute(t, env, "route", outside)
		assert.Error(t, err)
	})
}

func TestHistoryCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteVaultConfig(jpgConfig)
	env.WithFileTree(testutil.FileTree{"a.jpg": "a", "b.zip": "b"})

	_, err := execute(t, env, "route", env.Path("a.jpg"), env.Path("b.zip"))
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, env, "history")
		require.NoError(t, err)
		assert.Contains(t, out, "moved a.jpg -> attachments/image/a.jpg")
		assert.Contains(t, out, "no_rule b.zip")
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, env, "history", "--format", "yaml", "--outcome", "no_rule")
		require.NoError(t, err)
		var entries []map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "b.zip", entries[0]["source"])
	})

	t.Run("xml", func(t *testing.T) {
		out, err := execute(t, env, "history", "--format", "xml", "--limit", "1")
		require.NoError(t, err)
		assert.Contains(t, out, `<history count="1">`)
		assert.Equal(t, 1, strings.Count(out, "<move "))
	})

	t.Run("unknown_format", func(t *testing.T) {
		_, err := execute(t, env, "history", "--format", "csv")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("stats", func(t *testing.T) {
		out, err := execute(t, env, "history", "--stats")
		require.NoError(t, err)
		assert.Contains(t, out, "moved        1\n")
		assert.Contains(t, out, "no_rule      1\n")
	})

	t.Run("bad_prune_age", func(t *testing.T) {
		_, err := execute(t, env, "history", "--prune", "soon")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("prune", func(t *testing.T) {
		out, err := execute(t, env, "history", "--prune", "1000h")
		require.NoError(t, err)
		assert.Contains(t, out, "Removed 0 drain(s)")

		out, err = execute(t, env, "history")
		require.NoError(t, err)
		assert.Contains(t, out, "a.jpg", "recent drains survive pruning")
	})

	t.Run("journal_disabled", func(t *testing.T) {
		t.Setenv("FILEROUTER_JOURNAL__ENABLED", "false")
		out, err := execute(t, env, "history")
		require.NoError(t, err)
		assert.Contains(t, out, MsgJournalDisabled)
	})
}

func TestCheckCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteVaultConfig(jpgConfig)

	out, err := execute(t, env, "check", env.Path("inbox/photo.jpg"), env.Path("notes/today.md"), env.Path("a.zip"))
	require.NoError(t, err)

	assert.Contains(t, out, "## `inbox/photo.jpg`")
	assert.Contains(t, out, "- **Destination:** `attachments/image/photo.jpg`")
	assert.Contains(t, out, "matches `skip_pattern`")
	assert.Contains(t, out, "No rule matches")
	env.AssertNoFile("attachments", "check never touches the vault")
}

func TestRulesCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteVaultConfig(`
[[rules]]
pattern = '(broken'
destination = "never"

[[rules]]
pattern = '\.jpg$'
destination = "attachments/image"
`)

	out, err := execute(t, env, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "1. (broken -> never (invalid:")
	assert.Contains(t, out, "2. \\.jpg$ -> attachments/image\n")
}

func TestInitCmd(t *testing.T) {
	t.Run("vault", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)

		out, err := execute(t, env, "init")
		require.NoError(t, err)
		assert.Contains(t, out, ".filerouter.toml")
		env.AssertFileExists(".filerouter.toml")

		cfg, err := config.Load(config.LoadOptions{VaultConfigPath: env.Path(".filerouter.toml"), SkipEnv: true})
		require.NoError(t, err)
		defaults, err := config.Default()
		require.NoError(t, err)
		assert.Equal(t, defaults.Rules, cfg.Rules)
		assert.Equal(t, defaults.Watch.Debounce, cfg.Watch.Debounce)

		_, err = execute(t, env, "init")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "refuses to overwrite")

		_, err = execute(t, env, "init", "--force")
		assert.NoError(t, err)
	})

	t.Run("user", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)

		_, err := execute(t, env, "init", "--user")
		require.NoError(t, err)

		content, err := os.ReadFile(env.Paths.UserConfigPath())
		require.NoError(t, err)
		assert.Contains(t, string(content), "# [[rules]]")
		env.AssertNoFile(".filerouter.toml")
	})
}

func TestVersionCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	out, err := execute(t, env, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "filerouter version dev")
}

func TestHelpTopics(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	out, err := execute(t, env, "help", "topics")
	require.NoError(t, err)
	for _, name := range []string{"configuration", "patterns", "templates", "--dry-run"} {
		assert.Contains(t, out, "  "+name)
	}

	out, err = execute(t, env, "help", "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "fileExtention")
}

func TestEntriesXML(t *testing.T) {
	doc := entriesXML([]journal.Entry{{
		ID:          7,
		DrainID:     "d1",
		Source:      "a.jpg",
		Destination: "attachments/image/a.jpg",
		Outcome:     types.OutcomeCollision,
		ErrorCode:   string(errors.ErrDestinationConflict),
		Message:     "destination already exists",
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}})

	move := doc.FindElement("/history/move")
	require.NotNil(t, move)
	assert.Equal(t, "7", move.SelectAttrValue("id", ""))
	assert.Equal(t, "collision", move.SelectAttrValue("outcome", ""))
	assert.Equal(t, "2024-01-02T03:04:05Z", move.SelectAttrValue("at", ""))
	assert.Equal(t, "a.jpg", move.FindElement("source").Text())
	assert.Equal(t, "DEST_COLLISION", move.FindElement("error").SelectAttrValue("code", ""))
}
