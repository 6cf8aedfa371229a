// Test Type: Unit Test
// Description: Tests for file-backed help topics

package topics_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/filerouter/pkg/cobrax/topics"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"templates.md":       {Data: []byte("# Templates\n\nUse ${fileName}.")},
		"option-dry-run.txt": {Data: []byte("Dry run explains moves")},
		"notes.json":         {Data: []byte("{}")},
		"nested/rules.txt":   {Data: []byte("First match wins")},
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(content, ext string) string { return "[" + ext + "]" + content }

func TestLoad(t *testing.T) {
	m, err := topics.Load(testFS(), topics.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"option-dry-run", "rules", "templates"}, m.Names())

	t.Run("exact_name", func(t *testing.T) {
		topic, ok := m.Get("templates")
		require.True(t, ok)
		assert.Equal(t, ".md", topic.Ext)
		assert.Contains(t, topic.Content, "${fileName}")
	})

	t.Run("flag_style_name", func(t *testing.T) {
		topic, ok := m.Get("--dry-run")
		require.True(t, ok)
		assert.Equal(t, "option-dry-run", topic.Name)
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		_, ok := m.Get("notes")
		assert.False(t, ok)
	})

	t.Run("plain_renderer_is_identity", func(t *testing.T) {
		topic, _ := m.Get("rules")
		assert.Equal(t, "First match wins", m.Render(topic))
	})
}

func TestInstall(t *testing.T) {
	m, err := topics.Load(testFS(), topics.Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	newRoot := func() (*cobra.Command, *bytes.Buffer) {
		root := &cobra.Command{Use: "app", Run: func(*cobra.Command, []string) {}}
		root.AddCommand(&cobra.Command{Use: "route", Short: "Route files", Run: func(*cobra.Command, []string) {}})
		m.Install(root)
		var out bytes.Buffer
		root.SetOut(&out)
		return root, &out
	}

	t.Run("topic", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "rules"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "[.txt]First match wins", out.String())
	})

	t.Run("index", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "  templates")
		assert.Contains(t, out.String(), "  --dry-run")
		assert.Contains(t, out.String(), "app help <topic>")
	})

	t.Run("command_help", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "route"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Route files")
	})
}

func TestGlamourRendererPassesThroughText(t *testing.T) {
	r := &topics.GlamourRenderer{Style: "notty"}
	assert.Equal(t, "plain", r.Render("plain", ".txt"))

	out := r.Render("# Title\n\nbody", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
