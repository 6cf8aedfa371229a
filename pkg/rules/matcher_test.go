// Test Type: Unit Test
// Description: Tests for the rules package - ordered regex matching of vault paths

package rules_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/filerouter/pkg/rules"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match(t *testing.T) {
	t.Run("first_match_wins", func(t *testing.T) {
		m := rules.NewMatcher([]types.Rule{
			{Pattern: ".png$", Destination: "imgs"},
			{Pattern: ".*", Destination: "catchall"},
		})

		rule, ok := m.Match("foo.png")
		require.True(t, ok)
		assert.Equal(t, "imgs", rule.Destination)

		rule, ok = m.Match("foo.txt")
		require.True(t, ok)
		assert.Equal(t, "catchall", rule.Destination)
	})

	t.Run("no_match_is_not_an_error", func(t *testing.T) {
		m := rules.NewMatcher(rules.DefaultRules())

		_, ok := m.Match("archive.zip")
		assert.False(t, ok)
	})

	t.Run("matches_anywhere_in_path", func(t *testing.T) {
		m := rules.NewMatcher([]types.Rule{
			{Pattern: "inbox/", Destination: "sorted"},
		})

		_, ok := m.Match("notes/inbox/a.bin")
		assert.True(t, ok)
	})

	t.Run("anchors_are_respected", func(t *testing.T) {
		m := rules.NewMatcher([]types.Rule{
			{Pattern: "^scans/", Destination: "archive/scans"},
		})

		_, ok := m.Match("scans/page1.tiff")
		assert.True(t, ok)
		_, ok = m.Match("old/scans/page1.tiff")
		assert.False(t, ok)
	})

	t.Run("default_rules", func(t *testing.T) {
		m := rules.NewMatcher(rules.DefaultRules())

		tests := map[string]string{
			"draft.jpg":            "attachments/image",
			"notes/Pasted.webp":    "attachments/image",
			"papers/attention.pdf": "attachments/pdf",
		}
		for path, want := range tests {
			rule, ok := m.Match(path)
			require.True(t, ok, path)
			assert.Equal(t, want, rule.Destination, path)
		}
	})

	t.Run("empty_rule_list", func(t *testing.T) {
		m := rules.NewMatcher(nil)
		_, ok := m.Match("a.png")
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
	})
}

func TestMatcher_MalformedPattern(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	defer func() { log.Logger = prev }()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	m := rules.NewMatcher([]types.Rule{
		{Pattern: "([unclosed", Destination: "broken"},
		{Pattern: `\.png$`, Destination: "imgs"},
	})

	t.Run("bad_rule_is_skipped", func(t *testing.T) {
		rule, ok := m.Match("a.png")
		require.True(t, ok)
		assert.Equal(t, "imgs", rule.Destination)
	})

	t.Run("error_is_reported_once", func(t *testing.T) {
		m.Match("b.png")
		m.Match("c.png")
		assert.Equal(t, 1, strings.Count(buf.String(), "Invalid rule pattern"))
	})

	t.Run("diagnostics", func(t *testing.T) {
		diags := m.Diagnostics()
		require.Len(t, diags, 2)
		assert.False(t, diags[0].Compiled)
		assert.Error(t, diags[0].Err)
		assert.True(t, diags[1].Compiled)
		assert.NoError(t, diags[1].Err)
		assert.Equal(t, 1, diags[1].Index)
	})
}

func TestMatcher_LazyCompile(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	defer func() { log.Logger = prev }()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	m := rules.NewMatcher([]types.Rule{
		{Pattern: `\.png$`, Destination: "imgs"},
		{Pattern: "(", Destination: "never-reached"},
	})

	_, ok := m.Match("a.png")
	require.True(t, ok)
	assert.NotContains(t, buf.String(), "Invalid rule pattern",
		"rules after the first match should not be compiled")
}

func TestMatcher_ConcurrentUse(t *testing.T) {
	m := rules.NewMatcher(rules.DefaultRules())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rule, ok := m.Match("x/y.pdf")
			assert.True(t, ok)
			assert.Equal(t, "attachments/pdf", rule.Destination)
		}()
	}
	wg.Wait()
}
