// Test Type: Unit Test
// Description: Tests for the attachment name template renderer

package template_test

import (
	"testing"

	"github.com/arthur-debert/filerouter/pkg/template"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		vars     map[string]interface{}
		expected string
	}{
		{
			name:     "all_keys_present",
			tmpl:     "${a}-${b}",
			vars:     map[string]interface{}{"a": "x", "b": "y"},
			expected: "x-y",
		},
		{
			name:     "missing_key_renders_empty",
			tmpl:     "${a}-${missing}",
			vars:     map[string]interface{}{"a": "x"},
			expected: "x-",
		},
		{
			name:     "identifier_is_trimmed",
			tmpl:     "${ fileName }.${fileExtention  }",
			vars:     map[string]interface{}{"fileName": "draft", "fileExtention": "jpg"},
			expected: "draft.jpg",
		},
		{
			name:     "non_string_values",
			tmpl:     "img_${n}",
			vars:     map[string]interface{}{"n": 42},
			expected: "img_42",
		},
		{
			name:     "no_placeholders",
			tmpl:     "static.png",
			vars:     nil,
			expected: "static.png",
		},
		{
			name:     "repeated_key",
			tmpl:     "${a}${a}",
			vars:     map[string]interface{}{"a": "z"},
			expected: "zz",
		},
		{
			name:     "values_are_not_expanded_again",
			tmpl:     "${a}",
			vars:     map[string]interface{}{"a": "${b}", "b": "nope"},
			expected: "${b}",
		},
		{
			name:     "unterminated_placeholder_is_literal",
			tmpl:     "${a",
			vars:     map[string]interface{}{"a": "x"},
			expected: "${a",
		},
		{
			name:     "everything_missing",
			tmpl:     "${nothing}",
			vars:     map[string]interface{}{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, template.Render(tt.tmpl, tt.vars))
		})
	}
}

func TestExpandReportsMissing(t *testing.T) {
	out, missing := template.Expand("${fileName}_${date}_${ user }", map[string]interface{}{
		"fileName": "scan",
	})
	assert.Equal(t, "scan__", out)
	assert.Equal(t, []string{"date", "user"}, missing)
}

func TestExpandIsDeterministic(t *testing.T) {
	vars := map[string]interface{}{"fileName": "a", "fileExtention": "b", "timestamp": "c"}
	first, _ := template.Expand("${timestamp}-${fileName}.${fileExtention}", vars)
	second, _ := template.Expand("${timestamp}-${fileName}.${fileExtention}", vars)
	assert.Equal(t, first, second)
	assert.Equal(t, "c-a.b", first)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t,
		[]string{"fileName", "timestamp", "fileExtention"},
		template.Placeholders("${fileName}_${ timestamp }.${fileExtention}"))
	assert.Empty(t, template.Placeholders("plain"))
}
