// Package template renders attachment file names from ${var} templates.
//
// The syntax is deliberately small: every ${identifier} is replaced by the
// string form of the matching variable. There is no escaping, nesting or
// recursive expansion.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/filerouter/pkg/logging"
)

// Variable names available to attachment name templates
const (
	VarFileName      = "fileName"
	VarFileExtension = "fileExtention"
	VarTimestamp     = "timestamp"
)

var placeholderRe = regexp.MustCompile(`\$\{(.*?)\}`)

// Render expands every placeholder in tmpl using vars. Identifiers missing
// from vars render as the empty string and are logged as warnings.
func Render(tmpl string, vars map[string]interface{}) string {
	out, missing := Expand(tmpl, vars)
	if len(missing) > 0 {
		logger := logging.GetLogger("template")
		for _, key := range missing {
			logger.Warn().
				Str("key", key).
				Str("template", tmpl).
				Msg("Missing value for template key")
		}
	}
	return out
}

// Expand is Render without logging. It returns the rendered string and the
// identifiers that had no value, in order of appearance.
func Expand(tmpl string, vars map[string]interface{}) (string, []string) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := strings.TrimSpace(match[2 : len(match)-1])
		value, ok := vars[key]
		if !ok {
			missing = append(missing, key)
			return ""
		}
		return fmt.Sprint(value)
	})
	return out, missing
}

// Placeholders lists the identifiers referenced by tmpl
func Placeholders(tmpl string) []string {
	matches := placeholderRe.FindAllStringSubmatch(tmpl, -1)
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, strings.TrimSpace(m[1]))
	}
	return keys
}
