package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

const vaultFileHeader = `# filerouter vault configuration
#
# Values here override the user config and the built-in defaults.
# Rules are tried in order and the first matching pattern wins.

`

// vaultFile is the on-disk layout written by GenerateVaultConfig
type vaultFile struct {
	AttachmentNameTemplate   string       `toml:"attachment_name_template" comment:"Variables: ${fileName} ${fileExtention} ${timestamp}"`
	SkipPattern              string       `toml:"skip_pattern" comment:"Paths matching this regular expression are never routed"`
	AutoCreateDestinationDir bool         `toml:"auto_create_destination_dir"`
	Rules                    []types.Rule `toml:"rules"`
	Watch                    vaultWatch   `toml:"watch"`
}

type vaultWatch struct {
	IgnoreDirs []string `toml:"ignore_dirs"`
	Debounce   string   `toml:"debounce"`
}

// GenerateVaultConfig renders cfg as a vault config file
func GenerateVaultConfig(cfg *Config) ([]byte, error) {
	doc := vaultFile{
		AttachmentNameTemplate:   cfg.AttachmentNameTemplate,
		SkipPattern:              cfg.SkipPattern,
		AutoCreateDestinationDir: cfg.AutoCreateDestinationDir,
		Rules:                    cfg.Rules,
		Watch: vaultWatch{
			IgnoreDirs: cfg.Watch.IgnoreDirs,
			Debounce:   cfg.Watch.Debounce.String(),
		},
	}

	var buf bytes.Buffer
	buf.WriteString(vaultFileHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode vault config")
	}
	return buf.Bytes(), nil
}

// GenerateConfigContent returns the built-in defaults with every value
// commented out, as a starting point for the user config file
func GenerateConfigContent() string {
	return commentOutConfigValues(string(defaultConfig))
}

// commentOutConfigValues takes the TOML content and comments out all
// assignments. Array-of-tables headers are commented too, since an empty
// [[rules]] entry would match every path.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep plain section headers (e.g., [watch]) as-is
		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
