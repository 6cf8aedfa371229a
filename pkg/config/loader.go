package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// A double underscore separates nested keys: FILEROUTER_WATCH__DEBOUNCE=1s.
const EnvPrefix = "FILEROUTER_"

// Environment variables under EnvPrefix that locate things rather than
// configure them
var reservedEnv = map[string]bool{
	"FILEROUTER_VAULT":      true,
	"FILEROUTER_CONFIG_DIR": true,
	"FILEROUTER_STATE_DIR":  true,
}

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions selects the configuration layers to merge
type LoadOptions struct {
	// UserConfigPath is the user-level config file. Missing files are skipped.
	UserConfigPath string

	// VaultConfigPath is the vault-level config file. Missing files are skipped.
	VaultConfigPath string

	// SkipEnv disables FILEROUTER_* overrides
	SkipEnv bool

	// Overrides are dotted keys applied after every other layer, such as
	// values given as command-line flags
	Overrides map[string]interface{}
}

// Load merges, in increasing precedence, the embedded defaults, the user
// config file, the vault config file, the environment and opts.Overrides.
// Lists replace rather than append, so a vault that defines rules replaces
// the default rules.
func Load(opts LoadOptions) (*Config, error) {
	k, err := loadKoanf(opts)
	if err != nil {
		return nil, err
	}
	return unmarshal(k)
}

// Sources returns the config files that exist for opts, in merge order
func Sources(opts LoadOptions) []string {
	var sources []string
	for _, path := range []string{opts.UserConfigPath, opts.VaultConfigPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, path)
		}
	}
	return sources
}

func loadKoanf(opts LoadOptions) (*koanf.Koanf, error) {
	logger := logging.GetLogger("config.loader")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	// 2. User and vault config files
	for _, path := range Sources(opts) {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment overrides
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	// 4. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, nil
}

// envKey maps FILEROUTER_WATCH__IGNORE_DIRS to watch.ignore_dirs
func envKey(s string) string {
	if reservedEnv[s] {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format: %s", path).
			WithDetail("path", path)
	}
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}
