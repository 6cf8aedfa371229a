package config

import (
	"regexp"
	"time"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/rules"
	"github.com/arthur-debert/filerouter/pkg/template"
	"github.com/arthur-debert/filerouter/pkg/types"
)

// Snapshot is an immutable, validated view of a Config. The router takes one
// snapshot per drain so a reload never changes rules mid-batch.
type Snapshot struct {
	Config   *Config
	Matcher  *rules.Matcher
	LoadedAt time.Time

	skip *regexp.Regexp
}

// NewSnapshot validates cfg and precompiles its skip pattern.
// A malformed skip pattern makes the whole configuration invalid; malformed
// rule patterns only disable their own rule.
func NewSnapshot(cfg *Config) (*Snapshot, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrConfigValid, "configuration is nil")
	}

	var skip *regexp.Regexp
	if cfg.SkipPattern != "" {
		re, err := regexp.Compile(cfg.SkipPattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid skip pattern %q", cfg.SkipPattern).
				WithDetail("skip_pattern", cfg.SkipPattern)
		}
		skip = re
	}

	if cfg.Watch.Debounce < 0 {
		return nil, errors.Newf(errors.ErrConfigValid, "watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}

	normalized := make([]types.Rule, len(cfg.Rules))
	for i, r := range cfg.Rules {
		normalized[i] = types.Rule{Pattern: r.Pattern, Destination: paths.Normalize(r.Destination)}
	}
	cfg.Rules = normalized

	warnSuspicious(cfg)

	return &Snapshot{
		Config:   cfg,
		Matcher:  rules.NewMatcher(cfg.Rules),
		LoadedAt: time.Now(),
		skip:     skip,
	}, nil
}

// Skips reports whether path matches the skip pattern
func (s *Snapshot) Skips(path string) bool {
	return s.skip != nil && s.skip.MatchString(path)
}

// Router returns the routing configuration of the snapshot
func (s *Snapshot) Router() types.RouterConfig {
	return s.Config.Router()
}

var knownVars = map[string]bool{
	template.VarFileName:      true,
	template.VarFileExtension: true,
	template.VarTimestamp:     true,
}

// warnSuspicious logs settings that load fine but probably do not do what
// the user meant
func warnSuspicious(cfg *Config) {
	logger := logging.GetLogger("config")

	for _, key := range template.Placeholders(cfg.AttachmentNameTemplate) {
		if !knownVars[key] {
			logger.Warn().
				Str("key", key).
				Str("template", cfg.AttachmentNameTemplate).
				Msg("Unknown template variable, it will render empty")
		}
	}

	for i, r := range cfg.Rules {
		if r.Destination == "" {
			logger.Warn().
				Int("rule", i).
				Str("pattern", r.Pattern).
				Msg("Rule has no destination, matching files go to the vault root")
		}
	}
}
