package config

import (
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/knadh/koanf/providers/file"
	"github.com/rs/zerolog"
)

// Source hands out the configuration snapshot in effect
type Source interface {
	Current() *Snapshot
}

// Provider owns the live configuration of one vault. Reload swaps the
// current snapshot atomically; readers never see a partially applied config.
type Provider struct {
	opts    LoadOptions
	current atomic.Pointer[Snapshot]
	logger  zerolog.Logger

	mu        sync.Mutex
	listeners []func(*Snapshot)
	watched   []*file.File
}

// NewProvider loads the configuration described by opts
func NewProvider(opts LoadOptions) (*Provider, error) {
	p := &Provider{
		opts:   opts,
		logger: logging.GetLogger("config.provider"),
	}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// ForVault returns a provider using the user and vault config files of pp.
// overrides, if any, win over every file and the environment.
func ForVault(pp *paths.Paths, overrides ...map[string]interface{}) (*Provider, error) {
	opts := OptionsFor(pp)
	for _, o := range overrides {
		if opts.Overrides == nil {
			opts.Overrides = make(map[string]interface{}, len(o))
		}
		for k, v := range o {
			opts.Overrides[k] = v
		}
	}
	return NewProvider(opts)
}

// OptionsFor returns the load options for the vault described by pp
func OptionsFor(pp *paths.Paths) LoadOptions {
	vaultConfig, _ := pp.VaultConfigPath()
	return LoadOptions{
		UserConfigPath:  pp.UserConfigPath(),
		VaultConfigPath: vaultConfig,
	}
}

// Static returns a provider that always serves cfg
func Static(cfg *Config) (*Provider, error) {
	snap, err := NewSnapshot(cfg)
	if err != nil {
		return nil, err
	}
	p := &Provider{logger: logging.GetLogger("config.provider")}
	p.current.Store(snap)
	return p, nil
}

// Current returns the snapshot in effect
func (p *Provider) Current() *Snapshot {
	return p.current.Load()
}

// Reload re-reads every layer. On error the previous snapshot stays current.
func (p *Provider) Reload() error {
	defer logging.LogOperationStart(p.logger, "config reload")()

	cfg, err := Load(p.opts)
	if err != nil {
		return err
	}
	snap, err := NewSnapshot(cfg)
	if err != nil {
		return err
	}
	p.current.Store(snap)

	p.logger.Debug().
		Int("rules", len(cfg.Rules)).
		Str("skipPattern", cfg.SkipPattern).
		Msg("Configuration loaded")

	p.mu.Lock()
	listeners := append([]func(*Snapshot){}, p.listeners...)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
	return nil
}

// OnReload registers fn to be called after every successful reload
func (p *Provider) OnReload(fn func(*Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Watch reloads the configuration whenever one of the existing config files
// changes. Files created after Watch is called are picked up on restart.
func (p *Provider) Watch() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, path := range Sources(p.opts) {
		f := file.Provider(path)
		path := path
		err := f.Watch(func(event interface{}, err error) {
			if err != nil {
				p.logger.Error().Err(err).Str("path", path).Msg("Config watch failed")
				return
			}
			if err := p.Reload(); err != nil {
				p.logger.Error().Err(err).Str("path", path).Msg("Config reload failed, keeping previous configuration")
				return
			}
			p.logger.Info().Str("path", path).Msg("Configuration reloaded")
		})
		if err != nil {
			return errors.Wrapf(err, errors.ErrWatch, "failed to watch config file %s", path)
		}
		p.watched = append(p.watched, f)
		p.logger.Debug().Str("path", path).Msg("Watching config file")
	}
	return nil
}

// Close stops watching config files
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, f := range p.watched {
		if err := f.Unwatch(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.watched = nil
	return firstErr
}
