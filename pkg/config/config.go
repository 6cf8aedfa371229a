package config

import (
	"time"

	"github.com/arthur-debert/filerouter/pkg/types"
)

// Config is the fully merged filerouter configuration
type Config struct {
	types.RouterConfig `koanf:",squash"`

	Watch   Watch   `koanf:"watch"`
	Journal Journal `koanf:"journal"`
}

// Watch configures the live file-system bridge
type Watch struct {
	// IgnoreDirs are directory names never watched or scanned, at any depth
	IgnoreDirs []string `koanf:"ignore_dirs"`

	// Debounce is how long modify events are coalesced before a drain
	Debounce time.Duration `koanf:"debounce"`
}

// Journal configures the move history
type Journal struct {
	Enabled bool `koanf:"enabled"`
}

// Router returns the routing part of the configuration
func (c *Config) Router() types.RouterConfig {
	return c.RouterConfig
}

// Default returns the built-in configuration
func Default() (*Config, error) {
	return Load(LoadOptions{SkipEnv: true})
}
