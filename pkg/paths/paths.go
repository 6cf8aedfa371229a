package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/filerouter/pkg/errors"
)

// Environment variable names
const (
	// EnvVault points at the vault to operate on when no --vault flag is given
	EnvVault = "FILEROUTER_VAULT"

	// EnvConfigDir overrides the XDG config directory for filerouter
	EnvConfigDir = "FILEROUTER_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for filerouter
	EnvStateDir = "FILEROUTER_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for filerouter-specific files
	AppDirName = "filerouter"

	// UserConfigFile is the user-level configuration file name
	UserConfigFile = "config.toml"

	// JournalFile is the sqlite database holding the move journal
	JournalFile = "journal.db"

	// LocksDir is the subdirectory for per-vault lock files
	LocksDir = "locks"

	// LogFileName is the name of the log file
	LogFileName = "filerouter.log"
)

// VaultConfigFiles are the vault-level configuration file names, in lookup order
var VaultConfigFiles = []string{".filerouter.toml", ".filerouter.yaml", ".filerouter.yml"}

// Paths provides centralized path management for filerouter
type Paths struct {
	vaultRoot    string
	configDir    string
	stateDir     string
	usedFallback bool
}

// New creates a new Paths instance for the given vault root.
// If vaultRoot is empty it is taken from FILEROUTER_VAULT, falling back to
// the current working directory.
func New(vaultRoot string) (*Paths, error) {
	p := &Paths{}

	if vaultRoot == "" {
		vaultRoot = os.Getenv(EnvVault)
	}
	if vaultRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to get current directory")
		}
		vaultRoot = cwd
		p.usedFallback = true
	}

	absRoot, err := filepath.Abs(expandHome(vaultRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for vault root")
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "vault root %s is not accessible", absRoot)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "vault root %s is not a directory", absRoot)
	}
	p.vaultRoot = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *Paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.configDir = expandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.stateDir = expandHome(stateDir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}
}

// VaultRoot returns the absolute vault root
func (p *Paths) VaultRoot() string {
	return p.vaultRoot
}

// UsedFallback returns true if the current working directory was used as vault root
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns the XDG config directory for filerouter
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// UserConfigPath returns the user-level configuration file
func (p *Paths) UserConfigPath() string {
	return filepath.Join(p.configDir, UserConfigFile)
}

// StateDir returns the XDG state directory for filerouter
func (p *Paths) StateDir() string {
	return p.stateDir
}

// JournalPath returns the sqlite move journal location
func (p *Paths) JournalPath() string {
	return filepath.Join(p.stateDir, JournalFile)
}

// LockPath returns the lock file guarding this vault against a second watcher
func (p *Paths) LockPath() string {
	sum := sha256.Sum256([]byte(p.vaultRoot))
	return filepath.Join(p.stateDir, LocksDir, hex.EncodeToString(sum[:])[:16]+".lock")
}

// VaultConfigPath returns the first existing vault configuration file, or
// the default TOML location if none exists yet. The bool reports existence.
func (p *Paths) VaultConfigPath() (string, bool) {
	for _, name := range VaultConfigFiles {
		path := filepath.Join(p.vaultRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return filepath.Join(p.vaultRoot, VaultConfigFiles[0]), false
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
