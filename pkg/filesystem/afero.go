package filesystem

import (
	"path/filepath"

	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/spf13/afero"
)

// DirPerm is the mode used for directories created on behalf of rules
const DirPerm = 0755

// aferoStorage implements types.Storage using afero
type aferoStorage struct {
	fs afero.Fs
}

// NewStorage creates a storage capability over an arbitrary afero filesystem.
// Vault-relative paths are used as-is against fs.
func NewStorage(fs afero.Fs) types.Storage {
	return &aferoStorage{fs: fs}
}

// NewOS creates a storage capability rooted at the vault directory
func NewOS(vaultRoot string) types.Storage {
	return NewStorage(NewVaultFs(vaultRoot))
}

// NewMemory creates an in-memory storage capability and returns its
// backing filesystem so tests can seed and inspect it
func NewMemory() (types.Storage, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewStorage(fs), fs
}

// NewVaultFs returns an afero filesystem confined to the vault root
func NewVaultFs(vaultRoot string) afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), vaultRoot)
}

func (a *aferoStorage) Exists(path string) (bool, error) {
	return afero.Exists(a.fs, Native(path))
}

func (a *aferoStorage) MkdirAll(path string) error {
	return a.fs.MkdirAll(Native(path), DirPerm)
}

func (a *aferoStorage) Rename(oldpath, newpath string) error {
	return a.fs.Rename(Native(oldpath), Native(newpath))
}

// Native turns a vault-relative path into the rooted form used with the
// backing afero filesystem. MemMapFs keys "a" and "/a" differently, so every
// path is made absolute.
func Native(p string) string {
	return string(filepath.Separator) + filepath.FromSlash(paths.Normalize(p))
}
