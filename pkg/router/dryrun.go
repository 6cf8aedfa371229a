package router

import (
	"io/fs"
	"strings"

	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/types"
)

// dryStorage answers existence queries from the underlying storage plus the
// changes it pretended to make. MkdirAll and Rename never touch the real
// storage.
type dryStorage struct {
	base    types.Storage
	added   map[string]bool
	removed map[string]bool
}

func newDryStorage(base types.Storage) *dryStorage {
	return &dryStorage{
		base:    base,
		added:   make(map[string]bool),
		removed: make(map[string]bool),
	}
}

func (d *dryStorage) Exists(p string) (bool, error) {
	p = paths.Normalize(p)
	if d.added[p] {
		return true, nil
	}
	if d.removed[p] {
		return false, nil
	}
	return d.base.Exists(p)
}

func (d *dryStorage) MkdirAll(p string) error {
	p = paths.Normalize(p)
	for p != "" {
		d.added[p] = true
		delete(d.removed, p)
		i := strings.LastIndex(p, "/")
		if i < 0 {
			break
		}
		p = p[:i]
	}
	return nil
}

func (d *dryStorage) Rename(oldpath, newpath string) error {
	oldpath, newpath = paths.Normalize(oldpath), paths.Normalize(newpath)
	if parent := parentDir(newpath); parent != "" {
		ok, err := d.Exists(parent)
		if err != nil {
			return err
		}
		if !ok {
			return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrNotExist}
		}
	}
	delete(d.added, oldpath)
	d.removed[oldpath] = true
	d.added[newpath] = true
	delete(d.removed, newpath)
	return nil
}
