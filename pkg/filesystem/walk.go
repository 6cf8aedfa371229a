package filesystem

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/spf13/afero"
)

// WalkFiles calls fn with the vault-relative path of every regular file
// under fs, skipping directories whose name is in ignoreDirs.
func WalkFiles(fs afero.Fs, ignoreDirs []string, fn func(path string) error) error {
	ignored := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignored[d] = true
	}

	return afero.Walk(fs, string(filepath.Separator), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if ignored[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return fn(paths.Normalize(filepath.ToSlash(p)))
	})
}
