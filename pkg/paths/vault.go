package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/filerouter/pkg/errors"
)

// Normalize cleans a vault-relative path: backslashes and repeated slashes
// collapse to single slashes and leading and trailing slashes are dropped.
// Any other character, unusual spaces included, is part of the name on disk
// and is kept. The vault root normalizes to "".
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.Trim(p, "/")
}

// Join joins vault-relative path elements and normalizes the result
func Join(elem ...string) string {
	return Normalize(path.Join(elem...))
}

// Rel converts an absolute host path under root into a vault-relative path
func Rel(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "%s is not under %s", abs, root)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is outside the vault", abs)
	}
	return Normalize(rel), nil
}

// FromArg turns a command-line path into a vault-relative one. Relative
// arguments are resolved against the working directory.
func FromArg(root, arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", arg)
	}
	return Rel(root, abs)
}

// Abs converts a vault-relative path into an absolute host path under root
func Abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(Normalize(rel)))
}

// HasHiddenSegment reports whether any element of a vault-relative path
// starts with a dot
func HasHiddenSegment(p string) bool {
	for _, part := range strings.Split(Normalize(p), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
