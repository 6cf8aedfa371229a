package types

import (
	"path"
	"strings"
)

// PendingFile describes a newly created file waiting in the intake queue.
type PendingFile struct {
	Path      string // Vault-relative path at creation time
	BaseName  string // File name without its last extension
	Extension string // Last extension without the leading dot
}

// NewPendingFile builds a PendingFile from a vault-relative path.
// A leading dot alone does not start an extension, so ".gitignore" has the
// base name ".gitignore" and no extension.
func NewPendingFile(p string) PendingFile {
	name := path.Base(p)
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i+1:]
	}
	return PendingFile{
		Path:      p,
		BaseName:  base,
		Extension: ext,
	}
}

// Name returns the file's current base name including its extension
func (f PendingFile) Name() string {
	return path.Base(f.Path)
}
