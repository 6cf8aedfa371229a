package types

// Storage is the file-system capability the router needs from its host.
// Implementations resolve the vault-relative paths they are given against
// their own root.
type Storage interface {
	// Exists reports whether a file or directory is present at path
	Exists(path string) (bool, error)

	// MkdirAll creates path and any missing ancestors
	MkdirAll(path string) error

	// Rename moves oldpath to newpath in a single step
	Rename(oldpath, newpath string) error
}

// EventHandler receives the two host notifications that drive routing.
type EventHandler interface {
	// OnFileCreated is called when an entry appears in the vault
	OnFileCreated(path string, isDir bool)

	// OnWorkspaceModified is called when an existing file in the vault is written
	OnWorkspaceModified(path string)
}
