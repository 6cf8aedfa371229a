package testutil

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/filerouter/pkg/paths"
)

// Storage operation names used for error injection and call recording
const (
	OpExists   = "exists"
	OpMkdirAll = "mkdirall"
	OpRename   = "rename"
)

// MemoryStorage implements types.Storage in memory. It behaves like a POSIX
// file system for the three operations the router needs: Rename requires the
// destination's parent to exist and replaces an existing destination file.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]bool // path -> isDir
	calls   []string

	// Error injection, keyed by op and normalized path
	errorPaths map[string]error
}

// NewMemoryStorage creates an empty storage containing only the vault root
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries:    map[string]bool{"": true},
		errorPaths: make(map[string]error),
	}
}

func injectKey(op, p string) string {
	return op + ":" + paths.Normalize(p)
}

// FailOn makes op on path return err
func (m *MemoryStorage) FailOn(op, p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[injectKey(op, p)] = err
}

// AddFile creates a file and any missing parent directories
func (m *MemoryStorage) AddFile(p string) *MemoryStorage {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = paths.Normalize(p)
	m.mkdirAll(path.Dir(p))
	m.entries[p] = false
	return m
}

// AddDir creates a directory and any missing parents
func (m *MemoryStorage) AddDir(p string) *MemoryStorage {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAll(paths.Normalize(p))
	return m
}

// Remove deletes an entry and everything below it
func (m *MemoryStorage) Remove(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = paths.Normalize(p)
	for e := range m.entries {
		if e == p || strings.HasPrefix(e, p+"/") {
			delete(m.entries, e)
		}
	}
}

// HasFile reports whether a regular file exists at p
func (m *MemoryStorage) HasFile(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	isDir, ok := m.entries[paths.Normalize(p)]
	return ok && !isDir
}

// HasDir reports whether a directory exists at p
func (m *MemoryStorage) HasDir(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[paths.Normalize(p)]
}

// Files lists every regular file, sorted
func (m *MemoryStorage) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var files []string
	for p, isDir := range m.entries {
		if !isDir {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files
}

// Calls returns the recorded operations as "op path[ -> path]"
func (m *MemoryStorage) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CountCalls returns how many times op was called
func (m *MemoryStorage) CountCalls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

func (m *MemoryStorage) Exists(p string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = paths.Normalize(p)
	m.calls = append(m.calls, OpExists+" "+p)

	if err, ok := m.errorPaths[injectKey(OpExists, p)]; ok {
		return false, err
	}
	_, ok := m.entries[p]
	return ok, nil
}

func (m *MemoryStorage) MkdirAll(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = paths.Normalize(p)
	m.calls = append(m.calls, OpMkdirAll+" "+p)

	if err, ok := m.errorPaths[injectKey(OpMkdirAll, p)]; ok {
		return err
	}
	for dir := p; dir != "." && dir != ""; dir = path.Dir(dir) {
		if isDir, ok := m.entries[dir]; ok && !isDir {
			return &fs.PathError{Op: "mkdir", Path: dir, Err: errors.New("not a directory")}
		}
	}
	m.mkdirAll(p)
	return nil
}

func (m *MemoryStorage) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldpath, newpath = paths.Normalize(oldpath), paths.Normalize(newpath)
	m.calls = append(m.calls, fmt.Sprintf("%s %s -> %s", OpRename, oldpath, newpath))

	if err, ok := m.errorPaths[injectKey(OpRename, oldpath)]; ok {
		return err
	}
	isDir, ok := m.entries[oldpath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	parent := parentOf(newpath)
	if parentIsDir, ok := m.entries[parent]; !ok || !parentIsDir {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrNotExist}
	}
	if oldpath == newpath {
		return nil
	}

	delete(m.entries, oldpath)
	m.entries[newpath] = isDir
	if isDir {
		moved := make(map[string]bool)
		for e, d := range m.entries {
			if strings.HasPrefix(e, oldpath+"/") {
				moved[e] = d
			}
		}
		for e, d := range moved {
			delete(m.entries, e)
			m.entries[newpath+strings.TrimPrefix(e, oldpath)] = d
		}
	}
	return nil
}

// mkdirAll must be called with mu held
func (m *MemoryStorage) mkdirAll(p string) {
	for dir := p; dir != "." && dir != ""; dir = path.Dir(dir) {
		m.entries[dir] = true
	}
}

func parentOf(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}
