// Package watcher bridges fsnotify events on a vault directory to a
// types.EventHandler.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 250 * time.Millisecond

// Options configures a Watcher
type Options struct {
	// IgnoreDirs are directory names skipped at any depth
	IgnoreDirs []string

	// Debounce coalesces writes to the same file. Zero uses DefaultDebounceDelay.
	Debounce time.Duration
}

// Watcher watches a vault recursively. New files are reported through
// OnFileCreated as soon as they appear; writes are reported through
// OnWorkspaceModified after the file has been quiet for the debounce delay.
// Hidden entries and ignored directories are never reported.
type Watcher struct {
	watcher *fsnotify.Watcher
	handler types.EventHandler
	errors  chan error
	done    chan struct{}
	root    string
	ignore  map[string]bool
	logger  zerolog.Logger

	mu            sync.Mutex
	debounceDelay time.Duration
	debounceMap   map[string]*time.Timer
	closed        bool
}

// New starts watching root and forwards events to handler
func New(root string, handler types.EventHandler, opts Options) (*Watcher, error) {
	root = filepath.Clean(root)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrWatch, "vault root %s is not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create file watcher")
	}

	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	ignore := make(map[string]bool, len(opts.IgnoreDirs))
	for _, name := range opts.IgnoreDirs {
		ignore[name] = true
	}

	w := &Watcher{
		watcher:       watcher,
		handler:       handler,
		errors:        make(chan error, 10),
		done:          make(chan struct{}),
		root:          root,
		ignore:        ignore,
		logger:        logging.GetLogger("watcher"),
		debounceDelay: delay,
		debounceMap:   make(map[string]*time.Timer),
	}

	// Add the root directory and all subdirectories
	if err := w.addRecursive(root, false); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrapf(err, errors.ErrWatch, "failed to watch %s", root)
	}

	go w.processEvents()

	w.logger.Info().
		Str("root", root).
		Dur("debounce", delay).
		Strs("ignoreDirs", opts.IgnoreDirs).
		Msg("Watching vault")
	return w, nil
}

// addRecursive adds dir and its subdirectories to the watcher. With
// report set, files found below dir are reported as created, since they may
// have appeared before the watch was in place.
func (w *Watcher) addRecursive(dir string, report bool) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// If the directory doesn't exist, that's ok - skip it
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		rel, ok := w.relative(path)
		if !ok {
			if info.IsDir() && path != w.root {
				return filepath.SkipDir
			}
			if path != w.root {
				return nil
			}
		}

		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				// Ignore permission errors for directories we can't access
				if os.IsPermission(err) {
					w.logger.Warn().Str("dir", path).Msg("Permission denied, not watching directory")
					return filepath.SkipDir
				}
				return err
			}
			w.logger.Trace().Str("dir", path).Msg("Watching directory")
			return nil
		}

		if report && info.Mode().IsRegular() {
			w.handler.OnFileCreated(rel, false)
		}
		return nil
	})
}

// relative converts an absolute event path into a vault-relative one. It
// returns false for the root itself, for paths outside the vault and for
// hidden or ignored entries.
func (w *Watcher) relative(abs string) (string, bool) {
	rel, err := paths.Rel(w.root, abs)
	if err != nil || rel == "" {
		return "", false
	}
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") || w.ignore[part] {
			return "", false
		}
	}
	return rel, true
}

// processEvents processes fsnotify events until Close is called
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("File watcher error")
			select {
			case w.errors <- err:
			default:
				// Error channel full, drop the error
			}
		}
	}
}

// handleEvent processes a single fsnotify event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	rel, ok := w.relative(event.Name)
	if !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			// Gone already
			return
		}
		if info.IsDir() {
			w.handler.OnFileCreated(rel, true)
			if err := w.addRecursive(event.Name, true); err != nil {
				w.logger.Error().Err(err).Str("dir", rel).Msg("Failed to watch new directory")
				select {
				case w.errors <- err:
				default:
				}
			}
			return
		}
		w.logger.Debug().Str("path", rel).Msg("File created")
		w.handler.OnFileCreated(rel, false)

	case event.Has(fsnotify.Write):
		w.debounce(rel)

	default:
		// Removals, renames away and chmod do not affect routing
	}
}

// debounce coalesces rapid writes for the same file
func (w *Watcher) debounce(rel string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	// Cancel existing timer if any
	if timer, exists := w.debounceMap[rel]; exists {
		timer.Stop()
	}

	w.debounceMap[rel] = time.AfterFunc(w.debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounceMap, rel)
		closed := w.closed
		w.mu.Unlock()

		if closed {
			return
		}
		w.logger.Debug().Str("path", rel).Msg("File modified")
		w.handler.OnWorkspaceModified(rel)
	})
}

// Errors returns the channel for receiving watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Root returns the watched vault root
func (w *Watcher) Root() string {
	return w.root
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	// Cancel all pending debounce timers
	for _, timer := range w.debounceMap {
		timer.Stop()
	}
	w.debounceMap = nil
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}
