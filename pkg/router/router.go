package router

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/filerouter/pkg/config"
	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/queue"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/rs/zerolog"
)

// echoTTL bounds how long a move destination is remembered while waiting for
// the file system to report it back as a new file
const echoTTL = 10 * time.Second

// Clock supplies the processing time used for ${timestamp}
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Recorder persists finished drains
type Recorder interface {
	Record(ctx context.Context, report *DrainReport) error
}

// Router implements types.EventHandler on top of an intake queue
type Router struct {
	queue    *queue.Queue
	config   config.Source
	storage  types.Storage
	recorder Recorder
	clock    Clock
	logger   zerolog.Logger

	drainMu sync.Mutex

	echoMu sync.Mutex
	echoes map[string]time.Time
}

var _ types.EventHandler = (*Router)(nil)

// Option configures a Router
type Option func(*Router)

// WithClock replaces the wall clock
func WithClock(c Clock) Option {
	return func(r *Router) { r.clock = c }
}

// WithRecorder records every non-empty drain
func WithRecorder(rec Recorder) Option {
	return func(r *Router) { r.recorder = rec }
}

// WithQueue uses an existing intake queue
func WithQueue(q *queue.Queue) Option {
	return func(r *Router) { r.queue = q }
}

// New creates a router reading its configuration from src and moving files
// through storage
func New(src config.Source, storage types.Storage, opts ...Option) *Router {
	r := &Router{
		queue:   queue.New(),
		config:  src,
		storage: storage,
		clock:   systemClock{},
		logger:  logging.GetLogger("router"),
		echoes:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Queue returns the router's intake queue
func (r *Router) Queue() *queue.Queue {
	return r.queue
}

// OnFileCreated enqueues a newly created file
func (r *Router) OnFileCreated(path string, isDir bool) {
	r.Enqueue(path, isDir)
}

// Enqueue adds path to the intake queue unless it is a directory, matches
// the skip pattern, is already queued, or is a file this router just moved.
// It reports whether the file was queued.
func (r *Router) Enqueue(path string, isDir bool) bool {
	path = paths.Normalize(path)
	if isDir || path == "" {
		return false
	}

	snap := r.config.Current()
	if snap.Skips(path) {
		r.logger.Debug().
			Str("path", path).
			Str("skipPattern", snap.Config.SkipPattern).
			Msg("New file skipped by filter")
		return false
	}
	if r.isEcho(path) {
		r.logger.Trace().Str("path", path).Msg("Ignoring creation of a just-moved file")
		return false
	}
	if r.queue.Contains(path) {
		r.logger.Debug().Str("path", path).Msg("File already queued")
		return false
	}

	r.queue.Enqueue(types.NewPendingFile(path))
	r.logger.Info().
		Str("path", path).
		Int("queued", r.queue.Len()).
		Msg("New file queued")
	return true
}

// OnWorkspaceModified drains the queue when modified is not itself waiting
// in it. Modifications of a queued file mean it is still being written.
func (r *Router) OnWorkspaceModified(modified string) {
	if !r.ShouldDrain(modified) {
		return
	}
	r.Drain(context.Background(), modified)
}

// ShouldDrain reports whether a modification of path should trigger a drain
func (r *Router) ShouldDrain(path string) bool {
	if r.queue.Len() == 0 {
		return false
	}
	if path != "" && r.queue.Contains(paths.Normalize(path)) {
		r.logger.Trace().Str("path", path).Msg("Modified file is still queued, not draining")
		return false
	}
	return true
}

func (r *Router) rememberEcho(path string) {
	r.echoMu.Lock()
	defer r.echoMu.Unlock()
	r.echoes[path] = r.clock.Now().Add(echoTTL)
}

// isEcho reports whether path is the destination of a recent move. File
// systems may report such a file more than once, so entries live until
// they expire.
func (r *Router) isEcho(path string) bool {
	r.echoMu.Lock()
	defer r.echoMu.Unlock()

	now := r.clock.Now()
	for p, expires := range r.echoes {
		if now.After(expires) {
			delete(r.echoes, p)
		}
	}
	_, ok := r.echoes[path]
	return ok
}
