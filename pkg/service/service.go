// Package service wires configuration, the router, the journal and the
// vault watcher into a long-running process for one vault.
package service

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/filerouter/pkg/config"
	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/filesystem"
	"github.com/arthur-debert/filerouter/pkg/journal"
	"github.com/arthur-debert/filerouter/pkg/logging"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/router"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/arthur-debert/filerouter/pkg/watcher"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options configures a Service
type Options struct {
	Paths    *paths.Paths
	Provider *config.Provider

	// Scan queues the files already in the vault when Run starts
	Scan bool

	// WatchConfig reloads the configuration when its files change
	WatchConfig bool

	// NoJournal disables the move journal regardless of configuration
	NoJournal bool
}

// Service routes files for a single vault
type Service struct {
	paths    *paths.Paths
	provider *config.Provider
	vaultFs  afero.Fs
	router   *router.Router
	journal  *journal.Store
	lock     *flock.Flock
	logger   zerolog.Logger
	opts     Options

	drains chan string
}

var _ types.EventHandler = (*Service)(nil)

// New builds a service. The journal is opened here; the vault lock is only
// taken by Run and RouteOnce.
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.Paths == nil || opts.Provider == nil {
		return nil, errors.New(errors.ErrInvalidInput, "service needs paths and a configuration provider")
	}

	s := &Service{
		paths:    opts.Paths,
		provider: opts.Provider,
		vaultFs:  filesystem.NewVaultFs(opts.Paths.VaultRoot()),
		lock:     flock.New(opts.Paths.LockPath()),
		logger:   logging.GetLogger("service"),
		opts:     opts,
		drains:   make(chan string, 1),
	}

	var routerOpts []router.Option
	if !opts.NoJournal && opts.Provider.Current().Config.Journal.Enabled {
		store, err := journal.Open(ctx, opts.Paths.JournalPath())
		if err != nil {
			return nil, err
		}
		s.journal = store
		routerOpts = append(routerOpts, router.WithRecorder(store.Recorder(opts.Paths.VaultRoot())))
	}

	s.router = router.New(opts.Provider, filesystem.NewStorage(s.vaultFs), routerOpts...)
	return s, nil
}

// Router returns the service's router
func (s *Service) Router() *router.Router {
	return s.router
}

// Journal returns the move journal, or nil when it is disabled
func (s *Service) Journal() *journal.Store {
	return s.journal
}

// OnFileCreated queues new files
func (s *Service) OnFileCreated(path string, isDir bool) {
	s.router.Enqueue(path, isDir)
}

// OnWorkspaceModified schedules a drain on the service goroutine. Requests
// arriving while one is already pending are coalesced.
func (s *Service) OnWorkspaceModified(path string) {
	if !s.router.ShouldDrain(path) {
		return
	}
	select {
	case s.drains <- path:
	default:
	}
}

// Scan queues every file already in the vault and returns how many were
// queued. Files already in their rule's destination folder are not queued.
func (s *Service) Scan() (int, error) {
	queued, _, err := s.scan()
	return queued, err
}

// scan is Scan that also returns an in_place result for every settled file
func (s *Service) scan() (int, []router.Result, error) {
	defer logging.LogOperationStart(s.logger, "scan")()

	snap := s.provider.Current()
	queued := 0
	var settled []router.Result
	err := filesystem.WalkFiles(s.vaultFs, snap.Config.Watch.IgnoreDirs, func(path string) error {
		if paths.HasHiddenSegment(path) {
			return nil
		}
		if res, ok := s.router.Settled(path); ok {
			s.logger.Debug().Str("path", path).Msg("File already in its destination folder")
			settled = append(settled, res)
			return nil
		}
		if s.router.Enqueue(path, false) {
			queued++
		}
		return nil
	})
	if err != nil {
		return queued, settled, errors.Wrap(err, errors.ErrInternal, "failed to scan vault")
	}
	s.logger.Info().
		Int("queued", queued).
		Int("settled", len(settled)).
		Msg("Vault scan complete")
	return queued, settled, nil
}

// Run watches the vault and routes files until ctx is cancelled
func (s *Service) Run(ctx context.Context) error {
	unlock, err := s.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	if s.opts.WatchConfig {
		if err := s.provider.Watch(); err != nil {
			s.logger.Warn().Err(err).Msg("Config changes will need a restart")
		}
		defer func() { _ = s.provider.Close() }()
	}

	snap := s.provider.Current()
	w, err := watcher.New(s.paths.VaultRoot(), s, watcher.Options{
		IgnoreDirs: snap.Config.Watch.IgnoreDirs,
		Debounce:   snap.Config.Watch.Debounce,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if s.opts.Scan {
		n, err := s.Scan()
		if err != nil {
			return err
		}
		if n > 0 {
			s.OnWorkspaceModified("")
		}
	}

	s.logger.Info().Str("vault", s.paths.VaultRoot()).Msg("Router running")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Int("queued", s.router.Queue().Len()).Msg("Router stopping")
			return nil
		case trigger := <-s.drains:
			s.router.Drain(ctx, trigger)
		case err := <-w.Errors():
			s.logger.Warn().Err(err).Msg("Watcher reported an error")
		}
	}
}

// RouteOnce routes files in a single pass without watching. With scan set
// the whole vault is queued, otherwise only files. With dryRun set the
// report describes what would happen and nothing is moved.
func (s *Service) RouteOnce(ctx context.Context, files []string, scan, dryRun bool) (*router.DrainReport, error) {
	unlock, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var settled []router.Result
	if scan {
		if _, settled, err = s.scan(); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		rel, err := paths.FromArg(s.paths.VaultRoot(), f)
		if err != nil {
			return nil, err
		}
		if !s.router.Enqueue(rel, false) {
			s.logger.Info().Str("path", rel).Msg("File not queued")
		}
	}

	var report *router.DrainReport
	if dryRun {
		report = s.router.Preview()
	} else {
		report = s.router.Drain(ctx, "route")
	}
	report.Results = append(settled, report.Results...)
	return report, nil
}

// Close releases the journal
func (s *Service) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

// acquire takes the per-vault lock so only one process routes a vault
func (s *Service) acquire() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.paths.LockPath()), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrLockHeld, "failed to create lock directory")
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockHeld, "failed to lock %s", s.paths.LockPath())
	}
	if !ok {
		return nil, errors.Newf(errors.ErrLockHeld, "another filerouter process is routing %s", s.paths.VaultRoot()).
			WithDetail("lock", s.paths.LockPath())
	}
	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to release vault lock")
		}
	}, nil
}
