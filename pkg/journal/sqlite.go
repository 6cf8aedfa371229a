// Package journal keeps a history of routed files in a local sqlite
// database so moves can be inspected after the fact.
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/router"
	"github.com/arthur-debert/filerouter/pkg/types"
	_ "modernc.org/sqlite"
)

// DefaultListLimit is used when ListOptions.Limit is not positive
const DefaultListLimit = 50

type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at path and applies the schema.
// An empty path opens an in-memory journal.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	inMemory := false
	if trimmed == "" {
		trimmed = ":memory:"
		inMemory = true
	}
	if strings.Contains(trimmed, "mode=memory") || trimmed == ":memory:" || trimmed == "file::memory:" {
		inMemory = true
	}
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrJournal, "create journal directory for %s", trimmed)
		}
	}

	db, err := sql.Open("sqlite", trimmed)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "open sqlite")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrJournal, "enable foreign keys")
	}
	if !inMemory {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, errors.ErrJournal, "enable WAL")
		}
	}

	s := &Store{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS drains (
            id TEXT PRIMARY KEY,
            vault TEXT NOT NULL,
            trigger_path TEXT NOT NULL,
            started_at INTEGER NOT NULL,
            duration_ms INTEGER NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS moves (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            drain_id TEXT NOT NULL,
            source TEXT NOT NULL,
            destination TEXT NOT NULL,
            outcome TEXT NOT NULL,
            pattern TEXT NOT NULL,
            error_code TEXT NOT NULL,
            message TEXT NOT NULL,
            created_at INTEGER NOT NULL,
            FOREIGN KEY(drain_id) REFERENCES drains(id) ON DELETE CASCADE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_drains_vault ON drains(vault);`,
		`CREATE INDEX IF NOT EXISTS idx_moves_drain ON moves(drain_id);`,
		`CREATE INDEX IF NOT EXISTS idx_moves_created ON moves(created_at, id);`,
		`CREATE INDEX IF NOT EXISTS idx_moves_outcome ON moves(outcome);`,
	}

	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return errors.Wrap(err, errors.ErrJournal, "apply schema")
		}
	}
	return nil
}

// Record stores a drain report and all of its results in one transaction
func (s *Store) Record(ctx context.Context, vault string, report *router.DrainReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrJournal, "begin tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO drains (id, vault, trigger_path, started_at, duration_ms)
        VALUES (?, ?, ?, ?, ?);`,
		report.ID,
		vault,
		report.Trigger,
		report.StartedAt.UnixMilli(),
		report.Duration.Milliseconds(),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrJournal, "insert drain")
	}

	for _, res := range report.Results {
		pattern, code := "", ""
		if res.Rule != nil {
			pattern = res.Rule.Pattern
		}
		if res.Err != nil {
			code = string(errors.GetErrorCode(res.Err))
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO moves
            (drain_id, source, destination, outcome, pattern, error_code, message, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
			report.ID,
			res.File.Path,
			res.Destination,
			string(res.Outcome),
			pattern,
			code,
			res.Message(),
			report.StartedAt.UnixMilli(),
		)
		if err != nil {
			return errors.Wrap(err, errors.ErrJournal, "insert move")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrJournal, "commit drain")
	}
	return nil
}

// List returns journal entries, newest first
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT m.id, m.drain_id, d.vault, m.source, m.destination, m.outcome,
            m.pattern, m.error_code, m.message, m.created_at
        FROM moves m JOIN drains d ON d.id = m.drain_id
        WHERE (? = '' OR d.vault = ?) AND (? = '' OR m.outcome = ?)
        ORDER BY m.created_at DESC, m.id DESC
        LIMIT ?;`
	rows, err := s.db.QueryContext(ctx, query,
		opts.Vault, opts.Vault,
		string(opts.Outcome), string(opts.Outcome),
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "list moves")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var outcome string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.DrainID, &e.Vault, &e.Source, &e.Destination, &outcome,
			&e.Pattern, &e.ErrorCode, &e.Message, &createdAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrJournal, "scan move")
		}
		e.Outcome = types.Outcome(outcome)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "list moves")
	}
	return entries, nil
}

// Stats counts journal entries per outcome for vault, or for every vault
// when vault is empty
func (s *Store) Stats(ctx context.Context, vault string) (map[types.Outcome]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT m.outcome, COUNT(*)
        FROM moves m JOIN drains d ON d.id = m.drain_id
        WHERE (? = '' OR d.vault = ?)
        GROUP BY m.outcome;`, vault, vault)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "count moves")
	}
	defer rows.Close()

	stats := make(map[types.Outcome]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, errors.Wrap(err, errors.ErrJournal, "scan count")
		}
		stats[types.Outcome(outcome)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "count moves")
	}
	return stats, nil
}

// Prune deletes drains that started before cutoff along with their moves
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drains WHERE started_at < ?;`, cutoff.UnixMilli())
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrJournal, "prune drains")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrJournal, "prune drains")
	}
	return n, nil
}

// Recorder returns a router.Recorder writing drains of vault to s
func (s *Store) Recorder(vault string) router.Recorder {
	return &vaultRecorder{store: s, vault: vault}
}

type vaultRecorder struct {
	store *Store
	vault string
}

func (r *vaultRecorder) Record(ctx context.Context, report *router.DrainReport) error {
	return r.store.Record(ctx, r.vault, report)
}
