// Package store keeps an undo journal of sample snapshots in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryPath opens a database that lives only as long as the Store.
const MemoryPath = ":memory:"

// ErrEmpty is returned by Pop when no snapshot is stored.
var ErrEmpty = errors.New("nothing to undo")

// Snapshot is one saved state of the sample.
type Snapshot struct {
	ID     int64
	Label  string
	Values []float64
}

// Store wraps SQLite access for snapshots.
type Store struct {
	db    *sql.DB
	limit int
}

// Open opens or creates the SQLite database and applies migrations.
// limit bounds the number of snapshots kept; 0 keeps all.
func Open(path string, limit int) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, limit: limit}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			vals TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Push saves values as the newest snapshot.
func (s *Store) Push(ctx context.Context, label string, values []float64) (int64, error) {
	if values == nil {
		values = []float64{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO snapshots (label, vals) VALUES (?, ?)`, label, string(encoded))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if s.limit > 0 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
			s.limit); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Pop removes and returns the newest snapshot.
func (s *Store) Pop(ctx context.Context) (Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			// Best-effort rollback.
			_ = rerr
		}
	}()

	var snap Snapshot
	var encoded string
	err = tx.QueryRowContext(ctx, `SELECT id, label, vals FROM snapshots ORDER BY id DESC LIMIT 1`).
		Scan(&snap.ID, &snap.Label, &encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrEmpty
	}
	if err != nil {
		return Snapshot{}, err
	}
	if err := json.Unmarshal([]byte(encoded), &snap.Values); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, snap.ID); err != nil {
		return Snapshot{}, err
	}
	if err := tx.Commit(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Count returns the number of stored snapshots.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear removes every snapshot.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`)
	return err
}
