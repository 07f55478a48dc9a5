// Package store is the session-scoped annotation ledger.
//
// Annotations are keyed by record identity, never by display position, so
// re-sorting or re-filtering can neither lose nor misattribute them. The
// ledger lives in an in-memory SQLite database: nothing outlives the
// process, matching the single-session lifecycle of a dataset.
//
// # Thread Safety
//
// All mutations arrive from single, non-overlapping user actions on the UI
// update loop; the store does no additional locking.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/abelbrown/geophone/internal/logging"
	"github.com/abelbrown/geophone/internal/record"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store holds per-record annotations and per-load session bookkeeping.
type Store struct {
	db *sql.DB
}

// Load describes one dataset loaded during this session.
type Load struct {
	Filename string
	LoadedAt time.Time
	Stats    record.Stats
}

// New creates an in-memory store.
func New() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each pooled connection would get its own empty :memory: database;
	// pin the pool to a single connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS annotations (
		identity INTEGER PRIMARY KEY,
		status TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS loads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		loaded_at DATETIME NOT NULL,
		total INTEGER NOT NULL,
		identified INTEGER NOT NULL,
		unknown INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the annotation for a record identity. Identities never
// annotated return record.Unset.
func (s *Store) Get(identity int) record.Annotation {
	var status string
	err := s.db.QueryRow("SELECT status FROM annotations WHERE identity = ?", identity).Scan(&status)
	if err == sql.ErrNoRows {
		return record.Unset
	}
	if err != nil {
		logging.Error("Annotation lookup failed", "identity", identity, "error", err)
		return record.Unset
	}
	return record.ParseAnnotation(status)
}

// Toggle applies the click-to-toggle transition for a record and persists
// the result: selecting the current value clears it, anything else replaces
// it. The new value is always returned; a storage failure is logged and the
// ledger keeps its previous state.
func (s *Store) Toggle(identity int, target record.Annotation) record.Annotation {
	next := record.Toggle(s.Get(identity), target)

	var err error
	if next == record.Unset {
		_, err = s.db.Exec("DELETE FROM annotations WHERE identity = ?", identity)
	} else {
		_, err = s.db.Exec(`
			INSERT INTO annotations (identity, status) VALUES (?, ?)
			ON CONFLICT(identity) DO UPDATE SET status = excluded.status
		`, identity, next.String())
	}
	if err != nil {
		logging.Error("Failed to persist annotation", "identity", identity, "status", next.String(), "error", err)
	}
	return next
}

// Annotations returns every non-unset annotation keyed by identity.
func (s *Store) Annotations() map[int]record.Annotation {
	out := make(map[int]record.Annotation)
	rows, err := s.db.Query("SELECT identity, status FROM annotations")
	if err != nil {
		logging.Error("Failed to read annotations", "error", err)
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var identity int
		var status string
		if err := rows.Scan(&identity, &status); err != nil {
			logging.Error("Failed to scan annotation", "error", err)
			continue
		}
		out[identity] = record.ParseAnnotation(status)
	}
	if err := rows.Err(); err != nil {
		logging.Error("Error iterating annotations", "error", err)
	}
	return out
}

// BeginDataset clears every annotation and records the new load in one
// transaction, so no derived view can ever observe annotations from a
// previous dataset.
func (s *Store) BeginDataset(filename string, stats record.Stats) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM annotations"); err != nil {
		return fmt.Errorf("failed to clear annotations: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO loads (filename, loaded_at, total, identified, unknown)
		VALUES (?, ?, ?, ?, ?)
	`, filename, time.Now(), stats.Total, stats.Identified, stats.Unknown); err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}
	return tx.Commit()
}

// Reset clears all annotations, for the explicit reset action.
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM annotations"); err != nil {
		return fmt.Errorf("failed to reset annotations: %w", err)
	}
	return nil
}

// Loads returns the datasets loaded during this session, oldest first.
func (s *Store) Loads() ([]Load, error) {
	rows, err := s.db.Query(`
		SELECT filename, loaded_at, total, identified, unknown
		FROM loads ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query loads: %w", err)
	}
	defer rows.Close()

	var loads []Load
	for rows.Next() {
		var l Load
		if err := rows.Scan(&l.Filename, &l.LoadedAt, &l.Stats.Total, &l.Stats.Identified, &l.Stats.Unknown); err != nil {
			return nil, fmt.Errorf("failed to scan load: %w", err)
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loads: %w", err)
	}
	return loads, nil
}

// Close closes the database, discarding the session.
func (s *Store) Close() error {
	return s.db.Close()
}
