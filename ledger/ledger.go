// SPDX-License-Identifier: EPL-2.0

package ledger

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	// registers the pure Go "sqlite" driver
	_ "modernc.org/sqlite"
)

// Status of a clean/noise pair.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusSkipped  Status = "skipped"
)

// Entry records what happened to one clean file.
type Entry struct {
	Split  string
	Clean  string
	Noise  string
	Output string
	Offset int
	Gain   float64
	Status Status
	Reason string
}

const schema = `
CREATE TABLE IF NOT EXISTS pairs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT    NOT NULL,
	split       TEXT    NOT NULL,
	clean_path  TEXT    NOT NULL,
	noise_path  TEXT    NOT NULL DEFAULT '',
	output_path TEXT    NOT NULL DEFAULT '',
	noise_offset INTEGER NOT NULL DEFAULT 0,
	gain        REAL    NOT NULL DEFAULT 0,
	status      TEXT    NOT NULL,
	reason      TEXT    NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS pairs_run_split ON pairs (run_id, split, status);
`

// Ledger is a SQLite database of every pair produced by one run. Earlier
// runs written to the same file are kept and told apart by run id.
// A Ledger is safe for concurrent use.
type Ledger struct {
	db    *sql.DB
	runID uuid.UUID

	mu     sync.Mutex
	closed bool
}

// Open opens or creates the ledger database at path and starts a new run.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema in %s: %w", path, err)
	}

	return &Ledger{db: db, runID: uuid.New()}, nil
}

// RunID identifies the entries recorded through this Ledger.
func (l *Ledger) RunID() uuid.UUID { return l.runID }

func (l *Ledger) Record(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	_, err := l.db.Exec(
		`INSERT INTO pairs (run_id, split, clean_path, noise_path, output_path, noise_offset, gain, status, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.runID.String(), e.Split, e.Clean, e.Noise, e.Output, e.Offset, e.Gain, string(e.Status), e.Reason,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.Clean, err)
	}

	return nil
}

// Count returns how many entries of this run have the split and status.
func (l *Ledger) Count(split string, status Status) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, ErrClosed
	}

	var n int

	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM pairs WHERE run_id = ? AND split = ? AND status = ?`,
		l.runID.String(), split, string(status),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s entries: %w", split, err)
	}

	return n, nil
}

// Entries returns the entries of this run for split in insertion order.
func (l *Ledger) Entries(split string) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}

	rows, err := l.db.Query(
		`SELECT split, clean_path, noise_path, output_path, noise_offset, gain, status, reason
		 FROM pairs WHERE run_id = ? AND split = ? ORDER BY id`,
		l.runID.String(), split,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s entries: %w", split, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e      Entry
			status string
		)
		if err := rows.Scan(&e.Split, &e.Clean, &e.Noise, &e.Output, &e.Offset, &e.Gain, &status, &e.Reason); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		e.Status = Status(status)
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return out, nil
}

func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	return l.db.Close()
}
