package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/domino14/iqfit/board"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	workers INTEGER NOT NULL,
	total_solutions INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	digest TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS solutions (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	board TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);`

// Store archives completed runs and their merged solutions.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("results: open archive %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: create archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun records one run and its solutions in a single transaction and
// returns the new run id. Solutions are stored with their merged
// sequence number so the archived order matches the output artifact.
func (s *Store) SaveRun(ctx context.Context, startedAt time.Time, workers int,
	solutions []string, elapsed time.Duration, digest uint64) (int64, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, workers, total_solutions, elapsed_ms, digest)
		 VALUES (?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), workers, len(solutions),
		elapsed.Milliseconds(), fmt.Sprintf("%016x", digest))
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO solutions (run_id, seq, board) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for seq, sol := range solutions {
		if len(sol) != board.NumCells {
			return 0, fmt.Errorf("results: solution %d is %d bytes, want %d",
				seq, len(sol), board.NumCells)
		}
		if _, err := stmt.ExecContext(ctx, runID, seq, sol); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// RunSolutions reads back the archived solutions of a run in sequence
// order.
func (s *Store) RunSolutions(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT board FROM solutions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
