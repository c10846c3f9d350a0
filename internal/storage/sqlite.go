// Package storage provides SQLite-based persistence for finished session scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrDuplicateRun is returned when a run id is saved twice.
var ErrDuplicateRun = errors.New("storage: run already recorded")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is the stored summary of one finished session.
type ScoreEntry struct {
	ID        int64
	RunID     string // uuid of the session
	Mode      string // game id, e.g. "tileblast" or "tileblast_endless"
	Score     int
	MovesUsed int
	Status    string // "goal reached", "out of moves", ...
	CreatedAt time.Time
}

// ModeStats aggregates all stored runs of a mode.
type ModeStats struct {
	Runs    int
	Best    int
	Average float64
	Wins    int // runs that reached the score target
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			moves_used INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished session. Saving the same run twice returns
// ErrDuplicateRun. Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.RunID == "" {
		return 0, errors.New("storage: cannot save score without run id")
	}
	if _, err := s.ScoreByRun(e.RunID); err == nil {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateRun, e.RunID)
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (run_id, mode, score, moves_used, status) VALUES (?, ?, ?, ?, ?)",
		e.RunID, e.Mode, e.Score, e.MovesUsed, e.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectScores = `SELECT id, run_id, mode, score, moves_used, status, created_at FROM scores`

// TopScores retrieves the top N scores for the given mode.
// Ties are broken by fewer moves, then by the earlier run.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		selectScores+`
		 WHERE mode = ?
		 ORDER BY score DESC, moves_used ASC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// ScoreByRun looks up the entry saved for a run. Returns sql.ErrNoRows
// (wrapped) when the run was never recorded.
func (s *Store) ScoreByRun(runID string) (ScoreEntry, error) {
	rows, err := s.db.Query(selectScores+" WHERE run_id = ?", runID)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return ScoreEntry{}, err
	}
	if len(entries) == 0 {
		return ScoreEntry{}, fmt.Errorf("storage: run %s: %w", runID, sql.ErrNoRows)
	}
	return entries[0], nil
}

func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Mode, &e.Score, &e.MovesUsed, &e.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats aggregates every stored run of a mode.
func (s *Store) Stats(mode, winStatus string) (ModeStats, error) {
	var st ModeStats
	var best sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		 FROM scores WHERE mode = ?`,
		winStatus, mode,
	).Scan(&st.Runs, &best, &avg, &st.Wins)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	st.Best = int(best.Int64)
	st.Average = avg.Float64
	return st, nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	return "~/.tileblast/scores.db"
}
