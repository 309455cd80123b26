// Package storage provides SQLite-based persistence for finished-game results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only summaries of completed games are stored; boards are never saved.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout CURRENT_TIMESTAMP produces.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// GameResult is one finished game.
type GameResult struct {
	ID        string
	Score     int
	MaxTile   int
	Status    string // "win" or "lose"
	Moves     int
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all recorded games.
type Stats struct {
	Games      int
	Wins       int
	HighScore  int
	AvgScore   float64
	BestTile   int
	TotalMoves int64
	LastPlayed time.Time
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

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			status TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_score ON games(score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC);
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

// SaveResult records a finished game. ID and CreatedAt are filled in when empty.
// Returns the stored record.
func (s *Store) SaveResult(r GameResult) (GameResult, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.Exec(
		"INSERT INTO games (id, score, max_tile, status, moves, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.Score, r.MaxTile, r.Status, r.Moves, r.CreatedAt.Format(sqliteTime),
	)
	if err != nil {
		return GameResult{}, fmt.Errorf("storage: cannot save result: %w", err)
	}

	return r, nil
}

// TopScores retrieves the top N results ordered by score descending.
func (s *Store) TopScores(limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.query(
		`SELECT id, score, max_tile, status, moves, created_at
		 FROM games
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
}

// Recent retrieves the most recent N results.
func (s *Store) Recent(limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.query(
		`SELECT id, score, max_tile, status, moves, created_at
		 FROM games
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// Result retrieves one record by ID. Returns nil if it does not exist.
func (s *Store) Result(id string) (*GameResult, error) {
	results, err := s.query(
		`SELECT id, score, max_tile, status, moves, created_at
		 FROM games
		 WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (s *Store) query(q string, args ...any) ([]GameResult, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var r GameResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.MaxTile, &r.Status, &r.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// HighScore returns the highest recorded score, or 0 if none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM games").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats returns aggregated statistics over all recorded games.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'win' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(MAX(max_tile), 0),
		        COALESCE(SUM(moves), 0)
		 FROM games`,
	).Scan(&stats.Games, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.BestTile, &stats.TotalMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM games ORDER BY created_at DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Clear deletes all recorded results.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
