// Package storage provides SQLite-based persistence for finished games.
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

// Mode identifiers stored in the scores table.
const (
	ModeSolo = "solo"
	ModeDuel = "duel"
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	Mode      string
	Score     int
	Lines     int
	Level     int
	CreatedAt time.Time
}

// DuelResult is the outcome of a two-player game as seen by one peer.
type DuelResult struct {
	ID            int64
	RoomID        string
	Player        string
	Opponent      string
	Score         int
	OpponentScore int
	Won           bool
	CreatedAt     time.Time
}

// DuelRecord summarizes a player's duel history.
type DuelRecord struct {
	Player string
	Wins   int
	Losses int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);

		CREATE TABLE IF NOT EXISTS duels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_id TEXT NOT NULL,
			player TEXT NOT NULL,
			opponent TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			opponent_score INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_duels_player ON duels(player);
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

// SaveScore records a finished game and returns the new row ID.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.Mode == "" {
		e.Mode = ModeSolo
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (mode, score, lines, level) VALUES (?, ?, ?, ?)",
		e.Mode, e.Score, e.Lines, e.Level,
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

// TopScores retrieves the top scores for mode, highest first.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, lines, level, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Score, &e.Lines, &e.Level, &createdAt); err != nil {
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

// HighScore returns the highest score for mode, or 0 if none exist.
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

// ClearScores deletes all scores for mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveDuel records the outcome of a duel and returns the new row ID.
func (s *Store) SaveDuel(d DuelResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO duels (room_id, player, opponent, score, opponent_score, won)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.RoomID, d.Player, d.Opponent, d.Score, d.OpponentScore, d.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save duel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentDuels retrieves the most recent duels, newest first.
func (s *Store) RecentDuels(limit int) ([]DuelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, room_id, player, opponent, score, opponent_score, won, created_at
		 FROM duels
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duels: %w", err)
	}
	defer rows.Close()

	var results []DuelResult
	for rows.Next() {
		var d DuelResult
		var createdAt any
		if err := rows.Scan(&d.ID, &d.RoomID, &d.Player, &d.Opponent, &d.Score, &d.OpponentScore, &d.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan duel row: %w", err)
		}
		d.CreatedAt = parseTime(createdAt)
		results = append(results, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// Record returns the win/loss count for player.
func (s *Store) Record(player string) (DuelRecord, error) {
	rec := DuelRecord{Player: player}
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(won), 0), COALESCE(SUM(1 - won), 0)
		 FROM duels WHERE player = ?`,
		player,
	).Scan(&rec.Wins, &rec.Losses)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("storage: cannot query record: %w", err)
	}
	return rec, nil
}

// Stats contains aggregated statistics for one mode.
type Stats struct {
	Mode       string
	Games      int
	HighScore  int
	AvgScore   float64
	TotalLines int
	LastPlayed time.Time
}

// ModeStats retrieves aggregated statistics for mode.
func (s *Store) ModeStats(mode string) (*Stats, error) {
	stats := &Stats{Mode: mode}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(lines), 0), MAX(created_at)
		 FROM scores WHERE mode = ?`,
		mode,
	).Scan(&stats.Games, &stats.HighScore, &stats.AvgScore, &stats.TotalLines, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both driver-decoded times and raw SQLite datetime strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
