// Package storage provides SQLite-based persistence for finished 2048 episodes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

// Source labels who played an episode.
const (
	SourcePlayer    = "player"
	SourceSimulator = "simulator"
)

// Store manages the SQLite database connection for episode records.
type Store struct {
	db *sql.DB
}

// Episode is a single finished-game record.
type Episode struct {
	ID        int64
	EpisodeID uuid.UUID
	Seed      int64
	Score     int
	MaxTile   int
	Moves     int
	Source    string
	CreatedAt time.Time
}

// Stats contains aggregated statistics over recorded episodes.
type Stats struct {
	Episodes   int
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

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
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			episode_id TEXT NOT NULL UNIQUE,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(score DESC);
		CREATE INDEX IF NOT EXISTS idx_episodes_source ON episodes(source);
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

// SaveEpisode records a finished episode. A zero EpisodeID is replaced with
// a fresh one. Returns the row ID of the inserted record.
func (s *Store) SaveEpisode(ep Episode) (int64, error) {
	if ep.EpisodeID == uuid.Nil {
		ep.EpisodeID = uuid.New()
	}
	if ep.Source == "" {
		ep.Source = SourcePlayer
	}

	result, err := s.db.Exec(
		`INSERT INTO episodes (episode_id, seed, score, max_tile, moves, source)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ep.EpisodeID.String(), ep.Seed, ep.Score, ep.MaxTile, ep.Moves, ep.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopEpisodes retrieves the top N episodes by score.
// An empty source matches every source.
func (s *Store) TopEpisodes(source string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, episode_id, seed, score, max_tile, moves, source, created_at
		 FROM episodes
		 WHERE ? = '' OR source = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		source, source, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

// EpisodeByID retrieves one episode. Returns nil if it does not exist.
func (s *Store) EpisodeByID(id uuid.UUID) (*Episode, error) {
	row := s.db.QueryRow(
		`SELECT id, episode_id, seed, score, max_tile, moves, source, created_at
		 FROM episodes WHERE episode_id = ?`,
		id.String(),
	)
	ep, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

// HighScore returns the highest recorded score. Returns 0 if none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM episodes").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Clear deletes episodes of the given source, or all of them for "".
func (s *Store) Clear(source string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE ? = '' OR source = ?", source, source)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// GetStats retrieves aggregated statistics over all episodes.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM episodes`,
	).Scan(&stats.Episodes, &stats.HighScore, &stats.AvgScore, &stats.BestTile, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row scanner) (Episode, error) {
	var (
		ep        Episode
		episodeID string
		createdAt any
	)
	err := row.Scan(&ep.ID, &episodeID, &ep.Seed, &ep.Score, &ep.MaxTile, &ep.Moves, &ep.Source, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ep, err
	}
	if err != nil {
		return ep, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	ep.EpisodeID, err = uuid.Parse(episodeID)
	if err != nil {
		return ep, fmt.Errorf("storage: bad episode id %q: %w", episodeID, err)
	}
	ep.CreatedAt = parseTime(createdAt)
	return ep, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
