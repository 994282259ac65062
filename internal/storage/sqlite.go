package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/c25k/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is the local file-backed store used by the offline export CLI.
// Same snapshot semantics as the Postgres store, JSON stored as text.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the store database at dir/c25k.db.
func OpenSQLite(dir string) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "c25k.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id         TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			recorded_at TIMESTAMP NOT NULL,
			data        TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS progress (
			user_id TEXT PRIMARY KEY,
			data    TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveProfile inserts or replaces the profile snapshot.
func (s *SQLite) SaveProfile(ctx context.Context, p models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profiles (id, data, updated_at) VALUES (?, ?, ?)`,
		p.ID.String(), string(data), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// GetProfile fetches a profile snapshot by ID.
func (s *SQLite) GetProfile(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE id = ?`, id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("fetching profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("unmarshaling profile: %w", err)
	}
	return p, nil
}

// AppendSession appends one session to the user's log.
func (s *SQLite) AppendSession(ctx context.Context, ws models.WorkoutSession) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (id, user_id, recorded_at, data) VALUES (?, ?, ?, ?)`,
		ws.ID.String(), ws.UserID.String(), ws.StartTime, string(data))
	if err != nil {
		return fmt.Errorf("appending session: %w", err)
	}
	return nil
}

// ListSessions returns the user's full session log in insertion order, so a
// backdated start time cannot reorder the log.
func (s *SQLite) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.WorkoutSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM sessions WHERE user_id = ? ORDER BY rowid`,
		userID.String())
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.WorkoutSession
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		var ws models.WorkoutSession
		if err := json.Unmarshal([]byte(data), &ws); err != nil {
			return nil, fmt.Errorf("unmarshaling session: %w", err)
		}
		sessions = append(sessions, ws)
	}
	return sessions, rows.Err()
}

// SaveProgress replaces the user's progress snapshot.
func (s *SQLite) SaveProgress(ctx context.Context, p models.UserProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling progress: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO progress (user_id, data) VALUES (?, ?)`,
		p.UserID.String(), string(data))
	if err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// GetProgress fetches the user's progress snapshot.
func (s *SQLite) GetProgress(ctx context.Context, userID uuid.UUID) (models.UserProgress, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM progress WHERE user_id = ?`, userID.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProgress{}, ErrNotFound
	}
	if err != nil {
		return models.UserProgress{}, fmt.Errorf("fetching progress: %w", err)
	}

	var p models.UserProgress
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return models.UserProgress{}, fmt.Errorf("unmarshaling progress: %w", err)
	}
	return p, nil
}
