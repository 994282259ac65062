package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/c25k/internal/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the Postgres-backed store used by the server. Records are stored as
// JSONB snapshots keyed by user, mirroring the key-value contract.
type DB struct {
	Pool *pgxpool.Pool
}

var _ Store = (*DB)(nil)

// NewDB creates a Postgres store with a connection pool.
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// SaveProfile inserts or replaces the profile snapshot.
func (db *DB) SaveProfile(ctx context.Context, p models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO profiles (id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = $2, updated_at = $3
	`, p.ID, data, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// GetProfile fetches a profile snapshot by ID.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
	var data []byte
	err := db.Pool.QueryRow(ctx, `SELECT data FROM profiles WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("fetching profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("unmarshaling profile: %w", err)
	}
	return p, nil
}

// AppendSession appends one session to the user's log.
func (db *DB) AppendSession(ctx context.Context, s models.WorkoutSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, recorded_at, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, s.ID, s.UserID, s.StartTime, data)
	if err != nil {
		return fmt.Errorf("appending session: %w", err)
	}
	return nil
}

// ListSessions returns the user's full session log in insertion order, so a
// backdated start time cannot reorder the log.
func (db *DB) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT data FROM sessions WHERE user_id = $1 ORDER BY seq
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.WorkoutSession
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		var s models.WorkoutSession
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("unmarshaling session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SaveProgress replaces the user's progress snapshot.
func (db *DB) SaveProgress(ctx context.Context, p models.UserProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling progress: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO progress (user_id, data)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET data = $2
	`, p.UserID, data)
	if err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// GetProgress fetches the user's progress snapshot.
func (db *DB) GetProgress(ctx context.Context, userID uuid.UUID) (models.UserProgress, error) {
	var data []byte
	err := db.Pool.QueryRow(ctx, `SELECT data FROM progress WHERE user_id = $1`, userID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProgress{}, ErrNotFound
	}
	if err != nil {
		return models.UserProgress{}, fmt.Errorf("fetching progress: %w", err)
	}

	var p models.UserProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return models.UserProgress{}, fmt.Errorf("unmarshaling progress: %w", err)
	}
	return p, nil
}
