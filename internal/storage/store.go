// Package storage persists the three per-user records of the training core:
// profile, append-only session log, and progress aggregate. Reads return
// full snapshots and writes replace them whole; no partial-update semantics
// are offered or required.
package storage

import (
	"context"
	"errors"

	"github.com/claude/c25k/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store is the persistence collaborator contract. The Postgres
// implementation backs the server; the SQLite implementation backs the
// offline export CLI. ListSessions returns the log in the order sessions
// were appended, regardless of their start times.
type Store interface {
	SaveProfile(ctx context.Context, p models.UserProfile) error
	GetProfile(ctx context.Context, id uuid.UUID) (models.UserProfile, error)

	AppendSession(ctx context.Context, s models.WorkoutSession) error
	ListSessions(ctx context.Context, userID uuid.UUID) ([]models.WorkoutSession, error)

	SaveProgress(ctx context.Context, p models.UserProgress) error
	GetProgress(ctx context.Context, userID uuid.UUID) (models.UserProgress, error)

	Close() error
}
