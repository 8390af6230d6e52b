package session

import (
	"context"
	"errors"
	"time"

	"vibechart/internal/chartconfig"
)

var ErrNotFound = errors.New("session not found")

// Chart is the persisted chart a session works on.
type Chart struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Config      chartconfig.Tree `json:"config"`
}

// Snapshot is one saved configuration of a session's chart. Version counts
// saves per session from 1.
type Snapshot struct {
	SessionID string    `json:"sessionId"`
	Chart     Chart     `json:"chart"`
	Version   int       `json:"version"`
	SavedAt   time.Time `json:"savedAt"`
}

type Store interface {
	// Touch registers sessionID when unknown and marks it active.
	Touch(ctx context.Context, sessionID string) error
	// Save appends a snapshot and returns it with Version and SavedAt set.
	Save(ctx context.Context, snap Snapshot) (Snapshot, error)
	// LoadLatest returns the newest snapshot or ErrNotFound.
	LoadLatest(ctx context.Context, sessionID string) (Snapshot, error)
}
