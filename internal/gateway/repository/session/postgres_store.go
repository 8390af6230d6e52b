package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"vibechart/internal/chartconfig"
)

type PostgresStore struct {
	db          *sql.DB
	schemaMu    sync.Mutex
	schemaReady bool
}

// OpenPostgres opens dsn with the pgx driver.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ensureSchema creates the tables on first use. A failed attempt is not
// remembered, so the next call tries again.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS chart_sessions (
  session_id TEXT PRIMARY KEY,
  chart_id TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  last_active TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS chart_snapshots (
  id BIGSERIAL PRIMARY KEY,
  session_id TEXT NOT NULL REFERENCES chart_sessions (session_id),
  version INTEGER NOT NULL,
  chart_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  config JSONB NOT NULL,
  saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  UNIQUE (session_id, version)
);
`); err != nil {
		return fmt.Errorf("ensure session schema: %w", err)
	}
	s.schemaReady = true
	return nil
}

func (s *PostgresStore) Touch(ctx context.Context, sessionID string) error {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return fmt.Errorf("session_id is required")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO chart_sessions (session_id) VALUES ($1)
ON CONFLICT (session_id) DO UPDATE SET last_active = NOW()`, id)
	return err
}

func (s *PostgresStore) Save(ctx context.Context, snap Snapshot) (Snapshot, error) {
	id := strings.TrimSpace(snap.SessionID)
	if id == "" {
		return Snapshot{}, fmt.Errorf("session_id is required")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return Snapshot{}, err
	}
	config, err := json.Marshal(snap.Chart.Config)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO chart_sessions (session_id, chart_id) VALUES ($1, $2)
ON CONFLICT (session_id) DO UPDATE SET chart_id = EXCLUDED.chart_id, last_active = NOW()`,
		id, snap.Chart.ID); err != nil {
		return Snapshot{}, err
	}
	row := tx.QueryRowContext(ctx, `
INSERT INTO chart_snapshots (session_id, version, chart_id, name, description, config)
SELECT $1::text, COALESCE(MAX(version), 0) + 1, $2::text, $3::text, $4::text, $5::jsonb
FROM chart_snapshots WHERE session_id = $1
RETURNING version, saved_at`,
		id, snap.Chart.ID, snap.Chart.Name, snap.Chart.Description, string(config))
	if err := row.Scan(&snap.Version, &snap.SavedAt); err != nil {
		return Snapshot{}, err
	}
	if err := tx.Commit(); err != nil {
		return Snapshot{}, err
	}
	snap.SessionID = id
	return snap, nil
}

func (s *PostgresStore) LoadLatest(ctx context.Context, sessionID string) (Snapshot, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return Snapshot{}, err
	}
	row := s.db.QueryRowContext(ctx, `
SELECT session_id, version, chart_id, name, description, config, saved_at
FROM chart_snapshots
WHERE session_id = $1
ORDER BY version DESC
LIMIT 1`, strings.TrimSpace(sessionID))
	return scanSnapshot(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		snap   Snapshot
		config []byte
	)
	err := row.Scan(
		&snap.SessionID,
		&snap.Version,
		&snap.Chart.ID,
		&snap.Chart.Name,
		&snap.Chart.Description,
		&config,
		&snap.SavedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	tree, err := chartconfig.FromJSON(config)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode config: %w", err)
	}
	snap.Chart.Config = tree
	return snap, nil
}
