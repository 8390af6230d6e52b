package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store persists raw dataset snapshots per chat session.
type Store interface {
	Put(ctx context.Context, sessionID, name string, content []byte) error
	Get(ctx context.Context, sessionID, name string) ([]byte, error)
	// GetURL returns a download URL, or "" when the backend has none.
	GetURL(ctx context.Context, sessionID, name string) (string, error)
}

var ErrNotFound = errors.New("dataset not found")

func objectKey(sessionID, name string) string {
	normalized := strings.TrimLeft(strings.TrimSpace(name), "/")
	return strings.TrimSpace(sessionID) + "/" + normalized
}

func checkKey(sessionID, name string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session_id is required")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
