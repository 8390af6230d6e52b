package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"vibechart/internal/chartconfig"
)

type memorySession struct {
	lastActive time.Time
	snapshots  []Snapshot
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

func (s *MemoryStore) Touch(_ context.Context, sessionID string) error {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return fmt.Errorf("session_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(id).lastActive = s.now()
	return nil
}

func (s *MemoryStore) Save(_ context.Context, snap Snapshot) (Snapshot, error) {
	id := strings.TrimSpace(snap.SessionID)
	if id == "" {
		return Snapshot{}, fmt.Errorf("session_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(id)
	snap.SessionID = id
	snap.Version = len(sess.snapshots) + 1
	snap.SavedAt = s.now()
	snap.Chart.Config = chartconfig.Clone(snap.Chart.Config)
	sess.snapshots = append(sess.snapshots, snap)
	sess.lastActive = snap.SavedAt
	return copySnapshot(snap), nil
}

func (s *MemoryStore) LoadLatest(_ context.Context, sessionID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok || len(sess.snapshots) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return copySnapshot(sess.snapshots[len(sess.snapshots)-1]), nil
}

func (s *MemoryStore) session(id string) *memorySession {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &memorySession{}
		s.sessions[id] = sess
	}
	return sess
}

func copySnapshot(snap Snapshot) Snapshot {
	snap.Chart.Config = chartconfig.Clone(snap.Chart.Config)
	return snap
}
