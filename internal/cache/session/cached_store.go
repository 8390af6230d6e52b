package session

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"vibechart/internal/chartconfig"
	sessionrepo "vibechart/internal/gateway/repository/session"
)

type Store = sessionrepo.Store

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        5 * time.Minute,
		MaxEntries: 1024,
	}
}

type MetricsSnapshot struct {
	Hits           uint64 `json:"hits"`
	Misses         uint64 `json:"misses"`
	OriginReads    uint64 `json:"originReads"`
	OriginWrites   uint64 `json:"originWrites"`
	OriginReadErr  uint64 `json:"originReadErrors"`
	OriginWriteErr uint64 `json:"originWriteErrors"`
}

type Metrics struct {
	hits           atomic.Uint64
	misses         atomic.Uint64
	originReads    atomic.Uint64
	originWrites   atomic.Uint64
	originReadErr  atomic.Uint64
	originWriteErr atomic.Uint64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Hits:           m.hits.Load(),
		Misses:         m.misses.Load(),
		OriginReads:    m.originReads.Load(),
		OriginWrites:   m.originWrites.Load(),
		OriginReadErr:  m.originReadErr.Load(),
		OriginWriteErr: m.originWriteErr.Load(),
	}
}

// CachedStore keeps the latest snapshot per session in an expiring LRU. Reads
// go through to the origin on a miss; saves write through.
type CachedStore struct {
	origin  Store
	latest  *expirable.LRU[string, sessionrepo.Snapshot]
	metrics Metrics
}

func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	return &CachedStore{
		origin: origin,
		latest: expirable.NewLRU[string, sessionrepo.Snapshot](cfg.MaxEntries, nil, cfg.TTL),
	}
}

func (s *CachedStore) Touch(ctx context.Context, sessionID string) error {
	return s.origin.Touch(ctx, sessionID)
}

func (s *CachedStore) Save(ctx context.Context, snap sessionrepo.Snapshot) (sessionrepo.Snapshot, error) {
	s.metrics.originWrites.Add(1)
	saved, err := s.origin.Save(ctx, snap)
	if err != nil {
		s.metrics.originWriteErr.Add(1)
		s.latest.Remove(cacheKey(snap.SessionID))
		return sessionrepo.Snapshot{}, err
	}
	s.latest.Add(cacheKey(saved.SessionID), copySnapshot(saved))
	return saved, nil
}

func (s *CachedStore) LoadLatest(ctx context.Context, sessionID string) (sessionrepo.Snapshot, error) {
	key := cacheKey(sessionID)
	if snap, ok := s.latest.Get(key); ok {
		s.metrics.hits.Add(1)
		return copySnapshot(snap), nil
	}
	s.metrics.misses.Add(1)
	s.metrics.originReads.Add(1)

	snap, err := s.origin.LoadLatest(ctx, sessionID)
	if err != nil {
		s.metrics.originReadErr.Add(1)
		return sessionrepo.Snapshot{}, err
	}
	s.latest.Add(key, copySnapshot(snap))
	return snap, nil
}

func (s *CachedStore) Metrics() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{}
	}
	return s.metrics.snapshot()
}

func cacheKey(sessionID string) string {
	return strings.TrimSpace(sessionID)
}

func copySnapshot(snap sessionrepo.Snapshot) sessionrepo.Snapshot {
	snap.Chart.Config = chartconfig.Clone(snap.Chart.Config)
	return snap
}
