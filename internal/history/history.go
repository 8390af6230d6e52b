package history

import (
	"sync"

	"vibechart/internal/chartconfig"
)

// Log is an append-only ordered sequence of full configurations. Undo drops the
// newest entry but never the first one.
type Log struct {
	mu      sync.RWMutex
	entries []chartconfig.Tree
}

// New returns a log seeded with initial, when non-nil.
func New(initial chartconfig.Tree) *Log {
	l := &Log{}
	if initial != nil {
		l.entries = append(l.entries, chartconfig.Clone(initial))
	}
	return l
}

// Append records cfg as the newest configuration and returns its version,
// counted from 1.
func (l *Log) Append(cfg chartconfig.Tree) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, chartconfig.Clone(cfg))
	return len(l.entries)
}

// Current returns a copy of the newest configuration, or nil for an empty log.
func (l *Log) Current() chartconfig.Tree {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return nil
	}
	return chartconfig.Clone(l.entries[len(l.entries)-1])
}

// Undo removes the newest configuration and returns the one before it. It
// reports false, leaving the log untouched, when fewer than two entries exist.
func (l *Log) Undo() (chartconfig.Tree, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) < 2 {
		return nil, false
	}
	l.entries[len(l.entries)-1] = nil
	l.entries = l.entries[:len(l.entries)-1]
	return chartconfig.Clone(l.entries[len(l.entries)-1]), true
}

// Reset replaces the whole log with a single configuration.
func (l *Log) Reset(cfg chartconfig.Tree) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = []chartconfig.Tree{chartconfig.Clone(cfg)}
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Snapshot returns copies of every entry, oldest first.
func (l *Log) Snapshot() []chartconfig.Tree {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]chartconfig.Tree, len(l.entries))
	for i, e := range l.entries {
		out[i] = chartconfig.Clone(e)
	}
	return out
}
