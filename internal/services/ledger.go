package services

import (
	"context"
	"sync"
	"time"
)

// Ledger remembers when each reminder key was last queued.
// *db.DB implements it on Postgres.
type Ledger interface {
	Seen(ctx context.Context, key string, since time.Time) (bool, error)
	Record(ctx context.Context, key string, at time.Time) error
}

// MemoryLedger is the in-process Ledger used when no database is
// configured.
type MemoryLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]time.Time)}
}

func (m *MemoryLedger) Seen(ctx context.Context, key string, since time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.entries[key]
	return ok && !at.Before(since), nil
}

func (m *MemoryLedger) Record(ctx context.Context, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = at
	return nil
}
