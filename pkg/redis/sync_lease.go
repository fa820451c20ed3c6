package redis

import (
	"context"
	"time"
)

// SyncLease is a redis-backed lease used to keep two populate runs from
// interleaving their lookup-then-create sequences across processes.
type SyncLease struct {
	key string
	ttl time.Duration
}

func NewSyncLease(key string, ttl time.Duration) *SyncLease {
	return &SyncLease{key: key, ttl: ttl}
}

func (l *SyncLease) Acquire(ctx context.Context) (bool, error) {
	return AcquireLock(ctx, l.key, l.ttl)
}

func (l *SyncLease) Release(ctx context.Context) {
	// Best effort: an unreleased lease expires with its TTL
	_ = ReleaseLock(ctx, l.key)
}
