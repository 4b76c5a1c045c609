package ports

import (
	"context"
	"time"
)

// SeedLock serialises seed runs against the same database across processes.
type SeedLock interface {
	Acquire(ctx context.Context, database string) (bool, error)
	Release(ctx context.Context, database string) error
	// Extend renews the lock's TTL. It reports false when the lock is no
	// longer held by this owner.
	Extend(ctx context.Context, database string) (bool, error)
	// MarkSeeded records the time of the last successful run.
	MarkSeeded(ctx context.Context, database string, at time.Time) error
	// LastSeeded returns the recorded time and whether one exists.
	LastSeeded(ctx context.Context, database string) (time.Time, bool, error)
}
