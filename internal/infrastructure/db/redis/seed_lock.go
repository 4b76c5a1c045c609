package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/ports"
)

const defaultLockTTL = 10 * time.Minute

// releaseScript deletes the lock only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript renews the TTL only while the lock still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// SeedLock is a Redis-backed ports.SeedLock.
// Key format: seed:lock:<database> and seed:completed:<database>
type SeedLock struct {
	client *redis.Client
	ttl    time.Duration
	token  string
}

// NewSeedLock creates a SeedLock owned by this process. The TTL bounds how
// long a crashed seeder can block others.
func NewSeedLock(client *redis.Client, ttl time.Duration) *SeedLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &SeedLock{client: client, ttl: ttl, token: uuid.NewString()}
}

// Acquire takes the lock for database. It reports false when another owner
// holds it.
func (l *SeedLock) Acquire(ctx context.Context, database string) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey(database), l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("seed lock acquire: %w", err)
	}
	return ok, nil
}

// Release drops the lock if this process still owns it.
func (l *SeedLock) Release(ctx context.Context, database string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKey(database)}, l.token).Err(); err != nil {
		return fmt.Errorf("seed lock release: %w", err)
	}
	return nil
}

// Extend pushes the expiry of a held lock another TTL into the future.
func (l *SeedLock) Extend(ctx context.Context, database string) (bool, error) {
	n, err := extendScript.Run(ctx, l.client, []string{lockKey(database)}, l.token, l.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("seed lock extend: %w", err)
	}
	return n == 1, nil
}

// MarkSeeded records a successful run. The marker never expires.
func (l *SeedLock) MarkSeeded(ctx context.Context, database string, at time.Time) error {
	if err := l.client.Set(ctx, completedKey(database), at.Unix(), 0).Err(); err != nil {
		return fmt.Errorf("seed mark: %w", err)
	}
	return nil
}

// LastSeeded returns the time recorded by MarkSeeded, if any.
func (l *SeedLock) LastSeeded(ctx context.Context, database string) (time.Time, bool, error) {
	raw, err := l.client.Get(ctx, completedKey(database)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("seed last run: %w", err)
	}

	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("seed last run: malformed value %q: %w", raw, err)
	}
	return time.Unix(sec, 0).UTC(), true, nil
}

func lockKey(database string) string      { return "seed:lock:" + database }
func completedKey(database string) string { return "seed:completed:" + database }

var _ ports.SeedLock = (*SeedLock)(nil)
