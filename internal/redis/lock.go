package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes a lock only if it still holds the caller's token, so
// a holder whose lock expired cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireRideLock attempts to take the settlement lock for a ride under token.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireRideLock(ctx context.Context, rideID, token string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, rideLockKey(rideID), token, ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseRideLock releases the settlement lock if token still owns it.
func (s *LockStore) ReleaseRideLock(ctx context.Context, rideID, token string) error {
	return releaseScript.Run(ctx, s.client, []string{rideLockKey(rideID)}, token).Err()
}

func rideLockKey(rideID string) string {
	return fmt.Sprintf("lock:payment:ride:%s", rideID)
}
