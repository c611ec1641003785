package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLockStore(t *testing.T) (*LockStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLockStore(client), mr
}

func TestLockStore_AcquireIsExclusive(t *testing.T) {
	t.Parallel()

	store, mr := newTestLockStore(t)
	ctx := context.Background()

	ok, err := store.AcquireRideLock(ctx, "ride-1", "token-a", 30*time.Second)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}

	ok, err = store.AcquireRideLock(ctx, "ride-1", "token-b", 30*time.Second)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ok {
		t.Error("expected second acquire to fail while the lock is held")
	}

	// Locks are per ride.
	ok, err = store.AcquireRideLock(ctx, "ride-2", "token-b", 30*time.Second)
	if err != nil || !ok {
		t.Errorf("expected lock on another ride to succeed, got ok=%v err=%v", ok, err)
	}

	if got := mr.TTL(rideLockKey("ride-1")); got != 30*time.Second {
		t.Errorf("expected TTL 30s, got %v", got)
	}
}

func TestLockStore_ReleaseRequiresOwnerToken(t *testing.T) {
	t.Parallel()

	store, mr := newTestLockStore(t)
	ctx := context.Background()
	key := rideLockKey("ride-1")

	if ok, err := store.AcquireRideLock(ctx, "ride-1", "token-a", 30*time.Second); err != nil || !ok {
		t.Fatalf("expected acquire to succeed, got ok=%v err=%v", ok, err)
	}

	if err := store.ReleaseRideLock(ctx, "ride-1", "token-b"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got, _ := mr.Get(key); got != "token-a" {
		t.Fatalf("expected lock still held by token-a, got %q", got)
	}

	if err := store.ReleaseRideLock(ctx, "ride-1", "token-a"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if mr.Exists(key) {
		t.Error("expected owner release to delete the lock")
	}
}

func TestLockStore_ExpiredHolderCannotReleaseSuccessor(t *testing.T) {
	t.Parallel()

	store, mr := newTestLockStore(t)
	ctx := context.Background()

	if ok, err := store.AcquireRideLock(ctx, "ride-1", "token-a", 30*time.Second); err != nil || !ok {
		t.Fatalf("expected acquire to succeed, got ok=%v err=%v", ok, err)
	}

	mr.FastForward(31 * time.Second)

	ok, err := store.AcquireRideLock(ctx, "ride-1", "token-b", 30*time.Second)
	if err != nil || !ok {
		t.Fatalf("expected acquire after expiry to succeed, got ok=%v err=%v", ok, err)
	}

	// The first holder finishes late and tries to release.
	if err := store.ReleaseRideLock(ctx, "ride-1", "token-a"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got, _ := mr.Get(rideLockKey("ride-1")); got != "token-b" {
		t.Errorf("expected successor lock to survive, got %q", got)
	}
}
