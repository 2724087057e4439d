package authgate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBuildRequiresDirectory(t *testing.T) {
	_, err := New().Build()
	if !errors.Is(err, ErrDirectoryRequired) {
		t.Fatalf("expected ErrDirectoryRequired, got %v", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithUserDirectory(newMockDirectory())

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("second Build succeeded")
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.Duration = -time.Hour

	_, err := New().WithConfig(cfg).WithUserDirectory(newMockDirectory()).Build()
	if err == nil {
		t.Fatal("negative session duration accepted")
	}
}

func TestBuildRejectsWeakPasswordConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password.Memory = 0

	_, err := New().WithConfig(cfg).WithUserDirectory(newMockDirectory()).Build()
	if err == nil {
		t.Fatal("zeroed password config accepted")
	}
}

func TestPersistedStrategyRequiresStore(t *testing.T) {
	engine := testEngine(t, newMockDirectory())

	if _, err := engine.PersistedSessionStrategy(); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
}

func TestWithRedisWiresPersistedStrategy(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	dir := newMockDirectory()
	cfg := DefaultConfig()
	cfg.Password.Memory = 8192
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1
	cfg.Session.Duration = time.Hour

	engine, err := New().
		WithConfig(cfg).
		WithUserDirectory(dir).
		WithRedis(client).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	strategy, err := engine.PersistedSessionStrategy()
	if err != nil {
		t.Fatalf("PersistedSessionStrategy failed: %v", err)
	}

	ctx := context.Background()
	user := dir.seed(t, "alice@example.com", "hash")

	sessionID, err := strategy.CreateSession(ctx, user.ID)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// The record landed in Redis, not in a process-local map.
	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected 1 redis key, got %v", keys)
	}

	identified, err := strategy.Identify(ctx, requestWithCookie(DefaultSessionCookieName, sessionID))
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if identified == nil || identified.ID != user.ID {
		t.Fatalf("wrong user: %+v", identified)
	}
}

func TestEngineCloseIsSafe(t *testing.T) {
	engine := testEngine(t, newMockDirectory())
	engine.Close()
	engine.Close()

	var nilEngine *Engine
	nilEngine.Close()
	if got := nilEngine.AuditDropped(); got != 0 {
		t.Fatalf("nil engine reported %d dropped events", got)
	}
	if snapshot := nilEngine.MetricsSnapshot(); len(snapshot.Counters) != 0 {
		t.Fatalf("nil engine returned counters: %v", snapshot.Counters)
	}
}
