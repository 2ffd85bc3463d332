package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nmh2003/shopchat/session"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ctx := context.Background()

	if err := s.Put(ctx, "u1", session.Context{"last_intent": "view_categories"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := s.Get(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got["last_intent"] != "view_categories" {
		t.Fatalf("unexpected context: %v", got)
	}
}

func TestPutOverwritesNotMerges(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ctx := context.Background()

	_ = s.Put(ctx, "u1", session.Context{"a": 1, "b": 2})
	_ = s.Put(ctx, "u1", session.Context{"c": 3})
	got, ok, _ := s.Get(ctx, "u1")
	if !ok {
		t.Fatal("expected entry")
	}
	if _, stale := got["a"]; stale {
		t.Fatalf("expected overwrite, got merged context: %v", got)
	}
	if got["c"] != 3 {
		t.Fatalf("unexpected context: %v", got)
	}
}

func TestLazyExpiryIsPermanent(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ctx := context.Background()

	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	_ = s.Put(ctx, "u1", session.Context{"x": "y"})

	clock = clock.Add(31 * time.Minute)
	if _, ok, _ := s.Get(ctx, "u1"); ok {
		t.Fatal("expected expired entry to be absent")
	}

	// Eviction happened on the first read; a later read inside a hypothetical
	// fresh window must still see nothing.
	clock = clock.Add(-20 * time.Minute)
	if _, ok, _ := s.Get(ctx, "u1"); ok {
		t.Fatal("expected eviction to be permanent")
	}
}

func TestGetWithinTTL(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ctx := context.Background()

	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	_ = s.Put(ctx, "u1", session.Context{"x": "y"})
	clock = clock.Add(30 * time.Minute) // exactly TTL, not beyond
	if _, ok, _ := s.Get(ctx, "u1"); !ok {
		t.Fatal("entry at exactly TTL should still be present")
	}
}

func TestClearIdempotent(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ctx := context.Background()

	_ = s.Put(ctx, "u1", session.Context{"x": "y"})
	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear absent entry: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "u1"); ok {
		t.Fatal("expected cleared entry to be absent")
	}
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ctx := context.Background()

	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	_ = s.Put(ctx, "old", session.Context{})
	clock = clock.Add(20 * time.Minute)
	_ = s.Put(ctx, "fresh", session.Context{})
	clock = clock.Add(15 * time.Minute)

	if dropped := s.Sweep(); dropped != 1 {
		t.Fatalf("expected 1 dropped entry, got %d", dropped)
	}
	if _, ok, _ := s.Get(ctx, "fresh"); !ok {
		t.Fatal("fresh entry should survive sweep")
	}
}

func TestConcurrentAccessDistinctKeys(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("user-%d", i)
			_ = s.Put(ctx, id, session.Context{"n": i})
			if _, ok, _ := s.Get(ctx, id); !ok {
				t.Errorf("missing entry for %s", id)
			}
		}(i)
	}
	wg.Wait()
}
