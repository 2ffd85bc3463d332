package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/nmh2003/shopchat/session"
)

type entry struct {
	data      session.Context
	timestamp time.Time
}

// Store keeps sessions in a process-local map. Entries are evicted lazily
// when read after the TTL has elapsed; an optional Sweep pass exists for
// long-lived processes where one-visit users would otherwise accumulate
// forever.
type Store struct {
	sessions map[string]entry
	ttl      time.Duration
	mu       sync.RWMutex
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Put(_ context.Context, userID string, data session.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = entry{data: data, timestamp: s.now()}
	return nil
}

func (s *Store) Get(_ context.Context, userID string) (session.Context, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[userID]
	if !ok {
		return nil, false, nil
	}
	if s.now().Sub(e.timestamp) > s.ttl {
		delete(s.sessions, userID)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (s *Store) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	dropped := 0
	for id, e := range s.sessions {
		if now.Sub(e.timestamp) > s.ttl {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// StartSweeper runs Sweep on the given interval until stop is closed.
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
