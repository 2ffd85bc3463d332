package session

import (
	"context"
	"time"
)

// DefaultTTL is how long a conversational context survives without being
// overwritten. Expiry is checked lazily on read.
const DefaultTTL = 30 * time.Minute

// Context is the opaque per-user conversational state kept between turns.
type Context map[string]interface{}

// Store gives each conversation a short-lived memory slot keyed by user
// identity. Put overwrites (never merges) the existing entry. Get reports
// absent for entries older than the store's TTL and evicts them permanently.
// Clear is idempotent.
//
// Implementations must tolerate concurrent access for different keys;
// last-write-wins is acceptable for concurrent writes to the same key.
type Store interface {
	Put(ctx context.Context, userID string, data Context) error
	Get(ctx context.Context, userID string) (Context, bool, error)
	Clear(ctx context.Context, userID string) error
}

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)
