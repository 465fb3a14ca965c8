package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed operation keys so that a payment is
// never recorded twice even when a caller retries.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already
	// processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// DefaultIdempotencyTTL is how long a processed payment key is remembered
const DefaultIdempotencyTTL = 24 * time.Hour
