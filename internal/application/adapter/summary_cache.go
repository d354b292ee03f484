// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SummaryCache caches reporting query results per user. Every ledger write
// for a user invalidates that user's cached summaries, so readers never see
// totals older than the last write.
type SummaryCache interface {
	// Get loads a cached value into dest. The boolean reports a cache hit.
	Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error)

	// Set stores a value under the user's namespace with the given TTL.
	Set(ctx context.Context, userID uuid.UUID, key string, value any, ttl time.Duration) error

	// Invalidate drops every cached summary of the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
