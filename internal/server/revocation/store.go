// Package revocation implements the TTL-bounded denylist of access tokens
// invalidated before their natural expiry (logout).
package revocation

import (
	"context"
	"time"
)

// Store marks access tokens as revoked for a bounded time. Entries expire
// on their own; nothing ever deletes them explicitly.
type Store interface {
	// Revoke denies the token for ttl. A non-positive ttl is a no-op: the
	// token has already expired by signature, there is nothing to deny.
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether the token is currently denied. Unknown and
	// already-expired entries both read as not revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)
}
