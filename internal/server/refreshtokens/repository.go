// Package refreshtokens provides the persisted ledger of active refresh
// tokens, one row per user.
package refreshtokens

import (
	"context"
	"time"
)

type Repository interface {
	// Replace removes every ledger row for userID and inserts a single new
	// one. Implementations over a transactional store must run both steps
	// in one transaction.
	Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	FindByTokenAndUser(ctx context.Context, token string, userID int64) (*RefreshToken, error)
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteByID(ctx context.Context, id int64) error
}
