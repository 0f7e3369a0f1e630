package refreshtokens

import "time"

// RefreshToken is a ledger row. At most one live row exists per user:
// issuance replaces any previous row, so an old refresh token stops being
// recognized the moment a new session starts.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
}
