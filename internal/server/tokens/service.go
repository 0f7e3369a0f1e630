// Package tokens implements the token lifecycle: issuing access/refresh
// pairs, authenticating access tokens, exchanging refresh tokens, and
// revoking sessions on logout.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmakarov/blogapi/internal/common"
	"github.com/vmakarov/blogapi/internal/server/auth"
	"github.com/vmakarov/blogapi/internal/server/config"
	"github.com/vmakarov/blogapi/internal/server/refreshtokens"
	"github.com/vmakarov/blogapi/internal/server/revocation"
	"github.com/vmakarov/blogapi/internal/server/users"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service is the token state machine. It holds no mutable state of its own;
// everything shared lives in the user repository, the refresh-token ledger,
// and the revocation store. Every token failure it detects — malformed,
// bad signature, expired, wrong kind, unknown ledger row, vanished account —
// surfaces as common.ErrorUnauthorized, so callers cannot tell the failure
// modes apart. Store failures are passed through untouched.
type Service struct {
	codec                        *auth.Codec
	users                        users.Repository
	ledger                       refreshtokens.Repository
	revocations                  revocation.Store
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewService(usersRepo users.Repository, ledger refreshtokens.Repository, revocations revocation.Store, cfg *config.Config) *Service {
	return &Service{
		codec:                        auth.NewCodec([]byte(cfg.SecretKey)),
		users:                        usersRepo,
		ledger:                       ledger,
		revocations:                  revocations,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Issue mints an access/refresh pair for an already-verified user and
// records the refresh token in the ledger, discarding any previous one.
// Only the refresh token is persisted; access tokens live on signature,
// expiry, and the revocation check alone.
func (s *Service) Issue(ctx context.Context, user *users.User) (*TokenPair, error) {

	accessToken, err := s.codec.Sign(user.ID, user.Email, auth.KindAccess, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := s.codec.Sign(user.ID, user.Email, auth.KindRefresh, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	expiresAt := time.Now().Add(s.refreshTokenValidityDuration)
	if err := s.ledger.Replace(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Authenticate validates an access token and resolves the account behind
// it. The order matters: structural and signature checks first, then the
// revocation check, and only then the account lookup, so a structurally
// invalid token and a vanished account are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*users.User, error) {

	payload, err := s.codec.Verify(accessToken)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	if payload.Kind != "" && payload.Kind != auth.KindAccess {
		return nil, common.ErrorUnauthorized
	}

	revoked, err := s.revocations.IsRevoked(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("error checking revocation: %w", err)
	}
	if revoked {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	return user, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is not rotated: the same refresh token stays valid until
// its expiry or until a new login supersedes it. The ledger lookup is what
// rejects superseded tokens — their signature is still good, but their
// row is gone.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {

	payload, err := s.codec.Verify(refreshToken)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	if payload.Kind != auth.KindRefresh {
		return "", common.ErrorUnauthorized
	}

	record, err := s.ledger.FindByTokenAndUser(ctx, refreshToken, payload.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error searching refresh token: %w", err)
	}

	// The codec already rejects expired signatures; this guards ledger rows
	// that outlived their signed expiry (clock skew).
	if record.ExpiresAt.Before(time.Now()) {
		if err := s.ledger.DeleteByID(ctx, record.ID); err != nil {
			return "", fmt.Errorf("error deleting refresh token: %w", err)
		}
		return "", common.ErrorUnauthorized
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error resolving user: %w", err)
	}

	accessToken, err := s.codec.Sign(user.ID, user.Email, auth.KindAccess, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return accessToken, nil
}

// Logout terminates the whole session behind a bearer header: the access
// token goes on the denylist for its remaining lifetime and every ledger
// row for the subject is removed, so the refresh token dies with it.
func (s *Service) Logout(ctx context.Context, bearerHeader string) error {

	if !strings.HasPrefix(bearerHeader, common.BearerPrefix) {
		return common.ErrorBadRequest
	}
	accessToken := strings.TrimPrefix(bearerHeader, common.BearerPrefix)

	payload, err := s.codec.Verify(accessToken)
	if err != nil {
		return common.ErrorUnauthorized
	}

	if payload.Kind != "" && payload.Kind != auth.KindAccess {
		return common.ErrorUnauthorized
	}

	if remaining := time.Until(payload.ExpiresAt); remaining > 0 {
		if err := s.revocations.Revoke(ctx, accessToken, remaining); err != nil {
			return fmt.Errorf("error revoking access token: %w", err)
		}
	}

	if err := s.ledger.DeleteByUser(ctx, payload.UserID); err != nil {
		return fmt.Errorf("error deleting refresh tokens: %w", err)
	}

	return nil
}
