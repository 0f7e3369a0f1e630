// Package auth implements signing and verification of the compact signed
// tokens (HS256 JWTs) used for both access and refresh credentials.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vmakarov/blogapi/internal/common"
)

// Token kinds. A token is valid for exactly one flow: access tokens
// authorize API calls, refresh tokens are exchanged for new access tokens.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims carries the registered JWT claims plus the user's email and the
// token kind. Subject holds the numeric user id in decimal form.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// Payload is the decoded, verified content of a token.
type Payload struct {
	UserID    int64
	Email     string
	Kind      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies tokens with a single shared HMAC secret.
// It holds no other state; the secret is injected at construction and
// never read from process-wide globals.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Sign produces a signed token for the given user with issuedAt = now and
// expiresAt = now + validity. Each token gets a fresh jti so two tokens
// minted in the same instant still differ.
func (c *Codec) Sign(userID int64, email, kind string, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Email: email,
		Kind:  kind,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the token's signature and expiry and returns its payload.
//
// Failures are classified into the common sentinel errors:
//   - common.ErrTokenExpired for tokens past their expiry (a token presented
//     exactly at its expiry instant is already expired);
//   - common.ErrInvalidSignature for signature mismatches;
//   - common.ErrMalformedToken for anything that does not decode into a
//     well-formed payload, including missing subject or expiry claims.
//
// There is no fallback payload: every failure is an explicit error.
func (c *Codec) Verify(tokenString string) (*Payload, error) {
	claims := &Claims{}

	// Strict decoding rejects non-zero base64 padding bits, so a token
	// differing from the signed one in even a single byte never decodes to
	// the same signature.
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrInvalidSignature
		default:
			return nil, common.ErrMalformedToken
		}
	}
	if !token.Valid {
		return nil, common.ErrInvalidSignature
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, common.ErrMalformedToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, common.ErrMalformedToken
	}

	payload := &Payload{
		UserID:    userID,
		Email:     claims.Email,
		Kind:      claims.Kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}

	return payload, nil
}
