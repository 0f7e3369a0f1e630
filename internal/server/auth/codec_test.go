package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vmakarov/blogapi/internal/common"
)

func TestSignAndVerify_Success(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("super-secret"))

	tok, err := c.Sign(123, "alice@example.com", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	payload, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if payload.UserID != 123 {
		t.Fatalf("user id mismatch: got %d want 123", payload.UserID)
	}
	if payload.Email != "alice@example.com" {
		t.Fatalf("email mismatch: got %q", payload.Email)
	}
	if payload.Kind != KindAccess {
		t.Fatalf("kind mismatch: got %q want %q", payload.Kind, KindAccess)
	}
	if !payload.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry should be in the future, got %v", payload.ExpiresAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("secret"))

	tok, err := c.Sign(1, "u1@example.com", KindAccess, -1*time.Second)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	_, err = c.Verify(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewCodec([]byte("right-secret")).Sign(2, "u2@example.com", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	_, err = NewCodec([]byte("wrong-secret")).Verify(tok)
	if !errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expected common.ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewCodec([]byte("k")).Verify("not.a.jwt")
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken, got %v", err)
	}
}

// Any single-character change in the signature segment must break
// verification.
func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("tamper-secret"))
	tok, err := c.Sign(3, "u3@example.com", KindRefresh, time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	sig := parts[2]

	for i := range sig {
		flipped := sig[i] + 1
		if flipped == '.' {
			flipped++
		}
		tampered := parts[0] + "." + parts[1] + "." + sig[:i] + string(flipped) + sig[i+1:]

		if _, err := c.Verify(tampered); err == nil {
			t.Fatalf("tampering signature byte %d went undetected", i)
		}
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("tamper-secret"))
	tok, err := c.Sign(4, "u4@example.com", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	parts := strings.Split(tok, ".")
	body := []byte(parts[1])
	body[0]++
	tampered := parts[0] + "." + string(body) + "." + parts[2]

	if _, err := c.Verify(tampered); err == nil {
		t.Fatalf("tampering payload went undetected")
	}
}

func TestVerify_MissingRequiredClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	c := NewCodec(secret)

	sign := func(t *testing.T, claims Claims) string {
		t.Helper()
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		if err != nil {
			t.Fatalf("SignedString error: %v", err)
		}
		return tok
	}

	noSubject := sign(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Kind: KindAccess,
	})
	if _, err := c.Verify(noSubject); !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken for missing subject, got %v", err)
	}

	nonNumericSubject := sign(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Kind: KindAccess,
	})
	if _, err := c.Verify(nonNumericSubject); !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken for non-numeric subject, got %v", err)
	}

	noExpiry := sign(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "5"},
		Kind:             KindAccess,
	})
	if _, err := c.Verify(noExpiry); !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken for missing expiry, got %v", err)
	}
}
