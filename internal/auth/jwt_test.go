package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Sign("user-123")

	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	got, err := m.Verify(token)

	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if got != "user-123" {
		t.Fatalf("got user id %q, want %q", got, "user-123")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Sign("user-123")

	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	_, err = m.Verify(token)

	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := signer.Sign("user-123")

	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	_, err = verifier.Verify(token)

	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsNonHMACAlgorithm(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)

	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	_, err = m.Verify(token)

	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: got %v, want ErrInvalidToken", token, err)
		}
	}
}
