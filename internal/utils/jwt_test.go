package utils

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-signing-secret"

func TestNewAuthTokenAndParse(t *testing.T) {
	t.Parallel()

	want := Claims{UserID: 42, Username: "alice", Email: "a@x.com"}
	tok, err := NewAuthToken(testSecret, want, time.Hour)
	if err != nil {
		t.Fatalf("NewAuthToken error: %v", err)
	}

	got, err := ParseAuthToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseAuthToken error: %v", err)
	}
	if got != want {
		t.Fatalf("claims mismatch: got %+v want %+v", got, want)
	}
}

func TestParseAuthToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewAuthToken(testSecret, Claims{UserID: 1, Username: "u", Email: "u@x.com"}, -time.Minute)
	if err != nil {
		t.Fatalf("NewAuthToken error: %v", err)
	}
	if _, err := ParseAuthToken(testSecret, tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseAuthToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAuthToken(testSecret, Claims{UserID: 1, Username: "u", Email: "u@x.com"}, time.Hour)
	if err != nil {
		t.Fatalf("NewAuthToken error: %v", err)
	}
	if _, err := ParseAuthToken("another-secret", tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseAuthToken_Tampered(t *testing.T) {
	t.Parallel()

	tok, err := NewAuthToken(testSecret, Claims{UserID: 1, Username: "u", Email: "u@x.com"}, time.Hour)
	if err != nil {
		t.Fatalf("NewAuthToken error: %v", err)
	}
	// Flip a character in the payload segment; the signature no longer matches.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]
	if _, err := ParseAuthToken(testSecret, tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestParseAuthToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := ParseAuthToken(testSecret, raw); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestAuthTokens_IndependentValidity(t *testing.T) {
	t.Parallel()

	cl := Claims{UserID: 7, Username: "bob", Email: "b@x.com"}
	first, err := NewAuthToken(testSecret, cl, time.Hour)
	if err != nil {
		t.Fatalf("NewAuthToken error: %v", err)
	}
	second, err := NewAuthToken(testSecret, cl, 30*time.Minute)
	if err != nil {
		t.Fatalf("NewAuthToken error: %v", err)
	}
	// Both tokens verify until their own expiry; issuing a new one does
	// not touch the old one.
	if _, err := ParseAuthToken(testSecret, first); err != nil {
		t.Fatalf("first token invalid: %v", err)
	}
	if _, err := ParseAuthToken(testSecret, second); err != nil {
		t.Fatalf("second token invalid: %v", err)
	}
}
