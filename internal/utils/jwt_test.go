package utils

import (
	"errors"
	"strings"
	"testing"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "a@example.com", "basic", 30)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if parts := strings.Split(tok.Token, "."); len(parts) != 3 {
		t.Fatalf("expected compact three-segment token, got %d segments", len(parts))
	}

	claims, err := ParseAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@example.com" || claims.Role != "basic" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseAccessTokenTamperedSignature(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "a@example.com", "basic", 30)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	parts := strings.Split(tok.Token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, err := ParseAccessToken(testSecret, tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "a@example.com", "basic", -1)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := ParseAccessToken(testSecret, tok.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "a@example.com", "basic", 30)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := ParseAccessToken("other-secret", tok.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseAccessTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := ParseAccessToken(testSecret, raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}
