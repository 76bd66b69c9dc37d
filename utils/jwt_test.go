package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("owner-123", "pat@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	sub, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken: %v", err)
	}
	if sub != "owner-123" {
		t.Errorf("subject = %q, want owner-123", sub)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("owner-123", "pat@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ExtractIDFromToken(token); err == nil {
		t.Fatal("expired token validated, want error")
	}
}

func TestMangledTokenRejected(t *testing.T) {
	token, err := GenerateToken("owner-123", "pat@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ExtractIDFromToken(token + "x"); err == nil {
		t.Fatal("mangled token validated, want error")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	if a != b {
		t.Errorf("hash not deterministic: %q vs %q", a, b)
	}
	if a == HashToken("other-token") {
		t.Error("distinct tokens hash identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
