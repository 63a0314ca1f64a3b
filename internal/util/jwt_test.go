package util

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "expenza", 42, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims.UserID = %d, want 42", claims.UserID)
	}
	if claims.Issuer != "expenza" {
		t.Errorf("claims.Issuer = %q, want %q", claims.Issuer, "expenza")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "expenza", 1, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken("another-secret", token); err == nil {
		t.Error("ParseToken() with wrong secret error = nil, want error")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, "expenza", 1, time.Nanosecond)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := ParseToken(testSecret, token); err == nil {
		t.Error("ParseToken() with expired token error = nil, want error")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		if _, err := ParseToken(testSecret, tokenStr); err == nil {
			t.Errorf("ParseToken(%q) error = nil, want error", tokenStr)
		}
	}
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	token, err := GenerateToken(testSecret, "expenza", 7, 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	// default TTL is 7 days
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 6*24*time.Hour || ttl > 8*24*time.Hour {
		t.Errorf("default token TTL = %v, want about 7 days", ttl)
	}
}
