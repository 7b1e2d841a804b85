package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("HashPassword() returned the plaintext")
	}
	if !CheckPassword("s3cret-pass", hash) {
		t.Fatalf("CheckPassword() rejected the correct password")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Fatalf("CheckPassword() accepted a wrong password")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	h2, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct salted hashes, got identical values")
	}
}

func TestIssueAndDecodeToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}
	subject, err := DecodeToken(secret, token)
	if err != nil {
		t.Fatalf("DecodeToken() unexpected error: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("DecodeToken() subject = %q, want %q", subject, "a@x.com")
	}
}

func TestDecodeTokenWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("secret-a"), "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}
	if _, err := DecodeToken([]byte("secret-b"), token); err == nil {
		t.Fatalf("DecodeToken() expected signature error")
	}
}

func TestDecodeTokenMalformed(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b", strings.Repeat("x", 64)} {
		if _, err := DecodeToken([]byte("secret"), tok); err == nil {
			t.Fatalf("DecodeToken(%q) expected error", tok)
		}
	}
}

func TestDecodeTokenEmptySubject(t *testing.T) {
	token, err := IssueToken([]byte("secret"), "")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}
	if _, err := DecodeToken([]byte("secret"), token); err == nil {
		t.Fatalf("DecodeToken() expected error for empty subject")
	}
}
