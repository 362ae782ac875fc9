package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "Secret123") {
		t.Fatal("correct password did not verify")
	}
	if VerifyPassword(hash, "secret123") {
		t.Fatal("wrong password verified")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("Secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("Secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	// A broken stored hash must read as a mismatch, not a fault.
	if VerifyPassword("not-a-bcrypt-hash", "Secret123") {
		t.Fatal("malformed hash verified")
	}
	if VerifyPassword("", "Secret123") {
		t.Fatal("empty hash verified")
	}
}
