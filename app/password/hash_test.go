package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hashed, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}
	if err := Compare(hashed, "s3cret-pass"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := Compare(hashed, "wrong"); !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}
