package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost) // keep the test fast

	digest, err := h.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "password123" || !strings.HasPrefix(digest, "$2") {
		t.Fatalf("unexpected digest %q", digest)
	}
	if !h.CheckPassword("password123", digest) {
		t.Fatalf("correct password rejected")
	}
	if h.CheckPassword("wrong", digest) {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if _, err := h.HashPassword(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("err = %v, want ErrEmptyPassword", err)
	}
}

func TestNewHasher_CoercesBadCost(t *testing.T) {
	for _, cost := range []int{-1, 0, 100} {
		if h := NewHasher(cost); h.cost != DefaultCost {
			t.Fatalf("cost %d: got %d, want %d", cost, h.cost, DefaultCost)
		}
	}
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, err := h.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("expected salted digests to differ")
	}
}
