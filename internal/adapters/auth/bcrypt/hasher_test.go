package bcrypt

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secreto1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secreto1" {
		t.Fatalf("hash must not be the plaintext")
	}
	if !h.Compare(hash, "secreto1") {
		t.Fatalf("expected match")
	}
	if h.Compare(hash, "otro") {
		t.Fatalf("expected mismatch")
	}

	again, _ := h.Hash("secreto1")
	if again == hash {
		t.Fatalf("expected different salts for the same secret")
	}
}

func TestHasher_RejectsEmpty(t *testing.T) {
	h := NewHasher(0)
	if _, err := h.Hash(""); err == nil {
		t.Fatalf("expected error hashing empty secret")
	}
	if h.Compare("", "x") || h.Compare("x", "") {
		t.Fatalf("empty inputs never match")
	}
}
