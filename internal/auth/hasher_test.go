package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "" || digest == "Passw0rd!" {
		t.Fatalf("expected a non-empty digest distinct from the plaintext, got %q", digest)
	}

	if !hasher.Verify("Passw0rd!", digest) {
		t.Fatal("expected matching password to verify")
	}
	if hasher.Verify("wrong-password", digest) {
		t.Fatal("expected mismatching password to fail verification")
	}
}

func TestBcryptHasherSaltsEachDigest(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected two digests of the same password to differ")
	}
}

func TestBcryptHasherVerifyMalformedDigest(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-digest", "$2a$garbage", strings.Repeat("x", 100)} {
		if hasher.Verify("Passw0rd!", digest) {
			t.Fatalf("expected malformed digest %q to verify as false", digest)
		}
	}
}

func TestNewBcryptHasherCostFallback(t *testing.T) {
	t.Parallel()

	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
		hasher := NewBcryptHasher(cost)
		if hasher.cost != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected fallback to default cost %d, got %d", cost, bcrypt.DefaultCost, hasher.cost)
		}
	}

	hasher := NewBcryptHasher(bcrypt.MinCost)
	if hasher.cost != bcrypt.MinCost {
		t.Fatalf("expected explicit cost to be kept, got %d", hasher.cost)
	}
}
