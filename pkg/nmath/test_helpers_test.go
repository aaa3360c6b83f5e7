package nmath

import (
	"math/big"
	"math/rand"
	"testing"
)

// sieve returns a primality table for 0..limit.
func sieve(limit int) []bool {
	isPrime := make([]bool, limit+1)
	for i := 2; i <= limit; i++ {
		isPrime[i] = true
	}
	for i := 2; i*i <= limit; i++ {
		if !isPrime[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			isPrime[j] = false
		}
	}
	return isPrime
}

// testRand returns a deterministic random source so failures reproduce.
func testRand() *rand.Rand {
	return rand.New(rand.NewSource(20240229))
}

// mustInt parses a decimal or 0x-prefixed hex constant.
func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	z, ok := new(big.Int).SetString(s, 0)
	if !ok {
		t.Fatalf("bad integer constant %q", s)
	}
	return z
}
