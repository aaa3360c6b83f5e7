package nmath

import (
	"math/big"
	"testing"
)

// naiveLucas computes (U_k, V_k) mod n straight from the recurrence.
func naiveLucas(k int, n, P, Q *big.Int) (*big.Int, *big.Int) {
	u0, u1 := big.NewInt(0), big.NewInt(1)
	v0, v1 := big.NewInt(2), new(big.Int).Set(P)
	for i := 1; i < k; i++ {
		u2 := new(big.Int).Mul(P, u1)
		u2.Sub(u2, new(big.Int).Mul(Q, u0))
		u2.Mod(u2, n)
		v2 := new(big.Int).Mul(P, v1)
		v2.Sub(v2, new(big.Int).Mul(Q, v0))
		v2.Mod(v2, n)
		u0, u1 = u1, u2
		v0, v1 = v1, v2
	}
	return u1.Mod(u1, n), v1.Mod(v1, n)
}

func TestLucasUV_MatchesRecurrence(t *testing.T) {
	moduli := []int64{1009, 4087, 10403, 65537, 999999}
	for _, m := range moduli {
		n := big.NewInt(m)
		for _, dv := range []int64{5, -7, 9, -11, 13} {
			D := big.NewInt(dv)
			P := big.NewInt(1)
			Q := big.NewInt((1 - dv) / 4)
			for k := 1; k <= 200; k++ {
				gotU, gotV := LucasUV(big.NewInt(int64(k)), n, one, P, P, Q, D)
				wantU, wantV := naiveLucas(k, n, P, Q)
				if gotU.Cmp(wantU) != 0 || gotV.Cmp(wantV) != 0 {
					t.Fatalf("LucasUV(k=%d, n=%d, D=%d) = (%s, %s), want (%s, %s)",
						k, m, dv, gotU, gotV, wantU, wantV)
				}
			}
		}
	}
}

func TestLucasProbablePrime(t *testing.T) {
	isPrime := sieve(20000)
	for n := int64(1231); n < 20000; n += 2 {
		nb := big.NewInt(n)
		if IsPerfectSquare(nb) {
			continue
		}
		d, err := ChooseLucasD(nb)
		if err != nil {
			t.Fatalf("ChooseLucasD(%d) failed: %v", n, err)
		}
		q := new(big.Int).Sub(one, d)
		q.Quo(q, big.NewInt(4))

		lpp := LucasProbablePrime(nb, d, one, q)
		slpp := StrongLucasProbablePrime(nb, d, one, q)
		if isPrime[n] && (!lpp || !slpp) {
			t.Fatalf("prime %d rejected: lucas=%v strong=%v", n, lpp, slpp)
		}
		if slpp && !lpp {
			t.Fatalf("%d is a strong Lucas probable prime but not a Lucas probable prime", n)
		}
	}
}

func TestLucasProbablePrime_Pseudoprimes(t *testing.T) {
	// Lucas pseudoprimes for the Selfridge parameters. The last three are
	// also strong Lucas pseudoprimes.
	tests := []struct {
		n             int64
		lucas, strong bool
	}{
		{323, true, false},
		{377, true, false},
		{5459, true, true},
		{5777, true, true},
		{10877, true, true},
	}

	for _, tt := range tests {
		n := big.NewInt(tt.n)
		d, err := ChooseLucasD(n)
		if err != nil {
			t.Fatalf("ChooseLucasD(%d) failed: %v", tt.n, err)
		}
		q := new(big.Int).Sub(one, d)
		q.Quo(q, big.NewInt(4))

		if got := LucasProbablePrime(n, d, one, q); got != tt.lucas {
			t.Errorf("LucasProbablePrime(%d) = %v, want %v", tt.n, got, tt.lucas)
		}
		if got := StrongLucasProbablePrime(n, d, one, q); got != tt.strong {
			t.Errorf("StrongLucasProbablePrime(%d) = %v, want %v", tt.n, got, tt.strong)
		}
		if MillerRabinBase2(n) {
			t.Errorf("%d should fail the base-2 strong test", tt.n)
		}
	}
}
