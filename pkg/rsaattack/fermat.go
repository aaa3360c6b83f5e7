package rsaattack

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

var one = big.NewInt(1)

// FermatSearch looks for a with a² - N a perfect square b², which gives
// N = (a+b)(a-b). It starts at a = isqrt(N) and moves up one a per Step.
//
// The search finishes quickly when N's two factors are close and may take
// practically forever when they are not; callers bound it by the number of
// Step calls.
type FermatSearch struct {
	n      *big.Int
	a      *big.Int
	b      *big.Int
	rounds int64
	p, q   *big.Int
}

// NewFermatSearch starts a search for the factors of n, which must be
// positive. Even n is factored on the spot as (n/2, 2).
func NewFermatSearch(n *big.Int) (*FermatSearch, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive, got %s", nmath.ErrInvalidInput, n)
	}

	if n.Bit(0) == 0 {
		return &FermatSearch{
			n: new(big.Int).Set(n),
			p: new(big.Int).Rsh(n, 1),
			q: big.NewInt(2),
		}, nil
	}
	return newFermatSearchAt(n, nmath.IntSqrt(n)), nil
}

func newFermatSearchAt(n, a *big.Int) *FermatSearch {
	return &FermatSearch{
		n: new(big.Int).Set(n),
		a: new(big.Int).Set(a),
		b: new(big.Int),
	}
}

// Step tests the current a and advances. It reports whether the factors
// have been found; once it has, further calls do nothing.
func (s *FermatSearch) Step() bool {
	if s.Done() {
		return true
	}
	s.rounds++

	s.b.Mul(s.a, s.a)
	s.b.Sub(s.b, s.n)
	if nmath.IsPerfectSquare(s.b) {
		r := nmath.IntSqrt(s.b)
		s.p = new(big.Int).Add(s.a, r)
		s.q = new(big.Int).Sub(s.a, r)
		return true
	}

	s.a.Add(s.a, one)
	return false
}

// Done reports whether the factors have been found.
func (s *FermatSearch) Done() bool {
	return s.p != nil
}

// Factors returns p ≥ q with p·q = N, or nils while the search is running.
func (s *FermatSearch) Factors() (p, q *big.Int) {
	return s.p, s.q
}

// Rounds returns the number of candidates tested so far.
func (s *FermatSearch) Rounds() int64 {
	return s.rounds
}

// FermatFactor factors n by running a FermatSearch to completion and returns
// p ≥ q. For a prime n the result is (n, 1).
//
// It does not return in any useful time unless n's factors are close.
func FermatFactor(n *big.Int) (p, q *big.Int, err error) {
	s, err := NewFermatSearch(n)
	if err != nil {
		return nil, nil, err
	}
	for !s.Step() {
	}
	p, q = s.Factors()
	return p, q, nil
}
