package nmath

import "math/big"

// LucasUV returns the Lucas sequence terms (U_k, V_k) modulo n for
// parameters P, Q and D = P² - 4Q, starting from the given (U, V) which are
// normally (U_1, V_1) = (1, P).
//
// The subscript is built up from the bits of k after the leading one. Each
// bit doubles it:
//
//	U_2j = U_j·V_j
//	V_2j = V_j² - 2·Q^j
//
// and a set bit adds one:
//
//	U_j+1 = (P·U_j + V_j) / 2
//	V_j+1 = (D·U_j + P·V_j) / 2
//
// n must be odd. Halving is done modulo n: an odd numerator has n added to
// it before the shift. Q^j is kept alongside U and V rather than recomputed.
func LucasUV(k, n, U, V, P, Q, D *big.Int) (*big.Int, *big.Int) {
	u := new(big.Int).Mod(U, n)
	v := new(big.Int).Mod(V, n)
	q := new(big.Int).Mod(Q, n)
	qk := new(big.Int).Set(q) // Q^subscript mod n, subscript starts at 1

	nu := new(big.Int)
	nv := new(big.Int)
	tmp := new(big.Int)
	for i := k.BitLen() - 2; i >= 0; i-- {
		// doubling
		nu.Mul(u, v)
		nu.Mod(nu, n)

		nv.Mul(v, v)
		tmp.Lsh(qk, 1)
		nv.Sub(nv, tmp)
		nv.Mod(nv, n)

		u, nu = nu, u
		v, nv = nv, v

		qk.Mul(qk, qk)
		qk.Mod(qk, n)

		if k.Bit(i) == 0 {
			continue
		}

		// increment
		nu.Mul(P, u)
		nu.Add(nu, v)
		halveMod(nu, n)

		nv.Mul(D, u)
		tmp.Mul(P, v)
		nv.Add(nv, tmp)
		halveMod(nv, n)

		u, nu = nu, u
		v, nv = nv, v

		qk.Mul(qk, q)
		qk.Mod(qk, n)
	}

	return u, v
}

// halveMod sets x to x/2 mod n for odd n, adding n first if x is odd.
func halveMod(x, n *big.Int) {
	if x.Bit(0) == 1 {
		x.Add(x, n)
	}
	x.Rsh(x, 1)
	x.Mod(x, n)
}

// LucasProbablePrime reports whether n is a Lucas probable prime for the
// parameters (D, P, Q), that is whether U_{n+1} ≡ 0 (mod n).
//
// Q is expected to be the exact integer (1-D)/4 for P = 1 and gcd(n, D)
// must be one, which a Jacobi symbol of -1 guarantees.
func LucasProbablePrime(n, D, P, Q *big.Int) bool {
	k := new(big.Int).Add(n, one)
	u, _ := LucasUV(k, n, one, P, P, Q, D)
	return u.Sign() == 0
}

// StrongLucasProbablePrime reports whether n is a strong Lucas probable
// prime: writing n+1 = d·2^s, either U_d ≡ 0 or V_{d·2^r} ≡ 0 (mod n) for
// some 0 ≤ r < s.
//
// Every strong Lucas probable prime is also a Lucas probable prime.
func StrongLucasProbablePrime(n, D, P, Q *big.Int) bool {
	d := new(big.Int).Add(n, one)
	s := d.TrailingZeroBits()
	d.Rsh(d, s)

	u, v := LucasUV(d, n, one, P, P, Q, D)
	if u.Sign() == 0 || v.Sign() == 0 {
		return true
	}

	// Q^(d·2^r) for the V doubling formula
	qk := PowerMod(Q, d, n)
	tmp := new(big.Int)
	for r := uint(1); r < s; r++ {
		v.Mul(v, v)
		tmp.Lsh(qk, 1)
		v.Sub(v, tmp)
		v.Mod(v, n)
		if v.Sign() == 0 {
			return true
		}
		qk.Mul(qk, qk)
		qk.Mod(qk, n)
	}
	return false
}
