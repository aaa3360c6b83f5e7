package nmath

import "math/big"

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// PowerMod returns base^exponent mod modulus using binary square-and-multiply.
//
// The exponent must be non-negative and the modulus positive. A modulus of
// one always yields zero.
func PowerMod(base, exponent, modulus *big.Int) *big.Int {
	if exponent.Sign() < 0 {
		panic("nmath: negative exponent")
	}
	if modulus.Sign() <= 0 {
		panic("nmath: non-positive modulus")
	}
	if modulus.Cmp(one) == 0 {
		return new(big.Int)
	}

	r := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			r.Mul(r, b)
			r.Mod(r, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return r
}

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x, y
// such that a*x + b*y == g. The result g is never negative.
//
// ExtendedGCD(0, b) is (b, 0, 1) and ExtendedGCD(a, 0) is (a, 1, 0).
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)

		tmp.Mul(q, r)
		oldR, r = r, new(big.Int).Sub(oldR, tmp)

		tmp.Mul(q, s)
		oldS, s = s, new(big.Int).Sub(oldS, tmp)

		tmp.Mul(q, t)
		oldT, t = t, new(big.Int).Sub(oldT, tmp)
	}

	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	g, _, _ := ExtendedGCD(a, b)
	return g
}

// ModInverse returns the x in [0, m) with a*x ≡ 1 (mod m).
//
// It fails with an error wrapping ErrNoInverse when gcd(a, m) is not one.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, invalidInput("modulus must be positive, got %s", m)
	}

	g, x, _ := ExtendedGCD(a, m)
	if g.CmpAbs(one) != 0 {
		return nil, &NoInverseError{
			A:   new(big.Int).Set(a),
			Mod: new(big.Int).Set(m),
			GCD: g,
		}
	}
	return x.Mod(x, m), nil
}

// LCM returns the least common multiple of a and b, or zero if either is zero.
func LCM(a, b *big.Int) *big.Int {
	switch {
	case a.Sign() == 0 || b.Sign() == 0:
		return new(big.Int)
	case a.Cmp(one) == 0:
		return new(big.Int).Set(b)
	case b.Cmp(one) == 0:
		return new(big.Int).Set(a)
	}

	g := GCD(a, b)
	l := new(big.Int).Quo(a, g)
	return l.Mul(l, b)
}
