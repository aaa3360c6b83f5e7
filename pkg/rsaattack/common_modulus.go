package rsaattack

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

// CommonModulusAttack recovers m from c1 = m^e1 mod n and c2 = m^e2 mod n.
//
// With Bézout coefficients a·e1 + b·e2 = 1 the message is c1^a · c2^b mod n;
// whichever coefficient is negative is applied to the ciphertext's inverse.
// The exponents must be coprime, otherwise the error wraps
// nmath.ErrInvalidInput. A ciphertext sharing a factor with n cannot be
// inverted and yields an error wrapping nmath.ErrNoInverse.
func CommonModulusAttack(c1, c2, e1, e2, n *big.Int) (*big.Int, error) {
	g, a, b := nmath.ExtendedGCD(e1, e2)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: exponents %s and %s share factor %s", nmath.ErrInvalidInput, e1, e2, g)
	}

	x, err := signedPowerMod(c1, a, n)
	if err != nil {
		return nil, err
	}
	y, err := signedPowerMod(c2, b, n)
	if err != nil {
		return nil, err
	}

	m := x.Mul(x, y)
	return m.Mod(m, n), nil
}

// signedPowerMod computes c^x mod n for any sign of x.
func signedPowerMod(c, x, n *big.Int) (*big.Int, error) {
	if x.Sign() >= 0 {
		return nmath.PowerMod(c, x, n), nil
	}

	inv, err := nmath.ModInverse(c, n)
	if err != nil {
		return nil, fmt.Errorf("failed to invert ciphertext: %w", err)
	}
	return nmath.PowerMod(inv, new(big.Int).Neg(x), n), nil
}
