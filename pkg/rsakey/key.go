package rsakey

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

var one = big.NewInt(1)

// PublicKey is an RSA modulus with its public exponent.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// Encrypt returns m^E mod N. The caller ensures 0 <= m < N.
func (pub *PublicKey) Encrypt(m *big.Int) *big.Int {
	return nmath.PowerMod(m, pub.E, pub.N)
}

// Key is a complete set of textbook RSA parameters. A Key is not modified
// after construction.
type Key struct {
	N *big.Int // modulus, P·Q
	P *big.Int
	Q *big.Int
	E *big.Int // public exponent, coprime to λ(N)
	D *big.Int // private exponent, E⁻¹ mod λ(N)
}

// Public returns the public half of the key.
func (k *Key) Public() *PublicKey {
	return &PublicKey{N: k.N, E: k.E}
}

// Lambda returns λ(N) = lcm(P-1, Q-1).
func (k *Key) Lambda() *big.Int {
	return Lambda(k.P, k.Q)
}

// Decrypt returns c^D mod N.
func (k *Key) Decrypt(c *big.Int) *big.Int {
	return nmath.PowerMod(c, k.D, k.N)
}

// Validate checks the relations between the key's fields: N = P·Q with
// distinct primes P and Q, and E·D ≡ 1 (mod λ(N)).
func (k *Key) Validate() error {
	if k.N == nil || k.P == nil || k.Q == nil || k.E == nil || k.D == nil {
		return fmt.Errorf("incomplete key")
	}
	if k.P.Cmp(k.Q) == 0 {
		return fmt.Errorf("p and q must be distinct")
	}
	if !nmath.IsPrime(k.P) || !nmath.IsPrime(k.Q) {
		return fmt.Errorf("p and q must be prime")
	}
	if new(big.Int).Mul(k.P, k.Q).Cmp(k.N) != 0 {
		return fmt.Errorf("n is not p·q")
	}

	ed := new(big.Int).Mul(k.E, k.D)
	if ed.Mod(ed, k.Lambda()).Cmp(one) != 0 {
		return fmt.Errorf("e·d is not 1 mod λ(n)")
	}
	return nil
}

// Lambda returns lcm(p-1, q-1).
func Lambda(p, q *big.Int) *big.Int {
	return nmath.LCM(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
}

// FromPrimes completes a key from caller-supplied p, q and e by deriving
// the private exponent. It fails with an error wrapping nmath.ErrNoInverse
// when e is not coprime to λ(p·q).
func FromPrimes(p, q, e *big.Int) (*Key, error) {
	d, err := nmath.ModInverse(e, Lambda(p, q))
	if err != nil {
		return nil, fmt.Errorf("failed to derive private exponent: %w", err)
	}
	return &Key{
		N: new(big.Int).Mul(p, q),
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
		E: new(big.Int).Set(e),
		D: d,
	}, nil
}
