// Package rsaattack breaks textbook RSA keys built with weak parameters.
//
// Two attacks are implemented:
//
//   - Fermat factorization, which recovers p and q from N = p·q when the
//     primes are close together.
//   - The common modulus attack, which recovers a message encrypted twice
//     under the same N with coprime public exponents.
//
// # Quick Start
//
//	p, q, err := rsaattack.FermatFactor(big.NewInt(9797)) // 101, 97
//
//	m, err := rsaattack.CommonModulusAttack(c1, c2, e1, e2, n)
//
// # Client
//
// The Client runs a FactorStrategy under a context so long searches can be
// cancelled, and can rebuild a complete private key from a public one:
//
//	client := rsaattack.NewClient()
//	key, result, err := client.BreakKey(ctx, pub)
//
// The default SmartFactorStrategy tries cheap checks first (even moduli,
// perfect squares, small prime factors) and then runs a bounded, parallel
// Fermat search. Implement FactorStrategy to plug in another method:
//
//	type MyStrategy struct{}
//
//	func (s *MyStrategy) Factor(ctx context.Context, n *big.Int) *rsaattack.FactorResult {
//	    // Your factoring logic
//	}
//
//	func (s *MyStrategy) Name() string {
//	    return "MyCustomStrategy"
//	}
//
//	client := rsaattack.NewClient().WithStrategy(&MyStrategy{})
package rsaattack
