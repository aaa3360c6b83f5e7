// Package nmath implements the number theory behind textbook RSA on top of
// math/big integers: modular exponentiation, the extended Euclidean
// algorithm, perfect-square detection, the Jacobi symbol, Lucas sequences
// and a Baillie-PSW style primality test.
//
// The primality oracle deliberately does not call (*big.Int).ProbablyPrime.
// IsPrime runs, in order: small-prime trial division, a strong probable
// prime test to base 2, a perfect-square rejection and a Lucas probable
// prime test with Selfridge parameters (P = 1, Q = (1-D)/4).
//
// # Quick Start
//
//	p, err := nmath.GetPrime(rand.Reader, 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	nmath.IsPrime(p)                       // true
//	nmath.NextPrime(big.NewInt(100))       // 101
//	inv, err := nmath.ModInverse(big.NewInt(3), big.NewInt(11)) // 4
//
// # Unbounded searches
//
// ChooseLucasD, NextPrime and the Fermat search in package rsaattack loop
// until they succeed. The iterator types DSearch and PrimeSearch expose the
// same searches one step at a time so callers can impose their own limits.
//
// All functions are safe for concurrent use; none of them keeps state
// between calls.
package nmath
