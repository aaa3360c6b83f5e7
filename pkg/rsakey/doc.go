// Package rsakey builds textbook RSA keys from the primitives in package
// nmath and encrypts with them.
//
// Keys use λ(N) = lcm(p-1, q-1) and a small random prime public exponent.
// No padding is applied: Encrypt and Decrypt are bare modular
// exponentiation, and the message must already be an integer in [0, N).
// Key sizes are demonstrative; nothing here is meant to protect real data.
//
// # Quick Start
//
//	key, err := rsakey.GenerateKey(rand.Reader, 64, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c := key.Public().Encrypt(big.NewInt(42))
//	m := key.Decrypt(c) // 42
//
// The Generator type exposes the same construction with configuration, and
// also produces the deliberately weak keys used to demonstrate the attacks
// in package rsaattack.
package rsakey
