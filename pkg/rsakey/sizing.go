package rsakey

import "math/big"

// KeyBitsFor returns a modulus size large enough that a random key of that
// size will exceed m: ceil((bitlen(m)+1)·1.22).
func KeyBitsFor(m *big.Int) int {
	n := (m.BitLen() + 1) * 122
	return (n + 99) / 100
}

// ExponentBitsFor picks the public exponent size for a modulus of the given
// size: 32 bits from 64-bit moduli up, 16 from 32 bits up, else 8.
func ExponentBitsFor(keyBits int) int {
	switch {
	case keyBits >= 64:
		return 32
	case keyBits >= 32:
		return 16
	default:
		return 8
	}
}

// ConfigFor returns a KeyConfig sized for encrypting m.
func ConfigFor(m *big.Int) KeyConfig {
	config := DefaultKeyConfig()
	config.Bits = KeyBitsFor(m)
	config.ExponentBits = ExponentBitsFor(config.Bits)
	return config
}
