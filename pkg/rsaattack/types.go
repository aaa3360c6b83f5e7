package rsaattack

import "math/big"

// FactorResult contains the result of a factoring operation.
type FactorResult struct {
	P        *big.Int // Larger factor
	Q        *big.Int // Smaller factor
	Rounds   int64    // Candidates tested by the search
	Method   string   // Human-readable description of what found the factors
	Strategy string   // Name of the strategy that ran
}

// Ciphertext is one encryption of the shared message.
type Ciphertext struct {
	E *big.Int // Public exponent
	C *big.Int // Ciphertext
}

// CiphertextSet is a group of ciphertexts of one message under one modulus.
type CiphertextSet struct {
	N           *big.Int
	Ciphertexts []*Ciphertext
}

// PlaintextResult contains the result of a common modulus recovery.
type PlaintextResult struct {
	Message *big.Int // Recovered message
	Pair    [2]int   // Indices of the ciphertext pair used
	// Verified is set when the message re-encrypts to every ciphertext in
	// the set, not only the pair that produced it.
	Verified bool
}
