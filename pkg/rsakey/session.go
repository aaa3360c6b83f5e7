package rsakey

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNoKey is returned by Session operations that need a key before one
	// has been set or generated.
	ErrNoKey = errors.New("no key in session")

	// ErrMessageRange is returned when a message is not in [0, N).
	ErrMessageRange = errors.New("message out of range")
)

// Session carries the key and last ciphertext between consecutive encrypt
// and decrypt steps of an interactive caller. The zero value is empty and
// ready to use. A Session is not safe for concurrent use.
type Session struct {
	Key        *Key
	Ciphertext *big.Int
}

// Generate replaces the session key with a fresh one from g.
func (s *Session) Generate(g *Generator) error {
	key, err := g.Generate()
	if err != nil {
		return err
	}
	s.Key = key
	s.Ciphertext = nil
	return nil
}

// SetKey replaces the session key.
func (s *Session) SetKey(key *Key) {
	s.Key = key
	s.Ciphertext = nil
}

// Encrypt encrypts m under the session key and remembers the ciphertext.
func (s *Session) Encrypt(m *big.Int) (*big.Int, error) {
	if s.Key == nil {
		return nil, ErrNoKey
	}
	if m.Sign() < 0 || m.Cmp(s.Key.N) >= 0 {
		return nil, fmt.Errorf("%w: message needs %d bits, modulus has %d", ErrMessageRange, m.BitLen(), s.Key.N.BitLen())
	}
	s.Ciphertext = s.Key.Public().Encrypt(m)
	return s.Ciphertext, nil
}

// Decrypt decrypts c under the session key. A nil c decrypts the last
// ciphertext produced by Encrypt.
func (s *Session) Decrypt(c *big.Int) (*big.Int, error) {
	if s.Key == nil {
		return nil, ErrNoKey
	}
	if c == nil {
		if s.Ciphertext == nil {
			return nil, errors.New("no ciphertext in session")
		}
		c = s.Ciphertext
	}
	return s.Key.Decrypt(c), nil
}

// Reset clears the session.
func (s *Session) Reset() {
	s.Key = nil
	s.Ciphertext = nil
}
