package rsakey

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/apex/log"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

// ErrExponentSearch is returned when no public exponent coprime to λ(N) was
// found within KeyConfig.MaxExponentAttempts draws.
var ErrExponentSearch = errors.New("no public exponent coprime to lambda")

// KeyConfig configures key generation.
type KeyConfig struct {
	// Bits is the target modulus size; each prime gets Bits/2 bits.
	Bits int

	// ExponentBits is the size of the random prime public exponent.
	ExponentBits int

	// MaxExponentAttempts bounds the public exponent search (0 = unbounded).
	MaxExponentAttempts int
}

// DefaultKeyConfig returns a sensible default configuration.
func DefaultKeyConfig() KeyConfig {
	return KeyConfig{
		Bits:                64,
		ExponentBits:        8,
		MaxExponentAttempts: 1000,
	}
}

// Generator draws primes from a random source and assembles keys.
type Generator struct {
	rand   io.Reader
	config KeyConfig
}

// NewGenerator creates a generator reading from crypto/rand with the
// default configuration.
func NewGenerator() *Generator {
	return &Generator{
		rand:   rand.Reader,
		config: DefaultKeyConfig(),
	}
}

// WithRand sets the random source.
func (g *Generator) WithRand(r io.Reader) *Generator {
	g.rand = r
	return g
}

// WithConfig sets the key configuration.
func (g *Generator) WithConfig(config KeyConfig) *Generator {
	g.config = config
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() KeyConfig {
	return g.config
}

// GenerateKey is shorthand for a Generator reading from rnd with the given
// modulus and public exponent sizes.
func GenerateKey(rnd io.Reader, bits, exponentBits int) (*Key, error) {
	config := DefaultKeyConfig()
	config.Bits = bits
	config.ExponentBits = exponentBits
	return NewGenerator().WithRand(rnd).WithConfig(config).Generate()
}

// Generate returns a fresh key: two distinct primes of Bits/2 bits, a prime
// public exponent of ExponentBits bits coprime to λ(N) and its inverse.
func (g *Generator) Generate() (*Key, error) {
	p, q, err := g.distinctPrimes(g.config.Bits / 2)
	if err != nil {
		return nil, err
	}

	e, err := g.exponent(Lambda(p, q), nil)
	if err != nil {
		return nil, err
	}
	return FromPrimes(p, q, e)
}

// GenerateFermatKey returns a key whose primes are deliberately close:
// q is the first prime above p + 2^(Bits/16). Fermat factorization recovers
// such a key in a handful of steps.
func (g *Generator) GenerateFermatKey() (*Key, error) {
	size := g.config.Bits / 2

	p, err := nmath.GetPrime(g.rand, size)
	if err != nil {
		return nil, fmt.Errorf("failed to draw p: %w", err)
	}
	offset := new(big.Int).Lsh(one, uint(size/8))
	q := nmath.NextPrime(offset.Add(offset, p))

	log.WithFields(log.Fields{
		"p":   p.Text(16),
		"q":   q.Text(16),
		"gap": new(big.Int).Sub(q, p).String(),
	}).Debug("drew close primes")

	e, err := g.exponent(Lambda(p, q), nil)
	if err != nil {
		return nil, err
	}
	return FromPrimes(p, q, e)
}

// GenerateCommonModulusPair returns two keys sharing one modulus but with
// distinct, coprime public exponents. Encrypting the same message under
// both exposes it to the common modulus attack.
func (g *Generator) GenerateCommonModulusPair() (*Key, *Key, error) {
	p, q, err := g.distinctPrimes(g.config.Bits / 2)
	if err != nil {
		return nil, nil, err
	}
	lambda := Lambda(p, q)

	e1, err := g.exponent(lambda, nil)
	if err != nil {
		return nil, nil, err
	}
	e2, err := g.exponent(lambda, e1)
	if err != nil {
		return nil, nil, err
	}

	k1, err := FromPrimes(p, q, e1)
	if err != nil {
		return nil, nil, err
	}
	k2, err := FromPrimes(p, q, e2)
	if err != nil {
		return nil, nil, err
	}
	return k1, k2, nil
}

// distinctPrimes draws p and then q until q != p.
func (g *Generator) distinctPrimes(size int) (*big.Int, *big.Int, error) {
	p, err := nmath.GetPrime(g.rand, size)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to draw p: %w", err)
	}

	for attempt := 1; ; attempt++ {
		q, err := nmath.GetPrime(g.rand, size)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to draw q: %w", err)
		}
		if q.Cmp(p) != 0 {
			return p, q, nil
		}
		log.WithField("attempt", attempt).Debug("q collided with p, redrawing")
	}
}

// exponent draws primes of ExponentBits bits until one is coprime to lambda
// and, when other is set, coprime to other as well.
func (g *Generator) exponent(lambda, other *big.Int) (*big.Int, error) {
	for attempt := 1; g.config.MaxExponentAttempts == 0 || attempt <= g.config.MaxExponentAttempts; attempt++ {
		e, err := nmath.GetPrime(g.rand, g.config.ExponentBits)
		if err != nil {
			return nil, fmt.Errorf("failed to draw public exponent: %w", err)
		}
		if nmath.GCD(e, lambda).Cmp(one) != 0 {
			continue
		}
		if other != nil && nmath.GCD(e, other).Cmp(one) != 0 {
			continue
		}
		log.WithFields(log.Fields{
			"e":        e.String(),
			"attempts": attempt,
		}).Debug("chose public exponent")
		return e, nil
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrExponentSearch, g.config.MaxExponentAttempts)
}
