package rsaattack

import (
	"context"
	"fmt"
	"math/big"

	"github.com/apex/log"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
	"github.com/mahdiidarabi/textbook-rsa/pkg/rsakey"
)

// Client provides a high-level API for attacks on weak RSA parameters.
type Client struct {
	strategy FactorStrategy
	parser   CiphertextSetParser
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		strategy: NewSmartFactorStrategy(),
		parser:   &JSONParser{},
	}
}

// WithStrategy sets a custom factoring strategy.
func (c *Client) WithStrategy(strategy FactorStrategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom ciphertext set parser.
func (c *Client) WithParser(parser CiphertextSetParser) *Client {
	c.parser = parser
	return c
}

// Factor splits n into p ≥ q > 1 using the client's strategy.
func (c *Client) Factor(ctx context.Context, n *big.Int) (*FactorResult, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive, got %s", nmath.ErrInvalidInput, n)
	}

	result := c.strategy.Factor(ctx, n)
	if result == nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("factoring cancelled: %w", err)
		}
		return nil, fmt.Errorf("%s strategy failed to factor modulus", c.strategy.Name())
	}
	if result.Q.Cmp(one) == 0 {
		return nil, fmt.Errorf("%w: modulus %s is prime", nmath.ErrInvalidInput, n)
	}
	return result, nil
}

// BreakKey factors the public modulus and rebuilds the full private key.
func (c *Client) BreakKey(ctx context.Context, pub *rsakey.PublicKey) (*rsakey.Key, *FactorResult, error) {
	result, err := c.Factor(ctx, pub.N)
	if err != nil {
		return nil, nil, err
	}

	key, err := rsakey.FromPrimes(result.P, result.Q, pub.E)
	if err != nil {
		return nil, result, fmt.Errorf("failed to rebuild key: %w", err)
	}

	log.WithFields(log.Fields{
		"method": result.Method,
		"rounds": result.Rounds,
	}).Debug("recovered private key")
	return key, result, nil
}

// RecoverPlaintext runs the common modulus attack over every pair of
// ciphertexts in the set until one pair has coprime exponents.
//
// Returns:
//   - PlaintextResult if successful, error otherwise.
func (c *Client) RecoverPlaintext(ctx context.Context, set *CiphertextSet) (*PlaintextResult, error) {
	if set == nil || len(set.Ciphertexts) < 2 {
		return nil, fmt.Errorf("need at least 2 ciphertexts")
	}

	var lastErr error
	cts := set.Ciphertexts
	for i := 0; i < len(cts); i++ {
		for j := i + 1; j < len(cts); j++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			if nmath.GCD(cts[i].E, cts[j].E).Cmp(one) != 0 {
				continue
			}

			m, err := CommonModulusAttack(cts[i].C, cts[j].C, cts[i].E, cts[j].E, set.N)
			if err != nil {
				log.WithError(err).WithFields(log.Fields{"i": i, "j": j}).Debug("pair failed")
				lastErr = err
				continue
			}

			return &PlaintextResult{
				Message:  m,
				Pair:     [2]int{i, j},
				Verified: verifyPlaintext(m, set),
			}, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("failed to recover plaintext: %w", lastErr)
	}
	return nil, fmt.Errorf("%w: no ciphertext pair has coprime exponents", nmath.ErrInvalidInput)
}

// RecoverPlaintextFromFile parses a ciphertext set with the client's parser
// and runs RecoverPlaintext on it.
func (c *Client) RecoverPlaintextFromFile(ctx context.Context, source string) (*PlaintextResult, error) {
	set, err := c.parser.ParseCiphertexts(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ciphertexts: %w", err)
	}
	return c.RecoverPlaintext(ctx, set)
}

// verifyPlaintext reports whether m encrypts to every ciphertext in the set.
func verifyPlaintext(m *big.Int, set *CiphertextSet) bool {
	pub := &rsakey.PublicKey{N: set.N}
	for _, ct := range set.Ciphertexts {
		pub.E = ct.E
		if pub.Encrypt(m).Cmp(new(big.Int).Mod(ct.C, set.N)) != 0 {
			return false
		}
	}
	return true
}
