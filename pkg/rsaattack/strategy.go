package rsaattack

import (
	"context"
	"math/big"
)

// FactorStrategy defines the interface for custom factoring strategies.
type FactorStrategy interface {
	// Factor attempts to split n into two factors.
	// It should return a FactorResult if found, or nil if not found.
	// The context can be used for cancellation.
	Factor(ctx context.Context, n *big.Int) *FactorResult

	// Name returns a human-readable name for this strategy.
	Name() string
}

// FermatConfig configures the Fermat phase of a search.
type FermatConfig struct {
	// MaxRounds limits the number of a values tested (0 = unbounded)
	MaxRounds int64

	// ChunkSize is the number of consecutive a values handed to a worker
	ChunkSize int64

	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int
}

// DefaultFermatConfig returns a sensible default configuration.
func DefaultFermatConfig() FermatConfig {
	return FermatConfig{
		MaxRounds:  1000000,
		ChunkSize:  4096,
		NumWorkers: 0, // Auto-detect
	}
}

// PhaseConfig selects the cheap checks run before the Fermat search.
type PhaseConfig struct {
	// TrialDivision divides by nmath.SmallPrimes before searching
	TrialDivision bool

	// SquareCheck tests whether n is a perfect square
	SquareCheck bool
}

// DefaultPhaseConfig returns a configuration with every check enabled.
func DefaultPhaseConfig() PhaseConfig {
	return PhaseConfig{
		TrialDivision: true,
		SquareCheck:   true,
	}
}
