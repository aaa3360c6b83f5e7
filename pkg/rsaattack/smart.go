package rsaattack

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/apex/log"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

// SmartFactorStrategy implements a multi-phase factoring strategy that runs
// cheap structural checks first, then a bounded parallel Fermat search.
type SmartFactorStrategy struct {
	FermatConfig FermatConfig
	PhaseConfig  PhaseConfig
}

// NewSmartFactorStrategy creates a new smart factoring strategy with default settings.
func NewSmartFactorStrategy() *SmartFactorStrategy {
	return &SmartFactorStrategy{
		FermatConfig: DefaultFermatConfig(),
		PhaseConfig:  DefaultPhaseConfig(),
	}
}

// WithFermatConfig sets the Fermat search configuration for the strategy.
func (s *SmartFactorStrategy) WithFermatConfig(config FermatConfig) *SmartFactorStrategy {
	s.FermatConfig = config
	return s
}

// WithPhaseConfig sets the phase configuration for the strategy.
func (s *SmartFactorStrategy) WithPhaseConfig(config PhaseConfig) *SmartFactorStrategy {
	s.PhaseConfig = config
	return s
}

// Name returns the name of this strategy.
func (s *SmartFactorStrategy) Name() string {
	return "SmartFactor"
}

// Factor implements the FactorStrategy interface.
func (s *SmartFactorStrategy) Factor(ctx context.Context, n *big.Int) *FactorResult {
	if n.Cmp(big.NewInt(4)) < 0 {
		return nil
	}

	ctxLog := log.WithFields(log.Fields{
		"strategy": s.Name(),
		"bits":     n.BitLen(),
	})
	ctxLog.Debug("starting factorization")

	// Phase 0: even modulus
	if n.Bit(0) == 0 {
		return s.result(new(big.Int).Rsh(n, 1), big.NewInt(2), 0, "even_modulus")
	}

	// Phase 1: perfect square
	if s.PhaseConfig.SquareCheck && nmath.IsPerfectSquare(n) {
		r := nmath.IntSqrt(n)
		return s.result(r, new(big.Int).Set(r), 0, "perfect_square")
	}

	// Phase 2: small prime factor
	if s.PhaseConfig.TrialDivision {
		if result := s.smallFactor(n); result != nil {
			return result
		}
		ctxLog.Debug("no small prime factor")
	}

	// Phase 3: Fermat search
	ctxLog.WithFields(log.Fields{
		"max_rounds": s.FermatConfig.MaxRounds,
		"chunk":      s.FermatConfig.ChunkSize,
	}).Debug("starting fermat search")
	return s.fermatSearch(ctx, n)
}

func (s *SmartFactorStrategy) result(p, q *big.Int, rounds int64, method string) *FactorResult {
	return &FactorResult{
		P:        p,
		Q:        q,
		Rounds:   rounds,
		Method:   method,
		Strategy: s.Name(),
	}
}

// smallFactor divides n by nmath.SmallPrimes.
func (s *SmartFactorStrategy) smallFactor(n *big.Int) *FactorResult {
	p := new(big.Int)
	quo, rem := new(big.Int), new(big.Int)
	for _, sp := range nmath.SmallPrimes {
		p.SetUint64(sp)
		if p.Cmp(n) >= 0 {
			return nil
		}
		quo.QuoRem(n, p, rem)
		if rem.Sign() == 0 {
			return s.result(quo, p, 0, "small_factor")
		}
	}
	return nil
}

// fermatSearch splits the a values above isqrt(n) into chunks and scans
// them with a pool of workers. The first worker to find a square wins.
func (s *SmartFactorStrategy) fermatSearch(ctx context.Context, n *big.Int) *FactorResult {
	numWorkers := s.FermatConfig.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	chunk := s.FermatConfig.ChunkSize
	if chunk <= 0 {
		chunk = DefaultFermatConfig().ChunkSize
	}
	maxRounds := s.FermatConfig.MaxRounds
	start := nmath.IntSqrt(n)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	testedRounds := int64(0)
	resultChan := make(chan *FactorResult, 1)
	workChan := make(chan int64, numWorkers*4)

	// Generate work
	go func() {
		defer close(workChan)
		for i := int64(0); maxRounds == 0 || i*chunk < maxRounds; i++ {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-workChan:
					if !ok {
						return
					}

					count := chunk
					if maxRounds > 0 && idx*chunk+count > maxRounds {
						count = maxRounds - idx*chunk
					}
					a := new(big.Int).Mul(big.NewInt(idx), big.NewInt(chunk))
					search := newFermatSearchAt(n, a.Add(a, start))

					for r := int64(0); r < count; r++ {
						if search.Step() {
							p, q := search.Factors()
							select {
							case resultChan <- s.result(p, q, atomic.LoadInt64(&testedRounds)+search.Rounds(), "fermat"):
							default:
							}
							cancel()
							return
						}
						if r&0x3ff == 0x3ff {
							select {
							case <-ctx.Done():
								return
							default:
							}
						}
					}

					total := atomic.AddInt64(&testedRounds, count)
					if (idx+1)%64 == 0 {
						log.WithField("rounds", total).Debug("fermat search progress")
					}
				}
			}
		}()
	}

	// Wait for result or completion
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case result := <-resultChan:
		return result
	case <-done:
		select {
		case result := <-resultChan:
			return result
		default:
		}
		log.WithField("rounds", atomic.LoadInt64(&testedRounds)).Debug("fermat search exhausted")
		return nil
	}
}
