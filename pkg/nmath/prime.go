package nmath

import (
	"io"
	"math/big"
)

// SmallPrimes holds the first 200 primes. IsPrime trial-divides by them
// before running any probabilistic test.
var SmallPrimes = [...]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29,
	31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
	233, 239, 241, 251, 257, 263, 269, 271, 277, 281,
	283, 293, 307, 311, 313, 317, 331, 337, 347, 349,
	353, 359, 367, 373, 379, 383, 389, 397, 401, 409,
	419, 421, 431, 433, 439, 443, 449, 457, 461, 463,
	467, 479, 487, 491, 499, 503, 509, 521, 523, 541,
	547, 557, 563, 569, 571, 577, 587, 593, 599, 601,
	607, 613, 617, 619, 631, 641, 643, 647, 653, 659,
	661, 673, 677, 683, 691, 701, 709, 719, 727, 733,
	739, 743, 751, 757, 761, 769, 773, 787, 797, 809,
	811, 821, 823, 827, 829, 839, 853, 857, 859, 863,
	877, 881, 883, 887, 907, 911, 919, 929, 937, 941,
	947, 953, 967, 971, 977, 983, 991, 997, 1009, 1013,
	1019, 1021, 1031, 1033, 1039, 1049, 1051, 1061, 1063, 1069,
	1087, 1091, 1093, 1097, 1103, 1109, 1117, 1123, 1129, 1151,
	1153, 1163, 1171, 1181, 1187, 1193, 1201, 1213, 1217, 1223,
}

// wheelGap[r] is the distance from any x ≡ r (mod 30) to the next integer
// coprime to 30.
var wheelGap = [30]int64{
	1, 6, 5, 4, 3, 2, 1, 4, 3, 2,
	1, 2, 1, 4, 3, 2, 1, 2, 1, 4,
	3, 2, 1, 6, 5, 4, 3, 2, 1, 2,
}

var thirty = big.NewInt(30)

// Verdict is the outcome of a single primality stage.
type Verdict int

const (
	Inconclusive Verdict = iota
	Prime
	Composite
)

func (v Verdict) String() string {
	switch v {
	case Prime:
		return "prime"
	case Composite:
		return "composite"
	default:
		return "inconclusive"
	}
}

// TrialDivision checks n against SmallPrimes. It returns Prime when n is one
// of them, Composite when one of them divides n and Inconclusive otherwise.
func TrialDivision(n *big.Int) Verdict {
	if n.Sign() <= 0 {
		return Composite
	}

	small := n.IsUint64()
	var u uint64
	if small {
		u = n.Uint64()
	}

	p := new(big.Int)
	r := new(big.Int)
	for _, sp := range SmallPrimes {
		if small {
			if u == sp {
				return Prime
			}
			if u%sp == 0 {
				return Composite
			}
			continue
		}
		p.SetUint64(sp)
		if r.Mod(n, p).Sign() == 0 {
			return Composite
		}
	}
	return Inconclusive
}

// MillerRabinBase2 reports whether n is a strong probable prime to base 2.
// n must be odd and greater than 2.
func MillerRabinBase2(n *big.Int) bool {
	nm1 := new(big.Int).Sub(n, one)
	s := nm1.TrailingZeroBits()
	d := new(big.Int).Rsh(nm1, s)

	x := PowerMod(two, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nm1) == 0 {
		return true
	}
	for i := uint(1); i < s; i++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(one) == 0 {
			return false
		}
		if x.Cmp(nm1) == 0 {
			return true
		}
	}
	return false
}

// IsPrime reports whether n is (probably) prime.
//
// Stages run cheapest first: trivial bounds, trial division by SmallPrimes,
// a strong probable prime test to base 2, rejection of perfect squares and a
// Lucas probable prime test with D chosen by ChooseLucasD, P = 1 and
// Q = (1-D)/4. No composite is known to pass this combination.
//
// Every value from 1 through 4 is reported as prime, 1 and 4 included.
// NextPrime and GetPrime never produce either.
func IsPrime(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	if n.Cmp(big.NewInt(4)) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	switch TrialDivision(n) {
	case Prime:
		return true
	case Composite:
		return false
	}

	if !MillerRabinBase2(n) {
		return false
	}
	if IsPerfectSquare(n) {
		return false
	}

	d, err := ChooseLucasD(n)
	if err != nil {
		return false
	}
	q := new(big.Int).Sub(one, d)
	q.Quo(q, big.NewInt(4))
	return LucasProbablePrime(n, d, one, q)
}

// PrimeSearch enumerates the integers above a starting point that are
// coprime to 30, testing each with IsPrime.
type PrimeSearch struct {
	cur *big.Int
	r   int64
}

// NewPrimeSearch returns a search over the candidates strictly greater than n.
func NewPrimeSearch(n *big.Int) *PrimeSearch {
	cur := new(big.Int).Set(n)
	r := new(big.Int).Mod(cur, thirty).Int64()
	return &PrimeSearch{cur: cur, r: r}
}

// Next advances to the next candidate and reports whether it is prime.
func (s *PrimeSearch) Next() (*big.Int, bool) {
	gap := wheelGap[s.r]
	s.cur.Add(s.cur, big.NewInt(gap))
	s.r = (s.r + gap) % 30

	candidate := new(big.Int).Set(s.cur)
	return candidate, IsPrime(candidate)
}

// NextPrime returns the smallest prime strictly greater than n.
func NextPrime(n *big.Int) *big.Int {
	if n.Cmp(two) < 0 {
		return big.NewInt(2)
	}
	if n.Cmp(big.NewInt(5)) < 0 {
		return big.NewInt([...]int64{3, 5, 5}[n.Int64()-2])
	}

	s := NewPrimeSearch(n)
	for {
		if p, ok := s.Next(); ok {
			return p
		}
	}
}

// GetPrime draws a random bits-wide integer from rnd and returns the first
// prime above it.
//
// The result is biased towards primes that follow long prime gaps and may
// be one bit wider than requested. That is acceptable for the demonstration
// keys this package builds and unsuitable for real ones.
func GetPrime(rnd io.Reader, bits int) (*big.Int, error) {
	candidate, err := randomBits(rnd, bits)
	if err != nil {
		return nil, err
	}
	return NextPrime(candidate), nil
}

// randomBits returns a uniform integer with exactly the given bit length.
func randomBits(rnd io.Reader, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, invalidInput("prime size must be at least 2 bits, got %d", bits)
	}

	b := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rnd, b); err != nil {
		return nil, err
	}

	// clear the excess bits of the first byte, then force the top bit
	excess := uint(len(b)*8 - bits)
	b[0] &= byte(0xff >> excess)
	b[0] |= byte(0x80 >> excess)

	return new(big.Int).SetBytes(b), nil
}
