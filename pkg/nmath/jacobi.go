package nmath

import "math/big"

// Jacobi returns the Jacobi symbol (a/n) as -1, 0 or 1.
//
// n must be positive and odd; otherwise the error wraps ErrInvalidInput.
// As a shortcut, a of 0 or 1 is returned unchanged.
func Jacobi(a, n *big.Int) (int, error) {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		return 0, invalidInput("jacobi modulus must be a positive odd number, got %s", n)
	}
	if a.Sign() == 0 || a.Cmp(one) == 0 {
		return int(a.Int64()), nil
	}

	x := new(big.Int).Mod(a, n)
	y := new(big.Int).Set(n)
	t := 1
	for x.Sign() != 0 {
		if z := x.TrailingZeroBits(); z > 0 {
			x.Rsh(x, z)
			// (2/y) = -1 exactly when y ≡ 3, 5 (mod 8)
			if r := y.Bits()[0] & 7; z&1 == 1 && (r == 3 || r == 5) {
				t = -t
			}
		}
		x, y = y, x
		if x.Bits()[0]&3 == 3 && y.Bits()[0]&3 == 3 {
			t = -t
		}
		x.Mod(x, y)
	}

	if y.Cmp(one) == 0 {
		return t, nil
	}
	return 0, nil
}

// DSearch walks the Selfridge sequence 5, -7, 9, -11, 13, ... looking for a
// D with Jacobi(D, n) == -1.
//
// For a perfect square n no such D exists, so callers either rule squares
// out first or bound the number of Next calls.
type DSearch struct {
	n *big.Int
	d *big.Int
}

// NewDSearch starts a Selfridge search for n, which must be positive and odd.
func NewDSearch(n *big.Int) (*DSearch, error) {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		return nil, invalidInput("lucas modulus must be a positive odd number, got %s", n)
	}
	return &DSearch{n: new(big.Int).Set(n), d: big.NewInt(5)}, nil
}

// Next returns the current candidate D and its Jacobi symbol, then advances.
func (s *DSearch) Next() (*big.Int, int) {
	d := new(big.Int).Set(s.d)
	// the modulus was validated in NewDSearch
	j, _ := Jacobi(d, s.n)

	if s.d.Sign() > 0 {
		s.d.Add(s.d, two)
	} else {
		s.d.Sub(s.d, two)
	}
	s.d.Neg(s.d)

	return d, j
}

// ChooseLucasD returns the first D in 5, -7, 9, -11, ... with
// Jacobi(D, n) == -1. It never returns if n is a perfect square.
func ChooseLucasD(n *big.Int) (*big.Int, error) {
	s, err := NewDSearch(n)
	if err != nil {
		return nil, err
	}
	for {
		if d, j := s.Next(); j == -1 {
			return d, nil
		}
	}
}
