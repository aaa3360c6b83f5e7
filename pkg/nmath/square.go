package nmath

import "math/big"

// squareFilterModulus is 9·5·7·13·17. One reduction modulo it feeds all
// five residue tables below.
const squareFilterModulus = 69615

var (
	squaresMod256 [256]bool
	squareFilters = []struct {
		m     uint64
		table []bool
	}{
		{m: 9}, {m: 5}, {m: 7}, {m: 13}, {m: 17},
	}
	squareFilterBig = big.NewInt(squareFilterModulus)
)

func init() {
	for i := 0; i < 256; i++ {
		squaresMod256[(i*i)&0xff] = true
	}
	for i := range squareFilters {
		f := &squareFilters[i]
		f.table = make([]bool, f.m)
		for r := uint64(0); r < f.m; r++ {
			f.table[(r*r)%f.m] = true
		}
	}
}

// IsPerfectSquare reports whether n is the square of an integer.
//
// Most non-squares are rejected by quadratic residue tables modulo 256 and
// modulo 9, 5, 7, 13 and 17; only survivors pay for an integer square root.
func IsPerfectSquare(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}

	var low uint64
	if words := n.Bits(); len(words) > 0 {
		low = uint64(words[0])
	}
	if !squaresMod256[low&0xff] {
		return false
	}

	a := new(big.Int).Mod(n, squareFilterBig).Uint64()
	for _, f := range squareFilters {
		if !f.table[a%f.m] {
			return false
		}
	}

	r := IntSqrt(n)
	return r.Mul(r, r).Cmp(n) == 0
}

// IntSqrt returns floor(sqrt(n)) computed with integer Newton iteration.
// It panics if n is negative.
func IntSqrt(n *big.Int) *big.Int {
	if n.Sign() < 0 {
		panic("nmath: square root of negative number")
	}
	if n.Sign() == 0 {
		return new(big.Int)
	}

	x := new(big.Int).Lsh(one, uint(n.BitLen()+1)>>1)
	y := new(big.Int)
	for {
		y.Quo(n, x)
		y.Add(y, x)
		y.Rsh(y, 1)
		if y.Cmp(x) >= 0 {
			return x
		}
		x.Set(y)
	}
}
