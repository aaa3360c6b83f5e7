package rsaattack

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
)

func TestFermatFactor(t *testing.T) {
	tests := []struct {
		n, p, q int64
	}{
		{9797, 101, 97},
		{3233, 61, 53},
		{5959, 101, 59},
		{10403, 103, 101},
		{1000036000099, 1000033, 1000003},
		{49, 7, 7},
		{13, 13, 1},
		{1, 1, 1},
		{12, 6, 2},
	}

	for _, tt := range tests {
		p, q, err := FermatFactor(big.NewInt(tt.n))
		require.NoError(t, err, "n=%d", tt.n)
		assert.Equal(t, tt.p, p.Int64(), "p for n=%d", tt.n)
		assert.Equal(t, tt.q, q.Int64(), "q for n=%d", tt.n)
	}
}

func TestFermatFactorInvalid(t *testing.T) {
	for _, n := range []int64{0, -15} {
		_, _, err := FermatFactor(big.NewInt(n))
		assert.ErrorIs(t, err, nmath.ErrInvalidInput)
	}
}

func TestFermatSearchRounds(t *testing.T) {
	s, err := NewFermatSearch(big.NewInt(9797))
	require.NoError(t, err)

	assert.False(t, s.Done())
	p, q := s.Factors()
	assert.Nil(t, p)
	assert.Nil(t, q)

	// isqrt(9797) = 98 gives a negative b, 99 gives 99² - 9797 = 2².
	assert.False(t, s.Step())
	assert.True(t, s.Step())
	assert.True(t, s.Done())
	assert.Equal(t, int64(2), s.Rounds())

	// Further steps are no-ops.
	assert.True(t, s.Step())
	assert.Equal(t, int64(2), s.Rounds())

	p, q = s.Factors()
	assert.Equal(t, int64(101), p.Int64())
	assert.Equal(t, int64(97), q.Int64())
}

func TestFermatSearchEven(t *testing.T) {
	s, err := NewFermatSearch(big.NewInt(3234))
	require.NoError(t, err)

	assert.True(t, s.Done())
	assert.Equal(t, int64(0), s.Rounds())
	p, q := s.Factors()
	assert.Equal(t, int64(1617), p.Int64())
	assert.Equal(t, int64(2), q.Int64())
}

func TestFermatSearchBounded(t *testing.T) {
	// The factors are far apart: about 85787 rounds are needed.
	s, err := NewFermatSearch(big.NewInt(2000009000009))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		require.False(t, s.Step())
	}
	assert.False(t, s.Done())
	assert.Equal(t, int64(1000), s.Rounds())
}

func TestFermatFactorDoesNotModifyInput(t *testing.T) {
	n := big.NewInt(9797)
	_, _, err := FermatFactor(n)
	require.NoError(t, err)
	assert.Equal(t, int64(9797), n.Int64())
}
