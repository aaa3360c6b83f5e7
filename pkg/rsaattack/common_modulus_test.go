package rsaattack

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
	"github.com/mahdiidarabi/textbook-rsa/pkg/rsakey"
)

func TestCommonModulusAttackKnownValues(t *testing.T) {
	// 65^17 mod 3233 = 2790, 65^7 mod 3233 = 1317
	m, err := CommonModulusAttack(big.NewInt(2790), big.NewInt(1317), big.NewInt(17), big.NewInt(7), big.NewInt(3233))
	require.NoError(t, err)
	assert.Equal(t, int64(65), m.Int64())

	// Argument order does not matter.
	m, err = CommonModulusAttack(big.NewInt(1317), big.NewInt(2790), big.NewInt(7), big.NewInt(17), big.NewInt(3233))
	require.NoError(t, err)
	assert.Equal(t, int64(65), m.Int64())
}

func TestCommonModulusAttackGeneratedPair(t *testing.T) {
	g := rsakey.NewGenerator()

	for _, bits := range []int{32, 48, 64} {
		g.WithConfig(rsakey.KeyConfig{Bits: bits, ExponentBits: 8, MaxExponentAttempts: 1000})
		k1, k2, err := g.GenerateCommonModulusPair()
		require.NoError(t, err)
		require.Equal(t, 0, k1.N.Cmp(k2.N))

		m := new(big.Int).Rsh(k1.N, 3)
		c1 := k1.Public().Encrypt(m)
		c2 := k2.Public().Encrypt(m)

		got, err := CommonModulusAttack(c1, c2, k1.E, k2.E, k1.N)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Cmp(got), "bits=%d", bits)
	}
}

func TestCommonModulusAttackSharedExponentFactor(t *testing.T) {
	_, err := CommonModulusAttack(big.NewInt(3053), big.NewInt(100), big.NewInt(3), big.NewInt(9), big.NewInt(3233))
	assert.ErrorIs(t, err, nmath.ErrInvalidInput)
}

func TestCommonModulusAttackNonInvertibleCiphertext(t *testing.T) {
	// 17·(-2) + 7·5 = 1, so c1 must be inverted; 61 divides 3233.
	_, err := CommonModulusAttack(big.NewInt(61), big.NewInt(1317), big.NewInt(17), big.NewInt(7), big.NewInt(3233))
	require.Error(t, err)
	assert.ErrorIs(t, err, nmath.ErrNoInverse)

	var noInv *nmath.NoInverseError
	require.ErrorAs(t, err, &noInv)
	assert.Equal(t, int64(61), noInv.GCD.Int64())
}
