package rsaattack

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/textbook-rsa/pkg/nmath"
	"github.com/mahdiidarabi/textbook-rsa/pkg/rsakey"
)

// nilStrategy never finds anything.
type nilStrategy struct{}

func (nilStrategy) Factor(context.Context, *big.Int) *FactorResult { return nil }

func (nilStrategy) Name() string { return "nil" }

func TestClient_Factor(t *testing.T) {
	client := NewClient()

	result, err := client.Factor(context.Background(), big.NewInt(1000036000099))
	require.NoError(t, err)
	assert.Equal(t, int64(1000033), result.P.Int64())
	assert.Equal(t, int64(1000003), result.Q.Int64())
}

func TestClient_FactorErrors(t *testing.T) {
	client := NewClient()
	ctx := context.Background()

	_, err := client.Factor(ctx, big.NewInt(0))
	assert.ErrorIs(t, err, nmath.ErrInvalidInput)

	// A prime only splits as (n, 1).
	_, err = client.Factor(ctx, big.NewInt(13))
	assert.ErrorIs(t, err, nmath.ErrInvalidInput)

	_, err = client.Factor(ctx, big.NewInt(3))
	assert.Error(t, err)

	_, err = client.WithStrategy(nilStrategy{}).Factor(ctx, big.NewInt(9797))
	assert.Error(t, err)
}

func TestClient_FactorCancelled(t *testing.T) {
	client := NewClient().WithStrategy(nilStrategy{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Factor(ctx, big.NewInt(9797))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_BreakKey(t *testing.T) {
	g := rsakey.NewGenerator().WithConfig(rsakey.KeyConfig{Bits: 64, ExponentBits: 16, MaxExponentAttempts: 1000})
	key, err := g.GenerateFermatKey()
	require.NoError(t, err)

	broken, result, err := NewClient().BreakKey(context.Background(), key.Public())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0, broken.N.Cmp(key.N))
	assert.Equal(t, 0, broken.D.Cmp(key.D))
	assert.NoError(t, broken.Validate())

	m := big.NewInt(424242)
	assert.Equal(t, 0, broken.Decrypt(key.Public().Encrypt(m)).Cmp(m))
}

func TestClient_BreakKeyKnownValues(t *testing.T) {
	broken, result, err := NewClient().BreakKey(context.Background(), &rsakey.PublicKey{N: big.NewInt(3233), E: big.NewInt(17)})
	require.NoError(t, err)

	assert.Equal(t, "small_factor", result.Method)
	assert.Equal(t, int64(61), broken.P.Int64())
	assert.Equal(t, int64(53), broken.Q.Int64())
	assert.Equal(t, int64(413), broken.D.Int64())
}

func TestClient_BreakKeyBadExponent(t *testing.T) {
	// gcd(3, λ(3233)=780) = 3
	_, result, err := NewClient().BreakKey(context.Background(), &rsakey.PublicKey{N: big.NewInt(3233), E: big.NewInt(3)})
	assert.ErrorIs(t, err, nmath.ErrNoInverse)
	assert.NotNil(t, result)
}

func TestClient_RecoverPlaintext(t *testing.T) {
	set := &CiphertextSet{
		N: big.NewInt(3233),
		Ciphertexts: []*Ciphertext{
			{E: big.NewInt(3), C: big.NewInt(3053)},
			{E: big.NewInt(3), C: big.NewInt(3053)},
			{E: big.NewInt(5), C: big.NewInt(2488)},
		},
	}

	result, err := NewClient().RecoverPlaintext(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, int64(65), result.Message.Int64())
	assert.Equal(t, [2]int{0, 2}, result.Pair)
	assert.True(t, result.Verified)
}

func TestClient_RecoverPlaintextUnverified(t *testing.T) {
	set := &CiphertextSet{
		N: big.NewInt(3233),
		Ciphertexts: []*Ciphertext{
			{E: big.NewInt(17), C: big.NewInt(2790)},
			{E: big.NewInt(7), C: big.NewInt(1317)},
			{E: big.NewInt(3), C: big.NewInt(1)},
		},
	}

	result, err := NewClient().RecoverPlaintext(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, int64(65), result.Message.Int64())
	assert.Equal(t, [2]int{0, 1}, result.Pair)
	assert.False(t, result.Verified)
}

func TestClient_RecoverPlaintextErrors(t *testing.T) {
	client := NewClient()
	ctx := context.Background()

	_, err := client.RecoverPlaintext(ctx, nil)
	assert.Error(t, err)

	_, err = client.RecoverPlaintext(ctx, &CiphertextSet{
		N:           big.NewInt(3233),
		Ciphertexts: []*Ciphertext{{E: big.NewInt(17), C: big.NewInt(2790)}},
	})
	assert.Error(t, err)

	_, err = client.RecoverPlaintext(ctx, &CiphertextSet{
		N: big.NewInt(3233),
		Ciphertexts: []*Ciphertext{
			{E: big.NewInt(3), C: big.NewInt(3053)},
			{E: big.NewInt(9), C: big.NewInt(100)},
		},
	})
	assert.ErrorIs(t, err, nmath.ErrInvalidInput)

	_, err = client.RecoverPlaintext(ctx, &CiphertextSet{
		N: big.NewInt(3233),
		Ciphertexts: []*Ciphertext{
			{E: big.NewInt(17), C: big.NewInt(61)},
			{E: big.NewInt(7), C: big.NewInt(1317)},
		},
	})
	assert.ErrorIs(t, err, nmath.ErrNoInverse)
}

func TestClient_RecoverPlaintextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().RecoverPlaintext(ctx, &CiphertextSet{
		N: big.NewInt(3233),
		Ciphertexts: []*Ciphertext{
			{E: big.NewInt(17), C: big.NewInt(2790)},
			{E: big.NewInt(7), C: big.NewInt(1317)},
		},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_RecoverPlaintextGenerated(t *testing.T) {
	g := rsakey.NewGenerator().WithConfig(rsakey.KeyConfig{Bits: 64, ExponentBits: 16, MaxExponentAttempts: 1000})
	k1, k2, err := g.GenerateCommonModulusPair()
	require.NoError(t, err)

	m := big.NewInt(72105)
	set := &CiphertextSet{
		N: k1.N,
		Ciphertexts: []*Ciphertext{
			{E: k1.E, C: k1.Public().Encrypt(m)},
			{E: k2.E, C: k2.Public().Encrypt(m)},
		},
	}

	result, err := NewClient().RecoverPlaintext(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Message.Cmp(m))
	assert.True(t, result.Verified)
}
