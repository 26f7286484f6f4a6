package field_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubjub-zk/circuit/native/field"
)

func TestCheckedInvRejectsZero(t *testing.T) {
	_, ok := field.CheckedInv(field.Zero())
	assert.False(t, ok)
}

func TestCheckedInvIsMultiplicativeInverse(t *testing.T) {
	a := field.FromUint64(42)
	inv, ok := field.CheckedInv(a)
	require.True(t, ok)
	one := field.Mul(a, inv)
	assert.True(t, field.IsZero(field.Sub(one, field.One())))
}

func TestSqrtRoundTrips(t *testing.T) {
	a := field.FromUint64(4)
	root, ok := field.Sqrt(a)
	require.True(t, ok)
	assert.True(t, field.IsZero(field.Sub(field.Mul(root, root), a)))
}

func TestIsSquareAgreesWithSqrt(t *testing.T) {
	for v := uint64(0); v < 50; v++ {
		a := field.FromUint64(v)
		_, sqrtOk := field.Sqrt(a)
		assert.Equal(t, sqrtOk, field.IsSquare(a), "v=%d", v)
	}
}

func TestIsEvenMatchesBigIntParity(t *testing.T) {
	a := field.FromUint64(7)
	b := field.FromUint64(8)
	assert.False(t, field.IsEven(a))
	assert.True(t, field.IsEven(b))
}

func TestBitExtractsCanonicalBits(t *testing.T) {
	a := field.FromUint64(0b1011)
	assert.Equal(t, uint(1), field.Bit(a, 0))
	assert.Equal(t, uint(1), field.Bit(a, 1))
	assert.Equal(t, uint(0), field.Bit(a, 2))
	assert.Equal(t, uint(1), field.Bit(a, 3))
}

func TestFromBigIntReducesModulo(t *testing.T) {
	over := new(big.Int).Add(field.Modulus(), big.NewInt(5))
	got := field.FromBigInt(over)
	want := field.FromUint64(5)
	assert.True(t, got.Equal(&want))
}
