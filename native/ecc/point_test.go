package ecc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubjub-zk/circuit/native/field"
	. "github.com/jubjub-zk/circuit/native/ecc"
)

func TestEdwardsIdentityIsNeutral(t *testing.T) {
	params := NewBN254Params()
	id := EdwardsIdentity()
	assert.True(t, id.IsZero())
	assert.True(t, id.IsOnCurve(params))

	g := params.EdwardsG()
	assert.Empty(t, cmp.Diff(g, g.Add(id, params)))
}

func TestGeneratorIsOnCurveAndInSubgroup(t *testing.T) {
	params := NewBN254Params()
	g := params.EdwardsG()
	require.True(t, g.IsOnCurve(params))

	eight := field.ScalarFromUint64(8)
	inv8, ok := eight.Inverse()
	require.True(t, ok)
	preimage := g.Mul(inv8, params)
	assert.True(t, preimage.MulByCofactor(params) == g)
}

func TestMulByScalarZeroIsIdentity(t *testing.T) {
	params := NewBN254Params()
	g := params.EdwardsG()
	got := g.Mul(field.ScalarFromUint64(0), params)
	assert.True(t, got.IsZero())
}

func TestMulByScalarOneIsUnchanged(t *testing.T) {
	params := NewBN254Params()
	g := params.EdwardsG()
	got := g.Mul(field.ScalarFromUint64(1), params)
	assert.Equal(t, g, got)
}

func TestMontgomeryRoundTrip(t *testing.T) {
	params := NewBN254Params()
	g := params.EdwardsG()

	m := g.IntoMontgomery()
	back := m.IntoEdwards()
	assert.Equal(t, g, back)
}

func TestSubgroupDecompressRejectsNonCurveX(t *testing.T) {
	params := NewBN254Params()
	// An x with no corresponding y: (1 - x^2)/(1 + d*x^2) must be a
	// non-residue. Brute-force search a small value that fails; if none of
	// the first few candidates fail, the property test elsewhere already
	// covers the success path, so this just checks the failure path exists.
	for v := uint64(2); v < 64; v++ {
		x := field.FromUint64(v)
		if _, ok := SubgroupDecompress(x, params); !ok {
			return
		}
	}
	t.Skip("no non-residue x found in the small search range")
}
