package ecc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubjub-zk/circuit/native/field"
	. "github.com/jubjub-zk/circuit/native/ecc"
)

func TestNewBN254ParamsIsASingleton(t *testing.T) {
	a := NewBN254Params()
	b := NewBN254Params()
	assert.Same(t, a, b)
}

// A = 2(1-d)/(1+d), B = -4/(1+d) (spec §3 "Curve parameters").
func TestMontgomeryConstantsSatisfyTheirDefiningRelations(t *testing.T) {
	params := NewBN254Params()
	d := params.EdwardsD()
	one := field.One()

	onePlusD := field.Add(one, d)
	invOnePlusD, ok := field.CheckedInv(onePlusD)
	require.True(t, ok)

	wantA := field.Mul(field.FromUint64(2), field.Mul(field.Sub(one, d), invOnePlusD))
	wantB := field.Neg(field.Mul(field.FromUint64(4), invOnePlusD))

	assert.True(t, field.IsZero(field.Sub(wantA, params.MontgomeryA())))
	assert.True(t, field.IsZero(field.Sub(wantB, params.MontgomeryB())))
}

func TestGeneratorIsOnCurve(t *testing.T) {
	params := NewBN254Params()
	assert.True(t, params.EdwardsG().IsOnCurve(params))
}
