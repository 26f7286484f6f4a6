package cs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jubjub-zk/circuit/circuit/cs"
	"github.com/jubjub-zk/circuit/native/field"
)

// Builds x*y = z as a bilinear constraint and checks Solve against both a
// satisfying and an unsatisfying witness, in the style of gnark's
// test.Assert/CheckCircuit ("is this R1CS satisfied by this witness?").
func TestSolveAcceptsSatisfyingWitnessAndRejectsOthers(t *testing.T) {
	r := cs.New()
	x := r.AllocVariable()
	y := r.AllocVariable()
	z := r.AllocVariable()

	r.EnforceMul(
		cs.OfVar(field.One(), x, field.Zero()),
		cs.OfVar(field.One(), y, field.Zero()),
		cs.OfVar(field.One(), z, field.Zero()),
	)

	good := cs.Assignment{
		x: field.FromUint64(3),
		y: field.FromUint64(4),
		z: field.FromUint64(12),
	}
	assert.Equal(t, -1, cs.Solve(r, good))

	bad := cs.Assignment{
		x: field.FromUint64(3),
		y: field.FromUint64(4),
		z: field.FromUint64(13),
	}
	assert.Equal(t, 0, cs.Solve(r, bad))
}

func TestSolveChecksLinearConstraints(t *testing.T) {
	r := cs.New()
	a := r.AllocVariable()
	b := r.AllocVariable()
	c := r.AllocVariable()

	r.EnforceAdd(
		cs.OfVar(field.One(), a, field.Zero()),
		cs.OfVar(field.One(), b, field.Zero()),
		cs.OfVar(field.One(), c, field.Zero()),
	)

	assignment := cs.Assignment{
		a: field.FromUint64(2),
		b: field.FromUint64(5),
		c: field.FromUint64(7),
	}
	assert.Equal(t, -1, cs.Solve(r, assignment))

	assignment[c] = field.FromUint64(8)
	assert.Equal(t, 0, cs.Solve(r, assignment))
}
