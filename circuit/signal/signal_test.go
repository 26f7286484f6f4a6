package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubjub-zk/circuit/circuit/cs"
	"github.com/jubjub-zk/circuit/circuit/signal"
	"github.com/jubjub-zk/circuit/native/field"
)

func TestConstantFoldingNeverAllocates(t *testing.T) {
	system := cs.New()
	a := signal.FromConst(system, field.FromUint64(3))
	b := signal.FromConst(system, field.FromUint64(5))

	sum := a.Add(b)
	prod := a.Mul(b)

	c, ok := sum.AsConst()
	require.True(t, ok)
	assert.True(t, field.FromUint64(8).Equal(&c))

	c, ok = prod.AsConst()
	require.True(t, ok)
	assert.True(t, field.FromUint64(15).Equal(&c))

	assert.Equal(t, 1, system.NbVariables(), "pure constant arithmetic must not allocate a variable")
	assert.Len(t, system.Constraints(), 0, "pure constant arithmetic must not emit a constraint")
}

func TestAddAllocatesOneVariableOnVariableOperands(t *testing.T) {
	system := cs.New()
	x := signal.Alloc(system, ref(field.FromUint64(2)))
	y := signal.Alloc(system, ref(field.FromUint64(7)))

	sum := x.Add(y)

	v, ok := sum.GetValue()
	require.True(t, ok)
	assert.True(t, field.FromUint64(9).Equal(&v))
	assert.Equal(t, 4, system.NbVariables(), "Var(0), x, y and the one fresh sum variable")
	assert.Len(t, system.Constraints(), 1)
}

func TestMulAllocatesAndEmitsBilinearConstraint(t *testing.T) {
	system := cs.New()
	x := signal.Alloc(system, ref(field.FromUint64(6)))
	y := signal.Alloc(system, ref(field.FromUint64(7)))

	prod := x.Mul(y)

	v, ok := prod.GetValue()
	require.True(t, ok)
	assert.True(t, field.FromUint64(42).Equal(&v))

	got := system.Constraints()
	require.Len(t, got, 1)
	assert.Equal(t, cs.KindBilinear, got[0].Kind)
}

func TestDistributivityHoldsAsWitnessValues(t *testing.T) {
	system := cs.New()
	a := signal.Alloc(system, ref(field.FromUint64(2)))
	b := signal.Alloc(system, ref(field.FromUint64(3)))
	c := signal.Alloc(system, ref(field.FromUint64(4)))

	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))

	lv, _ := lhs.GetValue()
	rv, _ := rhs.GetValue()
	assert.True(t, lv.Equal(&rv))
}

func TestInvOfNonzeroSatisfiesATimesAInvEqualsOne(t *testing.T) {
	system := cs.New()
	a := signal.Alloc(system, ref(field.FromUint64(9)))

	inv := a.Inv()
	prod := a.Mul(inv)

	v, ok := prod.GetValue()
	require.True(t, ok)
	assert.True(t, field.One().Equal(&v))
}

func TestInvOfConstantZeroPanics(t *testing.T) {
	system := cs.New()
	zero := signal.FromConst(system, field.Zero())
	assert.Panics(t, func() { zero.Inv() })
}

func TestAssertBitOnlyMeaningfulOnZeroOrOne(t *testing.T) {
	system := cs.New()
	bit := signal.Alloc(system, ref(field.FromUint64(1)))
	assert.NotPanics(t, func() { bit.AssertBit() })

	// bit is Var(1); the single x*(x-1) = 0 row holds only for 0 and 1.
	for _, c := range []struct {
		x    uint64
		want int
	}{{0, -1}, {1, -1}, {2, 0}} {
		assignment := cs.Assignment{cs.Var(1): field.FromUint64(c.x)}
		assert.Equal(t, c.want, cs.Solve(system, assignment), "x=%d", c.x)
	}
}

func TestIsZeroYieldsOneIffWitnessIsZero(t *testing.T) {
	system := cs.New()
	zero := signal.Alloc(system, ref(field.Zero()))
	nonzero := signal.Alloc(system, ref(field.FromUint64(4)))

	zIsZero := zero.IsZero()
	v, _ := zIsZero.GetValue()
	assert.True(t, field.One().Equal(&v))

	nzIsZero := nonzero.IsZero()
	v, _ = nzIsZero.GetValue()
	assert.True(t, field.Zero().Equal(&v))
}

func TestSwitchSelectsByBit(t *testing.T) {
	system := cs.New()
	ifTrue := signal.FromConst(system, field.FromUint64(11))
	ifFalse := signal.FromConst(system, field.FromUint64(22))
	one := signal.FromConst(system, field.One())
	zero := signal.FromConst(system, field.Zero())

	got := ifTrue.Switch(one, ifFalse)
	v, _ := got.GetValue()
	assert.True(t, field.FromUint64(11).Equal(&v))

	got = ifTrue.Switch(zero, ifFalse)
	v, _ = got.GetValue()
	assert.True(t, field.FromUint64(22).Equal(&v))
}

func TestDivUncheckedOfAByAIsOne(t *testing.T) {
	system := cs.New()
	a := signal.Alloc(system, ref(field.FromUint64(13)))
	got := a.DivUnchecked(a)
	v, _ := got.GetValue()
	assert.True(t, field.One().Equal(&v))
}

func ref(n field.Num) *field.Num { return &n }
