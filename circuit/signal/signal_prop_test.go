package signal_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/jubjub-zk/circuit/circuit/cs"
	"github.com/jubjub-zk/circuit/circuit/signal"
	"github.com/jubjub-zk/circuit/native/field"
)

// genFieldValue draws a random small Fr element from genParams' random
// stream, following the pack's own gopter generator idiom (LMBishop-gnark's
// marshal_test.go GenG1/GenG2: derive a random value from
// genParams.NextUint64() rather than a full-width custom generator).
func genFieldValue() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		v := field.FromUint64(genParams.NextUint64())
		return gopter.NewGenResult(v, gopter.NoShrinker)
	}
}

func witnessOf(t *testing.T, n *signal.CNum) field.Num {
	t.Helper()
	v, ok := n.GetValue()
	require.True(t, ok)
	return v
}

func TestSignalAlgebraicLaws(t *testing.T) {
	system := cs.New()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 64
	properties := gopter.NewProperties(parameters)

	properties.Property("addition is commutative", prop.ForAll(
		func(av, bv field.Num) bool {
			a := signal.Alloc(system, &av)
			b := signal.Alloc(system, &bv)
			return witnessOf(t, a.Add(b)).Equal(ptr(witnessOf(t, b.Add(a))))
		},
		genFieldValue(),
		genFieldValue(),
	))

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(av, bv, cv field.Num) bool {
			a := signal.Alloc(system, &av)
			b := signal.Alloc(system, &bv)
			c := signal.Alloc(system, &cv)

			left := a.Add(b).Mul(c)
			right := a.Mul(c).Add(b.Mul(c))
			return witnessOf(t, left).Equal(ptr(witnessOf(t, right)))
		},
		genFieldValue(),
		genFieldValue(),
		genFieldValue(),
	))

	properties.Property("a * a^-1 == 1 for nonzero a", prop.ForAll(
		func(av uint64) bool {
			if av == 0 {
				av = 1
			}
			v := field.FromUint64(av)
			a := signal.Alloc(system, &v)
			got := witnessOf(t, a.Mul(a.Inv()))
			one := field.One()
			return got.Equal(&one)
		},
		genNonzeroUint64(),
	))

	properties.Property("is_zero yields 1 iff the witness is zero", prop.ForAll(
		func(av uint64) bool {
			v := field.FromUint64(av)
			a := signal.Alloc(system, &v)
			got := witnessOf(t, a.IsZero())
			want := field.Zero()
			if av == 0 {
				want = field.One()
			}
			return got.Equal(&want)
		},
		genSmallUint64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func genNonzeroUint64() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		v := genParams.NextUint64()%999 + 1
		return gopter.NewGenResult(v, gopter.NoShrinker)
	}
}

func genSmallUint64() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		v := genParams.NextUint64() % 5
		return gopter.NewGenResult(v, gopter.NoShrinker)
	}
}

func ptr(v field.Num) *field.Num { return &v }
