package boolean_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	"github.com/jubjub-zk/circuit/circuit/boolean"
	"github.com/jubjub-zk/circuit/circuit/cs"
)

// genBit draws a random {0,1} value from genParams' random stream and
// returns it as a Go bool, following the same NextUint64-derived-value
// gopter idiom the pack itself uses (LMBishop-gnark's marshal_test.go).
func genBit() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		v := genParams.NextUint64()%2 == 1
		return gopter.NewGenResult(v, gopter.NoShrinker)
	}
}

func bitOf(system cs.ConstraintSystem, v bool) boolean.CBool {
	if v {
		return boolean.CTrue(system)
	}
	return boolean.CFalse(system)
}

func TestBooleanAlgebraMatchesGoBooleanAlgebra(t *testing.T) {
	system := cs.New()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 32
	properties := gopter.NewProperties(parameters)

	properties.Property("And matches Go &&", prop.ForAll(
		func(av, bv bool) bool {
			a, b := bitOf(system, av), bitOf(system, bv)
			got, _ := a.And(b).GetValue()
			return got == (av && bv)
		},
		genBit(), genBit(),
	))

	properties.Property("Or matches Go ||", prop.ForAll(
		func(av, bv bool) bool {
			a, b := bitOf(system, av), bitOf(system, bv)
			got, _ := a.Or(b).GetValue()
			return got == (av || bv)
		},
		genBit(), genBit(),
	))

	properties.Property("Xor matches Go !=", prop.ForAll(
		func(av, bv bool) bool {
			a, b := bitOf(system, av), bitOf(system, bv)
			got, _ := a.Xor(b).GetValue()
			return got == (av != bv)
		},
		genBit(), genBit(),
	))

	properties.Property("Not matches Go !", prop.ForAll(
		func(av bool) bool {
			a := bitOf(system, av)
			got, _ := a.Not().GetValue()
			return got == !av
		},
		genBit(),
	))

	properties.Property("double negation is identity", prop.ForAll(
		func(av bool) bool {
			a := bitOf(system, av)
			got, _ := a.Not().Not().GetValue()
			return got == av
		},
		genBit(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
