// Package bitify provides the strict little-endian bit decomposition
// (c_into_bits_le_strict) that the in-circuit Elligator encoding (spec
// §4.5, from_scalar) needs to read the parity of a square-root witness.
// The spec treats bit decomposition as an external gadget whose I/O contract
// is all that matters here, so this is a direct, unoptimized implementation
// rather than the highly tuned lookup-table decomposition a production
// prover would use — grounded on the same bit-by-bit range-check idiom gnark
// uses for AssertIsLessOrEqual (std/math/emulated/field_assert.go), adapted
// to a compile-time-constant bound (the Fr modulus) instead of two signals.
package bitify

import (
	"math/big"

	"github.com/jubjub-zk/circuit/circuit/boolean"
	"github.com/jubjub-zk/circuit/circuit/cs"
	"github.com/jubjub-zk/circuit/circuit/signal"
	"github.com/jubjub-zk/circuit/native/field"
)

// CIntoBitsLEStrict decomposes x into nbBits little-endian (LSB-first) bits,
// asserts each is boolean, asserts their weighted recomposition equals x, and
// asserts the resulting integer is strictly less than the Fr modulus so the
// decomposition is the unique canonical one (not an aliased x+p).
func CIntoBitsLEStrict(x *signal.CNum, nbBits int) []boolean.CBool {
	system := x.GetCS()
	val, hasVal := x.GetValue()

	bits := make([]*signal.CNum, nbBits)
	acc := signal.FromConst(system, field.Zero())
	coeff := field.One()
	two := field.FromUint64(2)
	for i := 0; i < nbBits; i++ {
		var bv *field.Num
		if hasVal {
			b := field.FromUint64(uint64(field.Bit(val, i)))
			bv = &b
		}
		b := signal.Alloc(system, bv)
		b.AssertBit()
		bits[i] = b
		acc = acc.Add(b.MulConst(coeff))
		coeff = field.Mul(coeff, two)
	}
	x.AssertEq(acc)
	assertStrictlyBelowModulus(system, bits)

	out := make([]boolean.CBool, nbBits)
	for i, b := range bits {
		out[i] = boolean.NewUnchecked(b)
	}
	return out
}

// assertStrictlyBelowModulus enforces that the little-endian bit vector
// bitsLE, read as an unsigned integer, is less than the Fr modulus. It walks
// the bits from most to least significant tracking, in p, whether the prefix
// seen so far still ties the modulus-minus-one exactly; wherever the bound's
// bit is 0, a tied prefix forces the corresponding signal bit to 0 as well.
// Comparing against modulus-1 rather than the modulus itself is what makes
// this strict (V <= p-1) instead of gnark's non-strict AssertIsLessOrEqual
// (V <= p), which this gadget is otherwise adapted from; see modulusPrevBitsLE.
func assertStrictlyBelowModulus(system cs.ConstraintSystem, bitsLE []*signal.CNum) {
	modBits := modulusPrevBitsLE(len(bitsLE))
	one := signal.FromConst(system, field.One())

	p := one
	for i := len(bitsLE) - 1; i >= 0; i-- {
		e := bitsLE[i]
		if modBits[i] == 1 {
			p = p.Mul(e)
			continue
		}
		l := one.Sub(p).Sub(e)
		l.Mul(e).AssertZero()
	}
}

// modulusPrevBitsLE returns the low nbBits little-endian bits of the Fr
// modulus minus one, mirroring gnark's Field.modulusPrev() (field_assert.go)
// which AssertIsInRange compares against to turn <= into a strict <.
func modulusPrevBitsLE(nbBits int) []int {
	m := new(big.Int).Sub(field.Modulus(), big.NewInt(1))
	out := make([]int, nbBits)
	for i := 0; i < nbBits; i++ {
		out[i] = int(m.Bit(i))
	}
	return out
}
