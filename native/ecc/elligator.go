package ecc

import (
	"bytes"
	"math/big"

	"github.com/icza/bitio"
	"golang.org/x/crypto/blake2b"

	"github.com/jubjub-zk/circuit/native/field"
)

// FromSeed hashes a domain-separated string into an element of Fr via
// BLAKE2b, used to derive deterministic curve constants (spec engines/bn256
// grounding: Num::from_seed(SEED_EDWARDS_G)).
func FromSeed(seed string) field.Num {
	h := blake2b.Sum512([]byte(seed))
	return field.FromBigInt(new(big.Int).SetBytes(h[:]))
}

// filterEven negates x if its canonical representative is odd, so the
// returned value always has an even low bit (spec §4.4 parity fix-up).
func filterEven(x field.Num) field.Num {
	if field.IsEven(x) {
		return x
	}
	return field.Neg(x)
}

// checkAndGetY solves the Montgomery curve equation g = (x^2*(x+A)+x)/B and
// returns (isSquare, y) where y is a square root of g when one exists, or of
// g*u otherwise (u the fixed non-residue). Exactly one branch succeeds for
// any x reachable by from_scalar_raw (spec's required invariant).
func checkAndGetY(x, a, b, u field.Num) (bool, field.Num) {
	g := field.Mul(field.Add(field.Mul(field.Square(x), field.Add(x, a)), x), mustInv(b))
	if y, ok := field.Sqrt(g); ok {
		return true, filterEven(y)
	}
	y, ok := field.Sqrt(field.Mul(g, u))
	if !ok {
		// spec invariant: exactly one of g, g*u is a square for every valid x.
		panic("jubjub-zk/native/ecc: elligator invariant violated, neither residue branch is square")
	}
	return false, filterEven(y)
}

// FromScalarRaw implements the Elligator-2-like encoding of spec §4.4: given
// t != -1 in Fr, produces an Edwards point in the prime-order subgroup (the
// algorithm's final step is a cofactor multiplication, required precisely
// because the Montgomery->Edwards image alone only lands on the full curve,
// not necessarily the subgroup).
func FromScalarRaw(t, a, b, u field.Num, params JubJubParams) EdwardsPoint {
	tt := field.Add(t, field.One())
	g1 := field.Mul(u, field.Square(tt))

	x3 := field.Mul(field.Neg(mustInv(a)), field.Add(g1, field.One()))
	x2 := field.Mul(x3, mustInv(g1))

	isValid, y2 := checkAndGetY(x2, a, b, u)
	_, y3 := checkAndGetY(x3, a, b, u)

	var x, y field.Num
	if isValid {
		x, y = x2, y2
	} else {
		x, y = x3, y3
	}

	return MontgomeryPoint{X: x, Y: y}.IntoEdwards().MulByCofactor(params)
}

// ScalarBitsLE decodes a big-endian scalar byte string into a little-endian
// (LSB-first) bit slice, via an icza/bitio reader over the reversed bytes.
// bitio yields each byte's bits most significant first, so every byte's
// eight bits are stored in reverse order of reading.
func ScalarBitsLE(k []byte) []bool {
	rev := make([]byte, len(k))
	for i, b := range k {
		rev[len(k)-1-i] = b
	}
	r := bitio.NewReader(bytes.NewReader(rev))
	bits := make([]bool, 0, len(k)*8)
	for i := 0; i < len(k); i++ {
		var byteBits [8]bool
		for j := 7; j >= 0; j-- {
			bit, err := r.ReadBool()
			if err != nil {
				return bits
			}
			byteBits[j] = bit
		}
		bits = append(bits, byteBits[:]...)
	}
	return bits
}
