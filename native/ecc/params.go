// Package ecc implements the native (out-of-circuit) twisted-Edwards /
// Montgomery curve arithmetic for the BN254-scalar JubJub-style curve: point
// addition and doubling, the birational Edwards<->Montgomery map, cofactor
// multiplication, subgroup decompression and the Elligator-2-style
// from_scalar_raw encoding (spec §4.4).
package ecc

import (
	"github.com/jubjub-zk/circuit/native/field"
)

// JubJubParams exposes the curve constants consumed throughout this module
// (spec §6). A = 2(1-d)/(1+d), B = -4/(1+d), and U is a fixed non-residue in
// Fr used by the Elligator encoding.
type JubJubParams interface {
	EdwardsG() EdwardsPoint
	EdwardsD() field.Num
	MontgomeryA() field.Num
	MontgomeryB() field.Num
	MontgomeryU() field.Num
}

// bn254Params is the unique curve instance this module targets.
type bn254Params struct {
	edwardsG    EdwardsPoint
	edwardsD    field.Num
	montgomeryA field.Num
	montgomeryB field.Num
	montgomeryU field.Num
}

// seedEdwardsG is the domain-separation seed used to derive the generator
// deterministically via FromSeed + from_scalar_raw, mirroring the original's
// Num::from_seed(SEED_EDWARDS_G).
const seedEdwardsG = "jubjub-zk.edwards.generator.v1"

var bn254 *bn254Params

// NewBN254Params returns the JubJubParams for the BN254 scalar field. The
// instance is built once and cached: the generator derivation below performs
// a from_scalar_raw Elligator encoding which is not free, and every caller
// needs the identical generator (spec invariant: same parameters must
// compile to bit-identical circuits).
func NewBN254Params() JubJubParams {
	if bn254 != nil {
		return bn254
	}
	edwardsD := field.Neg(field.Mul(field.FromUint64(168696), mustInv(field.FromUint64(168700))))
	one := field.One()
	two := field.FromUint64(2)
	montgomeryA := field.Mul(two, field.Mul(field.Sub(one, edwardsD), mustInv(field.Add(one, edwardsD))))
	montgomeryB := field.Neg(field.Mul(field.FromUint64(4), mustInv(field.Add(one, edwardsD))))
	// value of the Montgomery curve polynomial at a point with no square
	// root in Fr; fixed non-residue used by the Elligator encoding.
	montgomeryU := field.FromUint64(337401)

	// edwardsG is left zero-valued here: FromScalarRaw's final cofactor
	// multiplication only reads EdwardsD (via Double), never EdwardsG, so a
	// partially-built params value is sound to pass as the receiver.
	partial := &bn254Params{
		edwardsD:    edwardsD,
		montgomeryA: montgomeryA,
		montgomeryB: montgomeryB,
		montgomeryU: montgomeryU,
	}
	seed := FromSeed(seedEdwardsG)
	partial.edwardsG = FromScalarRaw(seed, montgomeryA, montgomeryB, montgomeryU, partial)

	bn254 = partial
	return bn254
}

func (p *bn254Params) EdwardsG() EdwardsPoint    { return p.edwardsG }
func (p *bn254Params) EdwardsD() field.Num       { return p.edwardsD }
func (p *bn254Params) MontgomeryA() field.Num    { return p.montgomeryA }
func (p *bn254Params) MontgomeryB() field.Num    { return p.montgomeryB }
func (p *bn254Params) MontgomeryU() field.Num    { return p.montgomeryU }

func mustInv(a field.Num) field.Num {
	r, ok := field.CheckedInv(a)
	if !ok {
		panic("jubjub-zk/native/ecc: division by zero constant")
	}
	return r
}
