// Package field defines the external field layer consumed by the rest of
// this module: Num, an element of the BN254 scalar field Fr, and Scalar, an
// element of the twisted-Edwards subgroup scalar field Fs.
//
// Num is not reimplemented from scratch: it is the gnark-crypto BN254 scalar
// field element, whose modulus matches the one named in spec §6 exactly. The
// wrapper here only adds the handful of convenience operations (checked
// inverse, parity, integer coercion) that the circuit layer above expects but
// that gnark-crypto exposes under different names or not at all.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Num is an element of Fr, the BN254 scalar field.
type Num = fr.Element

// Zero returns the additive identity.
func Zero() Num {
	var z Num
	return z
}

// One returns the multiplicative identity.
func One() Num {
	var o Num
	o.SetOne()
	return o
}

// FromUint64 builds a Num from a small non-negative integer.
func FromUint64(v uint64) Num {
	var n Num
	n.SetUint64(v)
	return n
}

// FromInt64 builds a Num from a signed integer.
func FromInt64(v int64) Num {
	var n Num
	n.SetInt64(v)
	return n
}

// FromBigInt reduces a big.Int modulo Fr.
func FromBigInt(v *big.Int) Num {
	var n Num
	n.SetBigInt(v)
	return n
}

// Add returns a+b.
func Add(a, b Num) Num {
	var r Num
	r.Add(&a, &b)
	return r
}

// Sub returns a-b.
func Sub(a, b Num) Num {
	var r Num
	r.Sub(&a, &b)
	return r
}

// Mul returns a*b.
func Mul(a, b Num) Num {
	var r Num
	r.Mul(&a, &b)
	return r
}

// Neg returns -a.
func Neg(a Num) Num {
	var r Num
	r.Neg(&a)
	return r
}

// Square returns a*a.
func Square(a Num) Num {
	var r Num
	r.Square(&a)
	return r
}

// IsZero reports whether a is the additive identity.
func IsZero(a Num) bool {
	return a.IsZero()
}

// IsEven reports the parity of a's canonical (non-Montgomery) representative.
func IsEven(a Num) bool {
	var bi big.Int
	a.BigInt(&bi)
	return bi.Bit(0) == 0
}

// CheckedInv returns the multiplicative inverse of a, or false if a is zero.
// This is the fallible counterpart of Inverse and is the one the circuit
// layer's compile-time division-by-zero checks are built on (spec §7).
func CheckedInv(a Num) (Num, bool) {
	if a.IsZero() {
		return Num{}, false
	}
	var r Num
	r.Inverse(&a)
	return r, true
}

// Sqrt returns a square root of a, and false if a is not a quadratic residue.
func Sqrt(a Num) (Num, bool) {
	var r Num
	if r.Sqrt(&a) == nil {
		return Num{}, false
	}
	return r, true
}

// IsSquare reports whether a is a quadratic residue in Fr (zero counts as
// one), without computing the root. The Elligator-style encoding does not
// call it: it takes the residue indicator from Sqrt's ok result instead.
func IsSquare(a Num) bool {
	return a.Legendre() >= 0
}

// Modulus returns the Fr modulus, for callers that need the exact bit width
// or need to compare a decomposed bit vector against it (circuit/bitify's
// strict range check).
func Modulus() *big.Int {
	return fr.Modulus()
}

// Bit returns the i-th bit (0 = LSB) of a's canonical representative.
func Bit(a Num, i int) uint {
	var bi big.Int
	a.BigInt(&bi)
	return bi.Bit(i)
}
