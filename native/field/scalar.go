package field

import "math/big"

// fsModulus is the order of the twisted-Edwards prime-order subgroup (spec §6).
var fsModulus, _ = new(big.Int).SetString(
	"2736030358979909402780800718157159386076813972158567259200215660948447373041", 10)

// Scalar is an element of Fs, the subgroup scalar field. gnark-crypto has no
// generated field type for this modulus (it belongs to the curve's subgroup,
// not to any of the pairing-friendly curves it generates fields for), so it
// is kept as a reduced big.Int, in the style of the Scalar type paired with
// FieldElement in hand-written Jubjub implementations.
type Scalar struct {
	n big.Int
}

// FsModulus returns a copy of the subgroup order.
func FsModulus() *big.Int {
	return new(big.Int).Set(fsModulus)
}

// NewScalar reduces v modulo Fs.
func NewScalar(v *big.Int) Scalar {
	var s Scalar
	s.n.Mod(v, fsModulus)
	return s
}

// ScalarFromUint64 builds a reduced Scalar from a small integer.
func ScalarFromUint64(v uint64) Scalar {
	return NewScalar(new(big.Int).SetUint64(v))
}

// BigInt returns the canonical big.Int representative, 0 <= n < Fs.
func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(&s.n)
}

// Inverse returns s^-1 mod Fs, or false if s is zero.
func (s Scalar) Inverse() (Scalar, bool) {
	if s.n.Sign() == 0 {
		return Scalar{}, false
	}
	var r Scalar
	r.n.ModInverse(&s.n, fsModulus)
	return r, true
}

// BitLen returns the number of bits in the canonical representative.
func (s Scalar) BitLen() int {
	return s.n.BitLen()
}

// Bit returns the i-th bit (0 = LSB) of the canonical representative.
func (s Scalar) Bit(i int) uint {
	return s.n.Bit(i)
}
