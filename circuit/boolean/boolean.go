// Package boolean implements CBool (spec §3/§4.3): a newtype over CNum whose
// witness, when present, is constrained to {0,1}.
package boolean

import (
	"github.com/jubjub-zk/circuit/circuit/cs"
	"github.com/jubjub-zk/circuit/circuit/signal"
	"github.com/jubjub-zk/circuit/native/field"
)

// CBool wraps a CNum known (by construction or by caller promise) to be bit-
// constrained.
type CBool struct {
	n *signal.CNum
}

// New wraps x after asserting x*(x-1) = 0 (spec §4.3).
func New(x *signal.CNum) CBool {
	x.AssertBit()
	return CBool{n: x}
}

// NewUnchecked wraps x without asserting the bit constraint; the caller must
// guarantee x's witness (when present) is already 0 or 1.
func NewUnchecked(x *signal.CNum) CBool {
	return CBool{n: x}
}

// CTrue returns the constant true bit.
func CTrue(system cs.ConstraintSystem) CBool {
	return NewUnchecked(signal.FromConst(system, field.One()))
}

// CFalse returns the constant false bit.
func CFalse(system cs.ConstraintSystem) CBool {
	return NewUnchecked(signal.FromConst(system, field.Zero()))
}

// ToNum is the identity cast back to the underlying CNum.
func (b CBool) ToNum() *signal.CNum { return b.n }

// GetCS returns the owning constraint system.
func (b CBool) GetCS() cs.ConstraintSystem { return b.n.GetCS() }

// GetValue returns the witness as a bool, if present.
func (b CBool) GetValue() (bool, bool) {
	v, ok := b.n.GetValue()
	if !ok {
		return false, false
	}
	return !field.IsZero(v), true
}

// Inputize pins the underlying CNum as a public input.
func (b CBool) Inputize() { b.n.Inputize() }

// AssertTrue asserts the bit equals constant 1.
func (b CBool) AssertTrue() { b.n.AssertConst(field.One()) }

// AssertFalse asserts the bit equals constant 0.
func (b CBool) AssertFalse() { b.n.AssertZero() }

// Not returns 1 - b (spec §4.3).
func (b CBool) Not() CBool {
	one := signal.FromConst(b.n.GetCS(), field.One())
	return NewUnchecked(one.Sub(b.n))
}

// And returns a AND b = a*b (spec §4.3).
func (b CBool) And(other CBool) CBool {
	return NewUnchecked(b.n.Mul(other.n))
}

// Or returns a OR b = a + b - a*b (spec §4.3).
func (b CBool) Or(other CBool) CBool {
	return NewUnchecked(b.n.Add(other.n).Sub(b.n.Mul(other.n)))
}

// Xor returns a XOR b = a + b - 2*a*b (spec §4.3).
func (b CBool) Xor(other CBool) CBool {
	two := signal.FromConst(b.n.GetCS(), field.FromUint64(2))
	return NewUnchecked(b.n.Add(other.n).Sub(two.Mul(b.n).Mul(other.n)))
}

// IsEq reports, as a bit, whether b and other are witness-equal.
func (b CBool) IsEq(other CBool) CBool {
	return NewUnchecked(b.n.IsEq(other.n))
}

// Switch implements bit ? b : elseB componentwise over the wrapped CNum.
func (b CBool) Switch(bit CBool, elseB CBool) CBool {
	return NewUnchecked(b.n.Switch(bit.n, elseB.n))
}

// IfElse picks ifTrue when b holds, ifFalse otherwise; a thin convenience
// wrapper mirroring fawkes-crypto's CBool::if_else, present as a supplemented
// feature (spec §9 calls composite switch "defined by" this relation).
func (b CBool) IfElse(ifTrue, ifFalse *signal.CNum) *signal.CNum {
	return ifTrue.Switch(b.n, ifFalse)
}
