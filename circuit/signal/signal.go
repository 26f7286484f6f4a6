// Package signal implements the Signal contract (spec §4.1) and its field
// signal CNum (spec §4.2): an affine linear combination a*var(v)+b over a
// shared constraint system, with arithmetic that folds constants and only
// allocates a variable plus emits a constraint when it strictly must.
//
// Composite signals (CBool in circuit/boolean, CEdwardsPoint/CMontgomeryPoint
// in circuit/ecc) satisfy the same contract by componentwise dispatch onto
// their underlying CNum fields rather than through Go generics: the spec
// itself treats a monomorphized per-type implementation of a type-erased
// trait as an acceptable reading of "Signal trait" (spec §9, "Generics over
// the prime field"), and Go has no direct equivalent of the derive machinery
// that generates the Rust blanket impl.
package signal

import (
	"fmt"

	"github.com/jubjub-zk/circuit/circuit/cs"
	"github.com/jubjub-zk/circuit/native/field"
)

// Signal is the subset of the spec §4.1 contract that is common across
// scalar and composite signals: access to the owning CS, pinning as a public
// input, and flattening to the underlying CNum leaves (used by the
// inputize/assert_eq machinery on composite signals, spec §9).
type Signal interface {
	GetCS() cs.ConstraintSystem
	Inputize()
	LinearizeBuilder(acc *[]*CNum)
}

// CNum is the field signal of spec §3/§4.2: a triple of an optional witness
// value, an affine LC a*var(v)+b, and a shared constraint system handle.
type CNum struct {
	value   *field.Num
	hasVal  bool
	a, b    field.Num
	v       cs.Var
	cs      cs.ConstraintSystem
}

// FromConst builds a constant signal (spec §4.2, "constants carry lc = (0,_,b)").
func FromConst(system cs.ConstraintSystem, value field.Num) *CNum {
	return &CNum{value: &value, hasVal: true, a: field.Zero(), b: value, v: cs.One, cs: system}
}

// Alloc allocates a fresh variable (spec §4.1 "alloc"). value may be nil when
// the circuit is being compiled without a witness.
func Alloc(system cs.ConstraintSystem, value *field.Num) *CNum {
	v := system.AllocVariable()
	n := &CNum{a: field.One(), b: field.Zero(), v: v, cs: system}
	if value != nil {
		val := *value
		n.value = &val
		n.hasVal = true
	}
	return n
}

// GetCS returns the owning constraint system.
func (n *CNum) GetCS() cs.ConstraintSystem { return n.cs }

// GetValue returns the witness value, if present.
func (n *CNum) GetValue() (field.Num, bool) {
	if !n.hasVal {
		return field.Num{}, false
	}
	return *n.value, true
}

// AsConst returns b iff the LC coefficient a is zero (spec §3 invariant).
func (n *CNum) AsConst() (field.Num, bool) {
	if field.IsZero(n.a) {
		return n.b, true
	}
	return field.Num{}, false
}

// lc returns the wire-level triple the ConstraintSystem contract consumes.
func (n *CNum) lc() cs.LinComb {
	return cs.OfVar(n.a, n.v, n.b)
}

// AssertConst emits a linear constraint forcing self == value.
func (n *CNum) AssertConst(value field.Num) {
	n.cs.EnforceAdd(n.lc(), cs.Const(field.Zero()), cs.Const(value))
}

// Inputize pins a copy of the signal as a public input via EnforcePub.
func (n *CNum) Inputize() {
	val, _ := n.GetValue()
	var v *field.Num
	if n.hasVal {
		v = &val
	}
	copy := Alloc(n.cs, v)
	n.AssertEq(copy)
	n.cs.EnforcePub(copy.lc())
}

// LinearizeBuilder appends n itself: CNum is the leaf of the Signal contract.
func (n *CNum) LinearizeBuilder(acc *[]*CNum) {
	*acc = append(*acc, n)
}

// AssertEq emits a constraint forcing n == other.
func (n *CNum) AssertEq(other *CNum) {
	n.Sub(other).AssertZero()
}

// IsEq reports, as a bit signal, whether n and other are witness-equal (spec
// §4.3: is_eq(a,b) = is_zero(a-b)). The returned *CNum is boolean-constrained
// and is wrapped by circuit/boolean.CBool at call sites that need the type.
func (n *CNum) IsEq(other *CNum) *CNum {
	return n.Sub(other).IsZero()
}

// Switch implements bit ? n : elseN = elseN + bit*(n - elseN) (spec §4.1/4.3).
func (n *CNum) Switch(bit *CNum, elseN *CNum) *CNum {
	return elseN.Add(bit.Mul(n.Sub(elseN)))
}

// Capacity reports whether n needs a variable slot (0 for a pure constant, 1
// otherwise); mirrors fawkes-crypto's CNum::capacity. Nothing in this module
// calls it; AssertEq and LinearizeBuilder do not consult it.
func (n *CNum) Capacity() int {
	if field.IsZero(n.a) {
		return 0
	}
	return 1
}

// Neg returns -n (spec §4.2).
func (n *CNum) Neg() *CNum {
	return &CNum{value: negVal(n), hasVal: n.hasVal, a: field.Neg(n.a), b: field.Neg(n.b), v: n.v, cs: n.cs}
}

func negVal(n *CNum) *field.Num {
	if !n.hasVal {
		return nil
	}
	v := field.Neg(*n.value)
	return &v
}

// Add returns n+other, folding constants and sharing a variable slot when
// both operands carry the same underlying var (spec §4.2 table).
func (n *CNum) Add(other *CNum) *CNum {
	if c, ok := n.AsConst(); ok {
		return addConstLC(other, c)
	}
	if c, ok := other.AsConst(); ok {
		return addConstLC(n, c)
	}
	if n.v == other.v {
		return &CNum{value: sumVal(n, other), hasVal: n.hasVal && other.hasVal,
			a: field.Add(n.a, other.a), b: field.Add(n.b, other.b), v: n.v, cs: n.cs}
	}
	w := Alloc(n.cs, sumVal(n, other))
	n.cs.EnforceAdd(n.lc(), other.lc(), w.lc())
	return w
}

func addConstLC(x *CNum, c field.Num) *CNum {
	return &CNum{value: shiftVal(x, c), hasVal: x.hasVal, a: x.a, b: field.Add(x.b, c), v: x.v, cs: x.cs}
}

func shiftVal(x *CNum, c field.Num) *field.Num {
	if !x.hasVal {
		return nil
	}
	v := field.Add(*x.value, c)
	return &v
}

func sumVal(a, b *CNum) *field.Num {
	if !a.hasVal || !b.hasVal {
		return nil
	}
	v := field.Add(*a.value, *b.value)
	return &v
}

// Sub returns n-other.
func (n *CNum) Sub(other *CNum) *CNum {
	return n.Add(other.Neg())
}

// AddConst returns n+c without touching the constraint system.
func (n *CNum) AddConst(c field.Num) *CNum {
	return n.Add(FromConst(n.cs, c))
}

// MulConst returns n*c, scaling the LC in place (spec §4.2 "Mul(const k)").
func (n *CNum) MulConst(c field.Num) *CNum {
	return &CNum{value: scaleVal(n, c), hasVal: n.hasVal, a: field.Mul(n.a, c), b: field.Mul(n.b, c), v: n.v, cs: n.cs}
}

func scaleVal(n *CNum, c field.Num) *field.Num {
	if !n.hasVal {
		return nil
	}
	v := field.Mul(*n.value, c)
	return &v
}

// Mul returns n*other, folding constants and otherwise allocating a fresh
// variable bound by a single bilinear constraint (spec §4.2 "Mul(signal)").
func (n *CNum) Mul(other *CNum) *CNum {
	if c, ok := n.AsConst(); ok {
		return other.MulConst(c)
	}
	if c, ok := other.AsConst(); ok {
		return n.MulConst(c)
	}
	w := Alloc(n.cs, prodVal(n, other))
	n.cs.EnforceMul(n.lc(), other.lc(), w.lc())
	return w
}

func prodVal(a, b *CNum) *field.Num {
	if !a.hasVal || !b.hasVal {
		return nil
	}
	v := field.Mul(*a.value, *b.value)
	return &v
}

// DivConst returns n/c, failing hard on c == 0 (spec §4.2 "Div(const k)").
func (n *CNum) DivConst(c field.Num) *CNum {
	inv, ok := field.CheckedInv(c)
	if !ok {
		panic("jubjub-zk/circuit/signal: division by the constant zero")
	}
	return n.MulConst(inv)
}

// Div returns n/other (spec §4.2 "Div(signal)"), asserting other is nonzero
// when it is not itself a constant.
func (n *CNum) Div(other *CNum) *CNum {
	if c, ok := n.AsConst(); ok {
		return other.Inv().MulConst(c)
	}
	if c, ok := other.AsConst(); ok {
		return n.DivConst(c)
	}
	other.AssertNonzero()
	return n.DivUnchecked(other)
}

// DivUnchecked returns n/other without asserting other != 0 (spec §4.2,
// §9 div_unchecked rationale): allocates w with witness n/other and emits
// w*other = n. Misuse yields an unsatisfiable system rather than a wrong
// answer, but costs one fewer constraint in contexts where the caller has
// already established other != 0 by other means.
func (n *CNum) DivUnchecked(other *CNum) *CNum {
	w := Alloc(n.cs, quotVal(n, other))
	n.cs.EnforceMul(w.lc(), other.lc(), n.lc())
	return w
}

func quotVal(a, b *CNum) *field.Num {
	if !a.hasVal || !b.hasVal {
		return nil
	}
	bv, ok := field.CheckedInv(*b.value)
	if !ok {
		return nil
	}
	v := field.Mul(*a.value, bv)
	return &v
}

// Inv returns n^-1 (spec §4.2 "inv"): constant fast path, else allocate w
// with witness n^-1 (or 1 when the witness is zero, so the witness stays
// defined while AssertNonzero's constraint rejects the zero case; no witness
// when n has none), assert n != 0, and emit n*w = 1.
func (n *CNum) Inv() *CNum {
	if c, ok := n.AsConst(); ok {
		inv, ok := field.CheckedInv(c)
		if !ok {
			panic("jubjub-zk/circuit/signal: division by zero")
		}
		return FromConst(n.cs, inv)
	}
	n.AssertNonzero()
	w := Alloc(n.cs, invWitness(n))
	n.cs.EnforceMul(n.lc(), w.lc(), FromConst(n.cs, field.One()).lc())
	return w
}

func invWitness(n *CNum) *field.Num {
	if !n.hasVal {
		return nil
	}
	v, ok := field.CheckedInv(*n.value)
	if !ok {
		one := field.One()
		return &one
	}
	return &v
}

// AssertNonzero enforces self != 0 (spec §4.2): constant fast path panics
// immediately on zero; otherwise emit self*w = 1 for a witness-computed w.
func (n *CNum) AssertNonzero() {
	if c, ok := n.AsConst(); ok {
		if field.IsZero(c) {
			panic("jubjub-zk/circuit/signal: asserted nonzero constant is zero")
		}
		return
	}
	w := Alloc(n.cs, invWitness(n))
	n.cs.EnforceMul(n.lc(), w.lc(), FromConst(n.cs, field.One()).lc())
}

// AssertBit emits self*(self-1) = 0 (spec §4.2/§4.3).
func (n *CNum) AssertBit() {
	one := FromConst(n.cs, field.One())
	n.cs.EnforceMul(n.lc(), n.Sub(one).lc(), FromConst(n.cs, field.Zero()).lc())
}

// AssertZero is shorthand for AssertConst(0).
func (n *CNum) AssertZero() {
	n.AssertConst(field.Zero())
}

// IsZero returns a bit signal equal to [n == 0] (spec §4.2/§4.3): allocate w
// with witness n != 0 ? n^-1 : 1, and a bit z with witness [n == 0]; emit
// n*w = 1-z and n*z = 0.
func (n *CNum) IsZero() *CNum {
	w := Alloc(n.cs, invWitness(n))
	z := Alloc(n.cs, isZeroWitness(n))
	one := FromConst(n.cs, field.One())
	n.cs.EnforceMul(n.lc(), w.lc(), one.Sub(z).lc())
	n.cs.EnforceMul(n.lc(), z.lc(), FromConst(n.cs, field.Zero()).lc())
	return z
}

func isZeroWitness(n *CNum) *field.Num {
	if !n.hasVal {
		return nil
	}
	var v field.Num
	if field.IsZero(*n.value) {
		v = field.One()
	}
	return &v
}

// String renders the witness value if present, else the LC shape, useful
// when debugging a circuit compiled without inputs.
func (n *CNum) String() string {
	if v, ok := n.GetValue(); ok {
		return fmt.Sprintf("CNum(%s)", v.String())
	}
	return fmt.Sprintf("CNum(lc=%s*v%d+%s)", n.a.String(), n.v, n.b.String())
}
