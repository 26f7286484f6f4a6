// Package ecc implements the in-circuit twisted-Edwards / Montgomery curve
// arithmetic (spec §4.5-§4.7): CEdwardsPoint and CMontgomeryPoint, pairs of
// CNum with doubling, addition, cofactor multiplication, curve/subgroup
// assertions, subgroup decompression, the two scalar-multiplication regimes,
// and the in-circuit Elligator-style from_scalar. Grounded directly on
// fawkes-crypto's circuit/ecc.rs, translated from Rust's operator-overload
// idiom to Go's explicit-method style the way the rest of this module's
// circuit layer is written.
package ecc

import (
	"math/big"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jubjub-zk/circuit/circuit/bitify"
	"github.com/jubjub-zk/circuit/circuit/boolean"
	"github.com/jubjub-zk/circuit/circuit/cs"
	"github.com/jubjub-zk/circuit/circuit/mux"
	"github.com/jubjub-zk/circuit/circuit/signal"
	"github.com/jubjub-zk/circuit/internal/zklog"
	"github.com/jubjub-zk/circuit/native/field"
	native "github.com/jubjub-zk/circuit/native/ecc"
)

// CEdwardsPoint is a pair of field signals (x, y) meant to lie on the
// twisted-Edwards curve; that invariant is never implicit and must be
// established by AssertInCurve / AssertInSubgroup (spec §3).
type CEdwardsPoint struct {
	X, Y *signal.CNum
}

// CMontgomeryPoint is a pair of field signals (x, y) on the birationally
// equivalent Montgomery curve.
type CMontgomeryPoint struct {
	X, Y *signal.CNum
}

// AllocEdwards allocates a fresh point, with an optional native witness.
func AllocEdwards(system cs.ConstraintSystem, value *native.EdwardsPoint) CEdwardsPoint {
	if value == nil {
		return CEdwardsPoint{X: signal.Alloc(system, nil), Y: signal.Alloc(system, nil)}
	}
	return CEdwardsPoint{X: signal.Alloc(system, &value.X), Y: signal.Alloc(system, &value.Y)}
}

// FromConstEdwards builds a compile-time-constant point.
func FromConstEdwards(system cs.ConstraintSystem, value native.EdwardsPoint) CEdwardsPoint {
	return CEdwardsPoint{X: signal.FromConst(system, value.X), Y: signal.FromConst(system, value.Y)}
}

// FromConstMontgomery builds a compile-time-constant Montgomery point.
func FromConstMontgomery(system cs.ConstraintSystem, value native.MontgomeryPoint) CMontgomeryPoint {
	return CMontgomeryPoint{X: signal.FromConst(system, value.X), Y: signal.FromConst(system, value.Y)}
}

// GetValue returns the native witness point, if both coordinates have one.
func (p CEdwardsPoint) GetValue() (native.EdwardsPoint, bool) {
	x, xok := p.X.GetValue()
	y, yok := p.Y.GetValue()
	if !xok || !yok {
		return native.EdwardsPoint{}, false
	}
	return native.EdwardsPoint{X: x, Y: y}, true
}

// AsConst returns the native point iff both coordinates are compile-time constants.
func (p CEdwardsPoint) AsConst() (native.EdwardsPoint, bool) {
	x, xok := p.X.AsConst()
	y, yok := p.Y.AsConst()
	if !xok || !yok {
		return native.EdwardsPoint{}, false
	}
	return native.EdwardsPoint{X: x, Y: y}, true
}

// Inputize pins both coordinates as public inputs.
func (p CEdwardsPoint) Inputize() {
	p.X.Inputize()
	p.Y.Inputize()
}

// AssertEq emits equality constraints on both coordinates.
func (p CEdwardsPoint) AssertEq(other CEdwardsPoint) {
	p.X.AssertEq(other.X)
	p.Y.AssertEq(other.Y)
}

// Switch implements bit ? p : elseP componentwise.
func (p CEdwardsPoint) Switch(bit boolean.CBool, elseP CEdwardsPoint) CEdwardsPoint {
	return CEdwardsPoint{X: p.X.Switch(bit.ToNum(), elseP.X), Y: p.Y.Switch(bit.ToNum(), elseP.Y)}
}

// Double returns p+p via the specialized Edwards doubling formulas, using
// div_unchecked because the denominators 1 +- d*v^2 never vanish on a curve
// point when d is a non-square (spec §4.5, §9).
func (p CEdwardsPoint) Double(params native.JubJubParams) CEdwardsPoint {
	d := signal.FromConst(p.X.GetCS(), params.EdwardsD())
	one := signal.FromConst(p.X.GetCS(), field.One())
	two := signal.FromConst(p.X.GetCS(), field.FromUint64(2))

	v := p.X.Mul(p.Y)
	v2 := v.Mul(v)
	u := p.X.Add(p.Y).Mul(p.X.Add(p.Y))

	x := v.Mul(two).DivUnchecked(one.Add(d.Mul(v2)))
	y := u.Sub(v.Mul(two)).DivUnchecked(one.Sub(d.Mul(v2)))
	return CEdwardsPoint{X: x, Y: y}
}

// MulByCofactor returns 8*p via three chained doublings.
func (p CEdwardsPoint) MulByCofactor(params native.JubJubParams) CEdwardsPoint {
	return p.Double(params).Double(params).Double(params)
}

// Add returns p+other via the general Edwards addition law (spec §4.5).
func (p CEdwardsPoint) Add(other CEdwardsPoint, params native.JubJubParams) CEdwardsPoint {
	d := signal.FromConst(p.X.GetCS(), params.EdwardsD())
	one := signal.FromConst(p.X.GetCS(), field.One())

	v1 := p.X.Mul(other.Y)
	v2 := other.X.Mul(p.Y)
	v12 := v1.Mul(v2)
	u := p.X.Add(p.Y).Mul(other.X.Add(other.Y))

	x := v1.Add(v2).DivUnchecked(one.Add(d.Mul(v12)))
	y := u.Sub(v1).Sub(v2).DivUnchecked(one.Sub(d.Mul(v12)))
	return CEdwardsPoint{X: x, Y: y}
}

// AssertInCurve asserts d*x^2*y^2 = y^2 - x^2 - 1 as a single bilinear
// constraint built from x^2, y^2 (spec §4.5).
func (p CEdwardsPoint) AssertInCurve(params native.JubJubParams) {
	d := signal.FromConst(p.X.GetCS(), params.EdwardsD())
	one := signal.FromConst(p.X.GetCS(), field.One())
	x2 := p.X.Mul(p.X)
	y2 := p.Y.Mul(p.Y)
	d.Mul(x2).Mul(y2).AssertEq(y2.Sub(x2).Sub(one))
}

// AssertInSubgroup proves p lies in the prime-order subgroup (spec §4.5): it
// witness-computes a preimage p' = p * 8^-1 (scalar inverse in Fs), allocates
// it, asserts it on-curve, computes 8*p' in circuit, and asserts equality
// with p.
func (p CEdwardsPoint) AssertInSubgroup(params native.JubJubParams) {
	preimage := AllocEdwards(p.X.GetCS(), preimageOf(p, params))
	preimage.AssertInCurve(params)
	preimage8 := preimage.MulByCofactor(params)
	preimage8.X.Sub(p.X).AssertZero()
	preimage8.Y.Sub(p.Y).AssertZero()
}

func preimageOf(p CEdwardsPoint, params native.JubJubParams) *native.EdwardsPoint {
	v, ok := p.GetValue()
	if !ok {
		return nil
	}
	inv8, _ := field.ScalarFromUint64(8).Inverse()
	pre := v.Mul(inv8, params)
	return &pre
}

// SubgroupDecompress is the static in-circuit constructor of spec §4.5: it
// witness-computes 8^-1 * decompress(x) (or the generator if native
// decompression fails — the equality constraint below then rejects any
// invalid input), allocates the preimage, asserts it on-curve, computes 8*
// preimage, and asserts its x-coordinate equals the input.
func SubgroupDecompress(x *signal.CNum, params native.JubJubParams) CEdwardsPoint {
	preimage := AllocEdwards(x.GetCS(), decompressPreimage(x, params))
	preimage.AssertInCurve(params)
	preimage8 := preimage.MulByCofactor(params)
	x.Sub(preimage8.X).AssertZero()
	return preimage8
}

func decompressPreimage(x *signal.CNum, params native.JubJubParams) *native.EdwardsPoint {
	xv, ok := x.GetValue()
	if !ok {
		return nil
	}
	decompressed, ok := native.SubgroupDecompress(xv, params)
	if !ok {
		decompressed = params.EdwardsG()
	}
	inv8, _ := field.ScalarFromUint64(8).Inverse()
	pre := decompressed.Mul(inv8, params)
	return &pre
}

// IntoMontgomery maps a non-identity subgroup point to Montgomery form
// (spec §4.5): assumes self != identity.
func (p CEdwardsPoint) IntoMontgomery() CMontgomeryPoint {
	one := signal.FromConst(p.X.GetCS(), field.One())
	x := one.Add(p.Y).DivUnchecked(one.Sub(p.Y))
	y := x.DivUnchecked(p.X)
	return CMontgomeryPoint{X: x, Y: y}
}

// Double returns m+m on the Montgomery curve (spec §4.6). Precondition: m.Y != 0.
func (m CMontgomeryPoint) Double(params native.JubJubParams) CMontgomeryPoint {
	a := signal.FromConst(m.X.GetCS(), params.MontgomeryA())
	b := signal.FromConst(m.X.GetCS(), params.MontgomeryB())
	two := signal.FromConst(m.X.GetCS(), field.FromUint64(2))
	three := signal.FromConst(m.X.GetCS(), field.FromUint64(3))
	one := signal.FromConst(m.X.GetCS(), field.One())

	x2 := m.X.Mul(m.X)
	num := three.Mul(x2).Add(two.Mul(a).Mul(m.X)).Add(one)
	den := two.Mul(b).Mul(m.Y)
	l := num.DivUnchecked(den)
	bl2 := b.Mul(l.Mul(l))

	x := bl2.Sub(a).Sub(two.Mul(m.X))
	y := l.Mul(three.Mul(m.X).Add(a).Sub(bl2)).Sub(m.Y)
	return CMontgomeryPoint{X: x, Y: y}
}

// Add returns m+other on the Montgomery curve (spec §4.6). Precondition: m.X != other.X.
func (m CMontgomeryPoint) Add(other CMontgomeryPoint, params native.JubJubParams) CMontgomeryPoint {
	a := signal.FromConst(m.X.GetCS(), params.MontgomeryA())
	b := signal.FromConst(m.X.GetCS(), params.MontgomeryB())
	two := signal.FromConst(m.X.GetCS(), field.FromUint64(2))

	l := other.Y.Sub(m.Y).DivUnchecked(other.X.Sub(m.X))
	bl2 := b.Mul(l.Mul(l))

	x := bl2.Sub(a).Sub(m.X).Sub(other.X)
	y := l.Mul(two.Mul(m.X).Add(other.X).Add(a).Sub(bl2)).Sub(m.Y)
	return CMontgomeryPoint{X: x, Y: y}
}

// Switch implements bit ? m : elseM componentwise.
func (m CMontgomeryPoint) Switch(bit boolean.CBool, elseM CMontgomeryPoint) CMontgomeryPoint {
	return CMontgomeryPoint{X: m.X.Switch(bit.ToNum(), elseM.X), Y: m.Y.Switch(bit.ToNum(), elseM.Y)}
}

// IntoEdwards maps a Montgomery point back to Edwards form (spec §4.6),
// adding the [y=0] indicator to the denominator to avoid literal division by
// zero in the witness at the (0,0) singular/sentinel point, which maps to the
// order-2 Edwards point (0,-1); the final coordinate negation in Mul then
// turns that into the Edwards identity (0,1) (spec §4.7, §9).
func (m CMontgomeryPoint) IntoEdwards() CEdwardsPoint {
	one := signal.FromConst(m.X.GetCS(), field.One())
	yIsZero := m.Y.IsZero()
	x := m.X.DivUnchecked(m.Y.Add(yIsZero))
	y := m.X.Sub(one).DivUnchecked(m.X.Add(one))
	return CEdwardsPoint{X: x, Y: y}
}

// Mul computes scalar*p (spec §4.7), dispatching on whether p is a compile-
// time constant: a fixed-base windowed multiplication if so, else a
// variable-base Montgomery ladder. bits is little-endian.
func (p CEdwardsPoint) Mul(bits []boolean.CBool, params native.JubJubParams) CEdwardsPoint {
	if base, ok := p.AsConst(); ok {
		return mulConstBase(p.X.GetCS(), base, bits, params)
	}
	return mulVariableBase(p, bits, params)
}

func mulConstBase(system cs.ConstraintSystem, base native.EdwardsPoint, bits []boolean.CBool, params native.JubJubParams) CEdwardsPoint {
	if base.IsZero() {
		return FromConstEdwards(system, native.EdwardsIdentity())
	}

	zerosLen := (2 * len(bits)) % 3
	allBits := make([]boolean.CBool, len(bits), len(bits)+zerosLen)
	copy(allBits, bits)
	for i := 0; i < zerosLen; i++ {
		allBits = append(allBits, boolean.CFalse(system))
	}
	nwindows := len(allBits) / 3

	offset := native.EdwardsPoint{X: field.Zero(), Y: field.Neg(field.One())}
	walker := base
	for i := 0; i < nwindows; i++ {
		offset = offset.Add(walker, params)
		walker = walker.MulByCofactor(params)
	}
	mp := offset.Neg().IntoMontgomery()

	acc := FromConstMontgomery(system, mp)
	walker = base
	for i := 0; i < nwindows; i++ {
		xs, ys := windowTable(system, walker, params)
		row := allBits[3*i : 3*i+3]
		var window [3]boolean.CBool
		copy(window[:], row)
		x := mux.CMux3(window, xs)
		y := mux.CMux3(window, ys)
		acc = acc.Add(CMontgomeryPoint{X: x, Y: y}, params)
		walker = walker.MulByCofactor(params)
	}

	res := acc.IntoEdwards()
	return CEdwardsPoint{X: res.X.Neg(), Y: res.Y.Neg()}
}

// windowTableCacheKey identifies one (base, params) pair for the process-
// wide window-table cache below. params is a singleton per curve (see
// NewBN254Params), so interface-value equality is a valid identity check.
type windowTableCacheKey struct {
	params native.JubJubParams
	x, y   field.Num
}

var (
	windowTableCache sync.Map // windowTableCacheKey -> [8]native.MontgomeryPoint
	windowTableGroup singleflight.Group
)

// windowTableRows computes the 8 native Montgomery rows for base, memoizing
// the result process-wide and collapsing concurrent circuit compiles that
// share the same constant base onto a single computation (mirrors the
// teacher corpus's use of golang.org/x/sync/singleflight to dedupe
// concurrent identical work).
func windowTableRows(base native.EdwardsPoint, params native.JubJubParams) [8]native.MontgomeryPoint {
	key := windowTableCacheKey{params: params, x: base.X, y: base.Y}
	k := keyString(key)
	if v, ok := windowTableCache.Load(key); ok {
		zklog.Logger().Debug().Str("base", k).Msg("window table cache hit")
		return v.([8]native.MontgomeryPoint)
	}

	v, _, shared := windowTableGroup.Do(k, func() (interface{}, error) {
		if cached, ok := windowTableCache.Load(key); ok {
			return cached, nil
		}
		zklog.Logger().Debug().Str("base", k).Msg("window table cache miss, computing")
		var rows [8]native.MontgomeryPoint
		q := base
		for i := 0; i < 8; i++ {
			rows[i] = q.IntoMontgomery()
			q = q.Add(base, params)
		}
		windowTableCache.Store(key, rows)
		return rows, nil
	})
	if shared {
		zklog.Logger().Debug().Str("base", k).Msg("window table computation shared with an in-flight caller")
	}
	return v.([8]native.MontgomeryPoint)
}

func keyString(k windowTableCacheKey) string {
	var xi, yi big.Int
	k.x.BigInt(&xi)
	k.y.BigInt(&yi)
	return xi.String() + "|" + yi.String()
}

// windowTable builds the 8-row lookup table (base, 2*base, ..., 8*base) in
// Montgomery coordinates, as compile-time constants (spec §4.7 step 4); the
// caller passes base already scaled by 8^i for window i.
func windowTable(system cs.ConstraintSystem, base native.EdwardsPoint, params native.JubJubParams) (xs, ys [8]*signal.CNum) {
	rows := windowTableRows(base, params)
	for i, m := range rows {
		xs[i] = signal.FromConst(system, m.X)
		ys[i] = signal.FromConst(system, m.Y)
	}
	return
}

func mulVariableBase(p CEdwardsPoint, bits []boolean.CBool, params native.JubJubParams) CEdwardsPoint {
	system := p.X.GetCS()
	baseIsZero := boolean.NewUnchecked(p.X.IsZero())
	dummy := FromConstEdwards(system, params.EdwardsG())
	basePoint := dummy.Switch(baseIsZero, p)

	baseM := basePoint.IntoMontgomery()
	exponents := make([]CMontgomeryPoint, len(bits))
	exponents[0] = baseM
	for i := 1; i < len(bits); i++ {
		baseM = baseM.Double(params)
		exponents[i] = baseM
	}

	zero := signal.FromConst(system, field.Zero())
	emptyAcc := CMontgomeryPoint{X: zero, Y: zero}
	acc := emptyAcc
	for i := range bits {
		incAcc := acc.Add(exponents[i], params)
		acc = incAcc.Switch(bits[i], acc)
	}
	acc = emptyAcc.Switch(baseIsZero, acc)

	res := acc.IntoEdwards()
	return CEdwardsPoint{X: res.X.Neg(), Y: res.Y.Neg()}
}

// FromScalar implements the in-circuit Elligator-2-like encoding (spec
// §4.4/§4.5): given t assumed != -1, produces a point in the prime-order
// subgroup, asserting the required "exactly one residue branch" invariant
// via an XOR of the two residue indicators.
func FromScalar(t *signal.CNum, params native.JubJubParams) CEdwardsPoint {
	system := t.GetCS()
	a := signal.FromConst(system, params.MontgomeryA())
	b := signal.FromConst(system, params.MontgomeryB())
	u := signal.FromConst(system, params.MontgomeryU())
	one := signal.FromConst(system, field.One())

	t1 := t.Add(one)
	t2g1 := t1.Mul(t1).Mul(u)

	negInvA := signal.FromConst(system, field.Neg(mustInv(params.MontgomeryA())))
	x3 := negInvA.Mul(t2g1.Add(one))
	x2 := x3.DivUnchecked(t2g1)

	isValid, y2 := checkAndGetY(x2, a, b, u, system)
	_, y3 := checkAndGetY(x3, a, b, u, system)

	x := x2.Switch(isValid.ToNum(), x3)
	y := y2.Switch(isValid.ToNum(), y3)

	return CMontgomeryPoint{X: x, Y: y}.IntoEdwards().MulByCofactor(params)
}

func checkAndGetY(x, a, b, u *signal.CNum, system cs.ConstraintSystem) (boolean.CBool, *signal.CNum) {
	g := x.Mul(x).Mul(x.Add(a)).Add(x).Div(b)

	preimage := signal.Alloc(system, checkAndGetYWitness(g, u))
	nbBits := field.Modulus().BitLen()
	preimageBits := bitify.CIntoBitsLEStrict(preimage, nbBits)
	preimageBits[0].AssertFalse()

	preimageSquare := preimage.Mul(preimage)
	isSquare := boolean.NewUnchecked(g.Sub(preimageSquare).IsZero())
	isNotSquare := boolean.NewUnchecked(g.Mul(u).Sub(preimageSquare).IsZero())
	isSquare.Xor(isNotSquare).AssertTrue()

	return isSquare, preimage
}

func checkAndGetYWitness(g, u *signal.CNum) *field.Num {
	gv, ok := g.GetValue()
	if !ok {
		return nil
	}
	if root, ok := field.Sqrt(gv); ok {
		return evenRoot(root)
	}
	uv, _ := u.GetValue()
	root, ok := field.Sqrt(field.Mul(gv, uv))
	if !ok {
		panic("jubjub-zk/circuit/ecc: from_scalar invariant violated, neither residue branch is square")
	}
	return evenRoot(root)
}

func evenRoot(root field.Num) *field.Num {
	if !field.IsEven(root) {
		root = field.Neg(root)
	}
	return &root
}

func mustInv(a field.Num) field.Num {
	r, ok := field.CheckedInv(a)
	if !ok {
		panic("jubjub-zk/circuit/ecc: division by zero constant")
	}
	return r
}
