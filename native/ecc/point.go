package ecc

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/jubjub-zk/circuit/native/field"
)

// EdwardsPoint is a point on the twisted-Edwards curve
// y^2 - x^2 = 1 + d*x^2*y^2. The identity is (0, 1).
type EdwardsPoint struct {
	X, Y field.Num
}

// MontgomeryPoint is a point on B*y^2 = x^3 + A*x^2 + x. Birationally
// equivalent to EdwardsPoint except at the finite exceptional set
// {y=0, y=-1, x=0} (spec §3).
type MontgomeryPoint struct {
	X, Y field.Num
}

// EdwardsIdentity is the neutral element (0, 1).
func EdwardsIdentity() EdwardsPoint {
	return EdwardsPoint{X: field.Zero(), Y: field.One()}
}

// IsZero reports whether p is the Edwards identity.
func (p EdwardsPoint) IsZero() bool {
	return field.IsZero(p.X) && field.IsZero(field.Sub(p.Y, field.One()))
}

// Neg returns -p.
func (p EdwardsPoint) Neg() EdwardsPoint {
	return EdwardsPoint{X: field.Neg(p.X), Y: p.Y}
}

// Add returns p+q on the twisted-Edwards curve (spec §4.4).
func (p EdwardsPoint) Add(q EdwardsPoint, params JubJubParams) EdwardsPoint {
	d := params.EdwardsD()
	v1 := field.Mul(p.X, q.Y)
	v2 := field.Mul(q.X, p.Y)
	v12 := field.Mul(v1, v2)
	u := field.Mul(field.Add(p.X, p.Y), field.Add(q.X, q.Y))

	one := field.One()
	xNum := field.Add(v1, v2)
	xDen := field.Add(one, field.Mul(d, v12))
	yNum := field.Sub(field.Sub(u, v1), v2)
	yDen := field.Sub(one, field.Mul(d, v12))

	return EdwardsPoint{
		X: field.Mul(xNum, mustInv(xDen)),
		Y: field.Mul(yNum, mustInv(yDen)),
	}
}

// Double returns p+p, specialized per spec §4.4.
func (p EdwardsPoint) Double(params JubJubParams) EdwardsPoint {
	d := params.EdwardsD()
	v := field.Mul(p.X, p.Y)
	v2 := field.Square(v)
	u := field.Square(field.Add(p.X, p.Y))

	one := field.One()
	two := field.FromUint64(2)
	xNum := field.Mul(two, v)
	xDen := field.Add(one, field.Mul(d, v2))
	yNum := field.Sub(u, field.Mul(two, v))
	yDen := field.Sub(one, field.Mul(d, v2))

	return EdwardsPoint{
		X: field.Mul(xNum, mustInv(xDen)),
		Y: field.Mul(yNum, mustInv(yDen)),
	}
}

// MulByCofactor returns 8*p via three doublings.
func (p EdwardsPoint) MulByCofactor(params JubJubParams) EdwardsPoint {
	return p.Double(params).Double(params).Double(params)
}

// IsOnCurve reports whether p satisfies d*x^2*y^2 = y^2 - x^2 - 1.
func (p EdwardsPoint) IsOnCurve(params JubJubParams) bool {
	x2 := field.Square(p.X)
	y2 := field.Square(p.Y)
	lhs := field.Mul(params.EdwardsD(), field.Mul(x2, y2))
	rhs := field.Sub(field.Sub(y2, x2), field.One())
	return field.IsZero(field.Sub(lhs, rhs))
}

// Mul computes scalar*p by double-and-add over the subgroup scalar field,
// decomposed MSB-first via a bitset.BitSet (spec §4.4, "mul_by_scalar").
func (p EdwardsPoint) Mul(scalar field.Scalar, params JubJubParams) EdwardsPoint {
	bits := bitset.New(uint(scalar.BitLen()))
	for i := 0; i < scalar.BitLen(); i++ {
		if scalar.Bit(i) == 1 {
			bits.Set(uint(i))
		}
	}
	acc := EdwardsIdentity()
	for i := int(bits.Len()) - 1; i >= 0; i-- {
		acc = acc.Double(params)
		if bits.Test(uint(i)) {
			acc = acc.Add(p, params)
		}
	}
	return acc
}

// IntoMontgomery maps a non-identity subgroup point to its Montgomery form.
func (p EdwardsPoint) IntoMontgomery() MontgomeryPoint {
	one := field.One()
	x := field.Mul(field.Add(one, p.Y), mustInv(field.Sub(one, p.Y)))
	y := field.Mul(x, mustInv(p.X))
	return MontgomeryPoint{X: x, Y: y}
}

// IntoEdwards maps a nonzero Montgomery point back to Edwards form, with the
// [y=0] correction used at the singular point (0,0) -> Edwards (0,-1).
func (m MontgomeryPoint) IntoEdwards() EdwardsPoint {
	yIsZero := field.Zero()
	if field.IsZero(m.Y) {
		yIsZero = field.One()
	}
	x := field.Mul(m.X, mustInv(field.Add(m.Y, yIsZero)))
	y := field.Mul(field.Sub(m.X, field.One()), mustInv(field.Add(m.X, field.One())))
	return EdwardsPoint{X: x, Y: y}
}

// Add returns m+n on the Montgomery curve; assumes m != n (spec §4.6).
func (m MontgomeryPoint) Add(n MontgomeryPoint, params JubJubParams) MontgomeryPoint {
	lambda := field.Mul(field.Sub(n.Y, m.Y), mustInv(field.Sub(n.X, m.X)))
	return montgomeryFromLambda(m, n.X, lambda, params)
}

// Double returns m+m on the Montgomery curve; assumes m.Y != 0 (spec §4.6).
func (m MontgomeryPoint) Double(params JubJubParams) MontgomeryPoint {
	a := params.MontgomeryA()
	b := params.MontgomeryB()
	x2 := field.Square(m.X)
	three := field.FromUint64(3)
	two := field.FromUint64(2)
	num := field.Add(field.Add(field.Mul(three, x2), field.Mul(two, field.Mul(a, m.X))), field.One())
	den := field.Mul(two, field.Mul(b, m.Y))
	lambda := field.Mul(num, mustInv(den))
	return montgomeryFromLambda(m, m.X, lambda, params)
}

func montgomeryFromLambda(m MontgomeryPoint, otherX field.Num, lambda field.Num, params JubJubParams) MontgomeryPoint {
	a := params.MontgomeryA()
	b := params.MontgomeryB()
	bl2 := field.Mul(b, field.Square(lambda))
	two := field.FromUint64(2)
	x := field.Sub(field.Sub(field.Sub(bl2, a), m.X), otherX)
	y := field.Sub(field.Mul(lambda, field.Sub(field.Add(field.Mul(two, m.X), field.Add(otherX, a)), bl2)), m.Y)
	return MontgomeryPoint{X: x, Y: y}
}

// SubgroupDecompress recovers y from x for a point known to lie in the
// prime-order subgroup, choosing the valid root. Returns ok=false if x does
// not correspond to any curve point.
func SubgroupDecompress(x field.Num, params JubJubParams) (EdwardsPoint, bool) {
	// y^2 = (1 + x^2) / (1 - d*x^2), from y^2 - x^2 = 1 + d*x^2*y^2
	x2 := field.Square(x)
	num := field.Add(field.One(), x2)
	den := field.Sub(field.One(), field.Mul(params.EdwardsD(), x2))
	invDen, ok := field.CheckedInv(den)
	if !ok {
		return EdwardsPoint{}, false
	}
	y2 := field.Mul(num, invDen)
	y, ok := field.Sqrt(y2)
	if !ok {
		return EdwardsPoint{}, false
	}
	// Of (x, y) and (x, -y) at most one lies in the prime-order subgroup:
	// keep the root for which 8 * (8^-1 * p) gives p back.
	p := EdwardsPoint{X: x, Y: y}
	inv8, _ := field.ScalarFromUint64(8).Inverse()
	if p.Mul(inv8, params).MulByCofactor(params) != p {
		p.Y = field.Neg(y)
	}
	return p, true
}
