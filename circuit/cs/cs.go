// Package cs defines the ConstraintSystem contract consumed throughout this
// module (spec §6) and a reference in-memory implementation of it, in the
// style of gnark's own frontend.ConstraintSystem / compiled.ConstraintSystem
// split: a small recorder of variables and rank-1 constraints, with variable
// and constraint indices assigned strictly in call order (spec §5, "bit-for-
// bit determinism is a required property").
package cs

import (
	"fmt"

	"github.com/jubjub-zk/circuit/internal/metrics"
	"github.com/jubjub-zk/circuit/native/field"
)

// Var is an opaque, monotonically increasing variable index. Var(0) is
// reserved for the constant 1 (spec §3).
type Var int

// One is the distinguished handle for the constant 1.
const One Var = 0

// LinComb is the wire-level shape of a CNum's lc triple: a*var(v) + b.
// ConstraintSystem operations only ever see this flattened triple, never a
// CNum — that separation is what keeps the CS contract "small" per spec §6.
type LinComb struct {
	A field.Num
	V Var
	B field.Num
}

// Const builds the LinComb for a pure constant b (a == 0, v irrelevant).
func Const(b field.Num) LinComb {
	return LinComb{A: field.Zero(), V: One, B: b}
}

// OfVar builds the LinComb a*var(v)+b.
func OfVar(a field.Num, v Var, b field.Num) LinComb {
	return LinComb{A: a, V: v, B: b}
}

// R1C is one rank-1 constraint: linear or bilinear, as Kind records.
type R1C struct {
	A, B, C LinComb
	Kind    ConstraintKind
}

// ConstraintKind distinguishes the two constraint families of spec §6.
type ConstraintKind uint8

const (
	// KindLinear records lc(A) + lc(B) - lc(C) = 0 (enforce_add).
	KindLinear ConstraintKind = iota
	// KindBilinear records lc(A) * lc(B) - lc(C) = 0 (enforce_mul).
	KindBilinear
)

// ConstraintSystem is the small external contract this module is built
// against (spec §6): variable allocation, the two rank-1 constraint
// families, and public-input pinning. CNum and every signal built on top of
// it holds a handle to one of these and never reaches into its internals.
type ConstraintSystem interface {
	// AllocVariable returns a fresh Var with a strictly increasing index.
	AllocVariable() Var
	// EnforceAdd emits lc(a) + lc(b) - lc(c) = 0.
	EnforceAdd(a, b, c LinComb)
	// EnforceMul emits lc(a) * lc(b) - lc(c) = 0.
	EnforceMul(a, b, c LinComb)
	// EnforcePub declares x as a public input.
	EnforcePub(x LinComb)
	// NbVariables reports how many variables have been allocated (including Var(0)).
	NbVariables() int
	// Constraints returns the recorded constraint list, in emission order.
	Constraints() []R1C
	// PublicIndices returns the Var indices pinned via EnforcePub, in emission order.
	PublicIndices() []Var
}

// R1CS is the reference ConstraintSystem implementation: an in-memory
// recorder with no backend attached, in the spirit of gnark's frontend
// compiler before it lowers to a prover-specific representation
// (Evanesco-Labs frontend/cs_api.go: a bare struct plus append-only slices,
// no interior synchronization because circuit construction is single-
// threaded per spec §5).
type R1CS struct {
	nbVariables int
	constraints []R1C
	public      []Var
}

// New returns an R1CS with Var(0) already allocated for the constant 1.
func New() *R1CS {
	return &R1CS{nbVariables: 1}
}

func (r *R1CS) AllocVariable() Var {
	v := Var(r.nbVariables)
	r.nbVariables++
	return v
}

func (r *R1CS) EnforceAdd(a, b, c LinComb) {
	r.constraints = append(r.constraints, R1C{A: a, B: b, C: c, Kind: KindLinear})
	metrics.Observe("enforce_add", 1)
}

func (r *R1CS) EnforceMul(a, b, c LinComb) {
	r.constraints = append(r.constraints, R1C{A: a, B: b, C: c, Kind: KindBilinear})
	metrics.Observe("enforce_mul", 1)
}

func (r *R1CS) EnforcePub(x LinComb) {
	if x.V >= Var(r.nbVariables) {
		panic(fmt.Sprintf("jubjub-zk/circuit/cs: enforce_pub references unallocated variable %d", x.V))
	}
	r.public = append(r.public, x.V)
}

func (r *R1CS) NbVariables() int { return r.nbVariables }

func (r *R1CS) Constraints() []R1C {
	out := make([]R1C, len(r.constraints))
	copy(out, r.constraints)
	return out
}

func (r *R1CS) PublicIndices() []Var {
	out := make([]Var, len(r.public))
	copy(out, r.public)
	return out
}
