package cs

import "github.com/jubjub-zk/circuit/native/field"

// Assignment maps every allocated Var to its witness value. Var(One) need
// not be present; it is always treated as field.One().
type Assignment map[Var]field.Num

// eval evaluates a LinComb's a*var(v)+b under an assignment.
func eval(l LinComb, assignment Assignment) field.Num {
	if l.V == One {
		return l.B
	}
	v, ok := assignment[l.V]
	if !ok {
		panic("jubjub-zk/circuit/cs: no witness value for variable referenced by a constraint")
	}
	return field.Add(field.Mul(l.A, v), l.B)
}

// Solve checks every recorded constraint against assignment, in the style
// of gnark's test.Assert/CheckCircuit "is this R1CS satisfied by this
// witness" harness, scoped down to this module's own minimal CS. It returns
// the index of the first unsatisfied constraint, or -1 if all are satisfied.
func Solve(r *R1CS, assignment Assignment) (unsatisfiedAt int) {
	for i, c := range r.constraints {
		a := eval(c.A, assignment)
		b := eval(c.B, assignment)
		cc := eval(c.C, assignment)

		var lhs field.Num
		switch c.Kind {
		case KindLinear:
			lhs = field.Sub(field.Add(a, b), cc)
		case KindBilinear:
			lhs = field.Sub(field.Mul(a, b), cc)
		}
		if !field.IsZero(lhs) {
			return i
		}
	}
	return -1
}
