package modelutil

import "github.com/cargostow/loadplan/pkg/solver"

// Candidate is one of the K linear expressions MaxOf chooses among.
type Candidate struct {
	Expr     solver.Expr
	Lo, Hi   float64 // bounds on the expression's value, used as the big-M
}

// MaxOf introduces a variable equal to the maximum of K candidate linear
// expressions and returns its index, using the "max of K linear
// expressions via K indicator constraints plus one selector" pattern —
// exactly one selector boolean is forced true, the max variable is always
// >= every candidate, and it is <= the selected candidate (so it equals
// it), with the inequality relaxed by big-M for unselected candidates.
// PMB's surface-contact term is the concrete use: axisOverlap builds the
// max of two left edges, the max of two negated right edges, and the
// overlap clipped at zero with it.
func MaxOf(m *solver.Model, name string, candidates []Candidate) int {
	lo, hi := candidates[0].Lo, candidates[0].Hi
	for _, c := range candidates[1:] {
		if c.Lo < lo {
			lo = c.Lo
		}
		if c.Hi > hi {
			hi = c.Hi
		}
	}
	maxVar := m.NewIntVar(name, int64(lo), int64(hi))

	selectors := make([]int, len(candidates))
	oneOf := solver.Expr{}
	for i, cand := range candidates {
		sel := m.NewBoolVar(nameIndexed(name, "sel", i))
		selectors[i] = sel
		oneOf = oneOf.Add(sel, 1)

		// maxVar >= candidate, unconditionally.
		ge := append(solver.Expr{}, cand.Expr...)
		ge = ge.Add(maxVar, -1)
		m.AddConstraint(nameIndexed(name, "ge", i), ge, solver.LE, 0)

		// sel = 1 => maxVar <= candidate.
		bigM := hi - cand.Lo
		le := solver.Expr{}.Add(maxVar, 1)
		le = append(le, negate(cand.Expr)...)
		ImpliesLE(m, nameIndexed(name, "le", i), le, 0, bigM, sel)
	}
	m.AddConstraint(name+"_onehot", oneOf, solver.EQ, 1)
	return maxVar
}

func negate(e solver.Expr) solver.Expr {
	out := make(solver.Expr, len(e))
	for i, t := range e {
		out[i] = solver.Term{Var: t.Var, Coeff: -t.Coeff}
	}
	return out
}
