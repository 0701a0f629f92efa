package modelutil

import "github.com/cargostow/loadplan/pkg/solver"

// Coord3 is a box's position as three solver variable indices.
type Coord3 struct {
	X, Y, Z int
}

// SimpleAxisOrder breaks symmetry within a group of interchangeable boxes
// by ordering their position along one axis: axisVar[k] <= axisVar[k+1]
// for each consecutive pair. This is the "simple" symmetry mode.
func SimpleAxisOrder(m *solver.Model, groupName string, axisVars []int) {
	for k := 0; k+1 < len(axisVars); k++ {
		expr := solver.Expr{}.Add(axisVars[k], 1).Add(axisVars[k+1], -1)
		m.AddConstraint(nameIndexed(groupName, "axisorder", k), expr, solver.LE, 0)
	}
}

// LexicographicOrder breaks symmetry within a group of interchangeable
// boxes by requiring each consecutive pair's positions to be
// lexicographically ordered: (x_k,y_k,z_k) <=_lex (x_{k+1},y_{k+1},z_{k+1}).
// This is the "full" symmetry mode, encoded as a chained-OR of three
// disjuncts (x strictly less; x equal and y strictly less; x and y equal
// and z less-or-equal), each reified by its own selector boolean with at
// least one forced true, per spec.md's own description of the encoding.
// bigM must bound the largest coordinate difference any axis can take.
func LexicographicOrder(m *solver.Model, groupName string, coords []Coord3, bigM float64) {
	for k := 0; k+1 < len(coords); k++ {
		a, b := coords[k], coords[k+1]
		prefix := nameIndexed(groupName, "lex", k)

		xLess := m.NewBoolVar(prefix + "_xless")
		xEqYLess := m.NewBoolVar(prefix + "_xeq_yless")
		xEqYEqZLE := m.NewBoolVar(prefix + "_xeq_yeq_zle")

		m.AddConstraint(prefix+"_onehot",
			solver.Expr{}.Add(xLess, 1).Add(xEqYLess, 1).Add(xEqYEqZLE, 1), solver.GE, 1)

		StrictLessVarWhen(m, prefix+"_d1", a.X, b.X, bigM, xLess)

		EqualsVarWhen(m, prefix+"_d2eq", a.X, b.X, bigM, xEqYLess)
		StrictLessVarWhen(m, prefix+"_d2lt", a.Y, b.Y, bigM, xEqYLess)

		EqualsVarWhen(m, prefix+"_d3eqx", a.X, b.X, bigM, xEqYEqZLE)
		EqualsVarWhen(m, prefix+"_d3eqy", a.Y, b.Y, bigM, xEqYEqZLE)
		LessEqualVarWhen(m, prefix+"_d3le", a.Z, b.Z, bigM, xEqYEqZLE)
	}
}
