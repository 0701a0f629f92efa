// Package modelutil holds the reusable half-reification, product, maximum,
// and symmetry-breaking constructors that spec.md's Assignment and
// Placement Model Builders compile down to solver.Model constraints. This
// is the "model-utility (variable creation, symmetry, soft-term
// generators)" component called out in spec.md's implementation budget —
// AMB and PMB never hand-roll a big-M encoding themselves, they call here.
package modelutil

import "github.com/cargostow/loadplan/pkg/solver"

// ImpliesLE asserts "indicator = 1 => sum(expr) <= rhs" via the standard
// big-M relaxation sum(expr) <= rhs + bigM*(1-indicator). bigM must be at
// least as large as the maximum possible slack between sum(expr) and rhs
// over the variables' declared bounds, or the relaxation is unsound.
func ImpliesLE(m *solver.Model, name string, expr solver.Expr, rhs, bigM float64, indicator int) {
	terms := append(solver.Expr{}, expr...)
	terms = terms.Add(indicator, bigM)
	m.AddConstraint(name, terms, solver.LE, rhs+bigM)
}

// ImpliesGE asserts "indicator = 1 => sum(expr) >= rhs" via the mirrored
// big-M relaxation sum(expr) >= rhs - bigM*(1-indicator).
func ImpliesGE(m *solver.Model, name string, expr solver.Expr, rhs, bigM float64, indicator int) {
	terms := append(solver.Expr{}, expr...)
	terms = terms.Add(indicator, -bigM)
	m.AddConstraint(name, terms, solver.GE, rhs-bigM)
}

// ImpliesEQ asserts "indicator = 1 => sum(expr) = rhs" by combining both
// halves — this is the half-reified implication spec.md calls for
// wherever an orientation or symmetry-breaking choice fixes a variable's
// value only when some boolean selector is active.
func ImpliesEQ(m *solver.Model, name string, expr solver.Expr, rhs, bigM float64, indicator int) {
	ImpliesLE(m, name+"_le", expr, rhs, bigM, indicator)
	ImpliesGE(m, name+"_ge", expr, rhs, bigM, indicator)
}

// EqualsConstantWhen asserts "indicator = 1 => var = constant", the exact
// shape PMB uses to fix l_eff[i]/w_eff[i]/h_eff[i] to one of a box's
// orientation permutations.
func EqualsConstantWhen(m *solver.Model, name string, v int, constant, bigM float64, indicator int) {
	ImpliesEQ(m, name, solver.Expr{}.Add(v, 1), constant, bigM, indicator)
}

// EqualsVarWhen asserts "indicator = 1 => lhs = rhs" between two
// variables, used by the lexicographic symmetry-breaking constructor to
// require equal coordinates before comparing the next axis.
func EqualsVarWhen(m *solver.Model, name string, lhs, rhs int, bigM float64, indicator int) {
	expr := solver.Expr{}.Add(lhs, 1).Add(rhs, -1)
	ImpliesEQ(m, name, expr, 0, bigM, indicator)
}

// LessEqualVarWhen asserts "indicator = 1 => lhs <= rhs".
func LessEqualVarWhen(m *solver.Model, name string, lhs, rhs int, bigM float64, indicator int) {
	expr := solver.Expr{}.Add(lhs, 1).Add(rhs, -1)
	ImpliesLE(m, name, expr, 0, bigM, indicator)
}

// StrictLessVarWhen asserts "indicator = 1 => lhs + 1 <= rhs" (strict
// order over integers).
func StrictLessVarWhen(m *solver.Model, name string, lhs, rhs int, bigM float64, indicator int) {
	expr := solver.Expr{}.Add(lhs, 1).Add(rhs, -1)
	ImpliesLE(m, name, expr, -1, bigM, indicator)
}
