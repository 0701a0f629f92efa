// Package solver is the Solver Driver collaborator of spec.md §4.3: a
// small model-building API (this file), a Status tagged sum, and a
// from-scratch branch-and-bound MILP engine (branchbound.go) that backs
// Driver.Solve. AMB (pkg/assignment) and PMB (pkg/placement) are the only
// callers that build Models; nothing in this package knows about boxes or
// containers.
package solver

// Relation is the comparison a Constraint enforces.
type Relation int

const (
	LE Relation = iota
	GE
	EQ
)

// Term is one coefficient*variable addend in a linear expression.
type Term struct {
	Var   int
	Coeff float64
}

// Expr is an ordered linear expression. Order matters: the branch-and-bound
// engine's traversal is deterministic only if the model itself is built in
// a stable order (spec.md §8 invariant 8), so callers should build Exprs by
// appending in a fixed iteration order (e.g. ascending box/container
// index) rather than ranging over a map.
type Expr []Term

// Add appends one term and returns the expression for chaining.
func (e Expr) Add(v int, coeff float64) Expr { return append(e, Term{Var: v, Coeff: coeff}) }

// Constraint is one linear (in)equality: sum(Terms) Rel RHS.
type Constraint struct {
	Name  string
	Terms Expr
	Rel   Relation
	RHS   float64
}

// Variable is one integer decision variable with inclusive bounds. Every
// variable in this solver is integer; a 0/1 variable is simply one whose
// bounds are [0,1].
type Variable struct {
	Name     string
	Low, High int64
}

// IsBinary reports whether the variable's bounds restrict it to {0,1}.
func (v Variable) IsBinary() bool { return v.Low == 0 && v.High == 1 }

// Model is a Mixed-Integer-Program-shaped problem: integer variables,
// linear constraints, and a single linear minimize objective. It is the
// concrete stand-in for spec.md's "general integer/boolean CP solver"
// collaborator — every half-reified implication and product term spec.md
// calls for is compiled down to Constraints over these Variables by
// pkg/modelutil before the Model ever reaches Driver.Solve.
type Model struct {
	Name        string
	Vars        []Variable
	Constraints []Constraint
	Objective   Expr
}

// NewModel returns an empty model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// NewIntVar declares an integer variable bounded by [lo,hi] and returns
// its index for use in Exprs.
func (m *Model) NewIntVar(name string, lo, hi int64) int {
	idx := len(m.Vars)
	m.Vars = append(m.Vars, Variable{Name: name, Low: lo, High: hi})
	return idx
}

// NewBoolVar declares a 0/1 variable.
func (m *Model) NewBoolVar(name string) int {
	return m.NewIntVar(name, 0, 1)
}

// AddConstraint appends one linear constraint to the model. GE constraints
// are stored as their negated LE equivalent so the rest of the package
// (relax.go in particular) only ever has to handle LE and EQ.
func (m *Model) AddConstraint(name string, expr Expr, rel Relation, rhs float64) {
	if rel == GE {
		neg := make(Expr, len(expr))
		for i, t := range expr {
			neg[i] = Term{Var: t.Var, Coeff: -t.Coeff}
		}
		expr, rel, rhs = neg, LE, -rhs
	}
	m.Constraints = append(m.Constraints, Constraint{Name: name, Terms: expr, Rel: rel, RHS: rhs})
}

// AddToObjective accumulates terms into the minimize objective. Callers
// that maximize a quantity (spec.md §4.2's soft objective) negate their
// coefficients before calling this, since Model always minimizes.
func (m *Model) AddToObjective(expr Expr) {
	m.Objective = append(m.Objective, expr...)
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.Vars) }
