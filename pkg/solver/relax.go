package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// bounds is a node's current variable bounds in a branch-and-bound search;
// the root node's bounds are the Model's own Variable bounds.
type bounds struct {
	lo, hi []int64
}

func rootBounds(m *Model) bounds {
	lo := make([]int64, len(m.Vars))
	hi := make([]int64, len(m.Vars))
	for i, v := range m.Vars {
		lo[i], hi[i] = v.Low, v.High
	}
	return bounds{lo: lo, hi: hi}
}

// clone returns a copy of b, independent of further mutation.
func (b bounds) clone() bounds {
	return bounds{lo: append([]int64(nil), b.lo...), hi: append([]int64(nil), b.hi...)}
}

// relaxResult is the outcome of one LP relaxation at a branch-and-bound
// node.
type relaxResult struct {
	infeasible bool
	values     []float64 // one entry per model variable, in the node's original (unshifted) units
	objective  float64
}

// errRelaxInternal marks a relaxation failure that is not a feasibility
// proof — a numerical or formulation problem at this one node. The
// branch-and-bound loop treats it as a reason to prune the node rather
// than abort the whole solve, except at the root where it escalates to
// StatusModelInvalid.
var errRelaxInternal = errors.New("solver: relaxation failed")

// relax solves the LP relaxation of m restricted to the given node bounds.
//
// Every variable x_i is shifted to y_i = x_i - lo_i so that y_i >= 0, with
// an explicit row y_i + s_i = hi_i - lo_i encoding its upper bound. Every
// LE constraint gets its own non-negative slack; EQ constraints are left
// as equalities. GE constraints must already have been normalized away by
// Model.AddConstraint (model.go), so only LE/EQ are handled here.
// This mirrors the "convert inequalities to equalities" step of a
// from-scratch branch-and-bound MILP solver before handing the relaxation
// to a dense simplex method.
func relax(m *Model, b bounds) (relaxResult, error) {
	n := len(m.Vars)
	width := make([]float64, n)
	for i := 0; i < n; i++ {
		if b.hi[i] < b.lo[i] {
			return relaxResult{infeasible: true}, nil
		}
		width[i] = float64(b.hi[i] - b.lo[i])
	}

	numLE := 0
	for _, c := range m.Constraints {
		if c.Rel == LE {
			numLE++
		}
	}
	rows := len(m.Constraints) + n
	slackCols := numLE + n
	cols := n + slackCols

	A := mat.NewDense(rows, cols, nil)
	bvec := make([]float64, rows)
	c := make([]float64, cols)

	var objConst float64
	for _, t := range m.Objective {
		c[t.Var] += t.Coeff
		objConst += t.Coeff * float64(b.lo[t.Var])
	}

	row := 0
	nextSlack := n
	for _, con := range m.Constraints {
		if con.Rel == GE {
			return relaxResult{}, fmt.Errorf("%w: unnormalized GE constraint %q reached relax", errRelaxInternal, con.Name)
		}
		rhs := con.RHS
		for _, t := range con.Terms {
			A.Set(row, t.Var, A.At(row, t.Var)+t.Coeff)
			rhs -= t.Coeff * float64(b.lo[t.Var])
		}
		if con.Rel == LE {
			A.Set(row, nextSlack, 1)
			nextSlack++
		}
		bvec[row] = rhs
		row++
	}
	for i := 0; i < n; i++ {
		A.Set(row, i, 1)
		A.Set(row, nextSlack, 1)
		nextSlack++
		bvec[row] = width[i]
		row++
	}

	z, x, err := lp.Simplex(c, A, bvec, 1e-9, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return relaxResult{infeasible: true}, nil
		}
		return relaxResult{}, fmt.Errorf("%w: %v", errRelaxInternal, err)
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = float64(b.lo[i]) + x[i]
	}
	return relaxResult{values: values, objective: z + objConst}, nil
}

const integerTolerance = 1e-6

// mostFractionalVar returns the model-variable index farthest from an
// integer value, and whether every variable is already (within tolerance)
// integral.
func mostFractionalVar(values []float64) (idx int, frac float64, integral bool) {
	best := -1
	bestDist := integerTolerance
	for i, v := range values {
		d := math.Abs(v - math.Round(v))
		if d > bestDist {
			bestDist = d
			best = i
		}
	}
	if best == -1 {
		return -1, 0, true
	}
	return best, values[best], false
}
