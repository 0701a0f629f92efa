package solver

import (
	"context"
	"testing"
	"time"
)

func TestDriverSolveSimpleKnapsack(t *testing.T) {
	// maximize 5*x0 + 4*x1 subject to 2*x0 + 3*x1 <= 5, x0,x1 in {0,1}
	// optimum: x0=1, x1=1 -> value 9, weight 5.
	m := NewModel("knapsack")
	x0 := m.NewBoolVar("x0")
	x1 := m.NewBoolVar("x1")
	m.AddConstraint("capacity", Expr{}.Add(x0, 2).Add(x1, 3), LE, 5)
	m.AddToObjective(Expr{}.Add(x0, -5).Add(x1, -4))

	d := NewDriver()
	res := d.Solve(context.Background(), m, time.Second)
	if res.Status != StatusOptimal {
		t.Fatalf("status = %v, want OPTIMAL", res.Status)
	}
	v0, err := res.Value(x0)
	if err != nil {
		t.Fatal(err)
	}
	v1, err := res.Value(x1)
	if err != nil {
		t.Fatal(err)
	}
	if v0 != 1 || v1 != 1 {
		t.Fatalf("x0=%d x1=%d, want 1,1", v0, v1)
	}
}

func TestDriverSolveInfeasible(t *testing.T) {
	m := NewModel("infeasible")
	x := m.NewIntVar("x", 0, 3)
	m.AddConstraint("lower", Expr{}.Add(x, 1), GE, 10)

	d := NewDriver()
	res := d.Solve(context.Background(), m, time.Second)
	if res.Status != StatusInfeasible {
		t.Fatalf("status = %v, want INFEASIBLE", res.Status)
	}
	if _, err := res.Value(x); err != ErrNoSolution {
		t.Fatalf("Value err = %v, want ErrNoSolution", err)
	}
}

func TestDriverSolveDeadlineWithoutIncumbent(t *testing.T) {
	m := NewModel("tight-deadline")
	x := m.NewIntVar("x", 0, 1000)
	m.AddConstraint("eq", Expr{}.Add(x, 1), EQ, 7)

	d := NewDriver()
	res := d.Solve(context.Background(), m, 0)
	if res.Status == StatusOptimal {
		// A zero deadline may still resolve the root node before the
		// first time check; either outcome is acceptable as long as a
		// found incumbent is the right value.
		v, err := res.Value(x)
		if err != nil || v != 7 {
			t.Fatalf("unexpected incumbent: v=%d err=%v", v, err)
		}
	}
}

func TestMostFractionalVar(t *testing.T) {
	idx, _, integral := mostFractionalVar([]float64{1, 2, 3})
	if !integral || idx != -1 {
		t.Fatalf("expected all-integral, got idx=%d integral=%v", idx, integral)
	}
	idx, frac, integral := mostFractionalVar([]float64{1, 2.7, 3})
	if integral || idx != 1 {
		t.Fatalf("expected fractional at idx 1, got idx=%d integral=%v", idx, integral)
	}
	if frac != 2.7 {
		t.Fatalf("frac = %v, want 2.7", frac)
	}
}
