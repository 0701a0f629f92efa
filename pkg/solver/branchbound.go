package solver

import (
	"context"
	"math"
	"sync"
	"time"
)

// bbNode is one open node of the branch-and-bound enumeration tree.
type bbNode struct {
	b bounds
}

// bbConfig controls the branch-and-bound search. Workers lets sibling
// relaxations within one generation be solved concurrently; the decisions
// made from their results (pruning, incumbent updates, which children are
// pushed and in what order) are always taken sequentially in the node's
// original pop order, so the search outcome does not depend on goroutine
// scheduling. This mirrors the teacher's parallel-evaluate-then-sequential-
// process shape, not an ad hoc worker pool.
type bbConfig struct {
	Workers int
}

// branchAndBound runs a from-scratch MILP branch-and-bound search over m,
// stopping at deadline if the tree has not been fully explored. It is the
// engine behind Driver.Solve and is grounded on the enumeration-tree /
// context-deadline structure of a branch-and-bound MILP solver backed by a
// dense LP relaxation, generalized here to an arbitrary integer Model
// rather than one fixed problem shape.
func branchAndBound(ctx context.Context, m *Model, deadline time.Time, cfg bbConfig) Result {
	start := time.Now()
	if len(m.Vars) == 0 {
		return Result{Status: StatusOptimal, Elapsed: time.Since(start)}
	}

	stack := []bbNode{{b: rootBounds(m)}}
	var incumbent []float64
	incumbentObj := math.Inf(1)
	haveIncumbent := false
	exploredAll := true

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	deadlineHit := func() bool {
		return time.Now().After(deadline) || ctx.Err() != nil
	}

	root := true
	for len(stack) > 0 {
		if deadlineHit() {
			exploredAll = false
			break
		}

		batch := workers
		if batch > len(stack) {
			batch = len(stack)
		}
		nodes := stack[len(stack)-batch:]
		stack = stack[:len(stack)-batch]

		results := make([]relaxResult, batch)
		errs := make([]error, batch)
		if batch == 1 {
			results[0], errs[0] = relax(m, nodes[0].b)
		} else {
			var wg sync.WaitGroup
			for i := range nodes {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = relax(m, nodes[i].b)
				}(i)
			}
			wg.Wait()
		}

		// Process in original (deterministic) pop order regardless of how
		// the goroutines above finished.
		for i := 0; i < batch; i++ {
			res, err := results[i], errs[i]
			if err != nil {
				if root {
					return Result{Status: StatusModelInvalid, Elapsed: time.Since(start)}
				}
				continue // prune: treat an internal relaxation failure as infeasible at this node
			}
			root = false
			if res.infeasible {
				continue
			}
			if haveIncumbent && res.objective >= incumbentObj-1e-9 {
				continue // bound prune
			}

			idx, frac, integral := mostFractionalVar(res.values)
			if integral {
				if !haveIncumbent || res.objective < incumbentObj {
					incumbent = append([]float64(nil), res.values...)
					incumbentObj = res.objective
					haveIncumbent = true
				}
				continue
			}

			floorVal := math.Floor(frac)
			ceilVal := floorVal + 1
			child := nodes[i].b

			floorChild := child.clone()
			floorChild.hi[idx] = int64(floorVal)
			ceilChild := child.clone()
			ceilChild.lo[idx] = int64(ceilVal)

			// Push floor first, ceil last, so ceil is explored first
			// (LIFO) — a fixed, arbitrary but deterministic tie-break.
			stack = append(stack, bbNode{b: floorChild}, bbNode{b: ceilChild})
		}
	}

	res := Result{Elapsed: time.Since(start)}
	switch {
	case exploredAll && haveIncumbent:
		res.Status = StatusOptimal
	case exploredAll && !haveIncumbent:
		res.Status = StatusInfeasible
	case !exploredAll && haveIncumbent:
		res.Status = StatusFeasible
	default:
		res.Status = StatusUnknown
	}
	if haveIncumbent {
		res.values = incumbent
		res.Objective = incumbentObj
	}
	return res
}
