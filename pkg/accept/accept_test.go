package accept

import (
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"github.com/cargostow/loadplan/pkg/domain"
)

func feasibleState(score float64) *domain.State {
	s := domain.NewState(domain.Assignment{})
	s.Score = score
	return s
}

func infeasibleState(score float64) *domain.State {
	s := feasibleState(score)
	s.Containers = []domain.ContainerPlacement{{Status: domain.StatusInfeasible}}
	return s
}

func TestDecideRejectsInfeasibleCandidate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	best, current, candidate := feasibleState(10), feasibleState(10), infeasibleState(-100)

	got := Decide(best, current, candidate, rng)
	if got.Accepted {
		t.Fatal("infeasible candidate must be rejected regardless of score")
	}
}

func TestDecideAcceptsNewBest(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	best, current, candidate := feasibleState(10), feasibleState(10), feasibleState(5)

	got := Decide(best, current, candidate, rng)
	if !got.Accepted || !got.NewBest {
		t.Fatalf("Decide = %+v, want accepted and new-best", got)
	}
}

func TestDecideAcceptsAsCurrentOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	best, current, candidate := feasibleState(0), feasibleState(10), feasibleState(5)

	got := Decide(best, current, candidate, rng)
	if !got.Accepted || got.NewBest {
		t.Fatalf("Decide = %+v, want accepted as current but not new best", got)
	}
}

func TestDecideUphillAcceptanceRateApproximates5Percent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	best, current := feasibleState(0), feasibleState(0)
	const trials = 20000

	accepted := 0
	for i := 0; i < trials; i++ {
		candidate := feasibleState(10) // strictly worse than both best and current
		if Decide(best, current, candidate, rng).Accepted {
			accepted++
		}
	}

	rate := float64(accepted) / trials
	if rate < 0.03 || rate > 0.08 {
		t.Fatalf("uphill acceptance rate = %.4f, want close to 0.05", rate)
	}
}

func TestStoppingCriterionMaxIterations(t *testing.T) {
	sc := NewStoppingCriterion(3, 0, 0)
	for i := 0; i < 3; i++ {
		if sc.Done() {
			t.Fatalf("iteration %d: Done() too early", i)
		}
		sc.Advance(false)
	}
	if !sc.Done() {
		t.Fatal("expected Done() after MaxIterations reached")
	}
}

func TestStoppingCriterionMaxNoImprove(t *testing.T) {
	sc := NewStoppingCriterion(0, 2, 0)
	sc.Advance(true)
	if sc.Done() {
		t.Fatal("Done() should be false right after an improving iteration")
	}
	sc.Advance(false)
	sc.Advance(false)
	if !sc.Done() {
		t.Fatal("expected Done() after MaxNoImprove consecutive non-improving iterations")
	}
}

func TestStoppingCriterionWallClock(t *testing.T) {
	sc := NewStoppingCriterion(0, 0, time.Nanosecond)
	time.Sleep(time.Millisecond)
	if !sc.Done() {
		t.Fatal("expected Done() once the wall-clock deadline has passed")
	}
}
