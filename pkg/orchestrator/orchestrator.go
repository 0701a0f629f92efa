// Package orchestrator ties together ingestion, Phase 1 (AMB+SD), the
// initial Placement Evaluator run, the ALNS loop (DO→RO→PE→AC→SC), and
// the final PE pass spec.md §4.9 describes end to end.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/cargostow/loadplan/pkg/accept"
	"github.com/cargostow/loadplan/pkg/alns"
	v1alpha1 "github.com/cargostow/loadplan/pkg/api/v1alpha1"
	"github.com/cargostow/loadplan/pkg/apperrors"
	"github.com/cargostow/loadplan/pkg/assignment"
	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/evaluator"
	"github.com/cargostow/loadplan/pkg/placement"
	"github.com/cargostow/loadplan/pkg/solver"
	"github.com/cargostow/loadplan/pkg/telemetry/metrics"
	"github.com/cargostow/loadplan/pkg/telemetry/tracing"
)

// Options configures one end-to-end Run. SkipALNS corresponds to the CLI's
// --no-alns flag (spec.md §6) — it skips §4.9 step 4 entirely.
type Options struct {
	Boxes     []domain.Box
	Container domain.ContainerSpec

	Phase1MaxTime time.Duration
	Phase2MaxTime time.Duration

	ALNS          v1alpha1.ALNSParams
	SkipALNS      bool
	PlacementOpts placement.Input // Symmetry, Anchor, Weights only; Boxes/Container/BoxIndices overwritten per container

	// RunID is this run's correlation id and the source the ALNS loop's
	// RNG seed is derived from. A caller that leaves it empty gets a
	// freshly generated one, so reproducing a prior run's destroy/repair/
	// accept sequence (spec.md §5/§8) requires passing the same RunID
	// back in, not just re-running with the same input.
	RunID string

	Metrics *metrics.Metrics
}

// Result is what Run returns: the run's correlation id, the final
// (best) solution state, the boxes it was computed from (needed by the
// caller to render the output document via pkg/ingest.FromDomain), and a
// per-iteration best-score trace for an optional convergence chart.
type Result struct {
	RunID   string
	State   *domain.State
	Boxes   []domain.Box
	History []ScorePoint
}

// ScorePoint is one (iteration, best score) sample recorded by the ALNS
// loop, independent of any particular chart rendering library.
type ScorePoint struct {
	Iteration int
	BestScore float64
}

// Run executes spec.md §4.9's full pipeline.
func Run(ctx context.Context, opts Options) (Result, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := klog.FromContext(ctx).WithValues("run_id", runID, "box_count", len(opts.Boxes))
	ctx = klog.NewContext(ctx, logger)
	logger.Info("starting run")

	driver := solver.NewDriver()

	// Step 2: Phase 1.
	phase1Ctx, phase1Span := tracing.StartPhase1(ctx, runID)
	maxInstances := assignment.UpperBoundInstances(opts.Boxes, opts.Container)
	if maxInstances == 0 {
		maxInstances = 1
	}
	built, err := assignment.Build(assignment.Input{
		Boxes:        opts.Boxes,
		Container:    opts.Container,
		MaxInstances: maxInstances,
		Weights:      assignment.DefaultWeights(),
	})
	if err != nil {
		phase1Span.End()
		return Result{}, apperrors.Wrap(apperrors.KindSolverInternal, "building Phase 1 model", err)
	}
	res := driver.Solve(phase1Ctx, built.Model, opts.Phase1MaxTime)
	opts.Metrics.ObserveSolve("phase1", res.Status.String())
	phase1Span.End()
	if !res.Status.HasSolution() {
		return Result{}, apperrors.New(apperrors.KindAssignmentInfeasible, "Phase 1 returned "+res.Status.String())
	}
	a := assignment.RebuildAssignment(res, built, maxInstances)
	logger.Info("Phase 1 complete", "instances_used", a.UsedCount(), "status", res.Status.String())

	// Step 3: initial state + PE.
	state := domain.NewState(a)
	ev := &evaluator.Evaluator{
		Boxes:        opts.Boxes,
		Container:    opts.Container,
		Driver:       driver,
		Deadline:     opts.Phase2MaxTime,
		Symmetry:     opts.PlacementOpts.Symmetry,
		Anchor:       opts.PlacementOpts.Anchor,
		Weights:      opts.PlacementOpts.Weights,
		ScoreWeights: evaluator.DefaultWeights(),
	}
	ev.Evaluate(ctx, state)
	initialScore := state.Score
	logger.Info("initial placement evaluated", "score", state.Score, "feasible", state.Feasible())

	best := state
	var history []ScorePoint

	// Step 4: ALNS loop.
	if !opts.SkipALNS {
		best, history = runALNSLoop(ctx, runID, opts, driver, ev, state, logger)
	}

	// Step 5: final PE pass (no-op if already current).
	if best.ScoreDirty {
		ev.Evaluate(ctx, best)
	}
	logger.Info("run complete", "final_score", best.Score, "initial_score", initialScore, "feasible", best.Feasible())

	return Result{RunID: runID, State: best, Boxes: opts.Boxes, History: history}, nil
}

// runALNSLoop runs spec.md §4.9 step 4's DO→RO→PE→AC→SC cycle until the
// Stopping Criterion fires. The RNG seed is derived from the run's own
// correlation id, so a caller wanting bit-for-bit reproducibility passes
// the same Options.RunID back in on a later Run call (see spec.md §8
// invariant 8); a caller that never sets RunID gets a fresh seed every
// time, since Run then generates a new one itself.
func runALNSLoop(ctx context.Context, runID string, opts Options, driver *solver.Driver, ev *evaluator.Evaluator, current *domain.State, logger klog.Logger) (*domain.State, []ScorePoint) {
	rng := rand.New(rand.NewSource(seedFromRunID(runID)))
	best := current
	history := make([]ScorePoint, 0, opts.ALNS.NumIterations)

	destroyCfg := alns.DestroyConfig{PercentRemove: float64(opts.ALNS.NumCanBeMovedPercentage) / 100}
	repairCfg := alns.RepairConfig{
		Boxes:     opts.Boxes,
		Container: opts.Container,
		Weights:   assignment.DefaultWeights(),
		Driver:    driver,
		Deadline:  opts.Phase1MaxTime,
	}

	deadline := time.Duration(opts.ALNS.TimeLimitSeconds * float64(time.Second))
	sc := accept.NewStoppingCriterion(opts.ALNS.NumIterations, opts.ALNS.MaxNoImprove, deadline)

	for !sc.Done() {
		iterCtx, iterSpan := tracing.StartALNSIteration(ctx, runID, sc.Iteration())

		destroyed := alns.Destroy(current, destroyCfg, rng)
		repaired := alns.Repair(iterCtx, destroyed, repairCfg)
		ev.Evaluate(iterCtx, repaired)

		decision := accept.Decide(best, current, repaired, rng)
		improved := false
		if decision.Accepted {
			current = decision.Candidate
			if decision.NewBest {
				best = decision.Candidate
				improved = true
			}
		}

		opts.Metrics.SetIteration(sc.Iteration())
		opts.Metrics.SetBestScore(best.Score)
		history = append(history, ScorePoint{Iteration: sc.Iteration(), BestScore: best.Score})
		iterSpan.End()
		sc.Advance(improved)
	}

	logger.Info("ALNS loop finished", "iterations", sc.Iteration(), "best_score", best.Score)
	return best, history
}

// seedFromRunID derives a deterministic RNG seed from the run's
// correlation id, so re-running with the same RunID (e.g. a replay
// harness) reproduces the same destroy/repair/accept sequence.
func seedFromRunID(runID string) uint64 {
	var h uint64 = 14695981039346656037 // FNV-1a offset basis
	for i := 0; i < len(runID); i++ {
		h ^= uint64(runID[i])
		h *= 1099511628211 // FNV-1a prime
	}
	return h
}
