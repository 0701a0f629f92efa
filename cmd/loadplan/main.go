// Command loadplan is the batch CLI spec.md §6 describes: read an input
// document, run the assignment/placement/ALNS pipeline, and write the
// resulting placements.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/cargostow/loadplan/pkg/apperrors"
	"github.com/cargostow/loadplan/pkg/chart"
	"github.com/cargostow/loadplan/pkg/ingest"
	"github.com/cargostow/loadplan/pkg/orchestrator"
	"github.com/cargostow/loadplan/pkg/telemetry/metrics"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		inputPath     string
		outputPath    string
		noALNS        bool
		verbose       bool
		metricsAddr   string
		progressChart string
		runID         string
	)

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)

	root := &cobra.Command{
		Use:           "loadplan",
		Short:         "Pack boxes into the fewest containers and compute a feasible 3-D placement for each.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				_ = klogFlags.Set("v", "4")
			}
			return execute(cmd.Context(), options{
				inputPath:     inputPath,
				outputPath:    outputPath,
				noALNS:        noALNS,
				metricsAddr:   metricsAddr,
				progressChart: progressChart,
				runID:         runID,
			})
		},
	}

	root.Flags().StringVar(&inputPath, "input", "", "path to the input document (JSON or YAML, required)")
	root.Flags().StringVar(&outputPath, "output", "", "path to write the output placement document (JSON or YAML, required)")
	root.Flags().BoolVar(&noALNS, "no-alns", false, "skip the ALNS improvement loop and emit the Phase 1/Phase 2 result directly")
	root.Flags().BoolVar(&verbose, "verbose", false, "enable verbose (klog -v=4 equivalent) logging")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) for the duration of the run")
	root.Flags().StringVar(&progressChart, "progress-chart", "", "if set, write an HTML ALNS convergence chart to this path")
	root.Flags().StringVar(&runID, "run-id", "", "reuse this run id to reproduce a prior run's ALNS RNG sequence bit-for-bit; empty generates a fresh one")
	root.MarkFlagRequired("input")
	root.MarkFlagRequired("output")
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		klog.Background().Error(err, "run failed", "kind", apperrors.KindOf(err).String())
		if code := apperrors.KindOf(err).ExitCode(); code != 0 {
			return code
		}
		return 1
	}
	return 0
}

type options struct {
	inputPath     string
	outputPath    string
	noALNS        bool
	metricsAddr   string
	progressChart string
	runID         string
}

func execute(ctx context.Context, opts options) error {
	logger := klog.Background()
	ctx = klog.NewContext(ctx, logger)

	in, err := ingest.ReadInput(opts.inputPath)
	if err != nil {
		return err
	}
	settings, err := ingest.ReadSettings(in.Step2SettingsFile)
	if err != nil {
		return err
	}
	boxes, container := ingest.ToDomain(in)

	var m *metrics.Metrics
	if opts.metricsAddr != "" {
		m = metrics.New()
		srv := &http.Server{Addr: opts.metricsAddr, Handler: m.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error(err, "metrics server exited")
			}
		}()
		defer srv.Close()
	}

	result, err := orchestrator.Run(ctx, orchestrator.Options{
		Boxes:         boxes,
		Container:     container,
		Phase1MaxTime: time.Duration(in.SolverPhase1MaxTimeInSeconds * float64(time.Second)),
		Phase2MaxTime: time.Duration(settings.SolverPhase2MaxTimeInSeconds * float64(time.Second)),
		ALNS:          in.ALNSParams,
		SkipALNS:      opts.noALNS,
		PlacementOpts: ingest.ToPlacementOpts(settings),
		RunID:         opts.runID,
		Metrics:       m,
	})
	if err != nil {
		return err
	}

	out := ingest.FromDomain(result.Boxes, container, result.State)
	if err := ingest.WriteOutput(opts.outputPath, out); err != nil {
		return apperrors.Wrap(apperrors.KindSolverInternal, "writing output document", err)
	}

	if opts.progressChart != "" && len(result.History) > 0 {
		points := make([]chart.Point, len(result.History))
		for i, p := range result.History {
			points[i] = chart.Point{Iteration: p.Iteration, BestScore: p.BestScore}
		}
		if err := chart.WriteConvergenceChart(opts.progressChart, points); err != nil {
			logger.Error(err, "failed to write progress chart")
		}
	}

	fmt.Printf("run %s complete: %d container(s), score %.2f\n", result.RunID, result.State.Assignment.UsedCount(), result.State.Score)
	return nil
}
