// Package chart renders the optional 2-D ALNS convergence chart
// SPEC_FULL.md §2.2 adds: best-score vs. iteration. It is distinct from
// the out-of-scope 3-D placement visualization spec.md's Non-goals
// exclude — this never renders box geometry.
package chart

import (
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Point is one (iteration, best score) sample recorded during the ALNS
// loop.
type Point struct {
	Iteration int
	BestScore float64
}

// WriteConvergenceChart renders points as a line chart and writes the
// resulting standalone HTML page to path.
func WriteConvergenceChart(path string, points []Point) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "ALNS convergence",
			Subtitle: "best score by iteration (lower is better)",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "best score"}),
	)

	xAxis := make([]string, len(points))
	series := make([]opts.LineData, len(points))
	for i, p := range points {
		xAxis[i] = strconv.Itoa(p.Iteration)
		series[i] = opts.LineData{Value: p.BestScore}
	}
	line.SetXAxis(xAxis).AddSeries("best score", series)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return line.Render(f)
}
