// Copyright 2025 imgaco Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report renders run summaries: a convergence plot of the
// per-step pheromone statistics and a histogram of the final field.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ajroetker/imgaco/aco"
	"github.com/ajroetker/imgaco/grid"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("report: no data")

// Convergence plots minimum, mean and maximum pheromone against the step
// number and writes a PNG to w.
func Convergence(stats []aco.StepStats, w io.Writer) error {
	if len(stats) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Pheromone by step"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Pheromone"
	p.X.Tick.Marker = plot.TickerFunc(func(first, last float64) []plot.Tick {
		every := max(int(last-first)/10, 1)
		var ticks []plot.Tick
		for i := int(first); float64(i) <= last; i += every {
			ticks = append(ticks, plot.Tick{Value: float64(i), Label: strconv.Itoa(i)})
		}
		return ticks
	})

	series := func(value func(aco.StepStats) float64) plotter.XYs {
		return lo.Map(stats, func(st aco.StepStats, _ int) plotter.XY {
			return plotter.XY{X: float64(st.Step), Y: value(st)}
		})
	}
	err := plotutil.AddLinePoints(p,
		"max", series(func(st aco.StepStats) float64 { return st.MaxPheromone }),
		"mean", series(func(st aco.StepStats) float64 { return st.MeanPheromone }),
		"min", series(func(st aco.StepStats) float64 { return st.MinPheromone }),
	)
	if err != nil {
		return fmt.Errorf("adding series: %w", err)
	}

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Bins counts the values of f into n equal-width bins spanning its range.
// A constant field puts every value in the first bin.
func Bins(f *grid.Field, n int) (counts []int, low, high float64) {
	counts = make([]int, n)
	if n == 0 {
		return counts, 0, 0
	}
	low, high = f.MinMax()
	width := (high - low) / float64(n)
	for _, v := range f.Data() {
		i := 0
		if width > 0 {
			i = min(int((v-low)/width), n-1)
		}
		counts[i]++
	}
	return counts, low, high
}

// Histogram renders a bar chart of f's values in bins buckets and writes a
// PNG to w.
func Histogram(f *grid.Field, bins int, w io.Writer) error {
	if bins <= 0 {
		return fmt.Errorf("%w: %d bins", ErrNoData, bins)
	}
	counts, low, high := Bins(f, bins)
	width := (high - low) / float64(bins)

	bars := lo.Map(counts, func(c int, i int) chart.Value {
		return chart.Value{
			Value: float64(c),
			Label: strconv.FormatFloat(low+width*float64(i), 'g', 3, 64),
		}
	})
	const barWidth, barSpacing = 40, 16
	graph := chart.BarChart{
		Title:      "Pheromone histogram",
		Width:      max(bins*(barWidth+barSpacing)+128, 512),
		Height:     400,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(lo.Max(counts))},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
