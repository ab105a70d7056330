package results

import (
	"errors"
	"fmt"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

// ChartFile is the bar chart of mean accuracy per metric
const ChartFile = "accuracy_summary.png"

// ErrNothingToPlot is returned when no metric has a defined mean
var ErrNothingToPlot = errors.New("no statistics to plot")

// ChartOptions controls the size and title of the summary chart
type ChartOptions struct {
	Width  int
	Height int
	Title  string
}

// DefaultChartOptions returns the standard chart geometry
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:  1200,
		Height: 600,
		Title:  "Average Accuracy by Metric",
	}
}

var (
	barColor      = drawing.ColorFromHex("4c72b0")
	errorBarColor = drawing.ColorBlack
)

const (
	barHalfWidth = 0.35
	capHalfWidth = 0.08
	yTickStep    = 0.2
)

// buildChart lays out one bar per metric with height = mean and an
// error bar of ±SD. Bars are filled line series over the zero baseline.
func buildChart(stats []metrics.Statistic, opts ChartOptions) (chart.Chart, error) {
	var series []chart.Series
	var annotations []chart.Value2

	xTicks := []chart.Tick{{Value: -0.5}}
	top := 1.0

	for i, s := range stats {
		x := float64(i)
		xTicks = append(xTicks, chart.Tick{Value: x, Label: string(s.Metric)})

		if math.IsNaN(s.Mean) {
			continue
		}

		series = append(series, chart.ContinuousSeries{
			Name: string(s.Metric),
			Style: chart.Style{
				StrokeColor: barColor,
				StrokeWidth: 1,
				FillColor:   barColor,
			},
			XValues: []float64{x - barHalfWidth, x + barHalfWidth},
			YValues: []float64{s.Mean, s.Mean},
		})

		labelY := s.Mean
		if !math.IsNaN(s.SD) && s.SD > 0 {
			low := math.Max(0, s.Mean-s.SD)
			high := s.Mean + s.SD
			series = append(series, errorBar(x, low, high)...)
			labelY = high
		}
		top = math.Max(top, labelY)

		annotations = append(annotations, chart.Value2{
			XValue: x,
			YValue: labelY,
			Label:  fmt.Sprintf("%s ±%s", metrics.FormatPercent(s.Mean), metrics.FormatPercent(s.SD)),
		})
	}

	if len(series) == 0 {
		return chart.Chart{}, ErrNothingToPlot
	}

	xTicks = append(xTicks, chart.Tick{Value: float64(len(stats)) - 0.5})
	series = append(series, chart.AnnotationSeries{Annotations: annotations})

	return chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  "Accuracy",
			Ticks: percentTicks(top * 1.15),
		},
		Series: series,
	}, nil
}

// errorBar draws a vertical whisker from low to high with caps at both ends
func errorBar(x, low, high float64) []chart.Series {
	style := chart.Style{
		StrokeColor: errorBarColor,
		StrokeWidth: 1.5,
	}
	return []chart.Series{
		chart.ContinuousSeries{Style: style, XValues: []float64{x, x}, YValues: []float64{low, high}},
		chart.ContinuousSeries{Style: style, XValues: []float64{x - capHalfWidth, x + capHalfWidth}, YValues: []float64{high, high}},
		chart.ContinuousSeries{Style: style, XValues: []float64{x - capHalfWidth, x + capHalfWidth}, YValues: []float64{low, low}},
	}
}

// percentTicks returns ticks from 0 up to at least limit in yTickStep increments.
// The axis range follows the tick extent.
func percentTicks(limit float64) []chart.Tick {
	steps := int(math.Ceil(limit / yTickStep))
	ticks := make([]chart.Tick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := float64(i) * yTickStep
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f%%", v*100)})
	}
	return ticks
}

// RenderChart draws the summary chart as a PNG at path
func RenderChart(path string, stats []metrics.Statistic, opts ChartOptions) error {
	graph, err := buildChart(stats, opts)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return file.Close()
}
