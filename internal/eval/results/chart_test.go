package results

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

func TestBuildChart(t *testing.T) {
	stats := metrics.Aggregate(sampleResults())

	graph, err := buildChart(stats, DefaultChartOptions())
	if err != nil {
		t.Fatalf("buildChart failed: %v", err)
	}

	if graph.YAxis.Name != "Accuracy" {
		t.Errorf("Expected Y axis name Accuracy, got %q", graph.YAxis.Name)
	}
	if graph.Title != "Average Accuracy by Metric" {
		t.Errorf("Unexpected title %q", graph.Title)
	}

	// padding ticks at both ends plus one per metric
	if len(graph.XAxis.Ticks) != len(metrics.Metrics)+2 {
		t.Errorf("Expected %d x ticks, got %d", len(metrics.Metrics)+2, len(graph.XAxis.Ticks))
	}
	for i, m := range metrics.Metrics {
		if graph.XAxis.Ticks[i+1].Label != string(m) {
			t.Errorf("Expected tick %d label %s, got %s", i+1, m, graph.XAxis.Ticks[i+1].Label)
		}
	}

	var bars, annotations int
	for _, s := range graph.Series {
		switch series := s.(type) {
		case chart.ContinuousSeries:
			if series.Name != "" {
				bars++
			}
		case chart.AnnotationSeries:
			annotations = len(series.Annotations)
		}
	}
	if bars != len(metrics.Metrics) {
		t.Errorf("Expected %d bars, got %d", len(metrics.Metrics), bars)
	}
	if annotations != len(metrics.Metrics) {
		t.Errorf("Expected %d annotations, got %d", len(metrics.Metrics), annotations)
	}
}

func TestBuildChartAnnotatesMeanAndSD(t *testing.T) {
	stats := []metrics.Statistic{
		{Metric: metrics.MetricText, Count: 3, Mean: 0.75, SD: 0.25, SE: 0.25 / math.Sqrt(3), Min: 0.5, Max: 1},
	}

	graph, err := buildChart(stats, DefaultChartOptions())
	if err != nil {
		t.Fatalf("buildChart failed: %v", err)
	}

	last := graph.Series[len(graph.Series)-1].(chart.AnnotationSeries)
	if got := last.Annotations[0].Label; got != "75.00% ±25.00%" {
		t.Errorf("Unexpected annotation %q", got)
	}
	if got := last.Annotations[0].YValue; got != 1.0 {
		t.Errorf("Expected annotation above error bar at 1.0, got %v", got)
	}

	// bar + whisker + two caps + annotations
	if len(graph.Series) != 5 {
		t.Errorf("Expected 5 series, got %d", len(graph.Series))
	}
}

func TestBuildChartOmitsMissingSD(t *testing.T) {
	stats := metrics.Aggregate(sampleResults()[:1])

	graph, err := buildChart(stats, DefaultChartOptions())
	if err != nil {
		t.Fatalf("buildChart failed: %v", err)
	}

	// one bar per metric plus annotations, no error bars
	if len(graph.Series) != len(metrics.Metrics)+1 {
		t.Errorf("Expected %d series, got %d", len(metrics.Metrics)+1, len(graph.Series))
	}
}

func TestBuildChartNothingToPlot(t *testing.T) {
	_, err := buildChart(metrics.Aggregate(nil), DefaultChartOptions())
	if !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("Expected ErrNothingToPlot, got %v", err)
	}
}

func TestPercentTicks(t *testing.T) {
	ticks := percentTicks(1.15)
	if len(ticks) != 7 {
		t.Fatalf("Expected 7 ticks, got %d", len(ticks))
	}
	if ticks[0].Label != "0%" || ticks[5].Label != "100%" {
		t.Errorf("Unexpected labels: %s, %s", ticks[0].Label, ticks[5].Label)
	}
	if last := ticks[len(ticks)-1].Value; last < 1.15 {
		t.Errorf("Expected ticks to reach 1.15, last is %v", last)
	}
}

func TestRenderChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), ChartFile)

	if err := RenderChart(path, metrics.Aggregate(sampleResults()), DefaultChartOptions()); err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read chart: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("Chart is not a PNG file")
	}
}
