package results

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

// Writer persists the artifacts of a batch run into OutputDir
type Writer struct {
	OutputDir string
	Chart     ChartOptions
	Workbook  bool
}

// Artifacts lists the files written by a run. Paths are empty for
// artifacts that were not produced.
type Artifacts struct {
	Detailed   string
	Statistics string
	Chart      string
	Summary    string
	Workbook   string
}

// NewWriter creates a writer with default chart options
func NewWriter(outputDir string) *Writer {
	return &Writer{
		OutputDir: outputDir,
		Chart:     DefaultChartOptions(),
	}
}

// Write creates the output directory and writes every artifact. The
// chart is skipped when no file contributed; summary may be nil.
func (w *Writer) Write(results []metrics.FileResult, stats []metrics.Statistic, summary *RunSummary) (*Artifacts, error) {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	artifacts := &Artifacts{}

	path := filepath.Join(w.OutputDir, DetailedFile)
	if err := WriteDetailedCSV(path, results); err != nil {
		return artifacts, err
	}
	artifacts.Detailed = path

	path = filepath.Join(w.OutputDir, StatisticsFile)
	if err := WriteStatisticsCSV(path, stats); err != nil {
		return artifacts, err
	}
	artifacts.Statistics = path

	path = filepath.Join(w.OutputDir, ChartFile)
	err := RenderChart(path, stats, w.Chart)
	switch {
	case errors.Is(err, ErrNothingToPlot):
		slog.Warn("Skipping chart, no files contributed results")
	case err != nil:
		return artifacts, err
	default:
		artifacts.Chart = path
	}

	if summary != nil {
		path = filepath.Join(w.OutputDir, SummaryFile)
		if err := SaveRunSummary(path, summary); err != nil {
			return artifacts, err
		}
		artifacts.Summary = path
	}

	if w.Workbook {
		path = filepath.Join(w.OutputDir, WorkbookFile)
		if err := SaveWorkbook(path, results, stats); err != nil {
			return artifacts, err
		}
		artifacts.Workbook = path
	}

	slog.Debug("Wrote results", "dir", w.OutputDir, "files", len(results))

	return artifacts, nil
}
