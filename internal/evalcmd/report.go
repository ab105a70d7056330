package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/results"
)

// statsTolerance is the largest difference between stored and recomputed
// statistics that is not reported
const statsTolerance = 1e-9

type reportFile struct {
	Filename   string             `json:"filename"`
	TotalRows  int                `json:"total_rows"`
	Accuracies map[string]float64 `json:"accuracies"`
}

type reportStatistic struct {
	Metric string   `json:"metric"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	SD     *float64 `json:"sd"`
	SE     *float64 `json:"se"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}

type report struct {
	Files      []reportFile      `json:"files"`
	Statistics []reportStatistic `json:"statistics"`
}

func executeReport(out io.Writer, resultsDir, format string) error {
	switch format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	detailed, err := results.ReadDetailedCSV(filepath.Join(resultsDir, results.DetailedFile))
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	stats := metrics.Aggregate(detailed)
	checkStoredStatistics(filepath.Join(resultsDir, results.StatisticsFile), stats)

	switch format {
	case "json":
		return printJSONReport(out, detailed, stats)
	case "csv":
		return printCSVReport(out, detailed)
	default:
		return printTextReport(out, resultsDir, detailed, stats)
	}
}

// checkStoredStatistics warns when statistics_results.csv no longer matches
// the detailed results it was computed from.
func checkStoredStatistics(path string, recomputed []metrics.Statistic) {
	stored, err := results.ReadStatisticsCSV(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to read stored statistics", "path", path, "err", err)
		}
		return
	}

	for _, s := range stored {
		r, ok := metrics.StatisticFor(recomputed, s.Metric)
		if !ok {
			continue
		}
		if !closeEnough(s.Mean, r.Mean) || !closeEnough(s.SD, r.SD) || !closeEnough(s.SE, r.SE) ||
			!closeEnough(s.Min, r.Min) || !closeEnough(s.Max, r.Max) {
			slog.Warn("Stored statistics differ from detailed results", "metric", s.Metric, "stored_mean", s.Mean, "mean", r.Mean)
		}
	}
}

func closeEnough(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= statsTolerance
}

func printTextReport(out io.Writer, resultsDir string, detailed []metrics.FileResult, stats []metrics.Statistic) error {
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out, "Transcript Accuracy Report")
	fmt.Fprintln(out, "========================================")
	fmt.Fprintf(out, "Results: %s\n", resultsDir)
	fmt.Fprintf(out, "Files:   %d\n", len(detailed))

	for i := range detailed {
		detailed[i].PrintAccuracies(out)
	}

	metrics.PrintStatistics(out, stats)
	fmt.Fprintln(out)
	fmt.Fprintln(out, statisticsTable(out, stats))

	return nil
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func printJSONReport(out io.Writer, detailed []metrics.FileResult, stats []metrics.Statistic) error {
	rep := report{
		Files:      make([]reportFile, 0, len(detailed)),
		Statistics: make([]reportStatistic, 0, len(stats)),
	}

	for _, r := range detailed {
		file := reportFile{
			Filename:   r.Filename,
			TotalRows:  r.TotalRows,
			Accuracies: make(map[string]float64, len(metrics.Metrics)),
		}
		for _, m := range metrics.Metrics {
			file.Accuracies[string(m)] = r.Accuracy(m)
		}
		rep.Files = append(rep.Files, file)
	}

	for _, s := range stats {
		rep.Statistics = append(rep.Statistics, reportStatistic{
			Metric: string(s.Metric),
			Count:  s.Count,
			Mean:   optional(s.Mean),
			SD:     optional(s.SD),
			SE:     optional(s.SE),
			Min:    optional(s.Min),
			Max:    optional(s.Max),
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

func printCSVReport(out io.Writer, detailed []metrics.FileResult) error {
	writer := csv.NewWriter(out)

	header := []string{"Filename", "Total_Rows"}
	for _, m := range metrics.Metrics {
		header = append(header, m.AccuracyColumn())
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range detailed {
		row := []string{r.Filename, strconv.Itoa(r.TotalRows)}
		for _, m := range metrics.Metrics {
			row = append(row, fmt.Sprintf("%.4f", r.Accuracy(m)))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
