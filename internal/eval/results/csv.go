package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

const (
	// DetailedFile holds one row per successfully processed table
	DetailedFile = "detailed_results.csv"
	// StatisticsFile holds one row per metric
	StatisticsFile = "statistics_results.csv"
)

// StatisticsHeader is the header of the statistics CSV
var StatisticsHeader = []string{"Metric", "Mean", "SD", "SE", "Min", "Max"}

// DetailedHeader returns the header of the detailed results CSV
func DetailedHeader() []string {
	header := []string{"Filename", "Total_Rows"}
	for _, m := range metrics.Metrics {
		header = append(header, m.AccuracyColumn())
	}
	for _, m := range metrics.Metrics {
		header = append(header, m.MatchingColumn())
	}
	return header
}

// formatFloat writes the shortest representation that parses back to v.
// NaN is written as an empty cell.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteDetailedCSV writes per-file results to path
func WriteDetailedCSV(path string, results []metrics.FileResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create detailed results file: %w", err)
	}
	defer file.Close()

	if err := writeDetailed(file, results); err != nil {
		return fmt.Errorf("failed to write detailed results: %w", err)
	}
	return file.Close()
}

func writeDetailed(w io.Writer, results []metrics.FileResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(DetailedHeader()); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{r.Filename, strconv.Itoa(r.TotalRows)}
		for _, m := range metrics.Metrics {
			row = append(row, formatFloat(r.Accuracy(m)))
		}
		for _, m := range metrics.Metrics {
			row = append(row, strconv.Itoa(r.MatchingRows(m)))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadDetailedCSV loads per-file results written by WriteDetailedCSV.
// Matching-row columns are optional; when absent they are derived from
// the ratio and the total.
func ReadDetailedCSV(path string) ([]metrics.FileResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open detailed results: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read detailed results header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	required := []string{"Filename", "Total_Rows"}
	for _, m := range metrics.Metrics {
		required = append(required, m.AccuracyColumn())
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("detailed results missing column %q", col)
		}
	}

	var results []metrics.FileResult
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse detailed results: %w", err)
		}

		total, err := strconv.Atoi(record[index["Total_Rows"]])
		if err != nil {
			return nil, fmt.Errorf("invalid Total_Rows %q: %w", record[index["Total_Rows"]], err)
		}

		result := metrics.FileResult{
			Filename:  record[index["Filename"]],
			TotalRows: total,
			Metrics:   make(map[metrics.Metric]metrics.MetricResult, len(metrics.Metrics)),
		}

		for _, m := range metrics.Metrics {
			accuracy, err := parseFloat(record[index[m.AccuracyColumn()]])
			if err != nil {
				return nil, fmt.Errorf("invalid %s for %s: %w", m.AccuracyColumn(), result.Filename, err)
			}

			matching := int(math.Round(accuracy * float64(total)))
			if i, ok := index[m.MatchingColumn()]; ok {
				matching, err = strconv.Atoi(record[i])
				if err != nil {
					return nil, fmt.Errorf("invalid %s for %s: %w", m.MatchingColumn(), result.Filename, err)
				}
			}

			result.Metrics[m] = metrics.MetricResult{
				MatchingRows: matching,
				TotalRows:    total,
				Accuracy:     accuracy,
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// WriteStatisticsCSV writes one row per metric to path
func WriteStatisticsCSV(path string, stats []metrics.Statistic) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create statistics file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(StatisticsHeader); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	for _, s := range stats {
		row := []string{
			string(s.Metric),
			formatFloat(s.Mean),
			formatFloat(s.SD),
			formatFloat(s.SE),
			formatFloat(s.Min),
			formatFloat(s.Max),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write statistics: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return file.Close()
}

// ReadStatisticsCSV loads statistics written by WriteStatisticsCSV. Count
// is not stored and is left zero.
func ReadStatisticsCSV(path string) ([]metrics.Statistic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statistics: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(StatisticsHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse statistics: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("statistics file %s is empty", path)
	}

	stats := make([]metrics.Statistic, 0, len(records)-1)
	for _, record := range records[1:] {
		m, ok := metrics.ParseMetric(record[0])
		if !ok {
			return nil, fmt.Errorf("unknown metric %q in statistics", record[0])
		}

		values := make([]float64, 5)
		for i := range values {
			v, err := parseFloat(record[i+1])
			if err != nil {
				return nil, fmt.Errorf("invalid %s for %s: %w", StatisticsHeader[i+1], m, err)
			}
			values[i] = v
		}

		stats = append(stats, metrics.Statistic{
			Metric: m,
			Mean:   values[0],
			SD:     values[1],
			SE:     values[2],
			Min:    values[3],
			Max:    values[4],
		})
	}

	return stats, nil
}
