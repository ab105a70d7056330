package metrics

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// FormatPercent renders a ratio as a percentage with two decimals, or n/a when undefined
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// PrintBreakdown writes the per-metric agreement counts for a file
func (r *FileResult) PrintBreakdown(w io.Writer) {
	fmt.Fprintln(w, "\nDetailed Analysis:")
	fmt.Fprintf(w, "Total valid rows: %d\n", r.TotalRows)
	fmt.Fprintf(w, "'No difference' rows: %d (%s)\n", r.MatchingRows(MetricOnsetTime), FormatPercent(r.Accuracy(MetricOnsetTime)))
	fmt.Fprintf(w, "'00:00:00' timestamp rows: %d (%s)\n", r.MatchingRows(MetricTimestamp), FormatPercent(r.Accuracy(MetricTimestamp)))
	fmt.Fprintf(w, "No text difference rows: %d (%s)\n", r.MatchingRows(MetricText), FormatPercent(r.Accuracy(MetricText)))
	fmt.Fprintf(w, "Same language rows: %d (%s)\n", r.MatchingRows(MetricLanguage), FormatPercent(r.Accuracy(MetricLanguage)))
	fmt.Fprintf(w, "Same speaker rows: %d (%s)\n", r.MatchingRows(MetricSpeaker), FormatPercent(r.Accuracy(MetricSpeaker)))
}

// PrintMetricDetails writes matching/total/accuracy for every metric
func (r *FileResult) PrintMetricDetails(w io.Writer) {
	fmt.Fprintf(w, "\nTotal Rows (excluding markers): %d\n", r.TotalRows)
	fmt.Fprintln(w, "\nAccuracy Results:")
	for _, m := range Metrics {
		res := r.Metrics[m]
		fmt.Fprintf(w, "\n%s:\n", m)
		fmt.Fprintf(w, "Matching Rows: %d\n", res.MatchingRows)
		fmt.Fprintf(w, "Total Rows: %d\n", res.TotalRows)
		fmt.Fprintf(w, "Accuracy: %s\n", FormatPercent(res.Accuracy))
	}
}

// PrintAccuracies writes the compact per-file summary used in batch runs
func (r *FileResult) PrintAccuracies(w io.Writer) {
	fmt.Fprintf(w, "\nResults for %s:\n", r.Filename)
	fmt.Fprintf(w, "Total Rows: %d\n", r.TotalRows)
	fmt.Fprintln(w, "Accuracies:")
	for _, m := range Metrics {
		fmt.Fprintf(w, "%s Accuracy: %s\n", m.Label(), FormatPercent(r.Accuracy(m)))
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
}

// PrintStatistics writes the aggregate statistics for every metric
func PrintStatistics(w io.Writer, stats []Statistic) {
	fmt.Fprintln(w, "\nOverall Statistics:")
	for _, s := range stats {
		fmt.Fprintf(w, "\n%s:\n", s.Metric)
		fmt.Fprintf(w, "Mean: %s\n", FormatPercent(s.Mean))
		fmt.Fprintf(w, "SD: %s\n", FormatPercent(s.SD))
		fmt.Fprintf(w, "SE: %s\n", FormatPercent(s.SE))
		fmt.Fprintf(w, "Range: %s - %s\n", FormatPercent(s.Min), FormatPercent(s.Max))
	}
}
