package metrics

import (
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/dataset"
)

const (
	// OnsetAgreement is the onset-time sentinel for rows where both sources agree
	OnsetAgreement = "No difference"
	// TimestampAgreement is the timestamp difference for rows where both sources agree
	TimestampAgreement = "00:00:00"
)

// MetricResult holds the agreement tally for one metric in one file
type MetricResult struct {
	MatchingRows int
	TotalRows    int
	Accuracy     float64 // MatchingRows / TotalRows
}

// FileResult represents the accuracy of a single comparison table
type FileResult struct {
	Filename  string
	TotalRows int
	Metrics   map[Metric]MetricResult
}

// Accuracy returns the ratio for m
func (r *FileResult) Accuracy(m Metric) float64 {
	return r.Metrics[m].Accuracy
}

// MatchingRows returns the agreement count for m
func (r *FileResult) MatchingRows(m Metric) int {
	return r.Metrics[m].MatchingRows
}

// Agrees reports whether row shows no difference for m. Onset and
// timestamp use exact string equality; flags agree only when false.
func Agrees(m Metric, row dataset.ComparisonRow) bool {
	switch m {
	case MetricOnsetTime:
		return row.OnsetTimeDifference == OnsetAgreement
	case MetricTimestamp:
		return row.TimestampDifference == TimestampAgreement
	case MetricText:
		return row.TextDifference == dataset.FlagFalse
	case MetricLanguage:
		return row.LanguageDifference == dataset.FlagFalse
	case MetricSpeaker:
		return row.SpeakerDifference == dataset.FlagFalse
	default:
		return false
	}
}

// Calculate tallies agreement per metric across rows. It returns false
// when there are no rows, in which case no ratio is defined.
func Calculate(rows []dataset.ComparisonRow) (*FileResult, bool) {
	total := len(rows)
	if total == 0 {
		return nil, false
	}

	matching := make(map[Metric]int, len(Metrics))
	for _, row := range rows {
		for _, m := range Metrics {
			if Agrees(m, row) {
				matching[m]++
			}
		}
	}

	return NewFileResult("", total, matching), true
}

// NewFileResult builds a result from per-metric matching counts. total must be positive.
func NewFileResult(filename string, total int, matching map[Metric]int) *FileResult {
	result := &FileResult{
		Filename:  filename,
		TotalRows: total,
		Metrics:   make(map[Metric]MetricResult, len(Metrics)),
	}

	for _, m := range Metrics {
		count := matching[m]
		result.Metrics[m] = MetricResult{
			MatchingRows: count,
			TotalRows:    total,
			Accuracy:     float64(count) / float64(total),
		}
	}

	return result
}
