package metrics

import "strings"

// Metric is one of the tracked dimensions of agreement
type Metric string

const (
	MetricOnsetTime Metric = "Onset_Time"
	MetricTimestamp Metric = "Timestamp"
	MetricText      Metric = "Text"
	MetricLanguage  Metric = "Language"
	MetricSpeaker   Metric = "Speaker"
)

// Metrics lists every metric in report order
var Metrics = []Metric{
	MetricOnsetTime,
	MetricTimestamp,
	MetricText,
	MetricLanguage,
	MetricSpeaker,
}

// Label returns the metric name with underscores replaced by spaces
func (m Metric) Label() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

// AccuracyColumn is the detailed-results column holding the metric's ratio
func (m Metric) AccuracyColumn() string {
	return string(m) + "_Accuracy"
}

// MatchingColumn is the detailed-results column holding the metric's matching count
func (m Metric) MatchingColumn() string {
	return string(m) + "_Matching_Rows"
}

// ParseMetric resolves a metric by name
func ParseMetric(name string) (Metric, bool) {
	for _, m := range Metrics {
		if string(m) == name {
			return m, true
		}
	}
	return "", false
}
