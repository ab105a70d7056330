package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistic describes one metric's accuracy ratios across files.
// Values that are undefined for the sample size are NaN.
type Statistic struct {
	Metric Metric
	Count  int
	Mean   float64
	SD     float64 // sample standard deviation (n-1)
	SE     float64 // SD / sqrt(Count)
	Min    float64
	Max    float64
}

// Aggregate computes descriptive statistics per metric over results.
// One statistic is returned for every metric, in Metrics order.
func Aggregate(results []FileResult) []Statistic {
	stats := make([]Statistic, 0, len(Metrics))
	for _, m := range Metrics {
		ratios := make([]float64, 0, len(results))
		for i := range results {
			ratios = append(ratios, results[i].Accuracy(m))
		}
		stats = append(stats, describe(m, ratios))
	}
	return stats
}

// describe summarizes a single metric's ratios
func describe(m Metric, ratios []float64) Statistic {
	s := Statistic{
		Metric: m,
		Count:  len(ratios),
		Mean:   math.NaN(),
		SD:     math.NaN(),
		SE:     math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(ratios) == 0 {
		return s
	}

	s.Min = floats.Min(ratios)
	s.Max = floats.Max(ratios)

	if len(ratios) == 1 {
		s.Mean = ratios[0]
		return s
	}

	s.Mean, s.SD = stat.MeanStdDev(ratios, nil)
	s.SE = s.SD / math.Sqrt(float64(len(ratios)))

	return s
}

// StatisticFor returns the statistic for m from stats
func StatisticFor(stats []Statistic, m Metric) (Statistic, bool) {
	for _, s := range stats {
		if s.Metric == m {
			return s, true
		}
	}
	return Statistic{}, false
}
