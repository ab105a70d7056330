package results

import (
	"fmt"
	"os"
	"time"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/batch"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// SummaryFile records how every discovered file was handled in a run
const SummaryFile = "run_summary.yaml"

// RunConfig represents the configuration section of the run summary
type RunConfig struct {
	InputDir  string `yaml:"inputdir"`
	Pattern   string `yaml:"pattern"`
	OutputDir string `yaml:"outputdir"`
	Workbook  bool   `yaml:"workbook"`
}

// FileEntry represents one discovered file in the run summary
type FileEntry struct {
	Filename   string             `yaml:"filename"`
	Status     string             `yaml:"status"`
	TotalRows  int                `yaml:"totalrows,omitempty"`
	Accuracies map[string]float64 `yaml:"accuracies,omitempty"`
	Error      string             `yaml:"error,omitempty"`
}

// StatisticEntry represents one metric's aggregate. Undefined values are .nan.
type StatisticEntry struct {
	Metric string  `yaml:"metric"`
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	SD     float64 `yaml:"sd"`
	SE     float64 `yaml:"se"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// RunSummary is the complete record of a batch run
type RunSummary struct {
	RunID      string           `yaml:"runid"`
	Timestamp  string           `yaml:"timestamp"`
	Config     RunConfig        `yaml:"config"`
	Processed  int              `yaml:"processed"`
	Skipped    int              `yaml:"skipped"`
	Failed     int              `yaml:"failed"`
	Files      []FileEntry      `yaml:"files"`
	Statistics []StatisticEntry `yaml:"statistics"`
}

// NewRunSummary builds the summary of a batch run
func NewRunSummary(runID string, started time.Time, cfg RunConfig, run *batch.Result, stats []metrics.Statistic) *RunSummary {
	summary := &RunSummary{
		RunID:      runID,
		Timestamp:  started.Format("2006-01-02_15-04-05"),
		Config:     cfg,
		Processed:  run.Count(batch.StatusOK),
		Skipped:    run.Count(batch.StatusSkipped),
		Failed:     run.Count(batch.StatusFailed),
		Files:      make([]FileEntry, 0, len(run.Outcomes)),
		Statistics: make([]StatisticEntry, 0, len(stats)),
	}

	for _, o := range run.Outcomes {
		entry := FileEntry{
			Filename: o.Filename,
			Status:   string(o.Status),
		}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		}
		if o.Result != nil {
			entry.TotalRows = o.Result.TotalRows
			entry.Accuracies = make(map[string]float64, len(metrics.Metrics))
			for _, m := range metrics.Metrics {
				entry.Accuracies[string(m)] = o.Result.Accuracy(m)
			}
		}
		summary.Files = append(summary.Files, entry)
	}

	for _, s := range stats {
		summary.Statistics = append(summary.Statistics, StatisticEntry{
			Metric: string(s.Metric),
			Count:  s.Count,
			Mean:   s.Mean,
			SD:     s.SD,
			SE:     s.SE,
			Min:    s.Min,
			Max:    s.Max,
		})
	}

	return summary
}

// SaveRunSummary writes the summary as YAML to path
func SaveRunSummary(path string, summary *RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}

// LoadRunSummary reads a summary written by SaveRunSummary
func LoadRunSummary(path string) (*RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run summary: %w", err)
	}

	var summary RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse run summary: %w", err)
	}

	return &summary, nil
}
