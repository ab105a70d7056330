package results

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

func sampleResults() []metrics.FileResult {
	return []metrics.FileResult{
		*metrics.NewFileResult("v001.csv", 3, map[metrics.Metric]int{
			metrics.MetricOnsetTime: 1,
			metrics.MetricTimestamp: 2,
			metrics.MetricText:      3,
			metrics.MetricLanguage:  3,
			metrics.MetricSpeaker:   0,
		}),
		*metrics.NewFileResult("v002.csv", 7, map[metrics.Metric]int{
			metrics.MetricOnsetTime: 5,
			metrics.MetricTimestamp: 6,
			metrics.MetricText:      2,
			metrics.MetricLanguage:  7,
			metrics.MetricSpeaker:   4,
		}),
	}
}

func TestDetailedCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DetailedFile)
	input := sampleResults()

	if err := WriteDetailedCSV(path, input); err != nil {
		t.Fatalf("WriteDetailedCSV failed: %v", err)
	}

	loaded, err := ReadDetailedCSV(path)
	if err != nil {
		t.Fatalf("ReadDetailedCSV failed: %v", err)
	}

	if len(loaded) != len(input) {
		t.Fatalf("Expected %d results, got %d", len(input), len(loaded))
	}
	for i := range input {
		if loaded[i].Filename != input[i].Filename || loaded[i].TotalRows != input[i].TotalRows {
			t.Errorf("Result %d header mismatch: %+v vs %+v", i, loaded[i], input[i])
		}
		for _, m := range metrics.Metrics {
			if loaded[i].Accuracy(m) != input[i].Accuracy(m) {
				t.Errorf("%s %s: expected %v, got %v", input[i].Filename, m, input[i].Accuracy(m), loaded[i].Accuracy(m))
			}
			if loaded[i].MatchingRows(m) != input[i].MatchingRows(m) {
				t.Errorf("%s %s matching: expected %d, got %d", input[i].Filename, m, input[i].MatchingRows(m), loaded[i].MatchingRows(m))
			}
		}
	}

	// Statistics recomputed from the reloaded file match the originals exactly
	before := metrics.Aggregate(input)
	after := metrics.Aggregate(loaded)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Statistics differ after round trip: %+v vs %+v", before[i], after[i])
		}
	}
}

func TestDetailedCSVHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), DetailedFile)
	if err := WriteDetailedCSV(path, nil); err != nil {
		t.Fatalf("WriteDetailedCSV failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}

	firstLine := strings.SplitN(string(content), "\n", 2)[0]
	if !strings.HasPrefix(firstLine, "Filename,Total_Rows,Onset_Time_Accuracy,Timestamp_Accuracy,Text_Accuracy,Language_Accuracy,Speaker_Accuracy") {
		t.Errorf("Unexpected header: %s", firstLine)
	}
}

func TestReadDetailedCSVWithoutMatchingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), DetailedFile)
	content := "Total_Rows,Onset_Time_Accuracy,Timestamp_Accuracy,Text_Accuracy,Language_Accuracy,Speaker_Accuracy,Filename\n" +
		"4,0.75,0.5,1.0,0.25,0.0,v001.csv\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	loaded, err := ReadDetailedCSV(path)
	if err != nil {
		t.Fatalf("ReadDetailedCSV failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(loaded))
	}
	if loaded[0].Filename != "v001.csv" {
		t.Errorf("Expected filename v001.csv, got %s", loaded[0].Filename)
	}
	if loaded[0].MatchingRows(metrics.MetricOnsetTime) != 3 {
		t.Errorf("Expected derived matching rows 3, got %d", loaded[0].MatchingRows(metrics.MetricOnsetTime))
	}
	if loaded[0].Accuracy(metrics.MetricLanguage) != 0.25 {
		t.Errorf("Expected language accuracy 0.25, got %v", loaded[0].Accuracy(metrics.MetricLanguage))
	}
}

func TestReadDetailedCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), DetailedFile)
	if err := os.WriteFile(path, []byte("Filename,Total_Rows\nv001.csv,3\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := ReadDetailedCSV(path); err == nil || !strings.Contains(err.Error(), "Onset_Time_Accuracy") {
		t.Errorf("Expected missing column error, got %v", err)
	}
}

func TestStatisticsCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), StatisticsFile)
	stats := metrics.Aggregate(sampleResults())

	if err := WriteStatisticsCSV(path, stats); err != nil {
		t.Fatalf("WriteStatisticsCSV failed: %v", err)
	}

	loaded, err := ReadStatisticsCSV(path)
	if err != nil {
		t.Fatalf("ReadStatisticsCSV failed: %v", err)
	}
	if len(loaded) != len(stats) {
		t.Fatalf("Expected %d statistics, got %d", len(stats), len(loaded))
	}
	for i := range stats {
		got, want := loaded[i], stats[i]
		if got.Metric != want.Metric || got.Mean != want.Mean || got.SD != want.SD ||
			got.SE != want.SE || got.Min != want.Min || got.Max != want.Max {
			t.Errorf("Statistic %d mismatch: %+v vs %+v", i, got, want)
		}
	}
}

func TestStatisticsCSVMissingValuesAreBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), StatisticsFile)
	stats := metrics.Aggregate(sampleResults()[:1])

	if err := WriteStatisticsCSV(path, stats); err != nil {
		t.Fatalf("WriteStatisticsCSV failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if lines[0] != "Metric,Mean,SD,SE,Min,Max" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[3] != "Text,1,,,1,1" {
		t.Errorf("Expected blank SD/SE for a single file, got %s", lines[3])
	}

	loaded, err := ReadStatisticsCSV(path)
	if err != nil {
		t.Fatalf("ReadStatisticsCSV failed: %v", err)
	}
	if !math.IsNaN(loaded[0].SD) {
		t.Errorf("Expected NaN SD after reload, got %v", loaded[0].SD)
	}
}

func TestReadStatisticsCSVUnknownMetric(t *testing.T) {
	path := filepath.Join(t.TempDir(), StatisticsFile)
	if err := os.WriteFile(path, []byte("Metric,Mean,SD,SE,Min,Max\nPitch,1,0,0,1,1\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := ReadStatisticsCSV(path); err == nil {
		t.Error("Expected error for unknown metric")
	}
}
