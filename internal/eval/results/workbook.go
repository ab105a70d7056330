package results

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

const (
	// WorkbookFile mirrors the CSV artifacts in a single spreadsheet
	WorkbookFile = "accuracy_results.xlsx"

	detailedSheet   = "Detailed"
	statisticsSheet = "Statistics"
)

// cellValue leaves undefined statistics blank
func cellValue(v float64) interface{} {
	if math.IsNaN(v) {
		return ""
	}
	return v
}

// SaveWorkbook writes the detailed results and statistics as two sheets
func SaveWorkbook(path string, results []metrics.FileResult, stats []metrics.Statistic) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailedSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(statisticsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeRow(f, detailedSheet, 1, toCells(DetailedHeader())); err != nil {
		return err
	}
	for i, r := range results {
		row := []interface{}{r.Filename, r.TotalRows}
		for _, m := range metrics.Metrics {
			row = append(row, r.Accuracy(m))
		}
		for _, m := range metrics.Metrics {
			row = append(row, r.MatchingRows(m))
		}
		if err := writeRow(f, detailedSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, statisticsSheet, 1, toCells(StatisticsHeader)); err != nil {
		return err
	}
	for i, s := range stats {
		row := []interface{}{
			string(s.Metric),
			cellValue(s.Mean),
			cellValue(s.SD),
			cellValue(s.SE),
			cellValue(s.Min),
			cellValue(s.Max),
		}
		if err := writeRow(f, statisticsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
