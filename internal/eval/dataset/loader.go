package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

var (
	// ErrUnsupportedFormat is returned for table files that are neither CSV nor Parquet
	ErrUnsupportedFormat = errors.New("unsupported table format")
	// ErrEmptyTable is returned for files with no header row
	ErrEmptyTable = errors.New("no columns to parse from file")
)

const utf8BOM = "\ufeff"

// Loader reads a comparison table from disk
type Loader struct {
	path string
}

// NewLoader creates a new table loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Path returns the table file the loader reads
func (l *Loader) Path() string {
	return l.path
}

// Load loads every row of the table (CSV or Parquet)
func (l *Loader) Load() ([]ComparisonRow, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".csv":
		return l.loadCSV()
	case ".parquet":
		return l.loadParquet()
	default:
		return nil, fmt.Errorf("%w: %q (supported: .csv, .parquet)", ErrUnsupportedFormat, ext)
	}
}

// loadCSV loads rows from a CSV file with a header row
func (l *Loader) loadCSV() ([]ComparisonRow, error) {
	slog.Debug("Opening CSV file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer file.Close()

	return readCSV(file, l.path)
}

// readCSV parses a comparison table from r; name is used in errors
func readCSV(r io.Reader, name string) ([]ComparisonRow, error) {
	reader := csv.NewReader(r)
	// Short rows are padded below; long rows are rejected explicitly
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &MissingColumnError{Path: name, Columns: missing}
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}
	onset := index[ColumnOnsetTime]
	timestamp := index[ColumnTimestamp]
	text := index[ColumnText]
	language := index[ColumnLanguage]
	speaker := index[ColumnSpeaker]

	var rows []ComparisonRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("failed to parse CSV: line %d: expected %d fields, saw %d", line, len(header), len(record))
		}

		cell := func(i int) string {
			if i < len(record) {
				return record[i]
			}
			return ""
		}

		rows = append(rows, ComparisonRow{
			OnsetTimeDifference: cell(onset),
			TimestampDifference: cell(timestamp),
			TextDifference:      ParseFlag(cell(text)),
			LanguageDifference:  ParseFlag(cell(language)),
			SpeakerDifference:   ParseFlag(cell(speaker)),
		})
	}

	slog.Debug("Finished reading CSV file", "path", name, "rows", len(rows))

	return rows, nil
}

// loadParquet loads rows from a Parquet file
func (l *Loader) loadParquet() ([]ComparisonRow, error) {
	slog.Debug("Opening Parquet file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	var header []string
	for _, field := range pf.Schema().Fields() {
		header = append(header, field.Name())
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &MissingColumnError{Path: l.path, Columns: missing}
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[parquetRow](pf)
	defer reader.Close()

	rows := make([]ComparisonRow, 0, pf.NumRows())
	batch := make([]parquetRow, 128)

	for {
		n, err := reader.Read(batch)
		for _, row := range batch[:n] {
			rows = append(rows, row.toComparisonRow())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet file", "path", l.path, "rows", len(rows))

	return rows, nil
}
