package dataset

import "strings"

// Column names required in every comparison table
const (
	ColumnOnsetTime = "Absolute_onset_time_difference"
	ColumnTimestamp = "TimeStamp_difference"
	ColumnText      = "text_difference"
	ColumnLanguage  = "language_difference"
	ColumnSpeaker   = "Speaker_difference"
)

// RequiredColumns lists the columns a table must carry, in schema order
var RequiredColumns = []string{
	ColumnOnsetTime,
	ColumnTimestamp,
	ColumnText,
	ColumnLanguage,
	ColumnSpeaker,
}

// Flag is a parsed boolean difference indicator. Cells that are neither
// true nor false are kept as FlagUnknown rather than rejected.
type Flag int

const (
	FlagUnknown Flag = iota
	FlagFalse
	FlagTrue
)

// ParseFlag converts a table cell into a Flag
func ParseFlag(s string) Flag {
	switch s {
	case "False", "false", "FALSE", "0":
		return FlagFalse
	case "True", "true", "TRUE", "1":
		return FlagTrue
	default:
		return FlagUnknown
	}
}

// FlagOf converts a native boolean into a Flag
func FlagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

func (f Flag) String() string {
	switch f {
	case FlagFalse:
		return "False"
	case FlagTrue:
		return "True"
	default:
		return ""
	}
}

// ComparisonRow holds the difference indicators for one transcript segment
type ComparisonRow struct {
	OnsetTimeDifference string // "No difference" when both sources agree
	TimestampDifference string // "00:00:00" when both sources agree
	TextDifference      Flag
	LanguageDifference  Flag
	SpeakerDifference   Flag
}

// parquetRow is the on-disk layout of a Parquet comparison table
type parquetRow struct {
	OnsetTimeDifference string `parquet:"Absolute_onset_time_difference"`
	TimestampDifference string `parquet:"TimeStamp_difference"`
	TextDifference      bool   `parquet:"text_difference"`
	LanguageDifference  bool   `parquet:"language_difference"`
	SpeakerDifference   bool   `parquet:"Speaker_difference"`
}

func (p parquetRow) toComparisonRow() ComparisonRow {
	return ComparisonRow{
		OnsetTimeDifference: p.OnsetTimeDifference,
		TimestampDifference: p.TimestampDifference,
		TextDifference:      FlagOf(p.TextDifference),
		LanguageDifference:  FlagOf(p.LanguageDifference),
		SpeakerDifference:   FlagOf(p.SpeakerDifference),
	}
}

// MissingColumnError reports required columns absent from a table header
type MissingColumnError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return "missing required column(s) in " + e.Path + ": " + strings.Join(e.Columns, ", ")
}

// missingColumns returns the required columns not present in header
func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
