package evalcmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/config"
)

// NewCalcCmd creates the calc command for scoring individual comparison tables
func NewCalcCmd() *cobra.Command {
	var inputDir string

	cmd := &cobra.Command{
		Use:   "calc [files...]",
		Short: "Calculate accuracy for individual comparison tables",
		Long: `Calculate the agreement between automated and reference transcripts for one or
more comparison tables and print per-metric matching rows and accuracy.

When no file is given the configured single file (v002.csv by default) is read
from the input directory.`,
		Example: `  # Score the default table
  transcript-accuracy calc

  # Score specific tables
  transcript-accuracy calc v001.csv v007.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, func(cfg *config.Config) {
				if cmd.Flags().Changed("input-dir") {
					cfg.InputDir = inputDir
				}
			})
			if err != nil {
				return err
			}
			return executeCalc(cmd.Context(), cmd.OutOrStdout(), cfg, args)
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory holding the default table")

	return cmd
}

// NewBatchCmd creates the batch command for scoring every matching table in a directory
func NewBatchCmd() *cobra.Command {
	var inputDir string
	var pattern string
	var outputDir string
	var workbook bool
	var breakdown bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Calculate accuracy for every comparison table in a directory",
		Long: `Discover comparison tables matching a glob pattern, score each one, aggregate
mean, standard deviation, standard error and range per metric, and write the
results to the output directory:

  detailed_results.csv     one row per scored table
  statistics_results.csv   one row per metric
  accuracy_summary.png     mean accuracy per metric with SD error bars
  run_summary.yaml         how every discovered table was handled
  accuracy_results.xlsx    workbook copy of both CSVs (with --xlsx)

Tables that cannot be read are reported and skipped; the batch continues.`,
		Example: `  # Score v*.csv in the current directory
  transcript-accuracy batch

  # Score parquet tables elsewhere and export a workbook
  transcript-accuracy batch --input-dir ./comparisons --pattern "v*.parquet" --xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, func(cfg *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("input-dir") {
					cfg.InputDir = inputDir
				}
				if flags.Changed("pattern") {
					cfg.Pattern = pattern
				}
				if flags.Changed("output") {
					cfg.OutputDir = outputDir
				}
				if flags.Changed("xlsx") {
					cfg.Workbook = workbook
				}
			})
			if err != nil {
				return err
			}
			return executeBatch(cmd.Context(), cmd.OutOrStdout(), cfg, breakdown)
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory to search for comparison tables")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob pattern selecting comparison tables (default v*.csv)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory for results (default accuracy_results)")
	cmd.Flags().BoolVar(&workbook, "xlsx", false, "Also write an Excel workbook")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Print per-table agreement counts")

	return cmd
}

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var resultsDir string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report from saved batch results",
		Long: `Reload detailed_results.csv from a previous batch run, recompute the statistics
and print them as text, JSON or CSV. A warning is logged when the stored
statistics_results.csv disagrees with the recomputed values.`,
		Example: `  # Text report of the default output directory
  transcript-accuracy report

  # JSON report
  transcript-accuracy report --results ./accuracy_results --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, func(cfg *config.Config) {
				if cmd.Flags().Changed("results") {
					cfg.OutputDir = resultsDir
				}
			})
			if err != nil {
				return err
			}
			return executeReport(cmd.OutOrStdout(), cfg.OutputDir, format)
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results", "", "Directory containing batch results (default accuracy_results)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")

	return cmd
}
