package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/config"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/batch"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/results"
)

func executeBatch(ctx context.Context, out io.Writer, cfg *config.Config, breakdown bool) error {
	started := time.Now()
	runID := uuid.NewString()
	slog.Info("Starting batch run", "run", runID, "dir", cfg.InputDir, "pattern", cfg.Pattern)

	paths, err := batch.Discover(cfg.InputDir, cfg.Pattern)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		slog.Warn("No files matched", "dir", cfg.InputDir, "pattern", cfg.Pattern)
	}

	fmt.Fprintln(out, "Processing files...")
	processor := batch.NewProcessor(out, batch.WithBreakdown(breakdown))
	run, err := processor.Run(ctx, paths)
	if err != nil {
		return fmt.Errorf("batch interrupted after %d of %d files: %w", len(run.Outcomes), len(paths), err)
	}

	successes := run.Successes()
	slog.Info("Processed files",
		"ok", run.Count(batch.StatusOK),
		"skipped", run.Count(batch.StatusSkipped),
		"failed", run.Count(batch.StatusFailed))

	fmt.Fprintln(out, "\nCalculating overall statistics...")
	stats := metrics.Aggregate(successes)

	metrics.PrintStatistics(out, stats)
	fmt.Fprintln(out)
	fmt.Fprintln(out, statisticsTable(out, stats))

	for _, o := range run.Outcomes {
		if o.Status == batch.StatusSkipped {
			fmt.Fprintf(out, "Skipped %s: no rows\n", o.Filename)
		}
	}

	summary := results.NewRunSummary(runID, started, results.RunConfig{
		InputDir:  cfg.InputDir,
		Pattern:   cfg.Pattern,
		OutputDir: cfg.OutputDir,
		Workbook:  cfg.Workbook,
	}, run, stats)

	writer := results.NewWriter(cfg.OutputDir)
	writer.Workbook = cfg.Workbook
	writer.Chart.Width = cfg.Chart.Width
	writer.Chart.Height = cfg.Chart.Height

	if _, err := writer.Write(successes, stats, summary); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	fmt.Fprintf(out, "\nResults saved to %s/\n", cfg.OutputDir)
	slog.Debug("Batch run complete", "run", runID, "elapsed", time.Since(started))

	return nil
}
