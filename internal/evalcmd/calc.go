package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/config"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/dataset"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

// executeCalc scores each table and prints the detailed analysis. The
// first table that cannot be loaded stops the command.
func executeCalc(ctx context.Context, out io.Writer, cfg *config.Config, paths []string) error {
	if len(paths) == 0 {
		paths = []string{filepath.Join(cfg.InputDir, cfg.SingleFile)}
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nProcessing %s:\n", filepath.Base(path))

		rows, err := dataset.NewLoader(path).Load()
		if err != nil {
			return fmt.Errorf("failed to process %s: %w", path, err)
		}

		result, ok := metrics.Calculate(rows)
		if !ok {
			fmt.Fprintf(out, "No rows to evaluate in %s\n", filepath.Base(path))
			slog.Warn("Skipping file with no rows", "file", path)
			continue
		}
		result.Filename = filepath.Base(path)

		result.PrintBreakdown(out)
		result.PrintMetricDetails(out)
	}

	return nil
}
