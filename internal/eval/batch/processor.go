package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/dataset"
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

// Status classifies how a single file was handled
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped" // table had no rows
	StatusFailed  Status = "failed"
)

// FileOutcome records the result of processing one file. Result is set
// only for StatusOK and Err only for StatusFailed.
type FileOutcome struct {
	Filename string
	Path     string
	Status   Status
	Result   *metrics.FileResult
	Err      error
}

// Result is the ordered collection of outcomes for a batch run
type Result struct {
	Outcomes []FileOutcome
}

// Successes returns the per-file results in discovery order
func (r *Result) Successes() []metrics.FileResult {
	results := make([]metrics.FileResult, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Status == StatusOK && o.Result != nil {
			results = append(results, *o.Result)
		}
	}
	return results
}

// Count returns the number of outcomes with the given status
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Discover returns the files in dir matching pattern, sorted by name
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadFunc reads the comparison rows of a table
type LoadFunc func(path string) ([]dataset.ComparisonRow, error)

// Processor runs the accuracy calculation over a sequence of tables
type Processor struct {
	out       io.Writer
	load      LoadFunc
	breakdown bool
}

// Option configures a Processor
type Option func(*Processor)

// WithLoader replaces the table loader
func WithLoader(load LoadFunc) Option {
	return func(p *Processor) {
		p.load = load
	}
}

// WithBreakdown also prints the detailed agreement counts for each file
func WithBreakdown(enabled bool) Option {
	return func(p *Processor) {
		p.breakdown = enabled
	}
}

// NewProcessor creates a processor that writes per-file summaries to out
func NewProcessor(out io.Writer, opts ...Option) *Processor {
	if out == nil {
		out = io.Discard
	}
	p := &Processor{
		out: out,
		load: func(path string) ([]dataset.ComparisonRow, error) {
			return dataset.NewLoader(path).Load()
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessFile loads and scores a single table. Failures are captured in
// the outcome, never returned.
func (p *Processor) ProcessFile(path string) FileOutcome {
	outcome := FileOutcome{
		Filename: filepath.Base(path),
		Path:     path,
	}

	rows, err := p.load(path)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		fmt.Fprintf(p.out, "Error processing %s: %v\n", outcome.Filename, err)
		slog.Debug("Failed to process file", "file", outcome.Filename, "err", err)
		return outcome
	}

	result, ok := metrics.Calculate(rows)
	if !ok {
		outcome.Status = StatusSkipped
		slog.Warn("Skipping file with no rows", "file", outcome.Filename)
		return outcome
	}

	result.Filename = outcome.Filename
	outcome.Status = StatusOK
	outcome.Result = result

	if p.breakdown {
		result.PrintBreakdown(p.out)
	}
	result.PrintAccuracies(p.out)
	slog.Debug("Processed file", "file", outcome.Filename, "rows", result.TotalRows)

	return outcome
}

// Run processes paths sequentially. A bad file never stops the batch;
// only context cancellation does, in which case the outcomes gathered
// so far are returned with the context error.
func (p *Processor) Run(ctx context.Context, paths []string) (*Result, error) {
	result := &Result{
		Outcomes: make([]FileOutcome, 0, len(paths)),
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		slog.Debug("Processing file", "path", path, "progress", fmt.Sprintf("%d/%d", i+1, len(paths)))
		result.Outcomes = append(result.Outcomes, p.ProcessFile(path))
	}

	return result, nil
}
