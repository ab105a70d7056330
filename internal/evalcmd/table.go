package evalcmd

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/eval/metrics"
)

// statisticsTable renders the aggregate statistics, with rounded borders
// when w is a terminal.
func statisticsTable(w io.Writer, stats []metrics.Statistic) string {
	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"Metric", "Files", "Mean", "SD", "SE", "Min", "Max"})
	for _, s := range stats {
		tw.AppendRow(table.Row{
			s.Metric.Label(),
			s.Count,
			metrics.FormatPercent(s.Mean),
			metrics.FormatPercent(s.SD),
			metrics.FormatPercent(s.SE),
			metrics.FormatPercent(s.Min),
			metrics.FormatPercent(s.Max),
		})
	}

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}}
	for i := 2; i <= 7; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
