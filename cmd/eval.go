package cmd

import (
	"github.com/lehigh-university-libraries/transcript-accuracy/internal/evalcmd"
	"github.com/spf13/cobra"
)

func addAccuracyCmds(root *cobra.Command) {
	root.AddCommand(evalcmd.NewCalcCmd())
	root.AddCommand(evalcmd.NewBatchCmd())
	root.AddCommand(evalcmd.NewReportCmd())
}
