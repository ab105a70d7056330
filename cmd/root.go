package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript-accuracy",
		Short: "Transcript accuracy evaluation against reference comparison tables",
		Long: `Transcript-accuracy measures how closely an automated transcript agrees with a
reference transcript.

Each input table holds one row per aligned utterance with difference columns for
onset time, timestamp, text, language and speaker. The tool reports per-metric
accuracy for individual tables and aggregate statistics across a batch.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to YAML config file (default ./accuracy.yaml if present)")
	cmd.PersistentFlags().Bool("verbose", false, "Verbose logging")

	addAccuracyCmds(cmd)

	return cmd
}
