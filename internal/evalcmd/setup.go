package evalcmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/config"
)

// resolveConfig loads the config file named by --config (if any), lets the
// command apply its changed flags, validates the result and installs the
// default logger.
func resolveConfig(cmd *cobra.Command, applyFlags func(*config.Config)) (*config.Config, error) {
	var path string
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}

	cfg, resolved, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if applyFlags != nil {
		applyFlags(cfg)
	}
	if f := cmd.Flag("verbose"); f != nil && f.Changed && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if resolved != "" {
		slog.Debug("Loaded config", "path", resolved)
	}

	return cfg, nil
}
