package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectFile is read from the working directory when no path is given
const ProjectFile = "accuracy.yaml"

// Chart holds the summary chart geometry in pixels.
type Chart struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config holds every setting of an accuracy run.
type Config struct {
	InputDir   string `yaml:"input_dir"`
	Pattern    string `yaml:"pattern"`
	SingleFile string `yaml:"single_file"`
	OutputDir  string `yaml:"output_dir"`
	Workbook   bool   `yaml:"workbook"`
	Chart      Chart  `yaml:"chart"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		InputDir:   ".",
		Pattern:    "v*.csv",
		SingleFile: "v002.csv",
		OutputDir:  "accuracy_results",
		Chart: Chart{
			Width:  1200,
			Height: 600,
		},
		LogLevel: "info",
	}
}

// Load applies the config file at path (or ProjectFile when path is empty
// and it exists) and then ACCURACY_* environment variables on top of the
// defaults. The second return value is the file that was read, if any.
// Flags are applied by the caller followed by Validate.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("parse config %s: %w", resolved, err)
		}
	} else {
		resolved = ""
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", err
	}

	return &cfg, resolved, nil
}

// resolveConfigPath fails for an explicit path that does not exist.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return path, true, nil
	}

	info, err := os.Stat(ProjectFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, nil
	}
	return ProjectFile, true, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("ACCURACY_INPUT_DIR"); ok {
		c.InputDir = v
	}
	if v, ok := os.LookupEnv("ACCURACY_PATTERN"); ok {
		c.Pattern = v
	}
	if v, ok := os.LookupEnv("ACCURACY_SINGLE_FILE"); ok {
		c.SingleFile = v
	}
	if v, ok := os.LookupEnv("ACCURACY_OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := os.LookupEnv("ACCURACY_WORKBOOK"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ACCURACY_WORKBOOK %q: %w", v, err)
		}
		c.Workbook = enabled
	}
	if v, ok := os.LookupEnv("ACCURACY_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Pattern) == "" {
		return errors.New("pattern must not be empty")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return level, nil
}
