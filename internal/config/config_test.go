package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/transcript-accuracy/internal/config"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if cfg.InputDir != "." || cfg.Pattern != "v*.csv" || cfg.SingleFile != "v002.csv" {
		t.Errorf("unexpected input defaults: %+v", cfg)
	}
	if cfg.OutputDir != "accuracy_results" {
		t.Errorf("expected output dir accuracy_results, got %q", cfg.OutputDir)
	}
	if cfg.Workbook {
		t.Error("expected workbook export disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, path, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config file, got %q", path)
	}
	if *cfg != config.Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(config.ProjectFile, []byte("pattern: \"t*.csv\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, path, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != config.ProjectFile {
		t.Errorf("expected %s, got %q", config.ProjectFile, path)
	}
	if cfg.Pattern != "t*.csv" {
		t.Errorf("expected pattern from file, got %q", cfg.Pattern)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
input_dir: /data/transcripts
output_dir: out
workbook: true
chart:
  width: 800
log_level: debug
`)

	cfg, resolved, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if resolved != path {
		t.Errorf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.InputDir != "/data/transcripts" || cfg.OutputDir != "out" || !cfg.Workbook {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Height != 600 {
		t.Errorf("expected 800x600 chart, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Pattern != "v*.csv" {
		t.Errorf("unset keys should keep defaults, got pattern %q", cfg.Pattern)
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v (%v)", level, err)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "chart: [unterminated\n")
	if _, _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "pattern: \"file*.csv\"\noutput_dir: from-file\n")
	t.Setenv("ACCURACY_PATTERN", "env*.csv")
	t.Setenv("ACCURACY_WORKBOOK", "true")

	cfg, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pattern != "env*.csv" {
		t.Errorf("expected env pattern, got %q", cfg.Pattern)
	}
	if cfg.OutputDir != "from-file" {
		t.Errorf("expected file output dir, got %q", cfg.OutputDir)
	}
	if !cfg.Workbook {
		t.Error("expected workbook enabled from env")
	}
}

func TestInvalidWorkbookEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ACCURACY_WORKBOOK", "sometimes")

	if _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error for invalid ACCURACY_WORKBOOK")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"empty pattern", func(c *config.Config) { c.Pattern = " " }},
		{"malformed pattern", func(c *config.Config) { c.Pattern = "v[*.csv" }},
		{"empty output dir", func(c *config.Config) { c.OutputDir = "" }},
		{"zero chart width", func(c *config.Config) { c.Chart.Width = 0 }},
		{"negative chart height", func(c *config.Config) { c.Chart.Height = -1 }},
		{"unknown log level", func(c *config.Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
