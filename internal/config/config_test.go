package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quantpanel/panel/internal/config"
)

// chtemp moves the test into a fresh temp dir so config.json lookups are
// isolated; cleanup restores the original working directory.
func chtemp(t *testing.T) string {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtemp(t)
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvTimeColumn, "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != config.DefaultFormat {
		t.Errorf("format: got %q", cfg.Format)
	}
	if cfg.TimeColumn != config.DefaultTimeColumn {
		t.Errorf("time column: got %q", cfg.TimeColumn)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("no config.json present, but ConfigPath = %q", cfg.ConfigPath)
	}
	if cfg.DBPath == "" {
		t.Error("expected a default db path under the home directory")
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := chtemp(t)
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvTimeColumn, "")

	f := config.File{
		DefaultFormat: "json",
		TimeColumn:    "dt",
		DBPath:        "/tmp/custom.db",
	}
	if err := config.WriteFile(filepath.Join(dir, config.DefaultConfigFile), f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "json" || cfg.TimeColumn != "dt" || cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.ConfigPath == "" {
		t.Error("ConfigPath should record the loaded file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chtemp(t)
	f := config.File{DBPath: "/tmp/from-file.db", TimeColumn: "dt"}
	if err := config.WriteFile(filepath.Join(dir, config.DefaultConfigFile), f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(config.EnvDBPath, "/tmp/from-env.db")
	t.Setenv(config.EnvTimeColumn, "timestamp")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Errorf("env db path should win: got %q", cfg.DBPath)
	}
	if cfg.TimeColumn != "timestamp" {
		t.Errorf("env time column should win: got %q", cfg.TimeColumn)
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := chtemp(t)
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvTimeColumn, "")

	// Only one field set; the rest keep their defaults.
	f := config.File{DefaultFormat: "csv"}
	if err := config.WriteFile(filepath.Join(dir, config.DefaultConfigFile), f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "csv" {
		t.Errorf("format: got %q", cfg.Format)
	}
	if cfg.TimeColumn != config.DefaultTimeColumn {
		t.Errorf("time column should keep default: got %q", cfg.TimeColumn)
	}
}

func TestLoadIgnoresMalformedFile(t *testing.T) {
	dir := chtemp(t)
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvTimeColumn, "")

	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load should fall back to defaults on a bad file: %v", err)
	}
	if cfg.Format != config.DefaultFormat {
		t.Errorf("format: got %q", cfg.Format)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	dir := chtemp(t)
	path := filepath.Join(dir, "config.json")
	if err := config.WriteFile(path, config.Template()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("config file should end with a newline")
	}
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvTimeColumn, "")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != config.DefaultFormat || cfg.TimeColumn != config.DefaultTimeColumn {
		t.Errorf("template defaults did not round-trip: %+v", cfg)
	}
}
