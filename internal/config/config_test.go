package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Extensions) == 0 {
		t.Error("Extensions should not be empty")
	}
	if len(cfg.SkipDirs) == 0 {
		t.Error("SkipDirs should not be empty")
	}
	if cfg.MaxWorkers != 0 {
		t.Errorf("MaxWorkers = %d, want 0 (derive from parallelism)", cfg.MaxWorkers)
	}
	if cfg.FailOnUnused {
		t.Error("FailOnUnused should be off by default")
	}
	if !cfg.History.Enabled {
		t.Error("History should be enabled by default")
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("Logging defaults = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, unknown, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown keys = %v, want none", unknown)
	}
	if cfg.Logging.Format != "human" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "extensions": [".rb"],
  "maxWorkers": 4,
  "failOnUnused": true
}`
	if err := os.WriteFile(filepath.Join(dir, "ripple.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, unknown, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown keys = %v", unknown)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".rb" {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if cfg.MaxWorkers != 4 {
		t.Errorf("MaxWorkers = %d, want 4", cfg.MaxWorkers)
	}
	if !cfg.FailOnUnused {
		t.Error("FailOnUnused should be true")
	}
}

func TestLoadConfig_UnrecognizedKeysSurfaced(t *testing.T) {
	dir := t.TempDir()
	content := `{"maxWorkers": 2, "colour": "blue"}`
	if err := os.WriteFile(filepath.Join(dir, "ripple.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, unknown, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MaxWorkers != 2 {
		t.Errorf("MaxWorkers = %d, want 2", cfg.MaxWorkers)
	}
	if len(unknown) != 1 || unknown[0] != "colour" {
		t.Errorf("unknown = %v, want [colour]", unknown)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"negative workers", func(c *Config) { c.MaxWorkers = -1 }, true},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"js"} }, true},
		{"bad logging format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.MaxWorkers = 3

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, _, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.MaxWorkers != 3 {
		t.Errorf("MaxWorkers = %d, want 3", loaded.MaxWorkers)
	}
}
