package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFileCreatesDefaults(t *testing.T) {
	dir, err := os.MkdirTemp("", "nlterm-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	defaults := DefaultConfig("/sandbox", dir)

	cfg, err := loadConfigFile(path, defaults)
	if err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}
	if cfg.RootDir != "/sandbox" {
		t.Errorf("RootDir = %q", cfg.RootDir)
	}
	if cfg.MaxHistorySize != defaultMaxHistorySize {
		t.Errorf("MaxHistorySize = %d", cfg.MaxHistorySize)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Default config file not written: %v", err)
	}
}

func TestLoadConfigFileMergesOverDefaults(t *testing.T) {
	dir, err := os.MkdirTemp("", "nlterm-config-merge")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	content := "max_history_size: 25\nprompt_symbol: \"$ \"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	cfg, err := loadConfigFile(path, DefaultConfig("/sandbox", dir))
	if err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}
	if cfg.MaxHistorySize != 25 {
		t.Errorf("MaxHistorySize = %d, want 25", cfg.MaxHistorySize)
	}
	if cfg.PromptSymbol != "$ " {
		t.Errorf("PromptSymbol = %q", cfg.PromptSymbol)
	}
	// Unset fields keep their defaults.
	if cfg.RootDir != "/sandbox" {
		t.Errorf("RootDir = %q, want default", cfg.RootDir)
	}
	if cfg.MaxPathDepth != defaultMaxPathDepth {
		t.Errorf("MaxPathDepth = %d, want default", cfg.MaxPathDepth)
	}
}

func TestLoadConfigFileMalformedFallsBack(t *testing.T) {
	dir, err := os.MkdirTemp("", "nlterm-config-bad")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{{{not yaml"), 0644); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	cfg, err := loadConfigFile(path, DefaultConfig("/sandbox", dir))
	if err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}
	if cfg.MaxHistorySize != defaultMaxHistorySize || cfg.RootDir != "/sandbox" {
		t.Errorf("Malformed config did not fall back to defaults: %+v", cfg)
	}
}

func TestSaveConfigFileRoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "nlterm-config-save")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	original := DefaultConfig("/sandbox", dir)
	original.MaxHistorySize = 123
	original.DisableColor = true

	if err := saveConfigFile(path, original); err != nil {
		t.Fatalf("saveConfigFile failed: %v", err)
	}

	loaded, err := loadConfigFile(path, DefaultConfig("/other", dir))
	if err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}
	if loaded.MaxHistorySize != 123 || !loaded.DisableColor || loaded.RootDir != "/sandbox" {
		t.Errorf("Round trip lost values: %+v", loaded)
	}
}
