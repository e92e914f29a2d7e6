package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the shell needs. It is constructed once at
// startup and passed explicitly into the registry, path jail and dispatcher
// constructors rather than living in package-level state.
type Config struct {
	RootDir        string `yaml:"root_dir"`         // jail root for all filesystem commands
	HistoryFile    string `yaml:"history_file"`     // plain-text history, one command per line
	MaxHistorySize int    `yaml:"max_history_size"` // oldest entries dropped beyond this
	MaxPathDepth   int    `yaml:"max_path_depth"`   // component limit for resolved paths
	PromptSymbol   string `yaml:"prompt_symbol"`
	DisableColor   bool   `yaml:"disable_color"`
	CodeMateURL    string `yaml:"codemate_url"`
	UsageDBPath    string `yaml:"usage_db_path"` // sqlite command-usage statistics
}

const (
	defaultMaxHistorySize = 1000
	defaultMaxPathDepth   = 50
	defaultPromptSymbol   = "nlterm> "
	defaultCodeMateURL    = "https://api.codemate.ai/v1"
)

// DefaultConfig returns a configuration rooted at the given directory, with
// the history file and usage database placed in the config directory.
func DefaultConfig(rootDir, configDir string) *Config {
	return &Config{
		RootDir:        rootDir,
		HistoryFile:    filepath.Join(configDir, "history"),
		MaxHistorySize: defaultMaxHistorySize,
		MaxPathDepth:   defaultMaxPathDepth,
		PromptSymbol:   defaultPromptSymbol,
		CodeMateURL:    defaultCodeMateURL,
		UsageDBPath:    filepath.Join(configDir, "usage.db"),
	}
}

// LoadConfig reads ~/.config/nlterm/config.yaml, creating it with defaults on
// first run. A config directory that cannot be created is the one fatal
// startup condition; a malformed file is not, it just falls back to defaults.
func LoadConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}

	configDir := filepath.Join(homeDir, ".config", "nlterm")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %v", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = homeDir
	}

	return loadConfigFile(filepath.Join(configDir, "config.yaml"), DefaultConfig(workDir, configDir))
}

// loadConfigFile merges the on-disk file over the supplied defaults. Missing
// or unreadable files are replaced with a fresh default file, best-effort.
func loadConfigFile(path string, defaults *Config) (*Config, error) {
	cfg := *defaults

	data, err := os.ReadFile(path)
	if err != nil {
		if saveErr := saveConfigFile(path, &cfg); saveErr != nil {
			// The shell still works with in-memory defaults.
			fmt.Fprintf(os.Stderr, "Warning: could not write default config: %v\n", saveErr)
		}
		return &cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring malformed config %s: %v\n", path, err)
		cfg = *defaults
		return &cfg, nil
	}

	// Fill any field the file left at its zero value.
	if cfg.RootDir == "" {
		cfg.RootDir = defaults.RootDir
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = defaults.HistoryFile
	}
	if cfg.MaxHistorySize <= 0 {
		cfg.MaxHistorySize = defaults.MaxHistorySize
	}
	if cfg.MaxPathDepth <= 0 {
		cfg.MaxPathDepth = defaults.MaxPathDepth
	}
	if cfg.PromptSymbol == "" {
		cfg.PromptSymbol = defaults.PromptSymbol
	}
	if cfg.CodeMateURL == "" {
		cfg.CodeMateURL = defaults.CodeMateURL
	}
	if cfg.UsageDBPath == "" {
		cfg.UsageDBPath = defaults.UsageDBPath
	}

	return &cfg, nil
}

func saveConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
