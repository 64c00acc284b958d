// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"roster-scan/internal/extract"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		OutputDir     string `yaml:"output_dir"`
		Workers       int    `yaml:"workers"`
		StartPage     int    `yaml:"start_page"`
		Verbose       bool   `yaml:"verbose"`
		Debug         bool   `yaml:"debug"`
		NoColor       bool   `yaml:"no_color"`
		FailOnMissing bool   `yaml:"fail_on_missing"`
	} `yaml:"defaults"`

	// Extraction limits applied when segmenting and validating entries.
	// A zero value keeps the built-in limit.
	Limits struct {
		MinLines      int `yaml:"min_lines"`
		MaxLines      int `yaml:"max_lines"`
		MaxLineLength int `yaml:"max_line_length"`
		MinIDLength   int `yaml:"min_id_length"`
		MaxIDLength   int `yaml:"max_id_length"`
	} `yaml:"limits"`

	// Normalization substitutions added on top of the built-in set.
	Substitutions map[string]string `yaml:"substitutions"`

	// Scanner keywords added to the built-in exclusion list.
	ScannerKeywords []string `yaml:"scanner_keywords"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Substitutions: make(map[string]string),
	}

	// Set default values
	config.Defaults.OutputDir = "."
	config.Defaults.Workers = runtime.NumCPU()
	config.Defaults.StartPage = 1
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.FailOnMissing = false

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultWorkers := config.Defaults.Workers
	defaultStartPage := config.Defaults.StartPage

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if the file left numeric fields unset.
	if config.Defaults.Workers <= 0 {
		config.Defaults.Workers = defaultWorkers
	}
	if config.Defaults.StartPage <= 0 {
		config.Defaults.StartPage = defaultStartPage
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ExtractionLimits merges the configured limits over the built-in ones.
// Zero-valued fields keep the built-in limit.
func (c *Config) ExtractionLimits() extract.Limits {
	limits := extract.DefaultLimits()
	if c.Limits.MinLines > 0 {
		limits.MinLines = c.Limits.MinLines
	}
	if c.Limits.MaxLines > 0 {
		limits.MaxLines = c.Limits.MaxLines
	}
	if c.Limits.MaxLineLength > 0 {
		limits.MaxLineLength = c.Limits.MaxLineLength
	}
	if c.Limits.MinIDLength > 0 {
		limits.MinIDLength = c.Limits.MinIDLength
	}
	if c.Limits.MaxIDLength > 0 {
		limits.MaxIDLength = c.Limits.MaxIDLength
	}
	return limits
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first
	if fileExists("roster-scan.yaml") {
		return "roster-scan.yaml"
	}
	if fileExists("roster-scan.yml") {
		return "roster-scan.yml"
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeConfig := filepath.Join(home, ".roster-scan.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}
	homeConfig = filepath.Join(home, ".roster-scan.yml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && !info.IsDir()
}

// ValidateConfig validates the loaded configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Limits.MinLines > 0 && config.Limits.MaxLines > 0 &&
		config.Limits.MinLines > config.Limits.MaxLines {
		return fmt.Errorf("limits: min_lines (%d) exceeds max_lines (%d)",
			config.Limits.MinLines, config.Limits.MaxLines)
	}
	if config.Limits.MinIDLength > 0 && config.Limits.MaxIDLength > 0 &&
		config.Limits.MinIDLength > config.Limits.MaxIDLength {
		return fmt.Errorf("limits: min_id_length (%d) exceeds max_id_length (%d)",
			config.Limits.MinIDLength, config.Limits.MaxIDLength)
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults — callers should not crash on a missing/bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
