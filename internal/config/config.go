// Package config loads and validates .book2pdf.yaml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-book2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Bounds for numeric settings.
const (
	MaxWorkers        = 16
	MaxRetriesAllowed = 10
	MaxTimeoutSeconds = 600
)

// Config holds all configuration for a download run.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	Cover  CoverConfig  `yaml:"cover"`
	PDF    PDFConfig    `yaml:"pdf"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory (empty = "output_book2pdf")
}

// RenderConfig defines render scheduling options.
// Retries is a pointer so an explicit 0 (no retries) is distinguishable
// from the field being absent.
type RenderConfig struct {
	TimeoutSeconds int  `yaml:"timeoutSeconds"` // Per-page timeout (0 = 30)
	Workers        int  `yaml:"workers"`        // Concurrent browser tabs (0 = auto)
	Retries        *int `yaml:"retries"`        // Retries per retryable failure (nil = 2)
}

// CoverConfig defines cover page options.
type CoverConfig struct {
	Disabled bool `yaml:"disabled"` // Cover is generated unless disabled
}

// PDFConfig defines print-to-PDF export options. Margins are in inches.
type PDFConfig struct {
	Scale        float64 `yaml:"scale"` // 0 = 0.75
	MarginTop    float64 `yaml:"marginTop"`
	MarginRight  float64 `yaml:"marginRight"`
	MarginBottom float64 `yaml:"marginBottom"`
	MarginLeft   float64 `yaml:"marginLeft"`
}

// Validate checks numeric bounds. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if c.Render.TimeoutSeconds < 0 || c.Render.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("%w: render.timeoutSeconds must be between 0 and %d, got %d",
			ErrInvalidValue, MaxTimeoutSeconds, c.Render.TimeoutSeconds)
	}
	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}
	if c.Render.Retries != nil && (*c.Render.Retries < 0 || *c.Render.Retries > MaxRetriesAllowed) {
		return fmt.Errorf("%w: render.retries must be between 0 and %d, got %d",
			ErrInvalidValue, MaxRetriesAllowed, *c.Render.Retries)
	}
	if c.PDF.Scale < 0 || c.PDF.Scale > 2 {
		return fmt.Errorf("%w: pdf.scale must be between 0 and 2, got %.2f",
			ErrInvalidValue, c.PDF.Scale)
	}
	for name, m := range map[string]float64{
		"pdf.marginTop":    c.PDF.MarginTop,
		"pdf.marginRight":  c.PDF.MarginRight,
		"pdf.marginBottom": c.PDF.MarginBottom,
		"pdf.marginLeft":   c.PDF.MarginLeft,
	} {
		if m < 0 || m > 3 {
			return fmt.Errorf("%w: %s must be between 0 and 3 inches, got %.2f",
				ErrInvalidValue, name, m)
		}
	}
	return nil
}

// DefaultConfig returns a neutral configuration: every zero value defers
// to the library's own defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations:
// the working directory first, then the user's home directory.
func resolveConfigPath(name string) (string, error) {
	candidates := []string{name, name + ".yaml", name + ".yml"}

	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	for _, dir := range dirs {
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
}
