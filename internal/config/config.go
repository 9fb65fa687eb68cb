// Package config loads and validates tool configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"md2ieee/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidSuffix   = errors.New("invalid output suffix")
	ErrInvalidCapacity = errors.New("invalid author row capacity")
	ErrInvalidFontSize = errors.New("invalid font size")
)

// Bounds for validated fields.
const (
	MaxSuffixLength   = 30
	MaxRowCapacity    = 8
	MinFontSizePoints = 4
	MaxFontSizePoints = 72
)

// Config holds all configuration for document generation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Paper  PaperConfig  `yaml:"paper"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = beside input)
	Suffix     string `yaml:"suffix"`     // Output file name suffix (default "_IEEE")
}

// PaperConfig defines template overrides for the rendered paper.
// Zero values mean "use the template default".
type PaperConfig struct {
	FontFamily        string `yaml:"fontFamily"`        // default "Times New Roman"
	AuthorRowCapacity int    `yaml:"authorRowCapacity"` // authors per row (default 4)
	TitleSize         int    `yaml:"titleSize"`         // points
	BodySize          int    `yaml:"bodySize"`          // points
	AbstractSize      int    `yaml:"abstractSize"`      // points
	ReferenceSize     int    `yaml:"referenceSize"`     // points
}

// DefaultSuffix is appended to the input stem when no suffix is configured.
const DefaultSuffix = "_IEEE"

// DefaultConfig returns the neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Suffix: DefaultSuffix},
	}
}

// Validate checks configured values against their bounds. Called
// automatically by LoadConfig, but available for consumers who construct
// Config manually.
func (c *Config) Validate() error {
	if len(c.Output.Suffix) > MaxSuffixLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidSuffix, len(c.Output.Suffix), MaxSuffixLength)
	}
	if strings.ContainsAny(c.Output.Suffix, "/\\\x00") {
		return fmt.Errorf("%w: contains path separator", ErrInvalidSuffix)
	}
	if c.Paper.AuthorRowCapacity < 0 || c.Paper.AuthorRowCapacity > MaxRowCapacity {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidCapacity, c.Paper.AuthorRowCapacity, MaxRowCapacity)
	}
	for _, size := range []struct {
		name string
		pt   int
	}{
		{"paper.titleSize", c.Paper.TitleSize},
		{"paper.bodySize", c.Paper.BodySize},
		{"paper.abstractSize", c.Paper.AbstractSize},
		{"paper.referenceSize", c.Paper.ReferenceSize},
	} {
		if size.pt == 0 {
			continue
		}
		if size.pt < MinFontSizePoints || size.pt > MaxFontSizePoints {
			return fmt.Errorf("%w: %s = %d (must be %d-%d)",
				ErrInvalidFontSize, size.name, size.pt, MinFontSizePoints, MaxFontSizePoints)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent fallback).
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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = DefaultSuffix
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions in order: .yaml, .yml.
// Tries locations in order: current directory, <UserConfigDir>/md2ieee/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "md2ieee", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
