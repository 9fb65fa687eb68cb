package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Output.Suffix != DefaultSuffix {
		t.Errorf("default suffix = %q, want %q", cfg.Output.Suffix, DefaultSuffix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid custom values",
			mutate:  func(c *Config) { c.Paper.AuthorRowCapacity = 3; c.Paper.BodySize = 11 },
			wantErr: nil,
		},
		{
			name:    "suffix too long",
			mutate:  func(c *Config) { c.Output.Suffix = strings.Repeat("x", MaxSuffixLength+1) },
			wantErr: ErrInvalidSuffix,
		},
		{
			name:    "suffix with path separator",
			mutate:  func(c *Config) { c.Output.Suffix = "a/b" },
			wantErr: ErrInvalidSuffix,
		},
		{
			name:    "capacity too large",
			mutate:  func(c *Config) { c.Paper.AuthorRowCapacity = MaxRowCapacity + 1 },
			wantErr: ErrInvalidCapacity,
		},
		{
			name:    "font size too small",
			mutate:  func(c *Config) { c.Paper.TitleSize = MinFontSizePoints - 1 },
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "font size too large",
			mutate:  func(c *Config) { c.Paper.ReferenceSize = MaxFontSizePoints + 1 },
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "zero sizes mean defaults",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "paper.yaml")
	content := `
output:
  suffix: "_conf"
paper:
  authorRowCapacity: 3
  bodySize: 11
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Output.Suffix != "_conf" {
		t.Errorf("suffix = %q, want %q", cfg.Output.Suffix, "_conf")
	}
	if cfg.Paper.AuthorRowCapacity != 3 {
		t.Errorf("capacity = %d, want 3", cfg.Paper.AuthorRowCapacity)
	}
	if cfg.Paper.BodySize != 11 {
		t.Errorf("body size = %d, want 11", cfg.Paper.BodySize)
	}
}

func TestLoadConfigDefaultsOmittedSuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	if err := os.WriteFile(path, []byte("paper:\n  bodySize: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Output.Suffix != DefaultSuffix {
		t.Errorf("suffix = %q, want default %q", cfg.Output.Suffix, DefaultSuffix)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("nonsense: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(path, []byte("paper:\n  titleSize: 500\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidFontSize) {
			t.Errorf("error = %v, want ErrInvalidFontSize", err)
		}
	})
}
