package md2ieee

import (
	"fmt"
	"time"
)

// Font size bounds in points.
const (
	MinFontSize = 4
	MaxFontSize = 72
)

// MaxAuthorsPerRow caps the author columns in the front matter.
const MaxAuthorsPerRow = 8

// PaperSettings overrides the rendered template metrics. Zero fields keep
// the template defaults.
type PaperSettings struct {
	FontFamily    string // default "Times New Roman"
	AuthorsPerRow int    // authors per front-matter row (default 4)
	TitleSize     int    // points
	BodySize      int    // points
	AbstractSize  int    // points
	ReferenceSize int    // points
}

// Validate checks that paper settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PaperSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.AuthorsPerRow < 0 || p.AuthorsPerRow > MaxAuthorsPerRow {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidAuthorsPerRow, p.AuthorsPerRow, MaxAuthorsPerRow)
	}

	for _, size := range []int{p.TitleSize, p.BodySize, p.AbstractSize, p.ReferenceSize} {
		if size == 0 {
			continue
		}
		if size < MinFontSize || size > MaxFontSize {
			return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidFontSize, size, MinFontSize, MaxFontSize)
		}
	}

	return nil
}

// Input contains conversion parameters.
type Input struct {
	Markup    string         // Source document content (required)
	Paper     *PaperSettings // Template overrides (optional, nil = defaults)
	ModelOnly bool           // Skip DOCX generation, return only the model
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout time.Duration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2ieee: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}
