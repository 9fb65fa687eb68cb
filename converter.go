package md2ieee

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"md2ieee/internal/assemble"
	"md2ieee/internal/number"
	"md2ieee/internal/render"
	"md2ieee/internal/scan"
)

// Converter orchestrates the markup-to-paper pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
type Converter struct {
	cfg converterConfig
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ConvertResult carries the outcome of one conversion. Paper is always
// populated on success; DOCX is empty when Input.ModelOnly is set.
type ConvertResult struct {
	Paper    *Document
	Warnings []Warning
	DOCX     []byte
}

// Convert runs the full pipeline and returns the resolved model and the
// rendered DOCX bytes. The context is used for cancellation and timeout.
// If input.ModelOnly is true, DOCX generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	// Classify source lines
	lines := classifyLines(normalizeMarkup(input.Markup))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Assemble the document model
	doc, warnings, err := assemble.Assemble(lines)
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	// Assign positional numbers
	warnings = append(warnings, number.Apply(doc)...)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ConvertResult{
		Paper:    doc,
		Warnings: warnings,
	}

	// Skip DOCX generation if ModelOnly mode
	if input.ModelOnly {
		return res, nil
	}

	docxBytes, err := render.New(renderOptions(input.Paper)).Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	res.DOCX = docxBytes
	return res, nil
}

// Close releases resources. The pipeline holds none; Close exists so the
// Converter follows the same lifecycle as pooled use expects.
func (c *Converter) Close() error {
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their settings validated earlier at config load time.
// Both paths converge here, ensuring all inputs are validated before processing.
func (c *Converter) validateInput(input Input) error {
	if input.Markup == "" {
		return ErrEmptyMarkup
	}
	if err := input.Paper.Validate(); err != nil {
		return err
	}
	return nil
}

// normalizeMarkup canonicalizes line endings and applies Unicode NFC so
// composed and decomposed forms of the same character classify identically.
func normalizeMarkup(markup string) string {
	markup = strings.ReplaceAll(markup, "\r\n", "\n")
	markup = strings.ReplaceAll(markup, "\r", "\n")
	return norm.NFC.String(markup)
}

// classifyLines runs the line classifier over the whole source.
func classifyLines(markup string) []scan.Line {
	classifier := scan.NewClassifier()
	raw := strings.Split(markup, "\n")
	lines := make([]scan.Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, classifier.Classify(r))
	}
	return lines
}

// renderOptions maps public paper settings onto the renderer's options.
func renderOptions(p *PaperSettings) render.Options {
	if p == nil {
		return render.Options{}
	}
	return render.Options{
		FontFamily:        p.FontFamily,
		AuthorRowCapacity: p.AuthorsPerRow,
		TitleSize:         p.TitleSize,
		BodySize:          p.BodySize,
		AbstractSize:      p.AbstractSize,
		ReferenceSize:     p.ReferenceSize,
	}
}
