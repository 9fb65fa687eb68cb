// Package render serializes the resolved paper model into a DOCX file
// styled after the IEEE conference template.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"md2ieee/internal/document"
	"md2ieee/internal/richtext"
)

// ErrNilDocument is returned when rendering is attempted on a nil model.
var ErrNilDocument = errors.New("render: nil document")

// Template metrics in points. Overridable through Options; the zero
// Options value renders the stock template.
const (
	DefaultFontFamily      = "Times New Roman"
	DefaultTitleSize       = 24
	DefaultAuthorSize      = 11
	DefaultAffiliationSize = 9
	DefaultAbstractSize    = 9
	DefaultBodySize        = 10
	DefaultReferenceSize   = 8
)

// Options overrides template metrics. Zero fields keep the defaults.
type Options struct {
	FontFamily        string
	AuthorRowCapacity int
	TitleSize         int
	BodySize          int
	AbstractSize      int
	ReferenceSize     int
}

func (o Options) withDefaults() Options {
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.AuthorRowCapacity <= 0 {
		o.AuthorRowCapacity = document.AuthorRowCapacity
	}
	if o.TitleSize <= 0 {
		o.TitleSize = DefaultTitleSize
	}
	if o.BodySize <= 0 {
		o.BodySize = DefaultBodySize
	}
	if o.AbstractSize <= 0 {
		o.AbstractSize = DefaultAbstractSize
	}
	if o.ReferenceSize <= 0 {
		o.ReferenceSize = DefaultReferenceSize
	}
	return o
}

// Renderer writes documents as DOCX bytes. Safe for reuse; each Render
// call builds a fresh file.
type Renderer struct {
	opts Options
}

// New returns a renderer with opts applied over the template defaults.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts.withDefaults()}
}

// Render serializes doc into a complete DOCX file.
func (r *Renderer) Render(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo serializes doc into w.
func (r *Renderer) RenderTo(w io.Writer, doc *document.Document) error {
	if doc == nil {
		return ErrNilDocument
	}

	file := docx.New().WithDefaultTheme()

	r.renderFrontMatter(file, doc)
	for _, blk := range doc.Blocks {
		r.renderBlock(file, blk)
	}
	r.renderReferences(file, doc.References)

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("render: writing docx: %w", err)
	}
	return nil
}

func (r *Renderer) renderFrontMatter(file *docx.Docx, doc *document.Document) {
	if !doc.Title.IsZero() {
		p := file.AddParagraph().Justification("center")
		r.writeRuns(p, doc.Title, r.opts.TitleSize, baseStyle{})
	}

	// Authors flow in rows of at most AuthorRowCapacity, each author
	// followed by its affiliation lines.
	for _, row := range document.AuthorRows(doc.Authors, r.opts.AuthorRowCapacity) {
		for _, author := range row {
			p := file.AddParagraph().Justification("center")
			r.writeRuns(p, author.Name, DefaultAuthorSize, baseStyle{})
			for _, affil := range author.Affiliations {
				ap := file.AddParagraph().Justification("center")
				r.writeRuns(ap, affil, DefaultAffiliationSize, baseStyle{italic: true})
			}
		}
	}

	if !doc.Abstract.IsZero() {
		p := file.AddParagraph().Justification("both")
		r.addText(p, "Abstract—", r.opts.AbstractSize, baseStyle{bold: true})
		r.writeRuns(p, doc.Abstract, r.opts.AbstractSize, baseStyle{bold: true})
	}

	if len(doc.Keywords) > 0 {
		p := file.AddParagraph().Justification("both")
		style := baseStyle{bold: true, italic: true}
		r.addText(p, "Keywords—", r.opts.AbstractSize, style)
		r.addText(p, strings.Join(doc.Keywords, ", "), r.opts.AbstractSize, style)
	}
}

func (r *Renderer) renderBlock(file *docx.Docx, blk document.Block) {
	switch b := blk.(type) {
	case *document.SectionHeading:
		p := file.AddParagraph().Justification("center")
		r.addText(p, document.Roman(b.Number)+". ", r.opts.BodySize, baseStyle{})
		r.writeRuns(p, b.Text, r.opts.BodySize, baseStyle{})

	case *document.SubsectionHeading:
		p := file.AddParagraph().Justification("start")
		style := baseStyle{italic: true}
		r.addText(p, document.Letter(b.Number)+". ", r.opts.BodySize, style)
		r.writeRuns(p, b.Text, r.opts.BodySize, style)

	case *document.Paragraph:
		p := file.AddParagraph().Justification("both")
		r.writeRuns(p, b.Text, r.opts.BodySize, baseStyle{})

	case *document.BoldLabelParagraph:
		p := file.AddParagraph().Justification("both")
		r.addText(p, b.Label+" ", r.opts.BodySize, baseStyle{bold: true})
		r.writeRuns(p, b.Text, r.opts.BodySize, baseStyle{})

	case *document.NumberedLabelItem:
		p := file.AddParagraph().Justification("both")
		r.addText(p, strconv.Itoa(b.Number)+". ", r.opts.BodySize, baseStyle{})
		r.addText(p, b.Label+" ", r.opts.BodySize, baseStyle{bold: true})
		r.writeRuns(p, b.Text, r.opts.BodySize, baseStyle{})

	case *document.BulletItem:
		p := file.AddParagraph().Justification("start")
		r.addText(p, "• ", r.opts.BodySize, baseStyle{})
		r.writeRuns(p, b.Text, r.opts.BodySize, baseStyle{})

	case *document.Quote:
		p := file.AddParagraph().Justification("start")
		r.writeRuns(p, b.Text, r.opts.BodySize, baseStyle{italic: true})

	case *document.DisplayEquation:
		p := file.AddParagraph().Justification("center")
		r.writeRuns(p, b.Expression, r.opts.BodySize, baseStyle{})
		r.addText(p, "  ("+strconv.Itoa(b.Number)+")", r.opts.BodySize, baseStyle{})
	}
}

func (r *Renderer) renderReferences(file *docx.Docx, refs []document.ReferenceEntry) {
	if len(refs) == 0 {
		return
	}
	hp := file.AddParagraph().Justification("center")
	r.addText(hp, "References", r.opts.BodySize, baseStyle{})

	for _, ref := range refs {
		p := file.AddParagraph().Justification("both")
		r.addText(p, "["+strconv.Itoa(ref.Index)+"] ", r.opts.ReferenceSize, baseStyle{})
		r.writeRuns(p, ref.Text, r.opts.ReferenceSize, baseStyle{})
	}
}

// baseStyle is the block-level emphasis floor. Span emphasis layers on
// top; an upright span suppresses italics.
type baseStyle struct {
	bold   bool
	italic bool
}

// writeRuns emits one run per span with the merged styling.
func (r *Renderer) writeRuns(p *docx.Paragraph, rt richtext.RichText, sizePt int, base baseStyle) {
	for _, sp := range rt {
		if sp.Text == "" {
			continue
		}
		bold := base.bold || sp.Emphasis == richtext.Bold || sp.Emphasis == richtext.BoldItalic
		italic := base.italic || sp.Emphasis == richtext.Italic || sp.Emphasis == richtext.BoldItalic
		if sp.Upright {
			italic = false
		}
		run := p.AddText(sp.Text).
			Size(halfPoints(sizePt)).
			Font(r.opts.FontFamily, "", r.opts.FontFamily, "")
		if bold {
			run.Bold()
		}
		if italic {
			run.Italic()
		}
	}
}

// addText emits a single plain-text run.
func (r *Renderer) addText(p *docx.Paragraph, text string, sizePt int, base baseStyle) {
	run := p.AddText(text).
		Size(halfPoints(sizePt)).
		Font(r.opts.FontFamily, "", r.opts.FontFamily, "")
	if base.bold {
		run.Bold()
	}
	if base.italic {
		run.Italic()
	}
}

// halfPoints converts a point size to the half-point string form the DOCX
// run properties expect.
func halfPoints(pt int) string {
	return strconv.Itoa(pt * 2)
}
