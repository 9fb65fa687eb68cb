// Package assemble groups classified lines into the document model. It
// applies the join rules: author and affiliation grouping, per-source-line
// paragraphs, reference continuation joining, and the special handling of
// the Abstract and Keywords sections.
package assemble

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"md2ieee/internal/document"
	"md2ieee/internal/richtext"
	"md2ieee/internal/scan"
)

// Structural violations abort document construction with no partial output.
var (
	ErrDuplicateTitle = errors.New("document has more than one title")
	ErrTitleAfterBody = errors.New("title appears after body content")
)

// displayEquation matches a whole-line $$...$$ expression. An unclosed $$
// fails the match and the line degrades to ordinary paragraph text.
var displayEquation = regexp.MustCompile(`^\$\$(.+)\$\$$`)

// special section kinds recognized by heading text.
const (
	specialNone     = ""
	specialAbstract = "abstract"
	specialKeywords = "keywords"
)

// assembler carries the grouping state for one document.
type assembler struct {
	doc      document.Document
	warnings []document.Warning

	titleSet    bool
	bodyStarted bool
	special     string

	abstractParts []string

	refOpen  bool
	refIndex int
	refParts []string
	refCount int
}

// Assemble builds the document model from the classified line stream.
// Recoverable conditions are reported as warnings; only structural
// violations return an error, and then no document is returned.
func Assemble(lines []scan.Line) (*document.Document, []document.Warning, error) {
	a := &assembler{}
	for _, ln := range lines {
		if err := a.consume(ln); err != nil {
			return nil, nil, err
		}
	}
	a.flushReference()
	a.flushAbstract()
	return &a.doc, a.warnings, nil
}

func (a *assembler) consume(ln scan.Line) error {
	// Abstract and Keywords swallow every content line until the next
	// heading; their bodies are not ordinary blocks.
	if a.special != specialNone && isContent(ln.Tag) {
		if a.special == specialAbstract {
			a.abstractParts = append(a.abstractParts, strings.TrimSpace(ln.Raw))
		} else {
			a.addKeywords(ln.Text)
		}
		return nil
	}

	switch ln.Tag {
	case scan.Blank, scan.Rule:
		// A blank line terminates an open reference entry; rules are
		// visual separators with no model counterpart.
		a.flushReference()

	case scan.Discarded:
		// Pre-heading content, dropped.

	case scan.Title:
		if a.bodyStarted {
			return fmt.Errorf("%w (line %d)", ErrTitleAfterBody, ln.Index)
		}
		if a.titleSet {
			return fmt.Errorf("%w (line %d)", ErrDuplicateTitle, ln.Index)
		}
		a.doc.Title = richtext.Resolve(ln.Text)
		a.titleSet = true

	case scan.AuthorName:
		a.doc.Authors = append(a.doc.Authors, document.Author{
			Name: richtext.Resolve(ln.Text),
		})

	case scan.Affiliation:
		// The classifier guarantees adjacency to an author line.
		last := &a.doc.Authors[len(a.doc.Authors)-1]
		last.Affiliations = append(last.Affiliations, richtext.Resolve(ln.Text))

	case scan.SectionHeading:
		a.bodyStarted = true
		switch {
		case strings.EqualFold(ln.Text, "Abstract"):
			a.special = specialAbstract
		case strings.EqualFold(ln.Text, "Keywords"):
			a.special = specialKeywords
		default:
			a.special = specialNone
			a.flushAbstract()
			a.doc.Blocks = append(a.doc.Blocks, &document.SectionHeading{
				Text: richtext.Resolve(ln.Text),
			})
		}

	case scan.SubsectionHeading:
		a.bodyStarted = true
		a.special = specialNone
		a.flushAbstract()
		a.doc.Blocks = append(a.doc.Blocks, &document.SubsectionHeading{
			Text: richtext.Resolve(ln.Text),
		})

	case scan.ReferencesHeading:
		a.bodyStarted = true
		a.special = specialNone
		a.flushAbstract()

	case scan.ReferenceHead:
		a.flushReference()
		a.refOpen = true
		a.refIndex = ln.Number
		a.refParts = a.refParts[:0]
		if ln.Text != "" {
			a.refParts = append(a.refParts, ln.Text)
		}
		a.refCount++
		if ln.Number != a.refCount {
			a.warnings = append(a.warnings, document.Warning{
				Code: document.WarnReferenceIndexMismatch,
				Line: ln.Index,
				Message: fmt.Sprintf("reference declares index [%d] but is entry %d",
					ln.Number, a.refCount),
			})
		}

	case scan.ReferenceContinuation:
		if a.refOpen {
			a.refParts = append(a.refParts, ln.Text)
		}
		// A continuation with no open entry has nothing to attach to.

	case scan.BoldLabel:
		a.appendBlock(&document.BoldLabelParagraph{
			Label: ln.Label,
			Text:  richtext.Resolve(ln.Text),
		})

	case scan.NumberedLabel:
		a.appendBlock(&document.NumberedLabelItem{
			Number: ln.Number,
			Label:  ln.Label,
			Text:   richtext.Resolve(ln.Text),
		})

	case scan.Bullet:
		a.appendBlock(&document.BulletItem{Text: richtext.Resolve(ln.Text)})

	case scan.Quote:
		a.appendBlock(&document.Quote{Text: richtext.Resolve(ln.Text)})

	case scan.Paragraph:
		if m := displayEquation.FindStringSubmatch(ln.Text); m != nil {
			a.appendBlock(&document.DisplayEquation{
				Expression: richtext.Resolve(m[1]),
			})
			return nil
		}
		a.appendBlock(&document.Paragraph{Text: richtext.Resolve(ln.Text)})
	}
	return nil
}

// appendBlock records a body block and marks the body as started.
func (a *assembler) appendBlock(b document.Block) {
	a.bodyStarted = true
	a.doc.Blocks = append(a.doc.Blocks, b)
}

// flushReference closes the open reference entry, joining continuation
// lines with a single space.
func (a *assembler) flushReference() {
	if !a.refOpen {
		return
	}
	a.doc.References = append(a.doc.References, document.ReferenceEntry{
		Index: a.refIndex,
		Text:  richtext.Resolve(strings.Join(a.refParts, " ")),
	})
	a.refOpen = false
}

// flushAbstract resolves the collected abstract lines into one block of
// text, joined with single spaces.
func (a *assembler) flushAbstract() {
	if len(a.abstractParts) == 0 {
		return
	}
	a.doc.Abstract = richtext.Resolve(strings.Join(a.abstractParts, " "))
	a.abstractParts = nil
}

// addKeywords splits a keywords line into comma-delimited terms.
func (a *assembler) addKeywords(text string) {
	resolved := richtext.Resolve(text).String()
	for _, term := range strings.Split(resolved, ",") {
		term = strings.TrimSpace(term)
		if term != "" {
			a.doc.Keywords = append(a.doc.Keywords, term)
		}
	}
}

// isContent reports whether a tag carries body text that Abstract and
// Keywords sections absorb.
func isContent(t scan.Tag) bool {
	switch t {
	case scan.Paragraph, scan.Bullet, scan.Quote, scan.BoldLabel, scan.NumberedLabel:
		return true
	}
	return false
}
