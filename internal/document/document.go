// Package document defines the resolved paper model produced by the parsing
// pipeline and consumed by the rendering backend.
package document

import (
	"strings"

	"md2ieee/internal/richtext"
)

// AuthorRowCapacity is the fixed number of author columns per row in the
// paper template. Five authors wrap into rows of four and one.
const AuthorRowCapacity = 4

// Document is the root of the resolved model. Front matter precedes all
// body blocks; references, when present, are the terminal group. The
// document exclusively owns every descendant.
type Document struct {
	Title    richtext.RichText
	Authors  []Author
	Abstract richtext.RichText
	Keywords []string

	Blocks     []Block
	References []ReferenceEntry
}

// Author is a front-matter author with its affiliation lines. Affiliation
// lines attach to the most recently started author.
type Author struct {
	Name         richtext.RichText
	Affiliations []richtext.RichText
}

// ReferenceEntry is one bibliography entry. Index is the declared bracket
// number from the source; it is trusted as written, never renumbered.
type ReferenceEntry struct {
	Index int
	Text  richtext.RichText
}

// Block is one structural unit of the paper body. The set of
// implementations is closed; renderers switch exhaustively over it.
type Block interface {
	block()
}

// SectionHeading is a numbered top-level heading. Number is assigned
// positionally by the numbering pass, never taken from source text.
type SectionHeading struct {
	Text   richtext.RichText
	Number int // 1-based; rendered as a Roman numeral
}

// SubsectionHeading is a numbered second-level heading. Number resets at
// each new section and renders as a capital letter.
type SubsectionHeading struct {
	Text    richtext.RichText
	Number  int // 1-based within the owning section
	Section int // owning section number; 0 for orphan subsections
}

// Paragraph is one body paragraph. Source-line granularity: consecutive
// non-blank plain lines are separate paragraphs, never merged.
type Paragraph struct {
	Text richtext.RichText
}

// BoldLabelParagraph is a paragraph led by a bold "Label:" run.
type BoldLabelParagraph struct {
	Label string
	Text  richtext.RichText
}

// NumberedLabelItem is a list item of the form "N. Label rest" with a bold
// label. The number is taken from source, not assigned.
type NumberedLabelItem struct {
	Number int
	Label  string
	Text   richtext.RichText
}

// BulletItem is one unordered list item.
type BulletItem struct {
	Text richtext.RichText
}

// Quote is a block quotation, rendered indented and italic.
type Quote struct {
	Text richtext.RichText
}

// DisplayEquation is a centered standalone equation. Number is global and
// monotonic across the whole document, assigned by the numbering pass.
type DisplayEquation struct {
	Expression richtext.RichText
	Number     int
}

func (*SectionHeading) block()     {}
func (*SubsectionHeading) block()  {}
func (*Paragraph) block()          {}
func (*BoldLabelParagraph) block() {}
func (*NumberedLabelItem) block()  {}
func (*BulletItem) block()         {}
func (*Quote) block()              {}
func (*DisplayEquation) block()    {}

// Warning codes reported by the pipeline.
const (
	WarnOrphanSubsection       = "orphan-subsection"
	WarnReferenceIndexMismatch = "reference-index-mismatch"
)

// Warning is a recoverable condition encountered during conversion.
// Warnings accumulate on the conversion result in source order and never
// appear inside the model itself.
type Warning struct {
	Code    string
	Line    int // 1-based source line, 0 if not line-specific
	Message string
}

// romanValues drives Roman numeral construction, largest value first.
var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman renders n as an uppercase Roman numeral. Values below 1 yield "".
func Roman(n int) string {
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}

// Letter renders n as a capital letter: 1 is A, 2 is B. Values outside
// 1..26 wrap around rather than fail; subsection counts never get there in
// practice.
func Letter(n int) string {
	if n < 1 {
		return ""
	}
	return string(rune('A' + (n-1)%26))
}

// AuthorRows splits authors into render rows of at most capacity columns.
// A non-positive capacity falls back to AuthorRowCapacity.
func AuthorRows(authors []Author, capacity int) [][]Author {
	if capacity <= 0 {
		capacity = AuthorRowCapacity
	}
	var rows [][]Author
	for start := 0; start < len(authors); start += capacity {
		end := start + capacity
		if end > len(authors) {
			end = len(authors)
		}
		rows = append(rows, authors[start:end])
	}
	return rows
}
