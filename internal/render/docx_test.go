package render

import (
	"bytes"
	"errors"
	"testing"

	"md2ieee/internal/document"
	"md2ieee/internal/richtext"
)

func sampleDocument() *document.Document {
	doc := &document.Document{
		Title: richtext.Plain("A Study of Things"),
		Authors: []document.Author{
			{
				Name:         richtext.Plain("Jane Doe"),
				Affiliations: []richtext.RichText{richtext.Plain("Dept. of Computing")},
			},
		},
		Abstract: richtext.Plain("We study things."),
		Keywords: []string{"things", "studies"},
		Blocks: []document.Block{
			&document.SectionHeading{Text: richtext.Plain("Introduction"), Number: 1},
			&document.Paragraph{Text: richtext.Resolve("Energy is $E = mc^2$.")},
			&document.SubsectionHeading{Text: richtext.Plain("Scope"), Number: 1, Section: 1},
			&document.BoldLabelParagraph{Label: "Note:", Text: richtext.Plain("a remark")},
			&document.NumberedLabelItem{Number: 1, Label: "Step", Text: richtext.Plain("details")},
			&document.BulletItem{Text: richtext.Plain("an item")},
			&document.Quote{Text: richtext.Plain("a quotation")},
			&document.DisplayEquation{Expression: richtext.Plain("x + y = z"), Number: 1},
		},
		References: []document.ReferenceEntry{
			{Index: 1, Text: richtext.Plain(`A. Author, "A paper," 2020.`)},
		},
	}
	return doc
}

func TestRenderProducesDOCX(t *testing.T) {
	t.Parallel()

	data, err := New(Options{}).Render(sampleDocument())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Render() returned empty output")
	}
	// A DOCX file is a ZIP archive.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output starts with % x, want ZIP magic PK", data[:2])
	}
}

func TestRenderTo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(Options{}).RenderTo(&buf, sampleDocument()); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("RenderTo() wrote no bytes")
	}
}

func TestRenderNilDocument(t *testing.T) {
	t.Parallel()

	_, err := New(Options{}).Render(nil)
	if !errors.Is(err, ErrNilDocument) {
		t.Errorf("Render(nil) error = %v, want ErrNilDocument", err)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	t.Parallel()

	data, err := New(Options{}).Render(&document.Document{})
	if err != nil {
		t.Fatalf("Render(empty) error = %v", err)
	}
	if len(data) == 0 {
		t.Error("Render(empty) returned no bytes, want a valid empty file")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	t.Parallel()

	got := Options{}.withDefaults()
	want := Options{
		FontFamily:        DefaultFontFamily,
		AuthorRowCapacity: document.AuthorRowCapacity,
		TitleSize:         DefaultTitleSize,
		BodySize:          DefaultBodySize,
		AbstractSize:      DefaultAbstractSize,
		ReferenceSize:     DefaultReferenceSize,
	}
	if got != want {
		t.Errorf("withDefaults() = %+v, want %+v", got, want)
	}

	custom := Options{BodySize: 11, FontFamily: "Georgia"}.withDefaults()
	if custom.BodySize != 11 || custom.FontFamily != "Georgia" {
		t.Errorf("withDefaults() overrode explicit values: %+v", custom)
	}
	if custom.TitleSize != DefaultTitleSize {
		t.Errorf("withDefaults() missed zero field: %+v", custom)
	}
}

func TestHalfPoints(t *testing.T) {
	t.Parallel()
	tests := []struct {
		pt   int
		want string
	}{
		{10, "20"},
		{24, "48"},
		{9, "18"},
	}

	for _, tt := range tests {
		if got := halfPoints(tt.pt); got != tt.want {
			t.Errorf("halfPoints(%d) = %q, want %q", tt.pt, got, tt.want)
		}
	}
}
