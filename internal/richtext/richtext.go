// Package richtext resolves symbolic math notation and emphasis markup
// into style-annotated text spans.
package richtext

import "strings"

// Emphasis describes the emphasis applied to a span.
type Emphasis uint8

// Emphasis values.
const (
	None Emphasis = iota
	Bold
	Italic
	BoldItalic
)

// Script describes vertical positioning of a span.
type Script uint8

// Script values.
const (
	ScriptNone Script = iota
	Subscript
	Superscript
)

// Span is a run of text with uniform styling. Upright marks resolved math
// function names (sin, cos, log, ...) that render in non-italic face.
type Span struct {
	Text     string
	Emphasis Emphasis
	Script   Script
	Upright  bool
}

// RichText is an ordered sequence of styled spans.
type RichText []Span

// Plain wraps s in a single unstyled span. Empty input yields nil.
func Plain(s string) RichText {
	if s == "" {
		return nil
	}
	return RichText{{Text: s}}
}

// String returns the concatenated text of all spans, styling discarded.
func (rt RichText) String() string {
	var b strings.Builder
	for _, sp := range rt {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// IsZero reports whether rt contains no text.
func (rt RichText) IsZero() bool {
	for _, sp := range rt {
		if sp.Text != "" {
			return false
		}
	}
	return true
}

// WithEmphasis returns a copy of rt with emph merged onto every span that
// carries no emphasis of its own. Used for blocks whose style implies a
// base emphasis (quotes render italic, abstract renders bold).
func (rt RichText) WithEmphasis(emph Emphasis) RichText {
	out := make(RichText, len(rt))
	for i, sp := range rt {
		if sp.Emphasis == None {
			sp.Emphasis = emph
		}
		out[i] = sp
	}
	return out
}
