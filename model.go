package md2ieee

import (
	"md2ieee/internal/document"
	"md2ieee/internal/richtext"
)

// Aliases re-export the resolved paper model so library users can walk
// Result.Paper without reaching into internal packages.
type (
	Document       = document.Document
	Author         = document.Author
	ReferenceEntry = document.ReferenceEntry
	Warning        = document.Warning

	Block              = document.Block
	SectionHeading     = document.SectionHeading
	SubsectionHeading  = document.SubsectionHeading
	Paragraph          = document.Paragraph
	BoldLabelParagraph = document.BoldLabelParagraph
	NumberedLabelItem  = document.NumberedLabelItem
	BulletItem         = document.BulletItem
	Quote              = document.Quote
	DisplayEquation    = document.DisplayEquation

	RichText = richtext.RichText
	Span     = richtext.Span
	Emphasis = richtext.Emphasis
	Script   = richtext.Script
)

// Emphasis values.
const (
	EmphasisNone Emphasis = richtext.None
	Bold         Emphasis = richtext.Bold
	Italic       Emphasis = richtext.Italic
	BoldItalic   Emphasis = richtext.BoldItalic
)

// Script values.
const (
	ScriptNone  Script = richtext.ScriptNone
	Subscript   Script = richtext.Subscript
	Superscript Script = richtext.Superscript
)

// Warning codes attached to ConvertResult.Warnings.
const (
	WarnOrphanSubsection       = document.WarnOrphanSubsection
	WarnReferenceIndexMismatch = document.WarnReferenceIndexMismatch
)

// ResolveRichText resolves symbolic math and emphasis markup in a single
// line of text. Exposed for callers that work with fragments rather than
// whole documents.
func ResolveRichText(text string) RichText {
	return richtext.Resolve(text)
}
