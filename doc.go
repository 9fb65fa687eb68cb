// Package md2ieee converts lightly marked-up manuscripts into
// IEEE-conference-style DOCX papers.
//
// # Quick Start
//
// Create a converter, convert a manuscript, and close when done:
//
//	conv := md2ieee.NewConverter()
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2ieee.Input{
//	    Markup: source,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("paper_IEEE.docx", result.DOCX, 0644)
//
// The result contains the rendered DOCX bytes (result.DOCX), the resolved
// document model (result.Paper), and any recoverable warnings raised along
// the way (result.Warnings). Use Input.ModelOnly to skip DOCX generation.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Source normalization (line endings, Unicode NFC)
//  2. Line classification (title, authors, headings, references, body)
//  3. Document assembly (grouping, abstract and keyword handling)
//  4. Positional numbering (Roman sections, letter subsections, equations)
//  5. DOCX rendering via go-docx (skipped in ModelOnly mode)
//
// Inline notation is resolved throughout: backslash commands become
// Unicode glyphs, _{} and ^{} become sub- and superscript spans, and
// asterisk runs become bold and italic emphasis. Resolution is total:
// malformed notation degrades to literal text, never to an error.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := md2ieee.NewConverter(
//	    md2ieee.WithTimeout(2 * time.Minute),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2ieee.Input{
//	    Markup: source,
//	    Paper:  &md2ieee.PaperSettings{BodySize: 11},
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool := md2ieee.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package md2ieee
