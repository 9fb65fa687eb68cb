// Package number assigns positional numbers to body blocks: Roman numerals
// for sections, letters for subsections (reset per section), and global
// integers for display equations.
package number

import (
	"fmt"

	"md2ieee/internal/document"
)

// Counters is the numbering state threaded through the pass. The zero
// value is the correct starting state.
type Counters struct {
	Section    int
	Subsection int
	Equation   int
}

// Apply numbers every block in doc in a single forward pass and returns
// the warnings raised along the way. The pass is deterministic: numbers
// are a pure function of block order. A subsection with no preceding
// section is reported and filed under the implicit section 0 so the pass
// never aborts.
func Apply(doc *document.Document) []document.Warning {
	var warnings []document.Warning
	var c Counters

	for _, blk := range doc.Blocks {
		switch b := blk.(type) {
		case *document.SectionHeading:
			c = Counters{
				Section:    c.Section + 1,
				Subsection: 0,
				Equation:   c.Equation,
			}
			b.Number = c.Section

		case *document.SubsectionHeading:
			if c.Section == 0 {
				warnings = append(warnings, document.Warning{
					Code: document.WarnOrphanSubsection,
					Message: fmt.Sprintf("subsection %q has no preceding section",
						b.Text.String()),
				})
			}
			c.Subsection++
			b.Number = c.Subsection
			b.Section = c.Section

		case *document.DisplayEquation:
			c.Equation++
			b.Number = c.Equation
		}
	}
	return warnings
}
