// Package scan classifies source lines into structural roles. Classification
// is a small state machine: the classifier tracks whether it is in front
// matter, the body, or the references region, and which line it saw last.
package scan

import (
	"regexp"
	"strings"
)

// Tag is the structural role assigned to one source line.
type Tag int

// Line tags, in rough precedence order.
const (
	Blank Tag = iota
	Rule
	Title
	SectionHeading
	SubsectionHeading
	ReferencesHeading
	ReferenceHead
	ReferenceContinuation
	AuthorName
	Affiliation
	BoldLabel
	NumberedLabel
	Bullet
	Quote
	Paragraph
	Discarded
)

// String returns the tag name for diagnostics.
func (t Tag) String() string {
	names := [...]string{
		"Blank", "Rule", "Title", "SectionHeading", "SubsectionHeading",
		"ReferencesHeading", "ReferenceHead", "ReferenceContinuation",
		"AuthorName", "Affiliation", "BoldLabel", "NumberedLabel",
		"Bullet", "Quote", "Paragraph", "Discarded",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// State is the classifier region.
type State int

// Classifier states.
const (
	InFrontMatter State = iota
	InBody
	InReferences
)

// Line is one classified source line.
type Line struct {
	Tag    Tag
	Index  int    // 1-based source line number
	Text   string // payload with structural prefix stripped
	Label  string // bold label for BoldLabel and NumberedLabel lines
	Number int    // bracket number (ReferenceHead) or item number (NumberedLabel)
	Raw    string
}

// Precompiled line patterns.
var (
	rulePattern     = regexp.MustCompile(`^-{3,}$`)
	refHeadPattern  = regexp.MustCompile(`^\[(\d+)\]\s*(.*)$`)
	authorPattern   = regexp.MustCompile(`^\*\*(.+?)\*\*\s*$`)
	affilPattern    = regexp.MustCompile(`^\*([^*].*?)\*\s*$`)
	boldLabel       = regexp.MustCompile(`^\*\*(.+?:)\*\*\s*(.+)$`)
	numberedLabel   = regexp.MustCompile(`^(\d+)\.\s+\*\*(.+?)\*\*\s*(.*)$`)
	numberingPrefix = regexp.MustCompile(`^(?:\d+(?:\.\d+)*\.|\d+(?:\.\d+)+)\s+`)
)

// Classifier assigns structural roles to lines one at a time. It reads but
// never rewrites its running context; all grouping happens downstream.
type Classifier struct {
	state     State
	titleSeen bool
	prev      Tag
	index     int
}

// NewClassifier returns a classifier positioned before the first line.
func NewClassifier() *Classifier {
	return &Classifier{prev: Blank}
}

// State reports the current region.
func (c *Classifier) State() State { return c.state }

// Classify assigns a tag to the next source line. Rules are checked in
// precedence order; the first match wins.
func (c *Classifier) Classify(raw string) Line {
	c.index++
	trimmed := strings.TrimSpace(raw)
	line := Line{Index: c.index, Raw: raw}

	switch {
	case trimmed == "":
		line.Tag = Blank
		return line

	case rulePattern.MatchString(trimmed):
		line.Tag = Rule
		return line

	case strings.HasPrefix(trimmed, "# "):
		line.Tag = Title
		line.Text = strings.TrimSpace(trimmed[2:])
		c.titleSeen = true
		c.remember(Title)
		return line

	case strings.HasPrefix(trimmed, "## "):
		text := StripNumberingPrefix(strings.TrimSpace(trimmed[3:]))
		if strings.EqualFold(text, "References") {
			line.Tag = ReferencesHeading
			c.state = InReferences
		} else {
			line.Tag = SectionHeading
			line.Text = text
			c.state = InBody
		}
		c.remember(line.Tag)
		return line

	case strings.HasPrefix(trimmed, "### "):
		// Recognized even before the first section; the numbering pass
		// reports the orphan and files it under an implicit section.
		line.Tag = SubsectionHeading
		line.Text = StripNumberingPrefix(strings.TrimSpace(trimmed[4:]))
		c.state = InBody
		c.remember(SubsectionHeading)
		return line

	case trimmed == "REFERENCES":
		line.Tag = ReferencesHeading
		c.state = InReferences
		c.remember(ReferencesHeading)
		return line
	}

	if c.state == InReferences {
		if m := refHeadPattern.FindStringSubmatch(trimmed); m != nil {
			line.Tag = ReferenceHead
			line.Number = atoi(m[1])
			line.Text = m[2]
		} else {
			line.Tag = ReferenceContinuation
			line.Text = trimmed
		}
		c.remember(line.Tag)
		return line
	}

	if c.state == InFrontMatter {
		switch {
		case c.titleSeen && authorPattern.MatchString(trimmed):
			line.Tag = AuthorName
			line.Text = strings.TrimSpace(authorPattern.FindStringSubmatch(trimmed)[1])
		case (c.prev == AuthorName || c.prev == Affiliation) && affilPattern.MatchString(trimmed):
			line.Tag = Affiliation
			line.Text = strings.TrimSpace(affilPattern.FindStringSubmatch(trimmed)[1])
		default:
			// Content before the first structural element is dropped.
			line.Tag = Discarded
		}
		c.remember(line.Tag)
		return line
	}

	switch {
	case boldLabel.MatchString(trimmed):
		m := boldLabel.FindStringSubmatch(trimmed)
		line.Tag = BoldLabel
		line.Label = m[1]
		line.Text = m[2]

	case numberedLabel.MatchString(trimmed):
		m := numberedLabel.FindStringSubmatch(trimmed)
		line.Tag = NumberedLabel
		line.Number = atoi(m[1])
		line.Label = m[2]
		line.Text = m[3]

	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		line.Tag = Bullet
		line.Text = strings.TrimSpace(trimmed[2:])

	case strings.HasPrefix(trimmed, "> "):
		line.Tag = Quote
		line.Text = strings.TrimSpace(trimmed[2:])

	default:
		line.Tag = Paragraph
		line.Text = trimmed
	}
	c.remember(line.Tag)
	return line
}

// remember records the last structural tag. Blank and rule lines are
// transparent so an affiliation still attaches to its author across them.
func (c *Classifier) remember(t Tag) {
	if t == Blank || t == Rule {
		return
	}
	c.prev = t
}

// StripNumberingPrefix removes a leading decimal numbering token such as
// "3." or "2.1 " from heading text. Assigned numbers are always positional,
// so source numbering is discarded.
func StripNumberingPrefix(s string) string {
	return numberingPrefix.ReplaceAllString(s, "")
}

// atoi parses a digit-only string already vetted by a pattern.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
