package md2ieee

import (
	"errors"

	"md2ieee/internal/assemble"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkup = errors.New("markup content cannot be empty")
	ErrRender      = errors.New("DOCX generation failed")

	// Structural violations abort conversion with no partial output.
	ErrDuplicateTitle = assemble.ErrDuplicateTitle
	ErrTitleAfterBody = assemble.ErrTitleAfterBody

	// Paper settings validation errors.
	ErrInvalidFontSize      = errors.New("invalid font size")
	ErrInvalidAuthorsPerRow = errors.New("invalid authors per row")
)
