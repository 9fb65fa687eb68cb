// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// a name. A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsMarkupFile reports whether path has a markdown extension.
func IsMarkupFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// DeriveOutputPath builds the output file path for an input file: the
// input stem plus suffix and the .docx extension. When outputDir is empty
// the file lands beside its input.
//
// Examples with suffix "_IEEE":
//   - "paper.md" -> "paper_IEEE.docx"
//   - "docs/paper.md" + outputDir "out" -> "out/paper_IEEE.docx"
func DeriveOutputPath(inputPath, outputDir, suffix string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, stem+suffix+".docx")
}
