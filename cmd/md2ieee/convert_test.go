package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPaper = `# A Study of Things

**Jane Doe**
*Dept. of Computing*

## Introduction
Some text with $\alpha$ inside.
`

// writeTestFile creates a file with contents under dir.
func writeTestFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDeps(t *testing.T) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	return &Dependencies{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func TestRunConvertSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestFile(t, dir, "paper.md", testPaper)

	deps, stdout, _ := testDeps(t)
	pool := NewConverterPool(1)
	defer pool.Close()

	flags := &convertFlags{}
	if err := runConvert(context.Background(), []string{input}, flags, pool, deps); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	wantOut := filepath.Join(dir, "paper_IEEE.docx")
	if _, err := os.Stat(wantOut); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if !strings.Contains(stdout.String(), wantOut) {
		t.Errorf("stdout = %q, want mention of %q", stdout.String(), wantOut)
	}
}

func TestRunConvertDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, dir, "a.md", testPaper)
	writeTestFile(t, dir, filepath.Join("nested", "b.markdown"), testPaper)
	writeTestFile(t, dir, "ignore.txt", "not markup")

	outDir := t.TempDir()
	deps, _, _ := testDeps(t)
	pool := NewConverterPool(2)
	defer pool.Close()

	flags := &convertFlags{output: outDir}
	if err := runConvert(context.Background(), []string{dir}, flags, pool, deps); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	for _, want := range []string{
		filepath.Join(outDir, "a_IEEE.docx"),
		filepath.Join(outDir, "nested", "b_IEEE.docx"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("output file missing: %v", err)
		}
	}
}

func TestRunConvertModelOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestFile(t, dir, "paper.md", testPaper)

	deps, stdout, _ := testDeps(t)
	pool := NewConverterPool(1)
	defer pool.Close()

	flags := &convertFlags{modelOnly: true}
	if err := runConvert(context.Background(), []string{input}, flags, pool, deps); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "paper_IEEE.docx")); !errors.Is(err, os.ErrNotExist) {
		t.Error("model-only run wrote a DOCX file")
	}
	if !strings.Contains(stdout.String(), "Parsed") {
		t.Errorf("stdout = %q, want Parsed line", stdout.String())
	}
}

func TestRunConvertCustomSuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestFile(t, dir, "paper.md", testPaper)

	deps, _, _ := testDeps(t)
	pool := NewConverterPool(1)
	defer pool.Close()

	flags := &convertFlags{suffix: "_camera"}
	if err := runConvert(context.Background(), []string{input}, flags, pool, deps); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "paper_camera.docx")); err != nil {
		t.Errorf("output with custom suffix missing: %v", err)
	}
}

func TestRunConvertErrors(t *testing.T) {
	t.Parallel()

	t.Run("no input", func(t *testing.T) {
		t.Parallel()
		deps, _, _ := testDeps(t)
		pool := NewConverterPool(1)
		defer pool.Close()
		err := runConvert(context.Background(), nil, &convertFlags{}, pool, deps)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeTestFile(t, dir, "paper.txt", testPaper)
		deps, _, _ := testDeps(t)
		pool := NewConverterPool(1)
		defer pool.Close()
		err := runConvert(context.Background(), []string{input}, &convertFlags{}, pool, deps)
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("invalid workers", func(t *testing.T) {
		t.Parallel()
		deps, _, _ := testDeps(t)
		pool := NewConverterPool(1)
		defer pool.Close()
		err := runConvert(context.Background(), nil, &convertFlags{workers: -1}, pool, deps)
		if !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
		}
	})

	t.Run("structural violation is reported", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeTestFile(t, dir, "bad.md", "# One\n# Two\n")
		deps, _, stderr := testDeps(t)
		pool := NewConverterPool(1)
		defer pool.Close()
		err := runConvert(context.Background(), []string{input}, &convertFlags{}, pool, deps)
		if err == nil {
			t.Fatal("runConvert() = nil, want failure")
		}
		if !strings.Contains(stderr.String(), "FAILED") {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
	})
}

func TestRunConvertWarningsPrinted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestFile(t, dir, "warn.md", "### Orphan Subsection\ntext\n")

	deps, _, stderr := testDeps(t)
	pool := NewConverterPool(1)
	defer pool.Close()

	flags := &convertFlags{modelOnly: true}
	if err := runConvert(context.Background(), []string{input}, flags, pool, deps); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if !strings.Contains(stderr.String(), "WARNING") {
		t.Errorf("stderr = %q, want WARNING line", stderr.String())
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		input        string
		outputDir    string
		baseInputDir string
		suffix       string
		want         string
	}{
		{
			name:   "beside input",
			input:  filepath.Join("docs", "p.md"),
			suffix: "_IEEE",
			want:   filepath.Join("docs", "p_IEEE.docx"),
		},
		{
			name:      "explicit docx target",
			input:     "p.md",
			outputDir: filepath.Join("out", "final.docx"),
			suffix:    "_IEEE",
			want:      filepath.Join("out", "final.docx"),
		},
		{
			name:         "directory layout mirrored",
			input:        filepath.Join("src", "sub", "p.md"),
			outputDir:    "out",
			baseInputDir: "src",
			suffix:       "_IEEE",
			want:         filepath.Join("out", "sub", "p_IEEE.docx"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resolveOutputPath(tt.input, tt.outputDir, tt.baseInputDir, tt.suffix)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	if err := validateWorkers(0); err != nil {
		t.Errorf("validateWorkers(0) = %v, want nil", err)
	}
	if err := validateWorkers(4); err != nil {
		t.Errorf("validateWorkers(4) = %v, want nil", err)
	}
	if err := validateWorkers(-1); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("validateWorkers(-1) = %v, want ErrInvalidWorkerCount", err)
	}
	if err := validateWorkers(100); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("validateWorkers(100) = %v, want ErrInvalidWorkerCount", err)
	}
}

func TestPrintResultsSummary(t *testing.T) {
	t.Parallel()

	deps, stdout, stderr := testDeps(t)
	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.docx"},
		{InputPath: "b.md", Err: errors.New("boom")},
	}

	failed := printResults(results, false, false, deps)
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
		t.Errorf("stdout = %q, want summary line", stdout.String())
	}
	if !strings.Contains(stderr.String(), "FAILED b.md") {
		t.Errorf("stderr = %q, want FAILED line", stderr.String())
	}
}

func TestPrintResultsQuiet(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(t)
	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.docx"},
		{InputPath: "b.md", OutputPath: "b.docx"},
	}

	if failed := printResults(results, true, false, deps); failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet stdout = %q, want empty", stdout.String())
	}
}
