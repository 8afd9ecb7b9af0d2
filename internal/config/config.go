// Package config holds the run configuration assembled from the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	// Rule file
	CSVPath       string
	SkipCSVHeader bool
	DetectCharset bool

	// Inputs: paths or glob patterns, scanned in the order given.
	InputPatterns []string

	// Matching
	FastMode bool

	// Output
	OutputDir string
}

// Validate performs the fatal setup checks: the rule file must be
// readable, the output directory must exist and be writable, and at least
// one input must be named. Anything failing here aborts the run before any
// document is scanned.
func (c Config) Validate() error {
	f, err := os.Open(c.CSVPath)
	if err != nil {
		return fmt.Errorf("rule file: %w", err)
	}
	f.Close()

	info, err := os.Stat(c.OutputDir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s: not a directory", c.OutputDir)
	}
	probe, err := os.CreateTemp(c.OutputDir, ".pdfassort-probe-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", c.OutputDir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	if len(c.InputPatterns) == 0 {
		return errors.New("no input files given")
	}
	return nil
}

// ExpandInputs resolves the input arguments to concrete file paths,
// expanding glob patterns (shells on Windows pass them through verbatim).
// A pattern matching nothing, or a literal path that does not exist, is an
// error.
func (c Config) ExpandInputs() ([]string, error) {
	var paths []string
	for _, pattern := range c.InputPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input %s: no such file", pattern)
		}
		for _, m := range matches {
			paths = append(paths, filepath.Clean(m))
		}
	}
	if len(paths) == 0 {
		return nil, errors.New("no readable input files")
	}
	return paths, nil
}
