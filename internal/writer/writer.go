// Package writer serializes finalized page selections into output PDFs.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"pdfassort/internal/assort"
)

// Write assembles one output PDF at outputDir/name from the given ordered
// page references, appending a .pdf extension when name lacks one. refs
// must not be empty. Returns the path of the written file.
func Write(outputDir, name string, refs []assort.PageRef) (string, error) {
	if len(refs) == 0 {
		return "", fmt.Errorf("output %s: no pages selected", name)
	}
	outPath := filepath.Join(outputDir, ensurePDFExt(name))

	runs := splitRuns(refs)
	if len(runs) == 1 {
		return outPath, collect(runs[0], outPath)
	}

	// Collect each source's pages into a part file, then merge the parts
	// in order. Nothing touches outPath until every part succeeded.
	tmpDir, err := os.MkdirTemp("", "pdfassort-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	parts := make([]string, len(runs))
	for i, r := range runs {
		part := filepath.Join(tmpDir, fmt.Sprintf("part-%03d.pdf", i))
		if err := collect(r, part); err != nil {
			return "", err
		}
		parts[i] = part
	}

	if err := api.MergeCreateFile(parts, outPath, false, nil); err != nil {
		return "", fmt.Errorf("merge %s: %w", outPath, err)
	}
	return outPath, nil
}

// pageRun is a consecutive stretch of references to one source document.
type pageRun struct {
	source string
	pages  []int
}

// splitRuns groups refs into per-source runs, preserving order. The scan
// feeds a selection one document at a time, so refs sharing a source are
// already contiguous; a new run starts whenever the source changes.
func splitRuns(refs []assort.PageRef) []pageRun {
	var runs []pageRun
	for _, ref := range refs {
		if n := len(runs); n > 0 && runs[n-1].source == ref.Source {
			runs[n-1].pages = append(runs[n-1].pages, ref.Page)
			continue
		}
		runs = append(runs, pageRun{source: ref.Source, pages: []int{ref.Page}})
	}
	return runs
}

func collect(r pageRun, outPath string) error {
	// pdfcpu page selections are 1-based.
	selected := make([]string, len(r.pages))
	for i, p := range r.pages {
		selected[i] = strconv.Itoa(p + 1)
	}
	if err := api.CollectFile(r.source, outPath, selected, nil); err != nil {
		return fmt.Errorf("collect pages from %s: %w", r.source, err)
	}
	return nil
}

func ensurePDFExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}
