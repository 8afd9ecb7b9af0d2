// Package assort decides which pages of which input documents belong to
// which output files, and accumulates the result across a run.
package assort

import (
	"path/filepath"
	"strings"

	"pdfassort/internal/extract"
	"pdfassort/internal/rules"
)

// Evaluate classifies one document against every rule and returns the page
// indices each output receives from it. Matching is plain case-sensitive
// substring containment.
//
// With fastMode on, a rule whose keyword appears in the document's base
// file name claims the whole document and is excluded from content
// scanning; all remaining rules are matched page by page. The decision is
// per (document, rule) pair, so one rule can claim a document by name
// while another matches its pages by content.
func Evaluate(doc extract.Document, ruleSet []rules.Rule, fastMode bool) map[string][]int {
	byOutput := make(map[string][]int)

	scan := ruleSet
	if fastMode {
		base := filepath.Base(doc.Path)
		scan = make([]rules.Rule, 0, len(ruleSet))
		for _, r := range ruleSet {
			if strings.Contains(base, r.Keyword) {
				byOutput[r.Output] = append(byOutput[r.Output], allPages(len(doc.Pages))...)
				continue
			}
			scan = append(scan, r)
		}
	}

	// Page-outer so an output fed by several rules still collects pages in
	// document order.
	for i, text := range doc.Pages {
		for _, r := range scan {
			if strings.Contains(text, r.Keyword) {
				byOutput[r.Output] = append(byOutput[r.Output], i)
			}
		}
	}

	return byOutput
}

// FastMatch applies only the filename bypass, for documents whose text
// could not be extracted at all. pageCount is the document's page count
// obtained out of band.
func FastMatch(path string, ruleSet []rules.Rule, pageCount int) map[string][]int {
	byOutput := make(map[string][]int)
	base := filepath.Base(path)
	for _, r := range ruleSet {
		if strings.Contains(base, r.Keyword) {
			byOutput[r.Output] = append(byOutput[r.Output], allPages(pageCount)...)
		}
	}
	return byOutput
}

func allPages(n int) []int {
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i
	}
	return pages
}
