package assort

import (
	"github.com/rs/zerolog"

	"pdfassort/internal/extract"
	"pdfassort/internal/rules"
)

// Runner drives the scan of the input documents: strictly one document at
// a time, in input order, pages in index order.
type Runner struct {
	rules    []rules.Rule
	fastMode bool
	log      zerolog.Logger

	// Swappable in tests.
	readDoc   func(path string) (extract.Document, error)
	pageCount func(path string) (int, error)
}

func NewRunner(ruleSet []rules.Rule, fastMode bool, log zerolog.Logger) *Runner {
	return &Runner{
		rules:     ruleSet,
		fastMode:  fastMode,
		log:       log,
		readDoc:   extract.ReadDocument,
		pageCount: extract.PageCount,
	}
}

// Result is the outcome of a full scan.
type Result struct {
	Selection *Selection
	Scanned   int
	Failed    int
}

// Scan processes every input document and returns the accumulated
// selection. Documents that cannot be read contribute nothing (unless the
// filename bypass claimed them) and are logged as warnings; the scan
// always continues.
func (r *Runner) Scan(paths []string) *Result {
	sel := NewSelection()
	res := &Result{Selection: sel}

	for _, path := range paths {
		if err := r.scanOne(path, sel); err != nil {
			r.log.Warn().Err(err).Str("file", path).Msg("skipping document")
			res.Failed++
			continue
		}
		res.Scanned++
		for _, out := range sel.Outputs() {
			r.log.Debug().Str("file", path).Str("output", out).
				Int("pages", sel.Len(out)).Msg("selection")
		}
	}

	return res
}

func (r *Runner) scanOne(path string, sel *Selection) error {
	r.log.Info().Str("file", path).Msg("scanning")

	doc, err := r.readDoc(path)
	if err != nil {
		if !r.fastMode {
			return err
		}
		// Text extraction failed, but the file name may still satisfy a
		// rule; that is the whole point of fast mode.
		n, countErr := r.pageCount(path)
		if countErr != nil {
			return err
		}
		byOutput := FastMatch(path, r.rules, n)
		if len(byOutput) == 0 {
			return err
		}
		r.add(sel, path, byOutput)
		r.log.Info().Str("file", path).Int("pages", n).Msg("matched by file name only")
		return nil
	}

	r.add(sel, path, Evaluate(doc, r.rules, r.fastMode))
	return nil
}

// add feeds one document's matcher output into the selection, visiting
// outputs in rule order so results do not depend on map iteration.
func (r *Runner) add(sel *Selection, path string, byOutput map[string][]int) {
	for _, ru := range r.rules {
		pages, ok := byOutput[ru.Output]
		if !ok {
			continue
		}
		sel.Add(ru.Output, path, pages)
		delete(byOutput, ru.Output)
	}
}
