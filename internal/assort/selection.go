package assort

// PageRef identifies one page of one source document without holding its
// content; pages are materialized only at write time.
type PageRef struct {
	Source string
	Page   int
}

// Selection accumulates, per output, the ordered page references selected
// across a run. Each (output, source, page) triple is recorded at most
// once, so re-adding a page is a no-op. After Finalize the selection is
// read-only.
type Selection struct {
	refs      map[string][]PageRef
	seen      map[string]map[PageRef]struct{}
	order     []string // outputs in first-contribution order
	finalized bool
}

func NewSelection() *Selection {
	return &Selection{
		refs: make(map[string][]PageRef),
		seen: make(map[string]map[PageRef]struct{}),
	}
}

// Add appends the given pages of source to output's sequence, in the given
// order, skipping pages already present for that output. Calling Add after
// Finalize is a programming error and panics.
func (s *Selection) Add(output, source string, pages []int) {
	if s.finalized {
		panic("assort: Add after Finalize")
	}
	if len(pages) == 0 {
		return
	}
	if _, ok := s.seen[output]; !ok {
		s.seen[output] = make(map[PageRef]struct{})
		s.order = append(s.order, output)
	}
	for _, p := range pages {
		ref := PageRef{Source: source, Page: p}
		if _, dup := s.seen[output][ref]; dup {
			continue
		}
		s.seen[output][ref] = struct{}{}
		s.refs[output] = append(s.refs[output], ref)
	}
}

// Len reports how many pages output has collected so far.
func (s *Selection) Len(output string) int {
	return len(s.refs[output])
}

// Outputs lists the outputs with at least one page, in the order they
// first received a contribution.
func (s *Selection) Outputs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Finalize freezes the selection and returns the complete per-output page
// sequences. Outputs that collected nothing are absent.
func (s *Selection) Finalize() map[string][]PageRef {
	s.finalized = true
	return s.refs
}
