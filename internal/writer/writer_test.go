package writer

import (
	"reflect"
	"testing"

	"pdfassort/internal/assort"
)

func TestEnsurePDFExt(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"out1", "out1.pdf"},
		{"out1.pdf", "out1.pdf"},
		{"out1.PDF", "out1.PDF"},
		{"archive.2024", "archive.2024.pdf"},
		{"report.pdf.bak", "report.pdf.bak.pdf"},
	}
	for _, c := range cases {
		if got := ensurePDFExt(c.name); got != c.want {
			t.Errorf("ensurePDFExt(%q): expected %q, got %q", c.name, c.want, got)
		}
	}
}

func TestSplitRuns_GroupsConsecutiveSources(t *testing.T) {
	refs := []assort.PageRef{
		{Source: "a.pdf", Page: 0},
		{Source: "a.pdf", Page: 2},
		{Source: "b.pdf", Page: 1},
		{Source: "a.pdf", Page: 3},
	}

	got := splitRuns(refs)
	want := []pageRun{
		{source: "a.pdf", pages: []int{0, 2}},
		{source: "b.pdf", pages: []int{1}},
		{source: "a.pdf", pages: []int{3}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitRuns_Empty(t *testing.T) {
	if got := splitRuns(nil); len(got) != 0 {
		t.Errorf("expected no runs, got %v", got)
	}
}

func TestWrite_RejectsEmptySelection(t *testing.T) {
	if _, err := Write(t.TempDir(), "out1", nil); err == nil {
		t.Fatal("expected error for empty selection")
	}
}
