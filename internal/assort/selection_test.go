package assort

import (
	"reflect"
	"testing"
)

func TestSelection_AddIsIdempotent(t *testing.T) {
	sel := NewSelection()
	sel.Add("out1", "a.pdf", []int{0, 1})
	sel.Add("out1", "a.pdf", []int{0, 1})

	got := sel.Finalize()["out1"]
	want := []PageRef{{"a.pdf", 0}, {"a.pdf", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSelection_PreservesDocumentScanOrder(t *testing.T) {
	sel := NewSelection()
	sel.Add("x", "d1.pdf", []int{0})
	sel.Add("x", "d2.pdf", []int{1})

	got := sel.Finalize()["x"]
	want := []PageRef{{"d1.pdf", 0}, {"d2.pdf", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSelection_SkipsOnlyDuplicatePairs(t *testing.T) {
	sel := NewSelection()
	sel.Add("out", "a.pdf", []int{0, 1})
	sel.Add("out", "a.pdf", []int{1, 2})
	// Same page, different output: not a duplicate.
	sel.Add("other", "a.pdf", []int{1})

	refs := sel.Finalize()
	want := []PageRef{{"a.pdf", 0}, {"a.pdf", 1}, {"a.pdf", 2}}
	if !reflect.DeepEqual(refs["out"], want) {
		t.Errorf("out: expected %v, got %v", want, refs["out"])
	}
	if len(refs["other"]) != 1 {
		t.Errorf("other: expected 1 page, got %v", refs["other"])
	}
}

func TestSelection_EmptyContributionLeavesNoOutput(t *testing.T) {
	sel := NewSelection()
	sel.Add("out", "a.pdf", nil)

	if got := sel.Outputs(); len(got) != 0 {
		t.Errorf("expected no outputs, got %v", got)
	}
	if refs := sel.Finalize(); len(refs) != 0 {
		t.Errorf("expected empty selection, got %v", refs)
	}
}

func TestSelection_OutputsInFirstContributionOrder(t *testing.T) {
	sel := NewSelection()
	sel.Add("b", "d1.pdf", []int{0})
	sel.Add("a", "d1.pdf", []int{1})
	sel.Add("b", "d2.pdf", []int{0})

	if got := sel.Outputs(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("expected [b a], got %v", got)
	}
}

func TestSelection_AddAfterFinalizePanics(t *testing.T) {
	sel := NewSelection()
	sel.Add("out", "a.pdf", []int{0})
	sel.Finalize()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on Add after Finalize")
		}
	}()
	sel.Add("out", "b.pdf", []int{0})
}
