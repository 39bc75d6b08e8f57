package index

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/weft"
)

func TestExtractClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.index")
	defer teardown()
	//
	alloc := weft.NewCounter()
	i, j, k := New(alloc), New(alloc), New(alloc)
	free, repeated, err := Extract([]Index{i, j, i, k})
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if len(free) != 2 || free[0] != j || free[1] != k {
		t.Errorf("free indices should be (j,k), are %s", free)
	}
	if len(repeated) != 1 || repeated[0] != i {
		t.Errorf("repeated indices should be (i), are %s", repeated)
	}
}

func TestExtractRejectsTripleOccurrence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.index")
	defer teardown()
	//
	alloc := weft.NewCounter()
	i := New(alloc)
	if _, _, err := Extract([]Index{i, i, i}); err == nil {
		t.Errorf("three occurrences of one index should be rejected")
	}
}

func TestRepeatedDims(t *testing.T) {
	alloc := weft.NewCounter()
	i, j := New(alloc), New(alloc)
	d := RepeatedDims(MultiIndex{i, j}, DefaultDim)
	if len(d) != 2 || d[i] != DefaultDim || d[j] != DefaultDim {
		t.Errorf("every repeated index should map to the default dimension, got %v", d)
	}
}

func TestIndexIdentity(t *testing.T) {
	alloc := weft.NewCounter()
	i := New(alloc)
	same := WithCount(weft.NewCounter(), i.Count())
	if i != same {
		t.Errorf("indices with equal counts should be the same symbol")
	}
	if i == New(alloc) {
		t.Errorf("fresh indices should be distinct symbols")
	}
}
