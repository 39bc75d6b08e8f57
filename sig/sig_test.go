package sig

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/deriv"
	"github.com/npillmayer/weft/expr"
	"github.com/npillmayer/weft/space"
)

// --- Test doubles ------------------------------------------------------------

type tCell string

func (c tCell) Name() string { return string(c) }

type tDomain struct {
	name string
	cell space.Cell
}

func (d tDomain) Cell() space.Cell { return d.cell }

func (d tDomain) HashData() interface{} {
	return []interface{}{"Domain", d.name, d.cell.Name()}
}

func (d tDomain) SignatureData(rn weft.Renumbering) interface{} {
	return d.HashData()
}

type tElement struct {
	name  string
	cell  space.Cell
	shape weft.Shape
}

func (e tElement) Cell() space.Cell           { return e.cell }
func (e tElement) ValueShape() weft.Shape     { return e.shape }
func (e tElement) SignatureData() interface{} { return e.HashData() }

func (e tElement) HashData() interface{} {
	return []interface{}{"Element", e.name, e.cell.Name(), e.shape.String()}
}

func testSpace(t *testing.T, elname string, shape weft.Shape) *space.FunctionSpace {
	t.Helper()
	cell := tCell("triangle")
	fs, err := space.New(tDomain{name: "mesh", cell: cell},
		tElement{name: elname, cell: cell, shape: shape})
	if err != nil {
		t.Fatalf("cannot build test space: %v", err)
	}
	return fs
}

// -----------------------------------------------------------------------------

func TestSignatureInvariantUnderCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.sig")
	defer teardown()
	//
	alloc := weft.NewCounter()
	V := testSpace(t, "P1", weft.Shape{})
	u, _ := expr.NewCoefficient(alloc, V)
	w, _ := expr.NewCoefficient(alloc, V) // same space, next count
	su, err := Signature(u)
	if err != nil {
		t.Fatalf("signature failed: %v", err)
	}
	sw, err := Signature(w)
	if err != nil {
		t.Fatalf("signature failed: %v", err)
	}
	if su != sw {
		t.Errorf("coefficients differing only in raw count must be signature-equal")
	}
}

func TestSignatureSeparatesSpaces(t *testing.T) {
	alloc := weft.NewCounter()
	u, _ := expr.NewCoefficient(alloc, testSpace(t, "P1", weft.Shape{}))
	w, _ := expr.NewCoefficient(alloc, testSpace(t, "P2", weft.Shape{}))
	su, _ := Signature(u)
	sw, _ := Signature(w)
	if su == sw {
		t.Errorf("coefficients over distinct elements must not be signature-equal")
	}
}

func TestSignatureOfIndependentlyBuiltDAGs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.sig")
	defer teardown()
	//
	build := func(alloc *weft.Counter) expr.Expr {
		V := testSpace(t, "P1", weft.Shape{})
		u, _ := expr.NewCoefficient(alloc, V)
		w, _ := expr.NewCoefficient(alloc, V)
		p, _ := expr.NewProduct(u, w)
		s, _ := expr.NewSum(p, p)
		return s
	}
	a := build(weft.NewCounter())
	// shift the allocation order of the second universe
	shifted := weft.NewCounter()
	shifted.Bump(41)
	b := build(shifted)
	sa, _ := Signature(a)
	sb, _ := Signature(b)
	if sa != sb {
		t.Errorf("independently built, structurally identical DAGs must be signature-equal")
	}
}

func TestSignatureDistinguishesStructure(t *testing.T) {
	alloc := weft.NewCounter()
	V := testSpace(t, "P1", weft.Shape{})
	u, _ := expr.NewCoefficient(alloc, V)
	w, _ := expr.NewCoefficient(alloc, V)
	same, _ := expr.NewProduct(u, u) // u*u: one entity used twice
	distinct, _ := expr.NewProduct(u, w)
	s1, _ := Signature(same)
	s2, _ := Signature(distinct)
	if s1 == s2 {
		t.Errorf("u*u and u*w must not be signature-equal")
	}
}

func TestSignatureInvariantUnderIndexCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.sig")
	defer teardown()
	//
	lower := func(alloc *weft.Counter) expr.Expr {
		u, err := expr.NewCoefficient(alloc, testSpace(t, "vP1", weft.Shape{3}))
		if err != nil {
			t.Fatalf("coefficient failed: %v", err)
		}
		g, err := deriv.NewGrad(u)
		if err != nil {
			t.Fatalf("grad failed: %v", err)
		}
		low, err := g.AsBasic(alloc)
		if err != nil {
			t.Fatalf("lowering failed: %v", err)
		}
		return low
	}
	a := lower(weft.NewCounter())
	shifted := weft.NewCounter()
	shifted.Bump(99)
	b := lower(shifted)
	sa, _ := Signature(a)
	sb, _ := Signature(b)
	if sa != sb {
		t.Errorf("index symbol counts must not leak into signatures")
	}
}

func TestRenumberFirstAppearanceOrder(t *testing.T) {
	alloc := weft.NewCounter()
	V := testSpace(t, "P1", weft.Shape{})
	u, _ := expr.CoefficientWithCount(alloc, V, 17)
	w, _ := expr.CoefficientWithCount(alloc, V, 23)
	p, _ := expr.NewProduct(w, u) // w appears first in traversal order
	rn := Renumber(p)
	if rn.Of(w) != 0 || rn.Of(u) != 1 {
		t.Errorf("renumbering should follow first appearance, got w=%d u=%d", rn.Of(w), rn.Of(u))
	}
}

func TestHashOfSpaces(t *testing.T) {
	V1 := testSpace(t, "P1", weft.Shape{})
	V2 := testSpace(t, "P1", weft.Shape{})
	W := testSpace(t, "P2", weft.Shape{})
	h1, err := Hash(V1)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, _ := Hash(V2)
	h3, _ := Hash(W)
	if h1 != h2 {
		t.Errorf("structurally identical spaces must hash equally")
	}
	if h1 == h3 {
		t.Errorf("spaces over distinct elements must hash differently")
	}
}
