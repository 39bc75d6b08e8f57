package deriv

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/expr"
	"github.com/npillmayer/weft/index"
	"github.com/npillmayer/weft/space"
)

// --- Test doubles for the opaque geometry handles ---------------------------

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

func coefficient(t *testing.T, alloc *weft.Counter, shape weft.Shape) *expr.Coefficient {
	t.Helper()
	cell := tCell("triangle")
	fs, err := space.New(tDomain{name: "mesh", cell: cell},
		tElement{name: "el", cell: cell, shape: shape})
	if err != nil {
		t.Fatalf("cannot build test space: %v", err)
	}
	c, err := expr.NewCoefficient(alloc, fs)
	if err != nil {
		t.Fatalf("cannot build test coefficient: %v", err)
	}
	return c
}

// -----------------------------------------------------------------------------

func TestDivShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.deriv")
	defer teardown()
	//
	alloc := weft.NewCounter()
	vec := coefficient(t, alloc, weft.Shape{3})
	mat := coefficient(t, alloc, weft.Shape{3, 3})
	dv, err := NewDiv(vec)
	if err != nil {
		t.Fatalf("div of a vector should construct: %v", err)
	}
	if !dv.Shape().Equals(weft.Shape{}) {
		t.Errorf("div of shape (3) should be scalar, is %s", dv.Shape())
	}
	dm, _ := NewDiv(mat)
	if !dm.Shape().Equals(weft.Shape{3}) {
		t.Errorf("div of shape (3,3) should be (3,), is %s", dm.Shape())
	}
	scalar := coefficient(t, alloc, weft.Shape{})
	if _, err := NewDiv(scalar); err == nil {
		t.Errorf("div of a scalar should fail construction")
	}
}

func TestGradShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.deriv")
	defer teardown()
	//
	alloc := weft.NewCounter()
	scalar := coefficient(t, alloc, weft.Shape{})
	vec := coefficient(t, alloc, weft.Shape{3})
	gs, err := NewGrad(scalar)
	if err != nil {
		t.Fatalf("grad of a scalar should construct: %v", err)
	}
	if !gs.Shape().Equals(weft.Shape{index.DefaultDim}) {
		t.Errorf("grad of a scalar should have shape (D,), is %s", gs.Shape())
	}
	gv, _ := NewGrad(vec)
	if !gv.Shape().Equals(weft.Shape{index.DefaultDim, 3}) {
		t.Errorf("grad of shape (3) should be (D,3), is %s", gv.Shape())
	}
}

func TestCurlAndRotShapes(t *testing.T) {
	alloc := weft.NewCounter()
	vec := coefficient(t, alloc, weft.Shape{3})
	scalar := coefficient(t, alloc, weft.Shape{})
	c, err := NewCurl(vec)
	if err != nil {
		t.Fatalf("curl of a vector should construct: %v", err)
	}
	if !c.Shape().Equals(weft.Shape{index.DefaultDim}) {
		t.Errorf("curl should have shape (D,), is %s", c.Shape())
	}
	r, _ := NewRot(vec)
	if !r.Shape().Equals(weft.Shape{}) {
		t.Errorf("rot should be scalar, is %s", r.Shape())
	}
	if _, err := NewCurl(scalar); err == nil {
		t.Errorf("curl of a scalar should fail construction")
	}
	if _, err := NewRot(scalar); err == nil {
		t.Errorf("rot of a scalar should fail construction")
	}
	if _, err := c.AsBasic(alloc); err == nil {
		t.Errorf("curl has no basic-operator lowering, AsBasic should fail")
	}
	if _, err := r.AsBasic(alloc); err == nil {
		t.Errorf("rot has no basic-operator lowering, AsBasic should fail")
	}
}

func TestDiffShapeAndIndexConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.deriv")
	defer teardown()
	//
	alloc := weft.NewCounter()
	f := coefficient(t, alloc, weft.Shape{3})
	xc := coefficient(t, alloc, weft.Shape{3, 3})
	x, _ := expr.NewVariable(alloc, xc)
	d, err := NewDiff(f, x)
	if err != nil {
		t.Fatalf("diff construction failed: %v", err)
	}
	if !d.Shape().Equals(weft.Shape{3, 3, 3}) {
		t.Errorf("diff shape should be f.shape ++ x.shape = (3,3,3), is %s", d.Shape())
	}
	// provoke an index conflict: share one free index between f and x
	i := index.New(alloc)
	fi, err := expr.NewIndexed(f, index.MultiIndex{i})
	if err != nil {
		t.Fatalf("indexing failed: %v", err)
	}
	sc := coefficient(t, alloc, weft.Shape{3})
	xi, _ := expr.NewIndexed(sc, index.MultiIndex{i})
	xv, _ := expr.NewVariable(alloc, xi)
	if _, err := NewDiff(fi, xv); err == nil {
		t.Errorf("shared free index between function and variable should fail with an index conflict")
	}
}

func TestSpatialDerivativeIndexBookkeeping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.deriv")
	defer teardown()
	//
	alloc := weft.NewCounter()
	f := coefficient(t, alloc, weft.Shape{3})
	i := index.New(alloc)
	fi, _ := expr.NewIndexed(f, index.MultiIndex{i})
	// d(f[i])/dx_i: i repeated, no free indices
	sd, err := NewSpatialDerivative(fi, index.MultiIndex{i})
	if err != nil {
		t.Fatalf("spatial derivative construction failed: %v", err)
	}
	if len(sd.FreeIndices()) != 0 {
		t.Errorf("i should be summed, free indices are %s", sd.FreeIndices())
	}
	if len(sd.RepeatedIndices()) != 1 || sd.RepeatedIndices()[0] != i {
		t.Errorf("repeated indices should be (i), are %s", sd.RepeatedIndices())
	}
	dims := sd.RepeatedIndexDimensions(index.DefaultDim)
	if dims[i] != index.DefaultDim {
		t.Errorf("repeated derivative index should iterate the spatial range")
	}
	// d(f[i])/dx_j: both free
	j := index.New(alloc)
	sd2, _ := NewSpatialDerivative(fi, index.MultiIndex{j})
	if len(sd2.FreeIndices()) != 2 {
		t.Errorf("i and j should both be free, free indices are %s", sd2.FreeIndices())
	}
}

func TestGradLowering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.deriv")
	defer teardown()
	//
	alloc := weft.NewCounter()
	scalar := coefficient(t, alloc, weft.Shape{})
	g, _ := NewGrad(scalar)
	low, err := g.AsBasic(alloc)
	if err != nil {
		t.Fatalf("grad lowering failed: %v", err)
	}
	if low.Kind() != expr.KComponentTensor {
		t.Errorf("lowered grad should be a component tensor, is %s", low.Kind())
	}
	if !low.Shape().Equals(g.Shape()) {
		t.Errorf("lowering must preserve the shape, %s != %s", low.Shape(), g.Shape())
	}
	vec := coefficient(t, alloc, weft.Shape{3})
	gv, _ := NewGrad(vec)
	lowv, err := gv.AsBasic(alloc)
	if err != nil {
		t.Fatalf("grad lowering failed: %v", err)
	}
	if !lowv.Shape().Equals(gv.Shape()) {
		t.Errorf("lowering must preserve the shape, %s != %s", lowv.Shape(), gv.Shape())
	}
}

func TestDivLowering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.deriv")
	defer teardown()
	//
	alloc := weft.NewCounter()
	vec := coefficient(t, alloc, weft.Shape{3})
	d, _ := NewDiv(vec)
	low, err := d.AsBasic(alloc)
	if err != nil {
		t.Fatalf("div lowering failed: %v", err)
	}
	if !low.Shape().Equals(weft.Shape{}) {
		t.Errorf("lowered div of a vector should be scalar, is %s", low.Shape())
	}
	if low.Kind() != expr.KSpatialDerivative {
		t.Errorf("lowered rank-1 div should be a spatial derivative, is %s", low.Kind())
	}
	if len(low.FreeIndices()) != 0 {
		t.Errorf("the contraction index must be summed, free are %s", low.FreeIndices())
	}
	mat := coefficient(t, alloc, weft.Shape{3, 3})
	dm, _ := NewDiv(mat)
	lowm, err := dm.AsBasic(alloc)
	if err != nil {
		t.Fatalf("div lowering failed: %v", err)
	}
	if !lowm.Shape().Equals(dm.Shape()) {
		t.Errorf("lowering must preserve the shape, %s != %s", lowm.Shape(), dm.Shape())
	}
}

func TestGradRejectsFreeIndices(t *testing.T) {
	alloc := weft.NewCounter()
	f := coefficient(t, alloc, weft.Shape{3})
	i := index.New(alloc)
	fi, _ := expr.NewIndexed(f, index.MultiIndex{i})
	if _, err := NewGrad(fi); err == nil {
		t.Errorf("grad of an expression with free indices should fail construction")
	}
}
