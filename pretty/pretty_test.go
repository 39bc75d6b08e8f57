package pretty

import (
	"strings"
	"testing"

	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/expr"
	"github.com/npillmayer/weft/space"
)

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

func TestTreeRendering(t *testing.T) {
	cell := tCell("triangle")
	fs, err := space.New(tDomain{name: "mesh", cell: cell},
		tElement{name: "P1", cell: cell, shape: weft.Shape{}})
	if err != nil {
		t.Fatalf("cannot build test space: %v", err)
	}
	alloc := weft.NewCounter()
	u, _ := expr.NewCoefficient(alloc, fs)
	s, _ := expr.NewSum(u, u)
	root, _ := expr.NewSum(s, s)
	out := Tree(root)
	if !strings.Contains(out, "w_0") {
		t.Errorf("rendering should name the coefficient, got:\n%s", out)
	}
	if !strings.Contains(out, "Sum") {
		t.Errorf("rendering should name compound kinds, got:\n%s", out)
	}
	if !strings.Contains(out, "(shared)") {
		t.Errorf("rendering should mark shared sub-DAGs, got:\n%s", out)
	}
}
