package deriv

import (
	"fmt"

	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/expr"
	"github.com/npillmayer/weft/index"
)

// --- SpatialDerivative ------------------------------------------------------

// SpatialDerivative is the partial derivative of an expression w.r.t.
// spatial directions given by a multi-index. Symbols appearing twice
// across the expression's free indices and the derivative indices are
// repeated and implicitly summed.
type SpatialDerivative struct {
	f        expr.Expr
	indices  index.MultiIndex
	free     index.MultiIndex
	repeated index.MultiIndex
	shape    weft.Shape
}

// NewSpatialDerivative differentiates an expression w.r.t. the spatial
// directions named by ii.
func NewSpatialDerivative(f expr.Expr, ii index.MultiIndex) (*SpatialDerivative, error) {
	dxFree, _, err := index.Extract(ii)
	if err != nil {
		return nil, fmt.Errorf("spatial derivative: %v", err)
	}
	combined := append(append(index.MultiIndex{}, f.FreeIndices()...), dxFree...)
	free, repeated, err := index.Extract(combined)
	if err != nil {
		return nil, fmt.Errorf("spatial derivative: %v", err)
	}
	sd := &SpatialDerivative{
		f:        f,
		indices:  ii,
		free:     free,
		repeated: repeated,
		shape:    f.Shape(),
	}
	tracer().Debugf("new %s: free=%v repeated=%v", sd, free, repeated)
	return sd, nil
}

// Indices returns the derivative directions.
func (sd *SpatialDerivative) Indices() index.MultiIndex { return sd.indices }

// CarriedIndices exposes the derivative directions to the signature
// engine.
func (sd *SpatialDerivative) CarriedIndices() index.MultiIndex { return sd.indices }

// RepeatedIndices returns the implicitly summed symbols of the node.
func (sd *SpatialDerivative) RepeatedIndices() index.MultiIndex { return sd.repeated }

// RepeatedIndexDimensions assigns a dimension to every repeated index.
// Indices repeated through spatial differentiation always iterate over
// the spatial range.
func (sd *SpatialDerivative) RepeatedIndexDimensions(defaultDim int) map[index.Index]int {
	return index.RepeatedDims(sd.repeated, defaultDim)
}

// Kind of a spatial derivative is KSpatialDerivative.
func (sd *SpatialDerivative) Kind() expr.Kind { return expr.KSpatialDerivative }

// Operands is the differentiated expression.
func (sd *SpatialDerivative) Operands() []expr.Expr { return []expr.Expr{sd.f} }

// Shape is inherited from the differentiated expression; derivative
// indices are symbolic and consume no value axes.
func (sd *SpatialDerivative) Shape() weft.Shape { return sd.shape }

// FreeIndices are the combined not-yet-summed symbols.
func (sd *SpatialDerivative) FreeIndices() index.MultiIndex { return sd.free }

// Reconstruct differentiates a new operand in the same directions.
func (sd *SpatialDerivative) Reconstruct(operands []expr.Expr) (expr.Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("spatial derivative has 1 operand, cannot reconstruct with %d", len(operands))
	}
	sd2, err := NewSpatialDerivative(operands[0], sd.indices)
	if err != nil {
		return nil, err
	}
	return sd2, nil
}

// SignatureData combines the operand fingerprint with the renumbered
// derivative directions.
func (sd *SpatialDerivative) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"SpatialDerivative", sd.f.SignatureData(rn), expr.SigIndices(rn, sd.indices)}
}

func (sd *SpatialDerivative) String() string {
	return fmt.Sprintf("(d[%s] / dx_%s)", sd.f, sd.indices)
}

var _ expr.Expr = &SpatialDerivative{}
var _ expr.IndexCarrier = &SpatialDerivative{}

// --- Diff ----------------------------------------------------------------------

// Diff is the derivative of an expression w.r.t. a variable. The free
// index sets of function and variable must be disjoint: a shared symbol
// would make the contraction target ambiguous.
type Diff struct {
	f     expr.Expr
	x     *expr.Variable
	free  index.MultiIndex
	shape weft.Shape
}

// NewDiff differentiates f w.r.t. the variable x.
func NewDiff(f expr.Expr, x *expr.Variable) (*Diff, error) {
	if x == nil {
		return nil, fmt.Errorf("diff: expecting a variable as differentiation target")
	}
	for _, i := range f.FreeIndices() {
		if x.FreeIndices().Contains(i) {
			return nil, fmt.Errorf("diff: index conflict, %s is free in both function and variable", i)
		}
	}
	free := append(append(index.MultiIndex{}, f.FreeIndices()...), x.FreeIndices()...)
	return &Diff{
		f:     f,
		x:     x,
		free:  free,
		shape: f.Shape().Concat(x.Shape()),
	}, nil
}

// Kind of a diff is KDiff.
func (d *Diff) Kind() expr.Kind { return expr.KDiff }

// Operands are the function and the variable.
func (d *Diff) Operands() []expr.Expr { return []expr.Expr{d.f, d.x} }

// Shape is the function shape followed by the variable shape.
func (d *Diff) Shape() weft.Shape { return d.shape }

// FreeIndices are the function's followed by the variable's.
func (d *Diff) FreeIndices() index.MultiIndex { return d.free }

// Reconstruct differentiates a new function/variable pair.
func (d *Diff) Reconstruct(operands []expr.Expr) (expr.Expr, error) {
	if len(operands) != 2 {
		return nil, fmt.Errorf("diff has 2 operands, cannot reconstruct with %d", len(operands))
	}
	x, ok := operands[1].(*expr.Variable)
	if !ok {
		return nil, fmt.Errorf("second operand of diff must be a variable, got %s", operands[1].Kind())
	}
	d2, err := NewDiff(operands[0], x)
	if err != nil {
		return nil, err
	}
	return d2, nil
}

// SignatureData combines the operand fingerprints.
func (d *Diff) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Diff", d.f.SignatureData(rn), d.x.SignatureData(rn)}
}

func (d *Diff) String() string {
	return fmt.Sprintf("(d[%s] / d[%s])", d.f, d.x)
}

var _ expr.Expr = &Diff{}

// --- Grad ----------------------------------------------------------------------

// Grad is the spatial gradient of an expression without free indices.
// It prepends one spatial axis to the operand shape.
type Grad struct {
	f expr.Expr
}

// NewGrad takes the gradient of an expression.
func NewGrad(f expr.Expr) (*Grad, error) {
	if len(f.FreeIndices()) > 0 {
		return nil, fmt.Errorf("grad: operand has free indices %s", f.FreeIndices())
	}
	return &Grad{f: f}, nil
}

// Kind of a gradient is KGrad.
func (g *Grad) Kind() expr.Kind { return expr.KGrad }

// Operands is the differentiated expression.
func (g *Grad) Operands() []expr.Expr { return []expr.Expr{g.f} }

// Shape is the operand shape with one leading spatial axis.
func (g *Grad) Shape() weft.Shape {
	return weft.Shape{index.DefaultDim}.Concat(g.f.Shape())
}

// FreeIndices of a gradient is empty.
func (g *Grad) FreeIndices() index.MultiIndex { return nil }

// Reconstruct takes the gradient of a new operand.
func (g *Grad) Reconstruct(operands []expr.Expr) (expr.Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("grad has 1 operand, cannot reconstruct with %d", len(operands))
	}
	g2, err := NewGrad(operands[0])
	if err != nil {
		return nil, err
	}
	return g2, nil
}

// AsBasic lowers the gradient to index notation: one fresh index for
// the new leading axis, one per existing operand axis, assembled into a
// component tensor of spatial derivatives.
func (g *Grad) AsBasic(alloc *weft.Counter) (expr.Expr, error) {
	ii := index.New(alloc)
	f := g.f
	axes := index.MultiIndex{ii}
	if rank := f.Shape().Rank(); rank > 0 {
		jj := make(index.MultiIndex, rank)
		for k := range jj {
			jj[k] = index.New(alloc)
		}
		indexed, err := expr.NewIndexed(f, jj)
		if err != nil {
			return nil, err
		}
		f = indexed
		axes = append(axes, jj...)
	}
	sd, err := NewSpatialDerivative(f, index.MultiIndex{ii})
	if err != nil {
		return nil, err
	}
	ct, err := expr.NewComponentTensor(sd, axes)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// SignatureData wraps the operand fingerprint.
func (g *Grad) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Grad", g.f.SignatureData(rn)}
}

func (g *Grad) String() string {
	return fmt.Sprintf("grad(%s)", g.f)
}

var _ expr.Expr = &Grad{}

// --- Div -----------------------------------------------------------------------

// Div is the divergence of a tensor expression of rank >= 1 without
// free indices. It drops the leading axis of the operand shape.
type Div struct {
	f expr.Expr
}

// NewDiv takes the divergence of an expression.
func NewDiv(f expr.Expr) (*Div, error) {
	if f.Shape().Rank() < 1 {
		return nil, fmt.Errorf("div: cannot take the divergence of a scalar")
	}
	if len(f.FreeIndices()) > 0 {
		return nil, fmt.Errorf("div: operand has free indices %s", f.FreeIndices())
	}
	return &Div{f: f}, nil
}

// Kind of a divergence is KDiv.
func (d *Div) Kind() expr.Kind { return expr.KDiv }

// Operands is the differentiated expression.
func (d *Div) Operands() []expr.Expr { return []expr.Expr{d.f} }

// Shape is the operand shape without its leading axis.
func (d *Div) Shape() weft.Shape {
	s := d.f.Shape()
	return append(weft.Shape{}, s[1:]...)
}

// FreeIndices of a divergence is empty.
func (d *Div) FreeIndices() index.MultiIndex { return nil }

// Reconstruct takes the divergence of a new operand.
func (d *Div) Reconstruct(operands []expr.Expr) (expr.Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("div has 1 operand, cannot reconstruct with %d", len(operands))
	}
	d2, err := NewDiv(operands[0])
	if err != nil {
		return nil, err
	}
	return d2, nil
}

// AsBasic lowers the divergence to index notation: introduce a fresh
// summed index over the contracted axis; a rank-1 operand yields the
// scalar f[i].dx(i), higher ranks keep the remaining axes as a
// component tensor.
func (d *Div) AsBasic(alloc *weft.Counter) (expr.Expr, error) {
	ii := index.New(alloc)
	rank := d.f.Shape().Rank()
	all := make(index.MultiIndex, rank)
	for k := 0; k < rank-1; k++ {
		all[k] = index.New(alloc)
	}
	all[rank-1] = ii
	indexed, err := expr.NewIndexed(d.f, all)
	if err != nil {
		return nil, err
	}
	sd, err := NewSpatialDerivative(indexed, index.MultiIndex{ii})
	if err != nil {
		return nil, err
	}
	if rank == 1 {
		return sd, nil
	}
	ct, err := expr.NewComponentTensor(sd, all[:rank-1])
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// SignatureData wraps the operand fingerprint.
func (d *Div) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Div", d.f.SignatureData(rn)}
}

func (d *Div) String() string {
	return fmt.Sprintf("div(%s)", d.f)
}

var _ expr.Expr = &Div{}

// --- Curl ----------------------------------------------------------------------

// Curl is the 3D curl of a vector expression without free indices.
type Curl struct {
	f expr.Expr
}

// NewCurl takes the curl of a vector expression.
func NewCurl(f expr.Expr) (*Curl, error) {
	if f.Shape().Rank() != 1 {
		return nil, fmt.Errorf("curl: need a vector, got shape %s", f.Shape())
	}
	if len(f.FreeIndices()) > 0 {
		return nil, fmt.Errorf("curl: operand has free indices %s", f.FreeIndices())
	}
	return &Curl{f: f}, nil
}

// Kind of a curl is KCurl.
func (c *Curl) Kind() expr.Kind { return expr.KCurl }

// Operands is the differentiated expression.
func (c *Curl) Operands() []expr.Expr { return []expr.Expr{c.f} }

// Shape of a curl is a spatial vector.
func (c *Curl) Shape() weft.Shape { return weft.Shape{index.DefaultDim} }

// FreeIndices of a curl is empty.
func (c *Curl) FreeIndices() index.MultiIndex { return nil }

// Reconstruct takes the curl of a new operand.
func (c *Curl) Reconstruct(operands []expr.Expr) (expr.Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("curl has 1 operand, cannot reconstruct with %d", len(operands))
	}
	c2, err := NewCurl(operands[0])
	if err != nil {
		return nil, err
	}
	return c2, nil
}

// AsBasic fails: curl has no basic-operator lowering.
func (c *Curl) AsBasic(alloc *weft.Counter) (expr.Expr, error) {
	return nil, fmt.Errorf("curl has no basic-operator lowering")
}

// SignatureData wraps the operand fingerprint.
func (c *Curl) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Curl", c.f.SignatureData(rn)}
}

func (c *Curl) String() string {
	return fmt.Sprintf("curl(%s)", c.f)
}

var _ expr.Expr = &Curl{}

// --- Rot -----------------------------------------------------------------------

// Rot is the 2D rotation (scalar curl) of a vector expression without
// free indices.
type Rot struct {
	f expr.Expr
}

// NewRot takes the rot of a vector expression.
func NewRot(f expr.Expr) (*Rot, error) {
	if f.Shape().Rank() != 1 {
		return nil, fmt.Errorf("rot: need a vector, got shape %s", f.Shape())
	}
	if len(f.FreeIndices()) > 0 {
		return nil, fmt.Errorf("rot: operand has free indices %s", f.FreeIndices())
	}
	return &Rot{f: f}, nil
}

// Kind of a rot is KRot.
func (r *Rot) Kind() expr.Kind { return expr.KRot }

// Operands is the differentiated expression.
func (r *Rot) Operands() []expr.Expr { return []expr.Expr{r.f} }

// Shape of a rot is scalar.
func (r *Rot) Shape() weft.Shape { return weft.Shape{} }

// FreeIndices of a rot is empty.
func (r *Rot) FreeIndices() index.MultiIndex { return nil }

// Reconstruct takes the rot of a new operand.
func (r *Rot) Reconstruct(operands []expr.Expr) (expr.Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("rot has 1 operand, cannot reconstruct with %d", len(operands))
	}
	r2, err := NewRot(operands[0])
	if err != nil {
		return nil, err
	}
	return r2, nil
}

// AsBasic fails: rot has no basic-operator lowering.
func (r *Rot) AsBasic(alloc *weft.Counter) (expr.Expr, error) {
	return nil, fmt.Errorf("rot has no basic-operator lowering")
}

// SignatureData wraps the operand fingerprint.
func (r *Rot) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Rot", r.f.SignatureData(rn)}
}

func (r *Rot) String() string {
	return fmt.Sprintf("rot(%s)", r.f)
}

var _ expr.Expr = &Rot{}
