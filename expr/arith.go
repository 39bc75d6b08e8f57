package expr

import (
	"fmt"

	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/index"
)

// The full catalogue of algebraic node types is owned by downstream
// packages. The handful of kinds below is what the core mechanisms
// (rewriting, index bookkeeping, lowering of differential operators)
// need to operate on.

// --- Sum ----------------------------------------------------------------------

// Sum is the addition of two expressions of equal shape and equal free
// index sets.
type Sum struct {
	a, b Expr
}

// NewSum adds two expressions.
func NewSum(a, b Expr) (*Sum, error) {
	if !a.Shape().Equals(b.Shape()) {
		return nil, fmt.Errorf("sum: operand shapes %s and %s differ", a.Shape(), b.Shape())
	}
	if !sameIndexSet(a.FreeIndices(), b.FreeIndices()) {
		return nil, fmt.Errorf("sum: operand free indices %s and %s differ",
			a.FreeIndices(), b.FreeIndices())
	}
	return &Sum{a: a, b: b}, nil
}

func sameIndexSet(a, b index.MultiIndex) bool {
	if len(a) != len(b) {
		return false
	}
	for _, i := range a {
		if !b.Contains(i) {
			return false
		}
	}
	return true
}

// Kind of a sum is KSum.
func (s *Sum) Kind() Kind { return KSum }

// Operands are the two summands.
func (s *Sum) Operands() []Expr { return []Expr{s.a, s.b} }

// Shape is the common operand shape.
func (s *Sum) Shape() weft.Shape { return s.a.Shape() }

// FreeIndices is the common operand index set.
func (s *Sum) FreeIndices() index.MultiIndex { return s.a.FreeIndices() }

// Reconstruct builds a sum over new operands.
func (s *Sum) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 2 {
		return nil, fmt.Errorf("sum has 2 operands, cannot reconstruct with %d", len(operands))
	}
	s2, err := NewSum(operands[0], operands[1])
	if err != nil {
		return nil, err
	}
	return s2, nil
}

// SignatureData combines the operand fingerprints.
func (s *Sum) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Sum", s.a.SignatureData(rn), s.b.SignatureData(rn)}
}

func (s *Sum) String() string {
	return fmt.Sprintf("(%s + %s)", s.a, s.b)
}

var _ Expr = &Sum{}

// --- Product -------------------------------------------------------------------

// Product is the multiplication of two scalar expressions. A symbol
// free in both factors becomes repeated and is implicitly summed.
type Product struct {
	a, b     Expr
	free     index.MultiIndex
	repeated index.MultiIndex
}

// NewProduct multiplies two scalar expressions.
func NewProduct(a, b Expr) (*Product, error) {
	if a.Shape().Rank() != 0 || b.Shape().Rank() != 0 {
		return nil, fmt.Errorf("product: operands must be scalar, got shapes %s and %s",
			a.Shape(), b.Shape())
	}
	combined := append(append(index.MultiIndex{}, a.FreeIndices()...), b.FreeIndices()...)
	free, repeated, err := index.Extract(combined)
	if err != nil {
		return nil, fmt.Errorf("product: %v", err)
	}
	return &Product{a: a, b: b, free: free, repeated: repeated}, nil
}

// Kind of a product is KProduct.
func (p *Product) Kind() Kind { return KProduct }

// Operands are the two factors.
func (p *Product) Operands() []Expr { return []Expr{p.a, p.b} }

// Shape of a product is scalar.
func (p *Product) Shape() weft.Shape { return weft.Shape{} }

// FreeIndices are the symbols free in exactly one factor.
func (p *Product) FreeIndices() index.MultiIndex { return p.free }

// RepeatedIndices are the symbols summed over both factors.
func (p *Product) RepeatedIndices() index.MultiIndex { return p.repeated }

// Reconstruct builds a product over new operands.
func (p *Product) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 2 {
		return nil, fmt.Errorf("product has 2 operands, cannot reconstruct with %d", len(operands))
	}
	p2, err := NewProduct(operands[0], operands[1])
	if err != nil {
		return nil, err
	}
	return p2, nil
}

// SignatureData combines the operand fingerprints.
func (p *Product) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Product", p.a.SignatureData(rn), p.b.SignatureData(rn)}
}

func (p *Product) String() string {
	return fmt.Sprintf("(%s * %s)", p.a, p.b)
}

var _ Expr = &Product{}

// --- Indexed -------------------------------------------------------------------

// Indexed applies a full multi-index to a tensor-valued expression,
// yielding a scalar component. Symbols occurring both in the operand's
// free indices and the applied multi-index become repeated.
type Indexed struct {
	f        Expr
	indices  index.MultiIndex
	free     index.MultiIndex
	repeated index.MultiIndex
}

// NewIndexed indexes all axes of an expression.
func NewIndexed(f Expr, ii index.MultiIndex) (*Indexed, error) {
	if len(ii) != f.Shape().Rank() {
		return nil, fmt.Errorf("indexed: expression of rank %d indexed with %d indices",
			f.Shape().Rank(), len(ii))
	}
	combined := append(append(index.MultiIndex{}, f.FreeIndices()...), ii...)
	free, repeated, err := index.Extract(combined)
	if err != nil {
		return nil, fmt.Errorf("indexed: %v", err)
	}
	return &Indexed{f: f, indices: ii, free: free, repeated: repeated}, nil
}

// Indices returns the applied multi-index.
func (ix *Indexed) Indices() index.MultiIndex { return ix.indices }

// CarriedIndices exposes the applied multi-index to the signature
// engine.
func (ix *Indexed) CarriedIndices() index.MultiIndex { return ix.indices }

// Kind of an indexed component is KIndexed.
func (ix *Indexed) Kind() Kind { return KIndexed }

// Operands is the indexed expression.
func (ix *Indexed) Operands() []Expr { return []Expr{ix.f} }

// Shape of a fully indexed expression is scalar.
func (ix *Indexed) Shape() weft.Shape { return weft.Shape{} }

// FreeIndices are the not-yet-summed symbols of the component.
func (ix *Indexed) FreeIndices() index.MultiIndex { return ix.free }

// RepeatedIndices are the implicitly summed symbols.
func (ix *Indexed) RepeatedIndices() index.MultiIndex { return ix.repeated }

// Reconstruct builds an indexed component over a new operand, keeping
// the multi-index.
func (ix *Indexed) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("indexed has 1 operand, cannot reconstruct with %d", len(operands))
	}
	ix2, err := NewIndexed(operands[0], ix.indices)
	if err != nil {
		return nil, err
	}
	return ix2, nil
}

// SignatureData combines the operand fingerprint with the renumbered
// multi-index.
func (ix *Indexed) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Indexed", ix.f.SignatureData(rn), SigIndices(rn, ix.indices)}
}

func (ix *Indexed) String() string {
	return fmt.Sprintf("%s[%s]", ix.f, ix.indices)
}

var _ Expr = &Indexed{}
var _ IndexCarrier = &Indexed{}

// --- ComponentTensor --------------------------------------------------------------

// ComponentTensor assembles a tensor from a scalar expression indexed
// by free symbols: the inverse of Indexed. Every axis iterates over the
// default spatial dimension.
type ComponentTensor struct {
	f       Expr
	indices index.MultiIndex
	shape   weft.Shape
	free    index.MultiIndex
}

// NewComponentTensor builds a tensor of the components of a scalar
// expression, one axis per index symbol. Each symbol must be free in
// the expression.
func NewComponentTensor(f Expr, ii index.MultiIndex) (*ComponentTensor, error) {
	if f.Shape().Rank() != 0 {
		return nil, fmt.Errorf("component tensor: expression must be scalar, got shape %s", f.Shape())
	}
	shape := make(weft.Shape, len(ii))
	for k, i := range ii {
		if !f.FreeIndices().Contains(i) {
			return nil, fmt.Errorf("component tensor: index %s is not free in %s", i, f)
		}
		shape[k] = index.DefaultDim
	}
	var free index.MultiIndex
	for _, i := range f.FreeIndices() {
		if !ii.Contains(i) {
			free = append(free, i)
		}
	}
	return &ComponentTensor{f: f, indices: ii, shape: shape, free: free}, nil
}

// Indices returns the axis symbols of the tensor.
func (ct *ComponentTensor) Indices() index.MultiIndex { return ct.indices }

// CarriedIndices exposes the axis symbols to the signature engine.
func (ct *ComponentTensor) CarriedIndices() index.MultiIndex { return ct.indices }

// Kind of a component tensor is KComponentTensor.
func (ct *ComponentTensor) Kind() Kind { return KComponentTensor }

// Operands is the scalar component expression.
func (ct *ComponentTensor) Operands() []Expr { return []Expr{ct.f} }

// Shape has one axis of the default spatial dimension per index symbol.
func (ct *ComponentTensor) Shape() weft.Shape { return ct.shape }

// FreeIndices are the component's free symbols not bound to an axis.
func (ct *ComponentTensor) FreeIndices() index.MultiIndex { return ct.free }

// Reconstruct builds a component tensor over a new operand, keeping the
// axis symbols.
func (ct *ComponentTensor) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("component tensor has 1 operand, cannot reconstruct with %d", len(operands))
	}
	ct2, err := NewComponentTensor(operands[0], ct.indices)
	if err != nil {
		return nil, err
	}
	return ct2, nil
}

// SignatureData combines the operand fingerprint with the renumbered
// axis symbols.
func (ct *ComponentTensor) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"ComponentTensor", ct.f.SignatureData(rn), SigIndices(rn, ct.indices)}
}

func (ct *ComponentTensor) String() string {
	return fmt.Sprintf("as_tensor(%s, %s)", ct.f, ct.indices)
}

var _ Expr = &ComponentTensor{}
var _ IndexCarrier = &ComponentTensor{}
