package expr

import (
	"fmt"

	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/index"
)

// --- ReferenceValue -----------------------------------------------------------

// ReferenceValue is the value of a terminal pulled back to the
// reference (unmapped) coordinate system. It never wraps anything but a
// terminal; it is the designated stopping point for transform
// propagation.
type ReferenceValue struct {
	f Expr
}

// NewReferenceValue wraps a terminal.
func NewReferenceValue(f Expr) (*ReferenceValue, error) {
	if f == nil {
		return nil, fmt.Errorf("expecting an expression for reference-value construction")
	}
	if !f.Kind().Terminal() {
		return nil, fmt.Errorf("reference value must wrap a terminal, got %s", f.Kind())
	}
	return &ReferenceValue{f: f}, nil
}

// Kind of a reference value is KReferenceValue.
func (rv *ReferenceValue) Kind() Kind { return KReferenceValue }

// Operands is the single wrapped terminal.
func (rv *ReferenceValue) Operands() []Expr { return []Expr{rv.f} }

// Shape is inherited from the wrapped terminal.
func (rv *ReferenceValue) Shape() weft.Shape { return rv.f.Shape() }

// FreeIndices are inherited from the wrapped terminal.
func (rv *ReferenceValue) FreeIndices() index.MultiIndex { return rv.f.FreeIndices() }

// Reconstruct builds a reference value over a new operand.
func (rv *ReferenceValue) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("reference value has 1 operand, cannot reconstruct with %d", len(operands))
	}
	r, err := NewReferenceValue(operands[0])
	if err != nil {
		return nil, err
	}
	return r, nil
}

// SignatureData wraps the fingerprint of the terminal.
func (rv *ReferenceValue) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"ReferenceValue", rv.f.SignatureData(rn)}
}

func (rv *ReferenceValue) String() string {
	return fmt.Sprintf("reference_value(%s)", rv.f)
}

var _ Expr = &ReferenceValue{}

// --- Transformed ---------------------------------------------------------------

// TransformOp is an opaque operator carried by a Transformed node. It
// is only semantically meaningful when applied to the reference value
// of a form argument; the transform-propagation pass in package rewrite
// pushes it down to exactly those nodes.
type TransformOp interface {
	Name() string
	HashData() interface{}
}

// Transformed marks a sub-expression as "apply op to the fully
// evaluated expression". The operator is carried alongside the single
// operand, it is not itself a DAG node.
type Transformed struct {
	f  Expr
	op TransformOp
}

// NewTransformed defers the application of op to an expression.
func NewTransformed(f Expr, op TransformOp) (*Transformed, error) {
	if f == nil {
		return nil, fmt.Errorf("expecting an expression for transform construction")
	}
	if op == nil {
		return nil, fmt.Errorf("expecting a transform operator for transform construction")
	}
	return &Transformed{f: f, op: op}, nil
}

// Op returns the carried transform operator.
func (t *Transformed) Op() TransformOp {
	return t.op
}

// Kind of a transform wrapper is KTransformed.
func (t *Transformed) Kind() Kind { return KTransformed }

// Operands is the single wrapped expression.
func (t *Transformed) Operands() []Expr { return []Expr{t.f} }

// Shape is inherited from the wrapped expression.
func (t *Transformed) Shape() weft.Shape { return t.f.Shape() }

// FreeIndices are inherited from the wrapped expression.
func (t *Transformed) FreeIndices() index.MultiIndex { return t.f.FreeIndices() }

// Reconstruct builds a transform wrapper over a new operand, keeping
// the carried operator.
func (t *Transformed) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("transformed has 1 operand, cannot reconstruct with %d", len(operands))
	}
	r, err := NewTransformed(operands[0], t.op)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// SignatureData combines the operand fingerprint with the operator's
// hash data.
func (t *Transformed) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Transformed", t.f.SignatureData(rn), t.op.HashData()}
}

func (t *Transformed) String() string {
	return fmt.Sprintf("transformed(%s, %s)", t.f, t.op.Name())
}

var _ Expr = &Transformed{}
