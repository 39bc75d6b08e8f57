package expr

import (
	"fmt"

	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/index"
)

// Variable is a representative for another expression: a wrapped
// expression plus a label. It serves as a differentiation target and as
// a marker for common sub-expressions. Shape and free indices are
// inherited from the wrapped expression; equality compares only the
// label count, not the wrapped content.
type Variable struct {
	expr  Expr
	label *Label
}

// NewVariable wraps an expression in a variable with a fresh label.
func NewVariable(alloc *weft.Counter, e Expr) (*Variable, error) {
	return VariableWith(e, NewLabel(alloc))
}

// VariableWith wraps an expression in a variable carrying the given
// label.
func VariableWith(e Expr, l *Label) (*Variable, error) {
	if e == nil {
		return nil, fmt.Errorf("expecting an expression for variable construction")
	}
	if l == nil {
		return nil, fmt.Errorf("expecting a label for variable construction")
	}
	return &Variable{expr: e, label: l}, nil
}

// Expression returns the wrapped expression.
func (v *Variable) Expression() Expr {
	return v.expr
}

// Label returns the identity label of the variable.
func (v *Variable) Label() *Label {
	return v.label
}

// Kind of a variable is KVariable.
func (v *Variable) Kind() Kind { return KVariable }

// Operands of a variable are the wrapped expression and its label.
func (v *Variable) Operands() []Expr {
	return []Expr{v.expr, v.label}
}

// Shape is inherited from the wrapped expression.
func (v *Variable) Shape() weft.Shape { return v.expr.Shape() }

// FreeIndices are inherited from the wrapped expression.
func (v *Variable) FreeIndices() index.MultiIndex { return v.expr.FreeIndices() }

// Reconstruct builds a variable over a new expression/label pair.
func (v *Variable) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 2 {
		return nil, fmt.Errorf("variable has 2 operands, cannot reconstruct with %d", len(operands))
	}
	l, ok := operands[1].(*Label)
	if !ok {
		return nil, fmt.Errorf("second operand of variable must be a label, got %s", operands[1].Kind())
	}
	v2, err := VariableWith(operands[0], l)
	if err != nil {
		return nil, err
	}
	return v2, nil
}

// SignatureData combines the fingerprints of expression and label.
func (v *Variable) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Variable", v.expr.SignatureData(rn), v.label.SignatureData(rn)}
}

// Equals compares variables extensionally over their label count.
func (v *Variable) Equals(other *Variable) bool {
	return other != nil && v.label.Equals(other.label)
}

func (v *Variable) String() string {
	return fmt.Sprintf("Variable(%s, %s)", v.expr, v.label)
}

var _ Expr = &Variable{}
