package expr

import (
	"fmt"

	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/index"
	"github.com/npillmayer/weft/space"
)

// --- Label ------------------------------------------------------------------

// Label is a pure counted terminal: an opaque name with no payload,
// used by Variable to mark sub-expressions.
type Label struct {
	count int
}

// NewLabel creates a label with a fresh count.
func NewLabel(alloc *weft.Counter) *Label {
	return &Label{count: alloc.Next()}
}

// LabelWithCount creates a label with an explicit count, bumping the
// allocator past it.
func LabelWithCount(alloc *weft.Counter, count int) *Label {
	return &Label{count: alloc.Pick(count)}
}

// Count returns the identity count of the label.
func (l *Label) Count() int {
	return l.count
}

// Kind of a label is KLabel.
func (l *Label) Kind() Kind { return KLabel }

// Operands of a terminal is nil.
func (l *Label) Operands() []Expr { return nil }

// Shape of a label is scalar.
func (l *Label) Shape() weft.Shape { return weft.Shape{} }

// FreeIndices of a label is empty.
func (l *Label) FreeIndices() index.MultiIndex { return nil }

// Reconstruct of a terminal returns the terminal itself.
func (l *Label) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 0 {
		return nil, fmt.Errorf("label is a terminal, cannot reconstruct with %d operands", len(operands))
	}
	return l, nil
}

// SignatureData embeds the renumbered identity of the label.
func (l *Label) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Label", rn.Of(l)}
}

// Equals compares labels by count.
func (l *Label) Equals(other *Label) bool {
	return other != nil && l.count == other.count
}

func (l *Label) String() string {
	return fmt.Sprintf("Label(%d)", l.count)
}

var _ Expr = &Label{}
var _ weft.Counted = &Label{}

// --- Coefficient --------------------------------------------------------------

// Coefficient represents an unknown or known field in a weak form. It
// is a counted terminal: two coefficients are equal iff they carry the
// same count and equal (structurally) function spaces. The optional
// part/parent attributes record that a coefficient was split from a
// mixed one; they do not take part in equality.
type Coefficient struct {
	space  space.Space
	count  int
	shape  weft.Shape
	part   int // -1 if unset
	parent *Coefficient
}

// NewCoefficient creates a coefficient over a function space, with a
// fresh count. The space must expose a unique element, from which the
// coefficient's value shape derives.
func NewCoefficient(alloc *weft.Counter, sp space.Space) (*Coefficient, error) {
	return newCoefficient(alloc, sp, -1, -1, nil)
}

// CoefficientWithCount creates a coefficient with an explicit count,
// bumping the allocator past it.
func CoefficientWithCount(alloc *weft.Counter, sp space.Space, count int) (*Coefficient, error) {
	if count < 0 {
		return nil, fmt.Errorf("coefficient count must be non-negative, got %d", count)
	}
	return newCoefficient(alloc, sp, count, -1, nil)
}

// NewSubCoefficient creates a coefficient representing sub-space `part`
// of the parent coefficient's mixed space.
func NewSubCoefficient(alloc *weft.Counter, sp space.Space, part int, parent *Coefficient) (*Coefficient, error) {
	if part < 0 {
		return nil, fmt.Errorf("coefficient part must be non-negative, got %d", part)
	}
	return newCoefficient(alloc, sp, -1, part, parent)
}

func newCoefficient(alloc *weft.Counter, sp space.Space, count, part int, parent *Coefficient) (*Coefficient, error) {
	if sp == nil {
		return nil, fmt.Errorf("expecting a function space for coefficient construction")
	}
	el, err := sp.Element()
	if err != nil {
		return nil, fmt.Errorf("coefficient needs a space with a unique element: %v", err)
	}
	c := &Coefficient{
		space:  sp,
		count:  alloc.Pick(count),
		shape:  el.ValueShape(),
		part:   part,
		parent: parent,
	}
	tracer().Debugf("new coefficient %s over %v", c, sp)
	return c, nil
}

// Count returns the identity count of the coefficient.
func (c *Coefficient) Count() int {
	return c.count
}

// Space returns the function space the coefficient lives in.
func (c *Coefficient) Space() space.Space {
	return c.space
}

// Part returns the sub-space index the coefficient was split onto, if
// any.
func (c *Coefficient) Part() (int, bool) {
	return c.part, c.part >= 0
}

// Parent returns the coefficient this one was split from, or nil. The
// relation is non-owning and never forms a cycle.
func (c *Coefficient) Parent() *Coefficient {
	return c.parent
}

// Domain is a shortcut to the single domain of the coefficient's space.
func (c *Coefficient) Domain() (space.Domain, error) {
	if fs, ok := c.space.(*space.FunctionSpace); ok {
		return fs.Domain(), nil
	}
	domains := c.space.Domains()
	switch len(domains) {
	case 0:
		return nil, nil
	case 1:
		return domains[0], nil
	}
	return nil, fmt.Errorf("coefficient space has %d distinct domains, cannot return just one", len(domains))
}

// Domains is a shortcut to the domains of the coefficient's space.
func (c *Coefficient) Domains() []space.Domain {
	return c.space.Domains()
}

// Element is a shortcut to the element of the coefficient's space.
func (c *Coefficient) Element() (space.Element, error) {
	return c.space.Element()
}

// Mixed tells if the coefficient is defined on a mixed-cell space.
func (c *Coefficient) Mixed() bool {
	fs, ok := c.space.(*space.FunctionSpace)
	return ok && fs.Mixed()
}

// Kind of a coefficient is KCoefficient.
func (c *Coefficient) Kind() Kind { return KCoefficient }

// Operands of a terminal is nil.
func (c *Coefficient) Operands() []Expr { return nil }

// Shape is the value shape of the space's element.
func (c *Coefficient) Shape() weft.Shape { return c.shape }

// FreeIndices of a coefficient is empty.
func (c *Coefficient) FreeIndices() index.MultiIndex { return nil }

// Reconstruct of a terminal returns the terminal itself.
func (c *Coefficient) Reconstruct(operands []Expr) (Expr, error) {
	if len(operands) != 0 {
		return nil, fmt.Errorf("coefficient is a terminal, cannot reconstruct with %d operands", len(operands))
	}
	return c, nil
}

// SignatureData embeds the renumbered identity, the part index, the
// presence of a parent back-reference, and the space's fingerprint. The
// parent contributes presence only, to keep signatures renumbering
// invariant over coefficients outside the fingerprinted DAG.
func (c *Coefficient) SignatureData(rn weft.Renumbering) interface{} {
	return []interface{}{"Coefficient", rn.Of(c), c.part, c.parent != nil,
		c.space.SignatureData(rn)}
}

// Equals compares coefficients by count and function space. Part and
// parent are deliberately excluded.
func (c *Coefficient) Equals(other *Coefficient) bool {
	if other == nil {
		return false
	}
	if c == other {
		return true
	}
	return c.count == other.count && space.Equal(c.space, other.space)
}

func (c *Coefficient) String() string {
	if c.count < 10 {
		return fmt.Sprintf("w_%d", c.count)
	}
	return fmt.Sprintf("w_{%d}", c.count)
}

var _ Expr = &Coefficient{}
var _ weft.Counted = &Coefficient{}

// Coefficients creates one coefficient per sub-space of a mixed
// function space. For any other space it returns a single coefficient.
func Coefficients(alloc *weft.Counter, sp space.Space) ([]*Coefficient, error) {
	if mfs, ok := sp.(*space.MixedFunctionSpace); ok {
		cs := make([]*Coefficient, mfs.NumSubSpaces())
		for i := range cs {
			c, err := NewCoefficient(alloc, mfs.SubSpace(i))
			if err != nil {
				return nil, err
			}
			cs[i] = c
		}
		return cs, nil
	}
	c, err := NewCoefficient(alloc, sp)
	if err != nil {
		return nil, err
	}
	return []*Coefficient{c}, nil
}
