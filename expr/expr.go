package expr

import (
	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/index"
)

// --- Node kinds -----------------------------------------------------------

// Kind is the closed set of node kinds an expression DAG may contain.
// Capability queries (terminal, form argument) are table lookups on the
// kind, not runtime attribute probing.
type Kind int

// All node kinds. Kinds for the differential operators live here too,
// even though their node types are implemented in package deriv: rule
// dispatch needs one closed enum for the whole DAG.
const (
	KLabel Kind = iota
	KCoefficient
	KVariable
	KReferenceValue
	KTransformed
	KSum
	KProduct
	KIndexed
	KComponentTensor
	KSpatialDerivative
	KDiff
	KGrad
	KDiv
	KCurl
	KRot
)

var kindNames = map[Kind]string{
	KLabel:             "Label",
	KCoefficient:       "Coefficient",
	KVariable:          "Variable",
	KReferenceValue:    "ReferenceValue",
	KTransformed:       "Transformed",
	KSum:               "Sum",
	KProduct:           "Product",
	KIndexed:           "Indexed",
	KComponentTensor:   "ComponentTensor",
	KSpatialDerivative: "SpatialDerivative",
	KDiff:              "Diff",
	KGrad:              "Grad",
	KDiv:               "Div",
	KCurl:              "Curl",
	KRot:               "Rot",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Kind(?)"
}

// Terminal tells if nodes of this kind are leaves of the DAG.
func (k Kind) Terminal() bool {
	return k == KLabel || k == KCoefficient
}

// FormArgument tells if nodes of this kind represent an unknown, test
// or trial field of a form.
func (k Kind) FormArgument() bool {
	return k == KCoefficient
}

// --- The expression node contract -------------------------------------------

// Expr is the contract of every expression node. Nodes are immutable
// after construction and identified by pointer: two parents referencing
// the same node share it, and a rewrite producing new nodes preserves
// or re-establishes that sharing.
type Expr interface {
	// Kind tags the concrete node type.
	Kind() Kind
	// Operands returns the fixed operand sequence; nil for terminals.
	Operands() []Expr
	// Shape is the tensor value shape of the node.
	Shape() weft.Shape
	// FreeIndices returns the symbolic indices not yet summed.
	FreeIndices() index.MultiIndex
	// Reconstruct builds a node of the same kind over new operands.
	// Terminals reject non-empty operand lists.
	Reconstruct(operands []Expr) (Expr, error)
	// SignatureData returns the order-sensitive structural fingerprint
	// of the node under a renumbering of counted identities.
	SignatureData(rn weft.Renumbering) interface{}
	String() string
}

// SameOperands compares two operand sequences by node identity.
func SameOperands(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SigIndices encodes a multi-index for signature data: every symbol by
// its renumbered identity.
func SigIndices(rn weft.Renumbering, mi index.MultiIndex) []interface{} {
	data := make([]interface{}, len(mi))
	for k, i := range mi {
		data[k] = rn.Of(i)
	}
	return data
}

// IndexCarrier is implemented by node kinds carrying a multi-index that
// is not part of their operand list (Indexed, ComponentTensor and the
// spatial derivative). The signature engine renumbers carried index
// symbols through this interface.
type IndexCarrier interface {
	CarriedIndices() index.MultiIndex
}
