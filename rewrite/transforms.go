package rewrite

import (
	"fmt"

	"github.com/npillmayer/weft/expr"
)

// ApplyTransforms propagates deferred transform operators towards the
// terminals: every Transformed(A, op) node is replaced by a copy of A
// in which op directly wraps the reference values of form arguments.
// An expression free of transform nodes is a fixed point of this pass.
func ApplyTransforms(e expr.Expr) (expr.Expr, error) {
	return MapExprDAG(transformDispatch(), e)
}

// transformDispatch passes terminals through, reuses untouched
// compounds, and on a transform wrapper delegates to a nested ruleset
// bound to the wrapper's carried operator.
func transformDispatch() *RuleSet {
	return NewRuleSet().
		WithDefault(ReuseIfUntouched).
		Handle(expr.KTransformed, func(e expr.Expr, operands []expr.Expr) (expr.Expr, error) {
			t := e.(*expr.Transformed)
			tracer().Debugf("propagating %s into %s", t.Op().Name(), operands[0])
			return MapExprDAG(transformedRules(t.Op()), operands[0])
		})
}

// transformedRules rewraps reference values of form arguments with the
// operator and leaves everything else untouched. A reference value
// wrapping anything but a form-argument terminal means the DAG is
// malformed.
func transformedRules(op expr.TransformOp) *RuleSet {
	return NewRuleSet().
		WithDefault(ReuseIfUntouched).
		Handle(expr.KReferenceValue, func(e expr.Expr, operands []expr.Expr) (expr.Expr, error) {
			f := operands[0]
			if !f.Kind().Terminal() || !f.Kind().FormArgument() {
				panic(fmt.Sprintf("reference value wraps a %s, must wrap a form-argument terminal", f.Kind()))
			}
			rv, err := ReuseIfUntouched(e, operands)
			if err != nil {
				return nil, err
			}
			t2, err := expr.NewTransformed(rv, op)
			if err != nil {
				return nil, err
			}
			return t2, nil
		})
}
