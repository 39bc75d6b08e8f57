package rewrite

import (
	"fmt"

	"github.com/npillmayer/weft/expr"
)

// Rule rewrites a single node. It receives the original node together
// with the already-rewritten results for its operands, in operand
// order; terminals receive an empty slice.
type Rule func(e expr.Expr, operands []expr.Expr) (expr.Expr, error)

// RuleSet is an explicit dispatch table from node kinds to rules, plus
// an optional default applied to kinds without a specific rule.
// Applying a ruleset to a kind with neither is an error: the ruleset is
// incomplete, which is a programming error, not a data error.
type RuleSet struct {
	rules map[expr.Kind]Rule
	deflt Rule
}

// NewRuleSet creates an empty ruleset.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[expr.Kind]Rule)}
}

// Handle registers a rule for a node kind. Returns the ruleset for
// chaining.
func (rs *RuleSet) Handle(k expr.Kind, r Rule) *RuleSet {
	rs.rules[k] = r
	return rs
}

// WithDefault registers the fallback rule for kinds without a specific
// one. Returns the ruleset for chaining.
func (rs *RuleSet) WithDefault(r Rule) *RuleSet {
	rs.deflt = r
	return rs
}

func (rs *RuleSet) ruleFor(k expr.Kind) Rule {
	if r, ok := rs.rules[k]; ok {
		return r
	}
	return rs.deflt
}

// --- Built-in defaults ------------------------------------------------------

// Passthrough maps a node to itself. It is the natural default for
// terminals.
func Passthrough(e expr.Expr, _ []expr.Expr) (expr.Expr, error) {
	return e, nil
}

// ReuseIfUntouched returns the original node when every rewritten
// operand is identical (by identity) to the original operand, and
// rebuilds the node otherwise. With heavy sharing in a DAG, reusing
// untouched nodes avoids rebuilding entire sub-DAGs that no rule
// changed. Terminals have no operands and always count as untouched.
func ReuseIfUntouched(e expr.Expr, operands []expr.Expr) (expr.Expr, error) {
	if expr.SameOperands(e.Operands(), operands) {
		return e, nil
	}
	return e.Reconstruct(operands)
}

// --- The traversal engine -----------------------------------------------------

// MapExprDAG evaluates a ruleset over an expression DAG: one rule
// application per distinct node, in post-order, with results memoized
// by node identity. Shared sub-expressions are visited once and both
// parents observe the identical rewritten result. The memo table is
// scoped to this one invocation.
func MapExprDAG(rs *RuleSet, root expr.Expr) (expr.Expr, error) {
	if root == nil {
		panic("nil expression as traversal input")
	}
	if rs == nil {
		panic("nil ruleset as traversal input")
	}
	m := &mapper{rs: rs, memo: make(map[expr.Expr]expr.Expr)}
	return m.walk(root)
}

type mapper struct {
	rs   *RuleSet
	memo map[expr.Expr]expr.Expr
}

func (m *mapper) walk(e expr.Expr) (expr.Expr, error) {
	if r, ok := m.memo[e]; ok {
		return r, nil
	}
	operands := e.Operands()
	var rewritten []expr.Expr
	if len(operands) > 0 {
		rewritten = make([]expr.Expr, len(operands))
		for i, o := range operands {
			r, err := m.walk(o)
			if err != nil {
				return nil, err
			}
			rewritten[i] = r
		}
	}
	rule := m.rs.ruleFor(e.Kind())
	if rule == nil {
		return nil, fmt.Errorf("unhandled node kind %s in ruleset", e.Kind())
	}
	r, err := rule(e, rewritten)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("mapped %s node %s -> %s", e.Kind(), e, r)
	m.memo[e] = r
	return r, nil
}
