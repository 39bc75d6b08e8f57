/*
Package pretty renders expression DAGs as indented trees, for debugging
and tracing. Shared sub-expressions are printed once and referenced by a
marker on later visits, so the rendering stays proportional to the
number of distinct nodes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pretty

import (
	"fmt"

	"github.com/npillmayer/weft/expr"
	"github.com/pterm/pterm"
)

// Tree renders an expression DAG as an indented tree string.
func Tree(e expr.Expr) string {
	ll := leveledExpr(e, pterm.LeveledList{}, 0, make(map[expr.Expr]bool))
	root := pterm.NewTreeFromLeveledList(ll)
	s, err := pterm.DefaultTree.WithRoot(root).Srender()
	if err != nil {
		return fmt.Sprintf("<unprintable expression: %v>", err)
	}
	return s
}

func leveledExpr(e expr.Expr, ll pterm.LeveledList, level int, seen map[expr.Expr]bool) pterm.LeveledList {
	if e == nil {
		return append(ll, pterm.LeveledListItem{Level: level, Text: "nil"})
	}
	if seen[e] && len(e.Operands()) > 0 {
		return append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  label(e) + " (shared)",
		})
	}
	seen[e] = true
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: label(e)})
	for _, o := range e.Operands() {
		ll = leveledExpr(o, ll, level+1, seen)
	}
	return ll
}

func label(e expr.Expr) string {
	if e.Kind().Terminal() {
		return e.String()
	}
	return fmt.Sprintf("%s %s", e.Kind(), e.Shape())
}
