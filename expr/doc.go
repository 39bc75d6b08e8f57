/*
Package expr implements weft's expression node model: a homogenous,
immutable DAG of symbolic nodes. Terminal nodes (coefficients, labels)
are the leaves; compound nodes are defined entirely in terms of their
operands. Identical sub-expressions may be shared by multiple parents,
and rewriting never mutates a node, it builds new ones.

Node kinds form a closed tagged variant (the Kind enum), so that rule
dispatch in package rewrite is an explicit table lookup instead of
reflection.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.expr'.
func tracer() tracing.Trace {
	return tracing.Select("weft.expr")
}
