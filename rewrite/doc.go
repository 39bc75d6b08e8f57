/*
Package rewrite implements weft's generic rewrite machinery: a ruleset
is a dispatch table from node kinds to rewrite rules, and MapExprDAG
evaluates a ruleset over an expression DAG in a single post-order pass,
memoized by node identity. Whatever sharing a ruleset does not
deliberately break is preserved in the output, and the cost is linear
in the number of distinct nodes, not in the number of root-to-leaf
paths.

The package also provides the one concrete rewrite pass of the core:
ApplyTransforms, which pushes deferred transform operators down to the
reference values of form arguments.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rewrite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("weft.rewrite")
}
