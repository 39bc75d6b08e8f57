/*
Package deriv implements weft's differential operator nodes: spatial
derivatives in index notation, differentiation w.r.t. a variable, and
the compound operators grad, div, curl and rot. Each operator derives
its shape and free-index set from its operand under fixed rules;
precondition violations are construction-time errors, the node is never
built.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package deriv

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.deriv'.
func tracer() tracing.Trace {
	return tracing.Select("weft.deriv")
}
