/*
Package space implements the function-space hierarchy of weft: plain
function spaces over a geometric domain, tensor-product spaces and mixed
spaces composed of an ordered sequence of sub-spaces. Domains, elements
and cells are opaque handles owned by downstream geometry/element
libraries; this package only relies on their cell, hash-data and
signature-data contracts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package space

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.space'.
func tracer() tracing.Trace {
	return tracing.Select("weft.space")
}
