/*
Package index implements the tensor-index algebra underlying weft's
differential operators: symbolic index entities, multi-indices and the
classification of index occurrences into free and implicitly summed
(repeated) ones, following the Einstein summation convention.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package index

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.index'.
func tracer() tracing.Trace {
	return tracing.Select("weft.index")
}
