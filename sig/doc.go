/*
Package sig implements weft's canonical signature engine. Counted
terminals carry allocation-order counts, so two independently built but
structurally identical expressions differ in their raw counts. The
engine assigns canonical small integers to counted entities in
first-appearance order of a fixed traversal, feeds that renumbering
into the signature-data contract of every node, and digests the result
into a fingerprint string suitable as a cache key.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sig

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.sig'.
func tracer() tracing.Trace {
	return tracing.Select("weft.sig")
}
