/*
Package weft is a symbolic kernel for finite-element weak forms.

weft represents weak-form integrands as immutable expression DAGs and
provides the machinery to rewrite and fingerprint them. Package structure
is as follows:

■ expr: Package expr implements the expression node model: terminals
(coefficients, labels), variables, reference values and deferred
transform wrappers.

■ index: Package index implements the tensor-index algebra (free and
repeated indices, Einstein summation bookkeeping).

■ space: Package space implements the function-space hierarchy, i.e. the
description of where a coefficient field lives.

■ deriv: Package deriv implements differential operator nodes (spatial
derivatives, grad, div, curl, rot) on top of the index algebra.

■ rewrite: Package rewrite implements a generic, memoizing DAG traversal
engine for rule-driven rewriting, plus the transform-propagation pass.

■ sig: Package sig computes canonical, renumbering-invariant structural
signatures of expressions for caching and equivalence checks.

The base package contains primitives which are used throughout all the
other packages: shapes, counted identities and renumbering maps.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package weft
