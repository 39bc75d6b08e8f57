package sig

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/weft"
	"github.com/npillmayer/weft/expr"
)

// Renumber assigns canonical small integers to all counted entities
// reachable from the given expression roots: counted terminals
// (coefficients, labels) and index symbols, in first-appearance order
// of a post-order walk. The resulting map is valid for one
// fingerprinting pass; comparing two expressions means renumbering both
// through one map or through maps built the same way.
func Renumber(roots ...expr.Expr) weft.Renumbering {
	w := &walker{
		rn:      make(weft.Renumbering),
		visited: hashset.New(),
	}
	for _, root := range roots {
		w.walk(root)
	}
	tracer().Debugf("renumbered %d counted entities", len(w.rn))
	return w.rn
}

type walker struct {
	rn      weft.Renumbering
	visited *hashset.Set
	next    int
}

func (w *walker) walk(e expr.Expr) {
	if e == nil || w.visited.Contains(e) {
		return
	}
	w.visited.Add(e)
	for _, o := range e.Operands() {
		w.walk(o)
	}
	for _, i := range e.FreeIndices() {
		w.number(i)
	}
	if ic, ok := e.(expr.IndexCarrier); ok {
		for _, i := range ic.CarriedIndices() {
			w.number(i)
		}
	}
	if c, ok := e.(weft.Counted); ok {
		w.number(c)
	}
}

func (w *walker) number(c weft.Counted) {
	if _, ok := w.rn[c]; ok {
		return
	}
	w.rn[c] = w.next
	w.next++
}

// Signature fingerprints an expression DAG: a digest of its signature
// data under a fresh first-appearance renumbering. Structurally
// equivalent expressions yield equal signatures regardless of the raw
// counts of their terminals.
func Signature(e expr.Expr) (string, error) {
	rn := Renumber(e)
	return digest(e.SignatureData(rn))
}

// SignatureWith fingerprints an expression under a caller-supplied
// renumbering, for fingerprinting several related expressions
// consistently.
func SignatureWith(e expr.Expr, rn weft.Renumbering) (string, error) {
	return digest(e.SignatureData(rn))
}

// HashDataer is any entity exposing a renumbering-independent
// structural fingerprint (domains, elements, spaces).
type HashDataer interface {
	HashData() interface{}
}

// Hash digests the hash data of an entity without counted identity.
func Hash(h HashDataer) (string, error) {
	return digest(h.HashData())
}

func digest(data interface{}) (string, error) {
	s, err := structhash.Hash(struct{ D interface{} }{D: data}, 1)
	if err != nil {
		return "", fmt.Errorf("cannot digest signature data: %v", err)
	}
	return s, nil
}
