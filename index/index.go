package index

import (
	"fmt"
	"strings"

	"github.com/npillmayer/weft"
)

// DefaultDim is the default spatial dimension. Repeated indices
// introduced by spatial differentiation iterate over this range unless
// a dimension map says otherwise.
const DefaultDim = 3

// --- Index symbols ------------------------------------------------------

// Index is a symbolic tensor index ("i", "j", …). Indices are counted
// entities: their identity is the count handed out by an allocator, two
// Index values with the same count denote the same symbol.
type Index struct {
	id int
}

// New creates a fresh index symbol.
func New(alloc *weft.Counter) Index {
	return Index{id: alloc.Next()}
}

// WithCount creates an index symbol with an explicit count, bumping the
// allocator past it.
func WithCount(alloc *weft.Counter, count int) Index {
	return Index{id: alloc.Pick(count)}
}

// Count returns the identity count of an index symbol.
func (i Index) Count() int {
	return i.id
}

func (i Index) String() string {
	return fmt.Sprintf("i_%d", i.id)
}

var _ weft.Counted = Index{}

// --- Multi-indices ------------------------------------------------------

// MultiIndex is an ordered sequence of index symbols, e.g. the "(i,j)"
// in an expression v[i,j].
type MultiIndex []Index

func (m MultiIndex) String() string {
	var b strings.Builder
	b.WriteRune('(')
	for k, i := range m {
		if k > 0 {
			b.WriteRune(',')
		}
		b.WriteString(i.String())
	}
	b.WriteRune(')')
	return b.String()
}

// Contains tells if a multi-index mentions a symbol.
func (m MultiIndex) Contains(i Index) bool {
	for _, j := range m {
		if j == i {
			return true
		}
	}
	return false
}

// --- Occurrence classification -------------------------------------------

// Extract classifies every symbol of a combined index context into
// exactly one of {free, repeated}: a symbol occurring once is free, a
// symbol occurring twice is repeated and implicitly summed. More than
// two occurrences of a symbol make the contraction ambiguous and are
// rejected. Both result sequences list symbols in first-appearance
// order.
func Extract(indices []Index) (free MultiIndex, repeated MultiIndex, err error) {
	counts := make(map[Index]int, len(indices))
	for _, i := range indices {
		counts[i]++
		if counts[i] > 2 {
			return nil, nil, fmt.Errorf("index %s occurs %d times, at most 2 allowed", i, counts[i])
		}
	}
	seen := make(map[Index]bool, len(indices))
	for _, i := range indices {
		if seen[i] {
			continue
		}
		seen[i] = true
		if counts[i] == 1 {
			free = append(free, i)
		} else {
			repeated = append(repeated, i)
		}
	}
	tracer().Debugf("extract%v: free=%v, repeated=%v", MultiIndex(indices), free, repeated)
	return free, repeated, nil
}

// RepeatedDims assigns a dimension to every repeated (summed) index.
// Indices introduced by spatial differentiation always iterate over the
// spatial range, therefore each one maps to the given default dimension.
func RepeatedDims(repeated MultiIndex, dim int) map[Index]int {
	d := make(map[Index]int, len(repeated))
	for _, i := range repeated {
		d[i] = dim
	}
	return d
}
