package weft

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// --- Shapes -----------------------------------------------------------

// Shape is the value shape of an expression: an ordered sequence of
// non-negative tensor dimensions. A scalar has the empty shape.
type Shape []int

// Rank returns the number of axes of a shape.
func (s Shape) Rank() int {
	return len(s)
}

// Equals compares two shapes axis by axis.
func (s Shape) Equals(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, d := range s {
		if other[i] != d {
			return false
		}
	}
	return true
}

// Concat appends the axes of another shape, returning a fresh shape.
// Neither operand is modified.
func (s Shape) Concat(other Shape) Shape {
	r := make(Shape, 0, len(s)+len(other))
	r = append(r, s...)
	return append(r, other...)
}

func (s Shape) String() string {
	var b strings.Builder
	b.WriteRune('(')
	for i, d := range s {
		if i > 0 {
			b.WriteRune(',')
		}
		b.WriteString(strconv.Itoa(d))
	}
	b.WriteRune(')')
	return b.String()
}

// --- Counted identities -----------------------------------------------

// Counted is the capability of entities carrying an allocation count as
// their identity (coefficients, labels, index symbols). Two counted
// entities of the same kind and count denote the same logical entity.
type Counted interface {
	Count() int
}

// Counter hands out monotonically increasing counts for Counted entities.
// There is deliberately no package-global counter: clients create one
// allocator per logical "form universe" and pass it to the constructors
// of counted entities. Increments are atomic, so a single allocator may
// be shared between goroutines.
type Counter struct {
	n int64
}

// NewCounter creates an allocator starting at count 0.
func NewCounter() *Counter {
	return &Counter{n: -1}
}

// Next hands out the next free count.
func (c *Counter) Next() int {
	return int(atomic.AddInt64(&c.n, 1))
}

// Bump ensures that all future counts are greater than n. Used when an
// entity is constructed with an explicit count.
func (c *Counter) Bump(n int) {
	for {
		cur := atomic.LoadInt64(&c.n)
		if cur >= int64(n) || atomic.CompareAndSwapInt64(&c.n, cur, int64(n)) {
			return
		}
	}
}

// Pick returns count, if non-negative, and bumps the allocator past it;
// otherwise it hands out the next free count. This is the common
// protocol of all counted-entity constructors accepting an optional
// explicit count.
func (c *Counter) Pick(count int) int {
	if count < 0 {
		return c.Next()
	}
	c.Bump(count)
	return count
}

// --- Renumbering ------------------------------------------------------

// Renumbering maps counted entities (by identity) to canonical small
// integers for one signature-computation pass. Raw counts depend on
// allocation order; signature data embeds the renumbered identity
// instead, so that two independently built but structurally identical
// expressions fingerprint equally.
type Renumbering map[Counted]int

// Of looks up the canonical number of a counted entity. An entity
// missing from the map means the renumbering was computed over a
// different DAG, which is a programming error and panics.
func (rn Renumbering) Of(c Counted) int {
	n, ok := rn[c]
	if !ok {
		panic(fmt.Sprintf("entity with count %d missing from renumbering", c.Count()))
	}
	return n
}
