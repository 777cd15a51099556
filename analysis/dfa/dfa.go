// Package dfa provides types and functions for implementing data-flow analyses over finite lattices.
package dfa

import (
	"container/heap"
	"fmt"
	"log"
	"strings"

	"golang.org/x/exp/constraints"
)

// Debug enables debug output of analyses built on this package.
var Debug = false

// Debugf logs a message if [Debug] is set.
func Debugf(f string, args ...any) {
	if Debug {
		log.Printf(f, args...)
	}
}

// Join defines the [∨] operation for a [join-semilattice]. It must implement a commutative and associative binary operation
// that returns the least upper bound of two states from S.
//
// Code that calls Join functions is expected to handle the [⊥ and ⊤ elements], as well as implement idempotency. That is,
// the following properties will be enforced by [JoinWith]:
//
//   - x ∨ ⊥ = x
//   - x ∨ ⊤ = ⊤
//   - x ∨ x = x
//
// Simple table-based join functions can be created using [JoinTable].
//
// [∨]: https://en.wikipedia.org/wiki/Join_and_meet
// [join-semilattice]: https://en.wikipedia.org/wiki/Semilattice
// [⊥ and ⊤ elements]: https://en.wikipedia.org/wiki/Greatest_element_and_least_element#Top_and_bottom
type Join[S comparable] func(S, S) S

// JoinWith applies fn to a and b after handling ⊥, ⊤ and idempotency.
func JoinWith[S comparable](fn Join[S], a, b, bottom, top S) S {
	switch {
	case a == top || b == top:
		return top
	case a == bottom:
		return b
	case b == bottom:
		return a
	case a == b:
		return a
	default:
		return fn(a, b)
	}
}

// Leq reports whether a ≤ b in the semilattice defined by fn, that is, whether a ∨ b = b.
func Leq[S comparable](fn Join[S], a, b, bottom, top S) bool {
	return JoinWith(fn, a, b, bottom, top) == b
}

// Dot returns a directed graph in [Graphviz] format that represents the finite join-semilattice ⟨S, ≤⟩.
// Vertices represent elements in S and edges represent the ≤ relation between elements.
// We map from ⟨S, ∨⟩ to ⟨S, ≤⟩ by computing x ∨ y for all elements in [S]², where x ≤ y iff x ∨ y == y.
//
// The resulting graph can be filtered through [tred] to compute the transitive reduction of the graph, the
// visualisation of which corresponds to the Hasse diagram of the semilattice.
//
// The set of states may include the ⊥ and ⊤ elements.
//
// [Graphviz]: https://graphviz.org/
// [tred]: https://graphviz.org/docs/cli/tred/
func Dot[S comparable](fn Join[S], states []S, bottom, top S) string {
	var sb strings.Builder
	sb.WriteString("digraph{\n")
	sb.WriteString("rankdir=\"BT\"\n")

	for i, v := range states {
		if vs, ok := any(v).(fmt.Stringer); ok {
			fmt.Fprintf(&sb, "n%d [label=%q]\n", i, vs)
		} else {
			fmt.Fprintf(&sb, "n%d [label=%q]\n", i, fmt.Sprintf("%v", v))
		}
	}

	for dx, x := range states {
		for dy, y := range states {
			if dx == dy {
				continue
			}

			if JoinWith(fn, x, y, bottom, top) == y {
				fmt.Fprintf(&sb, "n%d -> n%d\n", dx, dy)
			}
		}
	}

	sb.WriteString("}")
	return sb.String()
}

// BinaryTable returns a commutative binary operator based on the provided mapping.
// For missing pairs of values, the default value will be returned.
func BinaryTable[S comparable](default_ S, m map[[2]S]S) func(S, S) S {
	return func(a, b S) S {
		if d, ok := m[[2]S{a, b}]; ok {
			return d
		} else if d, ok := m[[2]S{b, a}]; ok {
			return d
		} else {
			return default_
		}
	}
}

// OrderedTable is like [BinaryTable], but doesn't assume commutativity. Pairs are looked up exactly as given.
func OrderedTable[S comparable](default_ S, m map[[2]S]S) func(S, S) S {
	return func(a, b S) S {
		if d, ok := m[[2]S{a, b}]; ok {
			return d
		}
		return default_
	}
}

// JoinTable returns a [Join] function based on the provided mapping.
// For missing pairs of values, the default value will be returned.
func JoinTable[S comparable](top S, m map[[2]S]S) Join[S] {
	return func(a, b S) S {
		if d, ok := m[[2]S{a, b}]; ok {
			return d
		} else if d, ok := m[[2]S{b, a}]; ok {
			return d
		} else {
			return top
		}
	}
}

// Elements returns all values from 0 to last, inclusive.
func Elements[S constraints.Integer](last S) []S {
	out := make([]S, last+1)
	for i := range out {
		out[i] = S(i)
	}
	return out
}

// Worklist is a priority queue of distinct items. Pop returns the item with the highest priority. Pushing an item
// that is already queued is a no-op.
type Worklist[T comparable] struct {
	h      worklistHeap[T]
	queued map[T]bool
}

// NewWorklist returns an empty worklist that uses prio to order items.
// Priorities must not change while an item is queued.
func NewWorklist[T comparable](prio func(T) int) *Worklist[T] {
	return &Worklist[T]{
		h:      worklistHeap[T]{prio: prio},
		queued: map[T]bool{},
	}
}

func (wl *Worklist[T]) Push(x T) {
	if wl.queued[x] {
		return
	}
	wl.queued[x] = true
	heap.Push(&wl.h, x)
}

func (wl *Worklist[T]) Pop() T {
	x := heap.Pop(&wl.h).(T)
	delete(wl.queued, x)
	return x
}

func (wl *Worklist[T]) Len() int { return wl.h.Len() }

type worklistHeap[T any] struct {
	items []T
	prio  func(T) int
}

func (h worklistHeap[T]) Len() int           { return len(h.items) }
func (h worklistHeap[T]) Less(i, j int) bool { return h.prio(h.items[i]) > h.prio(h.items[j]) }
func (h worklistHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *worklistHeap[T]) Push(x any)        { h.items = append(h.items, x.(T)) }
func (h *worklistHeap[T]) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	var zero T
	h.items[n-1] = zero
	h.items = h.items[:n-1]
	return x
}
