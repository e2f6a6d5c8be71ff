// Package toposort incrementally sorts elements that are partially ordered by
// registered dependencies.
//
// Elements are extracted once all of their predecessors have been extracted.
// When the remaining elements form a cycle, extraction stalls: Pop and PopAll
// report nothing ready while Len is still non-zero.
package toposort

import (
	"iter"

	"github.com/goose-lang/primitive"
	"github.com/goose-lang/std"
)

type dependency[T comparable] struct {
	// number of predecessors still tracked
	numPrec uint64
	succ    map[T]struct{}
}

func newDependency[T comparable]() *dependency[T] {
	return &dependency[T]{numPrec: 0, succ: make(map[T]struct{})}
}

// TopologicalSort tracks elements and the dependencies between them.
//
// Elements are compared with ==, so every element must equal itself: a
// floating-point NaN is never tracked and is ignored wherever it is passed
// in. A TopologicalSort is not safe for
// concurrent use. Use New to create one; the zero value has no map to insert
// into.
type TopologicalSort[T comparable] struct {
	top map[T]*dependency[T]
}

// New creates an empty TopologicalSort.
func New[T comparable]() *TopologicalSort[T] {
	return &TopologicalSort[T]{top: make(map[T]*dependency[T])}
}

// Len returns the number of elements not yet extracted.
func (ts *TopologicalSort[T]) Len() int {
	return len(ts.top)
}

// IsEmpty reports whether every element has been extracted.
func (ts *TopologicalSort[T]) IsEmpty() bool {
	return len(ts.top) == 0
}

// Contains reports whether elt is tracked and not yet extracted.
func (ts *TopologicalSort[T]) Contains(elt T) bool {
	_, ok := ts.top[elt]
	return ok
}

// Insert adds elt without any dependencies from or to it. It returns false if
// elt was already present or does not equal itself, in which case nothing
// changes.
func (ts *TopologicalSort[T]) Insert(elt T) bool {
	if !selfEqual(elt) {
		return false
	}
	if _, ok := ts.top[elt]; ok {
		return false
	}
	ts.top[elt] = newDependency[T]()
	return true
}

// AddDependency registers that prec must be extracted before succ. Either
// element is added if it is not yet present. Registering the same pair again
// has no effect.
//
// AddDependency(x, x) is accepted and leaves x permanently unready. A pair
// with an element that does not equal itself is ignored.
func (ts *TopologicalSort[T]) AddDependency(prec T, succ T) {
	if !selfEqual(prec) || !selfEqual(succ) {
		return
	}
	p, ok := ts.top[prec]
	if !ok {
		p = newDependency[T]()
		ts.top[prec] = p
	}
	if _, ok := p.succ[succ]; ok {
		// already registered
		return
	}
	p.succ[succ] = struct{}{}

	s, ok := ts.top[succ]
	if !ok {
		s = newDependency[T]()
		ts.top[succ] = s
	}
	s.numPrec = std.SumAssumeNoOverflow(s.numPrec, 1)
}

// AddDependencies registers prec as a predecessor of each of succs.
func (ts *TopologicalSort[T]) AddDependencies(prec T, succs ...T) {
	for _, succ := range succs {
		ts.AddDependency(prec, succ)
	}
}

// Pop removes an element with no remaining predecessors and returns it. Which
// element is chosen among several ready ones is unspecified.
//
// The boolean is false if no element is ready; if Len is not 0 at that point
// the remaining elements contain a cycle.
func (ts *TopologicalSort[T]) Pop() (T, bool) {
	for elt, dep := range ts.top {
		if dep.numPrec != 0 {
			continue
		}
		if _, ok := ts.remove(elt); ok {
			return elt, true
		}
	}
	var zero T
	return zero, false
}

// PopAll removes every element that has no remaining predecessors and returns
// them in no particular order. The ready set is computed before anything is
// removed, so elements freed by this call are left for the next one.
//
// An empty result with Len not 0 means the remaining elements contain a cycle.
func (ts *TopologicalSort[T]) PopAll() []T {
	var ready = []T{}
	for elt, dep := range ts.top {
		if dep.numPrec == 0 {
			ready = append(ready, elt)
		}
	}
	removed := ready[:0]
	for _, elt := range ready {
		if _, ok := ts.remove(elt); ok {
			removed = append(removed, elt)
		}
	}
	return removed
}

// All returns an iterator that pops elements until none is ready. It consumes
// the TopologicalSort: an element is removed before it is yielded, even if the
// loop body then stops.
func (ts *TopologicalSort[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elt, ok := ts.Pop()
			if !ok {
				return
			}
			if !yield(elt) {
				return
			}
		}
	}
}

// Stalled reports whether elements remain but none of them is ready.
func (ts *TopologicalSort[T]) Stalled() bool {
	if len(ts.top) == 0 {
		return false
	}
	for _, dep := range ts.top {
		if dep.numPrec == 0 {
			return false
		}
	}
	return true
}

// Err returns ErrCycleDetected if extraction has stalled on a cycle, and nil
// otherwise (including when the TopologicalSort is empty).
func (ts *TopologicalSort[T]) Err() error {
	if ts.Stalled() {
		return ErrCycleDetected
	}
	return nil
}

// selfEqual is false only for values such as NaN, which can be stored as a map
// key but never looked up again.
func selfEqual[T comparable](x T) bool {
	return x == x
}

// remove deletes prec and releases its successors. Successors that are no
// longer tracked are skipped.
func (ts *TopologicalSort[T]) remove(prec T) (*dependency[T], bool) {
	p, ok := ts.top[prec]
	if !ok {
		return nil, false
	}
	delete(ts.top, prec)
	for s := range p.succ {
		y, ok := ts.top[s]
		if !ok {
			continue
		}
		primitive.Assert(y.numPrec > 0)
		y.numPrec--
	}
	return p, true
}
