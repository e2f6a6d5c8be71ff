// Package concurrent serializes access to a single topological sort so it can
// be shared between goroutines.
package concurrent

import (
	"sync"

	"toposort/toposort"
)

// Sorter guards a TopologicalSort with a mutex. Every method holds the lock
// for its whole duration.
type Sorter[T comparable] struct {
	ts *toposort.TopologicalSort[T]
	mu *sync.Mutex
}

// NewSorter returns a Sorter around a new, empty TopologicalSort.
func NewSorter[T comparable]() *Sorter[T] {
	return Wrap(toposort.New[T]())
}

// Wrap takes ownership of ts; the caller must not use ts directly afterwards.
func Wrap[T comparable](ts *toposort.TopologicalSort[T]) *Sorter[T] {
	return &Sorter[T]{ts: ts, mu: new(sync.Mutex)}
}

// Len returns the number of elements not yet extracted.
func (s *Sorter[T]) Len() int {
	s.mu.Lock()
	n := s.ts.Len()
	s.mu.Unlock()
	return n
}

// IsEmpty reports whether every element has been extracted.
func (s *Sorter[T]) IsEmpty() bool {
	s.mu.Lock()
	empty := s.ts.IsEmpty()
	s.mu.Unlock()
	return empty
}

// Insert adds elt with no dependencies; see TopologicalSort.Insert.
func (s *Sorter[T]) Insert(elt T) bool {
	s.mu.Lock()
	added := s.ts.Insert(elt)
	s.mu.Unlock()
	return added
}

// AddDependency registers that prec must be extracted before succ.
func (s *Sorter[T]) AddDependency(prec T, succ T) {
	s.mu.Lock()
	s.ts.AddDependency(prec, succ)
	s.mu.Unlock()
}

// Pop removes and returns one ready element, if any.
func (s *Sorter[T]) Pop() (T, bool) {
	s.mu.Lock()
	elt, ok := s.ts.Pop()
	s.mu.Unlock()
	return elt, ok
}

// PopAll removes and returns every element ready at the time of the call.
func (s *Sorter[T]) PopAll() []T {
	s.mu.Lock()
	ready := s.ts.PopAll()
	s.mu.Unlock()
	return ready
}

// Err reports ErrCycleDetected from the toposort package if no element is
// ready while some remain.
func (s *Sorter[T]) Err() error {
	s.mu.Lock()
	err := s.ts.Err()
	s.mu.Unlock()
	return err
}

// With runs f with the lock held, for compound operations that must not
// interleave with other callers. f must not retain ts.
func (s *Sorter[T]) With(f func(ts *toposort.TopologicalSort[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.ts)
}
