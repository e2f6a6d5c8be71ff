package toposort

import (
	"cmp"
	"iter"
)

// PartialCompare compares a and b under a partial order. ok is false when the
// two are incomparable; otherwise c is negative, zero or positive like
// cmp.Compare.
type PartialCompare[T any] func(a, b T) (c int, ok bool)

// FromSeqFunc builds a TopologicalSort from items that are only partially
// ordered by compare. Each item is compared against every item seen before it:
// a smaller item becomes a predecessor, a greater one a successor, and equal or
// incomparable items are left unrelated.
//
// Items that do not equal themselves, such as NaN, are skipped. This takes
// O(n^2) comparisons.
func FromSeqFunc[T comparable](seq iter.Seq[T], compare PartialCompare[T]) *TopologicalSort[T] {
	ts := New[T]()
	var seen []T
	for item := range seq {
		if !selfEqual(item) {
			continue
		}
		ts.Insert(item)
		for _, seenItem := range seen {
			c, ok := compare(seenItem, item)
			if !ok || c == 0 {
				continue
			}
			if c < 0 {
				ts.AddDependency(seenItem, item)
			} else {
				ts.AddDependency(item, seenItem)
			}
		}
		seen = append(seen, item)
	}
	return ts
}

// FromSeq is FromSeqFunc using the < and > operators.
func FromSeq[T cmp.Ordered](seq iter.Seq[T]) *TopologicalSort[T] {
	return FromSeqFunc[T](seq, partialCompare[T])
}

func partialCompare[T cmp.Ordered](a, b T) (int, bool) {
	if a < b {
		return -1, true
	}
	if a > b {
		return 1, true
	}
	if a == b {
		return 0, true
	}
	return 0, false
}
