package toposort_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"toposort/toposort"
)

func TestInsert(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[string]()
	assert.True(ts.IsEmpty())

	assert.True(ts.Insert("a"))
	assert.False(ts.Insert("a"), "re-inserted element")
	assert.Equal(1, ts.Len())
	assert.True(ts.Contains("a"))
	assert.False(ts.Contains("b"))
}

func TestFromSeq(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.FromSeq(slices.Values([]int{4, 3, 3, 5, 7, 6, 8}))
	// the duplicate 3 collapses into one element
	assert.Equal(6, ts.Len())
	for _, expected := range []int{3, 4, 5, 6, 7, 8} {
		x, ok := ts.Pop()
		assert.True(ok)
		assert.Equal(expected, x)
	}
	_, ok := ts.Pop()
	assert.False(ok)
}

// subset is a partial order on bit sets
func subset(a, b uint8) (int, bool) {
	switch {
	case a == b:
		return 0, true
	case a&b == a:
		return -1, true
	case a&b == b:
		return 1, true
	}
	return 0, false
}

func TestFromSeqNaN(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.FromSeq(slices.Values([]float64{1, math.NaN(), 2}))
	assert.Equal(2, ts.Len())

	var order []float64
	for x := range ts.All() {
		order = append(order, x)
		// bounded: a NaN that is yielded but never removed would loop forever
		if !assert.LessOrEqual(len(order), 2) {
			break
		}
	}
	assert.Equal([]float64{1, 2}, order)
	assert.True(ts.IsEmpty())
}

func TestNaNIgnored(t *testing.T) {
	assert := assert.New(t)
	nan := math.NaN()
	ts := toposort.New[float64]()
	assert.False(ts.Insert(nan))
	ts.AddDependency(nan, 1)
	ts.AddDependency(1, nan)
	ts.AddDependencies(2, 3, nan)
	assert.Equal(2, ts.Len())
	assert.False(ts.Contains(nan))

	assert.Equal([]float64{2}, ts.PopAll())
	assert.Equal([]float64{3}, ts.PopAll())
	assert.Empty(ts.PopAll())
	assert.NoError(ts.Err())
}

func TestFromSeqFuncPartialOrder(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.FromSeqFunc(slices.Values([]uint8{0b111, 0b001, 0b010, 0b011, 0b000}), subset)

	assert.Equal([]uint8{0b000}, ts.PopAll())

	second := ts.PopAll()
	slices.Sort(second)
	assert.Equal([]uint8{0b001, 0b010}, second, "singletons are incomparable")

	assert.Equal([]uint8{0b011}, ts.PopAll())
	assert.Equal([]uint8{0b111}, ts.PopAll())
	assert.True(ts.IsEmpty())
}

func TestIter(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[int]()
	ts.AddDependency(1, 2)
	ts.AddDependency(2, 3)
	ts.AddDependency(3, 4)
	assert.Equal([]int{1, 2, 3, 4}, slices.Collect(ts.All()))
	assert.Empty(slices.Collect(ts.All()), "iterator is not restartable")
	assert.NoError(ts.Err())
}

func TestIterBreak(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[int]()
	ts.AddDependencies(1, 2, 3)
	for x := range ts.All() {
		assert.Equal(1, x)
		break
	}
	// 1 was consumed by the loop above
	assert.Equal(2, ts.Len())
	assert.False(ts.Contains(1))
}

func TestPopAll(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[int]()
	check := func(expected []int) {
		l := ts.Len()
		v := ts.PopAll()
		slices.Sort(v)
		assert.Equal(expected, v)
		assert.Equal(l-len(expected), ts.Len())
	}

	ts.AddDependency(7, 11)
	assert.Equal(2, ts.Len())
	ts.AddDependency(7, 8)
	assert.Equal(3, ts.Len())
	ts.AddDependency(5, 11)
	assert.Equal(4, ts.Len())
	ts.AddDependency(3, 8)
	assert.Equal(5, ts.Len())
	ts.AddDependency(3, 10)
	assert.Equal(6, ts.Len())
	ts.AddDependency(11, 2)
	assert.Equal(7, ts.Len())
	ts.AddDependency(11, 9)
	assert.Equal(8, ts.Len())
	ts.AddDependency(11, 10)
	assert.Equal(8, ts.Len())
	ts.AddDependency(8, 9)
	assert.Equal(8, ts.Len())

	check([]int{3, 5, 7})
	check([]int{8, 11})
	check([]int{2, 9, 10})
	check([]int{})
	assert.True(ts.IsEmpty())
}

func TestDuplicateDependency(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[string]()
	ts.AddDependency("a", "b")
	ts.AddDependency("a", "b")
	assert.Equal(2, ts.Len())

	// one pop of a must be enough to release b
	assert.Equal([]string{"a"}, ts.PopAll())
	assert.Equal([]string{"b"}, ts.PopAll())
}

func TestCycle(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[string]()
	ts.AddDependency("ready", "a")
	ts.AddDependency("a", "b")
	ts.AddDependency("b", "a")

	assert.False(ts.Stalled())
	assert.Equal([]string{"ready"}, ts.PopAll())

	_, ok := ts.Pop()
	assert.False(ok)
	assert.Empty(ts.PopAll())
	assert.Equal(2, ts.Len())
	assert.True(ts.Stalled())
	assert.ErrorIs(ts.Err(), toposort.ErrCycleDetected)
}

func TestSelfLoop(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[string]()
	ts.AddDependency("x", "x")
	ts.AddDependency("x", "y")
	assert.Equal(2, ts.Len())

	assert.Empty(ts.PopAll())
	assert.Empty(slices.Collect(ts.All()))
	assert.Equal(2, ts.Len(), "self-dependent element never drains")
	assert.ErrorIs(ts.Err(), toposort.ErrCycleDetected)
}

func TestEmpty(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[int]()
	_, ok := ts.Pop()
	assert.False(ok)
	assert.Empty(ts.PopAll())
	assert.False(ts.Stalled())
	assert.NoError(ts.Err())
}

func TestDocumentationExample(t *testing.T) {
	assert := assert.New(t)
	ts := toposort.New[string]()
	ts.AddDependency("hello_world.o", "hello_world")
	ts.AddDependency("hello_world.c", "hello_world")
	ts.AddDependency("stdio.h", "hello_world.o")
	ts.AddDependency("glibc.so", "hello_world")

	round := func() []string {
		v := ts.PopAll()
		slices.Sort(v)
		return v
	}
	assert.Equal([]string{"glibc.so", "hello_world.c", "stdio.h"}, round())
	assert.Equal([]string{"hello_world.o"}, round())
	assert.Equal([]string{"hello_world"}, round())
	assert.Empty(round())
}
