// Package graph describes dependency graphs as edge lists and loads them into
// a toposort.TopologicalSort.
package graph

import "toposort/toposort"

// Edge says Src must come before Dst.
type Edge[T comparable] struct {
	Src T
	Dst T
}

type Graph[T comparable] struct {
	Edges []Edge[T]
	// Nodes holds every element once: edge endpoints in order of first
	// mention, then the remaining isolated ones.
	Nodes []T
}

// New derives the node set from edges. isolated adds nodes that take part in no
// edge.
func New[T comparable](edges []Edge[T], isolated ...T) Graph[T] {
	seen := make(map[T]struct{})
	var nodes = []T{}
	add := func(n T) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		nodes = append(nodes, n)
	}
	for _, e := range edges {
		add(e.Src)
		add(e.Dst)
	}
	for _, n := range isolated {
		add(n)
	}
	return Graph[T]{Edges: edges, Nodes: nodes}
}

// Sorter returns a new TopologicalSort holding every node and edge of g.
func (g Graph[T]) Sorter() *toposort.TopologicalSort[T] {
	ts := toposort.New[T]()
	for _, n := range g.Nodes {
		ts.Insert(n)
	}
	for _, e := range g.Edges {
		ts.AddDependency(e.Src, e.Dst)
	}
	return ts
}
