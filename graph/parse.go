package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	"toposort/toposort"
)

const (
	ErrOddTokens     = toposort.Error("odd number of tokens")
	ErrUnknownFormat = toposort.Error("unknown input format")
)

type Format int

const (
	// FormatPairs is tsort(1) input: whitespace separated tokens read two at a
	// time as predecessor and successor.
	FormatPairs Format = iota
	// FormatYAML is a mapping from each element to the list of elements it
	// depends on.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatPairs:
		return "pairs"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pairs", "tsort":
		return FormatPairs, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func Parse(r io.Reader, f Format) (Graph[string], error) {
	switch f {
	case FormatPairs:
		return ParsePairs(r)
	case FormatYAML:
		return ParseYAML(r)
	}
	return Graph[string]{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// ParsePairs reads tsort(1) input. A pair naming the same token twice declares
// that token without any dependency.
func ParsePairs(r io.Reader) (Graph[string], error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var edges []Edge[string]
	var isolated []string
	var tokens uint64
	for sc.Scan() {
		src := sc.Text()
		tokens++
		if !sc.Scan() {
			break
		}
		dst := sc.Text()
		tokens++
		if src == dst {
			isolated = append(isolated, src)
			continue
		}
		edges = append(edges, Edge[string]{Src: src, Dst: dst})
	}
	if err := sc.Err(); err != nil {
		return Graph[string]{}, fmt.Errorf("reading pairs: %w", err)
	}
	if tokens%2 == 1 {
		return Graph[string]{}, fmt.Errorf("%w: %d tokens", ErrOddTokens, tokens)
	}
	return New(edges, isolated...), nil
}

// ParseYAML reads a mapping such as
//
//	app: [lib, config]
//	lib: [config]
//	config: []
//
// where each key lists the elements that must come before it.
func ParseYAML(r io.Reader) (Graph[string], error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New[string](nil), nil
		}
		return Graph[string]{}, fmt.Errorf("decoding yaml: %w", err)
	}
	// decode through a Node to keep the document order of the keys and report
	// line numbers
	var deps yaml.Node
	if len(doc.Content) > 0 {
		deps = *doc.Content[0]
	}
	if deps.Kind != yaml.MappingNode {
		return Graph[string]{}, fmt.Errorf("decoding yaml: line %d: expected a mapping of element to dependencies", deps.Line)
	}

	var edges []Edge[string]
	var keys []string
	for i := 0; i+1 < len(deps.Content); i += 2 {
		var elt string
		if err := deps.Content[i].Decode(&elt); err != nil {
			return Graph[string]{}, fmt.Errorf("decoding yaml: %w", err)
		}
		var precs []string
		if err := deps.Content[i+1].Decode(&precs); err != nil {
			return Graph[string]{}, fmt.Errorf("decoding yaml: dependencies of %q: %w", elt, err)
		}
		keys = append(keys, elt)
		for _, prec := range precs {
			edges = append(edges, Edge[string]{Src: prec, Dst: elt})
		}
	}
	return New(edges, keys...), nil
}
