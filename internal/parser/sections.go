package parser

import (
	"fmt"
	"sort"
)

// MergeOrder decides how lines of a header shared across maps are combined
type MergeOrder string

const (
	// MergeNewFirst places a later map's lines before those already merged
	MergeNewFirst MergeOrder = "new-first"
	// MergeEncounter keeps lines in the order the maps were given
	MergeEncounter MergeOrder = "encounter"
)

// ParseMergeOrder converts a configuration value to a MergeOrder.
// An empty value selects MergeNewFirst.
func ParseMergeOrder(s string) (MergeOrder, error) {
	switch MergeOrder(s) {
	case "", MergeNewFirst:
		return MergeNewFirst, nil
	case MergeEncounter:
		return MergeEncounter, nil
	default:
		return "", fmt.Errorf("unknown merge order %q (supported: %s, %s)", s, MergeNewFirst, MergeEncounter)
	}
}

// Merge folds maps into a new DocMap using MergeNewFirst
func Merge(maps ...DocMap) DocMap {
	return MergeWith(MergeNewFirst, maps...)
}

// MergeWith folds maps in order into a new DocMap. Inputs are not modified.
func MergeWith(order MergeOrder, maps ...DocMap) DocMap {
	result := DocMap{}
	for _, m := range maps {
		for header, lines := range m {
			existing, ok := result[header]
			if !ok {
				result[header] = append([]string{}, lines...)
				continue
			}

			combined := make([]string, 0, len(existing)+len(lines))
			if order == MergeEncounter {
				combined = append(combined, existing...)
				combined = append(combined, lines...)
			} else {
				combined = append(combined, lines...)
				combined = append(combined, existing...)
			}
			result[header] = combined
		}
	}
	return result
}

// Order flattens docs into header-then-lines sequences. Headers named in
// index come first in index order; the rest follow sorted by header.
// Index entries missing from docs are ignored.
func Order(docs DocMap, index []string) []string {
	remaining := make(DocMap, len(docs))
	for header, lines := range docs {
		remaining[header] = lines
	}

	var output []string
	for _, header := range index {
		lines, ok := remaining[header]
		if !ok {
			continue
		}
		delete(remaining, header)
		output = append(output, header)
		output = append(output, lines...)
	}

	for _, header := range Headers(remaining) {
		output = append(output, header)
		output = append(output, remaining[header]...)
	}
	return output
}

// Headers returns the headers of docs in sorted order
func Headers(docs DocMap) []string {
	headers := make([]string, 0, len(docs))
	for header := range docs {
		headers = append(headers, header)
	}
	sort.Strings(headers)
	return headers
}

// Sections returns docs as blocks, ordered the same way Order flattens them
func Sections(docs DocMap, index []string) []Block {
	seen := make(map[string]bool, len(docs))
	var blocks []Block
	for _, header := range index {
		lines, ok := docs[header]
		if !ok || seen[header] {
			continue
		}
		seen[header] = true
		blocks = append(blocks, Block{Header: header, Lines: lines})
	}
	for _, header := range Headers(docs) {
		if seen[header] {
			continue
		}
		blocks = append(blocks, Block{Header: header, Lines: docs[header]})
	}
	return blocks
}
