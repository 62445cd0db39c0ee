// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"fmt"
	"os"
	"sort"
)

// Replacement is one planned edit to a buffer: splice [Start, End) to
// ReplacementText. Ranges across one file's Replacements must be
// pairwise disjoint.
type Replacement struct {
	Start, End      int
	ReplacementText string
	Description     string
}

// Apply asserts disjointness, then splices every Replacement into
// orig in one pass ordered by Start ascending,
// producing byte-identical output to splicing highest-offset-first
// (the order never matters once ranges are disjoint; ascending lets
// the rebuild be a single forward copy instead of repeated slice
// insertion).
func Apply(orig []byte, edits []Replacement) ([]byte, error) {
	if len(edits) == 0 {
		return orig, nil
	}
	sorted := make([]Replacement, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var ranges Ranges
	for _, e := range sorted {
		if e.Start < 0 || e.End > len(orig) || e.Start > e.End {
			return nil, fmt.Errorf("autos: invalid replacement range [%d,%d) in buffer of length %d", e.Start, e.End, len(orig))
		}
		ranges.Add(e.Start, e.End, e.Description)
	}
	if !ranges.Disjoint() {
		return nil, overlapError(ranges)
	}

	var out []byte
	pos := 0
	for _, e := range sorted {
		out = append(out, orig[pos:e.Start]...)
		out = append(out, e.ReplacementText...)
		pos = e.End
	}
	out = append(out, orig[pos:]...)
	return out, nil
}

// overlapError walks ranges in ascending order to find the first
// overlapping pair and names them in the returned error.
func overlapError(ranges Ranges) error {
	for i := 1; i < ranges.Len(); i++ {
		lo, _, desc := ranges.At(i)
		_, prevHi, prevDesc := ranges.At(i - 1)
		if lo < prevHi {
			return fmt.Errorf("autos: overlapping replacements at offset %d (%q, %q)", lo, prevDesc, desc)
		}
	}
	return fmt.Errorf("autos: overlapping replacements")
}

// WriteFile writes data to path.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
